package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerPolygonMode(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupPolygonMode, regs.PolygonMode, 2)
	c.Tracker.RegisterUpdater(dirty.GroupPolygonMode, func() error {
		return updatePolygonMode(c)
	})
}

// updatePolygonMode forwards the front-facing polygon mode to the host;
// most host APIs expose a single rasterizer polygon mode shared by both
// faces, with back-face handling left to face culling.
func updatePolygonMode(c *Context) error {
	pm := c.Mirror.PolygonMode()
	c.Snapshot.PolygonMode = pm.Front
	c.Renderer.SetPolygonMode(uint8(pm.Front))
	return nil
}
