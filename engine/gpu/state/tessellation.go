package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerTessellation(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupTessellation, regs.Tessellation, 4)
	c.Tracker.RegisterUpdater(dirty.GroupTessellation, func() error {
		return updateTessellation(c)
	})
}

func updateTessellation(c *Context) error {
	t := c.Mirror.Tessellation()

	c.Snapshot.PatchControlPoints = t.PatchControlPoints
	c.Key.TessDomain = t.Domain
	c.Key.TessSpacing = t.Spacing
	c.Key.TessOutputPrimitive = t.OutputPrimitive

	c.Renderer.SetPatchParameters(t.PatchControlPoints)
	return nil
}
