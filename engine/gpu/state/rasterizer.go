package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerRasterizer(c *Context) {
	c.Tracker.DependsOn(dirty.GroupRasterizer, regs.RasterizerDiscardEnable)
	c.Tracker.RegisterUpdater(dirty.GroupRasterizer, func() error {
		return updateRasterizer(c)
	})
}

func updateRasterizer(c *Context) error {
	discard := c.Mirror.RasterizerDiscardEnable()
	c.Snapshot.RasterizerDiscard = discard
	c.Renderer.SetRasterizerDiscard(discard)
	return nil
}
