package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerDepth(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupDepth, regs.DepthTest, 3)
	c.Tracker.RegisterUpdater(dirty.GroupDepth, func() error {
		return updateDepth(c)
	})
}

func updateDepth(c *Context) error {
	d := c.Mirror.DepthTest()

	ds := &c.Snapshot.DepthStencil
	ds.DepthTestEnable = d.Enable
	ds.DepthWriteEnable = d.WriteEnable
	ds.DepthCompareFunc = d.Func

	c.Renderer.SetDepthTest(*ds)
	return nil
}
