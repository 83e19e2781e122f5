package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerDepthClamp(c *Context) {
	c.Tracker.DependsOn(dirty.GroupDepthClamp, regs.DepthClampEnable)
	c.Tracker.RegisterUpdater(dirty.GroupDepthClamp, func() error {
		return updateDepthClamp(c)
	})
}

func updateDepthClamp(c *Context) error {
	enable := c.Mirror.DepthClampEnable()
	c.Snapshot.DepthClampEnable = enable
	c.Renderer.SetDepthClamp(enable)
	return nil
}
