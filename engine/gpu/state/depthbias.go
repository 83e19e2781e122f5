package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerDepthBias(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupDepthBias, regs.DepthBias, 4)
	c.Tracker.RegisterUpdater(dirty.GroupDepthBias, func() error {
		return updateDepthBias(c)
	})
}

func updateDepthBias(c *Context) error {
	b := c.Mirror.DepthBias()

	c.Snapshot.DepthBiasOn = b.Enable
	c.Snapshot.DepthBiasConst = b.ConstantFactor
	c.Snapshot.DepthBiasClamp = b.Clamp
	c.Snapshot.DepthBiasSlope = b.SlopeFactor

	c.Renderer.SetDepthBias(b.Enable, b.ConstantFactor, b.Clamp, b.SlopeFactor)
	return nil
}
