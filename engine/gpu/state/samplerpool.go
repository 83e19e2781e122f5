package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerSamplerPool(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupSamplerPool, regs.SamplerPool, 3)
	c.Tracker.RegisterUpdater(dirty.GroupSamplerPool, func() error {
		return updateSamplerPool(c)
	})
}

func updateSamplerPool(c *Context) error {
	p := c.Mirror.SamplerPoolDescriptor()
	c.PoolKey.SamplerPoolBase = p.Address
	c.PoolKey.SamplerPoolMaxID = p.MaxID
	c.Textures.SetSamplerPool(p.Address, p.MaxID)
	return nil
}
