package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerIndexBuffer(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupIndexBuffer, regs.IndexBuffer, 4)
	c.Tracker.RegisterUpdater(dirty.GroupIndexBuffer, func() error {
		return updateIndexBuffer(c)
	})
}

func updateIndexBuffer(c *Context) error {
	ib := c.Mirror.IndexBuffer()
	c.Buffers.SetIndexBuffer(ib.Address, uint64(ib.Size), uint8(ib.Type))
	return nil
}
