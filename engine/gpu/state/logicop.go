package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerLogicOp(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupLogicOp, regs.LogicOp, 2)
	c.Tracker.RegisterUpdater(dirty.GroupLogicOp, func() error {
		return updateLogicOp(c)
	})
}

func updateLogicOp(c *Context) error {
	enable := c.Mirror.LogicOpEnable()
	op := c.Mirror.LogicOpValue()

	c.Snapshot.LogicOpEnable = enable
	c.Snapshot.LogicOp = op

	c.Renderer.SetLogicOpState(enable, uint8(op))
	return nil
}
