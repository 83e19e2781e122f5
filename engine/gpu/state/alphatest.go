package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerAlphaTest(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupAlphaTest, regs.AlphaTest, 3)
	c.Tracker.RegisterUpdater(dirty.GroupAlphaTest, func() error {
		return updateAlphaTest(c)
	})
}

func updateAlphaTest(c *Context) error {
	a := c.Mirror.AlphaTest()

	c.Key.AlphaTestEnable = a.Enable
	c.Key.AlphaTestFunc = a.Func
	c.Key.AlphaTestRef = a.Ref

	c.Renderer.SetAlphaTest(a.Enable, uint8(a.Func), a.Ref)
	return nil
}
