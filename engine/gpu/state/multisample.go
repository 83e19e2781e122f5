package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerMultisample(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupMultisample, regs.Multisample, 3)
	c.Tracker.RegisterUpdater(dirty.GroupMultisample, func() error {
		return updateMultisample(c)
	})
}

func updateMultisample(c *Context) error {
	m := c.Mirror.Multisample()

	c.Key.MultisampleEnable = m.SampleCount > 1
	c.Key.AlphaToCoverageEnable = m.AlphaToCoverageEnable

	c.Renderer.SetMultisampleState(m.SampleCount > 1, m.AlphaToCoverageEnable)
	return nil
}
