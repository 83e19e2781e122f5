package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerLine(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupLine, regs.Line, 2)
	c.Tracker.RegisterUpdater(dirty.GroupLine, func() error {
		return updateLine(c)
	})
}

func updateLine(c *Context) error {
	l := c.Mirror.Line()
	c.Snapshot.LineWidth = l.Width
	c.Renderer.SetLineParameters(l.Width, l.SmoothEnable)
	return nil
}
