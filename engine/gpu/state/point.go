package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerPoint(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupPoint, regs.Point, 4)
	c.Tracker.RegisterUpdater(dirty.GroupPoint, func() error {
		return updatePoint(c)
	})
}

// updatePoint implements spec.md §4.4 "Point" (via §3's specialization
// key entries for program-point-size and point size) and preserves the
// open question recorded in spec.md §9(a): CoordReplace's bit-2 selector
// is inherited as a guess from the source this spec was derived from,
// not independently verified against guest driver behavior.
func updatePoint(c *Context) error {
	p := c.Mirror.Point()

	spriteEnable := p.SpriteEnable && (p.CoordReplace&0x4) != 0

	c.Key.ProgramPointSizeEnable = p.ProgramPointSizeEnable
	c.Key.PointSize = p.Size

	c.Renderer.SetPointParameters(p.Size, p.ProgramPointSizeEnable, spriteEnable)
	return nil
}
