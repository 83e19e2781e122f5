package state

import (
	"math"

	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerScissor(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupScissor, regs.ScissorBase, regs.ScissorCount*regs.ScissorStride)
	c.Tracker.DependsOn(dirty.GroupScissor, regs.YControl)
	c.Tracker.RegisterUpdater(dirty.GroupScissor, func() error {
		return updateScissor(c)
	})
}

// updateScissor implements spec.md §4.4 "Scissor": for each of 16, if
// enable bit clear or the rectangle equals the full window, emit a
// full-viewport rectangle; else compute the rectangle, flip y against
// the screen scissor height if Y-negate is set (clipping y to
// non-negative, reducing height accordingly), and scale by render-target
// scale.
func updateScissor(c *Context) error {
	yc := c.Mirror.YControl()
	screenHeight := c.ClipRegionHeight

	for i := uint32(0); i < regs.ScissorCount; i++ {
		s := c.Mirror.Scissor(i)

		var rect pipeline.Scissor
		if !s.Enable || s.IsFullWindow() {
			rect = pipeline.Scissor{X: 0, Y: 0, Width: c.ClipRegionWidth, Height: c.ClipRegionHeight}
		} else {
			x := int32(s.X1)
			y := int32(s.Y1)
			width := s.X2 - s.X1
			height := s.Y2 - s.Y1

			if yc.NegateY {
				y = int32(screenHeight) - int32(s.Y2)
				if y < 0 {
					height -= uint32(-y)
					y = 0
				}
			}

			rect = pipeline.Scissor{X: x, Y: y, Width: width, Height: height}
			rect = scaleScissor(rect, c.RTScale)
		}

		c.Snapshot.Scissors[i] = rect
	}

	c.Renderer.SetScissors(c.Snapshot.Scissors[:])
	return nil
}

func scaleScissor(r pipeline.Scissor, scale float32) pipeline.Scissor {
	if scale == 1.0 || scale == 0 {
		return r
	}
	return pipeline.Scissor{
		X:      int32(float32(r.X) * scale),
		Y:      int32(float32(r.Y) * scale),
		Width:  uint32(math.Ceil(float64(float32(r.Width) * scale))),
		Height: uint32(math.Ceil(float64(float32(r.Height) * scale))),
	}
}
