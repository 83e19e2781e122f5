package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerViewport(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupViewport, regs.ViewportBase, regs.ViewportCount*regs.ViewportStride)
	c.Tracker.DependsOn(dirty.GroupViewport, regs.ViewportTransformDisable, regs.YControl, regs.DepthModeFallback, regs.ViewportSwizzleYNegative)
	c.Tracker.RegisterUpdater(dirty.GroupViewport, func() error {
		return updateViewport(c)
	})
}

// updateViewport implements spec.md §4.4 "Viewport" and "Depth mode
// inference". The Y-flip condition has two independent inputs: the
// screen-wide Y-negate flag (YControl), and each viewport's own swizzle-Y
// axis, which only matters on hosts lacking native viewport-swizzle
// support (Policy.HasViewportSwizzle).
func updateViewport(c *Context) error {
	disabled := c.Mirror.ViewportTransformDisabled()
	yc := c.Mirror.YControl()

	var primaryGuest regs.Viewport

	for i := uint32(0); i < regs.ViewportCount; i++ {
		var vp pipeline.Viewport
		if disabled {
			screen := c.Snapshot.Scissors[i]
			vp = pipeline.Viewport{
				X:        float32(screen.X),
				Y:        float32(screen.Y),
				Width:    float32(screen.Width),
				Height:   float32(screen.Height),
				MinDepth: 0,
				MaxDepth: 1,
			}
		} else {
			gv := c.Mirror.Viewport(i)

			swizzleYNegative := c.Mirror.ViewportSwizzleYNegative(i)
			flipY := yc.NegateY || (swizzleYNegative && !c.Policy.HasViewportSwizzle)

			scaleX, scaleY := absF32(gv.ScaleX), absF32(gv.ScaleY)
			x := gv.TranslateX - scaleX
			y := gv.TranslateY - scaleY
			width := scaleX * 2
			height := scaleY * 2

			if flipY {
				y = -y - height
			}

			near, far := gv.DepthNear, gv.DepthFar
			if gv.ScaleZ < 0 {
				near, far = far, near
			}

			vp = pipeline.Viewport{X: x, Y: y, Width: width, Height: height, MinDepth: near, MaxDepth: far}

			if i == 0 {
				primaryGuest = gv
			}
		}

		vp.X *= c.RTScale
		vp.Y *= c.RTScale
		vp.Width *= c.RTScale
		vp.Height *= c.RTScale

		c.Snapshot.Viewports[i] = vp
	}

	mode := inferDepthMode(c, primaryGuest, disabled)
	c.Snapshot.DepthMode = mode
	c.Key.DepthMode = uint8(mode)

	c.Renderer.SetDepthMode(mode)
	c.Renderer.SetViewports(c.Snapshot.Viewports[:])
	return nil
}

// inferDepthMode implements spec.md §4.4 "Depth mode inference": if
// depth extents are finite and not degenerate, depth mode is -1..1 iff
// both depth_near and depth_far differ from translate_z; else 0..1. If
// extents are degenerate, fall back to the guest's depth-mode register's
// low bit.
func inferDepthMode(c *Context, gv regs.Viewport, transformDisabled bool) pipeline.DepthMode {
	degenerate := transformDisabled ||
		gv.DepthNear == gv.DepthFar ||
		!isFiniteF32(gv.DepthNear) || !isFiniteF32(gv.DepthFar) || !isFiniteF32(gv.TranslateZ)

	if degenerate {
		if c.Mirror.DepthModeFallback()&1 != 0 {
			return pipeline.DepthModeNegOneToOne
		}
		return pipeline.DepthModeZeroToOne
	}

	if gv.DepthNear != gv.TranslateZ && gv.DepthFar != gv.TranslateZ {
		return pipeline.DepthModeNegOneToOne
	}
	return pipeline.DepthModeZeroToOne
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func isFiniteF32(v float32) bool {
	return v-v == 0 // v-v is 0 for every finite v and NaN for NaN and ±Inf
}
