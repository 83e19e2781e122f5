package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
	tmath "github.com/spaghettifunk/tegrastate/engine/math"
)

// rtScaleMin and rtScaleMax bound the render-target scale the texture
// cache may report, guarding against a degenerate upscale/downscale
// factor turning into a zero-sized or absurdly large attachment.
const (
	rtScaleMin float32 = 0.1
	rtScaleMax float32 = 8.0
)

func registerRenderTarget(c *Context) {
	c.Tracker.DependsOn(dirty.GroupRenderTarget, regs.RTControl)
	c.Tracker.DependsOnRange(dirty.GroupRenderTarget, regs.RTColorBase, regs.RTColorCount*regs.RTColorStride)
	c.Tracker.DependsOnRange(dirty.GroupRenderTarget, regs.RTDepthBase, 8)
	c.Tracker.RegisterUpdater(dirty.GroupRenderTarget, func() error {
		return updateRenderTarget(c)
	})
}

// updateRenderTarget implements spec.md §4.4 "Render targets": iterate 8
// color slots via the permutation map in RT-control (count clamped by its
// UnpackCount()), unless RTUseControl has been turned off by
// update_render_target_state, in which case slots bind index-for-index.
// A slot is enabled iff format != 0 AND width != 0 — spec.md §9 open
// question (b), inherited verbatim as behavior. For each enabled slot,
// obtain a texture view from the texture cache, passing the slot's own
// width and height (no separate screen-scissor size hint is passed), the
// MSAA sample-per-axis counts, and whether the view must be layered; track the minimum width/samples_in_x
// and height/samples_in_y across all bound attachments as the clip
// region. If the texture cache signals a scale change, re-invoke Viewport
// and Scissor and push the new scale to the host. Depth-stencil is
// handled identically if enabled.
//
// This group runs after Shader (dirty/groups.go) precisely so the
// layered-view choice below can read the bound program's writes_rt_layer
// flag.
func updateRenderTarget(c *Context) error {
	ctrl := c.Mirror.RTControl()
	count := ctrl.UnpackCount()
	ms := c.Mirror.Multisample()
	samplesX, samplesY := sampleAxes(ms.SampleCount)

	layered := c.Shader.WritesRTLayer() || c.RTLayeredOverride
	if c.RTSingleUse {
		layered = false
	}

	minW, minH := uint32(0), uint32(0)
	rescaled := false
	newScale := c.RTScale

	for slot := uint32(0); slot < count; slot++ {
		index := slot
		if c.RTUseControl {
			index = ctrl.Permutation[slot]
		}
		rt := c.Mirror.RTColorTarget(index)
		if !rt.Enabled() {
			continue
		}

		result, err := c.Textures.SetRenderTargetColor(int(slot), rt.Format, rt.Width, rt.Height, samplesX, samplesY, layered)
		if err != nil {
			return err
		}
		trackClipRegion(&minW, &minH, rt.Width/samplesX, rt.Height/samplesY)
		if result.ChangedScale {
			rescaled = true
			newScale = result.Scale
		}
	}

	if depth := c.Mirror.RTDepthTarget(); depth.Enable {
		result, err := c.Textures.SetRenderTargetDepth(depth.Format, depth.Width, depth.Height, samplesX, samplesY, layered)
		if err != nil {
			return err
		}
		trackClipRegion(&minW, &minH, depth.Width/samplesX, depth.Height/samplesY)
		if result.ChangedScale {
			rescaled = true
			newScale = result.Scale
		}
	}

	if c.RTSingleUse {
		c.RTSingleUse = false
	}

	if minW > 0 && minH > 0 {
		c.ClipRegionWidth, c.ClipRegionHeight = minW, minH
		c.Textures.SetClipRegion(minW, minH)
	}

	if rescaled {
		newScale = tmath.Clamp(newScale, rtScaleMin, rtScaleMax)
		c.RTScale = newScale
		c.Renderer.SetRenderTargetScale(newScale)
		c.Textures.UpdateRenderTargetScale(newScale)
		if err := updateViewport(c); err != nil {
			return err
		}
		if err := updateScissor(c); err != nil {
			return err
		}
	}

	return nil
}

func trackClipRegion(minW, minH *uint32, w, h uint32) {
	if w == 0 || h == 0 {
		return
	}
	if *minW == 0 || w < *minW {
		*minW = w
	}
	if *minH == 0 || h < *minH {
		*minH = h
	}
}

// sampleAxes splits a total MSAA sample count into per-axis counts: 0 and
// 1 give 1x1, and the standard counts 2, 4, 8 and 16 give 2x1, 2x2, 4x2
// and 4x4. Any other count falls back to an Nx1 strip (all N samples
// along X), without logging.
func sampleAxes(count uint32) (x, y uint32) {
	if count <= 1 {
		return 1, 1
	}
	switch count {
	case 2:
		return 2, 1
	case 4:
		return 2, 2
	case 8:
		return 4, 2
	case 16:
		return 4, 4
	default:
		return count, 1
	}
}
