package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerBlend(c *Context) {
	c.Tracker.DependsOn(dirty.GroupBlend, regs.BlendIndependent, regs.BlendEnableMask)
	c.Tracker.DependsOnRange(dirty.GroupBlend, regs.BlendCommon, 6)
	c.Tracker.DependsOnRange(dirty.GroupBlend, regs.BlendPerTargetBase, regs.BlendTargetCount*regs.BlendPerTargetStride)
	c.Tracker.RegisterUpdater(dirty.GroupBlend, func() error {
		return updateBlend(c)
	})
}

// updateBlend implements spec.md §4.4 "Blend": if blend-independent is
// set, per-target state; otherwise one enable bit (target 0) broadcast
// with common blend state across all 8 targets.
func updateBlend(c *Context) error {
	independent := c.Mirror.BlendIndependent()
	common := c.Mirror.BlendCommonDesc()

	for i := uint32(0); i < regs.BlendTargetCount; i++ {
		desc := common
		if independent {
			desc = c.Mirror.BlendPerTarget(i)
		}
		state := toBlendState(desc)
		c.Snapshot.Blend[i] = state
		c.Renderer.SetBlendState(int(i), state)
	}
	return nil
}

func toBlendState(d regs.BlendDesc) pipeline.BlendState {
	return pipeline.BlendState{
		Enable:         d.Enable,
		ColorOp:        d.OpRGB,
		ColorSrcFactor: d.SrcRGB,
		ColorDstFactor: d.DstRGB,
		AlphaOp:        d.OpA,
		AlphaSrcFactor: d.SrcA,
		AlphaDstFactor: d.DstA,
	}
}
