package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerColorMask(c *Context) {
	c.Tracker.DependsOn(dirty.GroupColorMask, regs.ColorMaskShared)
	c.Tracker.DependsOnRange(dirty.GroupColorMask, regs.ColorMaskBase, regs.ColorMaskCount)
	c.Tracker.RegisterUpdater(dirty.GroupColorMask, func() error {
		return updateColorMask(c)
	})
}

// updateColorMask implements spec.md §4.4 "Color mask": if shared bit
// set, target 0's mask broadcast; otherwise per-target.
func updateColorMask(c *Context) error {
	var masks [regs.BlendTargetCount]uint8
	for i := uint32(0); i < regs.BlendTargetCount; i++ {
		mask := c.Mirror.ColorMask(i)
		masks[i] = mask
		c.Snapshot.ColorMasks[i] = regs.ColorMask(mask)
	}
	c.Renderer.SetRenderTargetColorMasks(masks)
	return nil
}
