package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerTransformFeedback(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupTransformFeedback, regs.TransformFeedbackBufferBase,
		regs.TransformFeedbackBufferCount*regs.TransformFeedbackBufferStride)
	c.Tracker.RegisterUpdater(dirty.GroupTransformFeedback, func() error {
		return updateTransformFeedback(c)
	})
}

// updateTransformFeedback posts the 4 transform-feedback buffer
// descriptors to the buffer manager. The begin/end signal itself is
// edge-triggered at the draw level (spec.md §4.3 steps 4, 7), not here.
func updateTransformFeedback(c *Context) error {
	for i := uint32(0); i < regs.TransformFeedbackBufferCount; i++ {
		buf := c.Mirror.TransformFeedbackBuffer(i)
		if !buf.Enable {
			continue
		}
		c.Buffers.SetTransformFeedbackBuffer(int(i), buf.Address, uint64(buf.Size))
	}
	return nil
}
