package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
	tmath "github.com/spaghettifunk/tegrastate/engine/math"
)

// DrawInfo is the per-draw information the Vertex Buffer updater needs
// to clamp buffer sizes (spec.md §4.4 "Vertex Buffer"). The Draw
// Preamble populates this on Context before forcing the group dirty or
// running update(ALL).
type DrawInfo struct {
	Indexed       bool
	IndexType     regs.IndexType
	FirstVertex   uint32
	FirstInstance uint32
	Count         uint32
}

func registerVertexBuffer(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupVertexBuffer, regs.VertexBufferBase, regs.VertexBufferCount*regs.VertexBufferStride)
	c.Tracker.RegisterUpdater(dirty.GroupVertexBuffer, func() error {
		return updateVertexBuffer(c)
	})
}

// updateVertexBuffer implements spec.md §4.4 "Vertex Buffer": for each of
// 16 slots, compute the clamped size the host should believe the buffer
// is, then forward the binding.
func updateVertexBuffer(c *Context) error {
	draw := c.LastDraw
	for i := uint32(0); i < regs.VertexBufferCount; i++ {
		vb := c.Mirror.VertexBuffer(i)
		if !vb.Enable {
			c.Snapshot.VertexBuffers[i] = pipeline.VertexBufferBinding{Disabled: true}
			c.Buffers.SetVertexBuffer(int(i), c.Snapshot.VertexBuffers[i])
			continue
		}

		size := vb.Size()
		switch {
		case draw.Indexed && (draw.IndexType == regs.IndexTypeU8 || draw.IndexType == regs.IndexTypeU16) && !vb.Instanced && vb.Stride > 0:
			bits := uint64(8)
			if draw.IndexType == regs.IndexTypeU16 {
				bits = 16
			}
			maxIndex := uint64(1)<<bits + uint64(draw.FirstVertex)
			clamped := maxIndex * uint64(vb.Stride)
			size = tmath.Clamp(size, 0, clamped)
		case !draw.Indexed && !vb.Instanced && vb.Stride > 0:
			clamped := uint64(draw.FirstInstance+draw.FirstVertex+draw.Count) * uint64(vb.Stride)
			size = tmath.Clamp(size, 0, clamped)
		}

		binding := pipeline.VertexBufferBinding{
			Address: vb.Address,
			Size:    size,
			Stride:  vb.Stride,
			Divisor: vb.Divisor,
		}
		c.Snapshot.VertexBuffers[i] = binding
		c.Buffers.SetVertexBuffer(int(i), binding)
	}
	return nil
}
