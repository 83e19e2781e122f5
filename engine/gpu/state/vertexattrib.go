package state

import (
	"github.com/spaghettifunk/tegrastate/engine/core"
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerVertexAttrib(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupVertexAttrib, regs.VertexAttribBase, regs.VertexAttribCount*regs.VertexAttribStride)
	c.Tracker.RegisterUpdater(dirty.GroupVertexAttrib, func() error {
		return updateVertexAttrib(c)
	})
}

// updateVertexAttrib implements spec.md §4.4 "Vertex attributes": decode
// buffer index, offset, is-constant, and format for each of 16 slots.
// Unknown formats are logged and silently substituted with RGBA32F
// (spec.md §4.1 error model, §4.4).
func updateVertexAttrib(c *Context) error {
	for i := uint32(0); i < regs.VertexAttribCount; i++ {
		a := c.Mirror.VertexAttrib(i)
		typ, components := decodeAttribKind(i, a)

		c.Snapshot.VertexAttribs[i] = pipeline.VertexAttribLayout{
			BufferIndex: a.BufferIndex,
			Offset:      a.Offset,
			Type:        typ,
			Components:  components,
			IsConstant:  a.IsConstant,
		}
	}
	c.Renderer.SetVertexAttribs(c.Snapshot.VertexAttribs)
	return nil
}

// decodeAttribKind resolves a decoded vertex attribute to a host format,
// substituting RGBA32F for unknown encodings (spec.md §4.1 error model,
// §4.4 "Vertex attributes"). Shared with the Draw Preamble's
// from-scratch key rebuild (state.BuildKey) so both paths stay
// consistent.
func decodeAttribKind(index uint32, a regs.VertexAttrib) (regs.VertexAttribType, uint8) {
	if a.Type == regs.VertexAttribTypeNone || a.Components == 0 || a.Components > 4 {
		core.LogDebug("vertex attrib %d: unknown format (type=%d components=%d), substituting RGBA32F", index, a.Type, a.Components)
		return regs.VertexAttribTypeFloat, 4
	}
	return a.Type, a.Components
}
