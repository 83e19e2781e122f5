package draw

import (
	"github.com/spaghettifunk/tegrastate/engine/core"
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/host"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
	"github.com/spaghettifunk/tegrastate/engine/gpu/state"
)

// Preamble is the ordering controller run once at the top of every draw
// call (spec.md §2 "Draw Preamble", §4.3). It is the single entry point
// per draw into the rest of the translator.
type Preamble struct {
	ctx     *state.Context
	scratch Scratch
}

// New wires a Preamble to the channel's shared Context. The Context's
// update groups must already be registered (state.Context.RegisterUpdaters)
// before Draw is ever called.
func New(ctx *state.Context) *Preamble {
	return &Preamble{ctx: ctx}
}

// Call is the parameters of a single draw call, as the guest's command
// stream processor (out of scope) would report them to the translator.
type Call struct {
	Indexed       bool
	IndexType     regs.IndexType
	FirstVertex   uint32
	FirstInstance uint32
	Count         uint32
	Topology      uint8
}

// Draw runs the seven ordered steps of spec.md §4.3.
func (p *Preamble) Draw(call Call) error {
	c := p.ctx

	c.LastDraw.Indexed = call.Indexed
	c.LastDraw.IndexType = call.IndexType
	c.LastDraw.FirstVertex = call.FirstVertex
	c.LastDraw.FirstInstance = call.FirstInstance
	c.LastDraw.Count = call.Count

	// Step 1: shader-fingerprint compatibility.
	if _, hasBound := c.Shader.Bound(); hasBound {
		pool := state.BuildPoolKey(c)
		key := state.BuildKey(c)
		if !c.Shader.Compatible(pool, key) {
			c.Tracker.ForceDirty(dirty.GroupShader)
		}
	}

	// Step 2: indexed/non-indexed transition.
	if call.Indexed != p.scratch.PrevDrawIndexed {
		c.Tracker.ForceDirty(dirty.GroupVertexBuffer)
		if c.Policy.PrimitiveRestartTracksIndexedMode {
			c.Tracker.ForceDirty(dirty.GroupPrimitiveRestart)
		}
		p.scratch.PrevDrawIndexed = call.Indexed
	}

	// Step 3: indexed index-type or first-vertex change.
	if call.Indexed && (call.IndexType != p.scratch.PrevIndexType || call.FirstVertex != p.scratch.PrevFirstVertex) {
		c.Tracker.ForceDirty(dirty.GroupVertexBuffer)
		p.scratch.PrevIndexType = call.IndexType
		p.scratch.PrevFirstVertex = call.FirstVertex
	}

	// Step 4: transform-feedback true→false edge.
	tfEnable := c.Mirror.TransformFeedbackEnable()
	if p.scratch.PrevTFEnable && !tfEnable {
		c.Renderer.EndTransformFeedback()
		p.scratch.PrevTFEnable = false
	}

	// Step 5: run every dirty group.
	if err := c.Tracker.UpdateAll(); err != nil {
		return err
	}

	// Step 6: commit resource bindings.
	if err := p.commit(); err != nil {
		return err
	}

	// Step 7: transform-feedback false→true edge.
	if !p.scratch.PrevTFEnable && tfEnable {
		c.Renderer.BeginTransformFeedback(call.Topology)
		p.scratch.PrevTFEnable = true
	}

	return nil
}

// commit implements spec.md §4.5: materialize storage-buffers from
// shader reflection and guest memory, commit texture bindings (retrying
// the Shader updater once on incompatibility), then commit buffer
// bindings.
func (p *Preamble) commit() error {
	c := p.ctx

	if err := materializeStorageBuffers(c); err != nil {
		return err
	}

	result, err := c.Textures.CommitGraphicsBindings(c.Key)
	if err != nil {
		return err
	}
	if result.Incompatible {
		c.Tracker.ForceDirty(dirty.GroupShader)
		if err := c.Tracker.Update(dirty.Mask(1) << uint(dirty.GroupShader)); err != nil {
			return err
		}
		retry, err := c.Textures.CommitGraphicsBindings(c.Key)
		if err != nil {
			return err
		}
		if retry.Incompatible {
			// spec.md §7 error class 2: a second failure is logged as
			// warning and the draw proceeds with whatever was bound.
			core.LogWarn("texture bindings still incompatible with shader after retry; proceeding with current bindings")
		}
	}

	return c.Buffers.CommitGraphicsBindings()
}

// materializeStorageBuffers implements spec.md §4.4 "Storage-buffer
// materialization": each shader stage's reflection lists N storage-buffer
// slots; each slot's address is read from guest memory at
// graphics_cb0_base + 0x110 + stage*0x100 + slot*0x10 as a
// (address, size, flags) descriptor, then posted to the buffer manager.
func materializeStorageBuffers(c *state.Context) error {
	base := c.Mirror.ShaderProgramBaseAddress()
	refl := c.Shader.Reflection()

	for stage, s := range refl.Stages {
		if !s.Bound {
			continue
		}
		for _, slot := range s.StorageBuffers {
			addr := base + 0x110 + uint64(stage)*0x100 + uint64(slot.Slot)*0x10
			desc, err := c.Memory.ReadStorageBufferDescriptor(addr)
			if err != nil {
				return err
			}
			desc.Flags |= slot.Flags
			c.Buffers.SetGraphicsStorageBuffer(stage, int(slot.Slot), host.StorageBufferBinding{
				Address: desc.Address,
				Size:    desc.Size,
				Flags:   desc.Flags,
			})
		}
	}
	return nil
}
