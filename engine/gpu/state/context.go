// Package state implements the 27 update-group callbacks (spec.md §2
// "Update Callbacks", §4.4), one file per group, each reading the
// Register Mirror, computing a derived host descriptor, updating the
// cached Pipeline Snapshot, and forwarding to the host API.
//
// Per spec.md §9's design note, each callback is a free function bound
// into a fixed-size, enum-indexed table rather than a method on a
// polymorphic type; Context is the shared argument they all close over.
package state

import (
	"github.com/spaghettifunk/tegrastate/engine/core"
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/fingerprint"
	"github.com/spaghettifunk/tegrastate/engine/gpu/host"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
	"github.com/spaghettifunk/tegrastate/engine/gpu/shader"
)

// Context is the shared state every update-group callback reads from
// and writes to (spec.md §9 "Back-references": "The state updater holds
// references to the channel, the GPU context, and the register
// mirror"). The channel owns a Context; a Context borrows everything it
// points to and owns none of it.
type Context struct {
	Mirror   *regs.Mirror
	Tracker  *dirty.Tracker
	Snapshot *pipeline.Snapshot
	Policy   core.Policy

	Renderer host.Renderer
	Textures host.TextureManager
	Buffers  host.BufferManager
	Memory   host.GuestMemory

	Shader *shader.Coordinator

	// RTScale is the per-channel render-target upscaling factor (spec.md
	// GLOSSARY "Render-target scale"). It is updated by the Render-Target
	// group when the texture manager reports a scale change, and read by
	// Viewport and Scissor.
	RTScale float32

	// ClipRegionWidth/Height is the minimum width/samplesX and
	// height/samplesY across bound attachments (spec.md §4.4 "Render
	// targets": "this is the clip region"), used by Scissor as the
	// screen-scissor window when the guest scissor is disabled or full.
	ClipRegionWidth  uint32
	ClipRegionHeight uint32

	// PoolKey and Key are the live fingerprints the Shader group
	// assembles and queries the cache with (spec.md §3, §4.4 "Shader").
	PoolKey fingerprint.PoolKey
	Key     fingerprint.Key

	// LastDraw is the current draw's parameters, set by the Draw Preamble
	// before tracker.Update runs (spec.md §4.3, §4.4 "Vertex Buffer").
	LastDraw DrawInfo

	// RTUseControl, RTLayeredOverride, and RTSingleUse are the
	// update_render_target_state(use_control, layered, single_use)
	// overrides (spec.md §6 "Upward"). RTUseControl selects whether the
	// Render-Target group honors RT-control's slot permutation or binds
	// slots index-for-index; RTLayeredOverride forces a layered view even
	// when the bound program doesn't request one; RTSingleUse forces a
	// non-layered view for the next Render-Target run only, then clears
	// itself.
	RTUseControl     bool
	RTLayeredOverride bool
	RTSingleUse       bool
}

// New builds a Context wired to its collaborators. RTScale starts at 1.0
// (spec.md: "a per-channel upscaling factor" — unscaled is the neutral
// starting value before any render-target bind reports otherwise).
func New(mirror *regs.Mirror, tracker *dirty.Tracker, snapshot *pipeline.Snapshot, policy core.Policy,
	renderer host.Renderer, textures host.TextureManager, buffers host.BufferManager, memory host.GuestMemory,
	coordinator *shader.Coordinator) *Context {
	return &Context{
		Mirror:   mirror,
		Tracker:  tracker,
		Snapshot: snapshot,
		Policy:   policy,
		Renderer: renderer,
		Textures: textures,
		Buffers:  buffers,
		Memory:   memory,
		Shader:   coordinator,
		RTScale:  1.0,

		RTUseControl: true,
	}
}

// ForceShaderUpdate re-runs the Shader group immediately (spec.md §6
// "Upward": "force_shader_update()"). It is re-entrant: an update-group
// callback may call it, per spec.md §9 "Back-references" — re-entry is
// single-threaded and shallow, so this must never be called from inside
// the Shader group's own updater.
func (c *Context) ForceShaderUpdate() error {
	c.Tracker.ForceDirty(dirty.GroupShader)
	return c.Tracker.Update(dirty.Mask(1) << uint(dirty.GroupShader))
}

// UpdateRenderTargetState re-runs the Render-Target group immediately
// with explicit overrides (spec.md §6 "Upward":
// "update_render_target_state(use_control, layered, single_use)").
func (c *Context) UpdateRenderTargetState(useControl, layered, singleUse bool) error {
	c.RTUseControl = useControl
	c.RTLayeredOverride = layered
	c.RTSingleUse = singleUse
	c.Tracker.ForceDirty(dirty.GroupRenderTarget)
	return c.Tracker.Update(dirty.Mask(1) << uint(dirty.GroupRenderTarget))
}

// RegisterUpdaters binds every update-group callback into the tracker's
// dispatch table and declares each group's register dependencies. Called
// once at channel construction, after the Context itself is built
// (spec.md §3 "Update Group": "group membership is immutable after
// construction").
func (c *Context) RegisterUpdaters() {
	registerVertexBuffer(c)
	registerVertexAttrib(c)
	registerBlend(c)
	registerFace(c)
	registerStencil(c)
	registerDepth(c)
	registerTessellation(c)
	registerViewport(c)
	registerLogicOp(c)
	registerDepthClamp(c)
	registerPolygonMode(c)
	registerDepthBias(c)
	registerPrimitiveRestart(c)
	registerLine(c)
	registerColorMask(c)
	registerRasterizer(c)
	registerAlphaTest(c)
	registerSamplerPool(c)
	registerTexturePool(c)
	registerPoint(c)
	registerIndexBuffer(c)
	registerMultisample(c)
	registerUserClip(c)
	registerScissor(c)
	registerTransformFeedback(c)
	registerShader(c)
	registerRenderTarget(c)
}
