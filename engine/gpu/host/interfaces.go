// Package host declares the downward interfaces the core translator
// depends on (spec.md §6 "Downward"): the host renderer, the texture and
// buffer managers, and the shader cache. Nothing in engine/gpu/state,
// engine/gpu/draw, or engine/gpu/shader depends on a concrete host-API
// package directly — only on these interfaces. engine/gpu/hostvk supplies
// the one concrete Renderer this spec provides (spec.md §1 Non-goals:
// host-API object creation beyond the provided factory is out of scope).
package host

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/fingerprint"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

// Renderer is the host graphics API surface the update callbacks drive
// (spec.md §6 "Downward (to the host renderer)").
type Renderer interface {
	SetVertexAttribs(attribs [regs.VertexAttribCount]pipeline.VertexAttribLayout)
	SetBlendState(index int, desc pipeline.BlendState)
	SetFaceCulling(enable bool, face uint8)
	SetFrontFace(face uint8)
	SetStencilTest(desc pipeline.DepthStencilState)
	SetDepthTest(desc pipeline.DepthStencilState)
	SetPatchParameters(controlPoints uint32)
	SetViewports(viewports []pipeline.Viewport)
	SetScissors(scissors []pipeline.Scissor)
	SetDepthMode(mode pipeline.DepthMode)
	SetLogicOpState(enable bool, op uint8)
	SetDepthClamp(enable bool)
	SetPolygonMode(mode uint8)
	SetDepthBias(enable bool, constant, clamp, slope float32)
	SetPrimitiveRestart(enable bool)
	SetLineParameters(width float32, smooth bool)
	SetRenderTargetColorMasks(masks [regs.BlendTargetCount]uint8)
	SetRasterizerDiscard(enable bool)
	SetAlphaTest(enable bool, fn uint8, ref float32)
	SetPointParameters(size float32, programPointSizeEnable bool, spriteEnable bool)
	SetUserClipDistance(mask uint8)
	SetMultisampleState(enable bool, alphaToCoverage bool)
	SetProgram(handle uint32)
	SetRenderTargetScale(scale float32)
	BeginTransformFeedback(topology uint8)
	EndTransformFeedback()
}

// ProgramInfo is what the Shader Coordinator learns back about the
// program the shader cache bound (spec.md §4.4 "Shader").
type ProgramInfo struct {
	Handle             uint32
	WritesRTLayer      bool
	UsesInstanceID     bool
	ClipDistancesMask  uint8
	Stages             [5]StageReflection
}

// StageReflection is one shader stage's reflection info (spec.md §3
// "Shader Reflection Cache").
type StageReflection struct {
	Bound             bool
	StorageBuffers    []StorageBufferSlot
	ConstantBuffers   []uint32
	Textures          []uint32
	Images            []uint32
}

// StorageBufferSlot is one reflected storage-buffer binding slot before
// it has been resolved to a concrete (address, size) pair (spec.md §4.4
// "Storage-buffer materialization").
type StorageBufferSlot struct {
	Slot  uint32
	Flags uint32
}

// StorageBufferBinding is a resolved storage-buffer descriptor read from
// guest memory (spec.md §4.4).
type StorageBufferBinding struct {
	Address uint64
	Size    uint64
	Flags   uint32
}

// TextureManager is the downward texture/render-target collaborator
// (spec.md §6 "Downward (to managers)"). SetRenderTargetColor/Depth's
// layered argument is the Render-Target group's choice of layered-vs-
// non-layered texture view (spec.md §4.4: driven by the bound program's
// writes_rt_layer flag, overridable via update_render_target_state).
type TextureManager interface {
	SetRenderTargetColor(index int, format, width, height, samplesX, samplesY uint32, layered bool) (TextureBindResult, error)
	SetRenderTargetDepth(format, width, height, samplesX, samplesY uint32, layered bool) (TextureBindResult, error)
	SetClipRegion(width, height uint32)
	RentTextureBindings(stage int, count int)
	RentImageBindings(stage int, count int)
	SetMaxBindings(stage int, textures, images int)
	SetSamplerPool(base uint64, maxID uint32)
	SetTexturePool(base uint64, maxID uint32)
	CommitGraphicsBindings(key fingerprint.Key) (CommitResult, error)
	UpdateRenderTargetScale(scale float32)
}

// TextureBindResult reports whether binding a render-target attachment
// changed the channel's render-target scale (spec.md §4.4 "Render
// targets").
type TextureBindResult struct {
	ChangedScale bool
	Scale        float32
	Width        uint32
	Height       uint32
}

// CommitResult reports whether a binding commit found the bound textures
// incompatible with the current shader specialization (spec.md §4.5).
type CommitResult struct {
	Incompatible bool
}

// BufferManager is the downward vertex/index/storage/TF buffer
// collaborator (spec.md §6 "Downward (to managers)").
type BufferManager interface {
	SetVertexBuffer(index int, binding pipeline.VertexBufferBinding)
	SetIndexBuffer(address uint64, size uint64, indexType uint8)
	SetGraphicsStorageBuffer(stage int, slot int, binding StorageBufferBinding)
	SetTransformFeedbackBuffer(index int, address uint64, size uint64)
	SetGraphicsStorageBufferBindings(stage int, count int)
	SetGraphicsUniformBufferBindings(stage int, count int)
	CommitGraphicsBindings() error
}

// GuestMemory is the minimal read-only view over guest memory the
// storage-buffer materialization step needs (spec.md §4.4: "each slot's
// address is read from guest memory at
// graphics_cb0_base + 0x110 + stage*0x100 + slot*0x10 as a
// (address, size, flags) descriptor"). Guest memory virtualization
// itself is out of scope (spec.md §1 Non-goals); this is the narrow
// boundary the core actually crosses.
type GuestMemory interface {
	ReadStorageBufferDescriptor(addr uint64) (StorageBufferBinding, error)
}
