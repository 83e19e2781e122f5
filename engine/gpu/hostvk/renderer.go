// Package hostvk is the one concrete host.Renderer this repository
// provides (spec.md §1 Non-goals: host-API object creation beyond this
// factory is out of scope), backed by github.com/goki/vulkan. It issues
// dynamic-state commands directly for the pipeline state Vulkan exposes
// as dynamic, and recreates (or fetches from a cache) the pipeline
// object itself for the state that isn't.
package hostvk

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/tegrastate/engine/core"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

// Renderer drives one Vulkan command buffer on behalf of the core
// translator (spec.md §6 "Downward (to the host renderer)"). It owns no
// Vulkan objects beyond the pipeline cache; the command buffer, render
// pass, and device come from whatever embeds it.
type Renderer struct {
	device vk.Device
	cmd    vk.CommandBuffer

	pipelines *PipelineCache
	pending   PipelineState
	dirty     bool
	bound     vk.Pipeline
}

// New wires a Renderer to a device and a pipeline cache. It has no
// command buffer yet: Reset must point it at a recording command buffer
// before any command is issued, and again for each new frame.
func New(device vk.Device, cache *PipelineCache) *Renderer {
	return &Renderer{device: device, pipelines: cache}
}

// Reset points the renderer at a freshly begun command buffer, as the
// teacher's VulkanCommandBuffer moves through READY -> RECORDING once per
// frame. The pipeline cache persists across frames; only the binding
// does not.
func (r *Renderer) Reset(cmd vk.CommandBuffer) {
	r.cmd = cmd
	r.bound = nil
}

func (r *Renderer) SetVertexAttribs(attribs [regs.VertexAttribCount]pipeline.VertexAttribLayout) {
	r.pending.Attribs = attribs
	r.dirty = true
}

func (r *Renderer) SetBlendState(index int, desc pipeline.BlendState) {
	r.pending.Blend[index] = desc
	r.dirty = true
}

func (r *Renderer) SetFaceCulling(enable bool, face uint8) {
	r.pending.CullEnable = enable
	r.pending.CullFace = face
	r.dirty = true
}

func (r *Renderer) SetFrontFace(face uint8) {
	r.pending.FrontFace = face
	r.dirty = true
}

func (r *Renderer) SetStencilTest(desc pipeline.DepthStencilState) {
	r.pending.Stencil = desc
	r.dirty = true

	vk.CmdSetStencilReference(r.cmd, vk.StencilFaceFlags(vk.StencilFaceFrontBit), desc.FrontRef)
	vk.CmdSetStencilReference(r.cmd, vk.StencilFaceFlags(vk.StencilFaceBackBit), desc.BackRef)
	vk.CmdSetStencilCompareMask(r.cmd, vk.StencilFaceFlags(vk.StencilFaceFrontBit), desc.FrontMask)
	vk.CmdSetStencilCompareMask(r.cmd, vk.StencilFaceFlags(vk.StencilFaceBackBit), desc.BackMask)
	vk.CmdSetStencilWriteMask(r.cmd, vk.StencilFaceFlags(vk.StencilFaceFrontBit), desc.FrontWriteMask)
	vk.CmdSetStencilWriteMask(r.cmd, vk.StencilFaceFlags(vk.StencilFaceBackBit), desc.BackWriteMask)
}

func (r *Renderer) SetDepthTest(desc pipeline.DepthStencilState) {
	r.pending.Depth = desc
	r.dirty = true
}

func (r *Renderer) SetPatchParameters(controlPoints uint32) {
	r.pending.PatchControlPoints = controlPoints
	r.dirty = true
}

// SetViewports and SetScissors are core Vulkan dynamic state: no
// pipeline object change is ever needed (spec.md §4.4 "Viewport"/
// "Scissor" run on almost every draw, which is exactly the workload
// dynamic state exists for).
func (r *Renderer) SetViewports(viewports []pipeline.Viewport) {
	vps := make([]vk.Viewport, len(viewports))
	for i, v := range viewports {
		vps[i] = vk.Viewport{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height, MinDepth: v.MinDepth, MaxDepth: v.MaxDepth}
	}
	vk.CmdSetViewport(r.cmd, 0, uint32(len(vps)), vps)
}

func (r *Renderer) SetScissors(scissors []pipeline.Scissor) {
	rects := make([]vk.Rect2D, len(scissors))
	for i, s := range scissors {
		rects[i] = vk.Rect2D{
			Offset: vk.Offset2D{X: s.X, Y: s.Y},
			Extent: vk.Extent2D{Width: s.Width, Height: s.Height},
		}
	}
	vk.CmdSetScissor(r.cmd, 0, uint32(len(rects)), rects)
}

func (r *Renderer) SetDepthMode(mode pipeline.DepthMode) {
	r.pending.DepthMode = mode
	r.dirty = true
}

func (r *Renderer) SetLogicOpState(enable bool, op uint8) {
	r.pending.LogicOpEnable = enable
	r.pending.LogicOp = op
	r.dirty = true
}

func (r *Renderer) SetDepthClamp(enable bool) {
	r.pending.DepthClampEnable = enable
	r.dirty = true
}

func (r *Renderer) SetPolygonMode(mode uint8) {
	r.pending.PolygonMode = mode
	r.dirty = true
}

func (r *Renderer) SetDepthBias(enable bool, constant, clamp, slope float32) {
	if enable {
		vk.CmdSetDepthBias(r.cmd, constant, clamp, slope)
	}
	r.pending.DepthBiasOn = enable
	r.dirty = true
}

func (r *Renderer) SetPrimitiveRestart(enable bool) {
	r.pending.PrimitiveRestartEnable = enable
	r.dirty = true
}

func (r *Renderer) SetLineParameters(width float32, smooth bool) {
	vk.CmdSetLineWidth(r.cmd, width)
	r.pending.LineSmooth = smooth
}

func (r *Renderer) SetRenderTargetColorMasks(masks [regs.BlendTargetCount]uint8) {
	r.pending.ColorMasks = masks
	r.dirty = true
}

func (r *Renderer) SetRasterizerDiscard(enable bool) {
	r.pending.RasterizerDiscard = enable
	r.dirty = true
}

func (r *Renderer) SetAlphaTest(enable bool, fn uint8, ref float32) {
	r.pending.AlphaTestEnable = enable
	r.pending.AlphaTestFunc = fn
	r.pending.AlphaTestRef = ref
	r.dirty = true
}

func (r *Renderer) SetPointParameters(size float32, programPointSizeEnable bool, spriteEnable bool) {
	r.pending.PointSize = size
	r.pending.ProgramPointSizeEnable = programPointSizeEnable
	r.pending.PointSpriteEnable = spriteEnable
	r.dirty = true
}

func (r *Renderer) SetUserClipDistance(mask uint8) {
	r.pending.ClipDistanceMask = mask
	r.dirty = true
}

func (r *Renderer) SetMultisampleState(enable bool, alphaToCoverage bool) {
	r.pending.MultisampleEnable = enable
	r.pending.AlphaToCoverageEnable = alphaToCoverage
	r.dirty = true
}

// SetProgram is the last pipeline-affecting field the Shader update
// group sets (spec.md §4.4 "Shader" runs after every other group that
// touches fixed-function state); this is where the accumulated static
// state actually turns into a bound vk.Pipeline.
func (r *Renderer) SetProgram(handle uint32) {
	r.pending.ProgramHandle = handle
	pl, err := r.pipelines.GetOrCreate(r.device, r.pending)
	if err != nil {
		core.LogError("hostvk: pipeline fetch for program %d failed: %v", handle, err)
		return
	}
	if pl != r.bound {
		vk.CmdBindPipeline(r.cmd, vk.PipelineBindPointGraphics, pl)
		r.bound = pl
	}
	r.dirty = false
}

func (r *Renderer) SetRenderTargetScale(scale float32) {
	r.pending.RenderTargetScale = scale
	r.dirty = true
}

func (r *Renderer) BeginTransformFeedback(topology uint8) {
	vk.CmdBeginTransformFeedbackEXT(r.cmd, 0, 1, []vk.Buffer{nil}, []vk.DeviceSize{0})
}

func (r *Renderer) EndTransformFeedback() {
	vk.CmdEndTransformFeedbackEXT(r.cmd, 0, 1, []vk.Buffer{nil}, []vk.DeviceSize{0})
}
