package hostvk

import (
	"fmt"
	"sync"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

// PipelineState is every field of the fixed-function pipeline that
// Vulkan has no dynamic-state command for, plus the bound program
// handle. It stands in for the teacher's VulkanPipelineConfig, widened
// to cover everything the update groups forward that isn't one of the
// direct vk.CmdSet* calls in renderer.go.
type PipelineState struct {
	Attribs [regs.VertexAttribCount]pipeline.VertexAttribLayout
	Blend   [regs.BlendTargetCount]pipeline.BlendState

	CullEnable bool
	CullFace   uint8
	FrontFace  uint8

	Stencil pipeline.DepthStencilState
	Depth   pipeline.DepthStencilState

	PatchControlPoints uint32
	DepthMode          pipeline.DepthMode

	LogicOpEnable bool
	LogicOp       uint8

	DepthClampEnable bool
	PolygonMode      uint8
	DepthBiasOn      bool

	PrimitiveRestartEnable bool
	LineSmooth             bool
	ColorMasks             [regs.BlendTargetCount]uint8
	RasterizerDiscard      bool

	AlphaTestEnable bool
	AlphaTestFunc   uint8
	AlphaTestRef    float32

	PointSize              float32
	ProgramPointSizeEnable bool
	PointSpriteEnable      bool

	ClipDistanceMask uint8

	MultisampleEnable     bool
	AlphaToCoverageEnable bool

	ProgramHandle      uint32
	RenderTargetScale  float32
}

// key reduces a PipelineState to a value-typed, comparable struct
// suitable as a map key. Go structs containing only comparable fields
// (no slices/maps) are themselves comparable, so this is the whole
// PipelineState value — the same trick fingerprint.Key relies on.
type key = PipelineState

// PipelineCache maps a fully-resolved PipelineState to the Vulkan
// pipeline object that implements it, building new ones lazily and
// reusing them across draws whose static state happens to match
// (spec.md §9 "a fixed-function state change too broad for dynamic
// state forces a pipeline-object rebuild on the host side").
type PipelineCache struct {
	mu    sync.Mutex
	byKey map[key]vk.Pipeline

	layout     vk.PipelineLayout
	renderPass vk.RenderPass
}

// NewPipelineCache ties the cache to the render pass and pipeline layout
// every graphics pipeline it builds will share.
func NewPipelineCache(renderPass vk.RenderPass, layout vk.PipelineLayout) *PipelineCache {
	return &PipelineCache{
		byKey:      make(map[key]vk.Pipeline),
		renderPass: renderPass,
		layout:     layout,
	}
}

// GetOrCreate returns the cached pipeline for state, building it via
// buildGraphicsPipeline on a cache miss.
func (c *PipelineCache) GetOrCreate(device vk.Device, state PipelineState) (vk.Pipeline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pl, ok := c.byKey[state]; ok {
		return pl, nil
	}
	pl, err := buildGraphicsPipeline(device, c.renderPass, c.layout, state)
	if err != nil {
		return nil, fmt.Errorf("hostvk: build pipeline for program %d: %w", state.ProgramHandle, err)
	}
	c.byKey[state] = pl
	return pl, nil
}

// buildGraphicsPipeline translates a PipelineState into a
// vk.GraphicsPipelineCreateInfo, the way the teacher's
// NewGraphicsPipeline built one from a VulkanPipelineConfig — viewport
// and scissor are left dynamic (renderer.go drives them per-draw). The
// rasterization, depth test/write/compare, stencil-test enable,
// alpha-to-coverage, per-target blend, color-mask, logic-op enable,
// primitive-restart and vertex-input fields are written into the create
// info. The logic-op value, topology, PatchControlPoints, DepthMode, the
// alpha-test, point and line-smooth fields, ClipDistanceMask,
// MultisampleEnable, RenderTargetScale and the stencil funcs/ops are part
// of the cache key only and are not written into it.
func buildGraphicsPipeline(device vk.Device, renderPass vk.RenderPass, layout vk.PipelineLayout, state PipelineState) (vk.Pipeline, error) {
	dynamicStates := []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
		vk.DynamicStateDepthBias,
		vk.DynamicStateLineWidth,
		vk.DynamicStateStencilReference,
		vk.DynamicStateStencilCompareMask,
		vk.DynamicStateStencilWriteMask,
		vk.DynamicStateVertexInputBindingStride,
	}
	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    dynamicStates,
	}

	rasterization := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.Bool32(boolToUint32(state.DepthClampEnable)),
		RasterizerDiscardEnable: vk.Bool32(boolToUint32(state.RasterizerDiscard)),
		PolygonMode:             polygonModeFromGuest(state.PolygonMode),
		CullMode:                cullModeFromGuest(state.CullEnable, state.CullFace),
		FrontFace:               frontFaceFromGuest(state.FrontFace),
		DepthBiasEnable:         vk.Bool32(boolToUint32(state.DepthBiasOn)),
		LineWidth:               1.0,
	}

	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:       vk.Bool32(boolToUint32(state.Depth.DepthTestEnable)),
		DepthWriteEnable:      vk.Bool32(boolToUint32(state.Depth.DepthWriteEnable)),
		DepthCompareOp:        compareOpFromGuest(state.Depth.DepthCompareFunc),
		StencilTestEnable:     vk.Bool32(boolToUint32(state.Stencil.StencilTestEnable)),
		MinDepthBounds:        0.0,
		MaxDepthBounds:        1.0,
	}

	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
		AlphaToCoverageEnable: vk.Bool32(boolToUint32(state.AlphaToCoverageEnable)),
	}

	blendAttachments := make([]vk.PipelineColorBlendAttachmentState, regs.BlendTargetCount)
	for i := range blendAttachments {
		b := state.Blend[i]
		blendAttachments[i] = vk.PipelineColorBlendAttachmentState{
			BlendEnable:         vk.Bool32(boolToUint32(b.Enable)),
			SrcColorBlendFactor: blendFactorFromGuest(b.ColorSrcFactor),
			DstColorBlendFactor: blendFactorFromGuest(b.ColorDstFactor),
			ColorBlendOp:        blendOpFromGuest(b.ColorOp),
			SrcAlphaBlendFactor: blendFactorFromGuest(b.AlphaSrcFactor),
			DstAlphaBlendFactor: blendFactorFromGuest(b.AlphaDstFactor),
			AlphaBlendOp:        blendOpFromGuest(b.AlphaOp),
			ColorWriteMask:      vk.ColorComponentFlags(state.ColorMasks[i]),
		}
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.Bool32(boolToUint32(state.LogicOpEnable)),
		AttachmentCount: uint32(len(blendAttachments)),
		PAttachments:    blendAttachments,
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		PrimitiveRestartEnable: vk.Bool32(boolToUint32(state.PrimitiveRestartEnable)),
	}

	attrs, bindings := vertexInputFromAttribs(state.Attribs)
	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexAttributeDescriptionCount: uint32(len(attrs)),
		PVertexAttributeDescriptions:    attrs,
		VertexBindingDescriptionCount:   uint32(len(bindings)),
		PVertexBindingDescriptions:      bindings,
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	createInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterization,
		PMultisampleState:   &multisample,
		PDepthStencilState:  &depthStencil,
		PColorBlendState:    &colorBlend,
		PDynamicState:       &dynamicState,
		Layout:              layout,
		RenderPass:          renderPass,
	}

	pipelines := make([]vk.Pipeline, 1)
	if res := vk.CreateGraphicsPipelines(device, nil, 1, []vk.GraphicsPipelineCreateInfo{createInfo}, nil, pipelines); res != vk.Success {
		return nil, fmt.Errorf("vkCreateGraphicsPipelines failed: %d", res)
	}
	return pipelines[0], nil
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
