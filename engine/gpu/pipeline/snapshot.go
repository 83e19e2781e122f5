// Package pipeline holds the Pipeline Snapshot (spec.md §3): the core's
// cached belief about what the host pipeline currently looks like.
// Updaters in engine/gpu/state mutate a Snapshot and forward the same
// values to the host; the Shader updater reads it back to build a
// derivative pipeline-cache key (spec.md §5 "Shared resources").
package pipeline

import "github.com/spaghettifunk/tegrastate/engine/gpu/regs"

// VertexAttribLayout is one decoded vertex-attribute slot, already
// resolved to a host format (unknown guest formats are substituted with
// RGBA32F before they ever reach the snapshot, spec.md §4.4).
type VertexAttribLayout struct {
	BufferIndex uint32
	Offset      uint32
	Type        regs.VertexAttribType
	Components  uint8
	IsConstant  bool
}

// VertexBufferBinding is the clamped, host-facing view of one vertex
// buffer slot (spec.md §4.4 "Vertex Buffer").
type VertexBufferBinding struct {
	Address  uint64
	Size     uint64
	Stride   uint32
	Divisor  uint32
	Disabled bool
}

// BlendState is one target's resolved blend descriptor.
type BlendState struct {
	Enable                bool
	ColorOp               regs.BlendOp
	ColorSrcFactor        regs.BlendFactor
	ColorDstFactor        regs.BlendFactor
	AlphaOp               regs.BlendOp
	AlphaSrcFactor        regs.BlendFactor
	AlphaDstFactor        regs.BlendFactor
}

// DepthStencilState is the resolved depth/stencil descriptor.
type DepthStencilState struct {
	DepthTestEnable  bool
	DepthWriteEnable bool
	DepthCompareFunc regs.CompareFunc

	StencilTestEnable bool
	FrontFunc         regs.CompareFunc
	FrontRef          uint32
	FrontMask         uint32
	FrontWriteMask    uint32
	FrontFailOp       regs.StencilOp
	FrontDepthFailOp  regs.StencilOp
	FrontPassOp       regs.StencilOp
	BackFunc          regs.CompareFunc
	BackRef           uint32
	BackMask          uint32
	BackWriteMask     uint32
	BackFailOp        regs.StencilOp
	BackDepthFailOp   regs.StencilOp
	BackPassOp        regs.StencilOp
}

// Viewport is a resolved host viewport, already scaled by the
// render-target scale factor (spec.md §4.4 "Viewport").
type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

// Scissor is a resolved host scissor rectangle in integer pixels.
type Scissor struct {
	X, Y          int32
	Width, Height uint32
}

// Snapshot is the cached host-side pipeline description (spec.md §3
// "Pipeline Snapshot"). It is authoritative for what the host believes
// is bound; it holds no host-API handles itself — those live behind the
// host.Renderer interface — only the values the updaters derived.
type Snapshot struct {
	VertexAttribs [regs.VertexAttribCount]VertexAttribLayout
	VertexBuffers [regs.VertexBufferCount]VertexBufferBinding

	Blend      [regs.BlendTargetCount]BlendState
	ColorMasks [regs.BlendTargetCount]regs.ColorMask

	DepthStencil DepthStencilState

	CullEnable bool
	CullFace   regs.CullFace
	FrontFace  regs.FrontFace

	LineWidth      float32
	DepthBiasOn    bool
	DepthBiasConst float32
	DepthBiasClamp float32
	DepthBiasSlope float32

	PrimitiveRestartEnable bool
	PatchControlPoints     uint32
	DepthClampEnable       bool
	LogicOpEnable          bool
	LogicOp                regs.LogicOpType

	RasterizerDiscard bool
	PolygonMode       regs.PolygonModeType

	Viewports [regs.ViewportCount]Viewport
	Scissors  [regs.ScissorCount]Scissor
	DepthMode DepthMode

	ProgramHandle uint32 // 0 means no program bound
}

// DepthMode is the inferred NDC depth-range convention (spec.md §4.4
// "Depth mode inference").
type DepthMode uint8

const (
	DepthModeZeroToOne DepthMode = iota
	DepthModeNegOneToOne
)

func (m DepthMode) String() string {
	if m == DepthModeNegOneToOne {
		return "-1..1"
	}
	return "0..1"
}

// New returns a zero-valued snapshot. Zero is a legitimate initial state:
// no program bound, no viewports set, everything disabled — matching the
// host's own freshly-created-pipeline defaults.
func New() *Snapshot {
	return &Snapshot{}
}
