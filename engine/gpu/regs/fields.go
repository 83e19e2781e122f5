package regs

// VertexAttribType enumerates how a vertex attribute's component bytes are
// interpreted. Unknown encodings decode to VertexAttribTypeNone and the
// Vertex Attribute updater (spec.md §4.4) substitutes RGBA32F.
type VertexAttribType uint8

const (
	VertexAttribTypeNone VertexAttribType = iota
	VertexAttribTypeFloat
	VertexAttribTypeSInt
	VertexAttribTypeUInt
)

// VertexAttrib is one of the 16 decoded vertex attribute descriptors
// (spec.md §4.2, §4.4).
type VertexAttrib struct {
	BufferIndex uint32
	Offset      uint32
	IsConstant  bool
	Type        VertexAttribType
	Components  uint8 // 1..4
}

func (m *Mirror) VertexAttrib(index uint32) VertexAttrib {
	base := VertexAttribBase + index*VertexAttribStride
	packed := m.words[base+3]
	return VertexAttrib{
		BufferIndex: m.words[base+0],
		Offset:      m.words[base+1],
		IsConstant:  m.words[base+2] != 0,
		Type:        VertexAttribType(bits(packed, 0, 2)),
		Components:  uint8(bits(packed, 2, 3)),
	}
}

// VertexBuffer is one of the 16 decoded vertex buffer descriptors
// (spec.md §3, §4.4 "Vertex Buffer").
type VertexBuffer struct {
	Enable     bool
	Address    uint64
	EndAddress uint64
	Stride     uint32
	Divisor    uint32
	Instanced  bool
}

func (m *Mirror) VertexBuffer(index uint32) VertexBuffer {
	base := VertexBufferBase + index*VertexBufferStride
	return VertexBuffer{
		Enable:     m.words[base+0] != 0,
		Address:    m.ReadUint64(base + 1),
		EndAddress: m.ReadUint64(base + 3),
		Stride:     m.words[base+5],
		Divisor:    m.words[base+6],
		Instanced:  m.words[base+7] != 0,
	}
}

// Size returns end_address - address + 1, the raw (unclamped) guest range.
func (vb VertexBuffer) Size() uint64 {
	if vb.EndAddress < vb.Address {
		return 0
	}
	return vb.EndAddress - vb.Address + 1
}

// Viewport is one of the 16 decoded viewport descriptors (spec.md §4.2,
// §4.4 "Viewport").
type Viewport struct {
	TranslateX, TranslateY, TranslateZ float32
	ScaleX, ScaleY, ScaleZ             float32
	DepthNear, DepthFar                float32
}

func (m *Mirror) Viewport(index uint32) Viewport {
	base := ViewportBase + index*ViewportStride
	return Viewport{
		TranslateX: m.ReadFloat32(base + 0),
		TranslateY: m.ReadFloat32(base + 1),
		TranslateZ: m.ReadFloat32(base + 2),
		ScaleX:     m.ReadFloat32(base + 3),
		ScaleY:     m.ReadFloat32(base + 4),
		ScaleZ:     m.ReadFloat32(base + 5),
		DepthNear:  m.ReadFloat32(base + 6),
		DepthFar:   m.ReadFloat32(base + 7),
	}
}

func (m *Mirror) ViewportTransformDisabled() bool {
	return m.words[ViewportTransformDisable] != 0
}

// ViewportSwizzleYNegative reports whether viewport `index`'s Y swizzle
// axis is configured to NegativeY (spec.md §4.4 "Viewport").
func (m *Mirror) ViewportSwizzleYNegative(index uint32) bool {
	return bit(m.words[ViewportSwizzleYNegative], uint(index))
}

// Scissor is one of the 16 decoded scissor descriptors (spec.md §4.2,
// §4.4 "Scissor").
type Scissor struct {
	Enable         bool
	X1, Y1, X2, Y2 uint32
}

func (m *Mirror) Scissor(index uint32) Scissor {
	base := ScissorBase + index*ScissorStride
	return Scissor{
		Enable: m.words[base+0] != 0,
		X1:     m.words[base+1],
		Y1:     m.words[base+2],
		X2:     m.words[base+3],
		Y2:     m.words[base+4],
	}
}

// IsFullWindow reports whether the scissor rectangle equals the full
// 0..0xFFFF x 0..0xFFFF window (spec.md §4.4 "Scissor").
func (s Scissor) IsFullWindow() bool {
	return s.X1 == 0 && s.Y1 == 0 && s.X2 == 0xFFFF && s.Y2 == 0xFFFF
}

// BlendFactor/BlendOp/CompareFunc/StencilOp/CullFace/FrontFace/LogicOpType
// are guest-side enumerations, decoded verbatim and mapped to host
// equivalents by the state updaters (spec.md §9's "bit-packed register
// accessors" guidance: decode once here, interpret downstream).
type BlendFactor uint8
type BlendOp uint8
type CompareFunc uint8
type StencilOp uint8
type CullFace uint8
type FrontFace uint8

const (
	FrontFaceCCW FrontFace = 0
	FrontFaceCW  FrontFace = 1
)
type LogicOpType uint8
type PolygonModeType uint8
type PrimitiveTopology uint8
type IndexType uint8

const (
	IndexTypeU8 IndexType = iota
	IndexTypeU16
	IndexTypeU32
)

type TessDomainType uint8
type TessSpacing uint8
type TessOutputPrimitive uint8

// BlendDesc is a single target's (or the common) blend descriptor
// (spec.md §4.4 "Blend").
type BlendDesc struct {
	Enable        bool
	SrcRGB, DstRGB BlendFactor
	OpRGB         BlendOp
	SrcA, DstA    BlendFactor
	OpA           BlendOp
}

func (m *Mirror) BlendIndependent() bool {
	return m.words[BlendIndependent] != 0
}

func (m *Mirror) blendDescAt(base uint32, enable bool) BlendDesc {
	return BlendDesc{
		Enable: enable,
		SrcRGB: BlendFactor(m.words[base+0]),
		DstRGB: BlendFactor(m.words[base+1]),
		OpRGB:  BlendOp(m.words[base+2]),
		SrcA:   BlendFactor(m.words[base+3]),
		DstA:   BlendFactor(m.words[base+4]),
		OpA:    BlendOp(m.words[base+5]),
	}
}

// BlendCommonDesc returns the shared blend state used for all targets when
// BlendIndependent() is false; target-0's enable bit in BlendEnableMask()
// is broadcast to every target (spec.md §4.4).
func (m *Mirror) BlendCommonDesc() BlendDesc {
	enable := bit(m.words[BlendEnableMask], 0)
	return m.blendDescAt(BlendCommon, enable)
}

func (m *Mirror) BlendEnableMask() uint32 {
	return m.words[BlendEnableMask]
}

// BlendPerTarget returns target `index`'s descriptor, used when
// BlendIndependent() is true.
func (m *Mirror) BlendPerTarget(index uint32) BlendDesc {
	enable := bit(m.words[BlendEnableMask], uint(index))
	return m.blendDescAt(BlendPerTargetBase+index*BlendPerTargetStride, enable)
}

// ColorMask is the decoded 4-bit (RGBA) per-target write mask value.
type ColorMask uint8

func (m *Mirror) ColorMaskShared() bool {
	return m.words[ColorMaskShared] != 0
}

// ColorMask returns the 4-bit (RGBA) write mask for render target `index`.
func (m *Mirror) ColorMask(index uint32) uint8 {
	if m.ColorMaskShared() {
		index = 0
	}
	return uint8(m.words[ColorMaskBase+index])
}

// DepthTestState is the depth-test triplet (spec.md §3).
type DepthTestState struct {
	Enable      bool
	WriteEnable bool
	Func        CompareFunc
}

func (m *Mirror) DepthTest() DepthTestState {
	return DepthTestState{
		Enable:      m.words[DepthTest+0] != 0,
		WriteEnable: m.words[DepthTest+1] != 0,
		Func:        CompareFunc(m.words[DepthTest+2]),
	}
}

// StencilFace is one side's stencil parameters.
type StencilFace struct {
	Func      CompareFunc
	Ref       uint32
	ReadMask  uint32
	WriteMask uint32
}

// StencilState is the decoded stencil-test descriptor (spec.md §4.4
// "Stencil test"): if TwoSided is false, Back is a verbatim copy of
// Front, computed here rather than left to the caller.
type StencilState struct {
	TwoSided bool
	Front    StencilFace
	Back     StencilFace
}

func (m *Mirror) Stencil() StencilState {
	front := StencilFace{
		Func:      CompareFunc(m.words[Stencil+1]),
		Ref:       m.words[Stencil+2],
		ReadMask:  m.words[Stencil+3],
		WriteMask: m.words[Stencil+4],
	}
	twoSided := m.words[Stencil+0] != 0
	back := front
	if twoSided {
		back = StencilFace{
			Func:      CompareFunc(m.words[Stencil+5]),
			Ref:       m.words[Stencil+6],
			ReadMask:  m.words[Stencil+7],
			WriteMask: m.words[Stencil+8],
		}
	}
	return StencilState{TwoSided: twoSided, Front: front, Back: back}
}

// FaceState is the guest face-culling/winding descriptor (spec.md §4.2).
type FaceState struct {
	CullEnable bool
	CullFace   CullFace
	FrontFace  FrontFace
}

func (m *Mirror) Face() FaceState {
	return FaceState{
		CullEnable: m.words[Face+0] != 0,
		CullFace:   CullFace(m.words[Face+1]),
		FrontFace:  FrontFace(m.words[Face+2]),
	}
}

// YControl mirrors the guest's Y-origin/winding flags (spec.md §4.4, §9
// Glossary "Y-negate / Y-control").
type YControlState struct {
	NegateY          bool
	TriangleRastFlip bool
}

func (m *Mirror) YControl() YControlState {
	w := m.words[YControl]
	return YControlState{
		NegateY:          bit(w, 0),
		TriangleRastFlip: bit(w, 1),
	}
}

func (m *Mirror) ClipDistanceEnableMask() uint8 {
	return uint8(m.words[ClipDistanceEnable])
}

// ShaderStageState is one of the six shader stage slots (spec.md §4.2,
// §4.4 "Shader").
type ShaderStageState struct {
	Enable bool
	Offset uint32
}

func (m *Mirror) ShaderProgramBaseAddress() uint64 {
	return m.ReadUint64(ShaderProgramBase)
}

func (m *Mirror) ShaderStage(index uint32) ShaderStageState {
	base := ShaderStageBase + index*ShaderStageStride
	return ShaderStageState{
		Enable: m.words[base+0] != 0,
		Offset: m.words[base+1],
	}
}

// PoolDescriptor is shared shape for the texture and sampler pools
// (spec.md §4.2).
type PoolDescriptor struct {
	Address uint64
	MaxID   uint32
}

func (m *Mirror) TexturePoolDescriptor() PoolDescriptor {
	return PoolDescriptor{Address: m.ReadUint64(TexturePool), MaxID: m.words[TexturePool+2]}
}

func (m *Mirror) SamplerPoolDescriptor() PoolDescriptor {
	return PoolDescriptor{Address: m.ReadUint64(SamplerPool), MaxID: m.words[SamplerPool+2]}
}

func (m *Mirror) TextureBufferIndex() uint32 {
	return m.words[TextureBufferIndex]
}

func (m *Mirror) TransformFeedbackEnable() bool {
	return m.words[TransformFeedbackEnable] != 0
}

// TransformFeedbackBuffer is one of the 4 decoded TF buffer descriptors.
type TransformFeedbackBuffer struct {
	Enable  bool
	Address uint64
	Size    uint32
}

func (m *Mirror) TransformFeedbackBuffer(index uint32) TransformFeedbackBuffer {
	base := TransformFeedbackBufferBase + index*TransformFeedbackBufferStride
	return TransformFeedbackBuffer{
		Enable:  m.words[base+0] != 0,
		Address: m.ReadUint64(base + 1),
		Size:    m.words[base+3],
	}
}

// PrimitiveRestartState (spec.md §3, §4.3, §4.4).
type PrimitiveRestartState struct {
	Enable bool
	Index  uint32
}

func (m *Mirror) PrimitiveRestartState() PrimitiveRestartState {
	return PrimitiveRestartState{
		Enable: m.words[PrimitiveRestart+0] != 0,
		Index:  m.words[PrimitiveRestart+1],
	}
}

func (m *Mirror) LogicOpEnable() bool {
	return m.words[LogicOp+0] != 0
}

func (m *Mirror) LogicOpValue() LogicOpType {
	return LogicOpType(m.words[LogicOp+1])
}

func (m *Mirror) DepthClampEnable() bool {
	return m.words[DepthClampEnable] != 0
}

// PolygonModeState: front/back face rasterization mode (spec.md §4.4
// "Polygon mode").
type PolygonModeState struct {
	Front, Back PolygonModeType
}

func (m *Mirror) PolygonMode() PolygonModeState {
	return PolygonModeState{
		Front: PolygonModeType(m.words[PolygonMode+0]),
		Back:  PolygonModeType(m.words[PolygonMode+1]),
	}
}

// DepthBiasState (spec.md §4.4 "Depth bias").
type DepthBiasState struct {
	Enable          bool
	ConstantFactor  float32
	Clamp           float32
	SlopeFactor     float32
}

func (m *Mirror) DepthBias() DepthBiasState {
	return DepthBiasState{
		Enable:         m.words[DepthBias+0] != 0,
		ConstantFactor: m.ReadFloat32(DepthBias + 1),
		Clamp:          m.ReadFloat32(DepthBias + 2),
		SlopeFactor:    m.ReadFloat32(DepthBias + 3),
	}
}

// LineState (spec.md §4.4 "Line").
type LineState struct {
	Width        float32
	SmoothEnable bool
}

func (m *Mirror) Line() LineState {
	return LineState{
		Width:        m.ReadFloat32(Line + 0),
		SmoothEnable: m.words[Line+1] != 0,
	}
}

// PointState (spec.md §9 open question (a): PointCoordReplace's bit 2
// meaning is a documented guess, preserved verbatim here).
type PointState struct {
	Size                  float32
	ProgramPointSizeEnable bool
	SpriteEnable          bool
	CoordReplace          uint32
}

func (m *Mirror) Point() PointState {
	return PointState{
		Size:                   m.ReadFloat32(Point + 0),
		ProgramPointSizeEnable: m.words[Point+1] != 0,
		SpriteEnable:           m.words[Point+2] != 0,
		CoordReplace:           m.words[Point+3],
	}
}

// AlphaTestState (spec.md §3 "alpha-test (enable/func/ref)").
type AlphaTestState struct {
	Enable bool
	Func   CompareFunc
	Ref    float32
}

func (m *Mirror) AlphaTest() AlphaTestState {
	return AlphaTestState{
		Enable: m.words[AlphaTest+0] != 0,
		Func:   CompareFunc(m.words[AlphaTest+1]),
		Ref:    m.ReadFloat32(AlphaTest + 2),
	}
}

// MultisampleState (spec.md §4.4 "Render targets" sample-per-axis counts).
type MultisampleState struct {
	SampleMask            uint32
	AlphaToCoverageEnable bool
	SampleCount           uint32
}

func (m *Mirror) Multisample() MultisampleState {
	return MultisampleState{
		SampleMask:            m.words[Multisample+0],
		AlphaToCoverageEnable: m.words[Multisample+1] != 0,
		SampleCount:           m.words[Multisample+2],
	}
}

// TessellationState (spec.md §3 "tessellation mode").
type TessellationState struct {
	PatchControlPoints uint32
	Domain             TessDomainType
	Spacing            TessSpacing
	OutputPrimitive    TessOutputPrimitive
}

func (m *Mirror) Tessellation() TessellationState {
	return TessellationState{
		PatchControlPoints: m.words[Tessellation+0],
		Domain:             TessDomainType(m.words[Tessellation+1]),
		Spacing:            TessSpacing(m.words[Tessellation+2]),
		OutputPrimitive:    TessOutputPrimitive(m.words[Tessellation+3]),
	}
}

func (m *Mirror) RasterizerDiscardEnable() bool {
	return m.words[RasterizerDiscardEnable] != 0
}

// EarlyZForce reports whether the guest forces an early-Z/early
// fragment test regardless of what the shader's own discard behavior
// would otherwise require (spec.md §3 "early-Z force").
func (m *Mirror) EarlyZForce() bool {
	return m.words[EarlyZForce] != 0
}

// IndexBufferState (spec.md §3 "vertex-buffer sizing depends on ... index
// type").
type IndexBufferState struct {
	Address uint64
	Size    uint32
	Type    IndexType
}

func (m *Mirror) IndexBuffer() IndexBufferState {
	return IndexBufferState{
		Address: m.ReadUint64(IndexBuffer),
		Size:    m.words[IndexBuffer+2],
		Type:    IndexType(m.words[IndexBuffer+3]),
	}
}

func (m *Mirror) DrawTopologyValue() PrimitiveTopology {
	return PrimitiveTopology(m.words[DrawTopology])
}

func (m *Mirror) DepthModeFallback() uint32 {
	return m.words[DepthModeFallback] & 1
}

// RTColorTarget is one of the 8 decoded color render-target descriptors
// (spec.md §4.4 "Render targets").
type RTColorTarget struct {
	Address    uint64
	Width      uint32
	Height     uint32
	Format     uint32
	TileMode   uint32
	ArrayLayers uint32
	BaseArray  uint32
}

func (m *Mirror) RTColorTarget(index uint32) RTColorTarget {
	base := RTColorBase + index*RTColorStride
	return RTColorTarget{
		Address:     m.ReadUint64(base),
		Width:       m.words[base+2],
		Height:      m.words[base+3],
		Format:      m.words[base+4],
		TileMode:    m.words[base+5],
		ArrayLayers: m.words[base+6],
		BaseArray:   m.words[base+7],
	}
}

// Enabled implements spec.md §9 open question (b): `width == 0` is taken as
// a disabled signal alongside `format == 0`, inherited as behavior
// without being otherwise documented.
func (rt RTColorTarget) Enabled() bool {
	return rt.Format != 0 && rt.Width != 0
}

// RTDepthTarget is the depth-stencil render-target descriptor.
type RTDepthTarget struct {
	Enable      bool
	Address     uint64
	Width       uint32
	Height      uint32
	Format      uint32
	TileMode    uint32
	ArrayLayers uint32
	BaseArray   uint32
}

func (m *Mirror) RTDepthTarget() RTDepthTarget {
	base := RTDepthBase
	return RTDepthTarget{
		Enable:      m.words[base+4] != 0, // format word doubles as enable like color targets
		Address:     m.ReadUint64(base),
		Width:       m.words[base+2],
		Height:      m.words[base+3],
		Format:      m.words[base+4],
		TileMode:    m.words[base+5],
		ArrayLayers: m.words[base+6],
		BaseArray:   m.words[base+7],
	}
}

// RTControlState decodes the render-target permutation map and active
// count (spec.md §4.4 "iterate 8 color slots via the permutation map in
// RT-control").
type RTControlState struct {
	Count       uint32
	Permutation [8]uint32
}

func (m *Mirror) RTControl() RTControlState {
	w := m.words[RTControl]
	s := RTControlState{Count: bits(w, 0, 4)}
	for i := uint(0); i < 8; i++ {
		s.Permutation[i] = bits(w, 4+i*3, 3)
	}
	return s
}

// UnpackCount clamps Count to the number of color slots actually present,
// matching the contract named in spec.md §4.4.
func (s RTControlState) UnpackCount() uint32 {
	if s.Count > RTColorCount {
		return RTColorCount
	}
	return s.Count
}
