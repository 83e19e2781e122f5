package regs

// Word offsets into the register bank (see mirror.go). Each constant is the
// fixed, documented identity key the Dirty Tracker indexes writes by
// (spec.md §3, "Register Mirror"). Offsets are word indices, not byte
// offsets, and are laid out with the gaps a real register file has so that
// new fields can be slotted in later without renumbering existing ones —
// the same spirit as the teacher's VULKAN_MAX_* constants living apart
// from the structs they bound.
const (
	RTControl uint32 = 0x0000

	RTColorBase   uint32 = 0x0010
	RTColorStride uint32 = 8
	RTColorCount  uint32 = 8

	RTDepthBase uint32 = 0x0060

	DepthModeFallback uint32 = 0x0080

	ViewportTransformDisable uint32 = 0x0090

	ViewportBase   uint32 = 0x00A0
	ViewportStride uint32 = 8
	ViewportCount  uint32 = 16

	ScissorBase   uint32 = 0x0140
	ScissorStride uint32 = 5
	ScissorCount  uint32 = 16

	VertexAttribBase   uint32 = 0x01A0
	VertexAttribStride uint32 = 4
	VertexAttribCount  uint32 = 16

	VertexBufferBase   uint32 = 0x0200
	VertexBufferStride uint32 = 8
	VertexBufferCount  uint32 = 16

	BlendIndependent uint32 = 0x02A0
	BlendCommon      uint32 = 0x02A4 // 6 words: srcRGB,dstRGB,opRGB,srcA,dstA,opA
	BlendEnableMask  uint32 = 0x02C0

	BlendPerTargetBase   uint32 = 0x02C4
	BlendPerTargetStride uint32 = 6
	BlendTargetCount     uint32 = 8

	ColorMaskShared uint32 = 0x0300

	ColorMaskBase  uint32 = 0x0304
	ColorMaskCount uint32 = 8

	DepthTest uint32 = 0x0320 // enable, writeEnable, func

	Stencil uint32 = 0x0330 // twoSided, front(func,ref,mask,writemask), back(func,ref,mask,writemask)

	Face uint32 = 0x0350 // cullEnable, cullFace, frontFace

	YControl uint32 = 0x0360

	ClipDistanceEnable uint32 = 0x0364

	ShaderProgramBase uint32 = 0x0370 // addrLo, addrHi

	ShaderStageBase   uint32 = 0x0380
	ShaderStageStride uint32 = 2
	ShaderStageCount  uint32 = 6

	TexturePool uint32 = 0x03A0 // addrLo, addrHi, maxId
	SamplerPool uint32 = 0x03B0 // addrLo, addrHi, maxId

	TextureBufferIndex uint32 = 0x03C0

	TransformFeedbackEnable uint32 = 0x03D0

	TransformFeedbackBufferBase   uint32 = 0x03E0
	TransformFeedbackBufferStride uint32 = 4
	TransformFeedbackBufferCount  uint32 = 4

	PrimitiveRestart uint32 = 0x0410 // enable, index

	LogicOp uint32 = 0x0420 // enable, op

	DepthClampEnable uint32 = 0x0430

	PolygonMode uint32 = 0x0440 // front, back

	DepthBias uint32 = 0x0450 // enable, constantFactor, clamp, slopeFactor

	Line uint32 = 0x0460 // width, smoothEnable

	Point uint32 = 0x0470 // size, programPointSizeEnable, spriteEnable, coordReplace

	AlphaTest uint32 = 0x0480 // enable, func, ref

	Multisample uint32 = 0x0490 // sampleMask, alphaToCoverageEnable, sampleCount

	Tessellation uint32 = 0x04A0 // patchControlPoints, domainType, spacing, outputPrimitive

	RasterizerDiscardEnable uint32 = 0x04B0

	EarlyZForce uint32 = 0x04B1

	// ViewportSwizzleYNegative is a 16-bit mask, one bit per viewport slot:
	// set iff that viewport's Y swizzle axis is configured to NegativeY
	// (spec.md §4.4 "Viewport"). This is independent of YControl's
	// NegateY bit — one is the screen Y-origin convention, the other is
	// per-viewport multi-view axis remapping.
	ViewportSwizzleYNegative uint32 = 0x04B2

	IndexBuffer uint32 = 0x04C0 // addrLo, addrHi, size, type

	DrawTopology uint32 = 0x04D0

	// BankWords is the total size of the register bank. 14-bit word
	// offsets (spec.md §4.1) can address up to 2^14 words; we use far
	// fewer, leaving generous room to grow.
	BankWords uint32 = 0x0600
)
