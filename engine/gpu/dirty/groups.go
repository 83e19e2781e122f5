package dirty

// Group indexes the 27 update groups named in spec.md §2/§4.4. Ascending
// numeric order is a contract: Tracker.Update visits groups in this order,
// and that order encodes the cross-group dependencies spec.md §4.4 and §5
// describe (blend/depth/stencil/face/etc. before Shader, Shader before
// Render-Target, Render-Target before a Scissor re-run on scale change).
//
// Five groups are exported as named constants because other code forces
// them dirty explicitly (spec.md §3 "Update Group"): Shader, Rasterizer,
// Scissor, VertexBuffer, PrimitiveRestart.
type Group uint8

const (
	GroupVertexBuffer Group = iota
	GroupVertexAttrib
	GroupBlend
	GroupFace
	GroupStencil
	GroupDepth
	GroupTessellation
	GroupViewport
	GroupLogicOp
	GroupDepthClamp
	GroupPolygonMode
	GroupDepthBias
	GroupPrimitiveRestart
	GroupLine
	GroupColorMask
	GroupRasterizer
	GroupAlphaTest
	GroupSamplerPool
	GroupTexturePool
	GroupPoint
	GroupIndexBuffer
	GroupMultisample
	GroupUserClip
	GroupScissor
	GroupTransformFeedback
	// Shader must run after every piece of state it specializes on
	// (spec.md §4.4): every group above this line is blend/viewport/
	// depth/stencil/face-class state, and GroupShader sits right after
	// them so its pipeline-descriptor snapshot read is final.
	GroupShader
	// RenderTarget depends on the bound program's writes_rt_layer flag
	// (spec.md §4.4), so it must run after GroupShader.
	GroupRenderTarget

	// GroupCount is the number of update groups. spec.md §4.1 bounds this
	// at 64 so the dirty bitmap fits a single uint64.
	GroupCount
)

// String names match the updater file names under engine/gpu/state, for
// logging.
func (g Group) String() string {
	switch g {
	case GroupVertexBuffer:
		return "vertex-buffer"
	case GroupVertexAttrib:
		return "vertex-attrib"
	case GroupBlend:
		return "blend"
	case GroupFace:
		return "face"
	case GroupStencil:
		return "stencil"
	case GroupDepth:
		return "depth"
	case GroupTessellation:
		return "tessellation"
	case GroupViewport:
		return "viewport"
	case GroupLogicOp:
		return "logic-op"
	case GroupDepthClamp:
		return "depth-clamp"
	case GroupPolygonMode:
		return "polygon-mode"
	case GroupDepthBias:
		return "depth-bias"
	case GroupPrimitiveRestart:
		return "primitive-restart"
	case GroupLine:
		return "line"
	case GroupColorMask:
		return "color-mask"
	case GroupRasterizer:
		return "rasterizer"
	case GroupAlphaTest:
		return "alpha-test"
	case GroupSamplerPool:
		return "sampler-pool"
	case GroupTexturePool:
		return "texture-pool"
	case GroupPoint:
		return "point"
	case GroupIndexBuffer:
		return "index-buffer"
	case GroupMultisample:
		return "multisample"
	case GroupUserClip:
		return "user-clip"
	case GroupScissor:
		return "scissor"
	case GroupTransformFeedback:
		return "transform-feedback"
	case GroupShader:
		return "shader"
	case GroupRenderTarget:
		return "render-target"
	default:
		return "unknown-group"
	}
}
