package hostvk

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

// The guest enumerations decoded by engine/gpu/regs are raw register
// values with no inherent relationship to Vulkan's. These tables are the
// one place that relationship is made concrete; every other package
// only ever sees the guest-side enums.

var blendFactorTable = [...]vk.BlendFactor{
	vk.BlendFactorZero,
	vk.BlendFactorOne,
	vk.BlendFactorSrcColor,
	vk.BlendFactorOneMinusSrcColor,
	vk.BlendFactorDstColor,
	vk.BlendFactorOneMinusDstColor,
	vk.BlendFactorSrcAlpha,
	vk.BlendFactorOneMinusSrcAlpha,
	vk.BlendFactorDstAlpha,
	vk.BlendFactorOneMinusDstAlpha,
	vk.BlendFactorConstantColor,
	vk.BlendFactorOneMinusConstantColor,
	vk.BlendFactorSrcAlphaSaturate,
}

func blendFactorFromGuest(f regs.BlendFactor) vk.BlendFactor {
	if int(f) < len(blendFactorTable) {
		return blendFactorTable[f]
	}
	return vk.BlendFactorOne
}

var blendOpTable = [...]vk.BlendOp{
	vk.BlendOpAdd,
	vk.BlendOpSubtract,
	vk.BlendOpReverseSubtract,
	vk.BlendOpMin,
	vk.BlendOpMax,
}

func blendOpFromGuest(o regs.BlendOp) vk.BlendOp {
	if int(o) < len(blendOpTable) {
		return blendOpTable[o]
	}
	return vk.BlendOpAdd
}

var compareOpTable = [...]vk.CompareOp{
	vk.CompareOpNever,
	vk.CompareOpLess,
	vk.CompareOpEqual,
	vk.CompareOpLessOrEqual,
	vk.CompareOpGreater,
	vk.CompareOpNotEqual,
	vk.CompareOpGreaterOrEqual,
	vk.CompareOpAlways,
}

func compareOpFromGuest(c regs.CompareFunc) vk.CompareOp {
	if int(c) < len(compareOpTable) {
		return compareOpTable[c]
	}
	return vk.CompareOpAlways
}

func cullModeFromGuest(enable bool, face regs.CullFace) vk.CullModeFlags {
	if !enable {
		return vk.CullModeFlags(vk.CullModeNone)
	}
	switch face {
	case 1:
		return vk.CullModeFlags(vk.CullModeBackBit)
	case 2:
		return vk.CullModeFlags(vk.CullModeFrontAndBack)
	default:
		return vk.CullModeFlags(vk.CullModeFrontBit)
	}
}

func frontFaceFromGuest(face uint8) vk.FrontFace {
	if regs.FrontFace(face) == regs.FrontFaceCW {
		return vk.FrontFaceClockwise
	}
	return vk.FrontFaceCounterClockwise
}

func polygonModeFromGuest(mode uint8) vk.PolygonMode {
	switch mode {
	case 1:
		return vk.PolygonModeLine
	case 2:
		return vk.PolygonModePoint
	default:
		return vk.PolygonModeFill
	}
}

func vertexFormatFromGuest(typ regs.VertexAttribType, components uint8) vk.Format {
	switch typ {
	case regs.VertexAttribTypeSInt:
		switch components {
		case 1:
			return vk.FormatR32Sint
		case 2:
			return vk.FormatR32g32Sint
		case 3:
			return vk.FormatR32g32b32Sint
		default:
			return vk.FormatR32g32b32a32Sint
		}
	case regs.VertexAttribTypeUInt:
		switch components {
		case 1:
			return vk.FormatR32Uint
		case 2:
			return vk.FormatR32g32Uint
		case 3:
			return vk.FormatR32g32b32Uint
		default:
			return vk.FormatR32g32b32a32Uint
		}
	default:
		switch components {
		case 1:
			return vk.FormatR32Sfloat
		case 2:
			return vk.FormatR32g32Sfloat
		case 3:
			return vk.FormatR32g32b32Sfloat
		default:
			return vk.FormatR32g32b32a32Sfloat
		}
	}
}

// vertexInputFromAttribs builds the per-attribute and per-buffer
// descriptions a vk.PipelineVertexInputStateCreateInfo needs from the
// decoded attribute layout (spec.md §4.4 "Vertex attributes"). Constant
// (non-buffer-backed) attributes are skipped; they are supplied to the
// shader as push constants or specialization data, out of scope here.
func vertexInputFromAttribs(attribs [regs.VertexAttribCount]pipeline.VertexAttribLayout) ([]vk.VertexInputAttributeDescription, []vk.VertexInputBindingDescription) {
	attrs := make([]vk.VertexInputAttributeDescription, 0, len(attribs))
	seenBindings := make(map[uint32]bool)
	bindings := make([]vk.VertexInputBindingDescription, 0, len(attribs))

	for i, a := range attribs {
		if a.IsConstant {
			continue
		}
		attrs = append(attrs, vk.VertexInputAttributeDescription{
			Location: uint32(i),
			Binding:  a.BufferIndex,
			Format:   vertexFormatFromGuest(a.Type, a.Components),
			Offset:   a.Offset,
		})
		if !seenBindings[a.BufferIndex] {
			seenBindings[a.BufferIndex] = true
			// Stride is left at 0 here: the guest's per-buffer stride
			// (state/vertexbuffer.go) is forwarded separately through
			// BufferManager.SetVertexBuffer and bound with
			// vk.CmdBindVertexBuffers2's dynamic stride, not baked into
			// the pipeline object.
			bindings = append(bindings, vk.VertexInputBindingDescription{
				Binding:   a.BufferIndex,
				InputRate: vk.VertexInputRateVertex,
			})
		}
	}
	return attrs, bindings
}
