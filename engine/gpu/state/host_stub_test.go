package state

import "github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
import "github.com/spaghettifunk/tegrastate/engine/gpu/regs"

// recordingRenderer is a minimal host.Renderer stub for update-group unit
// tests: SetViewports and SetScissors record their last argument so a test
// can assert on what a callback derived, without a real host API behind
// it; every other setter is a no-op.
type recordingRenderer struct {
	scissors  []pipeline.Scissor
	viewports []pipeline.Viewport
}

func (r *recordingRenderer) SetVertexAttribs(attribs [regs.VertexAttribCount]pipeline.VertexAttribLayout) {}
func (r *recordingRenderer) SetBlendState(index int, desc pipeline.BlendState)                             {}
func (r *recordingRenderer) SetFaceCulling(enable bool, face uint8)                                        {}
func (r *recordingRenderer) SetFrontFace(face uint8)                                                       {}
func (r *recordingRenderer) SetStencilTest(desc pipeline.DepthStencilState)                                {}
func (r *recordingRenderer) SetDepthTest(desc pipeline.DepthStencilState)                                  {}
func (r *recordingRenderer) SetPatchParameters(controlPoints uint32)                                       {}
func (r *recordingRenderer) SetViewports(viewports []pipeline.Viewport)                                    { r.viewports = viewports }
func (r *recordingRenderer) SetScissors(scissors []pipeline.Scissor)                                       { r.scissors = scissors }
func (r *recordingRenderer) SetDepthMode(mode pipeline.DepthMode)                                          {}
func (r *recordingRenderer) SetLogicOpState(enable bool, op uint8)                                         {}
func (r *recordingRenderer) SetDepthClamp(enable bool)                                                     {}
func (r *recordingRenderer) SetPolygonMode(mode uint8)                                                     {}
func (r *recordingRenderer) SetDepthBias(enable bool, constant, clamp, slope float32)                      {}
func (r *recordingRenderer) SetPrimitiveRestart(enable bool)                                               {}
func (r *recordingRenderer) SetLineParameters(width float32, smooth bool)                                  {}
func (r *recordingRenderer) SetRenderTargetColorMasks(masks [regs.BlendTargetCount]uint8)                  {}
func (r *recordingRenderer) SetRasterizerDiscard(enable bool)                                              {}
func (r *recordingRenderer) SetAlphaTest(enable bool, fn uint8, ref float32)                               {}
func (r *recordingRenderer) SetPointParameters(size float32, programPointSizeEnable, spriteEnable bool)    {}
func (r *recordingRenderer) SetUserClipDistance(mask uint8)                                                {}
func (r *recordingRenderer) SetMultisampleState(enable bool, alphaToCoverage bool)                         {}
func (r *recordingRenderer) SetProgram(handle uint32)                                                      {}
func (r *recordingRenderer) SetRenderTargetScale(scale float32)                                            {}
func (r *recordingRenderer) BeginTransformFeedback(topology uint8)                                         {}
func (r *recordingRenderer) EndTransformFeedback()                                                         {}
