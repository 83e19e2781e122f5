// gpustate-inspect loads a raw register-bank dump and prints the
// resolved Pipeline Snapshot it translates to, for offline debugging of
// a captured guest GPU channel state (spec.md §2's Pipeline Snapshot
// cache is otherwise only ever observed indirectly through host-API
// calls).
package main

import (
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/spaghettifunk/tegrastate/engine/core"
	"github.com/spaghettifunk/tegrastate/engine/gpu/channel"
	"github.com/spaghettifunk/tegrastate/engine/gpu/draw"
	"github.com/spaghettifunk/tegrastate/engine/gpu/fingerprint"
	"github.com/spaghettifunk/tegrastate/engine/gpu/host"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
	"github.com/spaghettifunk/tegrastate/engine/gpu/shader"
)

func main() {
	dumpPath := flag.String("dump", "", "path to a raw little-endian uint32 register-bank dump")
	policyPath := flag.String("policy", "", "path to a host-family policy TOML file (optional)")
	flag.Parse()

	if *dumpPath == "" {
		fmt.Fprintln(os.Stderr, "usage: gpustate-inspect -dump <file> [-policy <file>]")
		os.Exit(2)
	}

	ch, err := channel.New(channel.Deps{
		Renderer:   noopRenderer{},
		Textures:   noopTextures{},
		Buffers:    noopBuffers{},
		Memory:     noopMemory{},
		Cache:      noopCache{},
		PolicyPath: *policyPath,
	})
	if err != nil {
		core.LogFatal("constructing channel: %v", err)
	}
	defer ch.Close()

	if err := loadDump(ch, *dumpPath); err != nil {
		core.LogFatal("loading dump: %v", err)
	}

	fmt.Fprintf(os.Stderr, "groups dirtied by dump: %v\n", ch.Context().Tracker.DirtyGroups())

	if err := ch.Draw(draw.Call{}); err != nil {
		core.LogFatal("running draw preamble: %v", err)
	}

	out, err := json.MarshalIndent(ch.Context().Snapshot, "", "  ")
	if err != nil {
		core.LogFatal("marshaling snapshot: %v", err)
	}
	fmt.Println(string(out))
}

// loadDump reads a raw dump of regs.BankWords little-endian uint32
// words and replays it as register writes, so the Dirty Tracker sees
// the same sequence of SetDirty calls a live guest would produce.
func loadDump(ch *channel.Channel, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	count := uint32(len(data) / 4)
	if count > regs.BankWords {
		count = regs.BankWords
	}
	for i := uint32(0); i < count; i++ {
		value := binary.LittleEndian.Uint32(data[i*4:])
		ch.Write(i, value)
	}
	return nil
}

// The no-op host collaborators below let this tool exercise every
// update group without a live Vulkan device; none of their return
// values feed back into the printed snapshot.

type noopRenderer struct{}

func (noopRenderer) SetVertexAttribs(attribs [regs.VertexAttribCount]pipeline.VertexAttribLayout) {}
func (noopRenderer) SetBlendState(index int, desc pipeline.BlendState)                             {}
func (noopRenderer) SetFaceCulling(enable bool, face uint8)                                        {}
func (noopRenderer) SetFrontFace(face uint8)                                                       {}
func (noopRenderer) SetStencilTest(desc pipeline.DepthStencilState)                                {}
func (noopRenderer) SetDepthTest(desc pipeline.DepthStencilState)                                  {}
func (noopRenderer) SetPatchParameters(controlPoints uint32)                                       {}
func (noopRenderer) SetViewports(viewports []pipeline.Viewport)                                    {}
func (noopRenderer) SetScissors(scissors []pipeline.Scissor)                                       {}
func (noopRenderer) SetDepthMode(mode pipeline.DepthMode)                                          {}
func (noopRenderer) SetLogicOpState(enable bool, op uint8)                                         {}
func (noopRenderer) SetDepthClamp(enable bool)                                                     {}
func (noopRenderer) SetPolygonMode(mode uint8)                                                     {}
func (noopRenderer) SetDepthBias(enable bool, constant, clamp, slope float32)                      {}
func (noopRenderer) SetPrimitiveRestart(enable bool)                                               {}
func (noopRenderer) SetLineParameters(width float32, smooth bool)                                  {}
func (noopRenderer) SetRenderTargetColorMasks(masks [regs.BlendTargetCount]uint8)                  {}
func (noopRenderer) SetRasterizerDiscard(enable bool)                                              {}
func (noopRenderer) SetAlphaTest(enable bool, fn uint8, ref float32)                               {}
func (noopRenderer) SetPointParameters(size float32, programPointSizeEnable, spriteEnable bool)    {}
func (noopRenderer) SetUserClipDistance(mask uint8)                                                {}
func (noopRenderer) SetMultisampleState(enable bool, alphaToCoverage bool)                         {}
func (noopRenderer) SetProgram(handle uint32)                                                      {}
func (noopRenderer) SetRenderTargetScale(scale float32)                                            {}
func (noopRenderer) BeginTransformFeedback(topology uint8)                                         {}
func (noopRenderer) EndTransformFeedback()                                                         {}

type noopTextures struct{}

func (noopTextures) SetRenderTargetColor(index int, format, width, height, samplesX, samplesY uint32, layered bool) (host.TextureBindResult, error) {
	return host.TextureBindResult{}, nil
}
func (noopTextures) SetRenderTargetDepth(format, width, height, samplesX, samplesY uint32, layered bool) (host.TextureBindResult, error) {
	return host.TextureBindResult{}, nil
}
func (noopTextures) SetClipRegion(width, height uint32)      {}
func (noopTextures) RentTextureBindings(stage int, count int) {}
func (noopTextures) RentImageBindings(stage int, count int)   {}
func (noopTextures) SetMaxBindings(stage int, textures, images int) {}
func (noopTextures) SetSamplerPool(base uint64, maxID uint32) {}
func (noopTextures) SetTexturePool(base uint64, maxID uint32) {}
func (noopTextures) CommitGraphicsBindings(key fingerprint.Key) (host.CommitResult, error) {
	return host.CommitResult{}, nil
}
func (noopTextures) UpdateRenderTargetScale(scale float32) {}

type noopBuffers struct{}

func (noopBuffers) SetVertexBuffer(index int, binding pipeline.VertexBufferBinding)                  {}
func (noopBuffers) SetIndexBuffer(address uint64, size uint64, indexType uint8)                      {}
func (noopBuffers) SetGraphicsStorageBuffer(stage int, slot int, binding host.StorageBufferBinding)  {}
func (noopBuffers) SetTransformFeedbackBuffer(index int, address uint64, size uint64)                {}
func (noopBuffers) SetGraphicsStorageBufferBindings(stage int, count int)                            {}
func (noopBuffers) SetGraphicsUniformBufferBindings(stage int, count int)                            {}
func (noopBuffers) CommitGraphicsBindings() error                                                    { return nil }

type noopMemory struct{}

func (noopMemory) ReadStorageBufferDescriptor(addr uint64) (host.StorageBufferBinding, error) {
	return host.StorageBufferBinding{}, nil
}

type noopCache struct{}

func (noopCache) GetGraphicsShader(pool fingerprint.PoolKey, key fingerprint.Key, addresses shader.StageAddresses) (host.ProgramInfo, error) {
	return host.ProgramInfo{}, nil
}
