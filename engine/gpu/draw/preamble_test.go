package draw

import (
	"testing"

	"github.com/spaghettifunk/tegrastate/engine/core"
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/fingerprint"
	"github.com/spaghettifunk/tegrastate/engine/gpu/host"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
	"github.com/spaghettifunk/tegrastate/engine/gpu/shader"
	"github.com/spaghettifunk/tegrastate/engine/gpu/state"
)

// recordingRenderer only tracks the two transform-feedback edges; every
// other Renderer method is a no-op, matching cmd/gpustate-inspect's stub.
type recordingRenderer struct {
	beginCalls []uint8
	endCalls   int
}

func (r *recordingRenderer) SetVertexAttribs(attribs [regs.VertexAttribCount]pipeline.VertexAttribLayout) {}
func (r *recordingRenderer) SetBlendState(index int, desc pipeline.BlendState)                            {}
func (r *recordingRenderer) SetFaceCulling(enable bool, face uint8)                                       {}
func (r *recordingRenderer) SetFrontFace(face uint8)                                                      {}
func (r *recordingRenderer) SetStencilTest(desc pipeline.DepthStencilState)                               {}
func (r *recordingRenderer) SetDepthTest(desc pipeline.DepthStencilState)                                 {}
func (r *recordingRenderer) SetPatchParameters(controlPoints uint32)                                      {}
func (r *recordingRenderer) SetViewports(viewports []pipeline.Viewport)                                   {}
func (r *recordingRenderer) SetScissors(scissors []pipeline.Scissor)                                      {}
func (r *recordingRenderer) SetDepthMode(mode pipeline.DepthMode)                                          {}
func (r *recordingRenderer) SetLogicOpState(enable bool, op uint8)                                        {}
func (r *recordingRenderer) SetDepthClamp(enable bool)                                                    {}
func (r *recordingRenderer) SetPolygonMode(mode uint8)                                                    {}
func (r *recordingRenderer) SetDepthBias(enable bool, constant, clamp, slope float32)                     {}
func (r *recordingRenderer) SetPrimitiveRestart(enable bool)                                              {}
func (r *recordingRenderer) SetLineParameters(width float32, smooth bool)                                 {}
func (r *recordingRenderer) SetRenderTargetColorMasks(masks [regs.BlendTargetCount]uint8)                 {}
func (r *recordingRenderer) SetRasterizerDiscard(enable bool)                                             {}
func (r *recordingRenderer) SetAlphaTest(enable bool, fn uint8, ref float32)                              {}
func (r *recordingRenderer) SetPointParameters(size float32, programPointSizeEnable, spriteEnable bool)   {}
func (r *recordingRenderer) SetUserClipDistance(mask uint8)                                               {}
func (r *recordingRenderer) SetMultisampleState(enable bool, alphaToCoverage bool)                        {}
func (r *recordingRenderer) SetProgram(handle uint32)                                                     {}
func (r *recordingRenderer) SetRenderTargetScale(scale float32)                                           {}
func (r *recordingRenderer) BeginTransformFeedback(topology uint8) {
	r.beginCalls = append(r.beginCalls, topology)
}
func (r *recordingRenderer) EndTransformFeedback() {
	r.endCalls++
}

type stubTextures struct{}

func (stubTextures) SetRenderTargetColor(index int, format, width, height, samplesX, samplesY uint32, layered bool) (host.TextureBindResult, error) {
	return host.TextureBindResult{}, nil
}
func (stubTextures) SetRenderTargetDepth(format, width, height, samplesX, samplesY uint32, layered bool) (host.TextureBindResult, error) {
	return host.TextureBindResult{}, nil
}
func (stubTextures) SetClipRegion(width, height uint32)             {}
func (stubTextures) RentTextureBindings(stage int, count int)       {}
func (stubTextures) RentImageBindings(stage int, count int)         {}
func (stubTextures) SetMaxBindings(stage int, textures, images int) {}
func (stubTextures) SetSamplerPool(base uint64, maxID uint32)       {}
func (stubTextures) SetTexturePool(base uint64, maxID uint32)       {}
func (stubTextures) CommitGraphicsBindings(key fingerprint.Key) (host.CommitResult, error) {
	return host.CommitResult{}, nil
}
func (stubTextures) UpdateRenderTargetScale(scale float32) {}

type stubBuffers struct{}

func (stubBuffers) SetVertexBuffer(index int, binding pipeline.VertexBufferBinding)                 {}
func (stubBuffers) SetIndexBuffer(address uint64, size uint64, indexType uint8)                     {}
func (stubBuffers) SetGraphicsStorageBuffer(stage int, slot int, binding host.StorageBufferBinding) {}
func (stubBuffers) SetTransformFeedbackBuffer(index int, address uint64, size uint64)               {}
func (stubBuffers) SetGraphicsStorageBufferBindings(stage int, count int)                           {}
func (stubBuffers) SetGraphicsUniformBufferBindings(stage int, count int)                           {}
func (stubBuffers) CommitGraphicsBindings() error                                                   { return nil }

type stubMemory struct{}

func (stubMemory) ReadStorageBufferDescriptor(addr uint64) (host.StorageBufferBinding, error) {
	return host.StorageBufferBinding{}, nil
}

// stubCache returns a fixed ProgramInfo regardless of the fingerprint it
// is queried with; tests mutate the Mirror afterwards to desynchronize
// the bound program's key from the freshly built one.
type stubCache struct{ info host.ProgramInfo }

func (c stubCache) GetGraphicsShader(pool fingerprint.PoolKey, key fingerprint.Key, addrs shader.StageAddresses) (host.ProgramInfo, error) {
	return c.info, nil
}

func newTestPreamble(renderer *recordingRenderer) (*Preamble, *state.Context) {
	ctx := state.New(
		regs.NewMirror(), mustTracker(), pipeline.New(), core.Policy{},
		renderer, stubTextures{}, stubBuffers{}, stubMemory{},
		shader.NewCoordinator(stubCache{}),
	)
	return New(ctx), ctx
}

func mustTracker() *dirty.Tracker {
	t, err := dirty.NewTracker(regs.BankWords)
	if err != nil {
		panic(err)
	}
	return t
}

func countingUpdater(n *int) dirty.Updater {
	return func() error {
		*n++
		return nil
	}
}

func TestDrawForcesVertexBufferAndPrimitiveRestartOnIndexedTransition(t *testing.T) {
	p, c := newTestPreamble(&recordingRenderer{})
	c.Policy.PrimitiveRestartTracksIndexedMode = true

	var vbCount, prCount int
	c.Tracker.RegisterUpdater(dirty.GroupVertexBuffer, countingUpdater(&vbCount))
	c.Tracker.RegisterUpdater(dirty.GroupPrimitiveRestart, countingUpdater(&prCount))

	// First draw establishes the non-indexed baseline; the scratch's zero
	// value already reads as non-indexed, so this must not force anything.
	if err := p.Draw(Call{Indexed: false}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if vbCount != 0 || prCount != 0 {
		t.Fatalf("expected no forced updates on the baseline draw, got vb=%d pr=%d", vbCount, prCount)
	}

	// Indexed/non-indexed transition (spec.md §8 boundary scenario 1).
	if err := p.Draw(Call{Indexed: true}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if vbCount != 1 || prCount != 1 {
		t.Fatalf("expected one forced update each after the transition, got vb=%d pr=%d", vbCount, prCount)
	}

	// Staying indexed with no index-type/first-vertex change must not
	// force VertexBuffer again.
	if err := p.Draw(Call{Indexed: true}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if vbCount != 1 {
		t.Fatalf("expected no further forced VertexBuffer update, got vb=%d", vbCount)
	}
}

func TestDrawDoesNotForcePrimitiveRestartWhenPolicyDisablesTracking(t *testing.T) {
	p, c := newTestPreamble(&recordingRenderer{})
	c.Policy.PrimitiveRestartTracksIndexedMode = false

	var prCount int
	c.Tracker.RegisterUpdater(dirty.GroupPrimitiveRestart, countingUpdater(&prCount))

	if err := p.Draw(Call{Indexed: false}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := p.Draw(Call{Indexed: true}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if prCount != 0 {
		t.Fatalf("expected PrimitiveRestart not forced when the policy disables tracking, got %d", prCount)
	}
}

func TestDrawForcesVertexBufferOnIndexTypeOrFirstVertexChange(t *testing.T) {
	p, c := newTestPreamble(&recordingRenderer{})

	var vbCount int
	c.Tracker.RegisterUpdater(dirty.GroupVertexBuffer, countingUpdater(&vbCount))

	if err := p.Draw(Call{Indexed: true, IndexType: regs.IndexType(0), FirstVertex: 0}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	vbCount = 0 // the indexed transition itself already forced this once

	if err := p.Draw(Call{Indexed: true, IndexType: regs.IndexType(1), FirstVertex: 0}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if vbCount != 1 {
		t.Fatalf("expected index-type change to force VertexBuffer, got %d", vbCount)
	}

	vbCount = 0
	if err := p.Draw(Call{Indexed: true, IndexType: regs.IndexType(1), FirstVertex: 4}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if vbCount != 1 {
		t.Fatalf("expected first-vertex change to force VertexBuffer, got %d", vbCount)
	}
}

func TestDrawTransformFeedbackEdges(t *testing.T) {
	renderer := &recordingRenderer{}
	p, c := newTestPreamble(renderer)

	// false -> true edge: step 7 begins transform feedback with the
	// draw's topology, after the dirty groups have run.
	c.Mirror.Write(regs.TransformFeedbackEnable, 1)
	if err := p.Draw(Call{Topology: 4}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(renderer.beginCalls) != 1 || renderer.beginCalls[0] != 4 {
		t.Fatalf("expected one BeginTransformFeedback(4), got %v", renderer.beginCalls)
	}
	if renderer.endCalls != 0 {
		t.Fatalf("expected no EndTransformFeedback yet, got %d", renderer.endCalls)
	}

	// Staying enabled must not re-trigger either edge.
	if err := p.Draw(Call{Topology: 4}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(renderer.beginCalls) != 1 || renderer.endCalls != 0 {
		t.Fatalf("expected no additional edge calls while TF stays enabled, got begin=%v end=%d", renderer.beginCalls, renderer.endCalls)
	}

	// true -> false edge: step 4 ends transform feedback before the dirty
	// groups run.
	c.Mirror.Write(regs.TransformFeedbackEnable, 0)
	if err := p.Draw(Call{}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if renderer.endCalls != 1 {
		t.Fatalf("expected one EndTransformFeedback, got %d", renderer.endCalls)
	}
	if len(renderer.beginCalls) != 1 {
		t.Fatalf("expected no additional BeginTransformFeedback, got %v", renderer.beginCalls)
	}
}

func TestDrawForcesShaderOnFingerprintIncompatibility(t *testing.T) {
	p, c := newTestPreamble(&recordingRenderer{})

	var shaderCount int
	c.Tracker.RegisterUpdater(dirty.GroupShader, countingUpdater(&shaderCount))

	// No program bound yet: step 1 must not force anything (Compatible is
	// trivially false, but there's nothing to desynchronize from).
	if err := p.Draw(Call{}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if shaderCount != 0 {
		t.Fatalf("expected no forced Shader update with nothing bound, got %d", shaderCount)
	}

	// Bind a program against the current (all-zero) fingerprint.
	if _, err := c.Shader.Resolve(state.BuildPoolKey(c), state.BuildKey(c), shader.StageAddresses{}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Desynchronize the live fingerprint from the bound one.
	c.Mirror.Write(regs.EarlyZForce, 1)

	if err := p.Draw(Call{}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if shaderCount != 1 {
		t.Fatalf("expected the fingerprint mismatch to force one Shader update, got %d", shaderCount)
	}

	// Drawing again with the fingerprint still desynchronized from the
	// stale bound key (Resolve was never re-run) forces it again.
	if err := p.Draw(Call{}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if shaderCount != 2 {
		t.Fatalf("expected a second forced Shader update, got %d", shaderCount)
	}
}
