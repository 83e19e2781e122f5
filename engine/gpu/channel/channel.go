// Package channel wires one GPU channel's collaborators together: the
// Register Mirror, Dirty Tracker, Pipeline Snapshot, Shader Coordinator,
// and Draw Preamble scratch state (spec.md §2 "one instance of the whole
// pipeline per guest GPU channel"). It is the construction root a caller
// embedding the translator uses; none of the state/dirty/draw packages
// know about each other's wiring, this package is where that happens.
package channel

import (
	"time"

	"github.com/google/uuid"

	"github.com/spaghettifunk/tegrastate/engine/core"
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/draw"
	"github.com/spaghettifunk/tegrastate/engine/gpu/host"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
	"github.com/spaghettifunk/tegrastate/engine/gpu/shader"
	"github.com/spaghettifunk/tegrastate/engine/gpu/state"
)

// Channel is one guest GPU channel's worth of translator state. The
// teacher identifies long-lived engine objects (materials, geometries)
// by small integer handles minted from a shared table; a channel is
// identified the same way the teacher's scene objects are named when
// there's no natural integer to reuse — a generated UUID.
type Channel struct {
	ID uuid.UUID

	ctx      *state.Context
	preamble *draw.Preamble
	metrics  *core.DrawMetrics
	policy   *core.PolicyWatcher
}

// Deps collects the host-side collaborators a Channel forwards pipeline
// state to. Exactly one concrete implementation of each exists per host
// backend (spec.md §2); engine/gpu/hostvk supplies the Vulkan one.
type Deps struct {
	Renderer host.Renderer
	Textures host.TextureManager
	Buffers  host.BufferManager
	Memory   host.GuestMemory
	Cache    shader.Cache

	// PolicyPath is the host-family policy TOML file to load and
	// hot-reload (engine/core/config.go's PolicyWatcher). Empty means
	// DefaultPolicy with no file watch.
	PolicyPath string
}

// New constructs a channel: a zeroed Register Mirror, a Dirty Tracker
// sized for the Mirror's bank, a Pipeline Snapshot, a Shader Coordinator
// bound to the supplied cache, and a Draw Preamble tying them together
// with the host collaborators. Every update group is registered before
// the first Draw can run. The host-family policy file is loaded once
// here and, if PolicyPath is set, watched for changes for the lifetime
// of the channel (spec.md §2a "Configuration").
func New(deps Deps) (*Channel, error) {
	tracker, err := dirty.NewTracker(regs.BankWords)
	if err != nil {
		return nil, err
	}

	pw, err := core.NewPolicyWatcher(deps.PolicyPath, nil)
	if err != nil {
		return nil, err
	}

	ctx := state.New(
		regs.NewMirror(), tracker, pipeline.New(), pw.Policy(),
		deps.Renderer, deps.Textures, deps.Buffers, deps.Memory,
		shader.NewCoordinator(deps.Cache),
	)
	ctx.RegisterUpdaters()

	return &Channel{
		ID:       uuid.New(),
		ctx:      ctx,
		preamble: draw.New(ctx),
		metrics:  core.NewDrawMetrics(),
		policy:   pw,
	}, nil
}

// Close stops the channel's policy file watcher, if any.
func (ch *Channel) Close() error {
	return ch.policy.Close()
}

// Write stores a raw register write and marks every update group that
// depends on it dirty (spec.md §6 "Upward": "mark_dirty(offset)").
func (ch *Channel) Write(offset uint32, value uint32) {
	ch.ctx.Mirror.Write(offset, value)
	ch.ctx.Tracker.SetDirty(offset)
}

// MarkAllDirty marks every update group dirty (spec.md §6 "Upward":
// "mark_all_dirty()"), without running them — the next Update/UpdateAll
// call (typically the Draw Preamble's step 5) is what runs them.
func (ch *Channel) MarkAllDirty() {
	ch.ctx.Tracker.SetAllDirty()
}

// Update runs every dirty group whose bit is set in mask (spec.md §6
// "Upward": "update(mask)").
func (ch *Channel) Update(mask dirty.Mask) error {
	return ch.ctx.Tracker.Update(mask)
}

// UpdateAll runs every dirty group (spec.md §6 "Upward": "update_all()").
// Draw already calls this as step 5 of the preamble; this method exists
// for callers that need to run the update groups outside of a draw.
func (ch *Channel) UpdateAll() error {
	return ch.ctx.Tracker.UpdateAll()
}

// ForceShaderUpdate re-runs the Shader group immediately (spec.md §6
// "Upward": "force_shader_update()").
func (ch *Channel) ForceShaderUpdate() error {
	return ch.ctx.ForceShaderUpdate()
}

// UpdateRenderTargetState re-runs the Render-Target group immediately
// with explicit overrides (spec.md §6 "Upward":
// "update_render_target_state(use_control, layered, single_use)").
func (ch *Channel) UpdateRenderTargetState(useControl, layered, singleUse bool) error {
	return ch.ctx.UpdateRenderTargetState(useControl, layered, singleUse)
}

// Draw runs the Draw Preamble for one draw call and folds the elapsed
// time into this channel's rolling metrics window (spec.md §1 "fast
// enough to sustain interactive frame rates"). The channel's policy
// snapshot is refreshed first so a hot-reloaded policy file takes effect
// on the next draw rather than needing a channel restart.
func (ch *Channel) Draw(call draw.Call) error {
	ch.ctx.Policy = ch.policy.Policy()

	start := core.NewClock()
	start.Start()
	err := ch.preamble.Draw(call)
	start.Update()
	ch.metrics.RecordDraw(time.Duration(start.Elapsed()), 0)
	return err
}

// Metrics exposes the rolling draw-time window (spec.md §1).
func (ch *Channel) Metrics() *core.DrawMetrics {
	return ch.metrics
}

// Context exposes the underlying translator state for inspection tools
// (cmd/gpustate-inspect) and tests.
func (ch *Channel) Context() *state.Context {
	return ch.ctx
}
