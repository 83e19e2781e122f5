// Package dirty implements the Dirty Tracker (spec.md §3, §4.1): a grouped
// change-detection mechanism over the Register Mirror. Registers are
// partitioned into update groups; each group has a bitmask of register
// offsets it depends on and an updater callback. Marking a register dirty
// sets every group containing it; updating runs all dirty groups whose bit
// is set in a caller-supplied mask, then clears them.
//
// Per spec.md §9's design note, dispatch is an enum-indexed array of free
// functions rather than virtual dispatch — the teacher's own
// interface-based RendererBackend is deliberately not imitated here.
package dirty

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/tegrastate/engine/core"
)

// Mask is the group bitmap. dirty.Group values must stay below 64
// (enforced at construction) so the whole state fits one machine word.
type Mask uint64

// All sets every bit up to GroupCount, for Tracker.Update(dirty.All) /
// "update_all" in spec.md §6.
var All = Mask(1)<<uint(GroupCount) - 1

// Updater is the callback type bound to each group. It receives no
// arguments beyond what the caller closes over — the Tracker only knows
// how to invoke it, not what it touches (spec.md §9).
type Updater func() error

// Tracker owns the per-channel dirty bitmap and the offset→groupmask
// index built once at construction (spec.md §4.1).
type Tracker struct {
	offsetGroups []Mask // index: register word offset, up to 2^14 entries
	updaters     [GroupCount]Updater
	named        [GroupCount]bool // true once RegisterUpdater has been called
	dirty        Mask
}

// NewTracker allocates a tracker sized for a register bank of
// `bankWords` words (spec.md §4.1: "offsets may be 14-bit word-indices").
func NewTracker(bankWords uint32) (*Tracker, error) {
	if GroupCount > 64 {
		return nil, core.ErrTooManyGroups
	}
	return &Tracker{offsetGroups: make([]Mask, bankWords)}, nil
}

// DependsOn declares that `group` depends on register word `offset`,
// populating the offset→groupmask index (spec.md §3 "Update Group":
// "the set of field offsets it depends on (pre-computed at construction)").
// Must be called before any SetDirty/Update call that touches `offset`.
func (t *Tracker) DependsOn(group Group, offsets ...uint32) {
	for _, o := range offsets {
		t.offsetGroups[o] |= Mask(1) << uint(group)
	}
}

// DependsOnRange is a convenience for a contiguous run of words, used by
// the per-slot array fields (viewports, scissors, vertex buffers, ...).
func (t *Tracker) DependsOnRange(group Group, base, count uint32) {
	for i := uint32(0); i < count; i++ {
		t.DependsOn(group, base+i)
	}
}

// RegisterUpdater binds a group's updater callback (spec.md §3 "Update
// Group": "a reference to its updater callback"). Group membership
// (DependsOn) must be complete before the first Update call, but the
// updater itself may be (re)bound any time before that group first runs.
func (t *Tracker) RegisterUpdater(group Group, fn Updater) {
	t.updaters[group] = fn
	t.named[group] = true
}

// SetDirty marks every group whose dependency set contains `offset`
// (spec.md §4.1 "set_dirty").
func (t *Tracker) SetDirty(offset uint32) {
	t.dirty |= t.offsetGroups[offset]
}

// ForceDirty marks a single group directly (spec.md §4.1 "force_dirty"),
// used by cross-cutting transitions the Draw Preamble detects (spec.md
// §4.3) and by render-target scale changes forcing a Viewport/Scissor
// re-run (spec.md §4.4).
func (t *Tracker) ForceDirty(group Group) {
	t.dirty |= Mask(1) << uint(group)
}

// SetAllDirty marks every group (spec.md §4.1 "set_all_dirty").
func (t *Tracker) SetAllDirty() {
	t.dirty = All
}

// IsDirty reports whether a group's bit is currently set, without
// clearing it.
func (t *Tracker) IsDirty(group Group) bool {
	return t.dirty&(Mask(1)<<uint(group)) != 0
}

// Update visits every group index in ascending order whose bit is set in
// both the dirty bitmap and `mask`, clears the bit, then invokes that
// group's updater (spec.md §4.1 "update(mask)"). Ascending-order iteration
// is the ordering contract described in spec.md §4.4/§5.
func (t *Tracker) Update(mask Mask) error {
	active := t.dirty & mask
	for g := Group(0); g < GroupCount && active != 0; g++ {
		bit := Mask(1) << uint(g)
		if active&bit == 0 {
			continue
		}
		active &^= bit
		t.dirty &^= bit
		fn := t.updaters[g]
		if fn == nil {
			if !t.named[g] {
				core.LogWarn("dirty tracker: group %s marked dirty but has no registered updater", g)
			}
			continue
		}
		if err := fn(); err != nil {
			return fmt.Errorf("update group %s: %w", g, err)
		}
	}
	return nil
}

// UpdateAll runs Update(All) — spec.md §6's "update_all".
func (t *Tracker) UpdateAll() error {
	return t.Update(All)
}

// DirtyGroups returns the currently dirty groups in ascending index
// order, for diagnostics (cmd/gpustate-inspect) rather than for Update
// itself, which already visits groups ascending via its own bit-scan.
func (t *Tracker) DirtyGroups() []Group {
	var groups []Group
	for g := Group(0); g < GroupCount; g++ {
		if t.dirty&(Mask(1)<<uint(g)) != 0 {
			groups = append(groups, g)
		}
	}
	slices.Sort(groups)
	return groups
}
