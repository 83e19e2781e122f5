// Package draw implements the Draw Preamble (spec.md §2, §4.3): the
// ordering controller run once at the top of every draw call.
package draw

import "github.com/spaghettifunk/tegrastate/engine/gpu/regs"

// Scratch is the Per-Draw Scratch State (spec.md §3): previous-draw
// values used to detect edge-triggered transitions. Owned by the Draw
// Preamble; mutated only there.
type Scratch struct {
	PrevDrawIndexed bool
	PrevIndexType   regs.IndexType
	PrevFirstVertex uint32
	PrevTFEnable    bool
}
