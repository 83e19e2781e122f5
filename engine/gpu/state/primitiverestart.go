package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerPrimitiveRestart(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupPrimitiveRestart, regs.PrimitiveRestart, 2)
	c.Tracker.RegisterUpdater(dirty.GroupPrimitiveRestart, func() error {
		return updatePrimitiveRestart(c)
	})
}

// updatePrimitiveRestart implements spec.md §4.4 "Primitive restart":
// enable only if the guest enables AND (the draw is indexed OR the
// emulator's host-family supports enable during non-indexed draws).
func updatePrimitiveRestart(c *Context) error {
	guest := c.Mirror.PrimitiveRestartState()

	enable := guest.Enable && (c.LastDraw.Indexed || c.Policy.PrimitiveRestartSupportedNonIndexed)

	c.Snapshot.PrimitiveRestartEnable = enable
	c.Renderer.SetPrimitiveRestart(enable)
	return nil
}
