package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerStencil(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupStencil, regs.Stencil, 9)
	c.Tracker.RegisterUpdater(dirty.GroupStencil, func() error {
		return updateStencil(c)
	})
}

// updateStencil implements spec.md §4.4 "Stencil test": if two-sided bit
// is set, use per-side back parameters; otherwise replicate front
// parameters as back (already done by regs.Mirror.Stencil()). Emits a
// single descriptor with both sides.
func updateStencil(c *Context) error {
	s := c.Mirror.Stencil()

	ds := &c.Snapshot.DepthStencil
	ds.StencilTestEnable = true
	ds.FrontFunc = s.Front.Func
	ds.FrontRef = s.Front.Ref
	ds.FrontMask = s.Front.ReadMask
	ds.FrontWriteMask = s.Front.WriteMask
	ds.BackFunc = s.Back.Func
	ds.BackRef = s.Back.Ref
	ds.BackMask = s.Back.ReadMask
	ds.BackWriteMask = s.Back.WriteMask

	c.Renderer.SetStencilTest(*ds)
	return nil
}
