package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerFace(c *Context) {
	c.Tracker.DependsOn(dirty.GroupFace, regs.Face, regs.YControl)
	c.Tracker.RegisterUpdater(dirty.GroupFace, func() error {
		return updateFace(c)
	})
}

// updateFace implements spec.md §4.4 "Front face": the effective front
// face is the guest's front face inverted iff the Y-origin flag
// (TriangleRastFlip) is clear, i.e. the origin is upper-left.
func updateFace(c *Context) error {
	face := c.Mirror.Face()
	yc := c.Mirror.YControl()

	effective := face.FrontFace
	if !yc.TriangleRastFlip {
		effective = invertFrontFace(face.FrontFace)
	}

	c.Snapshot.CullEnable = face.CullEnable
	c.Snapshot.CullFace = face.CullFace
	c.Snapshot.FrontFace = effective

	c.Renderer.SetFaceCulling(face.CullEnable, uint8(face.CullFace))
	c.Renderer.SetFrontFace(uint8(effective))
	return nil
}

func invertFrontFace(f regs.FrontFace) regs.FrontFace {
	return regs.FrontFace(1 - uint8(f&1))
}
