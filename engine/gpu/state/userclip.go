package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerUserClip(c *Context) {
	c.Tracker.DependsOn(dirty.GroupUserClip, regs.ClipDistanceEnable)
	c.Tracker.RegisterUpdater(dirty.GroupUserClip, func() error {
		return updateUserClip(c)
	})
}

// updateUserClip forwards the guest clip-distance enable mask, intersected
// with the bound program's actual clip-distance writes (spec.md §4.4
// "Shader": "If the clip-distances mask changed, re-run the User-Clip
// updater").
func updateUserClip(c *Context) error {
	mask := c.Mirror.ClipDistanceEnableMask()
	if c.Shader != nil {
		mask &= c.Shader.ClipDistancesMask()
	}
	c.Renderer.SetUserClipDistance(mask)
	return nil
}
