package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func registerTexturePool(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupTexturePool, regs.TexturePool, 3)
	c.Tracker.DependsOn(dirty.GroupTexturePool, regs.TextureBufferIndex)
	c.Tracker.RegisterUpdater(dirty.GroupTexturePool, func() error {
		return updateTexturePool(c)
	})
}

func updateTexturePool(c *Context) error {
	p := c.Mirror.TexturePoolDescriptor()
	bufIndex := c.Mirror.TextureBufferIndex()

	c.PoolKey.TexturePoolBase = p.Address
	c.PoolKey.TexturePoolMaxID = p.MaxID
	c.PoolKey.TextureBufferIndex = bufIndex

	c.Textures.SetTexturePool(p.Address, p.MaxID)
	return nil
}
