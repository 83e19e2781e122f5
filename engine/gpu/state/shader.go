package state

import (
	"github.com/spaghettifunk/tegrastate/engine/core"
	"github.com/spaghettifunk/tegrastate/engine/gpu/dirty"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
	"github.com/spaghettifunk/tegrastate/engine/gpu/shader"
)

func registerShader(c *Context) {
	c.Tracker.DependsOnRange(dirty.GroupShader, regs.ShaderStageBase, regs.ShaderStageCount*regs.ShaderStageStride)
	c.Tracker.DependsOn(dirty.GroupShader, regs.ShaderProgramBase, regs.DrawTopology, regs.EarlyZForce)
	c.Tracker.RegisterUpdater(dirty.GroupShader, func() error {
		return updateShader(c)
	})
}

// updateShader implements spec.md §4.4 "Shader": collect six stage
// addresses (base + per-stage offset) including a disabled stage iff it
// is stage index 1 (the vertex stage is always present), query the
// shader cache with (pool key, graphics-state key, addresses), record
// the returned program's feature flags, refresh reflection bindings, and
// re-run the User-Clip updater if the clip-distances mask changed.
func updateShader(c *Context) error {
	base := c.Mirror.ShaderProgramBaseAddress()

	var addrs shader.StageAddresses
	for i := uint32(0); i < regs.ShaderStageCount; i++ {
		st := c.Mirror.ShaderStage(i)
		if !st.Enable && i != 1 {
			addrs[i] = 0
			continue
		}
		addrs[i] = base + uint64(st.Offset)
	}

	c.Key.Topology = c.Mirror.DrawTopologyValue()
	c.Key.ViewportTransformOff = c.Mirror.ViewportTransformDisabled()
	c.Key.EarlyZForce = c.Mirror.EarlyZForce()

	for i := uint32(0); i < regs.VertexAttribCount; i++ {
		c.Key.Attribs[i] = c.Snapshot.VertexAttribs[i].Type
	}

	clipChanged, err := c.Shader.Resolve(c.PoolKey, c.Key, addrs)
	if err != nil {
		core.LogWarn("shader resolve failed: %v", err)
		return err
	}

	if prog, ok := c.Shader.Bound(); ok {
		c.Snapshot.ProgramHandle = prog.Handle
		c.Renderer.SetProgram(prog.Handle)
	}

	bindReflectionToManagers(c)

	if clipChanged {
		return updateUserClip(c)
	}
	return nil
}

// bindReflectionToManagers implements spec.md §4.4 "Shader"'s last
// sentence: "for each of the 5 shader-stage slots, bind its
// texture/image/uniform/storage reflection lists to the texture and
// buffer managers". This only rents binding-slot counts; the concrete
// (address, size) pairs behind the storage-buffer slots are resolved
// separately in Commit (materializeStorageBuffers).
func bindReflectionToManagers(c *Context) {
	refl := c.Shader.Reflection()
	for stage, s := range refl.Stages {
		if !s.Bound {
			continue
		}
		c.Textures.SetMaxBindings(stage, len(s.Textures), len(s.Images))
		c.Textures.RentTextureBindings(stage, len(s.Textures))
		c.Textures.RentImageBindings(stage, len(s.Images))
		c.Buffers.SetGraphicsStorageBufferBindings(stage, len(s.StorageBuffers))
		c.Buffers.SetGraphicsUniformBufferBindings(stage, len(s.ConstantBuffers))
	}
}
