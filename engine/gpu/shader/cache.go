// Package shader implements the Shader Coordinator (spec.md §2 "Shader
// Coordinator", §4.4 "Shader", §4.6): the subordinate that asks a shader
// cache for a program matching the current fingerprint, wires its
// reflection info into the texture/buffer binders, and records which
// features the returned program exhibits.
package shader

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/fingerprint"
	"github.com/spaghettifunk/tegrastate/engine/gpu/host"
)

// StageAddresses is the six guest shader-stage base addresses the
// Coordinator collects before querying the cache (spec.md §4.4
// "Shader": "Collect six stage addresses").
type StageAddresses [6]uint64

// Cache is the external shader cache collaborator (spec.md §6
// "Shader cache: get-graphics-shader(pool-key, graphics-key, addresses)").
// It is out of scope to implement (spec.md §1 Non-goals: shader source
// translation); the Coordinator only depends on this interface.
type Cache interface {
	GetGraphicsShader(pool fingerprint.PoolKey, key fingerprint.Key, addresses StageAddresses) (host.ProgramInfo, error)
}

// ReflectionCache is the per-stage reflection info of the currently
// bound program (spec.md §3 "Shader Reflection Cache"). It is cleared
// when a stage is unbound, and read by the storage-buffer materialization
// step and by the texture/buffer managers' binding-rental calls.
type ReflectionCache struct {
	Stages [5]host.StageReflection
}

// Clear empties one stage's reflection info (spec.md §3: "Cleared when a
// stage is unbound").
func (c *ReflectionCache) Clear(stage int) {
	c.Stages[stage] = host.StageReflection{}
}

// Set stores a stage's reflection info from a freshly bound program.
func (c *ReflectionCache) Set(stage int, refl host.StageReflection) {
	c.Stages[stage] = refl
}
