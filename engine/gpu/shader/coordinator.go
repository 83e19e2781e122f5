package shader

import (
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/tegrastate/engine/gpu/fingerprint"
	"github.com/spaghettifunk/tegrastate/engine/gpu/host"
)

// Coordinator is the Shader Coordinator (spec.md §2, §4.4 "Shader"). It
// asks the Cache for a program matching the current fingerprint, records
// the features that program exhibits, and refreshes the per-stage
// reflection cache the texture/buffer managers read from.
type Coordinator struct {
	cache      Cache
	reflection ReflectionCache

	bound        host.ProgramInfo
	hasBound     bool
	prevClipMask uint8

	lastKey     fingerprint.Key
	lastPoolKey fingerprint.PoolKey
}

// NewCoordinator wires a Coordinator to its shader cache collaborator.
func NewCoordinator(cache Cache) *Coordinator {
	return &Coordinator{cache: cache}
}

// Resolve queries the cache with the pool key, graphics-state key, and
// the six collected stage addresses (spec.md §4.4 "Shader": "Query the
// shader cache with (pool key, graphics-state key, addresses)"). It
// records the returned program's feature flags and refreshes the
// reflection cache for each of the 5 shader-stage slots. It returns
// whether the clip-distance mask changed, so the caller (the Shader
// update group) can re-run the User-Clip updater per spec.md §4.4.
func (c *Coordinator) Resolve(pool fingerprint.PoolKey, key fingerprint.Key, addrs StageAddresses) (clipMaskChanged bool, err error) {
	info, err := c.cache.GetGraphicsShader(pool, key, addrs)
	if err != nil {
		return false, err
	}

	prevMask := c.prevClipMask
	c.bound = info
	c.hasBound = true
	c.prevClipMask = info.ClipDistancesMask
	c.lastKey = key
	c.lastPoolKey = pool

	for stage := 0; stage < len(info.Stages); stage++ {
		if info.Stages[stage].Bound {
			c.reflection.Set(stage, dedupReflection(info.Stages[stage]))
		} else {
			c.reflection.Clear(stage)
		}
	}

	return prevMask != info.ClipDistancesMask, nil
}

// dedupReflection removes duplicate slot entries a shader's reflection
// metadata can carry when the same resource is referenced by more than
// one instruction in a stage (spec.md §3 "Shader Reflection Cache"). The
// binding-rental step (updateShader) counts these lists, so a duplicate
// would over-rent a binding slot that isn't actually needed.
func dedupReflection(s host.StageReflection) host.StageReflection {
	s.Textures = dedupUint32(s.Textures)
	s.Images = dedupUint32(s.Images)
	s.ConstantBuffers = dedupUint32(s.ConstantBuffers)

	slices.SortFunc(s.StorageBuffers, func(a, b host.StorageBufferSlot) int {
		switch {
		case a.Slot < b.Slot:
			return -1
		case a.Slot > b.Slot:
			return 1
		default:
			return 0
		}
	})
	s.StorageBuffers = slices.CompactFunc(s.StorageBuffers, func(a, b host.StorageBufferSlot) bool {
		return a.Slot == b.Slot
	})

	return s
}

func dedupUint32(v []uint32) []uint32 {
	slices.Sort(v)
	return slices.Compact(v)
}

// Bound reports the currently bound program, if any.
func (c *Coordinator) Bound() (host.ProgramInfo, bool) {
	return c.bound, c.hasBound
}

// Compatible reports whether a freshly-built key/pool-key pair would
// still match the key the currently bound program was resolved with
// (spec.md §4.3 step 1). A channel with no bound program reports
// incompatible; the Draw Preamble only consults this once a program is
// bound, so that case forces nothing there.
func (c *Coordinator) Compatible(pool fingerprint.PoolKey, key fingerprint.Key) bool {
	return c.hasBound && c.lastKey.Compatible(key) && c.lastPoolKey.Compatible(pool)
}

// Reflection exposes the per-stage reflection cache to the
// storage-buffer materialization step (spec.md §4.4 "Storage-buffer
// materialization") and to texture/buffer binding rental.
func (c *Coordinator) Reflection() *ReflectionCache {
	return &c.reflection
}

// WritesRTLayer, UsesInstanceID, and ClipDistancesMask expose the bound
// program's feature flags (spec.md §2 "Shader Coordinator": "records
// which features... that program exhibits").
func (c *Coordinator) WritesRTLayer() bool    { return c.hasBound && c.bound.WritesRTLayer }
func (c *Coordinator) UsesInstanceID() bool   { return c.hasBound && c.bound.UsesInstanceID }
func (c *Coordinator) ClipDistancesMask() uint8 {
	if !c.hasBound {
		return 0
	}
	return c.bound.ClipDistancesMask
}
