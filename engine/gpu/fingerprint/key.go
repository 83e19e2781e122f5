// Package fingerprint implements the Shader Specialization Key and the
// parallel Pool Key (spec.md §3 "Shader Specialization Key"): value-typed,
// comparable-by-== fingerprints of every piece of guest state a compiled
// shader is specialized against. Byte-equal keys mean the bound program
// stays valid across draws — no reprogram, no recompile.
package fingerprint

import "github.com/spaghettifunk/tegrastate/engine/gpu/regs"

// AttribKind records, per vertex-attribute location, how a compiled
// shader must interpret the incoming bytes — the only part of the guest
// vertex-attribute state that affects specialization (spec.md §3:
// "vertex attribute types (float/sint/uint per location)").
type AttribKind = regs.VertexAttribType

// MaxAttribs bounds the fixed-size attribute-kind array so Key stays a
// plain comparable struct (spec.md §3: "value-typed... byte-equal").
const MaxAttribs = regs.VertexAttribCount

// Key is the Shader Specialization Key. It is deliberately a plain
// struct of comparable fields (no slices, no maps, no pointers) so two
// keys can be compared with `==` — the compatibility test spec.md §3 and
// §8 both rely on ("Shader key byte-equality ⇒ no reprogram across
// draws").
type Key struct {
	EarlyZForce           bool
	Topology               regs.PrimitiveTopology
	TessDomain             regs.TessDomainType
	TessSpacing            regs.TessSpacing
	TessOutputPrimitive    regs.TessOutputPrimitive
	MultisampleEnable      bool
	AlphaToCoverageEnable  bool
	ViewportTransformOff   bool
	DepthMode              uint8 // pipeline.DepthMode, duplicated here to avoid an import cycle
	ProgramPointSizeEnable bool
	PointSize              float32
	AlphaTestEnable        bool
	AlphaTestFunc          regs.CompareFunc
	AlphaTestRef           float32
	Attribs                [MaxAttribs]AttribKind
}

// Compatible reports whether two keys are interchangeable: byte-equal
// modulo documented don't-cares (spec.md §3). No fields are currently
// documented don't-cares, so this is plain equality; the method exists
// so a future don't-care can be carved out without disturbing callers.
func (k Key) Compatible(other Key) bool {
	return k == other
}

// PoolKey is the parallel fingerprint over texture/sampler pool state
// (spec.md §3: "Pool-state is a parallel fingerprint: texture pool base,
// max id, texture-buffer index").
type PoolKey struct {
	TexturePoolBase     uint64
	TexturePoolMaxID    uint32
	SamplerPoolBase     uint64
	SamplerPoolMaxID    uint32
	TextureBufferIndex  uint32
}

// Compatible reports pool-key interchangeability; like Key, plain
// equality today.
func (k PoolKey) Compatible(other PoolKey) bool {
	return k == other
}
