package state

import (
	"github.com/spaghettifunk/tegrastate/engine/gpu/fingerprint"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

// BuildKey assembles the Shader Specialization Key directly from the
// Register Mirror, independent of whichever update groups have already
// run this draw. The Draw Preamble (spec.md §4.3 step 1) needs this: it
// must know whether the *current* guest state is still compatible with
// the bound program's key *before* running tracker.Update, which is what
// would otherwise refresh Context.Key incrementally.
func BuildKey(c *Context) fingerprint.Key {
	var key fingerprint.Key

	key.EarlyZForce = c.Mirror.EarlyZForce()
	key.Topology = c.Mirror.DrawTopologyValue()

	tess := c.Mirror.Tessellation()
	key.TessDomain = tess.Domain
	key.TessSpacing = tess.Spacing
	key.TessOutputPrimitive = tess.OutputPrimitive

	ms := c.Mirror.Multisample()
	key.MultisampleEnable = ms.SampleCount > 1
	key.AlphaToCoverageEnable = ms.AlphaToCoverageEnable

	key.ViewportTransformOff = c.Mirror.ViewportTransformDisabled()
	key.DepthMode = uint8(inferDepthMode(c, c.Mirror.Viewport(0), key.ViewportTransformOff))

	pt := c.Mirror.Point()
	key.ProgramPointSizeEnable = pt.ProgramPointSizeEnable
	key.PointSize = pt.Size

	at := c.Mirror.AlphaTest()
	key.AlphaTestEnable = at.Enable
	key.AlphaTestFunc = at.Func
	key.AlphaTestRef = at.Ref

	for i := uint32(0); i < regs.VertexAttribCount; i++ {
		typ, _ := decodeAttribKind(i, c.Mirror.VertexAttrib(i))
		key.Attribs[i] = typ
	}

	return key
}

// BuildPoolKey assembles the parallel pool-state fingerprint directly
// from the Register Mirror (spec.md §3 "Pool-state is a parallel
// fingerprint").
func BuildPoolKey(c *Context) fingerprint.PoolKey {
	tex := c.Mirror.TexturePoolDescriptor()
	smp := c.Mirror.SamplerPoolDescriptor()
	return fingerprint.PoolKey{
		TexturePoolBase:    tex.Address,
		TexturePoolMaxID:   tex.MaxID,
		SamplerPoolBase:    smp.Address,
		SamplerPoolMaxID:   smp.MaxID,
		TextureBufferIndex: c.Mirror.TextureBufferIndex(),
	}
}
