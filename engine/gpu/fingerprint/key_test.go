package fingerprint

import "testing"

func TestKeyCompatible(t *testing.T) {
	a := Key{Topology: 3, PointSize: 1.0}
	b := a
	if !a.Compatible(b) {
		t.Fatal("identical keys should be compatible")
	}

	b.Topology = 4
	if a.Compatible(b) {
		t.Fatal("keys differing in Topology should not be compatible")
	}
}

func TestKeyAttribsAreCompared(t *testing.T) {
	a := Key{}
	b := Key{}
	b.Attribs[3] = AttribKind(1)
	if a.Compatible(b) {
		t.Fatal("keys differing in one attrib slot should not be compatible")
	}
}

func TestPoolKeyCompatible(t *testing.T) {
	a := PoolKey{TexturePoolBase: 0x1000, TexturePoolMaxID: 16}
	b := a
	if !a.Compatible(b) {
		t.Fatal("identical pool keys should be compatible")
	}
	b.SamplerPoolBase = 0x2000
	if a.Compatible(b) {
		t.Fatal("pool keys differing in SamplerPoolBase should not be compatible")
	}
}
