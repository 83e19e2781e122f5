package state

import (
	"testing"

	"github.com/spaghettifunk/tegrastate/engine/core"
	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func newTestContext() *Context {
	return New(regs.NewMirror(), nil, pipeline.New(), core.Policy{}, &recordingRenderer{}, nil, nil, nil, nil)
}

func TestUpdateScissorFlipsYAgainstScreenHeight(t *testing.T) {
	// Boundary scenario: NegateY=true, y1=10, y2=20, screen height=100
	// should produce y=80, height=10 (spec.md §8).
	c := newTestContext()
	c.ClipRegionWidth = 200
	c.ClipRegionHeight = 100
	c.Mirror.Write(regs.YControl, 1) // NegateY bit

	writeScissor(c, 0, 10, 10, 30, 20) // x1=10 y1=10 x2=30 y2=20

	if err := updateScissor(c); err != nil {
		t.Fatalf("updateScissor: %v", err)
	}

	got := c.Snapshot.Scissors[0]
	if got.Y != 80 || got.Height != 10 {
		t.Fatalf("expected Y=80 Height=10, got Y=%d Height=%d", got.Y, got.Height)
	}
}

func TestUpdateScissorFullWindowFallsBackToClipRegion(t *testing.T) {
	c := newTestContext()
	c.ClipRegionWidth = 640
	c.ClipRegionHeight = 480

	if err := updateScissor(c); err != nil {
		t.Fatalf("updateScissor: %v", err)
	}

	got := c.Snapshot.Scissors[0]
	if got.Width != 640 || got.Height != 480 {
		t.Fatalf("expected full clip region %dx%d, got %dx%d", 640, 480, got.Width, got.Height)
	}
}

// writeScissor populates scissor slot `index`'s raw words directly,
// mirroring how a guest command-stream processor would write them.
func writeScissor(c *Context, index uint32, x1, y1, x2, y2 uint32) {
	base := regs.ScissorBase + index*regs.ScissorStride
	c.Mirror.Write(base+0, 1) // enable
	c.Mirror.Write(base+1, x1)
	c.Mirror.Write(base+2, y1)
	c.Mirror.Write(base+3, x2)
	c.Mirror.Write(base+4, y2)
}
