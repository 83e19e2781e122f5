package state

import (
	"testing"

	"github.com/spaghettifunk/tegrastate/engine/gpu/pipeline"
	"github.com/spaghettifunk/tegrastate/engine/gpu/regs"
)

func TestInferDepthModeNegOneToOne(t *testing.T) {
	c := newTestContext()
	gv := regs.Viewport{TranslateZ: 0.5, DepthNear: 0.0, DepthFar: 1.0}

	got := inferDepthMode(c, gv, false)
	if got != pipeline.DepthModeNegOneToOne {
		t.Fatalf("expected -1..1 when near/far both differ from translate_z, got %s", got)
	}
}

func TestInferDepthModeZeroToOneWhenNearMatchesTranslateZ(t *testing.T) {
	c := newTestContext()
	gv := regs.Viewport{TranslateZ: 0.0, DepthNear: 0.0, DepthFar: 1.0}

	got := inferDepthMode(c, gv, false)
	if got != pipeline.DepthModeZeroToOne {
		t.Fatalf("expected 0..1 when depth_near equals translate_z, got %s", got)
	}
}

func TestInferDepthModeDegenerateFallsBackToRegister(t *testing.T) {
	c := newTestContext()
	c.Mirror.Write(regs.DepthModeFallback, 1)

	gv := regs.Viewport{TranslateZ: 0.5, DepthNear: 1.0, DepthFar: 1.0} // degenerate: near == far

	got := inferDepthMode(c, gv, false)
	if got != pipeline.DepthModeNegOneToOne {
		t.Fatalf("expected fallback register's low bit to select -1..1, got %s", got)
	}
}
