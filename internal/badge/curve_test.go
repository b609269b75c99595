package badge

import (
	"math"
	"testing"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestScoreFactor_NeutralRatio(t *testing.T) {
	for _, kind := range []FactorKind{FactorGenre, FactorDirector, FactorCast} {
		if got := scoreFactor(0.5, kind); got != 0 {
			t.Errorf("scoreFactor(0.5, %s) = %v, want 0", kind, got)
		}
	}
}

func TestScoreFactor_KnownValues(t *testing.T) {
	tests := []struct {
		ratio float64
		kind  FactorKind
		want  float64
	}{
		// Genre curve
		{1.0, FactorGenre, 2.0}, // 1.5 + 0.3*1.67 = 2.001, clamped
		{0.7, FactorGenre, 1.5},
		{0.6, FactorGenre, 0.75},
		{0.4, FactorGenre, -0.375},
		{0.3, FactorGenre, -0.75},
		{0.0, FactorGenre, -2.0}, // -1.5 - 0.501, clamped

		// Person curve (director and cast share it)
		{1.0, FactorDirector, 1.0},
		{0.7, FactorDirector, 0.7},
		{0.6, FactorDirector, 0.35},
		{0.4, FactorCast, -0.125},
		{0.3, FactorCast, -0.25},
		{0.0, FactorCast, -0.5}, // -0.499 - 0.249, clamped
	}

	for _, tt := range tests {
		got := scoreFactor(tt.ratio, tt.kind)
		if !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("scoreFactor(%.2f, %s) = %v, want %v", tt.ratio, tt.kind, got, tt.want)
		}
	}
}

func TestScoreFactor_Clamping(t *testing.T) {
	// Sweep the full ratio domain and assert the output never escapes the
	// per-kind bounds.
	for i := 0; i <= 1000; i++ {
		ratio := float64(i) / 1000

		if got := scoreFactor(ratio, FactorGenre); got < -2 || got > 2 {
			t.Fatalf("genre score %v at ratio %v outside [-2, 2]", got, ratio)
		}
		if got := scoreFactor(ratio, FactorDirector); got < -0.5 || got > 1 {
			t.Fatalf("director score %v at ratio %v outside [-0.5, 1]", got, ratio)
		}
		if got := scoreFactor(ratio, FactorCast); got < -0.5 || got > 1 {
			t.Fatalf("cast score %v at ratio %v outside [-0.5, 1]", got, ratio)
		}
	}
}

func TestScoreFactor_ContinuityAtBreakpoints(t *testing.T) {
	// The curve is continuous in value at every breakpoint (the slope bends
	// at 0.3, but the value must not jump).
	const eps = 1e-7

	for _, kind := range []FactorKind{FactorGenre, FactorDirector} {
		for _, bp := range []float64{breakLow, breakMid, breakHigh} {
			below := scoreFactor(bp-eps, kind)
			at := scoreFactor(bp, kind)
			if !almostEqual(below, at, 1e-5) {
				t.Errorf("%s curve discontinuous at %v: %v vs %v", kind, bp, below, at)
			}
		}
	}
}

func TestScoreFactor_NegativePenaltyGrowsFasterThanLinear(t *testing.T) {
	// Between 0.3 and 0 the per-unit penalty must exceed the mid-low slope,
	// so strongly negative history is punished harder than mildly negative.
	g1 := scoreFactor(0.3, FactorGenre) - scoreFactor(0.2, FactorGenre)
	g2 := scoreFactor(0.5, FactorGenre) - scoreFactor(0.4, FactorGenre)
	if g1 <= g2 {
		t.Errorf("penalty slope below 0.3 (%v) should exceed mid slope (%v)", g1, g2)
	}
}
