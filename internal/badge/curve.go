package badge

// FactorKind selects which preference dimension a ratio is scored on.
type FactorKind string

const (
	FactorGenre    FactorKind = "genre"
	FactorDirector FactorKind = "director"
	FactorCast     FactorKind = "cast"
)

// Ratio breakpoints shared by every curve. Above breakHigh the history is
// strongly positive, below breakLow strongly negative, and exactly breakMid
// contributes nothing.
const (
	breakHigh = 0.7
	breakMid  = 0.5
	breakLow  = 0.3
)

// curve holds the slopes and output bounds of one piecewise scoring curve.
// The curve is continuous in value at each breakpoint:
//
//	r >= 0.7        strongBase + (r-0.7)*strongSlope
//	0.5 <= r < 0.7  (r-0.5)*midHighSlope
//	0.3 <= r < 0.5  (r-0.5)*midLowSlope
//	r < 0.3         (negBase + (r-0.3)*negSlope) - (0.3-r)*negPenalty
//
// The extra negPenalty term makes the penalty grow faster than linear as
// the ratio approaches zero. It bends the slope at r=0.3 without breaking
// value continuity there.
type curve struct {
	strongBase   float64
	strongSlope  float64
	midHighSlope float64
	midLowSlope  float64
	negBase      float64
	negSlope     float64
	negPenalty   float64
	min          float64
	max          float64
}

// genreCurve swings wider than the person curves: a genre is broad evidence,
// so it may move the base score by up to two points either way.
var genreCurve = curve{
	strongBase:   1.5,
	strongSlope:  1.67,
	midHighSlope: 7.5,
	midLowSlope:  3.75,
	negBase:      -0.75,
	negSlope:     2.5,
	negPenalty:   1.67,
	min:          -2,
	max:          2,
}

// personCurve scores director and cast-member affinity. Same shape as the
// genre curve, scaled down and asymmetric: at most +1, at worst -0.5.
var personCurve = curve{
	strongBase:   0.7,
	strongSlope:  1.0,
	midHighSlope: 3.5,
	midLowSlope:  1.25,
	negBase:      -0.25,
	negSlope:     0.83,
	negPenalty:   0.83,
	min:          -0.5,
	max:          1,
}

func curveFor(kind FactorKind) curve {
	if kind == FactorGenre {
		return genreCurve
	}
	return personCurve
}

// scoreFactor maps a positive-vote ratio in [0,1] to a bounded score
// adjustment for the given factor kind.
func scoreFactor(ratio float64, kind FactorKind) float64 {
	c := curveFor(kind)

	var v float64
	switch {
	case ratio >= breakHigh:
		v = c.strongBase + (ratio-breakHigh)*c.strongSlope
	case ratio >= breakMid:
		v = (ratio - breakMid) * c.midHighSlope
	case ratio >= breakLow:
		v = (ratio - breakMid) * c.midLowSlope
	default:
		v = (c.negBase + (ratio-breakLow)*c.negSlope) - (breakLow-ratio)*c.negPenalty
	}

	return clamp(v, c.min, c.max)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
