package rigging

import "math"

// Calculator computes rigging analyses against an injected Config.
type Calculator struct {
	Config Config
}

// NewCalculator returns a calculator bound to the given config.
func NewCalculator(cfg Config) Calculator {
	return Calculator{Config: cfg}
}

// AngleFactor converts the included angle at the lift point into the
// tension multiplier on each leg.
//
// The leg angle from vertical is half the included angle; the factor is
// 1/cos(leg angle). A negative included angle is processed through its
// cosine (even function), so the reported leg angle keeps its sign while
// the factor matches the positive case. Efficiency is the reciprocal of
// the factor.
func (c Calculator) AngleFactor(includedAngleDeg float64) AngleFactorResult {
	legAngle := includedAngleDeg / 2
	cos := math.Cos(legAngle * math.Pi / 180)

	factor := math.Inf(1)
	if cos != 0 {
		factor = 1 / cos
	}

	efficiency := 0.0
	if !math.IsInf(factor, 0) && factor != 0 {
		efficiency = 1 / factor
	}

	return AngleFactorResult{
		AngleFactor: factor,
		LegAngleDeg: legAngle,
		Efficiency:  efficiency,
	}
}
