/*
analysis.go - Composite lift analysis

PURPOSE:
  The primary entry point. Composes angle factor, load distribution and
  safety analysis into one RiggingResult:

    1. Angle factor from the included angle
    2. Load distribution from weight, legs and CoG geometry
    3. Leg tensions scaled by the angle factor
    4. Safety factors against the scaled worst-leg tension
    5. Geometry warnings merged after the safety warnings

  The embedded distribution carries the scaled tensions - the numbers a
  rigger would actually see on the legs. Shares and the imbalance ratio
  are unaffected by the uniform angle scaling.
*/
package rigging

// Analyze runs the full lift analysis for one rigging input.
func (c Calculator) Analyze(in RiggingInput) RiggingResult {
	angle := c.AngleFactor(in.IncludedAngleDeg)
	dist := c.LoadDistribution(in.LoadWeightKg, in.LegCount, in.CoGOffsetMM, in.SpacingMM)

	// Scale tensions by the angle factor.
	scaled := dist
	scaled.LegTensionsN = make([]float64, len(dist.LegTensionsN))
	for i, t := range dist.LegTensionsN {
		scaled.LegTensionsN[i] = t * angle.AngleFactor
	}
	scaled.MaxTensionN = dist.MaxTensionN * angle.AngleFactor
	scaled.MinTensionN = dist.MinTensionN * angle.AngleFactor

	safety := c.SafetyFactors(scaled.MaxTensionN, in.SlingWLLKg, in.Hitch)

	geometry := c.ValidateGeometry(in)
	safety.Warnings = append(safety.Warnings, geometry.Warnings...)

	return RiggingResult{
		Angle:           angle,
		Distribution:    scaled,
		Safety:          safety,
		MaxLegTensionKN: scaled.MaxTensionN / 1000,
		GeometryValid:   geometry.Valid,
		OverallSafe:     safety.WLLAdequate && geometry.Valid,
	}
}
