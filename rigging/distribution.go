/*
distribution.go - Per-leg load sharing

PURPOSE:
  Splits the load weight across sling legs. The default is an equal split;
  a two-leg lift with a meaningful centre-of-gravity offset uses lever-arm
  sharing, where the leg closer to the CoG carries the larger share.

LEVER-ARM GEOMETRY (two legs):
  distance to leg A = spacing/2 + offset
  distance to leg B = spacing/2 - offset
  share of leg A    = distance to B / (distance to A + distance to B)

  Shares are inversely proportional to the distance from the CoG. An
  offset beyond half the spacing puts the CoG outside the pick points and
  produces a negative far-leg share; the geometry validator warns about it
  but the arithmetic is reported as-is.

DEGENERATE CASES:
  Zero or negative spacing, offsets within measurement noise, or any leg
  count other than two fall back to the equal split. Non-positive weight
  clamps to zero tension.
*/
package rigging

import "math"

// LoadDistribution splits weightKg across legCount legs and converts the
// shares to absolute tensions (before any angle factor).
func (c Calculator) LoadDistribution(weightKg float64, legCount int, cogOffsetMM, spacingMM float64) LoadDistribution {
	legs := legCount
	if legs < 1 {
		legs = 1
	}
	weight := weightKg
	if weight < 0 {
		weight = 0
	}

	shares := make([]float64, legs)
	for i := range shares {
		shares[i] = 1 / float64(legs)
	}

	// Lever-arm sharing: exactly two legs, real spacing, offset beyond
	// measurement noise.
	if legs == 2 && spacingMM > 0 && math.Abs(cogOffsetMM) > c.Config.CoGTriggerMM {
		distA := spacingMM/2 + cogOffsetMM
		distB := spacingMM/2 - cogOffsetMM
		span := distA + distB
		if span != 0 {
			shares[0] = distB / span
			shares[1] = distA / span
		}
	}

	totalN := weight * c.Config.Gravity
	tensions := make([]float64, legs)
	maxT, minT := math.Inf(-1), math.Inf(1)
	for i, s := range shares {
		tensions[i] = totalN * s
		maxT = math.Max(maxT, tensions[i])
		minT = math.Min(minT, tensions[i])
	}

	ratio := 1.0
	if minT != 0 {
		ratio = maxT / minT
	} else if maxT != 0 {
		ratio = math.Inf(1)
	}

	return LoadDistribution{
		LegShares:      shares,
		LegTensionsN:   tensions,
		MaxTensionN:    maxT,
		MinTensionN:    minT,
		ImbalanceRatio: ratio,
		Balanced:       ratio <= c.Config.BalanceTolerance,
	}
}
