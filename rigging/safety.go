/*
safety.go - Working-load-limit adequacy

PURPOSE:
  Validates the worst-loaded leg's tension against the sling's effective
  working load limit and derives the minimum and recommended sling ratings.

EFFECTIVE WLL:
  The sling's vertical rating is multiplied by the hitch factor (choker
  derates to 75%, basket doubles) and converted to newtons.

MARGIN:
  margin% = (effective WLL - tension) / tension x 100.
  Zero tension yields +Inf, treated as adequate. The lift is adequate when
  the margin meets the configured minimum; a margin below the caution
  threshold still draws a warning.

SIZING:
  minimum required WLL = tension x design factor / g      (kg)
  recommended WLL      = minimum required x buffer        (kg)
*/
package rigging

import (
	"fmt"
	"math"
)

// SafetyFactors analyses the worst-leg tension against the sling rating.
// Warnings and recommendations are ordered: adequacy first, margin
// caution second, hitch advisories last.
func (c Calculator) SafetyFactors(maxTensionN, slingWLLKg float64, hitch HitchType) SafetyAnalysis {
	cfg := c.Config

	effectiveKg := slingWLLKg * cfg.hitchFactor(hitch)
	effectiveN := effectiveKg * cfg.Gravity

	margin := math.Inf(1)
	if maxTensionN > 0 {
		margin = (effectiveN - maxTensionN) / maxTensionN * 100
	}
	adequate := margin >= cfg.MinimumMarginPercent

	minRequiredKg := 0.0
	if maxTensionN > 0 {
		minRequiredKg = maxTensionN * cfg.DesignFactor / cfg.Gravity
	}
	recommendedKg := minRequiredKg * cfg.RecommendationBuffer

	var warnings, recommendations []string
	if !adequate {
		warnings = append(warnings, fmt.Sprintf(
			"sling WLL inadequate: safety margin %.1f%% is below the required %.0f%%",
			margin, cfg.MinimumMarginPercent))
		recommendations = append(recommendations, fmt.Sprintf(
			"use a sling rated at least %.0f kg (recommended %.0f kg)",
			minRequiredKg, recommendedKg))
	} else if margin < cfg.CautionMarginPercent {
		warnings = append(warnings, fmt.Sprintf(
			"safety margin %.1f%% is below %.0f%%; consider a heavier sling",
			margin, cfg.CautionMarginPercent))
	}

	switch hitch {
	case HitchChoker:
		recommendations = append(recommendations,
			"choker hitch derates the sling to 75% of its vertical rating; verify the choke angle is at least 120 degrees")
	case HitchBasket:
		recommendations = append(recommendations,
			"basket rating assumes both legs stay vertical; derate for leg angle if the legs spread")
	}

	return SafetyAnalysis{
		WLLAdequate:         adequate,
		SafetyMarginPercent: margin,
		EffectiveWLLKg:      effectiveKg,
		MinRequiredWLLKg:    minRequiredKg,
		RecommendedWLLKg:    recommendedKg,
		Warnings:            warnings,
		Recommendations:     recommendations,
	}
}
