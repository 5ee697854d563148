package rigging

import (
	"fmt"
	"math"
)

// ValidateGeometry runs the advisory geometry checks.
//
// The report's Valid flag is always true: geometry issues accumulate as
// warnings and never block an analysis, so the composite's overall safety
// check reduces to WLL adequacy. Flipping validity on any of these checks
// would change the published contract and needs rigging-domain sign-off.
func (c Calculator) ValidateGeometry(in RiggingInput) GeometryReport {
	cfg := c.Config
	var warnings []string

	if in.IncludedAngleDeg < cfg.MinAdvisoryAngleDeg || in.IncludedAngleDeg > cfg.MaxAdvisoryAngleDeg {
		warnings = append(warnings, fmt.Sprintf(
			"included angle %.1f degrees is outside the recommended %.0f-%.0f degree range",
			in.IncludedAngleDeg, cfg.MinAdvisoryAngleDeg, cfg.MaxAdvisoryAngleDeg))
	}
	if in.LegCount > cfg.MaxAdvisoryLegCount {
		warnings = append(warnings, fmt.Sprintf(
			"%d legs configured; loads rarely distribute predictably beyond %d legs",
			in.LegCount, cfg.MaxAdvisoryLegCount))
	}
	if in.LoadWeightKg <= 0 {
		warnings = append(warnings, "load weight must be greater than zero")
	}
	if in.SlingWLLKg <= 0 {
		warnings = append(warnings, "sling rated capacity must be greater than zero")
	}
	if in.IncludedAngleDeg > cfg.HighTensionAngleDeg {
		warnings = append(warnings, fmt.Sprintf(
			"included angles above %.0f degrees sharply increase leg tension",
			cfg.HighTensionAngleDeg))
	}
	if in.SpacingMM > 0 && math.Abs(in.CoGOffsetMM) > in.SpacingMM/2 {
		warnings = append(warnings,
			"centre of gravity lies outside the pick points; the far leg can go slack or reverse load")
	}

	return GeometryReport{Valid: true, Warnings: warnings}
}
