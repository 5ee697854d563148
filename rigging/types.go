/*
Package rigging implements lifting-safety analysis for sling rigging:
angle-factor physics, load distribution across sling legs with
centre-of-gravity lever-arm sharing, and working-load-limit safety
validation.

KEY CONCEPTS IN THIS FILE (types.go):
  - HitchType: vertical/choker/basket, each with a capacity multiplier
  - Config: injected safety constants (design factor, margins, gravity)
  - RiggingInput: one lift's geometry and load facts
  - AngleFactorResult / LoadDistribution / SafetyAnalysis / RiggingResult

DESIGN PRINCIPLES:
  1. Pure functions: no state, identical inputs give identical outputs
  2. Clamp, don't throw: degenerate geometry degrades to safe defaults;
     the advisory validator reports, the calculation never fails
  3. Doubles throughout: geometric values stay unrounded until the final
     kN/percent outputs

UNITS:
  Weight and capacities in kilograms, offsets and spacing in millimetres,
  angles in degrees, tension in newtons (kN only in summary outputs).

SEE ALSO:
  - analysis.go: the composite Analyze entry point
  - validate.go: advisory geometry validation
*/
package rigging

// HitchType is the rigging configuration at the hook.
type HitchType string

const (
	HitchVertical HitchType = "vertical"
	HitchChoker   HitchType = "choker"
	HitchBasket   HitchType = "basket"
)

// =============================================================================
// CONFIG - Injected safety constants
// =============================================================================

// Config holds every constant the rigging calculator uses. Site-specific
// safety policies (stricter margins, different design factors) are a data
// change, not a logic change.
type Config struct {
	// Standard gravity, m/s^2.
	Gravity float64

	// DesignFactor applied when deriving the minimum required WLL.
	DesignFactor float64

	// MinimumMarginPercent is the smallest acceptable safety margin.
	MinimumMarginPercent float64

	// CautionMarginPercent triggers a warning even when adequate.
	CautionMarginPercent float64

	// RecommendationBuffer is the multiplier applied to the minimum
	// required WLL when recommending a sling.
	RecommendationBuffer float64

	// BalanceTolerance is the max/min tension ratio still considered
	// balanced.
	BalanceTolerance float64

	// CoGTriggerMM: offsets at or below this magnitude are treated as
	// centred (measurement noise).
	CoGTriggerMM float64

	// Capacity multiplier per hitch type, on a vertical-rating basis.
	HitchFactors map[HitchType]float64

	// Advisory geometry bounds.
	MinAdvisoryAngleDeg float64
	MaxAdvisoryAngleDeg float64
	HighTensionAngleDeg float64
	MaxAdvisoryLegCount int
}

// DefaultConfig returns the standard rigging-safety constants.
func DefaultConfig() Config {
	return Config{
		Gravity:              9.80665,
		DesignFactor:         1.25,
		MinimumMarginPercent: 25,
		CautionMarginPercent: 50,
		RecommendationBuffer: 1.10,
		BalanceTolerance:     1.10,
		CoGTriggerMM:         1.0,
		HitchFactors: map[HitchType]float64{
			HitchVertical: 1.0,
			HitchChoker:   0.75,
			HitchBasket:   2.0,
		},
		MinAdvisoryAngleDeg: 10,
		MaxAdvisoryAngleDeg: 150,
		HighTensionAngleDeg: 120,
		MaxAdvisoryLegCount: 4,
	}
}

// hitchFactor resolves a hitch type's capacity multiplier, defaulting to
// the vertical rating for unknown types.
func (c Config) hitchFactor(h HitchType) float64 {
	if f, ok := c.HitchFactors[h]; ok {
		return f
	}
	return 1.0
}

// =============================================================================
// INPUT
// =============================================================================

// RiggingInput is one lift's facts. Immutable per call.
type RiggingInput struct {
	Hitch HitchType

	LoadWeightKg float64
	LegCount     int

	// Included angle at the lift point, degrees.
	IncludedAngleDeg float64

	// Centre-of-gravity offset from the geometric centre, mm, signed.
	CoGOffsetMM float64

	// Pick-point spacing, mm.
	SpacingMM float64

	// Sling rated capacity, kg, vertical-rating basis.
	SlingWLLKg float64
}

// =============================================================================
// RESULTS
// =============================================================================

// AngleFactorResult captures the tension multiplier caused by non-vertical
// sling legs. LegAngleDeg keeps the sign of the input; the factor itself
// follows the (even) cosine.
type AngleFactorResult struct {
	AngleFactor float64
	LegAngleDeg float64
	Efficiency  float64 // 1 / AngleFactor
}

// LoadDistribution is the per-leg split of the load.
type LoadDistribution struct {
	// LegShares are load fractions per leg; they sum to 1.
	LegShares []float64

	// LegTensionsN are absolute tensions per leg, newtons.
	LegTensionsN []float64

	MaxTensionN float64
	MinTensionN float64

	// ImbalanceRatio = max/min tension.
	ImbalanceRatio float64

	// Balanced: imbalance within the configured tolerance.
	Balanced bool
}

// SafetyAnalysis is the WLL adequacy verdict for the worst-loaded leg.
type SafetyAnalysis struct {
	WLLAdequate bool

	// SafetyMarginPercent can be negative (overloaded) or +Inf (zero
	// tension, trivially adequate).
	SafetyMarginPercent float64

	EffectiveWLLKg   float64
	MinRequiredWLLKg float64
	RecommendedWLLKg float64

	Warnings        []string
	Recommendations []string
}

// GeometryReport is the advisory geometry validation outcome.
// Valid is always true in the current contract; only warnings accumulate.
type GeometryReport struct {
	Valid    bool
	Warnings []string
}

// RiggingResult is the complete lift analysis.
type RiggingResult struct {
	Angle        AngleFactorResult
	Distribution LoadDistribution // tensions include the angle factor
	Safety       SafetyAnalysis

	MaxLegTensionKN float64
	GeometryValid   bool

	// OverallSafe = WLL adequate AND geometry valid.
	OverallSafe bool
}
