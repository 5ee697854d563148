package rigging_test

import (
	"math"
	"strings"
	"testing"

	"github.com/marko9795/boilermaker/rigging"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newCalc() rigging.Calculator {
	return rigging.NewCalculator(rigging.DefaultConfig())
}

func assertClose(t *testing.T, got, want, tol float64, label string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tolerance %v)", label, got, want, tol)
	}
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// =============================================================================
// ANGLE FACTOR
// =============================================================================

func TestAngleFactor_SixtyDegreeIncludedAngle(t *testing.T) {
	// GIVEN: A 60-degree included angle at the hook
	// WHEN: Computing the angle factor
	// THEN: Leg angle is 30 degrees from vertical, factor 1/cos(30)

	r := newCalc().AngleFactor(60)

	assertClose(t, r.LegAngleDeg, 30, 1e-12, "leg angle")
	assertClose(t, r.AngleFactor, 1.1547005, 1e-6, "angle factor")
	assertClose(t, r.Efficiency, 0.8660254, 1e-6, "efficiency")
}

func TestAngleFactor_VerticalLegsHaveNoPenalty(t *testing.T) {
	r := newCalc().AngleFactor(0)

	assertClose(t, r.AngleFactor, 1.0, 1e-12, "angle factor")
	assertClose(t, r.Efficiency, 1.0, 1e-12, "efficiency")
}

func TestAngleFactor_EfficiencyIsReciprocal(t *testing.T) {
	c := newCalc()
	for _, angle := range []float64{15, 45, 60, 90, 120, 150} {
		r := c.AngleFactor(angle)
		assertClose(t, r.Efficiency*r.AngleFactor, 1.0, 1e-9, "efficiency x factor")
	}
}

func TestAngleFactor_MonotonicallyIncreasing(t *testing.T) {
	// Wider included angles always raise leg tension.
	c := newCalc()
	prev := c.AngleFactor(0).AngleFactor
	for angle := 10.0; angle <= 170; angle += 10 {
		f := c.AngleFactor(angle).AngleFactor
		if f <= prev {
			t.Fatalf("factor at %v (%v) not above factor at %v (%v)", angle, f, angle-10, prev)
		}
		prev = f
	}
}

func TestAngleFactor_NegativeAngleMatchesPositive(t *testing.T) {
	// cos is even: the factor matches, the leg angle keeps its sign.
	c := newCalc()
	pos := c.AngleFactor(60)
	neg := c.AngleFactor(-60)

	assertClose(t, neg.AngleFactor, pos.AngleFactor, 1e-12, "angle factor")
	assertClose(t, neg.LegAngleDeg, -30, 1e-12, "leg angle sign")
}

// =============================================================================
// LOAD DISTRIBUTION
// =============================================================================

func TestLoadDistribution_CentredTwoLegLift(t *testing.T) {
	// GIVEN: 1,000 kg on two legs, CoG centred
	// WHEN: Distributing the load
	// THEN: Equal halves, each at W x g / 2, balanced

	d := newCalc().LoadDistribution(1000, 2, 0, 2000)

	assertClose(t, d.LegShares[0], 0.5, 1e-12, "share A")
	assertClose(t, d.LegShares[1], 0.5, 1e-12, "share B")
	assertClose(t, d.LegTensionsN[0], 4903.325, 1e-6, "tension A")
	assertClose(t, d.ImbalanceRatio, 1.0, 1e-12, "imbalance")
	if !d.Balanced {
		t.Error("centred lift should be balanced")
	}
}

func TestLoadDistribution_LeverArm_CloserLegTakesMore(t *testing.T) {
	// GIVEN: 1,000 kg, 2,000 mm spacing, CoG 500 mm off centre
	// WHEN: Distributing with lever-arm sharing
	// THEN: The near leg carries 75%, the far leg 25%, and the split is
	//       flagged unbalanced

	d := newCalc().LoadDistribution(1000, 2, 500, 2000)

	assertClose(t, d.LegShares[0], 0.25, 1e-12, "far-leg share")
	assertClose(t, d.LegShares[1], 0.75, 1e-12, "near-leg share")
	if d.Balanced {
		t.Error("3:1 split should not be balanced")
	}
	assertClose(t, d.ImbalanceRatio, 3.0, 1e-9, "imbalance ratio")
}

func TestLoadDistribution_SharesAlwaysSumToOne(t *testing.T) {
	c := newCalc()
	cases := []struct {
		weight, offset, spacing float64
		legs                    int
	}{
		{1000, 0, 0, 1},
		{1000, 0, 2000, 2},
		{1000, 300, 2000, 2},
		{1000, -750, 3000, 2},
		{2500, 0, 0, 3},
		{2500, 0, 0, 4},
	}
	for _, tc := range cases {
		d := c.LoadDistribution(tc.weight, tc.legs, tc.offset, tc.spacing)
		sum := 0.0
		for _, s := range d.LegShares {
			sum += s
		}
		assertClose(t, sum, 1.0, 1e-9, "share sum")
	}
}

func TestLoadDistribution_OffsetWithinNoiseTreatedAsCentred(t *testing.T) {
	// Offsets at or below the trigger are measurement noise.
	d := newCalc().LoadDistribution(1000, 2, 0.5, 2000)

	assertClose(t, d.LegShares[0], 0.5, 1e-12, "share A")
	assertClose(t, d.LegShares[1], 0.5, 1e-12, "share B")
}

func TestLoadDistribution_DegenerateInputsClamp(t *testing.T) {
	// GIVEN: Zero legs and negative weight
	// WHEN: Distributing
	// THEN: One zero-tension leg, nothing panics

	d := newCalc().LoadDistribution(-500, 0, 0, 0)

	if len(d.LegShares) != 1 {
		t.Fatalf("expected 1 leg, got %d", len(d.LegShares))
	}
	assertClose(t, d.LegTensionsN[0], 0, 1e-12, "tension")
	assertClose(t, d.ImbalanceRatio, 1.0, 1e-12, "imbalance of zero-weight lift")
}

func TestLoadDistribution_ThreeLegsSplitEqually(t *testing.T) {
	// Lever-arm sharing is a two-leg refinement; other counts split evenly
	// even with an offset supplied.
	d := newCalc().LoadDistribution(3000, 3, 400, 2000)

	for i, s := range d.LegShares {
		assertClose(t, s, 1.0/3, 1e-12, "share")
		assertClose(t, d.LegTensionsN[i], 3000*9.80665/3, 1e-6, "tension")
	}
}

// =============================================================================
// SAFETY FACTORS
// =============================================================================

func TestSafetyFactors_AmpleMargin(t *testing.T) {
	// GIVEN: 9,806.65 N worst-leg tension (1,000 kgf) on a 2,000 kg sling
	// WHEN: Checking adequacy
	// THEN: 100% margin, adequate, no warnings; sizing derived from the
	//       1.25 design factor

	s := newCalc().SafetyFactors(9806.65, 2000, rigging.HitchVertical)

	if !s.WLLAdequate {
		t.Fatal("expected adequate")
	}
	assertClose(t, s.SafetyMarginPercent, 100, 1e-9, "margin")
	assertClose(t, s.EffectiveWLLKg, 2000, 1e-9, "effective WLL")
	assertClose(t, s.MinRequiredWLLKg, 1250, 1e-9, "min required")
	assertClose(t, s.RecommendedWLLKg, 1375, 1e-9, "recommended")
	if len(s.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", s.Warnings)
	}
}

func TestSafetyFactors_InadequateSling(t *testing.T) {
	// GIVEN: Tension equal to the sling's full rating (0% margin)
	// WHEN: Checking adequacy
	// THEN: Inadequate, with a warning and a sizing recommendation

	s := newCalc().SafetyFactors(9806.65, 1000, rigging.HitchVertical)

	if s.WLLAdequate {
		t.Fatal("0% margin must be inadequate")
	}
	assertClose(t, s.SafetyMarginPercent, 0, 1e-9, "margin")
	if !containsSubstring(s.Warnings, "inadequate") {
		t.Errorf("expected inadequacy warning, got %v", s.Warnings)
	}
	if !containsSubstring(s.Recommendations, "1250 kg") {
		t.Errorf("expected sizing recommendation, got %v", s.Recommendations)
	}
}

func TestSafetyFactors_ThinMarginDrawsCaution(t *testing.T) {
	// GIVEN: A 40% margin (adequate, below the 50% caution line)
	// WHEN: Checking adequacy
	// THEN: Adequate but with a caution warning

	s := newCalc().SafetyFactors(9806.65, 1400, rigging.HitchVertical)

	if !s.WLLAdequate {
		t.Fatal("40% margin is adequate")
	}
	assertClose(t, s.SafetyMarginPercent, 40, 1e-9, "margin")
	if !containsSubstring(s.Warnings, "consider a heavier sling") {
		t.Errorf("expected caution warning, got %v", s.Warnings)
	}
}

func TestSafetyFactors_ChokerDeratesCapacity(t *testing.T) {
	// GIVEN: A choker hitch on a 2,000 kg sling
	// WHEN: Checking adequacy
	// THEN: Effective WLL is 75% of the vertical rating and the choker
	//       advisory is attached

	s := newCalc().SafetyFactors(9806.65, 2000, rigging.HitchChoker)

	assertClose(t, s.EffectiveWLLKg, 1500, 1e-9, "effective WLL")
	assertClose(t, s.SafetyMarginPercent, 50, 1e-9, "margin")
	if !containsSubstring(s.Recommendations, "choker") {
		t.Errorf("expected choker advisory, got %v", s.Recommendations)
	}
}

func TestSafetyFactors_BasketDoublesCapacity(t *testing.T) {
	s := newCalc().SafetyFactors(9806.65, 2000, rigging.HitchBasket)

	assertClose(t, s.EffectiveWLLKg, 4000, 1e-9, "effective WLL")
	if !containsSubstring(s.Recommendations, "basket") {
		t.Errorf("expected basket advisory, got %v", s.Recommendations)
	}
}

func TestSafetyFactors_ZeroTensionIsTriviallyAdequate(t *testing.T) {
	s := newCalc().SafetyFactors(0, 1000, rigging.HitchVertical)

	if !s.WLLAdequate {
		t.Fatal("zero tension should be adequate")
	}
	if !math.IsInf(s.SafetyMarginPercent, 1) {
		t.Errorf("margin = %v, want +Inf", s.SafetyMarginPercent)
	}
	assertClose(t, s.MinRequiredWLLKg, 0, 1e-12, "min required")
}

// =============================================================================
// GEOMETRY VALIDATION
// =============================================================================

func TestValidateGeometry_CleanLift(t *testing.T) {
	in := rigging.RiggingInput{
		Hitch:            rigging.HitchVertical,
		LoadWeightKg:     1000,
		LegCount:         2,
		IncludedAngleDeg: 60,
		SpacingMM:        2000,
		SlingWLLKg:       2000,
	}
	r := newCalc().ValidateGeometry(in)

	if !r.Valid || len(r.Warnings) != 0 {
		t.Errorf("expected clean report, got %+v", r)
	}
}

func TestValidateGeometry_AlwaysValidOnlyWarns(t *testing.T) {
	// GIVEN: A lift wrong in every advisory dimension
	// WHEN: Validating geometry
	// THEN: Every issue is a warning; the report never flips invalid

	in := rigging.RiggingInput{
		LoadWeightKg:     -5,
		LegCount:         6,
		IncludedAngleDeg: 5,
		SlingWLLKg:       0,
	}
	r := newCalc().ValidateGeometry(in)

	if !r.Valid {
		t.Fatal("geometry validation is advisory; Valid must stay true")
	}
	if len(r.Warnings) != 4 {
		t.Fatalf("expected 4 warnings, got %d: %v", len(r.Warnings), r.Warnings)
	}
}

func TestValidateGeometry_WideAngleWarnsTwice(t *testing.T) {
	// An angle past both the advisory range and the high-tension line
	// draws both warnings.
	in := rigging.RiggingInput{
		LoadWeightKg:     1000,
		LegCount:         2,
		IncludedAngleDeg: 160,
		SlingWLLKg:       2000,
	}
	r := newCalc().ValidateGeometry(in)

	if !containsSubstring(r.Warnings, "outside the recommended") {
		t.Errorf("expected range warning, got %v", r.Warnings)
	}
	if !containsSubstring(r.Warnings, "sharply increase leg tension") {
		t.Errorf("expected high-tension warning, got %v", r.Warnings)
	}
}

func TestValidateGeometry_CoGOutsidePickPoints(t *testing.T) {
	in := rigging.RiggingInput{
		LoadWeightKg:     1000,
		LegCount:         2,
		IncludedAngleDeg: 60,
		CoGOffsetMM:      1500,
		SpacingMM:        2000,
		SlingWLLKg:       2000,
	}
	r := newCalc().ValidateGeometry(in)

	if !containsSubstring(r.Warnings, "outside the pick points") {
		t.Errorf("expected CoG warning, got %v", r.Warnings)
	}
}

// =============================================================================
// COMPOSITE ANALYSIS
// =============================================================================

func TestAnalyze_SafeTwoLegLift(t *testing.T) {
	// GIVEN: 1,000 kg, two centred legs at 60 degrees, 2,000 kg slings
	// WHEN: Running the full analysis
	// THEN: Tensions carry the angle factor, the lift is safe overall

	in := rigging.RiggingInput{
		Hitch:            rigging.HitchVertical,
		LoadWeightKg:     1000,
		LegCount:         2,
		IncludedAngleDeg: 60,
		SpacingMM:        2000,
		SlingWLLKg:       2000,
	}
	r := newCalc().Analyze(in)

	// Per-leg: 1000 x 9.80665 / 2 x 1.1547005
	assertClose(t, r.Distribution.LegTensionsN[0], 5661.872, 1e-2, "scaled leg tension")
	assertClose(t, r.MaxLegTensionKN, 5.661872, 1e-5, "max tension kN")
	if !r.GeometryValid || !r.Safety.WLLAdequate || !r.OverallSafe {
		t.Errorf("expected safe lift, got %+v", r.Safety)
	}
}

func TestAnalyze_AngleFactorScalesTensionsNotShares(t *testing.T) {
	c := newCalc()
	in := rigging.RiggingInput{
		Hitch:            rigging.HitchVertical,
		LoadWeightKg:     1000,
		LegCount:         2,
		IncludedAngleDeg: 90,
		CoGOffsetMM:      500,
		SpacingMM:        2000,
		SlingWLLKg:       3000,
	}
	r := c.Analyze(in)
	base := c.LoadDistribution(in.LoadWeightKg, in.LegCount, in.CoGOffsetMM, in.SpacingMM)

	// Shares and imbalance are unchanged by the uniform scaling.
	assertClose(t, r.Distribution.LegShares[1], base.LegShares[1], 1e-12, "share")
	assertClose(t, r.Distribution.ImbalanceRatio, base.ImbalanceRatio, 1e-9, "imbalance")

	factor := c.AngleFactor(in.IncludedAngleDeg).AngleFactor
	assertClose(t, r.Distribution.MaxTensionN, base.MaxTensionN*factor, 1e-6, "scaled max")
}

func TestAnalyze_GeometryWarningsMergedAfterSafety(t *testing.T) {
	// GIVEN: An overloaded lift with a bad angle
	// WHEN: Analyzing
	// THEN: The safety warning comes first, geometry warnings after

	in := rigging.RiggingInput{
		Hitch:            rigging.HitchVertical,
		LoadWeightKg:     5000,
		LegCount:         2,
		IncludedAngleDeg: 160,
		SpacingMM:        2000,
		SlingWLLKg:       1000,
	}
	r := newCalc().Analyze(in)

	if r.OverallSafe {
		t.Fatal("overloaded lift must not be safe")
	}
	if len(r.Safety.Warnings) < 3 {
		t.Fatalf("expected safety + geometry warnings, got %v", r.Safety.Warnings)
	}
	if !strings.Contains(r.Safety.Warnings[0], "inadequate") {
		t.Errorf("first warning should be the WLL verdict: %q", r.Safety.Warnings[0])
	}
}

func TestAnalyze_ZeroWeightIsSafeNoop(t *testing.T) {
	in := rigging.RiggingInput{
		Hitch:            rigging.HitchVertical,
		LegCount:         2,
		IncludedAngleDeg: 60,
		SpacingMM:        2000,
		SlingWLLKg:       2000,
	}
	r := newCalc().Analyze(in)

	assertClose(t, r.MaxLegTensionKN, 0, 1e-12, "max tension")
	if !r.Safety.WLLAdequate {
		t.Error("zero-tension lift should be trivially adequate")
	}
}
