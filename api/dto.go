/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-backed domain model from the external API contract:
  clients see plain JSON numbers (dollars, kilograms, degrees) and the
  handlers convert at the boundary.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  DTOs are pure data carriers. The advisory validators run server-side and
  their reports travel back inside the response; they never block.

SEE ALSO:
  - handlers.go: conversion and endpoint logic
*/
package api

import (
	"fmt"
	"math"
	"time"

	"github.com/marko9795/boilermaker/money"
	"github.com/marko9795/boilermaker/payroll"
	"github.com/marko9795/boilermaker/rigging"
	"github.com/marko9795/boilermaker/tax"
)

// =============================================================================
// PAYROLL REQUEST TYPES
// =============================================================================

// PayPeriodDTO carries one pay period's raw facts.
type PayPeriodDTO struct {
	HourlyRate       float64 `json:"hourly_rate"`
	StraightHours    float64 `json:"straight_hours"`
	TimeAndHalfHours float64 `json:"time_and_half_hours"`
	DoubleTimeHours  float64 `json:"double_time_hours"`
	ShiftPremium     float64 `json:"shift_premium"`
	TravelHours      float64 `json:"travel_hours"`
	TravelRate       float64 `json:"travel_rate"`
	PerDiemRate      float64 `json:"per_diem_rate"`
	PerDiemDays      int     `json:"per_diem_days"`
	PayDate          string  `json:"pay_date"` // YYYY-MM-DD
	Frequency        string  `json:"frequency"`
	Province         string  `json:"province"`
}

// DeductionConfigDTO carries the voluntary deduction parameters.
type DeductionConfigDTO struct {
	UnionDuesPercent float64 `json:"union_dues_percent"`
	RRSPPercent      float64 `json:"rrsp_percent"`
	RRSPAtSource     bool    `json:"rrsp_at_source"`
	OtherDeductions  float64 `json:"other_deductions"`
}

// YearToDateDTO carries the caller-side accumulators.
type YearToDateDTO struct {
	Pensionable float64 `json:"pensionable"`
	Insurable   float64 `json:"insurable"`
	CPP1Paid    float64 `json:"cpp1_paid"`
	CPP2Paid    float64 `json:"cpp2_paid"`
	EIPaid      float64 `json:"ei_paid"`
}

// PreviewRequest is a stateless calculation: the client supplies YTD.
type PreviewRequest struct {
	Input      PayPeriodDTO       `json:"input"`
	Config     DeductionConfigDTO `json:"config"`
	YearToDate YearToDateDTO      `json:"year_to_date"`
}

// CommitPeriodRequest commits a period against the stored YTD.
type CommitPeriodRequest struct {
	Input  PayPeriodDTO       `json:"input"`
	Config DeductionConfigDTO `json:"config"`
}

// =============================================================================
// PAYROLL RESPONSE TYPES
// =============================================================================

// GrossPayDTO mirrors payroll.GrossPayBreakdown in plain numbers.
type GrossPayDTO struct {
	StraightPay    float64 `json:"straight_pay"`
	TimeAndHalfPay float64 `json:"time_and_half_pay"`
	DoubleTimePay  float64 `json:"double_time_pay"`
	TravelPay      float64 `json:"travel_pay"`
	PerDiem        float64 `json:"per_diem"`
	TaxableWage    float64 `json:"taxable_wage"`
	NonTaxable     float64 `json:"non_taxable"`
	Total          float64 `json:"total"`
}

// DeductionsDTO mirrors payroll.DeductionBreakdown.
type DeductionsDTO struct {
	UnionDues     float64 `json:"union_dues"`
	RRSP          float64 `json:"rrsp"`
	Other         float64 `json:"other"`
	CPP1          float64 `json:"cpp1"`
	CPP2          float64 `json:"cpp2"`
	EI            float64 `json:"ei"`
	FederalTax    float64 `json:"federal_tax"`
	ProvincialTax float64 `json:"provincial_tax"`
	Total         float64 `json:"total"`
}

// EffectiveRatesDTO mirrors payroll.EffectiveRates.
type EffectiveRatesDTO struct {
	CPPPercent        float64 `json:"cpp_percent"`
	EIPercent         float64 `json:"ei_percent"`
	IncomeTaxPercent  float64 `json:"income_tax_percent"`
	VoluntaryPercent  float64 `json:"voluntary_percent"`
	TotalDeductionPct float64 `json:"total_deduction_percent"`
	NetPercent        float64 `json:"net_percent"`
}

// ValidationDTO mirrors an advisory validation report.
type ValidationDTO struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// PayrollResultDTO is the full calculation response.
type PayrollResultDTO struct {
	Gross          GrossPayDTO       `json:"gross"`
	Deductions     DeductionsDTO     `json:"deductions"`
	Net            float64           `json:"net"`
	EffectiveRates EffectiveRatesDTO `json:"effective_rates"`
	Validation     ValidationDTO     `json:"validation"`
	NextYearToDate YearToDateDTO     `json:"next_year_to_date"`
}

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	TradeClass string  `json:"trade_class"`
	Province   string  `json:"province"`
	HourlyRate float64 `json:"hourly_rate"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	TradeClass string  `json:"trade_class"`
	Province   string  `json:"province"`
	HourlyRate float64 `json:"hourly_rate"`
}

// PayPeriodRecordDTO is one committed period in history listings.
type PayPeriodRecordDTO struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	PayDate         string  `json:"pay_date"`
	GrossTotal      float64 `json:"gross_total"`
	DeductionsTotal float64 `json:"deductions_total"`
	NetPay          float64 `json:"net_pay"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

// =============================================================================
// RIGGING TYPES
// =============================================================================

// RiggingRequest carries one lift's facts, optionally saved.
type RiggingRequest struct {
	Hitch            string  `json:"hitch"`
	LoadWeightKg     float64 `json:"load_weight_kg"`
	LegCount         int     `json:"leg_count"`
	IncludedAngleDeg float64 `json:"included_angle_deg"`
	CoGOffsetMM      float64 `json:"cog_offset_mm"`
	SpacingMM        float64 `json:"spacing_mm"`
	SlingWLLKg       float64 `json:"sling_wll_kg"`

	Save        bool   `json:"save,omitempty"`
	Description string `json:"description,omitempty"`
}

// RiggingResultDTO is the full lift analysis response.
//
// Fields that can be unbounded in the domain result (+Inf at degenerate
// geometry) are pointers: null in JSON means "unbounded", since JSON has
// no representation for infinity.
type RiggingResultDTO struct {
	AngleFactor *float64 `json:"angle_factor"`
	LegAngleDeg float64  `json:"leg_angle_deg"`
	Efficiency  float64  `json:"efficiency"`

	LegShares      []float64 `json:"leg_shares"`
	LegTensionsN   []float64 `json:"leg_tensions_n"`
	MaxTensionN    float64   `json:"max_tension_n"`
	MinTensionN    float64   `json:"min_tension_n"`
	ImbalanceRatio *float64  `json:"imbalance_ratio"`
	Balanced       bool      `json:"balanced"`

	WLLAdequate         bool     `json:"wll_adequate"`
	SafetyMarginPercent *float64 `json:"safety_margin_percent"`
	EffectiveWLLKg      float64  `json:"effective_wll_kg"`
	MinRequiredWLLKg    float64  `json:"min_required_wll_kg"`
	RecommendedWLLKg    float64  `json:"recommended_wll_kg"`

	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`

	MaxLegTensionKN float64 `json:"max_leg_tension_kn"`
	GeometryValid   bool    `json:"geometry_valid"`
	OverallSafe     bool    `json:"overall_safe"`
}

// RiggingRecordDTO is one saved lift plan in history listings.
type RiggingRecordDTO struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	OverallSafe bool   `json:"overall_safe"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func (d PayPeriodDTO) toDomain() (payroll.PayPeriodInput, error) {
	payDate, err := time.ParseInLocation("2006-01-02", d.PayDate, time.UTC)
	if err != nil {
		return payroll.PayPeriodInput{}, fmt.Errorf("bad pay_date %q: %w", d.PayDate, err)
	}
	return payroll.PayPeriodInput{
		HourlyRate:       money.FromFloat(d.HourlyRate),
		StraightHours:    d.StraightHours,
		TimeAndHalfHours: d.TimeAndHalfHours,
		DoubleTimeHours:  d.DoubleTimeHours,
		ShiftPremium:     money.FromFloat(d.ShiftPremium),
		TravelHours:      d.TravelHours,
		TravelRate:       money.FromFloat(d.TravelRate),
		PerDiemRate:      money.FromFloat(d.PerDiemRate),
		PerDiemDays:      d.PerDiemDays,
		PayDate:          payDate,
		Frequency:        payroll.PayFrequency(d.Frequency),
		Province:         tax.Province(d.Province),
	}, nil
}

func (d DeductionConfigDTO) toDomain() payroll.DeductionConfig {
	return payroll.DeductionConfig{
		UnionDuesPercent: d.UnionDuesPercent,
		RRSPPercent:      d.RRSPPercent,
		RRSPAtSource:     d.RRSPAtSource,
		OtherDeductions:  money.FromFloat(d.OtherDeductions),
	}
}

func (d YearToDateDTO) toDomain() tax.YearToDate {
	return tax.YearToDate{
		Pensionable: money.FromFloat(d.Pensionable),
		Insurable:   money.FromFloat(d.Insurable),
		CPP1Paid:    money.FromFloat(d.CPP1Paid),
		CPP2Paid:    money.FromFloat(d.CPP2Paid),
		EIPaid:      money.FromFloat(d.EIPaid),
	}
}

func ytdToDTO(y tax.YearToDate) YearToDateDTO {
	return YearToDateDTO{
		Pensionable: y.Pensionable.Float64(),
		Insurable:   y.Insurable.Float64(),
		CPP1Paid:    y.CPP1Paid.Float64(),
		CPP2Paid:    y.CPP2Paid.Float64(),
		EIPaid:      y.EIPaid.Float64(),
	}
}

func resultToDTO(r payroll.PayrollResult, validation payroll.ValidationReport, nextYTD tax.YearToDate) PayrollResultDTO {
	rates := payroll.EffectiveRatesFor(r)
	return PayrollResultDTO{
		Gross: GrossPayDTO{
			StraightPay:    r.Gross.StraightPay.Float64(),
			TimeAndHalfPay: r.Gross.TimeAndHalfPay.Float64(),
			DoubleTimePay:  r.Gross.DoubleTimePay.Float64(),
			TravelPay:      r.Gross.TravelPay.Float64(),
			PerDiem:        r.Gross.PerDiem.Float64(),
			TaxableWage:    r.Gross.TaxableWage.Float64(),
			NonTaxable:     r.Gross.NonTaxable.Float64(),
			Total:          r.Gross.Total.Float64(),
		},
		Deductions: DeductionsDTO{
			UnionDues:     r.Deductions.UnionDues.Float64(),
			RRSP:          r.Deductions.RRSP.Float64(),
			Other:         r.Deductions.Other.Float64(),
			CPP1:          r.Deductions.CPP1.Float64(),
			CPP2:          r.Deductions.CPP2.Float64(),
			EI:            r.Deductions.EI.Float64(),
			FederalTax:    r.Deductions.FederalTax.Float64(),
			ProvincialTax: r.Deductions.ProvincialTax.Float64(),
			Total:         r.Deductions.Total.Float64(),
		},
		Net: r.Net.Float64(),
		EffectiveRates: EffectiveRatesDTO{
			CPPPercent:        rates.CPPPercent,
			EIPercent:         rates.EIPercent,
			IncomeTaxPercent:  rates.IncomeTaxPercent,
			VoluntaryPercent:  rates.VoluntaryPercent,
			TotalDeductionPct: rates.TotalDeductionPct,
			NetPercent:        rates.NetPercent,
		},
		Validation:     validationToDTO(validation),
		NextYearToDate: ytdToDTO(nextYTD),
	}
}

func validationToDTO(v payroll.ValidationReport) ValidationDTO {
	return ValidationDTO{
		Valid:    v.Valid,
		Errors:   orEmpty(v.Errors),
		Warnings: orEmpty(v.Warnings),
	}
}

func (r RiggingRequest) toDomain() rigging.RiggingInput {
	return rigging.RiggingInput{
		Hitch:            rigging.HitchType(r.Hitch),
		LoadWeightKg:     r.LoadWeightKg,
		LegCount:         r.LegCount,
		IncludedAngleDeg: r.IncludedAngleDeg,
		CoGOffsetMM:      r.CoGOffsetMM,
		SpacingMM:        r.SpacingMM,
		SlingWLLKg:       r.SlingWLLKg,
	}
}

func riggingToDTO(r rigging.RiggingResult) RiggingResultDTO {
	return RiggingResultDTO{
		AngleFactor: finitePtr(r.Angle.AngleFactor),
		LegAngleDeg: r.Angle.LegAngleDeg,
		Efficiency:  r.Angle.Efficiency,

		LegShares:      r.Distribution.LegShares,
		LegTensionsN:   finiteSlice(r.Distribution.LegTensionsN),
		MaxTensionN:    finite(r.Distribution.MaxTensionN),
		MinTensionN:    finite(r.Distribution.MinTensionN),
		ImbalanceRatio: finitePtr(r.Distribution.ImbalanceRatio),
		Balanced:       r.Distribution.Balanced,

		WLLAdequate:         r.Safety.WLLAdequate,
		SafetyMarginPercent: finitePtr(r.Safety.SafetyMarginPercent),
		EffectiveWLLKg:      r.Safety.EffectiveWLLKg,
		MinRequiredWLLKg:    r.Safety.MinRequiredWLLKg,
		RecommendedWLLKg:    r.Safety.RecommendedWLLKg,

		Warnings:        orEmpty(r.Safety.Warnings),
		Recommendations: orEmpty(r.Safety.Recommendations),

		MaxLegTensionKN: finite(r.MaxLegTensionKN),
		GeometryValid:   r.GeometryValid,
		OverallSafe:     r.OverallSafe,
	}
}

// orEmpty keeps empty lists as [] rather than null in JSON.
func orEmpty(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

// finitePtr maps non-finite values to nil ("unbounded" in JSON).
func finitePtr(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

// finite clamps non-finite values to zero for fields where unbounded
// only arises from degenerate geometry the warnings already flag.
func finite(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

func finiteSlice(fs []float64) []float64 {
	out := make([]float64, len(fs))
	for i, f := range fs {
		out[i] = finite(f)
	}
	return out
}
