/*
Package payroll orchestrates one pay period's calculation for hourly trade
work: gross pay breakdown across hour categories, voluntary deductions,
statutory deductions via the tax calculator, and net pay.

KEY CONCEPTS IN THIS FILE (types.go):
  - PayPeriodInput: one period's raw facts (rates, hours, allowances, date)
  - PayFrequency: pay cadence, resolving to periods per year
  - DeductionConfig: voluntary deduction parameters
  - GrossPayBreakdown / DeductionBreakdown / PayrollResult: immutable results

DESIGN PRINCIPLES:
  1. Value objects: results are created fresh per calculation, never mutated
  2. Caller-owned state: year-to-date totals come in via tax.YearToDate
  3. Clamp, don't throw: calculation absorbs bad numbers; Validate advises

SEE ALSO:
  - payroll.go: the top-level Calculate composition
  - validate.go: advisory input validation
*/
package payroll

import (
	"time"

	"github.com/marko9795/boilermaker/money"
	"github.com/marko9795/boilermaker/tax"
)

// =============================================================================
// PAY FREQUENCY
// =============================================================================

// PayFrequency is the pay cadence.
type PayFrequency string

const (
	FrequencyWeekly      PayFrequency = "weekly"
	FrequencyBiweekly    PayFrequency = "biweekly"
	FrequencySemimonthly PayFrequency = "semimonthly"
	FrequencyMonthly     PayFrequency = "monthly"
)

// PeriodsPerYear resolves the frequency to its annual period count.
// Unknown frequencies default to weekly, the common cadence for hourly
// trade work.
func (f PayFrequency) PeriodsPerYear() int {
	switch f {
	case FrequencyBiweekly:
		return 26
	case FrequencySemimonthly:
		return 24
	case FrequencyMonthly:
		return 12
	default:
		return 52
	}
}

// =============================================================================
// INPUTS
// =============================================================================

// PayPeriodInput is one pay period's raw facts. Immutable per call.
type PayPeriodInput struct {
	HourlyRate money.Money

	// Hours by category. Overtime multipliers are 1.5x and 2x.
	StraightHours    float64
	TimeAndHalfHours float64
	DoubleTimeHours  float64

	// Shift premium added per hour worked, across all hour categories.
	ShiftPremium money.Money

	// Travel pay (taxable wage).
	TravelHours float64
	TravelRate  money.Money

	// Per-diem allowance (non-taxable).
	PerDiemRate money.Money
	PerDiemDays int

	PayDate   time.Time
	Frequency PayFrequency
	Province  tax.Province
}

// totalHoursWorked is the premium-bearing hour count (excludes travel).
func (in PayPeriodInput) totalHoursWorked() float64 {
	return in.StraightHours + in.TimeAndHalfHours + in.DoubleTimeHours
}

// DeductionConfig holds the voluntary deduction parameters.
type DeductionConfig struct {
	UnionDuesPercent float64
	RRSPPercent      float64

	// RRSPAtSource: whether the RRSP contribution reduces taxable income
	// in the same period (at-source deduction).
	RRSPAtSource bool

	// Flat other deductions (tool levy, benefits copay, garnishments).
	OtherDeductions money.Money
}

// =============================================================================
// RESULTS
// =============================================================================

// GrossPayBreakdown is one period's gross pay by category. Every field is
// published rounded to cents.
type GrossPayBreakdown struct {
	StraightPay    money.Money
	TimeAndHalfPay money.Money
	DoubleTimePay  money.Money
	TravelPay      money.Money

	// PerDiem is the non-taxable allowance total.
	PerDiem money.Money

	// TaxableWage = straight + time-and-a-half + double + travel.
	TaxableWage money.Money

	// NonTaxable = per-diem allowances.
	NonTaxable money.Money

	// Total = TaxableWage + NonTaxable.
	Total money.Money
}

// VoluntaryDeductions is the non-statutory side of the deduction breakdown.
type VoluntaryDeductions struct {
	UnionDues money.Money
	RRSP      money.Money
	Other     money.Money
	Total     money.Money
}

// DeductionBreakdown merges voluntary and statutory deductions.
// Invariant: Total equals the sum of the eight named amounts.
type DeductionBreakdown struct {
	UnionDues money.Money
	RRSP      money.Money
	Other     money.Money

	CPP1          money.Money
	CPP2          money.Money
	EI            money.Money
	FederalTax    money.Money
	ProvincialTax money.Money

	Total money.Money

	// Statutory carries the full sub-results for callers that need the
	// annualized income or contribution detail.
	Statutory tax.StatutoryResult
}

// PayrollResult is the complete outcome of one pay period.
type PayrollResult struct {
	Gross      GrossPayBreakdown
	Deductions DeductionBreakdown

	// Net = Gross.Total - Deductions.Total, rounded to cents.
	Net money.Money
}
