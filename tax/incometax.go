/*
incometax.go - Progressive federal and provincial withholding

PURPOSE:
  Computes one period's income-tax withholding. The period's taxable income
  is annualized by simple multiplication (periods per year), run through the
  bracket schedule in force on the pay date, reduced by the personal credits,
  and divided back to a per-period amount.

SCHEDULE SELECTION:
  Jurisdictions may change rates mid-year (both the federal government and
  Alberta cut their lowest bracket rate effective July 1, 2025). The
  calculator picks the latest schedule whose effective date is on or before
  the pay date.

CREDITS:
  Federal: (BPA + Canada Employment Amount) x lowest bracket rate, where the
  BPA phases linearly from its maximum to its minimum across the net-income
  phase-out band.
  Provincial: flat BPA x lowest bracket rate.

PROVINCES:
  Only Alberta is configured. Any other province withholds zero provincial
  tax - an explicit scope boundary, not an error.

CLAMPING:
  Negative taxable income is reported as given, but tax amounts clamp to
  zero. Credits can exceed gross tax at low incomes; withholding never goes
  negative.
*/
package tax

import (
	"time"

	"github.com/marko9795/boilermaker/money"
)

// IncomeTaxResult is one period's income-tax withholding.
type IncomeTaxResult struct {
	// TaxableIncome is the period's taxable income as given (may be negative).
	TaxableIncome money.Money

	// AnnualizedIncome = TaxableIncome x periods per year.
	AnnualizedIncome money.Money

	// Per-period withholding, rounded to cents.
	Federal    money.Money
	Provincial money.Money
	Total      money.Money
}

// IncomeTax computes federal and provincial withholding for one pay period.
func (c Calculator) IncomeTax(taxable money.Money, payDate time.Time, province Province, periodsPerYear int) IncomeTaxResult {
	periods := normalizePeriods(periodsPerYear)
	annual := taxable.MulInt(periods)

	federal := money.Zero()
	if sched, ok := scheduleFor(c.Tables.Federal, payDate); ok {
		gross := progressiveTax(sched, annual)
		credit := c.federalCredit(sched, annual)
		federal = gross.Sub(credit).Clamp0().DivInt(periods).Round2()
	}

	provincial := money.Zero()
	if table, ok := c.Tables.Provincial[province]; ok {
		if sched, ok := scheduleFor(table.Schedules, payDate); ok {
			gross := progressiveTax(sched, annual)
			credit := sched.LowestRate().Mul(table.BPA)
			provincial = gross.Sub(credit).Clamp0().DivInt(periods).Round2()
		}
	}

	return IncomeTaxResult{
		TaxableIncome:    taxable,
		AnnualizedIncome: annual,
		Federal:          federal,
		Provincial:       provincial,
		Total:            federal.Add(provincial),
	}
}

// progressiveTax walks the brackets low to high, taxing each slice of
// income at its bracket rate. Non-positive income yields zero.
func progressiveTax(s Schedule, income money.Money) money.Money {
	total := money.Zero()
	floor := money.Zero()

	for _, b := range s.Brackets {
		ceiling := income
		if b.UpTo != nil {
			ceiling = money.Min(income, *b.UpTo)
		}
		portion := ceiling.Sub(floor)
		if !portion.IsPositive() {
			break
		}
		total = total.Add(portion.Mul(b.Rate))
		if b.UpTo == nil {
			break
		}
		floor = *b.UpTo
	}
	return total
}

// federalCredit converts the phased BPA plus the employment amount into a
// tax credit at the schedule's lowest bracket rate.
func (c Calculator) federalCredit(s Schedule, annualIncome money.Money) money.Money {
	fc := c.Tables.FederalCredits
	bpa := fc.BPAMax

	switch {
	case annualIncome.Cmp(fc.PhaseCeiling) >= 0:
		bpa = fc.BPAMin
	case annualIncome.GreaterThan(fc.PhaseFloor):
		// Linear phase-out between the two thresholds.
		span := fc.PhaseCeiling.Sub(fc.PhaseFloor)
		progress := annualIncome.Sub(fc.PhaseFloor).Div(span)
		bpa = fc.BPAMax.Sub(fc.BPAMax.Sub(fc.BPAMin).Mul(progress))
	}

	return s.LowestRate().Mul(bpa.Add(fc.EmploymentAmount))
}
