/*
analytics.go - Read-only analytics over a computed PayrollResult

PURPOSE:
  Derives projections and effective rates from an already-computed result.
  No new calculation semantics live here: this is pure arithmetic over
  published figures, the payroll analogue of a balance projection.

GUARDS:
  Zero gross yields all-zero rates; annualization is simple multiplication
  by periods per year, the same convention the withholding engine uses.
*/
package payroll

import (
	"github.com/marko9795/boilermaker/money"
	"github.com/marko9795/boilermaker/tax"
)

// YTDProjection annualizes one period's figures and projects the
// accumulators forward by one committed period.
type YTDProjection struct {
	// Current period's figures annualized (x periods per year).
	AnnualGross     money.Money
	AnnualCPP       money.Money
	AnnualEI        money.Money
	AnnualIncomeTax money.Money
	AnnualNet       money.Money

	// Accumulators as they would stand after committing this period.
	NextYearToDate tax.YearToDate
}

// Projections derives annualized figures and the post-commit accumulators
// from a computed result.
func Projections(r PayrollResult, ytd tax.YearToDate, frequency PayFrequency) YTDProjection {
	periods := frequency.PeriodsPerYear()
	d := r.Deductions

	return YTDProjection{
		AnnualGross:     r.Gross.Total.MulInt(periods).Round2(),
		AnnualCPP:       d.CPP1.Add(d.CPP2).MulInt(periods).Round2(),
		AnnualEI:        d.EI.MulInt(periods).Round2(),
		AnnualIncomeTax: d.FederalTax.Add(d.ProvincialTax).MulInt(periods).Round2(),
		AnnualNet:       r.Net.MulInt(periods).Round2(),
		NextYearToDate:  ytd.Next(r.Gross.TaxableWage, d.Statutory),
	}
}

// EffectiveRates expresses each deduction family as a percentage of gross.
type EffectiveRates struct {
	CPPPercent        float64
	EIPercent         float64
	IncomeTaxPercent  float64
	VoluntaryPercent  float64
	TotalDeductionPct float64
	NetPercent        float64
}

// EffectiveRatesFor computes deduction rates against gross total.
// A zero-gross period yields all-zero rates.
func EffectiveRatesFor(r PayrollResult) EffectiveRates {
	gross := r.Gross.Total
	if !gross.IsPositive() {
		return EffectiveRates{}
	}

	pct := func(m money.Money) float64 {
		return m.Div(gross).MulInt(100).Round2().Float64()
	}

	d := r.Deductions
	return EffectiveRates{
		CPPPercent:        pct(d.CPP1.Add(d.CPP2)),
		EIPercent:         pct(d.EI),
		IncomeTaxPercent:  pct(d.FederalTax.Add(d.ProvincialTax)),
		VoluntaryPercent:  pct(d.UnionDues.Add(d.RRSP).Add(d.Other)),
		TotalDeductionPct: pct(d.Total),
		NetPercent:        pct(r.Net),
	}
}
