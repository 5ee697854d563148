package payroll

import (
	"time"

	"github.com/marko9795/boilermaker/money"
	"github.com/marko9795/boilermaker/tax"
)

// VoluntaryDeductionsFor computes union dues, RRSP and flat other
// deductions against the period's gross wage. Negative percentages or
// amounts degrade to zero; bounds checking is the validator's job.
func (c Calculator) VoluntaryDeductionsFor(grossWage money.Money, cfg DeductionConfig) VoluntaryDeductions {
	wage := grossWage.Clamp0()

	union := wage.MulFloat(cfg.UnionDuesPercent / 100).Clamp0().Round2()
	rrsp := wage.MulFloat(cfg.RRSPPercent / 100).Clamp0().Round2()
	other := cfg.OtherDeductions.Clamp0().Round2()

	return VoluntaryDeductions{
		UnionDues: union,
		RRSP:      rrsp,
		Other:     other,
		Total:     union.Add(rrsp).Add(other),
	}
}

// Deductions computes the full deduction breakdown for one period.
//
// When the config marks RRSP as deducted at source, the RRSP amount is
// passed to the tax calculator as a taxable-income reducer for the same
// period; otherwise income tax is withheld on the full gross wage.
func (c Calculator) Deductions(
	grossWage money.Money,
	cfg DeductionConfig,
	ytd tax.YearToDate,
	payDate time.Time,
	province tax.Province,
	frequency PayFrequency,
) DeductionBreakdown {
	periods := frequency.PeriodsPerYear()

	voluntary := c.VoluntaryDeductionsFor(grossWage, cfg)

	rrspAtSource := money.Zero()
	if cfg.RRSPAtSource {
		rrspAtSource = voluntary.RRSP
	}

	statutory := c.Tax.Statutory(grossWage, ytd, payDate, province, periods, rrspAtSource)

	total := voluntary.Total.Add(statutory.TotalStatutory).Round2()

	return DeductionBreakdown{
		UnionDues:     voluntary.UnionDues,
		RRSP:          voluntary.RRSP,
		Other:         voluntary.Other,
		CPP1:          statutory.CPP.Contribution1,
		CPP2:          statutory.CPP.Contribution2,
		EI:            statutory.EI.Premium,
		FederalTax:    statutory.IncomeTax.Federal,
		ProvincialTax: statutory.IncomeTax.Provincial,
		Total:         total,
		Statutory:     statutory,
	}
}
