package tax

import (
	"time"

	"github.com/marko9795/boilermaker/money"
)

// StatutoryResult bundles one period's statutory deductions.
type StatutoryResult struct {
	CPP       CPPResult
	EI        EIResult
	IncomeTax IncomeTaxResult

	// TotalStatutory = CPP total + EI premium + income-tax total.
	TotalStatutory money.Money
}

// Statutory computes all statutory deductions for one pay period.
//
// CPP and EI are computed on the gross wage. Income tax is computed on the
// gross wage less any RRSP contribution deducted at source, floored at
// zero - at-source RRSP reduces taxable income but never CPP/EI earnings.
func (c Calculator) Statutory(
	grossWage money.Money,
	ytd YearToDate,
	payDate time.Time,
	province Province,
	periodsPerYear int,
	rrspAtSource money.Money,
) StatutoryResult {
	cpp := c.CPP(grossWage, ytd.Pensionable, periodsPerYear)
	ei := c.EI(grossWage, ytd.Insurable, periodsPerYear)

	taxable := grossWage.Sub(rrspAtSource.Clamp0()).Clamp0()
	incomeTax := c.IncomeTax(taxable, payDate, province, periodsPerYear)

	return StatutoryResult{
		CPP:            cpp,
		EI:             ei,
		IncomeTax:      incomeTax,
		TotalStatutory: cpp.Total.Add(ei.Premium).Add(incomeTax.Total),
	}
}
