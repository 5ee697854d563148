package payroll

import (
	"github.com/marko9795/boilermaker/money"
	"github.com/marko9795/boilermaker/tax"
)

// Calculator composes the tax calculator into the full pay-period
// calculation. Construct with NewCalculator; all methods are pure.
type Calculator struct {
	Tax tax.Calculator
}

// NewCalculator returns a payroll calculator over the given tax calculator.
func NewCalculator(t tax.Calculator) Calculator {
	return Calculator{Tax: t}
}

// NetPay returns gross total less total deductions, rounded to cents.
// Net pay can be negative when deductions exceed gross; the validator
// warns, the calculation reports.
func (c Calculator) NetPay(grossTotal, totalDeductions money.Money) money.Money {
	return grossTotal.Sub(totalDeductions).Round2()
}

// Calculate is the primary entry point for one pay period:
// gross breakdown -> deduction breakdown -> net pay.
//
// Statutory deductions (CPP, EI, income tax) are computed on the taxable
// wage; non-taxable per-diem allowances flow straight through to net.
func (c Calculator) Calculate(in PayPeriodInput, cfg DeductionConfig, ytd tax.YearToDate) PayrollResult {
	gross := c.GrossPay(in)
	deductions := c.Deductions(gross.TaxableWage, cfg, ytd, in.PayDate, in.Province, in.Frequency)

	return PayrollResult{
		Gross:      gross,
		Deductions: deductions,
		Net:        c.NetPay(gross.Total, deductions.Total),
	}
}
