// Package tax implements Canadian statutory payroll deductions: CPP base and
// second-tier contributions, EI premiums, and progressive federal/provincial
// income-tax withholding with dated rate schedules.
//
// Every function is pure and stateless. Year-to-date running totals are
// caller-supplied (see YearToDate); the calculator never stores anything
// between calls. Numeric edge cases clamp to zero rather than failing -
// a withholding engine must never crash mid-calculation, so input sanity
// checking lives in the advisory validators, not here.
package tax

// Calculator computes statutory deductions against an injected set of
// rate tables. The zero value is unusable; construct with NewCalculator.
type Calculator struct {
	Tables Tables
}

// NewCalculator returns a calculator bound to the given tables.
func NewCalculator(t Tables) Calculator {
	return Calculator{Tables: t}
}

// normalizePeriods guards the per-period proration math. A period count
// below one would invert the annual exemption proration.
func normalizePeriods(periodsPerYear int) int {
	if periodsPerYear < 1 {
		return 1
	}
	return periodsPerYear
}
