/*
ytd.go - Caller-carried year-to-date accumulators

PURPOSE:
  The calculator is stateless: every running total lives with the caller
  and is passed in explicitly. YearToDate is that state, and Next is the
  one sanctioned way to advance it after a period has been committed.

CONTRACT:
  The engine never mutates a YearToDate. The caller persists the value
  returned by Next and passes it into the following period's calculation.
  Negative accumulators (corrupt caller state) clamp to zero on read
  rather than producing negative contribution room.
*/
package tax

import "github.com/marko9795/boilermaker/money"

// YearToDate holds the running totals carried across pay periods within
// one tax year.
type YearToDate struct {
	Pensionable money.Money // cumulative pensionable earnings
	Insurable   money.Money // cumulative insurable earnings
	CPP1Paid    money.Money
	CPP2Paid    money.Money
	EIPaid      money.Money
}

// Clamped returns a copy with every negative field floored at zero.
func (y YearToDate) Clamped() YearToDate {
	return YearToDate{
		Pensionable: y.Pensionable.Clamp0(),
		Insurable:   y.Insurable.Clamp0(),
		CPP1Paid:    y.CPP1Paid.Clamp0(),
		CPP2Paid:    y.CPP2Paid.Clamp0(),
		EIPaid:      y.EIPaid.Clamp0(),
	}
}

// Next returns the accumulators advanced by one committed period.
// Pure: the receiver is unchanged.
func (y YearToDate) Next(grossWage money.Money, r StatutoryResult) YearToDate {
	c := y.Clamped()
	wage := grossWage.Clamp0()
	return YearToDate{
		Pensionable: c.Pensionable.Add(wage),
		Insurable:   c.Insurable.Add(wage),
		CPP1Paid:    c.CPP1Paid.Add(r.CPP.Contribution1),
		CPP2Paid:    c.CPP2Paid.Add(r.CPP.Contribution2),
		EIPaid:      c.EIPaid.Add(r.EI.Premium),
	}
}
