/*
Package money provides the currency value object used by the payroll engines.

PURPOSE:
  All dollar amounts flowing through the tax and payroll calculators use
  Money, a thin value wrapper around decimal.Decimal. This keeps currency
  arithmetic exact and pushes rounding to a single, explicit place.

ROUNDING DISCIPLINE:
  Amounts are rounded to cents ONLY when published into a result field
  (Round2). Intermediate values within one formula stay unrounded so the
  published cent value has no accumulated drift.

DESIGN PRINCIPLES:
  1. Value semantics: Money is immutable; every operation returns a new value
  2. Precision: decimal.Decimal avoids binary floating-point error on currency
  3. Clamping: negative inputs degrade to zero via Clamp0, never panic

USAGE:
  gross := money.FromFloat(62.50).MulFloat(40) // 2500 exact
  cpp := base.MulRate(rates.CPP1).Round2()     // publish boundary

SEE ALSO:
  - tax/: uses Money for all contribution and withholding math
  - payroll/: uses Money for gross/deduction/net breakdowns
*/
package money

import "github.com/shopspring/decimal"

// =============================================================================
// MONEY - Immutable currency amount
// =============================================================================

// Money is a currency amount in dollars. The zero value is $0.00.
type Money struct {
	Value decimal.Decimal
}

// Constructors

func FromFloat(v float64) Money { return Money{Value: decimal.NewFromFloat(v)} }
func FromInt(v int64) Money     { return Money{Value: decimal.NewFromInt(v)} }
func Zero() Money               { return Money{Value: decimal.Zero} }

// MustParse parses a decimal string, returning zero on malformed input.
// Used for rate-table literals where the strings are compile-time constants.
func MustParse(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{Value: decimal.Zero}
	}
	return Money{Value: d}
}

// Arithmetic

func (m Money) Add(o Money) Money { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Mul(o Money) Money { return Money{Value: m.Value.Mul(o.Value)} }
func (m Money) Neg() Money        { return Money{Value: m.Value.Neg()} }

// MulFloat multiplies by a unitless scalar (hours, day counts, period counts).
func (m Money) MulFloat(s float64) Money {
	return Money{Value: m.Value.Mul(decimal.NewFromFloat(s))}
}

// MulInt multiplies by an integer scalar.
func (m Money) MulInt(n int) Money {
	return Money{Value: m.Value.Mul(decimal.NewFromInt(int64(n)))}
}

// DivInt divides by an integer scalar (e.g. periods per year).
// Division by zero returns zero rather than panicking; the engines treat
// a zero period count as a degenerate input.
func (m Money) DivInt(n int) Money {
	if n == 0 {
		return Zero()
	}
	return Money{Value: m.Value.Div(decimal.NewFromInt(int64(n)))}
}

// Div divides by another amount, zero divisor yields zero.
func (m Money) Div(o Money) Money {
	if o.Value.IsZero() {
		return Zero()
	}
	return Money{Value: m.Value.Div(o.Value)}
}

// Comparison

func (m Money) Cmp(o Money) int          { return m.Value.Cmp(o.Value) }
func (m Money) LessThan(o Money) bool    { return m.Value.LessThan(o.Value) }
func (m Money) GreaterThan(o Money) bool { return m.Value.GreaterThan(o.Value) }
func (m Money) IsNegative() bool         { return m.Value.IsNegative() }
func (m Money) IsZero() bool             { return m.Value.IsZero() }
func (m Money) IsPositive() bool         { return m.Value.IsPositive() }

// Min returns the smaller of the two amounts.
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of the two amounts.
func Max(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Clamp0 returns the amount floored at zero. Negative earnings, negative
// year-to-date totals and similar out-of-range inputs degrade to zero
// rather than producing negative contributions.
func (m Money) Clamp0() Money {
	if m.IsNegative() {
		return Zero()
	}
	return m
}

// Round2 rounds to cents. Call only at publish boundaries.
func (m Money) Round2() Money { return Money{Value: m.Value.Round(2)} }

// Output

func (m Money) Float64() float64 { f, _ := m.Value.Float64(); return f }
func (m Money) String() string   { return m.Value.StringFixed(2) }
