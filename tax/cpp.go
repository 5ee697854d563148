/*
cpp.go - CPP base (CPP1) and second-tier (CPP2) contributions

PURPOSE:
  Computes one pay period's employee CPP contributions given the period's
  pensionable earnings and the caller-carried year-to-date pensionable
  total. Contribution room is derived from the annual ceilings, so a
  period that lands at or past a ceiling contributes zero.

CPP1 (base):
  Per-period exemption = annual basic exemption / periods per year.
  Room                 = max(0, (YMPE - exemption) - YTD pensionable)
  Base                 = clamp(earnings - per-period exemption, 0, room)
  Contribution         = round2(base x rate1)

CPP2 (second tier):
  Applies to the band between YMPE and YAMPE. The contribution is the
  portion of that band crossed by this period's earnings:
  After = min(YTD + earnings, YAMPE)
  Delta = max(0, After - max(YTD, YMPE))
  Contribution = round2(delta x rate2)

BOUNDARY NOTE:
  A period whose earnings straddle YMPE has CPP1 and CPP2 computed against
  two independently derived rooms. The allocation can be off by a few
  cents right at the crossing; no joint reconciliation is performed. This
  matches the published behavior and must not be "fixed" silently.
*/
package tax

import "github.com/marko9795/boilermaker/money"

// CPPResult is one period's CPP contributions.
type CPPResult struct {
	Contribution1 money.Money // base CPP
	Contribution2 money.Money // second tier
	Total         money.Money
}

// CPP computes base and second-tier contributions for one pay period.
// Negative earnings or YTD totals are treated as zero.
func (c Calculator) CPP(pensionable, ytdPensionable money.Money, periodsPerYear int) CPPResult {
	periods := normalizePeriods(periodsPerYear)
	t := c.Tables.CPP

	earnings := pensionable.Clamp0()
	ytd := ytdPensionable.Clamp0()

	// CPP1: contribution room against the YMPE ceiling.
	periodExemption := t.BasicExemption.DivInt(periods)
	room := t.YMPE.Sub(t.BasicExemption).Sub(ytd).Clamp0()
	base := money.Min(earnings.Sub(periodExemption).Clamp0(), room)
	cpp1 := base.Mul(t.Rate1).Round2()

	// CPP2: portion of the YMPE..YAMPE band crossed this period.
	after := money.Min(ytd.Add(earnings), t.YAMPE)
	bandFloor := money.Max(ytd, t.YMPE)
	delta := after.Sub(bandFloor).Clamp0()
	cpp2 := delta.Mul(t.Rate2).Round2()

	return CPPResult{
		Contribution1: cpp1,
		Contribution2: cpp2,
		Total:         cpp1.Add(cpp2),
	}
}
