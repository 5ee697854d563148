/*
tables.go - Statutory rate tables (config-as-data)

PURPOSE:
  Holds every statutory constant the tax calculator needs: CPP/EI caps and
  rates, federal and provincial bracket schedules, and credit parameters.
  The calculator receives a Tables value; nothing is hard-coded in the
  calculation paths. Supporting a new tax year or province is a data change,
  not a logic change.

DATED SCHEDULES:
  A jurisdiction can publish more than one bracket schedule per year (the
  2025 federal and Alberta rate cuts took effect July 1). Each Schedule
  carries an effective-from date; the calculator picks the latest schedule
  in force on the pay date. Pay dates are plain calendar dates compared at
  UTC midnight - there are no time-zone semantics in payroll dates.

CREDITS:
  Federal: the Basic Personal Amount phases linearly from its maximum below
  a low-income threshold down to its minimum above a high-income threshold,
  and the Canada Employment Amount is added before applying the lowest
  bracket rate.
  Provincial (AB): flat Basic Personal Amount at the lowest bracket rate.

PRESETS:
  Tables2025() returns the 2025 tables with January and July schedules for
  the federal government and Alberta. Provinces other than Alberta are not
  configured and withhold zero provincial tax.

SEE ALSO:
  - incometax.go: schedule selection and the progressive walk
  - factory/tables.go: JSON to Tables conversion
*/
package tax

import (
	"time"

	"github.com/marko9795/boilermaker/money"
)

// Province is a two-letter provincial/territorial code.
type Province string

const ProvinceAlberta Province = "AB"

// =============================================================================
// TABLE TYPES
// =============================================================================

// CPPTable holds Canada Pension Plan constants for one tax year.
type CPPTable struct {
	// Annual basic exemption, prorated per pay period by the calculator.
	BasicExemption money.Money

	// YMPE: ceiling for base (CPP1) contributions.
	YMPE money.Money

	// YAMPE: ceiling for second-tier (CPP2) contributions.
	// CPP2 applies to the band between YMPE and YAMPE.
	YAMPE money.Money

	// Employee contribution rates.
	Rate1 money.Money // base rate on pensionable earnings
	Rate2 money.Money // second-tier rate on the YMPE..YAMPE band
}

// EITable holds Employment Insurance constants for one tax year.
type EITable struct {
	MIE  money.Money // maximum insurable earnings
	Rate money.Money // employee premium rate
}

// Bracket is one step of a progressive schedule.
// A nil ceiling marks the open-ended top bracket.
type Bracket struct {
	UpTo *money.Money
	Rate money.Money
}

// Schedule is a dated bracket table. Brackets are ordered by ascending
// ceiling with the last bracket open-ended.
type Schedule struct {
	EffectiveFrom time.Time
	Brackets      []Bracket
}

// LowestRate returns the rate of the first bracket, used for credit
// conversion. An empty schedule yields zero.
func (s Schedule) LowestRate() money.Money {
	if len(s.Brackets) == 0 {
		return money.Zero()
	}
	return s.Brackets[0].Rate
}

// FederalCredits holds the phased federal Basic Personal Amount and the
// Canada Employment Amount.
type FederalCredits struct {
	BPAMax money.Money // full BPA below PhaseFloor
	BPAMin money.Money // reduced BPA above PhaseCeiling

	// Net-income thresholds for the linear BPA phase-out.
	PhaseFloor   money.Money
	PhaseCeiling money.Money

	EmploymentAmount money.Money
}

// ProvincialTable holds one province's schedules and flat credit.
type ProvincialTable struct {
	Schedules []Schedule
	BPA       money.Money
}

// Tables is the complete statutory configuration for one tax year.
type Tables struct {
	Year int

	CPP CPPTable
	EI  EITable

	Federal        []Schedule
	FederalCredits FederalCredits

	Provincial map[Province]ProvincialTable
}

// =============================================================================
// SCHEDULE SELECTION
// =============================================================================

// scheduleFor returns the latest schedule in force on the pay date.
// Falls back to the first schedule when the pay date precedes all of them.
func scheduleFor(schedules []Schedule, payDate time.Time) (Schedule, bool) {
	if len(schedules) == 0 {
		return Schedule{}, false
	}
	day := midnightUTC(payDate)
	selected := schedules[0]
	for _, s := range schedules[1:] {
		if !midnightUTC(s.EffectiveFrom).After(day) {
			selected = s
		}
	}
	return selected, true
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// 2025 PRESET
// =============================================================================

// Tables2025 returns the 2025 statutory tables for the federal government
// and Alberta. Both jurisdictions carry two schedules: the January table
// and the July 1 table reflecting the legislated mid-year cut to the
// lowest bracket rate (federal 15% -> 14%, Alberta 10% -> 8%).
func Tables2025() Tables {
	jan := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	jul := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	ceiling := func(s string) *money.Money {
		m := money.MustParse(s)
		return &m
	}

	federalUpper := []Bracket{
		{UpTo: ceiling("114750"), Rate: money.MustParse("0.205")},
		{UpTo: ceiling("177882"), Rate: money.MustParse("0.26")},
		{UpTo: ceiling("253414"), Rate: money.MustParse("0.29")},
		{UpTo: nil, Rate: money.MustParse("0.33")},
	}

	albertaUpper := []Bracket{
		{UpTo: ceiling("151234"), Rate: money.MustParse("0.10")},
		{UpTo: ceiling("181481"), Rate: money.MustParse("0.12")},
		{UpTo: ceiling("241974"), Rate: money.MustParse("0.13")},
		{UpTo: ceiling("362961"), Rate: money.MustParse("0.14")},
		{UpTo: nil, Rate: money.MustParse("0.15")},
	}

	return Tables{
		Year: 2025,
		CPP: CPPTable{
			BasicExemption: money.MustParse("3500"),
			YMPE:           money.MustParse("71300"),
			YAMPE:          money.MustParse("81200"),
			Rate1:          money.MustParse("0.0595"),
			Rate2:          money.MustParse("0.04"),
		},
		EI: EITable{
			MIE:  money.MustParse("65700"),
			Rate: money.MustParse("0.0164"),
		},
		Federal: []Schedule{
			{
				EffectiveFrom: jan,
				Brackets: append([]Bracket{
					{UpTo: ceiling("57375"), Rate: money.MustParse("0.15")},
				}, federalUpper...),
			},
			{
				EffectiveFrom: jul,
				Brackets: append([]Bracket{
					{UpTo: ceiling("57375"), Rate: money.MustParse("0.14")},
				}, federalUpper...),
			},
		},
		FederalCredits: FederalCredits{
			BPAMax:           money.MustParse("16129"),
			BPAMin:           money.MustParse("14538"),
			PhaseFloor:       money.MustParse("177882"),
			PhaseCeiling:     money.MustParse("253414"),
			EmploymentAmount: money.MustParse("1471"),
		},
		Provincial: map[Province]ProvincialTable{
			ProvinceAlberta: {
				Schedules: []Schedule{
					{
						EffectiveFrom: jan,
						Brackets: append([]Bracket{
							{UpTo: ceiling("60000"), Rate: money.MustParse("0.10")},
						}, albertaUpper...),
					},
					{
						EffectiveFrom: jul,
						Brackets: append([]Bracket{
							{UpTo: ceiling("60000"), Rate: money.MustParse("0.08")},
						}, albertaUpper...),
					},
				},
				BPA: money.MustParse("22323"),
			},
		},
	}
}
