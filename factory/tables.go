/*
Package factory provides JSON to Go configuration conversion for the
calculation engines.

PURPOSE:
  Converts JSON rate-table definitions into tax.Tables and rigging.Config
  values. This keeps statutory constants and site safety policies as data:
  a new tax year, a new province, or a stricter site design factor is a
  JSON change, not a code change.

JSON SCHEMA (tax tables):
  {
    "year": 2025,
    "cpp": {"basic_exemption": 3500, "ympe": 71300, "yampe": 81200,
            "rate1": 0.0595, "rate2": 0.04},
    "ei":  {"mie": 65700, "rate": 0.0164},
    "federal": {
      "schedules": [
        {"effective_from": "2025-01-01",
         "brackets": [{"up_to": 57375, "rate": 0.15}, {"rate": 0.33}]}
      ],
      "credits": {"bpa_max": 16129, "bpa_min": 14538,
                  "phase_floor": 177882, "phase_ceiling": 253414,
                  "employment_amount": 1471}
    },
    "provincial": {
      "AB": {"bpa": 22323, "schedules": [...]}
    }
  }

  A bracket without "up_to" is the open-ended top bracket.

KEY FEATURES:
  - Validates bracket ordering and rate ranges
  - Sorts schedules by effective date
  - Fills rigging-config defaults for omitted fields
  - Round-trips via ToJSON for the API's tables endpoint

USAGE:
  f := factory.NewTableFactory()
  tables, err := f.ParseTables(jsonString)
  calc := tax.NewCalculator(tables)

SEE ALSO:
  - tax/tables.go: the Tables type and the built-in 2025 preset
  - rigging/types.go: Config and DefaultConfig
*/
package factory

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/marko9795/boilermaker/money"
	"github.com/marko9795/boilermaker/rigging"
	"github.com/marko9795/boilermaker/tax"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// TablesJSON is the JSON representation of one tax year's tables.
type TablesJSON struct {
	Year       int                       `json:"year"`
	CPP        CPPJSON                   `json:"cpp"`
	EI         EIJSON                    `json:"ei"`
	Federal    FederalJSON               `json:"federal"`
	Provincial map[string]ProvincialJSON `json:"provincial,omitempty"`
}

type CPPJSON struct {
	BasicExemption float64 `json:"basic_exemption"`
	YMPE           float64 `json:"ympe"`
	YAMPE          float64 `json:"yampe"`
	Rate1          float64 `json:"rate1"`
	Rate2          float64 `json:"rate2"`
}

type EIJSON struct {
	MIE  float64 `json:"mie"`
	Rate float64 `json:"rate"`
}

type FederalJSON struct {
	Schedules []ScheduleJSON `json:"schedules"`
	Credits   CreditsJSON    `json:"credits"`
}

type ProvincialJSON struct {
	BPA       float64        `json:"bpa"`
	Schedules []ScheduleJSON `json:"schedules"`
}

type ScheduleJSON struct {
	EffectiveFrom string        `json:"effective_from"` // YYYY-MM-DD
	Brackets      []BracketJSON `json:"brackets"`
}

// BracketJSON is one progressive step; omit up_to for the top bracket.
type BracketJSON struct {
	UpTo *float64 `json:"up_to,omitempty"`
	Rate float64  `json:"rate"`
}

type CreditsJSON struct {
	BPAMax           float64 `json:"bpa_max"`
	BPAMin           float64 `json:"bpa_min"`
	PhaseFloor       float64 `json:"phase_floor"`
	PhaseCeiling     float64 `json:"phase_ceiling"`
	EmploymentAmount float64 `json:"employment_amount"`
}

// RiggingConfigJSON is the JSON representation of rigging safety constants.
// Omitted fields take the defaults from rigging.DefaultConfig.
type RiggingConfigJSON struct {
	Gravity              *float64           `json:"gravity,omitempty"`
	DesignFactor         *float64           `json:"design_factor,omitempty"`
	MinimumMarginPercent *float64           `json:"minimum_margin_percent,omitempty"`
	CautionMarginPercent *float64           `json:"caution_margin_percent,omitempty"`
	RecommendationBuffer *float64           `json:"recommendation_buffer,omitempty"`
	BalanceTolerance     *float64           `json:"balance_tolerance,omitempty"`
	HitchFactors         map[string]float64 `json:"hitch_factors,omitempty"`
}

// =============================================================================
// TABLE FACTORY
// =============================================================================

// TableFactory converts JSON configuration to engine config values.
type TableFactory struct{}

// NewTableFactory creates a new table factory.
func NewTableFactory() *TableFactory {
	return &TableFactory{}
}

// ParseTables parses a JSON string into tax.Tables.
func (f *TableFactory) ParseTables(jsonStr string) (tax.Tables, error) {
	var tj TablesJSON
	if err := json.Unmarshal([]byte(jsonStr), &tj); err != nil {
		return tax.Tables{}, fmt.Errorf("failed to parse tables JSON: %w", err)
	}
	return f.FromJSON(tj)
}

// FromJSON converts TablesJSON to tax.Tables, validating as it goes.
func (f *TableFactory) FromJSON(tj TablesJSON) (tax.Tables, error) {
	if tj.Year < 2000 {
		return tax.Tables{}, fmt.Errorf("invalid tax year %d", tj.Year)
	}

	federal, err := parseSchedules(tj.Federal.Schedules)
	if err != nil {
		return tax.Tables{}, fmt.Errorf("federal: %w", err)
	}

	provincial := make(map[tax.Province]tax.ProvincialTable, len(tj.Provincial))
	for code, pj := range tj.Provincial {
		schedules, err := parseSchedules(pj.Schedules)
		if err != nil {
			return tax.Tables{}, fmt.Errorf("province %s: %w", code, err)
		}
		provincial[tax.Province(code)] = tax.ProvincialTable{
			Schedules: schedules,
			BPA:       money.FromFloat(pj.BPA),
		}
	}

	return tax.Tables{
		Year: tj.Year,
		CPP: tax.CPPTable{
			BasicExemption: money.FromFloat(tj.CPP.BasicExemption),
			YMPE:           money.FromFloat(tj.CPP.YMPE),
			YAMPE:          money.FromFloat(tj.CPP.YAMPE),
			Rate1:          money.FromFloat(tj.CPP.Rate1),
			Rate2:          money.FromFloat(tj.CPP.Rate2),
		},
		EI: tax.EITable{
			MIE:  money.FromFloat(tj.EI.MIE),
			Rate: money.FromFloat(tj.EI.Rate),
		},
		Federal: federal,
		FederalCredits: tax.FederalCredits{
			BPAMax:           money.FromFloat(tj.Federal.Credits.BPAMax),
			BPAMin:           money.FromFloat(tj.Federal.Credits.BPAMin),
			PhaseFloor:       money.FromFloat(tj.Federal.Credits.PhaseFloor),
			PhaseCeiling:     money.FromFloat(tj.Federal.Credits.PhaseCeiling),
			EmploymentAmount: money.FromFloat(tj.Federal.Credits.EmploymentAmount),
		},
		Provincial: provincial,
	}, nil
}

func parseSchedules(sjs []ScheduleJSON) ([]tax.Schedule, error) {
	if len(sjs) == 0 {
		return nil, fmt.Errorf("at least one schedule is required")
	}

	schedules := make([]tax.Schedule, 0, len(sjs))
	for _, sj := range sjs {
		effective, err := time.ParseInLocation("2006-01-02", sj.EffectiveFrom, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("bad effective_from %q: %w", sj.EffectiveFrom, err)
		}
		brackets, err := parseBrackets(sj.Brackets)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, tax.Schedule{
			EffectiveFrom: effective,
			Brackets:      brackets,
		})
	}

	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].EffectiveFrom.Before(schedules[j].EffectiveFrom)
	})
	return schedules, nil
}

func parseBrackets(bjs []BracketJSON) ([]tax.Bracket, error) {
	if len(bjs) == 0 {
		return nil, fmt.Errorf("schedule has no brackets")
	}

	brackets := make([]tax.Bracket, 0, len(bjs))
	prev := 0.0
	for i, bj := range bjs {
		if bj.Rate < 0 || bj.Rate > 1 {
			return nil, fmt.Errorf("bracket %d: rate %v outside [0,1]", i, bj.Rate)
		}
		b := tax.Bracket{Rate: money.FromFloat(bj.Rate)}
		if bj.UpTo != nil {
			if i == len(bjs)-1 {
				return nil, fmt.Errorf("top bracket must be open-ended (omit up_to)")
			}
			if *bj.UpTo <= prev {
				return nil, fmt.Errorf("bracket %d: ceiling %v not above previous %v", i, *bj.UpTo, prev)
			}
			m := money.FromFloat(*bj.UpTo)
			b.UpTo = &m
			prev = *bj.UpTo
		} else if i != len(bjs)-1 {
			return nil, fmt.Errorf("bracket %d: only the top bracket may omit up_to", i)
		}
		brackets = append(brackets, b)
	}
	return brackets, nil
}

// ToJSON converts tax.Tables back to its JSON representation.
func (f *TableFactory) ToJSON(t tax.Tables) TablesJSON {
	tj := TablesJSON{
		Year: t.Year,
		CPP: CPPJSON{
			BasicExemption: t.CPP.BasicExemption.Float64(),
			YMPE:           t.CPP.YMPE.Float64(),
			YAMPE:          t.CPP.YAMPE.Float64(),
			Rate1:          t.CPP.Rate1.Float64(),
			Rate2:          t.CPP.Rate2.Float64(),
		},
		EI: EIJSON{
			MIE:  t.EI.MIE.Float64(),
			Rate: t.EI.Rate.Float64(),
		},
		Federal: FederalJSON{
			Schedules: schedulesToJSON(t.Federal),
			Credits: CreditsJSON{
				BPAMax:           t.FederalCredits.BPAMax.Float64(),
				BPAMin:           t.FederalCredits.BPAMin.Float64(),
				PhaseFloor:       t.FederalCredits.PhaseFloor.Float64(),
				PhaseCeiling:     t.FederalCredits.PhaseCeiling.Float64(),
				EmploymentAmount: t.FederalCredits.EmploymentAmount.Float64(),
			},
		},
	}

	if len(t.Provincial) > 0 {
		tj.Provincial = make(map[string]ProvincialJSON, len(t.Provincial))
		for code, pt := range t.Provincial {
			tj.Provincial[string(code)] = ProvincialJSON{
				BPA:       pt.BPA.Float64(),
				Schedules: schedulesToJSON(pt.Schedules),
			}
		}
	}
	return tj
}

func schedulesToJSON(schedules []tax.Schedule) []ScheduleJSON {
	out := make([]ScheduleJSON, 0, len(schedules))
	for _, s := range schedules {
		sj := ScheduleJSON{EffectiveFrom: s.EffectiveFrom.Format("2006-01-02")}
		for _, b := range s.Brackets {
			bj := BracketJSON{Rate: b.Rate.Float64()}
			if b.UpTo != nil {
				v := b.UpTo.Float64()
				bj.UpTo = &v
			}
			sj.Brackets = append(sj.Brackets, bj)
		}
		out = append(out, sj)
	}
	return out
}

// =============================================================================
// RIGGING CONFIG
// =============================================================================

// ParseRiggingConfig parses a JSON string into rigging.Config, filling
// omitted fields from the defaults.
func (f *TableFactory) ParseRiggingConfig(jsonStr string) (rigging.Config, error) {
	var rj RiggingConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &rj); err != nil {
		return rigging.Config{}, fmt.Errorf("failed to parse rigging config JSON: %w", err)
	}

	cfg := rigging.DefaultConfig()
	if rj.Gravity != nil {
		cfg.Gravity = *rj.Gravity
	}
	if rj.DesignFactor != nil {
		cfg.DesignFactor = *rj.DesignFactor
	}
	if rj.MinimumMarginPercent != nil {
		cfg.MinimumMarginPercent = *rj.MinimumMarginPercent
	}
	if rj.CautionMarginPercent != nil {
		cfg.CautionMarginPercent = *rj.CautionMarginPercent
	}
	if rj.RecommendationBuffer != nil {
		cfg.RecommendationBuffer = *rj.RecommendationBuffer
	}
	if rj.BalanceTolerance != nil {
		cfg.BalanceTolerance = *rj.BalanceTolerance
	}
	for hitch, factor := range rj.HitchFactors {
		if factor <= 0 {
			return rigging.Config{}, fmt.Errorf("hitch factor for %q must be positive", hitch)
		}
		cfg.HitchFactors[rigging.HitchType(hitch)] = factor
	}
	return cfg, nil
}
