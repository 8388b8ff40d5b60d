/*
Package factory provides JSON to Go rule-set conversion.

PURPOSE:
  Converts JSON statutory rule definitions into engine.RuleSet objects.
  This keeps rates, ceilings, and slabs out of the code: a new PT slab
  for a new state is a JSON edit, not a recompile, and reprocessing an
  old period means loading that period's historical rule JSON.

JSON SCHEMA:
  {
    "version": 1,
    "name": "FY 2024-25",
    "effective_from": "2024-04-01",
    "pf":  {"employee_rate": 12, "employer_rate": 12, "eps_rate": 8.33,
            "admin_rate": 0.65, "wage_ceiling": 15000, "include_da": true},
    "esi": {"employee_rate": 0.75, "employer_rate": 3.25, "gross_ceiling": 21000},
    "pt":  {"KA": [{"min": 0, "max": 24999, "tax": 0},
                   {"min": 25000, "tax": 200}]},
    "lwf": {"KA": {"employee": 20, "employer": 40, "frequency": "yearly"}},
    "tds": {"name": "new-regime", "standard_deduction": 50000, "cess_rate": 4,
            "slabs": [{"up_to": 300000, "rate": 0}, {"rate": 30}]},
    "overtime": {"mode": "derived_double_time",
                 "night_shift_rate": 200, "weekend_shift_rate": 350}
  }

  Rates are percentages; omitted "max"/"up_to" mark the unbounded band.

USAGE:
  rules, err := factory.ParseRules(jsonBytes)
  eng, err := engine.New(rules, auditLog)

SEE ALSO:
  - engine/rules.go: the RuleSet type and FY 2024-25 defaults
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RulesJSON is the JSON representation of a rule set.
type RulesJSON struct {
	Version       int                        `json:"version"`
	Name          string                     `json:"name"`
	EffectiveFrom string                     `json:"effective_from"`
	PF            PFJSON                     `json:"pf"`
	ESI           ESIJSON                    `json:"esi"`
	PT            map[string][]PTSlabJSON    `json:"pt,omitempty"`
	LWF           map[string]LWFJSON         `json:"lwf,omitempty"`
	TDS           TDSJSON                    `json:"tds"`
	Overtime      OvertimeJSON               `json:"overtime"`
}

type PFJSON struct {
	EmployeeRate float64 `json:"employee_rate"`
	EmployerRate float64 `json:"employer_rate"`
	EPSRate      float64 `json:"eps_rate"`
	AdminRate    float64 `json:"admin_rate"`
	WageCeiling  float64 `json:"wage_ceiling"`
	IncludeDA    bool    `json:"include_da"`
}

type ESIJSON struct {
	EmployeeRate float64 `json:"employee_rate"`
	EmployerRate float64 `json:"employer_rate"`
	GrossCeiling float64 `json:"gross_ceiling"`
}

type PTSlabJSON struct {
	Min float64 `json:"min"`
	Max float64 `json:"max,omitempty"` // omitted = unbounded
	Tax float64 `json:"tax"`
}

type LWFJSON struct {
	Employee  float64 `json:"employee"`
	Employer  float64 `json:"employer"`
	Frequency string  `json:"frequency"` // monthly, half_yearly, yearly
}

type TDSJSON struct {
	Name              string        `json:"name"`
	StandardDeduction float64       `json:"standard_deduction"`
	CessRate          float64       `json:"cess_rate"`
	Slabs             []TDSSlabJSON `json:"slabs"`
}

type TDSSlabJSON struct {
	UpTo float64 `json:"up_to,omitempty"` // omitted = unbounded top band
	Rate float64 `json:"rate"`
}

type OvertimeJSON struct {
	Mode             string  `json:"mode"` // flat_rate, derived_double_time
	HourlyRate       float64 `json:"hourly_rate,omitempty"`
	NightShiftRate   float64 `json:"night_shift_rate"`
	WeekendShiftRate float64 `json:"weekend_shift_rate"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParseRules parses rule-set JSON into an engine.RuleSet.
func ParseRules(data []byte) (*engine.RuleSet, error) {
	var rj RulesJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return nil, fmt.Errorf("failed to parse rules JSON: %w", err)
	}
	return FromJSON(rj)
}

// FromJSON converts RulesJSON into an engine.RuleSet.
func FromJSON(rj RulesJSON) (*engine.RuleSet, error) {
	effectiveFrom, err := engine.ParseDate(rj.EffectiveFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid effective_from: %w", err)
	}
	tdsSlabs, err := parseTDSSlabs(rj.TDS.Name, rj.TDS.Slabs)
	if err != nil {
		return nil, err
	}

	rs := &engine.RuleSet{
		Version:       rj.Version,
		Name:          rj.Name,
		EffectiveFrom: effectiveFrom,

		PF: engine.PFRules{
			EmployeeRate: dec(rj.PF.EmployeeRate),
			EmployerRate: dec(rj.PF.EmployerRate),
			EPSRate:      dec(rj.PF.EPSRate),
			AdminRate:    dec(rj.PF.AdminRate),
			WageCeiling:  dec(rj.PF.WageCeiling),
			IncludeDA:    rj.PF.IncludeDA,
		},
		ESI: engine.ESIRules{
			EmployeeRate: dec(rj.ESI.EmployeeRate),
			EmployerRate: dec(rj.ESI.EmployerRate),
			GrossCeiling: dec(rj.ESI.GrossCeiling),
		},
		PT:  make(map[engine.StateCode][]engine.PTSlab),
		LWF: make(map[engine.StateCode]engine.LWFRule),
		TDS: engine.TDSRegime{
			Name:              rj.TDS.Name,
			StandardDeduction: dec(rj.TDS.StandardDeduction),
			Slabs:             tdsSlabs,
			CessRate:          dec(rj.TDS.CessRate),
		},
		Overtime: engine.OvertimeRules{
			Mode:             parseOvertimeMode(rj.Overtime.Mode),
			HourlyRate:       dec(rj.Overtime.HourlyRate),
			NightShiftRate:   dec(rj.Overtime.NightShiftRate),
			WeekendShiftRate: dec(rj.Overtime.WeekendShiftRate),
		},
	}

	for state, slabs := range rj.PT {
		parsed, err := parsePTSlabs(state, slabs)
		if err != nil {
			return nil, err
		}
		rs.PT[engine.StateCode(state)] = parsed
	}

	for state, lj := range rj.LWF {
		freq, err := parseLWFFrequency(lj.Frequency)
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", state, err)
		}
		rs.LWF[engine.StateCode(state)] = engine.LWFRule{
			EmployeeAmount: dec(lj.Employee),
			EmployerAmount: dec(lj.Employer),
			Frequency:      freq,
		}
	}

	return rs, nil
}

// ToJSON converts a RuleSet back to its JSON representation.
func ToJSON(rs *engine.RuleSet) RulesJSON {
	rj := RulesJSON{
		Version:       rs.Version,
		Name:          rs.Name,
		EffectiveFrom: rs.EffectiveFrom.String(),
		PF: PFJSON{
			EmployeeRate: f(rs.PF.EmployeeRate),
			EmployerRate: f(rs.PF.EmployerRate),
			EPSRate:      f(rs.PF.EPSRate),
			AdminRate:    f(rs.PF.AdminRate),
			WageCeiling:  f(rs.PF.WageCeiling),
			IncludeDA:    rs.PF.IncludeDA,
		},
		ESI: ESIJSON{
			EmployeeRate: f(rs.ESI.EmployeeRate),
			EmployerRate: f(rs.ESI.EmployerRate),
			GrossCeiling: f(rs.ESI.GrossCeiling),
		},
		PT:  make(map[string][]PTSlabJSON),
		LWF: make(map[string]LWFJSON),
		TDS: TDSJSON{
			Name:              rs.TDS.Name,
			StandardDeduction: f(rs.TDS.StandardDeduction),
			CessRate:          f(rs.TDS.CessRate),
		},
		Overtime: OvertimeJSON{
			Mode:             string(rs.Overtime.Mode),
			HourlyRate:       f(rs.Overtime.HourlyRate),
			NightShiftRate:   f(rs.Overtime.NightShiftRate),
			WeekendShiftRate: f(rs.Overtime.WeekendShiftRate),
		},
	}

	for state, slabs := range rs.PT {
		var sjs []PTSlabJSON
		for _, s := range slabs {
			sjs = append(sjs, PTSlabJSON{Min: f(s.Min), Max: f(s.Max), Tax: f(s.Tax)})
		}
		rj.PT[string(state)] = sjs
	}
	for state, rule := range rs.LWF {
		rj.LWF[string(state)] = LWFJSON{
			Employee:  f(rule.EmployeeAmount),
			Employer:  f(rule.EmployerAmount),
			Frequency: string(rule.Frequency),
		}
	}
	for _, s := range rs.TDS.Slabs {
		rj.TDS.Slabs = append(rj.TDS.Slabs, TDSSlabJSON{UpTo: f(s.UpTo), Rate: f(s.Rate)})
	}

	return rj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func f(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func parsePTSlabs(state string, slabs []PTSlabJSON) ([]engine.PTSlab, error) {
	var out []engine.PTSlab
	prevMax := -1.0
	for i, sj := range slabs {
		if sj.Max != 0 && sj.Max < sj.Min {
			return nil, fmt.Errorf("state %s: slab %d has max below min", state, i)
		}
		if sj.Min <= prevMax {
			return nil, fmt.Errorf("state %s: slab %d overlaps the previous slab", state, i)
		}
		if sj.Max != 0 {
			prevMax = sj.Max
		}
		out = append(out, engine.PTSlab{Min: dec(sj.Min), Max: dec(sj.Max), Tax: dec(sj.Tax)})
	}
	return out, nil
}

// parseTDSSlabs validates and converts the progressive income-tax
// bands. Bounds must strictly increase, and only the last band may be
// unbounded (up_to omitted or zero); anything else would mis-tax
// silently once the rule set went live.
func parseTDSSlabs(regime string, slabs []TDSSlabJSON) ([]engine.TDSSlab, error) {
	if len(slabs) == 0 {
		return nil, fmt.Errorf("tds regime %q has no slabs", regime)
	}

	out := make([]engine.TDSSlab, 0, len(slabs))
	prev := 0.0
	for i, sj := range slabs {
		last := i == len(slabs)-1
		if sj.UpTo == 0 {
			if !last {
				return nil, fmt.Errorf("tds regime %q: slab %d is unbounded (up_to 0) but is not the last slab", regime, i)
			}
		} else if sj.UpTo <= prev {
			return nil, fmt.Errorf("tds regime %q: slab %d up_to %v does not increase past the previous bound", regime, i, sj.UpTo)
		}
		out = append(out, engine.TDSSlab{UpTo: dec(sj.UpTo), Rate: dec(sj.Rate)})
		prev = sj.UpTo
	}
	return out, nil
}

func parseLWFFrequency(s string) (engine.LWFFrequency, error) {
	switch s {
	case "monthly":
		return engine.LWFMonthly, nil
	case "half_yearly":
		return engine.LWFHalfYearly, nil
	case "yearly":
		return engine.LWFYearly, nil
	default:
		return "", fmt.Errorf("unknown LWF frequency: %q", s)
	}
}

func parseOvertimeMode(s string) engine.OvertimeMode {
	switch s {
	case "flat_rate":
		return engine.OvertimeModeFlatRate
	default:
		return engine.OvertimeModeDerivedDoubleTime
	}
}
