/*
rules.go - Versioned statutory rule tables

PURPOSE:
  Every statutory rate, ceiling, and slab the engine uses lives in a
  RuleSet that callers construct (usually via the factory package) and
  hand to the engine. Nothing here is a hidden constant: reprocessing an
  old period with that period's historical rates is just a matter of
  passing the matching RuleSet version.

TABLES:
  PFRules:       Provident Fund rates and wage ceiling
  ESIRules:      Employee State Insurance rates and gross ceiling
  PTSlab:        Professional Tax slabs, keyed by work state
  LWFRule:       Labour Welfare Fund rates and frequency, keyed by state
  TDSRegime:     Income-tax slabs, standard deduction, cess
  OvertimeRules: Overtime/night/weekend rates and the pay mode

CONVENTIONS (decisions on ambiguities in the underlying rules):
  - LWF half-yearly contributions are collected in June and December.
  - LWF yearly contributions are collected once, in December, at the
    full rate (not amortized across months).
  - ESI eligibility is re-evaluated every period on that period's net
    gross wage, with a strict > ceiling cutoff.
  - The TDS projection is a flat current-month x 12, trued up against
    financial-year-to-date TDS over the months remaining to March.

DEFAULTS:
  DefaultRules() returns the FY 2024-25 tables: PF 12%/12% with 8.33%
  EPS and 0.65% admin on a 15,000 ceiling; ESI 0.75%/3.25% under a
  21,000 ceiling; new-regime TDS slabs with 50,000 standard deduction
  and 4% cess; PT and LWF tables for KA, MH, WB, TN, DL.

SEE ALSO:
  - factory/rules.go: JSON <-> RuleSet conversion
  - pf.go, esi.go, ptax.go, lwf.go, tds.go: the consumers
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RULE SET - The complete versioned configuration object
// =============================================================================

// RuleSet bundles every statutory table for one effective window.
// Treat as immutable once handed to an Engine.
type RuleSet struct {
	Version       int
	Name          string
	EffectiveFrom Date

	PF       PFRules
	ESI      ESIRules
	PT       map[StateCode][]PTSlab
	LWF      map[StateCode]LWFRule
	TDS      TDSRegime
	Overtime OvertimeRules
}

// =============================================================================
// PROVIDENT FUND
// =============================================================================

// PFRules configures the Employees' Provident Fund calculation.
// All rates are percentages (12 means 12%).
type PFRules struct {
	EmployeeRate decimal.Decimal
	EmployerRate decimal.Decimal
	EPSRate      decimal.Decimal // Pension share carved out of the employer contribution
	AdminRate    decimal.Decimal // Employer-side administrative charges
	WageCeiling  decimal.Decimal // PF wage base is clamped to this
	IncludeDA    bool            // Whether DA counts toward the PF wage base
}

// =============================================================================
// EMPLOYEE STATE INSURANCE
// =============================================================================

// ESIRules configures ESI. An employee whose net gross wage for the
// period exceeds GrossCeiling contributes nothing that period.
type ESIRules struct {
	EmployeeRate decimal.Decimal
	EmployerRate decimal.Decimal
	GrossCeiling decimal.Decimal
}

// =============================================================================
// PROFESSIONAL TAX - State slab tables
// =============================================================================

// PTSlab is one row of a state's Professional Tax table: a monthly
// gross-wage band [Min, Max] mapped to a flat monthly tax. Max of zero
// means unbounded. Slabs for a state must be ordered and non-overlapping.
type PTSlab struct {
	Min decimal.Decimal
	Max decimal.Decimal
	Tax decimal.Decimal
}

// =============================================================================
// LABOUR WELFARE FUND
// =============================================================================

type LWFFrequency string

const (
	LWFMonthly    LWFFrequency = "monthly"
	LWFHalfYearly LWFFrequency = "half_yearly"
	LWFYearly     LWFFrequency = "yearly"
)

// LWFRule configures a state's Labour Welfare Fund contribution.
// Half-yearly contributions are collected in June and December; yearly
// contributions once, in December.
type LWFRule struct {
	EmployeeAmount decimal.Decimal
	EmployerAmount decimal.Decimal
	Frequency      LWFFrequency
}

// DueInMonth reports whether the contribution falls due in the given month.
func (r LWFRule) DueInMonth(m time.Month) bool {
	switch r.Frequency {
	case LWFMonthly:
		return true
	case LWFHalfYearly:
		return m == time.June || m == time.December
	case LWFYearly:
		return m == time.December
	default:
		return false
	}
}

// =============================================================================
// TDS - Income-tax regime
// =============================================================================

// TDSSlab is one progressive income-tax band on projected annual income.
// UpTo of zero means the top, unbounded band.
type TDSSlab struct {
	UpTo decimal.Decimal
	Rate decimal.Decimal // percent
}

// TDSRegime configures the income-tax withholding projection.
type TDSRegime struct {
	Name              string
	StandardDeduction decimal.Decimal
	Slabs             []TDSSlab
	CessRate          decimal.Decimal // percent, applied on the computed tax
}

// =============================================================================
// OVERTIME
// =============================================================================

type OvertimeMode string

const (
	// OvertimeModeFlatRate pays configured flat rupee rates per overtime
	// hour / night-shift day / weekend day.
	OvertimeModeFlatRate OvertimeMode = "flat_rate"

	// OvertimeModeDerivedDoubleTime derives the hourly rate from basic
	// salary at double time: (basic x 12) / (26 x 8 x 12) x 2.
	OvertimeModeDerivedDoubleTime OvertimeMode = "derived_double_time"
)

// OvertimeRules configures overtime and shift allowance computation.
type OvertimeRules struct {
	Mode             OvertimeMode
	HourlyRate       decimal.Decimal // flat mode only
	NightShiftRate   decimal.Decimal // per night-shift day
	WeekendShiftRate decimal.Decimal // per weekend-shift day
}

// =============================================================================
// DEFAULTS - FY 2024-25 statutory tables
// =============================================================================

// DefaultRules returns the canonical FY 2024-25 rule set. These values
// double as the documented defaults for the whole engine; jurisdictions
// not present in the PT/LWF tables deduct nothing and raise a warning.
func DefaultRules() *RuleSet {
	return &RuleSet{
		Version:       1,
		Name:          "FY 2024-25",
		EffectiveFrom: NewDate(2024, time.April, 1),

		PF: PFRules{
			EmployeeRate: Rupees(12),
			EmployerRate: Rupees(12),
			EPSRate:      Rupees(8.33),
			AdminRate:    Rupees(0.65),
			WageCeiling:  RupeesInt(15000),
			IncludeDA:    true,
		},

		ESI: ESIRules{
			EmployeeRate: Rupees(0.75),
			EmployerRate: Rupees(3.25),
			GrossCeiling: RupeesInt(21000),
		},

		PT: map[StateCode][]PTSlab{
			"KA": {
				{Min: decimal.Zero, Max: RupeesInt(24999), Tax: decimal.Zero},
				{Min: RupeesInt(25000), Max: decimal.Zero, Tax: RupeesInt(200)},
			},
			"MH": {
				{Min: decimal.Zero, Max: RupeesInt(7500), Tax: decimal.Zero},
				{Min: RupeesInt(7501), Max: RupeesInt(10000), Tax: RupeesInt(175)},
				{Min: RupeesInt(10001), Max: decimal.Zero, Tax: RupeesInt(200)},
			},
			"WB": {
				{Min: decimal.Zero, Max: RupeesInt(10000), Tax: decimal.Zero},
				{Min: RupeesInt(10001), Max: RupeesInt(15000), Tax: RupeesInt(110)},
				{Min: RupeesInt(15001), Max: RupeesInt(25000), Tax: RupeesInt(130)},
				{Min: RupeesInt(25001), Max: RupeesInt(40000), Tax: RupeesInt(150)},
				{Min: RupeesInt(40001), Max: decimal.Zero, Tax: RupeesInt(200)},
			},
			"TN": {
				{Min: decimal.Zero, Max: RupeesInt(21000), Tax: decimal.Zero},
				{Min: RupeesInt(21001), Max: RupeesInt(30000), Tax: RupeesInt(135)},
				{Min: RupeesInt(30001), Max: RupeesInt(45000), Tax: RupeesInt(315)},
				{Min: RupeesInt(45001), Max: RupeesInt(60000), Tax: RupeesInt(690)},
				{Min: RupeesInt(60001), Max: RupeesInt(75000), Tax: RupeesInt(1025)},
				{Min: RupeesInt(75001), Max: decimal.Zero, Tax: RupeesInt(1250)},
			},
		},

		LWF: map[StateCode]LWFRule{
			"KA": {EmployeeAmount: RupeesInt(20), EmployerAmount: RupeesInt(40), Frequency: LWFYearly},
			"MH": {EmployeeAmount: RupeesInt(6), EmployerAmount: RupeesInt(18), Frequency: LWFHalfYearly},
			"WB": {EmployeeAmount: RupeesInt(3), EmployerAmount: RupeesInt(15), Frequency: LWFHalfYearly},
			"TN": {EmployeeAmount: RupeesInt(10), EmployerAmount: RupeesInt(20), Frequency: LWFYearly},
			"DL": {EmployeeAmount: Rupees(0.75), EmployerAmount: Rupees(2.25), Frequency: LWFHalfYearly},
		},

		TDS: TDSRegime{
			Name:              "new-regime",
			StandardDeduction: RupeesInt(50000),
			Slabs: []TDSSlab{
				{UpTo: RupeesInt(300000), Rate: decimal.Zero},
				{UpTo: RupeesInt(700000), Rate: Rupees(5)},
				{UpTo: RupeesInt(1000000), Rate: Rupees(10)},
				{UpTo: RupeesInt(1200000), Rate: Rupees(15)},
				{UpTo: RupeesInt(1500000), Rate: Rupees(20)},
				{UpTo: decimal.Zero, Rate: Rupees(30)},
			},
			CessRate: Rupees(4),
		},

		Overtime: OvertimeRules{
			Mode:             OvertimeModeDerivedDoubleTime,
			NightShiftRate:   RupeesInt(200),
			WeekendShiftRate: RupeesInt(350),
		},
	}
}

// PTSlabsFor returns the Professional Tax table for a state, if any.
func (rs *RuleSet) PTSlabsFor(state StateCode) ([]PTSlab, bool) {
	slabs, ok := rs.PT[state]
	return slabs, ok
}

// LWFRuleFor returns the LWF rule for a state, if any.
func (rs *RuleSet) LWFRuleFor(state StateCode) (LWFRule, bool) {
	rule, ok := rs.LWF[state]
	return rule, ok
}
