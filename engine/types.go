/*
Package engine provides the core Indian payroll calculation engine.

PURPOSE:
  This package contains the pure gross-to-net computation for one employee
  and one pay period: proration for mid-month joiners/leavers, loss-of-pay,
  overtime and shift allowances, earnings aggregation, and the Indian
  statutory deductions (PF, ESI, Professional Tax, LWF, TDS).

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: decimal-backed currency helpers (rupees, statutory rounding)
  - SalaryStructure: the employee's fixed monthly components
  - AttendancePeriod: days/hours actually worked in the period
  - EmployeeProfile: calculation-relevant master data + identifiers
  - VariablePay / ManualDeductions: one-off additions and recoveries
  - YTDAccumulator: running financial-year totals, owned by the caller
  - PayrollInput / PayrollOutput: the engine's single entry and exit shape

DESIGN PRINCIPLES:
  1. Purity: the engine computes; callers persist. Same input + same rule
     set version always produces the same output.
  2. Precision: decimal.Decimal for every rupee amount - never float math.
  3. Two severities: business problems are validation errors or warnings
     inside the output, never Go errors or panics.
  4. Explicit configuration: every statutory rate comes from a RuleSet
     passed in at construction - no hidden package-level constants.

SEE ALSO:
  - rules.go: versioned statutory rule tables
  - engine.go: the ProcessPayroll orchestrator
  - validate.go: input validation
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - All amounts are rupees held as decimals
// =============================================================================

// Rupees builds a decimal amount from a float literal. Intended for
// configuration and tests; calculation code stays in decimal space.
func Rupees(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// RupeesInt builds a decimal amount from whole rupees.
func RupeesInt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// RoundRupee applies statutory rounding: half-up to the nearest rupee.
// PF, ESI, and TDS amounts on a payslip are always whole rupees.
func RoundRupee(d decimal.Decimal) decimal.Decimal { return d.Round(0) }

// Percent converts a rate expressed as a percentage (12 = 12%) into a
// multiplier.
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Div(decimal.NewFromInt(100))
}

// ClampNonNegative floors an amount at zero.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// MinDecimal returns the smaller of two decimals.
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

// StateCode identifies the Indian state/UT the employee works in, using
// the standard two-letter vehicle-registration codes (KA, MH, TN, ...).
// Rule tables for Professional Tax and LWF are keyed by this code.
type StateCode string

// =============================================================================
// SALARY STRUCTURE - Fixed monthly components, immutable per period
// =============================================================================

// SalaryStructure holds the employee's monthly salary components.
// The itemized components should approximately sum to CTC/12; a mismatch
// is a warning, not an error (structures drift when CTC is renegotiated).
type SalaryStructure struct {
	Basic               decimal.Decimal
	HRA                 decimal.Decimal
	DA                  decimal.Decimal // Dearness allowance; counts toward the PF wage base
	ConveyanceAllowance decimal.Decimal
	MedicalAllowance    decimal.Decimal
	SpecialAllowance    decimal.Decimal
	OtherAllowances     decimal.Decimal
	CTC                 decimal.Decimal // Annual cost-to-company, informational
}

// MonthlyGross returns the sum of all fixed monthly components before
// proration, overtime, and variable pay.
func (s SalaryStructure) MonthlyGross() decimal.Decimal {
	return s.Basic.
		Add(s.HRA).
		Add(s.DA).
		Add(s.ConveyanceAllowance).
		Add(s.MedicalAllowance).
		Add(s.SpecialAllowance).
		Add(s.OtherAllowances)
}

// TotalAllowances returns every component other than basic, HRA and DA.
func (s SalaryStructure) TotalAllowances() decimal.Decimal {
	return s.ConveyanceAllowance.
		Add(s.MedicalAllowance).
		Add(s.SpecialAllowance).
		Add(s.OtherAllowances)
}

// =============================================================================
// ATTENDANCE - Days and hours for the period
// =============================================================================

// AttendancePeriod is the attendance summary for one employee and month.
// Invariants checked by the validator:
//   - PresentDays <= WorkingDays (hard error)
//   - LOPDays, OvertimeHours, shift day counts >= 0 (hard error if negative)
type AttendancePeriod struct {
	TotalDaysInMonth int
	WorkingDays      int
	PresentDays      int
	LOPDays          int

	OvertimeHours    decimal.Decimal
	NightShiftDays   int
	WeekendShiftDays int
}

// AbsentDays derives unexcused absence when not supplied directly.
func (a AttendancePeriod) AbsentDays() int {
	d := a.WorkingDays - a.PresentDays
	if d < 0 {
		return 0
	}
	return d
}

// =============================================================================
// EMPLOYEE PROFILE - Calculation-relevant master data
// =============================================================================

// EmployeeProfile is the subset of the employee master record the engine
// needs. Identifiers (PAN, UAN, ESIC, bank) are validated and passed
// through - they never influence amounts.
type EmployeeProfile struct {
	EmployeeID EmployeeID
	Name       string

	PAN         string
	UAN         string
	ESICNumber  string
	BankAccount string
	IFSC        string

	JoiningDate Date
	ExitDate    *Date // nil while employed

	WorkState     StateCode
	PFOptIn       bool
	ESIApplicable bool
	VPFPercent    decimal.Decimal // Voluntary PF on top of statutory, as a percent of the PF wage base
}

// =============================================================================
// VARIABLE PAY & MANUAL DEDUCTIONS
// =============================================================================

// VariablePay holds one-off earnings for the period. Each amount is added
// to gross as-is: never prorated, never reduced by LOP.
type VariablePay struct {
	Bonus          decimal.Decimal
	Incentives     decimal.Decimal
	Arrears        decimal.Decimal
	Reimbursements decimal.Decimal
}

func (v VariablePay) Total() decimal.Decimal {
	return v.Bonus.Add(v.Incentives).Add(v.Arrears).Add(v.Reimbursements)
}

// ManualDeductions holds non-statutory recoveries, subtracted after the
// statutory deductions. Every field defaults to zero.
type ManualDeductions struct {
	LoanEMI          decimal.Decimal
	AdvanceRecovery  decimal.Decimal
	InsurancePremium decimal.Decimal
	CanteenDeduction decimal.Decimal
	OtherDeductions  decimal.Decimal
}

// =============================================================================
// YTD ACCUMULATOR - Financial-year running totals, owned by the caller
// =============================================================================

// YTDAccumulator carries financial-year-to-date totals across periods.
// The engine reads it (TDS true-up) and returns an updated copy; storing
// it is the caller's responsibility.
type YTDAccumulator struct {
	GrossEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	TDSDeducted     decimal.Decimal
}

// Accumulate returns a new accumulator with one period's results added.
func (y YTDAccumulator) Accumulate(gross, deductions, net, tds decimal.Decimal) YTDAccumulator {
	return YTDAccumulator{
		GrossEarnings:   y.GrossEarnings.Add(gross),
		TotalDeductions: y.TotalDeductions.Add(deductions),
		NetPay:          y.NetPay.Add(net),
		TDSDeducted:     y.TDSDeducted.Add(tds),
	}
}

// =============================================================================
// PAYROLL INPUT - Everything the engine needs for one employee-period
// =============================================================================

// PayrollInput is the complete input for one ProcessPayroll call.
// It is constructed by the caller from persisted records and discarded
// after the output is returned.
type PayrollInput struct {
	Period     PayPeriod
	Employee   EmployeeProfile
	Salary     SalaryStructure
	Attendance AttendancePeriod
	Variable   VariablePay
	Deductions ManualDeductions
	YTD        YTDAccumulator
}

// =============================================================================
// PAYROLL OUTPUT - Immutable result of one calculation
// =============================================================================

// EarningsBreakdown lists every earning line for the payslip.
type EarningsBreakdown struct {
	Basic           decimal.Decimal
	HRA             decimal.Decimal
	DA              decimal.Decimal
	Allowances      decimal.Decimal
	OvertimePay     decimal.Decimal
	NightShiftPay   decimal.Decimal
	WeekendShiftPay decimal.Decimal
	Bonus           decimal.Decimal
	Incentives      decimal.Decimal
	Arrears         decimal.Decimal
	Reimbursements  decimal.Decimal

	GrossEarnings decimal.Decimal
	LOPDeduction  decimal.Decimal
	// NetGrossEarnings = GrossEarnings - LOPDeduction.
	// This is the wage base for every statutory deduction.
	NetGrossEarnings decimal.Decimal
}

// StatutoryDeductions lists the employee-side statutory deduction lines
// plus the employer-side contributions (reported, not deducted from pay).
type StatutoryDeductions struct {
	EmployeePF      decimal.Decimal
	VPF             decimal.Decimal
	EmployeeESI     decimal.Decimal
	ProfessionalTax decimal.Decimal
	LWF             decimal.Decimal
	TDS             decimal.Decimal

	// Employer-side, informational
	EmployerEPF    decimal.Decimal
	EmployerEPS    decimal.Decimal
	PFAdminCharges decimal.Decimal
	EmployerESI    decimal.Decimal

	// PFWageBase is the ceiling-clamped wage the PF amounts were
	// computed on; statutory filings (ECR) report it.
	PFWageBase decimal.Decimal
}

// EmployeeTotal is the sum withheld from the employee's pay.
func (s StatutoryDeductions) EmployeeTotal() decimal.Decimal {
	return s.EmployeePF.
		Add(s.VPF).
		Add(s.EmployeeESI).
		Add(s.ProfessionalTax).
		Add(s.LWF).
		Add(s.TDS)
}

// NonStatutoryDeductions echoes the manual recoveries with their total.
type NonStatutoryDeductions struct {
	LoanEMI          decimal.Decimal
	AdvanceRecovery  decimal.Decimal
	InsurancePremium decimal.Decimal
	CanteenDeduction decimal.Decimal
	OtherDeductions  decimal.Decimal
	Total            decimal.Decimal
}

// PayrollOutput is the immutable result of one ProcessPayroll call.
type PayrollOutput struct {
	EmployeeID EmployeeID
	Period     PayPeriod

	Proration    ProrationResult
	Earnings     EarningsBreakdown
	Statutory    StatutoryDeductions
	NonStatutory NonStatutoryDeductions

	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal

	YTD        YTDAccumulator
	Validation ValidationResult

	RuleVersion int
}
