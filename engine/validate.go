/*
validate.go - Input validation with a two-severity model

PURPOSE:
  Checks a PayrollInput before calculation. Two severities only:

  ERRORS block calculation. The orchestrator short-circuits, forces net
  pay to zero, and marks the output invalid. Examples: missing name or
  employee ID, malformed PAN/IFSC, presentDays > workingDays, negative
  LOP days.

  WARNINGS let calculation proceed; the result is usable but flagged for
  human review. Examples: salary components not summing to CTC, a
  PF-opted employee without a UAN, zero effective days in the period.

  Nothing here ever panics or returns a Go error: bad business data must
  not stop a batch run over other employees.

FORMATS:
  PAN:  5 letters, 4 digits, 1 letter        (AAAPZ1234C)
  IFSC: 4 letters, '0', 6 alphanumerics      (HDFC0001234)
  UAN:  exactly 12 digits

SEE ALSO:
  - engine.go: the validate step of the orchestrator state machine
  - errors.go: the contract-violation (hard error) side of the split
*/
package engine

import (
	"fmt"
	"regexp"
)

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult accumulates errors and warnings for one input.
// IsValid is false iff at least one error was recorded.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

func (v ValidationResult) IsValid() bool { return len(v.Errors) == 0 }

func (v *ValidationResult) addError(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *ValidationResult) addWarning(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends another result's findings into this one.
func (v *ValidationResult) Merge(other ValidationResult) {
	v.Errors = append(v.Errors, other.Errors...)
	v.Warnings = append(v.Warnings, other.Warnings...)
}

// =============================================================================
// IDENTIFIER FORMATS
// =============================================================================

var (
	panPattern  = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	uanPattern  = regexp.MustCompile(`^[0-9]{12}$`)
)

// ValidPAN reports whether s is a well-formed Permanent Account Number.
func ValidPAN(s string) bool { return panPattern.MatchString(s) }

// ValidIFSC reports whether s is a well-formed IFSC bank branch code.
func ValidIFSC(s string) bool { return ifscPattern.MatchString(s) }

// ValidUAN reports whether s is a well-formed Universal Account Number.
func ValidUAN(s string) bool { return uanPattern.MatchString(s) }

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks PayrollInput structure and formats against a RuleSet.
type Validator struct {
	Rules *RuleSet
}

// Validate runs every check and returns the combined result.
func (val *Validator) Validate(in PayrollInput) ValidationResult {
	var result ValidationResult

	val.checkEmployee(in.Employee, &result)
	val.checkAttendance(in.Attendance, &result)
	val.checkSalary(in.Salary, &result)
	val.checkVariable(in.Variable, in.Deductions, &result)
	val.checkJurisdiction(in.Employee, &result)

	return result
}

func (val *Validator) checkEmployee(emp EmployeeProfile, result *ValidationResult) {
	if emp.Name == "" {
		result.addError("employee name is required")
	}
	if emp.EmployeeID == "" {
		result.addError("employee ID is required")
	}
	if !ValidPAN(emp.PAN) {
		result.addError("PAN %q is not a valid format", emp.PAN)
	}
	if emp.BankAccount == "" {
		result.addError("bank account is required")
	}
	if !ValidIFSC(emp.IFSC) {
		result.addError("IFSC %q is not a valid format", emp.IFSC)
	}

	if emp.PFOptIn && !ValidUAN(emp.UAN) {
		result.addWarning("employee is PF-opted but UAN %q is missing or malformed", emp.UAN)
	}
	if emp.ESIApplicable && emp.ESICNumber == "" {
		result.addWarning("employee is ESI-applicable but has no ESIC number")
	}
	if emp.ExitDate != nil && emp.ExitDate.Before(emp.JoiningDate) {
		result.addError("exit date %s precedes joining date %s", emp.ExitDate, emp.JoiningDate)
	}
}

func (val *Validator) checkAttendance(att AttendancePeriod, result *ValidationResult) {
	if att.PresentDays > att.WorkingDays {
		result.addError("present days (%d) exceed working days (%d)", att.PresentDays, att.WorkingDays)
	}
	if att.LOPDays < 0 {
		result.addError("LOP days cannot be negative (%d)", att.LOPDays)
	}
	if att.PresentDays < 0 || att.WorkingDays < 0 {
		result.addError("attendance day counts cannot be negative")
	}
	if att.OvertimeHours.IsNegative() {
		result.addError("overtime hours cannot be negative (%s)", att.OvertimeHours)
	}
	if att.NightShiftDays < 0 || att.WeekendShiftDays < 0 {
		result.addError("shift day counts cannot be negative")
	}
	if att.WorkingDays > att.TotalDaysInMonth && att.TotalDaysInMonth > 0 {
		result.addWarning("working days (%d) exceed days in month (%d)", att.WorkingDays, att.TotalDaysInMonth)
	}
	if att.TotalDaysInMonth <= 0 {
		result.addWarning("total days in month is missing; falling back to 30 for per-day rates")
	}
}

// ctcTolerancePercent is the relative tolerance before a component/CTC
// mismatch is flagged. Structures routinely drift by rounding; 1% is a
// genuine discrepancy.
const ctcTolerancePercent = 1.0

func (val *Validator) checkSalary(sal SalaryStructure, result *ValidationResult) {
	if sal.Basic.IsNegative() || sal.HRA.IsNegative() || sal.DA.IsNegative() ||
		sal.TotalAllowances().IsNegative() {
		result.addError("salary components cannot be negative")
	}
	if sal.Basic.IsZero() {
		result.addWarning("basic salary is zero; statutory bases will be zero")
	}

	if sal.CTC.IsPositive() {
		monthlyCTC := sal.CTC.Div(RupeesInt(12))
		diff := sal.MonthlyGross().Sub(monthlyCTC).Abs()
		tolerance := monthlyCTC.Mul(Rupees(ctcTolerancePercent)).Div(RupeesInt(100))
		if diff.GreaterThan(tolerance) {
			result.addWarning("salary components (%s/month) do not sum to CTC (%s/month)",
				sal.MonthlyGross().StringFixed(2), monthlyCTC.StringFixed(2))
		}
	}
}

func (val *Validator) checkVariable(vp VariablePay, md ManualDeductions, result *ValidationResult) {
	if vp.Bonus.IsNegative() || vp.Incentives.IsNegative() ||
		vp.Arrears.IsNegative() || vp.Reimbursements.IsNegative() {
		result.addError("variable pay amounts cannot be negative")
	}
	if md.LoanEMI.IsNegative() || md.AdvanceRecovery.IsNegative() ||
		md.InsurancePremium.IsNegative() || md.CanteenDeduction.IsNegative() ||
		md.OtherDeductions.IsNegative() {
		result.addError("manual deduction amounts cannot be negative")
	}
}

func (val *Validator) checkJurisdiction(emp EmployeeProfile, result *ValidationResult) {
	if val.Rules == nil || emp.WorkState == "" {
		return
	}
	if _, ok := val.Rules.PTSlabsFor(emp.WorkState); !ok {
		result.addWarning("no Professional Tax table for state %q; deducting zero", emp.WorkState)
	}
	if _, ok := val.Rules.LWFRuleFor(emp.WorkState); !ok {
		result.addWarning("no LWF rule for state %q; deducting zero", emp.WorkState)
	}
}
