/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal calculation model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

AMOUNT ENCODING:
  Request amounts arrive as JSON numbers and are converted to decimals
  at the boundary. Response amounts are fixed two-decimal strings so
  clients never re-round rupee values with float math.

DATE ENCODING:
  Dates are "YYYY-MM-DD" strings; pay periods are "YYYY-MM".

VALIDATION:
  Structural validation (parseable dates, well-formed period) happens
  during conversion here. Business validation lives in the engine and
  comes back inside the output's validation block.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/rules.go: RulesJSON type
*/
package api

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// EmployeeDTO carries the calculation-relevant employee master data.
type EmployeeDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PAN         string  `json:"pan"`
	UAN         string  `json:"uan,omitempty"`
	ESICNumber  string  `json:"esic_number,omitempty"`
	BankAccount string  `json:"bank_account"`
	IFSC        string  `json:"ifsc"`
	JoiningDate string  `json:"joining_date"`
	ExitDate    string  `json:"exit_date,omitempty"`
	WorkState   string  `json:"work_state"`
	PFOptIn     bool    `json:"pf_opt_in"`
	ESIEligible bool    `json:"esi_applicable"`
	VPFPercent  float64 `json:"vpf_percent,omitempty"`
}

// SalaryDTO carries the fixed monthly salary components in rupees.
type SalaryDTO struct {
	Basic               float64 `json:"basic"`
	HRA                 float64 `json:"hra"`
	DA                  float64 `json:"da,omitempty"`
	ConveyanceAllowance float64 `json:"conveyance_allowance,omitempty"`
	MedicalAllowance    float64 `json:"medical_allowance,omitempty"`
	SpecialAllowance    float64 `json:"special_allowance,omitempty"`
	OtherAllowances     float64 `json:"other_allowances,omitempty"`
	CTC                 float64 `json:"ctc,omitempty"`
}

// AttendanceDTO carries the attendance summary for the period.
type AttendanceDTO struct {
	TotalDaysInMonth int     `json:"total_days_in_month"`
	WorkingDays      int     `json:"working_days"`
	PresentDays      int     `json:"present_days"`
	LOPDays          int     `json:"lop_days,omitempty"`
	OvertimeHours    float64 `json:"overtime_hours,omitempty"`
	NightShiftDays   int     `json:"night_shift_days,omitempty"`
	WeekendShiftDays int     `json:"weekend_shift_days,omitempty"`
}

// VariablePayDTO carries one-off earnings for the period.
type VariablePayDTO struct {
	Bonus          float64 `json:"bonus,omitempty"`
	Incentives     float64 `json:"incentives,omitempty"`
	Arrears        float64 `json:"arrears,omitempty"`
	Reimbursements float64 `json:"reimbursements,omitempty"`
}

// ManualDeductionsDTO carries non-statutory recoveries.
type ManualDeductionsDTO struct {
	LoanEMI          float64 `json:"loan_emi,omitempty"`
	AdvanceRecovery  float64 `json:"advance_recovery,omitempty"`
	InsurancePremium float64 `json:"insurance_premium,omitempty"`
	CanteenDeduction float64 `json:"canteen_deduction,omitempty"`
	OtherDeductions  float64 `json:"other_deductions,omitempty"`
}

// EmployeePayload bundles everything needed to run one employee.
type EmployeePayload struct {
	Employee   EmployeeDTO         `json:"employee"`
	Salary     SalaryDTO           `json:"salary"`
	Attendance AttendanceDTO       `json:"attendance"`
	Variable   VariablePayDTO      `json:"variable_pay,omitempty"`
	Deductions ManualDeductionsDTO `json:"manual_deductions,omitempty"`
}

// ProcessPayrollRequest runs payroll for a single employee.
type ProcessPayrollRequest struct {
	Period string `json:"period"` // "YYYY-MM"
	EmployeePayload
}

// BatchRunRequest runs payroll for many employees in one period.
type BatchRunRequest struct {
	Period    string            `json:"period"`
	Employees []EmployeePayload `json:"employees"`
}

// LockPeriodRequest marks a period as closed.
type LockPeriodRequest struct {
	LockedBy string `json:"locked_by"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ProrationDTO reports period coverage.
type ProrationDTO struct {
	Factor            string `json:"factor"`
	EffectiveDays     int    `json:"effective_days"`
	TotalDaysInPeriod int    `json:"total_days_in_period"`
}

// EarningsDTO lists the payslip earning lines.
type EarningsDTO struct {
	Basic            string `json:"basic"`
	HRA              string `json:"hra"`
	DA               string `json:"da"`
	Allowances       string `json:"allowances"`
	OvertimePay      string `json:"overtime_pay"`
	NightShiftPay    string `json:"night_shift_pay"`
	WeekendShiftPay  string `json:"weekend_shift_pay"`
	Bonus            string `json:"bonus"`
	Incentives       string `json:"incentives"`
	Arrears          string `json:"arrears"`
	Reimbursements   string `json:"reimbursements"`
	GrossEarnings    string `json:"gross_earnings"`
	LOPDeduction     string `json:"lop_deduction"`
	NetGrossEarnings string `json:"net_gross_earnings"`
}

// StatutoryDTO lists statutory deductions and employer contributions.
type StatutoryDTO struct {
	EmployeePF      string `json:"employee_pf"`
	VPF             string `json:"vpf"`
	EmployeeESI     string `json:"employee_esi"`
	ProfessionalTax string `json:"professional_tax"`
	LWF             string `json:"lwf"`
	TDS             string `json:"tds"`

	EmployerEPF    string `json:"employer_epf"`
	EmployerEPS    string `json:"employer_eps"`
	PFAdminCharges string `json:"pf_admin_charges"`
	EmployerESI    string `json:"employer_esi"`
}

// NonStatutoryDTO lists manual recoveries with their total.
type NonStatutoryDTO struct {
	LoanEMI          string `json:"loan_emi"`
	AdvanceRecovery  string `json:"advance_recovery"`
	InsurancePremium string `json:"insurance_premium"`
	CanteenDeduction string `json:"canteen_deduction"`
	OtherDeductions  string `json:"other_deductions"`
	Total            string `json:"total"`
}

// YTDDTO reports financial-year running totals after this period.
type YTDDTO struct {
	GrossEarnings   string `json:"gross_earnings"`
	TotalDeductions string `json:"total_deductions"`
	NetPay          string `json:"net_pay"`
	TDSDeducted     string `json:"tds_deducted"`
}

// ValidationDTO reports the two-severity validation outcome.
type ValidationDTO struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// PayrollOutputDTO is the full gross-to-net result for one employee.
type PayrollOutputDTO struct {
	EmployeeID string `json:"employee_id"`
	Period     string `json:"period"`

	Proration    ProrationDTO    `json:"proration"`
	Earnings     EarningsDTO     `json:"earnings"`
	Statutory    StatutoryDTO    `json:"statutory_deductions"`
	NonStatutory NonStatutoryDTO `json:"manual_deductions"`

	TotalDeductions string `json:"total_deductions"`
	NetPay          string `json:"net_pay"`

	YTD        YTDDTO        `json:"ytd"`
	Validation ValidationDTO `json:"validation"`

	RuleVersion int `json:"rule_version"`
}

// BatchFailureDTO reports one employee the batch could not process.
type BatchFailureDTO struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

// BatchRunResponse summarizes one batch run.
type BatchRunResponse struct {
	RunID     string            `json:"run_id"`
	Period    string            `json:"period"`
	Processed int               `json:"processed"`
	Invalid   int               `json:"invalid"`
	Failed    int               `json:"failed"`
	TotalNet  string            `json:"total_net_pay"`
	Failures  []BatchFailureDTO `json:"failures,omitempty"`
}

// AuditEntryDTO represents one audit trail entry.
type AuditEntryDTO struct {
	ID         string         `json:"id"`
	Timestamp  string         `json:"timestamp"`
	Action     string         `json:"action"`
	EmployeeID string         `json:"employee_id,omitempty"`
	Period     string         `json:"period"`
	ActorID    string         `json:"actor_id"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// StatutoryFileDTO carries a generated filing for download.
type StatutoryFileDTO struct {
	Name   string   `json:"name"`
	Header string   `json:"header"`
	Lines  []string `json:"lines"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// parsePeriod parses "YYYY-MM" into a PayPeriod.
func parsePeriod(s string) (engine.PayPeriod, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return engine.PayPeriod{}, fmt.Errorf("invalid period %q (use YYYY-MM): %w", s, err)
	}
	return engine.PayPeriod{Month: t.Month(), Year: t.Year()}, nil
}

// toEngineInput converts one payload into the engine's input shape.
func toEngineInput(period engine.PayPeriod, p EmployeePayload, ytd engine.YTDAccumulator) (engine.PayrollInput, error) {
	joining, err := engine.ParseDate(p.Employee.JoiningDate)
	if err != nil {
		return engine.PayrollInput{}, fmt.Errorf("invalid joining_date: %w", err)
	}

	var exitDate *engine.Date
	if p.Employee.ExitDate != "" {
		d, err := engine.ParseDate(p.Employee.ExitDate)
		if err != nil {
			return engine.PayrollInput{}, fmt.Errorf("invalid exit_date: %w", err)
		}
		exitDate = &d
	}

	return engine.PayrollInput{
		Period: period,
		Employee: engine.EmployeeProfile{
			EmployeeID:    engine.EmployeeID(p.Employee.ID),
			Name:          p.Employee.Name,
			PAN:           p.Employee.PAN,
			UAN:           p.Employee.UAN,
			ESICNumber:    p.Employee.ESICNumber,
			BankAccount:   p.Employee.BankAccount,
			IFSC:          p.Employee.IFSC,
			JoiningDate:   joining,
			ExitDate:      exitDate,
			WorkState:     engine.StateCode(p.Employee.WorkState),
			PFOptIn:       p.Employee.PFOptIn,
			ESIApplicable: p.Employee.ESIEligible,
			VPFPercent:    decimal.NewFromFloat(p.Employee.VPFPercent),
		},
		Salary: engine.SalaryStructure{
			Basic:               engine.Rupees(p.Salary.Basic),
			HRA:                 engine.Rupees(p.Salary.HRA),
			DA:                  engine.Rupees(p.Salary.DA),
			ConveyanceAllowance: engine.Rupees(p.Salary.ConveyanceAllowance),
			MedicalAllowance:    engine.Rupees(p.Salary.MedicalAllowance),
			SpecialAllowance:    engine.Rupees(p.Salary.SpecialAllowance),
			OtherAllowances:     engine.Rupees(p.Salary.OtherAllowances),
			CTC:                 engine.Rupees(p.Salary.CTC),
		},
		Attendance: engine.AttendancePeriod{
			TotalDaysInMonth: p.Attendance.TotalDaysInMonth,
			WorkingDays:      p.Attendance.WorkingDays,
			PresentDays:      p.Attendance.PresentDays,
			LOPDays:          p.Attendance.LOPDays,
			OvertimeHours:    decimal.NewFromFloat(p.Attendance.OvertimeHours),
			NightShiftDays:   p.Attendance.NightShiftDays,
			WeekendShiftDays: p.Attendance.WeekendShiftDays,
		},
		Variable: engine.VariablePay{
			Bonus:          engine.Rupees(p.Variable.Bonus),
			Incentives:     engine.Rupees(p.Variable.Incentives),
			Arrears:        engine.Rupees(p.Variable.Arrears),
			Reimbursements: engine.Rupees(p.Variable.Reimbursements),
		},
		Deductions: engine.ManualDeductions{
			LoanEMI:          engine.Rupees(p.Deductions.LoanEMI),
			AdvanceRecovery:  engine.Rupees(p.Deductions.AdvanceRecovery),
			InsurancePremium: engine.Rupees(p.Deductions.InsurancePremium),
			CanteenDeduction: engine.Rupees(p.Deductions.CanteenDeduction),
			OtherDeductions:  engine.Rupees(p.Deductions.OtherDeductions),
		},
		YTD: ytd,
	}, nil
}

// toOutputDTO converts an engine output into the API shape.
func toOutputDTO(out *engine.PayrollOutput) PayrollOutputDTO {
	money := func(d decimal.Decimal) string { return d.StringFixed(2) }

	validation := ValidationDTO{
		IsValid:  out.Validation.IsValid(),
		Errors:   out.Validation.Errors,
		Warnings: out.Validation.Warnings,
	}
	if validation.Errors == nil {
		validation.Errors = []string{}
	}
	if validation.Warnings == nil {
		validation.Warnings = []string{}
	}

	return PayrollOutputDTO{
		EmployeeID: string(out.EmployeeID),
		Period:     out.Period.String(),
		Proration: ProrationDTO{
			Factor:            out.Proration.Factor.StringFixed(4),
			EffectiveDays:     out.Proration.EffectiveDays,
			TotalDaysInPeriod: out.Proration.TotalDaysInPeriod,
		},
		Earnings: EarningsDTO{
			Basic:            money(out.Earnings.Basic),
			HRA:              money(out.Earnings.HRA),
			DA:               money(out.Earnings.DA),
			Allowances:       money(out.Earnings.Allowances),
			OvertimePay:      money(out.Earnings.OvertimePay),
			NightShiftPay:    money(out.Earnings.NightShiftPay),
			WeekendShiftPay:  money(out.Earnings.WeekendShiftPay),
			Bonus:            money(out.Earnings.Bonus),
			Incentives:       money(out.Earnings.Incentives),
			Arrears:          money(out.Earnings.Arrears),
			Reimbursements:   money(out.Earnings.Reimbursements),
			GrossEarnings:    money(out.Earnings.GrossEarnings),
			LOPDeduction:     money(out.Earnings.LOPDeduction),
			NetGrossEarnings: money(out.Earnings.NetGrossEarnings),
		},
		Statutory: StatutoryDTO{
			EmployeePF:      money(out.Statutory.EmployeePF),
			VPF:             money(out.Statutory.VPF),
			EmployeeESI:     money(out.Statutory.EmployeeESI),
			ProfessionalTax: money(out.Statutory.ProfessionalTax),
			LWF:             money(out.Statutory.LWF),
			TDS:             money(out.Statutory.TDS),
			EmployerEPF:     money(out.Statutory.EmployerEPF),
			EmployerEPS:     money(out.Statutory.EmployerEPS),
			PFAdminCharges:  money(out.Statutory.PFAdminCharges),
			EmployerESI:     money(out.Statutory.EmployerESI),
		},
		NonStatutory: NonStatutoryDTO{
			LoanEMI:          money(out.NonStatutory.LoanEMI),
			AdvanceRecovery:  money(out.NonStatutory.AdvanceRecovery),
			InsurancePremium: money(out.NonStatutory.InsurancePremium),
			CanteenDeduction: money(out.NonStatutory.CanteenDeduction),
			OtherDeductions:  money(out.NonStatutory.OtherDeductions),
			Total:            money(out.NonStatutory.Total),
		},
		TotalDeductions: money(out.TotalDeductions),
		NetPay:          money(out.NetPay),
		YTD: YTDDTO{
			GrossEarnings:   money(out.YTD.GrossEarnings),
			TotalDeductions: money(out.YTD.TotalDeductions),
			NetPay:          money(out.YTD.NetPay),
			TDSDeducted:     money(out.YTD.TDSDeducted),
		},
		Validation:  validation,
		RuleVersion: out.RuleVersion,
	}
}

// toAuditDTO converts one audit entry.
func toAuditDTO(e engine.AuditEntry) AuditEntryDTO {
	return AuditEntryDTO{
		ID:         e.ID,
		Timestamp:  e.Timestamp.UTC().Format(time.RFC3339),
		Action:     string(e.Action),
		EmployeeID: string(e.EmployeeID),
		Period:     e.Period.String(),
		ActorID:    e.ActorID,
		Payload:    e.Payload,
	}
}
