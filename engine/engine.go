/*
engine.go - The payroll orchestrator

PURPOSE:
  Sequences the calculators into one gross-to-net pass for a single
  employee and period:

    received -> validated -> earnings-computed -> deductions-computed -> finalized

  On validation errors the run short-circuits straight to finalized with
  net pay zero and the error list populated - calculation never runs on
  invalid mandatory fields.

DETERMINISM:
  Same input + same rule set version => identical output (audit entry
  timestamps aside). Required for reprocessing and audit trails. The
  engine keeps no state between calls; YTD comes in with the input and
  leaves with the output, and audit entries go through the caller's sink.

CONCURRENCY:
  One ProcessPayroll call is strictly sequential inside; calls for
  different employees are independent and safe to run concurrently.
  Callers processing the same employee concurrently must serialize
  access to that employee's YTD accumulator themselves.

SEE ALSO:
  - validate.go, proration.go, attendance.go, overtime.go, earnings.go
  - pf.go, esi.go, ptax.go, lwf.go, tds.go, deductions.go
  - audit.go: the sink contract
*/
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PROCESSING STATES
// =============================================================================

type ProcessingState string

const (
	StateReceived           ProcessingState = "received"
	StateValidated          ProcessingState = "validated"
	StateEarningsComputed   ProcessingState = "earnings-computed"
	StateDeductionsComputed ProcessingState = "deductions-computed"
	StateFinalized          ProcessingState = "finalized"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine runs payroll calculations against one rule set version.
// Construct one per rule set; an Engine is safe for concurrent use.
type Engine struct {
	rules     *RuleSet
	validator *Validator
	audit     AuditSink
	now       func() time.Time
}

// New creates an engine bound to a rule set and audit sink.
// A nil sink discards audit entries.
func New(rules *RuleSet, audit AuditSink) (*Engine, error) {
	if rules == nil {
		return nil, ErrNilRules
	}
	if audit == nil {
		audit = NopSink{}
	}
	return &Engine{
		rules:     rules,
		validator: &Validator{Rules: rules},
		audit:     audit,
		now:       time.Now,
	}, nil
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() *RuleSet { return e.rules }

// =============================================================================
// PROCESS PAYROLL - The one logical operation
// =============================================================================

// ProcessPayroll computes gross-to-net for one employee and period.
// The returned error is reserved for contract violations (nil rules,
// impossible period, missing joining date) and audit sink failures;
// every business-rule problem lands in the output's Validation.
func (e *Engine) ProcessPayroll(ctx context.Context, in PayrollInput) (*PayrollOutput, error) {
	if !in.Period.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, in.Period)
	}
	if in.Employee.JoiningDate.IsZero() {
		return nil, fmt.Errorf("%w: employee %s", ErrMissingJoiningDate, in.Employee.EmployeeID)
	}

	state := StateReceived
	out := &PayrollOutput{
		EmployeeID:  in.Employee.EmployeeID,
		Period:      in.Period,
		YTD:         in.YTD,
		RuleVersion: e.rules.Version,
	}

	// Validate
	out.Validation = e.validator.Validate(in)
	if !out.Validation.IsValid() {
		// Short-circuit: no trustworthy net pay can be produced.
		out.NetPay = decimal.Zero
		state = StateFinalized
		if err := e.appendAudit(ctx, in, out, state); err != nil {
			return nil, err
		}
		return out, nil
	}
	state = StateValidated

	// Earnings
	proration, vr := Prorate(in.Period, in.Employee.JoiningDate, in.Employee.ExitDate)
	out.Validation.Merge(vr)
	out.Proration = proration

	lop, vr := ResolveLOP(in.Attendance, in.Salary)
	out.Validation.Merge(vr)

	overtime := CalculateOvertime(in.Attendance, in.Salary.Basic, e.rules.Overtime)

	earnings, vr := AggregateEarnings(in.Salary, proration, overtime, in.Variable, lop)
	out.Validation.Merge(vr)
	out.Earnings = earnings
	state = StateEarningsComputed

	// Deductions
	pf := CalculatePF(earnings.Basic, earnings.DA, in.Employee, e.rules.PF)
	esi := CalculateESI(earnings.NetGrossEarnings, in.Employee, e.rules.ESI)
	pt := CalculatePT(earnings.NetGrossEarnings, in.Employee.WorkState, e.rules)
	lwf := CalculateLWF(in.Period, in.Employee.WorkState, e.rules)
	tds := CalculateTDS(earnings.NetGrossEarnings, in.Period, in.YTD, e.rules.TDS)

	out.Statutory = StatutoryDeductions{
		EmployeePF:      pf.EmployeePF,
		VPF:             pf.VPF,
		EmployeeESI:     esi.EmployeeESI,
		ProfessionalTax: pt,
		LWF:             lwf.Employee,
		TDS:             tds.MonthlyTDS,
		EmployerEPF:     pf.EmployerEPF,
		EmployerEPS:     pf.EmployerEPS,
		PFAdminCharges:  pf.AdminCharge,
		EmployerESI:     esi.EmployerESI,
		PFWageBase:      pf.WageBase,
	}
	out.NonStatutory = AggregateManualDeductions(in.Deductions)
	state = StateDeductionsComputed

	// Finalize
	out.TotalDeductions = out.Statutory.EmployeeTotal().Add(out.NonStatutory.Total)
	out.NetPay = earnings.NetGrossEarnings.Sub(out.TotalDeductions)
	if out.NetPay.IsNegative() {
		out.Validation.addWarning("deductions (%s) exceed net gross earnings (%s); net pay floored at zero",
			out.TotalDeductions.StringFixed(2), earnings.NetGrossEarnings.StringFixed(2))
		out.NetPay = decimal.Zero
	}
	if out.NetPay.IsZero() && earnings.GrossEarnings.IsPositive() {
		out.Validation.addWarning("net pay is zero despite positive gross earnings")
	}

	out.YTD = in.YTD.Accumulate(
		earnings.NetGrossEarnings,
		out.TotalDeductions,
		out.NetPay,
		out.Statutory.TDS,
	)
	state = StateFinalized

	if err := e.appendAudit(ctx, in, out, state); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) appendAudit(ctx context.Context, in PayrollInput, out *PayrollOutput, state ProcessingState) error {
	entry := AuditEntry{
		ID:         uuid.NewString(),
		Timestamp:  e.now(),
		Action:     AuditPayrollProcessed,
		EmployeeID: in.Employee.EmployeeID,
		Period:     in.Period,
		ActorID:    "engine",
		Payload: map[string]any{
			"state":        string(state),
			"valid":        out.Validation.IsValid(),
			"net_pay":      out.NetPay.StringFixed(2),
			"rule_version": e.rules.Version,
			"errors":       len(out.Validation.Errors),
			"warnings":     len(out.Validation.Warnings),
		},
	}
	if err := e.audit.Append(ctx, entry); err != nil {
		return fmt.Errorf("%w: %v", ErrAuditAppendFailed, err)
	}
	return nil
}

// =============================================================================
// LOCKING - The engine records lock intent; enforcement is the caller's
// =============================================================================

// LockPayroll records a lock event for the period. The engine holds no
// lock state: rejecting writes into a locked period is the persistence
// layer's job.
func (e *Engine) LockPayroll(ctx context.Context, period PayPeriod, lockedBy string) error {
	if !period.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidPeriod, period)
	}
	entry := AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: e.now(),
		Action:    AuditPayrollLocked,
		Period:    period,
		ActorID:   lockedBy,
		Payload: map[string]any{
			"locked_by": lockedBy,
		},
	}
	if err := e.audit.Append(ctx, entry); err != nil {
		return fmt.Errorf("%w: %v", ErrAuditAppendFailed, err)
	}
	return nil
}
