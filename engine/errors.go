/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All hard-failure error types in one place. The engine draws a sharp
  line between two kinds of problems:

  1. CONTRACT VIOLATIONS (Go errors, defined here): the caller handed us
     something structurally broken - a nil rule set, an impossible period,
     a date string that cannot be parsed. These indicate a programming
     bug in the collaborator and fail the call outright.

  2. BUSINESS-RULE PROBLEMS (never Go errors): malformed PAN, attendance
     inconsistencies, missing statutory tables for a state. These are
     captured as errors/warnings inside ValidationResult so a batch run
     can continue past one employee's bad data. See validate.go.

USAGE:
  Callers can classify failures:

    if errors.Is(err, engine.ErrUnparseableDate) {
        // reject the upstream record, don't retry
    }

SEE ALSO:
  - validate.go: the business-rule severity model
  - engine.go: where contract checks happen
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNilRules is returned when the engine is asked to calculate
	// without a rule set. Statutory rates are never implicit.
	ErrNilRules = errors.New("rule set is required")

	// ErrInvalidPeriod is returned for a period outside the calendar
	// (month 0, year 0, and similar).
	ErrInvalidPeriod = errors.New("invalid pay period")

	// ErrUnparseableDate is returned when a date string cannot be parsed.
	// This is a contract violation by the caller, not a business condition.
	ErrUnparseableDate = errors.New("unparseable date")

	// ErrMissingJoiningDate is returned when the employee profile has a
	// zero joining date. Proration is meaningless without it.
	ErrMissingJoiningDate = errors.New("joining date is required")

	// ErrPeriodLocked is returned by stores when a caller attempts to
	// write results into a locked period.
	ErrPeriodLocked = errors.New("payroll period is locked")

	// ErrAuditAppendFailed wraps audit sink failures.
	ErrAuditAppendFailed = errors.New("audit append failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// PeriodLockedError reports which period rejected the write.
type PeriodLockedError struct {
	Period   PayPeriod
	LockedBy string
}

func (e *PeriodLockedError) Error() string {
	return fmt.Sprintf("payroll period %s is locked by %s", e.Period, e.LockedBy)
}

func (e *PeriodLockedError) Unwrap() error { return ErrPeriodLocked }

// IsContractViolation reports whether the error indicates a caller bug
// rather than an environmental failure.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrNilRules) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrUnparseableDate) ||
		errors.Is(err, ErrMissingJoiningDate)
}
