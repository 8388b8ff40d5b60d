/*
store.go - Persistence interfaces for the engine's collaborators

PURPOSE:
  The engine computes; these interfaces are how the surrounding
  application persists what it computed. The engine itself only ever
  touches the AuditSink (see audit.go) - everything else here exists so
  that callers (the API layer, batch runners) share one storage contract
  with swappable implementations.

KEY INTERFACES:
  YTDStore:    financial-year-to-date accumulators per employee
  ResultStore: finalized payroll outputs per employee-period
  LockStore:   period locks; a locked period rejects further results

LOCK ENFORCEMENT:
  Per the orchestrator contract, the engine records lock events but does
  not enforce them. ResultStore implementations MUST reject saves into a
  locked period with ErrPeriodLocked - that is where enforcement lives.

IMPLEMENTATIONS:
  - engine/store/memory.go: in-memory, for tests and the dev server
  - store/sqlite: SQLite-backed, for real runs

SEE ALSO:
  - audit.go: the AuditSink/AuditLog contract
  - errors.go: ErrPeriodLocked
*/
package engine

import "context"

// YTDStore persists financial-year-to-date accumulators.
// Keyed by employee and the financial year's starting calendar year
// (FY 2024-25 => 2024).
type YTDStore interface {
	// LoadYTD returns the accumulator, or a zero accumulator when the
	// employee has no history for that financial year.
	LoadYTD(ctx context.Context, employeeID EmployeeID, financialYear int) (YTDAccumulator, error)

	// SaveYTD replaces the accumulator for the employee and year.
	SaveYTD(ctx context.Context, employeeID EmployeeID, financialYear int, ytd YTDAccumulator) error
}

// ResultStore persists finalized payroll outputs.
type ResultStore interface {
	// SaveResult stores one output, replacing any previous result for
	// the same employee and period. Returns ErrPeriodLocked if the
	// period has been locked.
	SaveResult(ctx context.Context, out *PayrollOutput) error

	// LoadResults returns every stored output for a period.
	LoadResults(ctx context.Context, period PayPeriod) ([]*PayrollOutput, error)
}

// LockStore persists period locks. Locking is terminal for a period.
type LockStore interface {
	// Lock marks the period locked. Locking an already-locked period is
	// a no-op.
	Lock(ctx context.Context, period PayPeriod, lockedBy string) error

	// IsLocked reports whether the period is locked.
	IsLocked(ctx context.Context, period PayPeriod) (bool, error)
}
