/*
audit.go - Append-only audit trail

PURPOSE:
  Every completed payroll calculation and every period lock is recorded
  as an AuditEntry. The engine itself holds no log: it writes through an
  explicit AuditSink supplied at construction, so the core stays pure
  and the caller decides where entries live (memory, SQLite, nothing).

CRITICAL INVARIANTS:
  1. APPEND-ONLY: entries are never mutated or deleted.
  2. COMPLETE: one entry per successful ProcessPayroll call, one per
     lock event.
  3. TRACEABLE: the payload carries enough to explain the outcome
     (period, net pay, rule version, validity).

SEE ALSO:
  - engine/store/memory.go: in-memory AuditLog for tests and dev
  - store/sqlite: persistent AuditLog
*/
package engine

import (
	"context"
	"time"
)

// =============================================================================
// AUDIT ENTRIES
// =============================================================================

type AuditAction string

const (
	AuditPayrollProcessed AuditAction = "payroll_processed"
	AuditPayrollLocked    AuditAction = "payroll_locked"
)

// AuditEntry records one engine event. Immutable once appended.
type AuditEntry struct {
	ID         string
	Timestamp  time.Time
	Action     AuditAction
	EmployeeID EmployeeID
	Period     PayPeriod
	ActorID    string
	Payload    map[string]any
}

// AuditSink receives entries from the engine. Implementations must be
// safe for concurrent use: batch runs process employees in parallel.
type AuditSink interface {
	Append(ctx context.Context, entry AuditEntry) error
}

// AuditLog extends AuditSink with read access for reporting collaborators.
type AuditLog interface {
	AuditSink

	// Query returns entries matching the filter, oldest first.
	Query(ctx context.Context, filter AuditFilter) ([]AuditEntry, error)
}

// AuditFilter narrows a Query. Nil fields match everything.
type AuditFilter struct {
	EmployeeID *EmployeeID
	Period     *PayPeriod
	Actions    []AuditAction
	From       *time.Time
	To         *time.Time
}

// Matches reports whether an entry passes the filter.
func (f AuditFilter) Matches(e AuditEntry) bool {
	if f.EmployeeID != nil && e.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Period != nil && e.Period != *f.Period {
		return false
	}
	if len(f.Actions) > 0 {
		found := false
		for _, a := range f.Actions {
			if e.Action == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.From != nil && e.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Timestamp.After(*f.To) {
		return false
	}
	return true
}

// NopSink discards entries. Used when a caller genuinely wants no trail.
type NopSink struct{}

func (NopSink) Append(ctx context.Context, entry AuditEntry) error { return nil }
