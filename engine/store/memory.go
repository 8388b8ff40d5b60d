// Package store provides in-memory implementations of the engine's
// persistence interfaces, for tests and the dev server.
package store

import (
	"context"
	"sync"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// MEMORY STORE - Audit log, YTD, results, and locks in one struct
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	audit   []engine.AuditEntry
	ytd     map[ytdKey]engine.YTDAccumulator
	results map[resultKey]*engine.PayrollOutput
	locks   map[engine.PayPeriod]string
}

type ytdKey struct {
	EmployeeID    engine.EmployeeID
	FinancialYear int
}

type resultKey struct {
	EmployeeID engine.EmployeeID
	Period     engine.PayPeriod
}

func NewMemory() *Memory {
	return &Memory{
		ytd:     make(map[ytdKey]engine.YTDAccumulator),
		results: make(map[resultKey]*engine.PayrollOutput),
		locks:   make(map[engine.PayPeriod]string),
	}
}

// =============================================================================
// AUDIT LOG - Append-only
// =============================================================================

func (m *Memory) Append(_ context.Context, entry engine.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audit = append(m.audit, entry)
	return nil
}

func (m *Memory) Query(_ context.Context, filter engine.AuditFilter) ([]engine.AuditEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []engine.AuditEntry
	for _, e := range m.audit {
		if filter.Matches(e) {
			result = append(result, e)
		}
	}
	return result, nil
}

// =============================================================================
// YTD STORE
// =============================================================================

func (m *Memory) LoadYTD(_ context.Context, employeeID engine.EmployeeID, financialYear int) (engine.YTDAccumulator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ytd[ytdKey{EmployeeID: employeeID, FinancialYear: financialYear}], nil
}

func (m *Memory) SaveYTD(_ context.Context, employeeID engine.EmployeeID, financialYear int, ytd engine.YTDAccumulator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ytd[ytdKey{EmployeeID: employeeID, FinancialYear: financialYear}] = ytd
	return nil
}

// =============================================================================
// RESULT STORE - Rejects writes into locked periods
// =============================================================================

func (m *Memory) SaveResult(_ context.Context, out *engine.PayrollOutput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lockedBy, locked := m.locks[out.Period]; locked {
		return &engine.PeriodLockedError{Period: out.Period, LockedBy: lockedBy}
	}
	m.results[resultKey{EmployeeID: out.EmployeeID, Period: out.Period}] = out
	return nil
}

func (m *Memory) LoadResults(_ context.Context, period engine.PayPeriod) ([]*engine.PayrollOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*engine.PayrollOutput
	for k, out := range m.results {
		if k.Period == period {
			result = append(result, out)
		}
	}
	return result, nil
}

// =============================================================================
// LOCK STORE
// =============================================================================

func (m *Memory) Lock(_ context.Context, period engine.PayPeriod, lockedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, locked := m.locks[period]; !locked {
		m.locks[period] = lockedBy
	}
	return nil
}

func (m *Memory) IsLocked(_ context.Context, period engine.PayPeriod) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, locked := m.locks[period]
	return locked, nil
}
