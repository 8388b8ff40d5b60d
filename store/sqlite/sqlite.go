/*
Package sqlite provides a SQLite-backed implementation of the engine's
persistence interfaces.

PURPOSE:
  Implements engine.AuditLog, engine.YTDStore, engine.ResultStore, and
  engine.LockStore using SQLite. In production, the same patterns apply
  to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  audit_entries:    Append-only trail of processing and lock events
  ytd_accumulators: Financial-year running totals per employee
  payroll_results:  Finalized outputs, one row per employee-period
  payroll_locks:    Locked periods

APPEND-ONLY ENFORCEMENT:
  audit_entries has no UPDATE or DELETE path in this package, and
  payroll_locks is insert-only - locking a period is terminal.
  SaveResult refuses to write into a locked period and returns
  engine.ErrPeriodLocked.

AMOUNT STORAGE:
  Rupee amounts are stored as decimal strings, never as REAL. SQLite
  has no decimal type and float columns would reintroduce the rounding
  drift the engine exists to avoid.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety across batch-run goroutines.
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't
  block the single writer.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  eng, err := engine.New(engine.DefaultRules(), store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/store.go: Interface definitions
  - engine/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
)

// Store implements the engine's persistence interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Audit trail (append-only)
	CREATE TABLE IF NOT EXISTS audit_entries (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		action TEXT NOT NULL,
		employee_id TEXT,
		period_month INTEGER,
		period_year INTEGER,
		actor_id TEXT,
		payload_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_audit_employee
		ON audit_entries(employee_id);
	CREATE INDEX IF NOT EXISTS idx_audit_period
		ON audit_entries(period_year, period_month);

	-- Financial-year-to-date accumulators
	CREATE TABLE IF NOT EXISTS ytd_accumulators (
		employee_id TEXT NOT NULL,
		financial_year INTEGER NOT NULL,
		gross_earnings TEXT NOT NULL,
		total_deductions TEXT NOT NULL,
		net_pay TEXT NOT NULL,
		tds_deducted TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, financial_year)
	);

	-- Finalized payroll outputs
	CREATE TABLE IF NOT EXISTS payroll_results (
		employee_id TEXT NOT NULL,
		period_month INTEGER NOT NULL,
		period_year INTEGER NOT NULL,
		output_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, period_year, period_month)
	);

	CREATE INDEX IF NOT EXISTS idx_results_period
		ON payroll_results(period_year, period_month);

	-- Employee master records, needed to rebuild exports after restart
	CREATE TABLE IF NOT EXISTS employees (
		employee_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		profile_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Period locks (insert-only; locking is terminal)
	CREATE TABLE IF NOT EXISTS payroll_locks (
		period_month INTEGER NOT NULL,
		period_year INTEGER NOT NULL,
		locked_by TEXT NOT NULL,
		locked_at TEXT NOT NULL,
		PRIMARY KEY (period_year, period_month)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// AUDIT LOG
// =============================================================================

func (s *Store) Append(ctx context.Context, entry engine.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal audit payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_entries
			(id, timestamp, action, employee_id, period_month, period_year, actor_id, payload_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
		string(entry.Action),
		string(entry.EmployeeID),
		int(entry.Period.Month),
		entry.Period.Year,
		entry.ActorID,
		string(payload),
	)
	return err
}

func (s *Store) Query(ctx context.Context, filter engine.AuditFilter) ([]engine.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, action, employee_id, period_month, period_year, actor_id, payload_json
		FROM audit_entries
		ORDER BY timestamp`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []engine.AuditEntry
	for rows.Next() {
		var (
			entry       engine.AuditEntry
			ts          string
			action      string
			employeeID  string
			month, year int
			payloadJSON string
		)
		if err := rows.Scan(&entry.ID, &ts, &action, &employeeID, &month, &year, &entry.ActorID, &payloadJSON); err != nil {
			return nil, err
		}
		entry.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("corrupt audit timestamp %q: %w", ts, err)
		}
		entry.Action = engine.AuditAction(action)
		entry.EmployeeID = engine.EmployeeID(employeeID)
		entry.Period = engine.PayPeriod{Month: time.Month(month), Year: year}
		if payloadJSON != "" {
			if err := json.Unmarshal([]byte(payloadJSON), &entry.Payload); err != nil {
				return nil, fmt.Errorf("corrupt audit payload: %w", err)
			}
		}
		if filter.Matches(entry) {
			entries = append(entries, entry)
		}
	}
	return entries, rows.Err()
}

// =============================================================================
// YTD STORE
// =============================================================================

func (s *Store) LoadYTD(ctx context.Context, employeeID engine.EmployeeID, financialYear int) (engine.YTDAccumulator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var gross, deductions, net, tds string
	err := s.db.QueryRowContext(ctx, `
		SELECT gross_earnings, total_deductions, net_pay, tds_deducted
		FROM ytd_accumulators
		WHERE employee_id = ? AND financial_year = ?`,
		string(employeeID), financialYear,
	).Scan(&gross, &deductions, &net, &tds)
	if err == sql.ErrNoRows {
		// First period of the financial year.
		return engine.YTDAccumulator{}, nil
	}
	if err != nil {
		return engine.YTDAccumulator{}, err
	}

	var ytd engine.YTDAccumulator
	if ytd.GrossEarnings, err = parseAmount(gross); err != nil {
		return engine.YTDAccumulator{}, err
	}
	if ytd.TotalDeductions, err = parseAmount(deductions); err != nil {
		return engine.YTDAccumulator{}, err
	}
	if ytd.NetPay, err = parseAmount(net); err != nil {
		return engine.YTDAccumulator{}, err
	}
	if ytd.TDSDeducted, err = parseAmount(tds); err != nil {
		return engine.YTDAccumulator{}, err
	}
	return ytd, nil
}

func (s *Store) SaveYTD(ctx context.Context, employeeID engine.EmployeeID, financialYear int, ytd engine.YTDAccumulator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ytd_accumulators
			(employee_id, financial_year, gross_earnings, total_deductions, net_pay, tds_deducted, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, financial_year) DO UPDATE SET
			gross_earnings = excluded.gross_earnings,
			total_deductions = excluded.total_deductions,
			net_pay = excluded.net_pay,
			tds_deducted = excluded.tds_deducted,
			updated_at = excluded.updated_at`,
		string(employeeID), financialYear,
		ytd.GrossEarnings.String(),
		ytd.TotalDeductions.String(),
		ytd.NetPay.String(),
		ytd.TDSDeducted.String(),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt stored amount %q: %w", s, err)
	}
	return d, nil
}

// =============================================================================
// RESULT STORE
// =============================================================================

func (s *Store) SaveResult(ctx context.Context, out *engine.PayrollOutput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lockedBy, locked, err := s.lockHolder(ctx, out.Period)
	if err != nil {
		return err
	}
	if locked {
		return &engine.PeriodLockedError{Period: out.Period, LockedBy: lockedBy}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal payroll output: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO payroll_results
			(employee_id, period_month, period_year, output_json, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, period_year, period_month) DO UPDATE SET
			output_json = excluded.output_json,
			created_at = excluded.created_at`,
		string(out.EmployeeID),
		int(out.Period.Month),
		out.Period.Year,
		string(data),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *Store) LoadResults(ctx context.Context, period engine.PayPeriod) ([]*engine.PayrollOutput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT output_json FROM payroll_results
		WHERE period_year = ? AND period_month = ?
		ORDER BY employee_id`,
		period.Year, int(period.Month),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outputs []*engine.PayrollOutput
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var out engine.PayrollOutput
		if err := json.Unmarshal([]byte(data), &out); err != nil {
			return nil, fmt.Errorf("corrupt payroll result: %w", err)
		}
		outputs = append(outputs, &out)
	}
	return outputs, rows.Err()
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee upserts an employee master record. Profiles ride along
// with payroll submissions so exports can be rebuilt after a restart.
func (s *Store) SaveEmployee(ctx context.Context, emp engine.EmployeeProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(emp)
	if err != nil {
		return fmt.Errorf("failed to marshal employee profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO employees (employee_id, name, profile_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET
			name = excluded.name,
			profile_json = excluded.profile_json,
			updated_at = excluded.updated_at`,
		string(emp.EmployeeID), emp.Name, string(data),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// GetEmployee returns a stored profile, or nil when unknown.
func (s *Store) GetEmployee(ctx context.Context, id engine.EmployeeID) (*engine.EmployeeProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile_json FROM employees WHERE employee_id = ?`,
		string(id),
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var emp engine.EmployeeProfile
	if err := json.Unmarshal([]byte(data), &emp); err != nil {
		return nil, fmt.Errorf("corrupt employee profile: %w", err)
	}
	return &emp, nil
}

// ListEmployees returns all stored profiles ordered by ID.
func (s *Store) ListEmployees(ctx context.Context) ([]engine.EmployeeProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT profile_json FROM employees ORDER BY employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []engine.EmployeeProfile
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var emp engine.EmployeeProfile
		if err := json.Unmarshal([]byte(data), &emp); err != nil {
			return nil, fmt.Errorf("corrupt employee profile: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// =============================================================================
// LOCK STORE
// =============================================================================

// Lock marks a period locked. Locking an already-locked period is a
// no-op; the original holder is kept.
func (s *Store) Lock(ctx context.Context, period engine.PayPeriod, lockedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payroll_locks (period_month, period_year, locked_by, locked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(period_year, period_month) DO NOTHING`,
		int(period.Month), period.Year, lockedBy,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *Store) IsLocked(ctx context.Context, period engine.PayPeriod) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, locked, err := s.lockHolder(ctx, period)
	return locked, err
}

func (s *Store) lockHolder(ctx context.Context, period engine.PayPeriod) (string, bool, error) {
	var by string
	err := s.db.QueryRowContext(ctx, `
		SELECT locked_by FROM payroll_locks
		WHERE period_year = ? AND period_month = ?`,
		period.Year, int(period.Month),
	).Scan(&by)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return by, true, nil
}
