/*
runner.go - Concurrent batch payroll processing

PURPOSE:
  Processes a whole period's employees in one run: fan the payloads out
  over a bounded worker pool, persist each result, and summarize the run.

DESIGN:
  - Fixed worker pool; one ProcessPayroll call per employee
  - Per-employee failure isolation: one bad employee never aborts the run
  - Invalid inputs count separately from hard failures
  - The run itself gets a UUID so audit queries can correlate a batch

CONFIGURATION:
  - Workers: pool size (default: 8)

USAGE:
  runner := NewBatchRunner(eng, store)
  resp, err := runner.Run(ctx, period, payloads)

SEE ALSO:
  - handlers.go: RunBatch endpoint
  - engine/engine.go: per-employee processing
*/
package api

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/store/sqlite"
)

const defaultBatchWorkers = 8

// BatchRunner fans payroll processing out over a worker pool.
type BatchRunner struct {
	Engine  *engine.Engine
	Store   *sqlite.Store
	Workers int
}

// NewBatchRunner creates a runner with the default pool size.
func NewBatchRunner(eng *engine.Engine, store *sqlite.Store) *BatchRunner {
	return &BatchRunner{
		Engine:  eng,
		Store:   store,
		Workers: defaultBatchWorkers,
	}
}

// Run processes every payload for the period and returns a summary.
// Only a summary-level error (never a per-employee one) is returned.
func (br *BatchRunner) Run(ctx context.Context, period engine.PayPeriod, payloads []EmployeePayload) (*BatchRunResponse, error) {
	runID := uuid.NewString()
	workers := br.Workers
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	if workers > len(payloads) {
		workers = len(payloads)
	}

	log.Printf("[BatchRun %s] Starting: period=%s employees=%d workers=%d",
		runID, period, len(payloads), workers)

	jobs := make(chan EmployeePayload)

	var (
		mu        sync.Mutex
		processed int
		invalid   int
		totalNet  = decimal.Zero
		failures  []BatchFailureDTO
	)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				out, err := br.runOne(ctx, period, p)

				mu.Lock()
				switch {
				case err != nil:
					failures = append(failures, BatchFailureDTO{
						EmployeeID: p.Employee.ID,
						Error:      err.Error(),
					})
				case !out.Validation.IsValid():
					processed++
					invalid++
				default:
					processed++
					totalNet = totalNet.Add(out.NetPay)
				}
				mu.Unlock()
			}
		}()
	}

	for _, p := range payloads {
		jobs <- p
	}
	close(jobs)
	wg.Wait()

	log.Printf("[BatchRun %s] Done: processed=%d invalid=%d failed=%d net=%s",
		runID, processed, invalid, len(failures), totalNet.StringFixed(2))

	return &BatchRunResponse{
		RunID:     runID,
		Period:    period.String(),
		Processed: processed,
		Invalid:   invalid,
		Failed:    len(failures),
		TotalNet:  totalNet.StringFixed(2),
		Failures:  failures,
	}, nil
}

// runOne processes and persists a single employee.
func (br *BatchRunner) runOne(ctx context.Context, period engine.PayPeriod, p EmployeePayload) (*engine.PayrollOutput, error) {
	ytd, err := br.Store.LoadYTD(ctx, engine.EmployeeID(p.Employee.ID), period.FinancialYear())
	if err != nil {
		return nil, err
	}

	in, err := toEngineInput(period, p, ytd)
	if err != nil {
		return nil, err
	}

	out, err := br.Engine.ProcessPayroll(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := br.Store.SaveEmployee(ctx, in.Employee); err != nil {
		return nil, err
	}
	if err := br.Store.SaveResult(ctx, out); err != nil {
		return nil, err
	}
	if out.Validation.IsValid() {
		if err := br.Store.SaveYTD(ctx, out.EmployeeID, period.FinancialYear(), out.YTD); err != nil {
			return nil, err
		}
	}
	return out, nil
}
