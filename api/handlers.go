/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the payroll calculation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine.

ENDPOINTS:
  Payroll:
    POST   /api/payroll/process                 Run one employee
    POST   /api/payroll/runs                    Run a batch for a period
    GET    /api/payroll/periods/{period}/results  Stored outputs
    POST   /api/payroll/periods/{period}/lock   Close the period

  Rules:
    GET    /api/rules                           Active rule set as JSON
    PUT    /api/rules                           Replace the rule set

  Audit:
    GET    /api/audit                           Filterable audit trail

  Exports:
    GET    /api/exports/{period}/bank           Bank transfer file
    GET    /api/exports/{period}/ecr            PF ECR upload file
    GET    /api/exports/{period}/esi            ESI monthly return
    GET    /api/exports/{period}/payslips/{id}  Payslip PDF

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: SQLite persistence (results, YTD, locks, audit, employees)
  - engine: the active calculation engine, swapped on rule replacement

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, bad dates, bad period, bad rule set
  - 404: Unknown employee or missing result
  - 409: Period already locked
  - 500: Storage and audit failures

  Business-rule problems are NOT HTTP errors: an invalid input still
  returns 200 with is_valid=false and net pay zero in the body.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - runner.go: Concurrent batch processing
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/export"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store

	// EstablishmentCode stamps statutory filings (ECR, ESI return).
	EstablishmentCode string

	mu  sync.RWMutex
	eng *engine.Engine
}

// NewHandler creates a handler bound to a store and an initial engine.
func NewHandler(store *sqlite.Store, eng *engine.Engine) *Handler {
	return &Handler{
		Store:             store,
		EstablishmentCode: "KABLR0000001",
		eng:               eng,
	}
}

// Engine returns the active engine. Rule replacement swaps it, so
// handlers grab it once per request.
func (h *Handler) Engine() *engine.Engine {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.eng
}

// =============================================================================
// PAYROLL ENDPOINTS
// =============================================================================

// ProcessPayroll runs gross-to-net for a single employee.
func (h *Handler) ProcessPayroll(w http.ResponseWriter, r *http.Request) {
	var req ProcessPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	period, err := parsePeriod(req.Period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	ytd, err := h.Store.LoadYTD(r.Context(), engine.EmployeeID(req.Employee.ID), period.FinancialYear())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load YTD totals", err)
		return
	}

	in, err := toEngineInput(period, req.EmployeePayload, ytd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	out, err := h.Engine().ProcessPayroll(r.Context(), in)
	if err != nil {
		// Audit failures are storage trouble, not a bad request.
		if errors.Is(err, engine.ErrAuditAppendFailed) {
			writeError(w, http.StatusInternalServerError, "Failed to record audit entry", err)
			return
		}
		writeError(w, http.StatusBadRequest, "Failed to process payroll", err)
		return
	}

	if err := h.Store.SaveEmployee(r.Context(), in.Employee); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	if err := h.Store.SaveResult(r.Context(), out); err != nil {
		if errors.Is(err, engine.ErrPeriodLocked) {
			writeError(w, http.StatusConflict, "Period is locked", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save result", err)
		return
	}
	// Invalid runs leave the accumulator untouched.
	if out.Validation.IsValid() {
		if err := h.Store.SaveYTD(r.Context(), out.EmployeeID, period.FinancialYear(), out.YTD); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save YTD totals", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, toOutputDTO(out))
}

// RunBatch processes a whole period's employees concurrently.
func (h *Handler) RunBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	period, err := parsePeriod(req.Period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}
	if len(req.Employees) == 0 {
		writeError(w, http.StatusBadRequest, "No employees in batch", nil)
		return
	}

	locked, err := h.Store.IsLocked(r.Context(), period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check period lock", err)
		return
	}
	if locked {
		writeError(w, http.StatusConflict, "Period is locked", nil)
		return
	}

	runner := NewBatchRunner(h.Engine(), h.Store)
	resp, err := runner.Run(r.Context(), period, req.Employees)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Batch run failed", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetResults returns the stored outputs for a period.
func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	outputs, err := h.Store.LoadResults(r.Context(), period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load results", err)
		return
	}

	dtos := make([]PayrollOutputDTO, len(outputs))
	for i, out := range outputs {
		dtos[i] = toOutputDTO(out)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LockPeriod closes a period. Further SaveResult calls for it fail.
func (h *Handler) LockPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	var req LockPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.LockedBy == "" {
		req.LockedBy = "api"
	}

	if err := h.Store.Lock(r.Context(), period, req.LockedBy); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to lock period", err)
		return
	}
	if err := h.Engine().LockPayroll(r.Context(), period, req.LockedBy); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record lock event", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"period":    period.String(),
		"locked_by": req.LockedBy,
		"status":    "locked",
	})
}

// =============================================================================
// RULE SET ENDPOINTS
// =============================================================================

// GetRules returns the active rule set in its JSON schema.
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factory.ToJSON(h.Engine().Rules()))
}

// ReplaceRules swaps in a new rule set version. In-flight requests
// finish on the engine they grabbed; new requests see the new rules.
func (h *Handler) ReplaceRules(w http.ResponseWriter, r *http.Request) {
	var rj factory.RulesJSON
	if err := json.NewDecoder(r.Body).Decode(&rj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rules, err := factory.FromJSON(rj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rule set", err)
		return
	}

	eng, err := engine.New(rules, h.Store)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to build engine", err)
		return
	}

	h.mu.Lock()
	h.eng = eng
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "active",
		"version": rules.Version,
		"name":    rules.Name,
	})
}

// =============================================================================
// AUDIT ENDPOINT
// =============================================================================

// QueryAudit returns audit entries matching the query parameters:
// employee_id, period (YYYY-MM), action (repeatable).
func (h *Handler) QueryAudit(w http.ResponseWriter, r *http.Request) {
	var filter engine.AuditFilter

	if id := r.URL.Query().Get("employee_id"); id != "" {
		eid := engine.EmployeeID(id)
		filter.EmployeeID = &eid
	}
	if p := r.URL.Query().Get("period"); p != "" {
		period, err := parsePeriod(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid period", err)
			return
		}
		filter.Period = &period
	}
	for _, a := range r.URL.Query()["action"] {
		filter.Actions = append(filter.Actions, engine.AuditAction(a))
	}

	entries, err := h.Store.Query(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to query audit trail", err)
		return
	}

	dtos := make([]AuditEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toAuditDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// EXPORT ENDPOINTS
// =============================================================================

// exportResults joins stored outputs with employee profiles.
func (h *Handler) exportResults(r *http.Request, period engine.PayPeriod) ([]export.Result, error) {
	outputs, err := h.Store.LoadResults(r.Context(), period)
	if err != nil {
		return nil, err
	}

	results := make([]export.Result, 0, len(outputs))
	for _, out := range outputs {
		emp, err := h.Store.GetEmployee(r.Context(), out.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			// Result without a profile cannot appear in a filing.
			continue
		}
		results = append(results, export.Result{Employee: *emp, Output: out})
	}
	return results, nil
}

// GetBankTransfer returns the bank disbursement records for a period.
func (h *Handler) GetBankTransfer(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	results, err := h.exportResults(r, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build bank file", err)
		return
	}

	records := export.BankTransferFile(results)
	writeJSON(w, http.StatusOK, map[string]any{
		"period":             period.String(),
		"records":            records,
		"total_disbursement": export.TotalDisbursement(records).StringFixed(2),
	})
}

// GetPFECR returns the PF ECR upload file for a period.
func (h *Handler) GetPFECR(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	results, err := h.exportResults(r, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build ECR", err)
		return
	}

	file := export.PFECR(results, h.EstablishmentCode, period)
	writeJSON(w, http.StatusOK, StatutoryFileDTO(file))
}

// GetESIReturn returns the ESI monthly return for a period.
func (h *Handler) GetESIReturn(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	results, err := h.exportResults(r, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build ESI return", err)
		return
	}

	file := export.ESIReturn(results, h.EstablishmentCode, period)
	writeJSON(w, http.StatusOK, StatutoryFileDTO(file))
}

// GetPayslip streams one employee's payslip PDF.
func (h *Handler) GetPayslip(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}
	id := engine.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	outputs, err := h.Store.LoadResults(r.Context(), period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load results", err)
		return
	}
	var out *engine.PayrollOutput
	for _, o := range outputs {
		if o.EmployeeID == id {
			out = o
			break
		}
	}
	if out == nil {
		writeError(w, http.StatusNotFound, "No payroll result for this employee and period", nil)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		`attachment; filename="payslip_`+string(id)+`_`+period.String()+`.pdf"`)
	// Headers are already sent; a render failure mid-stream cannot be
	// turned into a JSON error anymore.
	_ = export.Payslip(export.Result{Employee: *emp, Output: out}, w)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
