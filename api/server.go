/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for dashboards

ROUTE GROUPS:
  /api/payroll/*   Processing, batch runs, results, locking
  /api/rules       Rule set inspection and replacement
  /api/audit       Audit trail queries
  /api/exports/*   Bank file, ECR, ESI return, payslips

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Payroll routes
		r.Route("/payroll", func(r chi.Router) {
			r.Post("/process", h.ProcessPayroll)
			r.Post("/runs", h.RunBatch)
			r.Route("/periods/{period}", func(r chi.Router) {
				r.Get("/results", h.GetResults)
				r.Post("/lock", h.LockPeriod)
			})
		})

		// Rule set routes
		r.Route("/rules", func(r chi.Router) {
			r.Get("/", h.GetRules)
			r.Put("/", h.ReplaceRules)
		})

		// Audit routes
		r.Get("/audit", h.QueryAudit)

		// Export routes
		r.Route("/exports/{period}", func(r chi.Router) {
			r.Get("/bank", h.GetBankTransfer)
			r.Get("/ecr", h.GetPFECR)
			r.Get("/esi", h.GetESIReturn)
			r.Get("/payslips/{id}", h.GetPayslip)
		})
	})

	return r
}
