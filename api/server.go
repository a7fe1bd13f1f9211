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
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. requestLogger: Structured request logging (zerolog)
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/items/*       Catalog lookups
  /api/rfqs/*        RFQ lifecycle, quotes, comparison, award, emails
  /api/pricing/*     Sell-price recommendations
  /api/analytics/*   Purchase-history insights
  /api/session/*     Session cache control
  /api/admin/*       Demo data seeding

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/warp/procure-engine/pkg/logger"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog routes
		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.SearchItems)
			r.Get("/{sku}", h.GetItem)
			r.Get("/{sku}/cost-basis", h.GetCostBasis)
			r.Get("/{sku}/competitor-prices", h.GetCompetitorPrices)
		})

		// RFQ routes
		r.Route("/rfqs", func(r chi.Router) {
			r.Get("/", h.ListRFQs)
			r.Post("/", h.CreateRFQ)
			r.Get("/{id}", h.GetRFQ)
			r.Get("/{id}/quotes", h.GetQuotes)
			r.Get("/{id}/comparison", h.GetComparison)
			r.Post("/{id}/award", h.RecommendAward)
			r.Post("/{id}/emails", h.DraftEmail)
		})

		// Pricing routes
		r.Route("/pricing", func(r chi.Router) {
			r.Post("/recommend", h.RecommendPrice)
		})

		// Analytics routes
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/spending", h.GetSpendingSummary)
			r.Get("/vendor-performance", h.GetVendorPerformance)
			r.Get("/margins", h.GetMarginAnalysis)
			r.Get("/savings", h.GetSavingsReport)
			r.Get("/price-trends", h.GetPriceTrends)
		})

		// Session routes
		r.Post("/session/reset", h.ResetSession)

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/seed", h.SeedDemoData)
		})
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// requestLogger emits one structured log line per request with method,
// path, status, and latency. The request id from chi's RequestID
// middleware is attached as a context field.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			ctx := log.WithFields(r.Context(), map[string]any{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"latency_ms": time.Since(start).Milliseconds(),
				"request_id": middleware.GetReqID(r.Context()),
			})
			log.Info(ctx, "request")
		})
	}
}
