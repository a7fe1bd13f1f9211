/*
handlers.go - HTTP API handlers for the procurement engine

PURPOSE:
  Exposes the quotation and pricing engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Catalog:
    GET    /api/items                        Search items (?q=&limit=)
    GET    /api/items/{sku}                  Get item details
    GET    /api/items/{sku}/cost-basis       Our recorded unit cost
    GET    /api/items/{sku}/competitor-prices Observed market anchors

  RFQs and quotes:
    POST   /api/rfqs                         Create RFQ
    GET    /api/rfqs                         List session RFQs
    GET    /api/rfqs/{id}                    Get RFQ
    GET    /api/rfqs/{id}/quotes             Synthesized vendor quotes
    GET    /api/rfqs/{id}/comparison         Side-by-side comparison
    POST   /api/rfqs/{id}/award              Award recommendation
    POST   /api/rfqs/{id}/emails             Draft negotiation email

  Pricing:
    POST   /api/pricing/recommend            Sell-price recommendation

  Analytics (purchase history):
    GET    /api/analytics/spending           Spend by category/vendor
    GET    /api/analytics/vendor-performance Vendor rankings
    GET    /api/analytics/margins            Margin vs market
    GET    /api/analytics/savings            Savings opportunities
    GET    /api/analytics/price-trends       Price movement per item

  Admin:
    POST   /api/session/reset                Clear RFQ/quote cache
    POST   /api/admin/seed                   Load demo fixtures

ERROR HANDLING:
  Errors are returned as JSON {"error", "code", "details"} with:
  - 400: Domain validation (bad quantity, cost, margin), bad body
  - 404: Unknown SKU, RFQ, vendor quote, cost basis
  - 422: RFQ produced no quotes (no eligible vendors)
  - 500: Storage and internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - engine/: Domain logic these handlers delegate to
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warp/procure-engine/engine"
	"github.com/warp/procure-engine/negotiation"
	"github.com/warp/procure-engine/pkg/logger"
	"github.com/warp/procure-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Analytics is the purchase-history query surface. Only the SQLite
// store implements it; the in-memory catalog carries no history.
type Analytics interface {
	SpendingSummary(ctx context.Context, filter sqlite.SpendFilter) (*sqlite.SpendingSummary, error)
	VendorPerformance(ctx context.Context) (*sqlite.VendorPerformance, error)
	MarginAnalysis(ctx context.Context, category string) (*sqlite.MarginAnalysis, error)
	SavingsOpportunities(ctx context.Context, thresholdPct float64) (*sqlite.SavingsReport, error)
	PriceTrend(ctx context.Context, sku engine.SKU) (*sqlite.ItemPriceTrend, error)
	PriceTrends(ctx context.Context) (*sqlite.PriceTrendOverview, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine    *engine.Engine
	Session   *engine.Session
	Store     *sqlite.Store
	Analytics Analytics
	Log       *logger.Logger
}

// NewHandler creates a handler backed by the given store. The engine
// reads reference data through the store; the session caches RFQs and
// quotes in memory.
func NewHandler(store *sqlite.Store, log *logger.Logger) *Handler {
	return &Handler{
		Engine:    engine.New(store),
		Session:   engine.NewSession(),
		Store:     store,
		Analytics: store,
		Log:       log,
	}
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// SearchItems matches items against name, category, and description.
// GET /api/items?q=rubber&limit=10
func (h *Handler) SearchItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidInput, "Invalid limit parameter", err)
			return
		}
		limit = n
	}

	items, err := h.Engine.Catalog().SearchItems(r.Context(), query, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to search items", err)
		return
	}

	dtos := make([]ItemDTO, len(items))
	for i, item := range items {
		dtos[i] = toItemDTO(item)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetItem resolves a single SKU.
// GET /api/items/{sku}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	sku := engine.SKU(chi.URLParam(r, "sku"))

	item, err := h.Engine.Catalog().Item(r.Context(), sku)
	if err != nil {
		writeEngineError(w, "Failed to get item", err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(*item))
}

// GetCostBasis returns our recorded unit cost for a SKU.
// GET /api/items/{sku}/cost-basis
func (h *Handler) GetCostBasis(w http.ResponseWriter, r *http.Request) {
	sku := engine.SKU(chi.URLParam(r, "sku"))

	cb, err := h.Engine.Catalog().CostBasis(r.Context(), sku)
	if err != nil {
		writeEngineError(w, "Failed to get cost basis", err)
		return
	}
	writeJSON(w, http.StatusOK, toCostBasisDTO(cb))
}

// GetCompetitorPrices returns observed market anchors for a SKU.
// GET /api/items/{sku}/competitor-prices
func (h *Handler) GetCompetitorPrices(w http.ResponseWriter, r *http.Request) {
	sku := engine.SKU(chi.URLParam(r, "sku"))

	prices, err := h.Engine.Catalog().CompetitorPrices(r.Context(), sku)
	if err != nil {
		writeEngineError(w, "Failed to get competitor prices", err)
		return
	}
	writeJSON(w, http.StatusOK, toCompetitorPriceDTOs(prices))
}

// =============================================================================
// RFQ HANDLERS
// =============================================================================

// CreateRFQ opens a request for quotation.
// POST /api/rfqs
func (h *Handler) CreateRFQ(w http.ResponseWriter, r *http.Request) {
	var req CreateRFQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "Invalid request body", err)
		return
	}

	rfq, err := h.Engine.CreateRFQ(r.Context(), h.Session, engine.RFQRequest{
		ItemSKU:     engine.SKU(req.ItemSKU),
		Quantity:    req.Quantity,
		Region:      req.Region,
		Constraints: req.Constraints,
	})
	if err != nil {
		writeEngineError(w, "Failed to create RFQ", err)
		return
	}

	ctx := h.Log.WithField(r.Context(), "rfq_id", string(rfq.ID))
	h.Log.Info(ctx, "rfq created")
	writeJSON(w, http.StatusCreated, toRFQDTO(rfq))
}

// ListRFQs returns the RFQs opened in this session, newest first.
// GET /api/rfqs
func (h *Handler) ListRFQs(w http.ResponseWriter, r *http.Request) {
	rfqs := h.Session.ListRFQs()
	dtos := make([]RFQDTO, len(rfqs))
	for i, rfq := range rfqs {
		dtos[i] = toRFQDTO(rfq)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRFQ returns a single RFQ from the session.
// GET /api/rfqs/{id}
func (h *Handler) GetRFQ(w http.ResponseWriter, r *http.Request) {
	id := engine.RFQID(chi.URLParam(r, "id"))

	rfq, ok := h.Session.RFQ(id)
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "RFQ not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toRFQDTO(rfq))
}

// GetQuotes synthesizes (or returns cached) vendor quotes for an RFQ.
// GET /api/rfqs/{id}/quotes
func (h *Handler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	id := engine.RFQID(chi.URLParam(r, "id"))

	quotes, err := h.Engine.Quotes(r.Context(), h.Session, id)
	if err != nil {
		writeEngineError(w, "Failed to get quotes", err)
		return
	}
	writeJSON(w, http.StatusOK, QuotesResponse{
		RFQID:  string(id),
		Quotes: toQuoteDTOs(quotes),
	})
}

// GetComparison returns the side-by-side quote analysis.
// GET /api/rfqs/{id}/comparison
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	id := engine.RFQID(chi.URLParam(r, "id"))

	comparison, err := h.Engine.Compare(r.Context(), h.Session, id)
	if err != nil {
		writeEngineError(w, "Failed to compare quotes", err)
		return
	}
	writeJSON(w, http.StatusOK, toComparisonDTO(comparison))
}

// RecommendAward computes the award recommendation for an RFQ.
// POST /api/rfqs/{id}/award
func (h *Handler) RecommendAward(w http.ResponseWriter, r *http.Request) {
	id := engine.RFQID(chi.URLParam(r, "id"))

	var req AwardRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidInput, "Invalid request body", err)
			return
		}
	}
	// Unrecognized strategies fall back to balanced rather than erroring
	strategy, ok := engine.ParseStrategy(req.Strategy)
	if !ok {
		ctx := h.Log.WithField(r.Context(), "strategy", req.Strategy)
		h.Log.Warn(ctx, "unknown strategy, falling back to balanced")
	}

	rec, err := h.Engine.RecommendAward(r.Context(), h.Session, id, strategy)
	if err != nil {
		writeEngineError(w, "Failed to recommend award", err)
		return
	}
	writeJSON(w, http.StatusOK, toAwardDTO(rec))
}

// DraftEmail drafts a negotiation email to a vendor that quoted the RFQ.
// POST /api/rfqs/{id}/emails
func (h *Handler) DraftEmail(w http.ResponseWriter, r *http.Request) {
	id := engine.RFQID(chi.URLParam(r, "id"))

	var req DraftEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "Invalid request body", err)
		return
	}
	if req.VendorID == "" {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "vendor_id is required", nil)
		return
	}
	// Unrecognized asks fall back to the combined template
	ask, ok := negotiation.ParseAsk(req.Ask)
	if !ok {
		ctx := h.Log.WithField(r.Context(), "ask", req.Ask)
		h.Log.Warn(ctx, "unknown ask, falling back to both")
	}

	email, err := negotiation.DraftForVendor(r.Context(), h.Engine, h.Session, id,
		engine.VendorID(req.VendorID), ask)
	if err != nil {
		writeEngineError(w, "Failed to draft email", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmailDTO(email))
}

// =============================================================================
// PRICING HANDLERS
// =============================================================================

// RecommendPrice computes a sell-price recommendation with rationale.
// POST /api/pricing/recommend
func (h *Handler) RecommendPrice(w http.ResponseWriter, r *http.Request) {
	var req RecommendPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "Invalid request body", err)
		return
	}

	rec, err := h.Engine.RecommendPrice(r.Context(), engine.PriceRequest{
		SKU:              engine.SKU(req.SKU),
		Cost:             req.Cost,
		TargetMarginPct:  req.TargetMarginPct,
		DemandNotes:      req.DemandNotes,
		CompetitorPrices: req.CompetitorPrices,
	})
	if err != nil {
		writeEngineError(w, "Failed to recommend price", err)
		return
	}
	writeJSON(w, http.StatusOK, toPriceRecommendationDTO(rec))
}

// =============================================================================
// ANALYTICS HANDLERS
// =============================================================================

// GetSpendingSummary aggregates purchase history by category and vendor.
// GET /api/analytics/spending?category=&vendor_id=
func (h *Handler) GetSpendingSummary(w http.ResponseWriter, r *http.Request) {
	filter := sqlite.SpendFilter{
		Category: r.URL.Query().Get("category"),
		VendorID: engine.VendorID(r.URL.Query().Get("vendor_id")),
	}

	summary, err := h.Analytics.SpendingSummary(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to summarize spending", err)
		return
	}
	writeJSON(w, http.StatusOK, toSpendingSummaryDTO(summary))
}

// GetVendorPerformance ranks vendors by spend, reliability, and rating.
// GET /api/analytics/vendor-performance
func (h *Handler) GetVendorPerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := h.Analytics.VendorPerformance(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to analyze vendors", err)
		return
	}
	writeJSON(w, http.StatusOK, toVendorPerformanceDTO(perf))
}

// GetMarginAnalysis compares our costs against competitor averages.
// GET /api/analytics/margins?category=
func (h *Handler) GetMarginAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.Analytics.MarginAnalysis(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to analyze margins", err)
		return
	}
	writeJSON(w, http.StatusOK, toMarginAnalysisDTO(analysis))
}

// GetSavingsReport finds items where better vendor prices exist.
// GET /api/analytics/savings?threshold_pct=10
func (h *Handler) GetSavingsReport(w http.ResponseWriter, r *http.Request) {
	threshold := 10.0
	if raw := r.URL.Query().Get("threshold_pct"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidInput, "Invalid threshold_pct parameter", err)
			return
		}
		threshold = f
	}

	report, err := h.Analytics.SavingsOpportunities(r.Context(), threshold)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to find savings", err)
		return
	}
	writeJSON(w, http.StatusOK, toSavingsReportDTO(report))
}

// GetPriceTrends reports price movement. With ?sku= it returns the full
// purchase series for that item; without, an overview across all items.
// GET /api/analytics/price-trends?sku=RM-EPDM-01
func (h *Handler) GetPriceTrends(w http.ResponseWriter, r *http.Request) {
	if sku := r.URL.Query().Get("sku"); sku != "" {
		trend, err := h.Analytics.PriceTrend(r.Context(), engine.SKU(sku))
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternal, "Failed to analyze price trend", err)
			return
		}
		writeJSON(w, http.StatusOK, toItemPriceTrendDTO(trend))
		return
	}

	overview, err := h.Analytics.PriceTrends(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to analyze price trends", err)
		return
	}
	writeJSON(w, http.StatusOK, toPriceTrendOverviewDTO(overview))
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// ResetSession clears the RFQ and quote cache.
// POST /api/session/reset
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	h.Session.Reset()
	h.Log.Info(r.Context(), "session reset")
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "reset",
	})
}

// SeedDemoData loads the demo fixtures into the store.
// POST /api/admin/seed
func (h *Handler) SeedDemoData(w http.ResponseWriter, r *http.Request) {
	if err := Seed(r.Context(), h.Store); err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "Failed to seed demo data", err)
		return
	}
	h.Log.Info(r.Context(), "demo data seeded")
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "seeded",
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

const (
	codeInvalidInput = "invalid_input"
	codeNotFound     = "not_found"
	codeNoQuotes     = "no_quotes"
	codeInternal     = "internal"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string, err error) {
	resp := ErrorResponse{Error: message, Code: code}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps domain errors onto HTTP statuses: missing
// resources 404, an RFQ with no eligible vendors 422, validation
// failures 400, everything else 500.
func writeEngineError(w http.ResponseWriter, message string, err error) {
	switch {
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, codeNotFound, message, err)
	case engine.IsEmptyResult(err):
		writeError(w, http.StatusUnprocessableEntity, codeNoQuotes, message, err)
	case engine.IsDomainError(err):
		writeError(w, http.StatusBadRequest, codeInvalidInput, message, err)
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, message, err)
	}
}
