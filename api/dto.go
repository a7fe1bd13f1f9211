/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

  Money crosses the wire as float64; decimal arithmetic stays internal
  and values are already rounded to cents when they reach a DTO.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: Domain counterparts
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/procure-engine/engine"
	"github.com/warp/procure-engine/negotiation"
	"github.com/warp/procure-engine/store/sqlite"
)

// =============================================================================
// CATALOG TYPES
// =============================================================================

// ItemDTO represents a catalog item in API responses.
type ItemDTO struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// CostBasisDTO represents our recorded unit cost for an item.
type CostBasisDTO struct {
	SKU         string  `json:"sku"`
	ItemName    string  `json:"item_name"`
	UnitCost    float64 `json:"unit_cost"`
	CostType    string  `json:"cost_type"`
	Currency    string  `json:"currency"`
	LastUpdated string  `json:"last_updated"`
}

// CompetitorPriceDTO is one observed market anchor.
type CompetitorPriceDTO struct {
	SKU          string  `json:"sku"`
	Competitor   string  `json:"competitor"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Source       string  `json:"source,omitempty"`
	ObservedDate string  `json:"observed_date,omitempty"`
}

// =============================================================================
// RFQ AND QUOTE TYPES
// =============================================================================

// CreateRFQRequest is the request to open an RFQ.
type CreateRFQRequest struct {
	ItemSKU     string `json:"item_sku"`
	Quantity    int    `json:"quantity"`
	Region      string `json:"region"`
	Constraints string `json:"constraints,omitempty"`
}

// RFQDTO represents a request for quotation.
type RFQDTO struct {
	RFQID       string `json:"rfq_id"`
	ItemSKU     string `json:"item_sku"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"`
	Region      string `json:"region"`
	Constraints string `json:"constraints,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// QuoteDTO represents one vendor quote.
type QuoteDTO struct {
	QuoteID               string   `json:"quote_id"`
	RFQID                 string   `json:"rfq_id"`
	VendorID              string   `json:"vendor_id"`
	VendorName            string   `json:"vendor_name"`
	UnitPrice             float64  `json:"unit_price"`
	TotalPrice            float64  `json:"total_price"`
	LeadTimeDays          int      `json:"lead_time_days"`
	MOQ                   int      `json:"moq"`
	Currency              string   `json:"currency"`
	VolumeDiscountApplied bool     `json:"volume_discount_applied"`
	RushSurchargeApplied  bool     `json:"rush_surcharge_applied"`
	RiskFlags             []string `json:"risk_flags"`
	VendorRating          float64  `json:"vendor_rating"`
	VendorReliability     int      `json:"vendor_reliability"`
}

// QuotesResponse wraps the quote set for an RFQ.
type QuotesResponse struct {
	RFQID  string     `json:"rfq_id"`
	Quotes []QuoteDTO `json:"quotes"`
}

// ComparisonDTO is the side-by-side quote analysis.
type ComparisonDTO struct {
	RFQID            string     `json:"rfq_id"`
	Quotes           []QuoteDTO `json:"quotes"` // sorted by total price
	LowestCostVendor string     `json:"lowest_cost_vendor"`
	FastestVendor    string     `json:"fastest_vendor"`
	ComparisonNotes  []string   `json:"comparison_notes"`
}

// AwardRequest selects the award strategy.
type AwardRequest struct {
	Strategy string `json:"strategy,omitempty"`
}

// AlternativeDTO is a runner-up vendor in an award recommendation.
type AlternativeDTO struct {
	VendorName   string  `json:"vendor_name"`
	TotalPrice   float64 `json:"total_price"`
	LeadTimeDays int     `json:"lead_time_days"`
}

// AwardDTO is the award recommendation.
type AwardDTO struct {
	RFQID        string           `json:"rfq_id"`
	VendorID     string           `json:"recommended_vendor_id"`
	VendorName   string           `json:"recommended_vendor_name"`
	Strategy     string           `json:"strategy"`
	Reasoning    []string         `json:"reasoning"`
	Quote        QuoteDTO         `json:"quote"`
	Alternatives []AlternativeDTO `json:"alternatives"`
}

// =============================================================================
// NEGOTIATION TYPES
// =============================================================================

// DraftEmailRequest asks for a supplier email draft.
type DraftEmailRequest struct {
	VendorID string `json:"vendor_id"`
	Ask      string `json:"ask,omitempty"`
}

// EmailDTO is a drafted negotiation email.
type EmailDTO struct {
	VendorID   string `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	RFQID      string `json:"rfq_id"`
	AskType    string `json:"ask_type"`
}

// =============================================================================
// PRICING TYPES
// =============================================================================

// RecommendPriceRequest is the input for a sell-price recommendation.
type RecommendPriceRequest struct {
	SKU              string    `json:"sku"`
	Cost             float64   `json:"cost"`
	TargetMarginPct  float64   `json:"target_margin_pct"`
	DemandNotes      string    `json:"demand_notes,omitempty"`
	CompetitorPrices []float64 `json:"competitor_prices,omitempty"`
}

// AdjustmentsDTO describes the applied price adjustments.
type AdjustmentsDTO struct {
	Demand     string `json:"demand"`
	Competitor string `json:"competitor"`
}

// PriceRecommendationDTO is the recommendation plus its rationale.
type PriceRecommendationDTO struct {
	SKU              string         `json:"sku"`
	ItemName         string         `json:"item_name"`
	RecommendedPrice float64        `json:"recommended_price"`
	Currency         string         `json:"currency"`
	CostBasis        float64        `json:"cost_basis"`
	TargetMarginPct  float64        `json:"target_margin_pct"`
	ActualMarginPct  float64        `json:"actual_margin_pct"`
	CompetitorAvg    *float64       `json:"competitor_avg,omitempty"`
	DemandSignal     string         `json:"demand_signal,omitempty"`
	Adjustments      AdjustmentsDTO `json:"adjustments"`
	Rationale        []string       `json:"rationale"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toItemDTO(item engine.Item) ItemDTO {
	return ItemDTO{
		SKU:         string(item.SKU),
		Name:        item.Name,
		Category:    item.Category,
		Description: item.Description,
	}
}

func toRFQDTO(rfq engine.RFQ) RFQDTO {
	return RFQDTO{
		RFQID:       string(rfq.ID),
		ItemSKU:     string(rfq.ItemSKU),
		ItemName:    rfq.ItemName,
		Quantity:    rfq.Quantity,
		Region:      rfq.Region,
		Constraints: rfq.Constraints,
		Status:      string(rfq.Status),
		CreatedAt:   rfq.CreatedAt.Format(time.RFC3339),
	}
}

func toQuoteDTO(q engine.VendorQuote) QuoteDTO {
	riskFlags := q.RiskFlags
	if riskFlags == nil {
		riskFlags = []string{}
	}
	return QuoteDTO{
		QuoteID:               string(q.ID),
		RFQID:                 string(q.RFQID),
		VendorID:              string(q.VendorID),
		VendorName:            q.VendorName,
		UnitPrice:             q.UnitPrice.InexactFloat64(),
		TotalPrice:            q.TotalPrice.InexactFloat64(),
		LeadTimeDays:          q.LeadTimeDays,
		MOQ:                   q.MOQ,
		Currency:              q.Currency,
		VolumeDiscountApplied: q.VolumeDiscountApplied,
		RushSurchargeApplied:  q.RushSurchargeApplied,
		RiskFlags:             riskFlags,
		VendorRating:          q.VendorRating,
		VendorReliability:     q.VendorReliability,
	}
}

func toQuoteDTOs(quotes []engine.VendorQuote) []QuoteDTO {
	dtos := make([]QuoteDTO, len(quotes))
	for i, q := range quotes {
		dtos[i] = toQuoteDTO(q)
	}
	return dtos
}

func toComparisonDTO(c *engine.Comparison) ComparisonDTO {
	return ComparisonDTO{
		RFQID:            string(c.RFQID),
		Quotes:           toQuoteDTOs(c.QuotesByPrice),
		LowestCostVendor: c.LowestCostVendor,
		FastestVendor:    c.FastestVendor,
		ComparisonNotes:  c.Notes,
	}
}

func toAwardDTO(rec *engine.AwardRecommendation) AwardDTO {
	alternatives := make([]AlternativeDTO, len(rec.Alternatives))
	for i, a := range rec.Alternatives {
		alternatives[i] = AlternativeDTO{
			VendorName:   a.VendorName,
			TotalPrice:   a.TotalPrice.InexactFloat64(),
			LeadTimeDays: a.LeadTimeDays,
		}
	}
	return AwardDTO{
		RFQID:        string(rec.RFQID),
		VendorID:     string(rec.VendorID),
		VendorName:   rec.VendorName,
		Strategy:     string(rec.Strategy),
		Reasoning:    rec.Reasoning,
		Quote:        toQuoteDTO(rec.Quote),
		Alternatives: alternatives,
	}
}

func toEmailDTO(email *negotiation.Email) EmailDTO {
	return EmailDTO{
		VendorID:   string(email.VendorID),
		VendorName: email.VendorName,
		Subject:    email.Subject,
		Body:       email.Body,
		RFQID:      string(email.RFQID),
		AskType:    string(email.Ask),
	}
}

func toPriceRecommendationDTO(rec *engine.PriceRecommendation) PriceRecommendationDTO {
	dto := PriceRecommendationDTO{
		SKU:              string(rec.SKU),
		ItemName:         rec.ItemName,
		RecommendedPrice: rec.RecommendedPrice.InexactFloat64(),
		Currency:         rec.Currency,
		CostBasis:        rec.CostBasis.InexactFloat64(),
		TargetMarginPct:  rec.TargetMarginPct,
		ActualMarginPct:  rec.ActualMarginPct,
		DemandSignal:     rec.DemandSignal,
		Adjustments: AdjustmentsDTO{
			Demand:     rec.Adjustments.Demand,
			Competitor: rec.Adjustments.Competitor,
		},
		Rationale: engine.ExplainPrice(rec),
	}
	if rec.CompetitorAvg != nil {
		avg := rec.CompetitorAvg.InexactFloat64()
		dto.CompetitorAvg = &avg
	}
	return dto
}

func toCostBasisDTO(cb *engine.CostBasis) CostBasisDTO {
	return CostBasisDTO{
		SKU:         string(cb.SKU),
		ItemName:    cb.ItemName,
		UnitCost:    cb.UnitCost.InexactFloat64(),
		CostType:    string(cb.CostType),
		Currency:    cb.Currency,
		LastUpdated: cb.LastUpdated.Format("2006-01-02"),
	}
}

func toCompetitorPriceDTOs(prices []engine.CompetitorPrice) []CompetitorPriceDTO {
	dtos := make([]CompetitorPriceDTO, len(prices))
	for i, p := range prices {
		dtos[i] = CompetitorPriceDTO{
			SKU:          string(p.SKU),
			Competitor:   p.CompetitorName,
			Price:        p.Price.InexactFloat64(),
			Currency:     p.Currency,
			Source:       p.Source,
			ObservedDate: p.ObservedDate,
		}
	}
	return dtos
}

// =============================================================================
// ANALYTICS TYPES
// =============================================================================

type CategorySpendDTO struct {
	Category     string  `json:"category"`
	OrderCount   int     `json:"order_count"`
	TotalUnits   int     `json:"total_units"`
	TotalSpend   float64 `json:"total_spend"`
	AvgUnitPrice float64 `json:"avg_unit_price"`
}

type VendorSpendDTO struct {
	VendorID    string  `json:"vendor_id"`
	VendorName  string  `json:"vendor_name"`
	OrderCount  int     `json:"order_count"`
	TotalSpend  float64 `json:"total_spend"`
	AvgDaysLate float64 `json:"avg_days_late"`
}

type SpendingSummaryDTO struct {
	ByCategory []CategorySpendDTO `json:"by_category"`
	ByVendor   []VendorSpendDTO   `json:"by_vendor"`
	Totals     struct {
		TotalOrders   int     `json:"total_orders"`
		TotalSpend    float64 `json:"total_spend"`
		AvgOrderValue float64 `json:"avg_order_value"`
	} `json:"totals"`
	Filters struct {
		Category string `json:"category,omitempty"`
		VendorID string `json:"vendor_id,omitempty"`
	} `json:"filters_applied"`
}

type VendorMetricsDTO struct {
	VendorID         string  `json:"vendor_id"`
	VendorName       string  `json:"vendor_name"`
	Rating           float64 `json:"rating"`
	ReliabilityScore int     `json:"reliability_score"`
	TotalOrders      int     `json:"total_orders"`
	TotalSpend       float64 `json:"total_spend"`
	AvgUnitPrice     float64 `json:"avg_unit_price"`
	AvgDaysLate      float64 `json:"avg_days_late"`
	OnTimePct        float64 `json:"on_time_pct"`
}

type VendorPerformanceDTO struct {
	Vendors          []VendorMetricsDTO `json:"vendors"`
	TopBySpend       []string           `json:"top_by_spend"`
	TopByReliability []string           `json:"top_by_reliability"`
	TopByRating      []string           `json:"top_by_rating"`
}

type ItemMarginDTO struct {
	SKU                string   `json:"sku"`
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	UnitCost           *float64 `json:"unit_cost,omitempty"`
	CostType           string   `json:"cost_type,omitempty"`
	AvgCompetitorPrice *float64 `json:"avg_competitor_price,omitempty"`
	CompetitorCount    int      `json:"competitor_count"`
	DemandSignal       string   `json:"demand_signal,omitempty"`
	PotentialMarginPct *float64 `json:"potential_margin_pct,omitempty"`
	VsMarketPct        *float64 `json:"vs_market_pct,omitempty"`
}

type MarginAnalysisDTO struct {
	Items   []ItemMarginDTO `json:"items"`
	Summary struct {
		TotalItems             int     `json:"total_items"`
		ItemsWithMarketData    int     `json:"items_with_competitor_data"`
		AveragePotentialMargin float64 `json:"average_potential_margin"`
	} `json:"summary"`
	Filter string `json:"filter,omitempty"`
}

type SavingsOpportunityDTO struct {
	SKU                 string  `json:"sku"`
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	OurCost             float64 `json:"our_cost"`
	CostType            string  `json:"cost_type"`
	BestVendorPrice     float64 `json:"best_vendor_price"`
	BestVendorName      string  `json:"best_vendor_name"`
	PotentialSavingsPct float64 `json:"potential_savings_pct"`
	SavingsPerUnit      float64 `json:"savings_per_unit"`
}

type MarketInsightDTO struct {
	SKU            string  `json:"sku"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	OurCost        float64 `json:"our_cost"`
	MarketAvgPrice float64 `json:"market_avg_price"`
	MarketMinPrice float64 `json:"market_min_price"`
}

type SavingsReportDTO struct {
	VendorOpportunities []SavingsOpportunityDTO `json:"vendor_opportunities"`
	MarketInsights      []MarketInsightDTO      `json:"market_insights"`
	Summary             struct {
		ItemsWithSavings    int     `json:"items_with_savings"`
		ThresholdPct        float64 `json:"threshold_used_pct"`
		TotalSavingsPerUnit float64 `json:"potential_savings_per_unit_total"`
	} `json:"summary"`
}

type PurchasePointDTO struct {
	ItemSKU    string  `json:"item_sku"`
	ItemName   string  `json:"item_name"`
	OrderDate  string  `json:"order_date"`
	VendorID   string  `json:"vendor_id"`
	VendorName string  `json:"vendor_name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

type ItemPriceTrendDTO struct {
	SKU       string             `json:"sku"`
	Purchases []PurchasePointDTO `json:"purchases"`
	Trend     string             `json:"trend"`
	TrendPct  float64            `json:"trend_pct"`
}

type TrendStatDTO struct {
	ItemSKU          string  `json:"item_sku"`
	ItemName         string  `json:"item_name"`
	PurchaseCount    int     `json:"purchase_count"`
	AvgPrice         float64 `json:"avg_price"`
	MinPrice         float64 `json:"min_price"`
	MaxPrice         float64 `json:"max_price"`
	PriceVariancePct float64 `json:"price_variance_pct"`
}

type PriceTrendOverviewDTO struct {
	ItemsAnalyzed int            `json:"items_analyzed"`
	Trends        []TrendStatDTO `json:"price_trends"`
}

func toSpendingSummaryDTO(s *sqlite.SpendingSummary) SpendingSummaryDTO {
	dto := SpendingSummaryDTO{
		ByCategory: make([]CategorySpendDTO, len(s.ByCategory)),
		ByVendor:   make([]VendorSpendDTO, len(s.ByVendor)),
	}
	for i, c := range s.ByCategory {
		dto.ByCategory[i] = CategorySpendDTO{
			Category:     c.Category,
			OrderCount:   c.OrderCount,
			TotalUnits:   c.TotalUnits,
			TotalSpend:   c.TotalSpend.InexactFloat64(),
			AvgUnitPrice: c.AvgUnitPrice.InexactFloat64(),
		}
	}
	for i, v := range s.ByVendor {
		dto.ByVendor[i] = VendorSpendDTO{
			VendorID:    string(v.VendorID),
			VendorName:  v.VendorName,
			OrderCount:  v.OrderCount,
			TotalSpend:  v.TotalSpend.InexactFloat64(),
			AvgDaysLate: v.AvgDaysLate,
		}
	}
	dto.Totals.TotalOrders = s.Totals.TotalOrders
	dto.Totals.TotalSpend = s.Totals.TotalSpend.InexactFloat64()
	dto.Totals.AvgOrderValue = s.Totals.AvgOrderValue.InexactFloat64()
	dto.Filters.Category = s.Filter.Category
	dto.Filters.VendorID = string(s.Filter.VendorID)
	return dto
}

func toVendorPerformanceDTO(p *sqlite.VendorPerformance) VendorPerformanceDTO {
	dto := VendorPerformanceDTO{
		Vendors:          make([]VendorMetricsDTO, len(p.Vendors)),
		TopBySpend:       emptyIfNil(p.TopBySpend),
		TopByReliability: emptyIfNil(p.TopByReliability),
		TopByRating:      emptyIfNil(p.TopByRating),
	}
	for i, m := range p.Vendors {
		dto.Vendors[i] = VendorMetricsDTO{
			VendorID:         string(m.VendorID),
			VendorName:       m.VendorName,
			Rating:           m.Rating,
			ReliabilityScore: m.ReliabilityScore,
			TotalOrders:      m.TotalOrders,
			TotalSpend:       m.TotalSpend.InexactFloat64(),
			AvgUnitPrice:     m.AvgUnitPrice.InexactFloat64(),
			AvgDaysLate:      m.AvgDaysLate,
			OnTimePct:        m.OnTimePct,
		}
	}
	return dto
}

func toMarginAnalysisDTO(a *sqlite.MarginAnalysis) MarginAnalysisDTO {
	dto := MarginAnalysisDTO{
		Items:  make([]ItemMarginDTO, len(a.Items)),
		Filter: a.Category,
	}
	for i, item := range a.Items {
		dto.Items[i] = ItemMarginDTO{
			SKU:                string(item.SKU),
			Name:               item.Name,
			Category:           item.Category,
			UnitCost:           decimalPtr(item.UnitCost),
			CostType:           string(item.CostType),
			AvgCompetitorPrice: decimalPtr(item.AvgCompetitorPrice),
			CompetitorCount:    item.CompetitorCount,
			DemandSignal:       item.DemandSignal,
			PotentialMarginPct: item.PotentialMarginPct,
			VsMarketPct:        item.VsMarketPct,
		}
	}
	dto.Summary.TotalItems = a.Summary.TotalItems
	dto.Summary.ItemsWithMarketData = a.Summary.ItemsWithMarketData
	dto.Summary.AveragePotentialMargin = a.Summary.AveragePotentialMargin
	return dto
}

func toSavingsReportDTO(r *sqlite.SavingsReport) SavingsReportDTO {
	dto := SavingsReportDTO{
		VendorOpportunities: make([]SavingsOpportunityDTO, len(r.VendorOpportunities)),
		MarketInsights:      make([]MarketInsightDTO, len(r.MarketInsights)),
	}
	for i, o := range r.VendorOpportunities {
		dto.VendorOpportunities[i] = SavingsOpportunityDTO{
			SKU:                 string(o.SKU),
			Name:                o.Name,
			Category:            o.Category,
			OurCost:             o.OurCost.InexactFloat64(),
			CostType:            string(o.CostType),
			BestVendorPrice:     o.BestVendorPrice.InexactFloat64(),
			BestVendorName:      o.BestVendorName,
			PotentialSavingsPct: o.PotentialSavingsPct,
			SavingsPerUnit:      o.SavingsPerUnit.InexactFloat64(),
		}
	}
	for i, in := range r.MarketInsights {
		dto.MarketInsights[i] = MarketInsightDTO{
			SKU:            string(in.SKU),
			Name:           in.Name,
			Category:       in.Category,
			OurCost:        in.OurCost.InexactFloat64(),
			MarketAvgPrice: in.MarketAvgPrice.InexactFloat64(),
			MarketMinPrice: in.MarketMinPrice.InexactFloat64(),
		}
	}
	dto.Summary.ItemsWithSavings = r.Summary.ItemsWithSavings
	dto.Summary.ThresholdPct = r.Summary.ThresholdPct
	dto.Summary.TotalSavingsPerUnit = r.Summary.TotalSavingsPerUnit.InexactFloat64()
	return dto
}

func toItemPriceTrendDTO(t *sqlite.ItemPriceTrend) ItemPriceTrendDTO {
	dto := ItemPriceTrendDTO{
		SKU:       string(t.SKU),
		Purchases: make([]PurchasePointDTO, len(t.Purchases)),
		Trend:     t.Trend,
		TrendPct:  t.TrendPct,
	}
	for i, p := range t.Purchases {
		dto.Purchases[i] = PurchasePointDTO{
			ItemSKU:    string(p.ItemSKU),
			ItemName:   p.ItemName,
			OrderDate:  p.OrderDate,
			VendorID:   string(p.VendorID),
			VendorName: p.VendorName,
			UnitPrice:  p.UnitPrice.InexactFloat64(),
			Quantity:   p.Quantity,
		}
	}
	return dto
}

func toPriceTrendOverviewDTO(o *sqlite.PriceTrendOverview) PriceTrendOverviewDTO {
	dto := PriceTrendOverviewDTO{
		ItemsAnalyzed: o.ItemsAnalyzed,
		Trends:        make([]TrendStatDTO, len(o.Trends)),
	}
	for i, t := range o.Trends {
		dto.Trends[i] = TrendStatDTO{
			ItemSKU:          string(t.ItemSKU),
			ItemName:         t.ItemName,
			PurchaseCount:    t.PurchaseCount,
			AvgPrice:         t.AvgPrice.InexactFloat64(),
			MinPrice:         t.MinPrice.InexactFloat64(),
			MaxPrice:         t.MaxPrice.InexactFloat64(),
			PriceVariancePct: t.PriceVariancePct,
		}
	}
	return dto
}

func decimalPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
