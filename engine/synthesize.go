/*
synthesize.go - RFQ creation and vendor quote synthesis

PURPOSE:
  Turns an RFQ into one candidate quote per eligible vendor. Eligibility
  is vendors in the RFQ's region (or Global) holding a price-list entry
  for the item. Pricing applies volume-discount and rush-surcharge rules
  in a fixed order, then derives risk flags.

PRICING PIPELINE (fixed order per vendor):
  1. Start from the price-list base price
  2. quantity >= volume threshold: multiply by (1 - discount%/100)
  3. rush/urgent constraint: multiply by (1 + surcharge%/100),
     compress lead time by 5 days, floored at 3
  4. Round unit price to 2dp; total = round(unit * quantity, 2)

RISK FLAGS (fixed derivation order, any subset may apply):
  reliability < 80        -> "Low reliability score"
  rating < 3.5            -> "Below average rating"
  quantity < MOQ          -> "Below MOQ (<moq>)"
  final lead time > 21    -> "Long lead time"

DETERMINISM:
  The synthesized set is cached in the session keyed by RFQ id. A later
  read returns the cached set verbatim - same quote ids, same order.

SEE ALSO:
  - rules.go: Rush keyword table
  - session.go: Quote cache
*/
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine is the quotation and pricing decision engine. It is stateless
// apart from its configuration; all per-conversation state lives in the
// Session passed to each call.
type Engine struct {
	catalog Catalog
	rules   RuleSet
	weights ScoringWeights
	bands   PricingBands
	now     func() time.Time
}

// Config carries the tunable parts of the engine. Zero-value fields
// fall back to the stock tables and weights.
type Config struct {
	Rules   *RuleSet
	Weights *ScoringWeights
	Bands   *PricingBands
}

func New(catalog Catalog) *Engine {
	return NewWithConfig(catalog, Config{})
}

func NewWithConfig(catalog Catalog, cfg Config) *Engine {
	e := &Engine{
		catalog: catalog,
		rules:   DefaultRules(),
		weights: DefaultScoringWeights(),
		bands:   DefaultPricingBands(),
		now:     time.Now,
	}
	if cfg.Rules != nil {
		e.rules = *cfg.Rules
	}
	if cfg.Weights != nil {
		e.weights = *cfg.Weights
	}
	if cfg.Bands != nil {
		e.bands = *cfg.Bands
	}
	return e
}

// Catalog exposes the reference store for callers that need direct
// lookups (item search, cost basis) without going through an operation.
func (e *Engine) Catalog() Catalog { return e.catalog }

// =============================================================================
// RFQ CREATION
// =============================================================================

// RFQRequest is the input shape for creating an RFQ.
type RFQRequest struct {
	ItemSKU     SKU
	Quantity    int
	Region      string
	Constraints string
}

// CreateRFQ validates the request, resolves the item, and stores an
// open RFQ in the session.
func (e *Engine) CreateRFQ(ctx context.Context, s *Session, req RFQRequest) (RFQ, error) {
	if req.Quantity <= 0 {
		return RFQ{}, fmt.Errorf("create rfq: %w (got %d)", ErrInvalidQuantity, req.Quantity)
	}

	item, err := e.catalog.Item(ctx, req.ItemSKU)
	if err != nil {
		return RFQ{}, err
	}

	rfq := RFQ{
		ID:          NewRFQID(),
		ItemSKU:     item.SKU,
		ItemName:    item.Name,
		Quantity:    req.Quantity,
		Region:      req.Region,
		Constraints: req.Constraints,
		Status:      RFQOpen,
		CreatedAt:   e.now(),
	}
	s.PutRFQ(rfq)
	return rfq, nil
}

// =============================================================================
// QUOTE SYNTHESIS
// =============================================================================

// Quotes returns the quote set for an RFQ, synthesizing it on first
// call and recalling the cached set verbatim afterwards. An empty
// eligible-vendor set yields an empty list, not an error.
func (e *Engine) Quotes(ctx context.Context, s *Session, rfqID RFQID) ([]VendorQuote, error) {
	rfq, ok := s.RFQ(rfqID)
	if !ok {
		return nil, &RFQNotFoundError{ID: rfqID}
	}

	if cached, ok := s.Quotes(rfqID); ok {
		return cached, nil
	}

	vendors, err := e.catalog.VendorsForRegion(ctx, rfq.Region)
	if err != nil {
		return nil, err
	}
	entries, err := e.catalog.PriceList(ctx, rfq.ItemSKU)
	if err != nil {
		return nil, err
	}
	byVendor := make(map[VendorID]PriceListEntry, len(entries))
	for _, entry := range entries {
		byVendor[entry.VendorID] = entry
	}

	rush := e.rules.IsRush(rfq.Constraints)

	quotes := make([]VendorQuote, 0, len(vendors))
	for _, vendor := range vendors {
		entry, ok := byVendor[vendor.ID]
		if !ok {
			continue // vendor doesn't sell this item
		}
		quotes = append(quotes, e.synthesizeOne(rfq, vendor, entry, rush))
	}

	s.PutQuotes(rfqID, quotes)

	out := make([]VendorQuote, len(quotes))
	copy(out, quotes)
	return out, nil
}

func (e *Engine) synthesizeOne(rfq RFQ, vendor Vendor, entry PriceListEntry, rush bool) VendorQuote {
	unit := entry.BasePrice
	leadTime := entry.LeadTimeDays

	volumeDiscount := false
	if rfq.Quantity >= entry.VolumeDiscountThreshold {
		unit = unit.Mul(one.Sub(dec(entry.VolumeDiscountPct / 100)))
		volumeDiscount = true
	}

	rushSurcharge := false
	if rush {
		unit = unit.Mul(one.Add(dec(entry.RushSurchargePct / 100)))
		rushSurcharge = true
		leadTime = max(3, leadTime-5)
	}

	unit = unit.Round(2)
	total := unit.Mul(decimal.NewFromInt(int64(rfq.Quantity))).Round(2)

	var riskFlags []string
	if vendor.ReliabilityScore < 80 {
		riskFlags = append(riskFlags, "Low reliability score")
	}
	if vendor.Rating < 3.5 {
		riskFlags = append(riskFlags, "Below average rating")
	}
	if rfq.Quantity < entry.MOQ {
		riskFlags = append(riskFlags, fmt.Sprintf("Below MOQ (%d)", entry.MOQ))
	}
	if leadTime > 21 {
		riskFlags = append(riskFlags, "Long lead time")
	}

	return VendorQuote{
		ID:                    NewQuoteID(),
		RFQID:                 rfq.ID,
		VendorID:              vendor.ID,
		VendorName:            vendor.Name,
		UnitPrice:             unit,
		TotalPrice:            total,
		LeadTimeDays:          leadTime,
		MOQ:                   entry.MOQ,
		Currency:              DefaultCurrency,
		VolumeDiscountApplied: volumeDiscount,
		RushSurchargeApplied:  rushSurcharge,
		RiskFlags:             riskFlags,
		VendorRating:          vendor.Rating,
		VendorReliability:     vendor.ReliabilityScore,
	}
}
