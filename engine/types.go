/*
Package engine provides the core quotation and pricing decision engine.

PURPOSE:
  This package contains the domain types and algorithms for turning a
  procurement request into ranked vendor quotes, an award recommendation,
  and an independent sell-price recommendation. It reads static reference
  data through the Catalog interface and keeps per-session state in an
  explicit Session handle. It performs no network I/O and renders no UI.

KEY CONCEPTS IN THIS FILE (types.go):
  - RFQ: A request for quotation on one item and quantity
  - VendorQuote: A synthesized quote from one eligible vendor
  - AwardRecommendation: The engine's pick of a winning quote
  - PriceRecommendation: A sell price derived from cost and margin target
  - SKU/VendorID/RFQID/QuoteID: Type-safe identifiers

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all money to avoid float drift
  2. Determinism: Quotes for an RFQ are synthesized once and cached
  3. Type Safety: Strong typing for IDs prevents mixing identifiers
  4. Explainability: Every recommendation carries ordered reasoning

SEE ALSO:
  - catalog.go: Read-only reference data interface
  - synthesize.go: Quote synthesis pipeline
  - award.go: Strategy scoring and award selection
  - price.go: Margin inversion and price adjustments
*/
package engine

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type SKU string
type VendorID string
type RFQID string
type QuoteID string

// NewRFQID generates an id of the form RFQ-3F2A9C01.
func NewRFQID() RFQID { return RFQID("RFQ-" + shortID()) }

// NewQuoteID generates an id of the form Q-3F2A9C01.
func NewQuoteID() QuoteID { return QuoteID("Q-" + shortID()) }

func shortID() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:4]))
}

// DefaultCurrency is the only currency the engine quotes in.
// Multi-currency conversion is out of scope.
const DefaultCurrency = "USD"

// RegionGlobal is the reserved wildcard region honored by every RFQ.
const RegionGlobal = "Global"

// =============================================================================
// RFQ - Request for Quotation
// =============================================================================

type RFQStatus string

const (
	RFQOpen    RFQStatus = "open"
	RFQAwarded RFQStatus = "awarded"
	RFQClosed  RFQStatus = "closed"
)

// RFQ is created once per procurement request and lives for the session.
// It is the key under which synthesized quotes are cached.
type RFQ struct {
	ID          RFQID
	ItemSKU     SKU
	ItemName    string
	Quantity    int
	Region      string
	Constraints string
	Status      RFQStatus
	CreatedAt   time.Time
}

// =============================================================================
// VENDOR QUOTE - Derived, session-scoped
// =============================================================================

// VendorQuote is synthesized from a price-list entry, never persisted
// outside the session cache. TotalPrice is always computed from the
// already-rounded UnitPrice, so TotalPrice == round(UnitPrice*Quantity, 2)
// holds by construction.
type VendorQuote struct {
	ID                    QuoteID
	RFQID                 RFQID
	VendorID              VendorID
	VendorName            string
	UnitPrice             decimal.Decimal
	TotalPrice            decimal.Decimal
	LeadTimeDays          int
	MOQ                   int
	Currency              string
	VolumeDiscountApplied bool
	RushSurchargeApplied  bool
	RiskFlags             []string
	VendorRating          float64
	VendorReliability     int
}

// =============================================================================
// COMPARISON - Two orderings plus human-readable notes
// =============================================================================

type Comparison struct {
	RFQID            RFQID
	QuotesByPrice    []VendorQuote // primary output order (ascending total)
	QuotesByLeadTime []VendorQuote
	LowestCostVendor string
	FastestVendor    string
	Notes            []string
}

// =============================================================================
// AWARD RECOMMENDATION
// =============================================================================

type AwardRecommendation struct {
	RFQID        RFQID
	VendorID     VendorID
	VendorName   string
	Strategy     Strategy
	Reasoning    []string
	Quote        VendorQuote
	Alternatives []Alternative
}

// Alternative is a runner-up quote, reduced to the fields a buyer
// needs when second-guessing the award.
type Alternative struct {
	VendorName   string
	TotalPrice   decimal.Decimal
	LeadTimeDays int
}

// =============================================================================
// PRICE RECOMMENDATION
// =============================================================================

// AdjustmentBreakdown reports the adjustment magnitudes applied to the
// margin-inverted base price, formatted for auditability ("+5%", "none").
type AdjustmentBreakdown struct {
	Demand     string
	Competitor string
}

type PriceRecommendation struct {
	SKU              SKU
	ItemName         string
	RecommendedPrice decimal.Decimal
	Currency         string
	CostBasis        decimal.Decimal
	TargetMarginPct  float64
	ActualMarginPct  float64
	CompetitorAvg    *decimal.Decimal // nil when no sample was given
	DemandSignal     string
	Adjustments      AdjustmentBreakdown
}

// =============================================================================
// MONEY HELPERS
// =============================================================================

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// FormatMoney renders a decimal as $1,234.56 (thousands separators,
// two decimal places). Negative amounts render as -$1,234.56.
func FormatMoney(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// formatPct renders a fractional adjustment as "+5%" / "-5%" / "none".
func formatPct(fraction float64) string {
	if fraction == 0 {
		return "none"
	}
	s := strconv.FormatFloat(fraction*100, 'f', -1, 64)
	if fraction > 0 {
		s = "+" + s
	}
	return s + "%"
}
