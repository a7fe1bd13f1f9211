/*
catalog.go - Read-only reference data interface

PURPOSE:
  Defines the interface between the engine and the catalog of static
  reference data: items, vendors, price lists, cost basis, competitor
  prices, and demand signals. The engine only ever reads through this
  interface; nothing in the engine mutates reference data.

READ-ONLY CONTRACT:
  The Catalog interface deliberately has no Save/Update/Delete methods.
  Reference data is load-time static; session state lives elsewhere
  (see session.go).

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite-backed catalog for the demo server
  - engine/store/memory.go: In-memory catalog for tests and embedding

SEE ALSO:
  - synthesize.go: Reads vendors + price lists
  - price.go: Reads items for display names
*/
package engine

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// REFERENCE RECORDS
// =============================================================================

// Item is immutable reference data identified by SKU.
type Item struct {
	SKU         SKU
	Name        string
	Category    string
	Description string
}

// Vendor is immutable reference data. Rating is 1.0-5.0, ReliabilityScore
// 0-100. A vendor with Region "Global" is eligible for every RFQ region.
type Vendor struct {
	ID                  VendorID
	Name                string
	Region              string
	Rating              float64
	ReliabilityScore    int
	TypicalLeadTimeDays int
}

// PriceListEntry relates one (vendor, item) pair to its commercial terms.
// A vendor with no entry for an item is ineligible to quote that item.
type PriceListEntry struct {
	VendorID                VendorID
	ItemSKU                 SKU
	BasePrice               decimal.Decimal
	MOQ                     int
	VolumeDiscountThreshold int
	VolumeDiscountPct       float64
	RushSurchargePct        float64
	LeadTimeDays            int
}

// CostType identifies how a unit cost was derived.
type CostType string

const (
	CostLastPurchase CostType = "last_purchase"
	CostShouldCost   CostType = "should_cost"
	CostAverage      CostType = "average"
)

type CostBasis struct {
	SKU         SKU
	ItemName    string
	UnitCost    decimal.Decimal
	CostType    CostType
	Currency    string
	LastUpdated time.Time
}

// CompetitorPrice is an observed market anchor. Many rows per SKU allowed.
type CompetitorPrice struct {
	SKU            SKU
	CompetitorName string
	Price          decimal.Decimal
	Currency       string
	Source         string
	ObservedDate   string
}

// =============================================================================
// CATALOG - Interface for reference data lookups (read-only)
// =============================================================================

type Catalog interface {
	// Item resolves a SKU. Returns ErrItemNotFound for unknown SKUs.
	Item(ctx context.Context, sku SKU) (*Item, error)

	// SearchItems matches query against name, category, and description
	// (case-insensitive substring). Results are ordered by relevance
	// (name match 3, category 2, description 1), ties by name ascending.
	SearchItems(ctx context.Context, query string, limit int) ([]Item, error)

	// VendorsForRegion returns vendors whose region equals region or is
	// the Global wildcard, in stable catalog order.
	VendorsForRegion(ctx context.Context, region string) ([]Vendor, error)

	// PriceList returns all entries for a SKU. An empty slice means no
	// vendor can quote the item; it is not an error.
	PriceList(ctx context.Context, sku SKU) ([]PriceListEntry, error)

	// CostBasis returns the recorded cost basis for a SKU, or
	// ErrCostBasisNotFound.
	CostBasis(ctx context.Context, sku SKU) (*CostBasis, error)

	// CompetitorPrices returns observed anchors ordered by price
	// ascending. An empty slice disables competitor anchoring.
	CompetitorPrices(ctx context.Context, sku SKU) ([]CompetitorPrice, error)

	// DemandSignal returns the recorded demand note for a SKU, or ""
	// when none exists.
	DemandSignal(ctx context.Context, sku SKU) (string, error)
}
