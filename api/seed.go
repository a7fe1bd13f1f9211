/*
seed.go - Demo data fixtures

PURPOSE:
  Loads a small but realistic procurement dataset into the SQLite store:
  items across categories, vendors across regions, price lists, cost
  bases, competitor anchors, demand notes, and a year of purchase
  history. Used by cmd/server -seed and POST /api/admin/seed.

IDEMPOTENCY:
  All inserts are upserts keyed on natural ids, so seeding twice leaves
  the same rows (competitor prices and purchases are keyed too).

SEE ALSO:
  - store/sqlite/sqlite.go: Insert helpers
  - handlers.go: SeedDemoData endpoint
*/
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/procure-engine/engine"
	"github.com/warp/procure-engine/store/sqlite"
)

// Seed loads the demo fixtures into the store.
func Seed(ctx context.Context, store *sqlite.Store) error {
	for _, item := range seedItems {
		if err := store.InsertItem(ctx, item); err != nil {
			return fmt.Errorf("seed item %s: %w", item.SKU, err)
		}
	}
	for _, v := range seedVendors {
		if err := store.InsertVendor(ctx, v); err != nil {
			return fmt.Errorf("seed vendor %s: %w", v.ID, err)
		}
	}
	for _, e := range seedPriceLists {
		if err := store.InsertPriceListEntry(ctx, e); err != nil {
			return fmt.Errorf("seed price list %s/%s: %w", e.VendorID, e.ItemSKU, err)
		}
	}
	for _, cb := range seedCostBases {
		if err := store.InsertCostBasis(ctx, cb); err != nil {
			return fmt.Errorf("seed cost basis %s: %w", cb.SKU, err)
		}
	}
	for _, cp := range seedCompetitorPrices {
		if err := store.InsertCompetitorPrice(ctx, cp); err != nil {
			return fmt.Errorf("seed competitor price %s: %w", cp.SKU, err)
		}
	}
	for sku, note := range seedDemandNotes {
		if err := store.InsertDemandNote(ctx, sku, note); err != nil {
			return fmt.Errorf("seed demand note %s: %w", sku, err)
		}
	}
	for _, p := range seedPurchases {
		if err := store.InsertPurchase(ctx, p); err != nil {
			return fmt.Errorf("seed purchase %s: %w", p.POID, err)
		}
	}
	return nil
}

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("seed: bad money literal %q", s))
	}
	return d
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(fmt.Sprintf("seed: bad date literal %q", s))
	}
	return t
}

var seedItems = []engine.Item{
	{SKU: "RM-EPDM-01", Name: "EPDM Rubber Sheet", Category: "Raw Materials", Description: "Industrial grade EPDM rubber sheeting, 3mm, sold per sq meter"},
	{SKU: "RM-ALU-6061", Name: "Aluminum Billet 6061", Category: "Raw Materials", Description: "6061-T6 aluminum billet stock, 100mm diameter"},
	{SKU: "RM-HDPE-PEL", Name: "HDPE Pellets", Category: "Raw Materials", Description: "High-density polyethylene pellets, injection grade, per kg"},
	{SKU: "PKG-BOX-12", Name: "Corrugated Box 12in", Category: "Packaging", Description: "Double-wall corrugated shipping box, 12x12x12 inch"},
	{SKU: "PKG-WRAP-18", Name: "Stretch Wrap Roll 18in", Category: "Packaging", Description: "Machine-grade stretch wrap, 18 inch x 1500 ft"},
	{SKU: "MRO-BRG-6204", Name: "Ball Bearing 6204-2RS", Category: "MRO", Description: "Sealed deep-groove ball bearing, 20x47x14mm"},
	{SKU: "PPE-GLV-NTR", Name: "Nitrile Gloves (Box 100)", Category: "Safety", Description: "Disposable nitrile gloves, powder-free, size L"},
	{SKU: "OFF-PPR-A4", Name: "Copy Paper A4", Category: "Office", Description: "80gsm A4 copy paper, carton of 5 reams"},
}

var seedVendors = []engine.Vendor{
	{ID: "V-ACME", Name: "Acme Industrial", Region: "US-West", Rating: 4.5, ReliabilityScore: 92, TypicalLeadTimeDays: 12},
	{ID: "V-GLOB", Name: "GlobalParts Co", Region: "Global", Rating: 3.9, ReliabilityScore: 85, TypicalLeadTimeDays: 18},
	{ID: "V-EAST", Name: "Eastline Supply", Region: "US-East", Rating: 4.2, ReliabilityScore: 88, TypicalLeadTimeDays: 10},
	{ID: "V-RHEN", Name: "Rheinwerk GmbH", Region: "EU", Rating: 4.7, ReliabilityScore: 95, TypicalLeadTimeDays: 15},
	{ID: "V-PACR", Name: "PacRim Trading", Region: "APAC", Rating: 3.6, ReliabilityScore: 74, TypicalLeadTimeDays: 25},
	{ID: "V-BUDG", Name: "BudgetSource Ltd", Region: "Global", Rating: 3.2, ReliabilityScore: 68, TypicalLeadTimeDays: 30},
}

var seedPriceLists = []engine.PriceListEntry{
	// Discount and surcharge fields are whole percents (8 means 8% off).
	// EPDM rubber: three eligible vendors at different price/lead tradeoffs
	{VendorID: "V-ACME", ItemSKU: "RM-EPDM-01", BasePrice: money("12.50"), MOQ: 500, VolumeDiscountThreshold: 5000, VolumeDiscountPct: 8, RushSurchargePct: 10, LeadTimeDays: 12},
	{VendorID: "V-GLOB", ItemSKU: "RM-EPDM-01", BasePrice: money("11.80"), MOQ: 1000, VolumeDiscountThreshold: 10000, VolumeDiscountPct: 10, RushSurchargePct: 12, LeadTimeDays: 18},
	{VendorID: "V-BUDG", ItemSKU: "RM-EPDM-01", BasePrice: money("10.95"), MOQ: 2000, VolumeDiscountThreshold: 8000, VolumeDiscountPct: 6, RushSurchargePct: 15, LeadTimeDays: 28},

	// Aluminum billet
	{VendorID: "V-ACME", ItemSKU: "RM-ALU-6061", BasePrice: money("4.85"), MOQ: 250, VolumeDiscountThreshold: 2000, VolumeDiscountPct: 5, RushSurchargePct: 8, LeadTimeDays: 14},
	{VendorID: "V-RHEN", ItemSKU: "RM-ALU-6061", BasePrice: money("5.10"), MOQ: 100, VolumeDiscountThreshold: 1500, VolumeDiscountPct: 7, RushSurchargePct: 10, LeadTimeDays: 16},
	{VendorID: "V-PACR", ItemSKU: "RM-ALU-6061", BasePrice: money("4.20"), MOQ: 1000, VolumeDiscountThreshold: 5000, VolumeDiscountPct: 9, RushSurchargePct: 14, LeadTimeDays: 26},

	// HDPE pellets
	{VendorID: "V-GLOB", ItemSKU: "RM-HDPE-PEL", BasePrice: money("1.42"), MOQ: 5000, VolumeDiscountThreshold: 20000, VolumeDiscountPct: 10, RushSurchargePct: 12, LeadTimeDays: 20},
	{VendorID: "V-PACR", ItemSKU: "RM-HDPE-PEL", BasePrice: money("1.28"), MOQ: 10000, VolumeDiscountThreshold: 40000, VolumeDiscountPct: 12, RushSurchargePct: 15, LeadTimeDays: 24},

	// Packaging
	{VendorID: "V-EAST", ItemSKU: "PKG-BOX-12", BasePrice: money("0.85"), MOQ: 1000, VolumeDiscountThreshold: 10000, VolumeDiscountPct: 8, RushSurchargePct: 6, LeadTimeDays: 7},
	{VendorID: "V-GLOB", ItemSKU: "PKG-BOX-12", BasePrice: money("0.79"), MOQ: 2500, VolumeDiscountThreshold: 15000, VolumeDiscountPct: 10, RushSurchargePct: 10, LeadTimeDays: 14},
	{VendorID: "V-EAST", ItemSKU: "PKG-WRAP-18", BasePrice: money("14.20"), MOQ: 48, VolumeDiscountThreshold: 240, VolumeDiscountPct: 6, RushSurchargePct: 6, LeadTimeDays: 7},

	// MRO, safety, office
	{VendorID: "V-ACME", ItemSKU: "MRO-BRG-6204", BasePrice: money("2.35"), MOQ: 100, VolumeDiscountThreshold: 1000, VolumeDiscountPct: 5, RushSurchargePct: 8, LeadTimeDays: 10},
	{VendorID: "V-RHEN", ItemSKU: "MRO-BRG-6204", BasePrice: money("2.60"), MOQ: 50, VolumeDiscountThreshold: 500, VolumeDiscountPct: 6, RushSurchargePct: 9, LeadTimeDays: 15},
	{VendorID: "V-BUDG", ItemSKU: "PPE-GLV-NTR", BasePrice: money("6.90"), MOQ: 200, VolumeDiscountThreshold: 2000, VolumeDiscountPct: 10, RushSurchargePct: 12, LeadTimeDays: 21},
	{VendorID: "V-EAST", ItemSKU: "PPE-GLV-NTR", BasePrice: money("7.45"), MOQ: 50, VolumeDiscountThreshold: 1000, VolumeDiscountPct: 7, RushSurchargePct: 5, LeadTimeDays: 6},
	{VendorID: "V-GLOB", ItemSKU: "OFF-PPR-A4", BasePrice: money("18.50"), MOQ: 20, VolumeDiscountThreshold: 200, VolumeDiscountPct: 8, RushSurchargePct: 10, LeadTimeDays: 12},
}

var seedCostBases = []engine.CostBasis{
	{SKU: "RM-EPDM-01", UnitCost: money("10.20"), CostType: engine.CostLastPurchase, Currency: "USD", LastUpdated: date("2026-05-10")},
	{SKU: "RM-ALU-6061", UnitCost: money("4.45"), CostType: engine.CostAverage, Currency: "USD", LastUpdated: date("2026-06-02")},
	{SKU: "RM-HDPE-PEL", UnitCost: money("1.31"), CostType: engine.CostLastPurchase, Currency: "USD", LastUpdated: date("2026-04-18")},
	{SKU: "PKG-BOX-12", UnitCost: money("0.81"), CostType: engine.CostLastPurchase, Currency: "USD", LastUpdated: date("2026-07-01")},
	{SKU: "MRO-BRG-6204", UnitCost: money("2.28"), CostType: engine.CostShouldCost, Currency: "USD", LastUpdated: date("2026-03-25")},
	{SKU: "PPE-GLV-NTR", UnitCost: money("7.10"), CostType: engine.CostAverage, Currency: "USD", LastUpdated: date("2026-06-20")},
}

var seedCompetitorPrices = []engine.CompetitorPrice{
	{SKU: "RM-EPDM-01", CompetitorName: "RubberWorld", Price: money("14.10"), Currency: "USD", Source: "public catalog", ObservedDate: "2026-07-15"},
	{SKU: "RM-EPDM-01", CompetitorName: "PolyDirect", Price: money("13.25"), Currency: "USD", Source: "quote request", ObservedDate: "2026-07-22"},
	{SKU: "RM-ALU-6061", CompetitorName: "MetalMart", Price: money("5.60"), Currency: "USD", Source: "public catalog", ObservedDate: "2026-07-10"},
	{SKU: "RM-ALU-6061", CompetitorName: "AlloyHub", Price: money("5.35"), Currency: "USD", Source: "distributor list", ObservedDate: "2026-08-01"},
	{SKU: "RM-HDPE-PEL", CompetitorName: "PolyDirect", Price: money("1.55"), Currency: "USD", Source: "public catalog", ObservedDate: "2026-07-28"},
	{SKU: "PKG-BOX-12", CompetitorName: "BoxBarn", Price: money("0.99"), Currency: "USD", Source: "public catalog", ObservedDate: "2026-08-05"},
	{SKU: "PPE-GLV-NTR", CompetitorName: "SafetyFirst", Price: money("8.20"), Currency: "USD", Source: "public catalog", ObservedDate: "2026-07-30"},
}

var seedDemandNotes = map[engine.SKU]string{
	"RM-EPDM-01":  "High demand from construction sector, trending up since spring",
	"RM-HDPE-PEL": "Slow-moving, inventory building up in the warehouse",
	"PPE-GLV-NTR": "Seasonal spike expected, hot item through Q4",
}

var seedPurchases = []sqlite.Purchase{
	{POID: "PO-1001", ItemSKU: "RM-EPDM-01", VendorID: "V-ACME", Category: "Raw Materials", OrderDate: "2025-09-14", Quantity: 2000, UnitPrice: money("12.00"), TotalAmount: money("24000.00"), DaysLate: 0},
	{POID: "PO-1002", ItemSKU: "RM-EPDM-01", VendorID: "V-GLOB", Category: "Raw Materials", OrderDate: "2025-12-03", Quantity: 3000, UnitPrice: money("12.40"), TotalAmount: money("37200.00"), DaysLate: 3},
	{POID: "PO-1003", ItemSKU: "RM-EPDM-01", VendorID: "V-ACME", Category: "Raw Materials", OrderDate: "2026-03-21", Quantity: 2500, UnitPrice: money("12.80"), TotalAmount: money("32000.00"), DaysLate: 0},
	{POID: "PO-1004", ItemSKU: "RM-ALU-6061", VendorID: "V-RHEN", Category: "Raw Materials", OrderDate: "2025-10-08", Quantity: 1500, UnitPrice: money("4.60"), TotalAmount: money("6900.00"), DaysLate: 1},
	{POID: "PO-1005", ItemSKU: "RM-ALU-6061", VendorID: "V-PACR", Category: "Raw Materials", OrderDate: "2026-02-17", Quantity: 4000, UnitPrice: money("4.30"), TotalAmount: money("17200.00"), DaysLate: 6},
	{POID: "PO-1006", ItemSKU: "RM-HDPE-PEL", VendorID: "V-GLOB", Category: "Raw Materials", OrderDate: "2026-01-26", Quantity: 20000, UnitPrice: money("1.38"), TotalAmount: money("27600.00"), DaysLate: 0},
	{POID: "PO-1007", ItemSKU: "PKG-BOX-12", VendorID: "V-EAST", Category: "Packaging", OrderDate: "2025-11-12", Quantity: 8000, UnitPrice: money("0.84"), TotalAmount: money("6720.00"), DaysLate: 0},
	{POID: "PO-1008", ItemSKU: "PKG-BOX-12", VendorID: "V-EAST", Category: "Packaging", OrderDate: "2026-04-02", Quantity: 12000, UnitPrice: money("0.80"), TotalAmount: money("9600.00"), DaysLate: 0},
	{POID: "PO-1009", ItemSKU: "PKG-WRAP-18", VendorID: "V-EAST", Category: "Packaging", OrderDate: "2026-05-19", Quantity: 96, UnitPrice: money("14.00"), TotalAmount: money("1344.00"), DaysLate: 2},
	{POID: "PO-1010", ItemSKU: "MRO-BRG-6204", VendorID: "V-ACME", Category: "MRO", OrderDate: "2026-01-09", Quantity: 500, UnitPrice: money("2.30"), TotalAmount: money("1150.00"), DaysLate: 0},
	{POID: "PO-1011", ItemSKU: "PPE-GLV-NTR", VendorID: "V-BUDG", Category: "Safety", OrderDate: "2026-02-28", Quantity: 400, UnitPrice: money("7.05"), TotalAmount: money("2820.00"), DaysLate: 8},
	{POID: "PO-1012", ItemSKU: "PPE-GLV-NTR", VendorID: "V-EAST", Category: "Safety", OrderDate: "2026-06-11", Quantity: 300, UnitPrice: money("7.30"), TotalAmount: money("2190.00"), DaysLate: 0},
	{POID: "PO-1013", ItemSKU: "OFF-PPR-A4", VendorID: "V-GLOB", Category: "Office", OrderDate: "2026-07-07", Quantity: 60, UnitPrice: money("18.20"), TotalAmount: money("1092.00"), DaysLate: 1},
}
