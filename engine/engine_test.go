package engine_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/warp/procure-engine/engine"
	"github.com/warp/procure-engine/engine/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// newTestEngine builds an engine over an in-memory catalog with one
// item and three vendors chosen so each strategy picks a different
// winner:
//
//	vendor      region   rating  rel  base    moq    vol@    vol%  rush%  lead
//	V-ACME      US-West  4.5     92   12.50   1000   5000    8     12     14
//	V-GLOB      Global   3.9     85   11.80   2000   4000    5     12     25
//	V-RISKY     US-West  3.0     70   10.90   10000  6000    10    20     10
//	V-EAST      US-East  4.8     95   11.00   1000   5000    8     10     12
//
// At quantity 5000: V-RISKY is cheapest and fastest (but carries three
// risk flags), V-ACME wins balanced, V-EAST is ineligible for US-West.
func newTestEngine(t *testing.T) (*engine.Engine, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()

	mem.AddItem(engine.Item{
		SKU:         "RM-EPDM-01",
		Name:        "EPDM Rubber Sheet",
		Category:    "Raw Materials",
		Description: "Industrial grade EPDM rubber sheeting, 3mm",
	})

	mem.AddVendor(engine.Vendor{ID: "V-ACME", Name: "Acme Industrial", Region: "US-West", Rating: 4.5, ReliabilityScore: 92, TypicalLeadTimeDays: 14})
	mem.AddVendor(engine.Vendor{ID: "V-GLOB", Name: "GlobalParts Co", Region: "Global", Rating: 3.9, ReliabilityScore: 85, TypicalLeadTimeDays: 25})
	mem.AddVendor(engine.Vendor{ID: "V-RISKY", Name: "Bargain Supply", Region: "US-West", Rating: 3.0, ReliabilityScore: 70, TypicalLeadTimeDays: 10})
	mem.AddVendor(engine.Vendor{ID: "V-EAST", Name: "Eastside Materials", Region: "US-East", Rating: 4.8, ReliabilityScore: 95, TypicalLeadTimeDays: 12})

	mem.AddPriceListEntry(engine.PriceListEntry{VendorID: "V-ACME", ItemSKU: "RM-EPDM-01", BasePrice: money("12.50"), MOQ: 1000, VolumeDiscountThreshold: 5000, VolumeDiscountPct: 8, RushSurchargePct: 12, LeadTimeDays: 14})
	mem.AddPriceListEntry(engine.PriceListEntry{VendorID: "V-GLOB", ItemSKU: "RM-EPDM-01", BasePrice: money("11.80"), MOQ: 2000, VolumeDiscountThreshold: 4000, VolumeDiscountPct: 5, RushSurchargePct: 12, LeadTimeDays: 25})
	mem.AddPriceListEntry(engine.PriceListEntry{VendorID: "V-RISKY", ItemSKU: "RM-EPDM-01", BasePrice: money("10.90"), MOQ: 10000, VolumeDiscountThreshold: 6000, VolumeDiscountPct: 10, RushSurchargePct: 20, LeadTimeDays: 10})
	mem.AddPriceListEntry(engine.PriceListEntry{VendorID: "V-EAST", ItemSKU: "RM-EPDM-01", BasePrice: money("11.00"), MOQ: 1000, VolumeDiscountThreshold: 5000, VolumeDiscountPct: 8, RushSurchargePct: 10, LeadTimeDays: 12})

	return engine.New(mem), mem
}

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// createRFQ is a shortcut for the common GIVEN step.
func createRFQ(t *testing.T, e *engine.Engine, s *engine.Session, quantity int, region, constraints string) engine.RFQ {
	t.Helper()
	rfq, err := e.CreateRFQ(context.Background(), s, engine.RFQRequest{
		ItemSKU:     "RM-EPDM-01",
		Quantity:    quantity,
		Region:      region,
		Constraints: constraints,
	})
	require.NoError(t, err)
	return rfq
}

func quoteByVendor(t *testing.T, quotes []engine.VendorQuote, vendorID engine.VendorID) engine.VendorQuote {
	t.Helper()
	for _, q := range quotes {
		if q.VendorID == vendorID {
			return q
		}
	}
	t.Fatalf("no quote from vendor %s", vendorID)
	return engine.VendorQuote{}
}
