package negotiation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/procure-engine/engine"
	"github.com/warp/procure-engine/engine/store"
)

func newTestEngine(t *testing.T) (*engine.Engine, *engine.Session, engine.RFQ) {
	t.Helper()
	mem := store.NewMemory()
	mem.AddItem(engine.Item{SKU: "RM-EPDM-01", Name: "EPDM Rubber Sheet", Category: "Raw Materials"})
	mem.AddVendor(engine.Vendor{ID: "V-ACME", Name: "Acme Industrial", Region: "US-West", Rating: 4.5, ReliabilityScore: 92})
	mem.AddPriceListEntry(engine.PriceListEntry{
		VendorID: "V-ACME", ItemSKU: "RM-EPDM-01", BasePrice: decimal.RequireFromString("12.50"),
		MOQ: 100, VolumeDiscountThreshold: 100000, LeadTimeDays: 14,
	})

	e := engine.New(mem)
	s := engine.NewSession()
	rfq, err := e.CreateRFQ(context.Background(), s, engine.RFQRequest{
		ItemSKU: "RM-EPDM-01", Quantity: 5000, Region: "US-West",
	})
	require.NoError(t, err)
	return e, s, rfq
}

func TestParseAsk(t *testing.T) {
	cases := []struct {
		in     string
		want   Ask
		wantOK bool
	}{
		{"better_price", AskBetterPrice, true},
		{"faster_delivery", AskFasterDelivery, true},
		{"both", AskBoth, true},
		{" Both ", AskBoth, true},
		{"", AskBetterPrice, true},
		{"cheaper", AskBoth, false},
	}
	for _, tc := range cases {
		got, ok := ParseAsk(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, tc.wantOK, ok, "input %q", tc.in)
	}
}

func TestDraftForVendor_BetterPrice(t *testing.T) {
	e, s, rfq := newTestEngine(t)

	email, err := DraftForVendor(context.Background(), e, s, rfq.ID, "V-ACME", AskBetterPrice)
	require.NoError(t, err)

	assert.Equal(t, "Quote Review - EPDM Rubber Sheet (RFQ: "+string(rfq.ID)+")", email.Subject)
	assert.Contains(t, email.Body, "Dear Acme Industrial Team,")
	assert.Contains(t, email.Body, "5000 units of EPDM Rubber Sheet")
	// 12.50 * 5000 = 62,500.00
	assert.Contains(t, email.Body, "your quote of $12.50 per unit ($62,500.00 total)")
	assert.Contains(t, email.Body, "Volume-based pricing tiers for future orders")
	assert.Equal(t, AskBetterPrice, email.Ask)
}

func TestDraftForVendor_FasterDelivery(t *testing.T) {
	e, s, rfq := newTestEngine(t)

	email, err := DraftForVendor(context.Background(), e, s, rfq.ID, "V-ACME", AskFasterDelivery)
	require.NoError(t, err)

	assert.Equal(t, "Expedited Delivery Request - EPDM Rubber Sheet (RFQ: "+string(rfq.ID)+")", email.Subject)
	assert.Contains(t, email.Body, "The quoted lead time of 14 days")
	assert.Contains(t, email.Body, "Partial shipment options")
}

func TestDraftForVendor_Both(t *testing.T) {
	e, s, rfq := newTestEngine(t)

	email, err := DraftForVendor(context.Background(), e, s, rfq.ID, "V-ACME", AskBoth)
	require.NoError(t, err)

	assert.Equal(t, "Quote Optimization Request - EPDM Rubber Sheet (RFQ: "+string(rfq.ID)+")", email.Subject)
	assert.Contains(t, email.Body, "- Unit Price: $12.50")
	assert.Contains(t, email.Body, "- Total: $62,500.00")
	assert.Contains(t, email.Body, "- Lead Time: 14 days")
}

func TestDraftForVendor_UnknownRFQ(t *testing.T) {
	e, s, _ := newTestEngine(t)

	_, err := DraftForVendor(context.Background(), e, s, "RFQ-MISSING", "V-ACME", AskBoth)

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrRFQNotFound)
}

func TestDraftForVendor_VendorDidNotQuote(t *testing.T) {
	e, s, rfq := newTestEngine(t)

	_, err := DraftForVendor(context.Background(), e, s, rfq.ID, "V-NOPE", AskBetterPrice)

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrVendorQuoteNotFound)
}
