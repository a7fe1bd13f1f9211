package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/procure-engine/engine"
)

// =============================================================================
// RFQ CREATION
// =============================================================================

func TestCreateRFQ_UnknownSKU_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()

	_, err := e.CreateRFQ(context.Background(), s, engine.RFQRequest{
		ItemSKU: "NO-SUCH-SKU", Quantity: 100, Region: "US-West",
	})

	require.Error(t, err)
	assert.True(t, engine.IsNotFound(err))
}

func TestCreateRFQ_NonPositiveQuantity_DomainError(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()

	for _, qty := range []int{0, -5} {
		_, err := e.CreateRFQ(context.Background(), s, engine.RFQRequest{
			ItemSKU: "RM-EPDM-01", Quantity: qty, Region: "US-West",
		})
		require.Error(t, err, "quantity %d must be rejected", qty)
		assert.True(t, engine.IsDomainError(err))
	}
}

func TestCreateRFQ_ResolvesItemName(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()

	rfq := createRFQ(t, e, s, 100, "US-West", "")

	assert.Equal(t, "EPDM Rubber Sheet", rfq.ItemName)
	assert.Equal(t, engine.RFQOpen, rfq.Status)
	assert.Contains(t, string(rfq.ID), "RFQ-")
}

// =============================================================================
// ELIGIBILITY
// =============================================================================

func TestQuotes_RegionFiltering_IncludesGlobalWildcard(t *testing.T) {
	// GIVEN: An RFQ for US-West
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	// WHEN: Synthesizing quotes
	quotes, err := e.Quotes(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	// THEN: US-West and Global vendors quote; US-East is silently excluded
	got := make(map[engine.VendorID]bool)
	for _, q := range quotes {
		got[q.VendorID] = true
	}
	assert.Equal(t, map[engine.VendorID]bool{"V-ACME": true, "V-GLOB": true, "V-RISKY": true}, got)
}

func TestQuotes_NoEligibleVendors_EmptyListNotError(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 100, "Antarctica", "")

	quotes, err := e.Quotes(context.Background(), s, rfq.ID)

	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuotes_UnknownRFQ_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()

	_, err := e.Quotes(context.Background(), s, "RFQ-DEADBEEF")

	require.Error(t, err)
	assert.True(t, engine.IsNotFound(err))
}

// =============================================================================
// PRICING PIPELINE
// =============================================================================

func TestQuotes_VolumeDiscount_AppliedAtThreshold(t *testing.T) {
	// GIVEN: Quantity 5000 meets V-ACME's threshold exactly
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	quotes, err := e.Quotes(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	// THEN: 12.50 * (1 - 8/100) = 11.50
	acme := quoteByVendor(t, quotes, "V-ACME")
	assert.True(t, acme.VolumeDiscountApplied)
	assert.Equal(t, "11.5", acme.UnitPrice.String())
	assert.Equal(t, "57500", acme.TotalPrice.String())

	// V-RISKY's threshold is 6000; no discount at 5000
	risky := quoteByVendor(t, quotes, "V-RISKY")
	assert.False(t, risky.VolumeDiscountApplied)
	assert.Equal(t, "10.9", risky.UnitPrice.String())
}

func TestQuotes_RushConstraint_SurchargeAndLeadTimeCompression(t *testing.T) {
	// GIVEN: Constraints carrying an urgency token
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 100, "US-West", "URGENT restock needed")

	quotes, err := e.Quotes(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	// THEN: 12.50 * 1.12 = 14.00, lead 14 -> 9
	acme := quoteByVendor(t, quotes, "V-ACME")
	assert.True(t, acme.RushSurchargeApplied)
	assert.Equal(t, "14", acme.UnitPrice.String())
	assert.Equal(t, 9, acme.LeadTimeDays)

	// Lead time floors at 3: V-RISKY 10 - 5 = 5 (not floored), but a
	// vendor at 6 days would floor. Verify the floor with V-RISKY at
	// quantity low enough to leave other flags aside.
	risky := quoteByVendor(t, quotes, "V-RISKY")
	assert.Equal(t, 5, risky.LeadTimeDays)
}

func TestQuotes_RushLeadTime_FlooredAtThreeDays(t *testing.T) {
	e, mem := newTestEngine(t)
	mem.AddVendor(engine.Vendor{ID: "V-FAST", Name: "Sprint Logistics", Region: "US-West", Rating: 4.0, ReliabilityScore: 90, TypicalLeadTimeDays: 4})
	mem.AddPriceListEntry(engine.PriceListEntry{VendorID: "V-FAST", ItemSKU: "RM-EPDM-01", BasePrice: money("13.00"), MOQ: 100, VolumeDiscountThreshold: 10000, VolumeDiscountPct: 5, RushSurchargePct: 10, LeadTimeDays: 4})

	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 100, "US-West", "rush order")

	quotes, err := e.Quotes(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	fast := quoteByVendor(t, quotes, "V-FAST")
	assert.Equal(t, 3, fast.LeadTimeDays, "4 - 5 floors at 3")
}

func TestQuotes_TotalPriceInvariant(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 3333, "US-West", "")

	quotes, err := e.Quotes(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	for _, q := range quotes {
		expected := q.UnitPrice.Mul(money("3333")).Round(2)
		assert.True(t, q.TotalPrice.Equal(expected),
			"vendor %s: total %s != round(unit*qty) %s", q.VendorID, q.TotalPrice, expected)
	}
}

// =============================================================================
// RISK FLAGS
// =============================================================================

func TestQuotes_RiskFlags_DerivedInFixedOrder(t *testing.T) {
	// GIVEN: V-RISKY trips reliability, rating, and MOQ at quantity 5000
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	quotes, err := e.Quotes(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	risky := quoteByVendor(t, quotes, "V-RISKY")
	assert.Equal(t, []string{
		"Low reliability score",
		"Below average rating",
		"Below MOQ (10000)",
	}, risky.RiskFlags)

	// V-GLOB only trips the long lead time flag (25 > 21)
	glob := quoteByVendor(t, quotes, "V-GLOB")
	assert.Equal(t, []string{"Long lead time"}, glob.RiskFlags)

	// V-ACME is clean
	acme := quoteByVendor(t, quotes, "V-ACME")
	assert.Empty(t, acme.RiskFlags)
}

// =============================================================================
// IDEMPOTENT RECALL
// =============================================================================

func TestQuotes_RepeatedReads_ReturnIdenticalCachedSet(t *testing.T) {
	// GIVEN: A synthesized quote set
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	first, err := e.Quotes(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	// WHEN: Reading again
	second, err := e.Quotes(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	// THEN: Identical quotes, same ids, same order - no re-roll
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.True(t, first[i].TotalPrice.Equal(second[i].TotalPrice))
	}
}

func TestQuotes_SessionReset_ClearsCache(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	_, err := e.Quotes(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	s.Reset()

	// The RFQ itself is gone too; reads now signal NotFound
	_, err = e.Quotes(context.Background(), s, rfq.ID)
	require.Error(t, err)
	assert.True(t, engine.IsNotFound(err))
	assert.Empty(t, s.ListRFQs())
}
