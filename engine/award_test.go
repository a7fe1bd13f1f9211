package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/procure-engine/engine"
)

// =============================================================================
// STRATEGY PARSING
// =============================================================================

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		in       string
		want     engine.Strategy
		wantOK   bool
	}{
		{"lowest_cost", engine.StrategyLowestCost, true},
		{"fastest", engine.StrategyFastest, true},
		{"balanced", engine.StrategyBalanced, true},
		{"  Balanced ", engine.StrategyBalanced, true},
		{"", engine.StrategyBalanced, true},
		{"cheapest-please", engine.StrategyBalanced, false}, // fallback
	}
	for _, tc := range cases {
		got, ok := engine.ParseStrategy(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, tc.wantOK, ok, "input %q", tc.in)
	}
}

// =============================================================================
// WINNER SELECTION
// =============================================================================

func TestRecommendAward_LowestCost_PicksMinimumTotal(t *testing.T) {
	// GIVEN: Totals 54500 (Bargain) / 56050 (GlobalParts) / 57500 (Acme)
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	rec, err := e.RecommendAward(context.Background(), s, rfq.ID, engine.StrategyLowestCost)
	require.NoError(t, err)

	assert.Equal(t, engine.VendorID("V-RISKY"), rec.VendorID)
	assert.Equal(t, "Selected based on lowest total cost: $54,500.00", rec.Reasoning[0])
}

func TestRecommendAward_Fastest_PicksMinimumLeadTime(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	rec, err := e.RecommendAward(context.Background(), s, rfq.ID, engine.StrategyFastest)
	require.NoError(t, err)

	// V-RISKY has the shortest lead (10 days)
	assert.Equal(t, engine.VendorID("V-RISKY"), rec.VendorID)
	assert.Equal(t, "Selected based on fastest delivery: 10 days", rec.Reasoning[0])
}

func TestRecommendAward_Fastest_TiesBrokenByPrice(t *testing.T) {
	// GIVEN: Two vendors with identical lead time, different price
	e, mem := newTestEngine(t)
	mem.AddVendor(engine.Vendor{ID: "V-TIE", Name: "Tie Trading", Region: "US-West", Rating: 4.0, ReliabilityScore: 90, TypicalLeadTimeDays: 10})
	mem.AddPriceListEntry(engine.PriceListEntry{VendorID: "V-TIE", ItemSKU: "RM-EPDM-01", BasePrice: money("10.00"), MOQ: 100, VolumeDiscountThreshold: 99999, VolumeDiscountPct: 0, RushSurchargePct: 0, LeadTimeDays: 10})

	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	rec, err := e.RecommendAward(context.Background(), s, rfq.ID, engine.StrategyFastest)
	require.NoError(t, err)

	// Both V-RISKY and V-TIE sit at 10 days; V-TIE's 50000 total beats 54500
	assert.Equal(t, engine.VendorID("V-TIE"), rec.VendorID)
}

func TestRecommendAward_Balanced_FourTermWeightedScore(t *testing.T) {
	// GIVEN: Balanced scores with default weights:
	//   Acme:        57.5  + 70  + 0   + 16 = 143.5
	//   GlobalParts: 56.05 + 125 + 50  + 30 = 261.05
	//   Bargain:     54.5  + 50  + 150 + 60 = 314.5
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	rec, err := e.RecommendAward(context.Background(), s, rfq.ID, engine.StrategyBalanced)
	require.NoError(t, err)

	assert.Equal(t, engine.VendorID("V-ACME"), rec.VendorID)
	assert.Equal(t, "Selected using balanced scoring (cost, speed, reliability, risk)", rec.Reasoning[0])
}

// =============================================================================
// REASONING AND ALTERNATIVES
// =============================================================================

func TestRecommendAward_Reasoning_AlwaysAppendsVendorFacts(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	rec, err := e.RecommendAward(context.Background(), s, rfq.ID, engine.StrategyBalanced)
	require.NoError(t, err)

	// Winner is V-ACME: clean flags, volume discount applied
	assert.Equal(t, []string{
		"Selected using balanced scoring (cost, speed, reliability, risk)",
		"Vendor rating: 4.5/5.0",
		"Reliability score: 92%",
		"Volume discount applied to pricing",
		"No risk flags identified",
	}, rec.Reasoning)
}

func TestRecommendAward_Reasoning_ListsRiskFlags(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	rec, err := e.RecommendAward(context.Background(), s, rfq.ID, engine.StrategyLowestCost)
	require.NoError(t, err)

	assert.Contains(t, rec.Reasoning,
		"Risk considerations: Low reliability score, Below average rating, Below MOQ (10000)")
}

func TestRecommendAward_Alternatives_NextTwoByScore(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	rec, err := e.RecommendAward(context.Background(), s, rfq.ID, engine.StrategyLowestCost)
	require.NoError(t, err)

	require.Len(t, rec.Alternatives, 2)
	assert.Equal(t, "GlobalParts Co", rec.Alternatives[0].VendorName)
	assert.Equal(t, "Acme Industrial", rec.Alternatives[1].VendorName)
}

func TestRecommendAward_SingleQuote_NoAlternatives(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "EU", "")

	rec, err := e.RecommendAward(context.Background(), s, rfq.ID, engine.StrategyBalanced)
	require.NoError(t, err)

	assert.Empty(t, rec.Alternatives)
}

func TestRecommendAward_NoQuotes_SignalsEmptyResult(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 100, "Atlantis", "")

	_, err := e.RecommendAward(context.Background(), s, rfq.ID, engine.StrategyBalanced)

	require.Error(t, err)
	assert.True(t, engine.IsEmptyResult(err))
}
