package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/procure-engine/engine"
)

func recommend(t *testing.T, e *engine.Engine, req engine.PriceRequest) *engine.PriceRecommendation {
	t.Helper()
	rec, err := e.RecommendPrice(context.Background(), req)
	require.NoError(t, err)
	return rec
}

// =============================================================================
// MARGIN INVERSION
// =============================================================================

func TestRecommendPrice_MarginInversion(t *testing.T) {
	// GIVEN: cost 100 at 30% target margin
	// WHEN:  no demand notes, no competitor sample
	// THEN:  price = 100 / 0.7 rounded to cents
	e, _ := newTestEngine(t)

	rec := recommend(t, e, engine.PriceRequest{SKU: "RM-EPDM-01", Cost: 100, TargetMarginPct: 30})

	assert.Equal(t, "142.86", rec.RecommendedPrice.String())
	assert.InDelta(t, 30.0, rec.ActualMarginPct, 0.01)
	assert.Equal(t, "none", rec.Adjustments.Demand)
	assert.Equal(t, "none", rec.Adjustments.Competitor)
	assert.Nil(t, rec.CompetitorAvg)
}

func TestRecommendPrice_ZeroMargin_PriceEqualsCost(t *testing.T) {
	e, _ := newTestEngine(t)

	rec := recommend(t, e, engine.PriceRequest{SKU: "RM-EPDM-01", Cost: 50, TargetMarginPct: 0})

	assert.Equal(t, "50", rec.RecommendedPrice.String())
	assert.Equal(t, 0.0, rec.ActualMarginPct)
}

func TestRecommendPrice_ZeroCostZeroMargin_YieldsZero(t *testing.T) {
	e, _ := newTestEngine(t)

	rec := recommend(t, e, engine.PriceRequest{SKU: "RM-EPDM-01", Cost: 0, TargetMarginPct: 0})

	assert.True(t, rec.RecommendedPrice.IsZero())
	assert.Equal(t, 0.0, rec.ActualMarginPct)
}

// =============================================================================
// DEMAND ADJUSTMENTS
// =============================================================================

func TestRecommendPrice_HighDemand_AddsFivePercent(t *testing.T) {
	e, _ := newTestEngine(t)

	rec := recommend(t, e, engine.PriceRequest{
		SKU: "RM-EPDM-01", Cost: 100, TargetMarginPct: 30,
		DemandNotes: "High demand expected in Q3",
	})

	// 142.857... * 1.05 = 150.00
	assert.Equal(t, "150", rec.RecommendedPrice.String())
	assert.Equal(t, "+5%", rec.Adjustments.Demand)
}

func TestRecommendPrice_SlowDemand_CutsFivePercent(t *testing.T) {
	e, _ := newTestEngine(t)

	rec := recommend(t, e, engine.PriceRequest{
		SKU: "RM-EPDM-01", Cost: 100, TargetMarginPct: 30,
		DemandNotes: "slow movement in this category",
	})

	// 142.857... * 0.95 = 135.71
	assert.Equal(t, "135.71", rec.RecommendedPrice.String())
	assert.Equal(t, "-5%", rec.Adjustments.Demand)
}

// =============================================================================
// COMPETITOR ANCHORING
// =============================================================================

func TestRecommendPrice_PremiumOverCompetitors_PullsBack(t *testing.T) {
	// GIVEN: base 142.86 against a competitor mean of 100
	// WHEN:  base exceeds mean * 1.15
	// THEN:  -5% pullback lands at 135.71
	e, _ := newTestEngine(t)

	rec := recommend(t, e, engine.PriceRequest{
		SKU: "RM-EPDM-01", Cost: 100, TargetMarginPct: 30,
		CompetitorPrices: []float64{100, 100, 100},
	})

	assert.Equal(t, "135.71", rec.RecommendedPrice.String())
	assert.Equal(t, "-5%", rec.Adjustments.Competitor)
	require.NotNil(t, rec.CompetitorAvg)
	assert.Equal(t, "100", rec.CompetitorAvg.String())
}

func TestRecommendPrice_BelowCompetitors_CapturesHeadroom(t *testing.T) {
	// GIVEN: base 100 (zero margin) against a competitor mean of 200
	// WHEN:  base is under mean * 0.85
	// THEN:  +3% headroom lands at 103.00
	e, _ := newTestEngine(t)

	rec := recommend(t, e, engine.PriceRequest{
		SKU: "RM-EPDM-01", Cost: 100, TargetMarginPct: 0,
		CompetitorPrices: []float64{200, 200},
	})

	assert.Equal(t, "103", rec.RecommendedPrice.String())
	assert.Equal(t, "+3%", rec.Adjustments.Competitor)
	assert.InDelta(t, 2.9, rec.ActualMarginPct, 0.01)
}

func TestRecommendPrice_InsideBands_NoCompetitorAdjustment(t *testing.T) {
	e, _ := newTestEngine(t)

	rec := recommend(t, e, engine.PriceRequest{
		SKU: "RM-EPDM-01", Cost: 100, TargetMarginPct: 30,
		CompetitorPrices: []float64{140, 145},
	})

	assert.Equal(t, "142.86", rec.RecommendedPrice.String())
	assert.Equal(t, "none", rec.Adjustments.Competitor)
}

func TestRecommendPrice_DemandAndAnchorCompose(t *testing.T) {
	// +5% demand and -5% pullback cancel out
	e, _ := newTestEngine(t)

	rec := recommend(t, e, engine.PriceRequest{
		SKU: "RM-EPDM-01", Cost: 100, TargetMarginPct: 30,
		DemandNotes:      "hot item right now",
		CompetitorPrices: []float64{100},
	})

	assert.Equal(t, "142.86", rec.RecommendedPrice.String())
	assert.Equal(t, "+5%", rec.Adjustments.Demand)
	assert.Equal(t, "-5%", rec.Adjustments.Competitor)
}

// =============================================================================
// NAME RESOLUTION AND VALIDATION
// =============================================================================

func TestRecommendPrice_ResolvesItemName(t *testing.T) {
	e, _ := newTestEngine(t)

	known := recommend(t, e, engine.PriceRequest{SKU: "RM-EPDM-01", Cost: 10, TargetMarginPct: 20})
	unknown := recommend(t, e, engine.PriceRequest{SKU: "NOPE-99", Cost: 10, TargetMarginPct: 20})

	assert.Equal(t, "EPDM Rubber Sheet", known.ItemName)
	assert.Equal(t, "NOPE-99", unknown.ItemName)
}

func TestRecommendPrice_RejectsBadInputs(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.RecommendPrice(ctx, engine.PriceRequest{SKU: "RM-EPDM-01", Cost: -1, TargetMarginPct: 30})
	assert.ErrorIs(t, err, engine.ErrInvalidCost)

	_, err = e.RecommendPrice(ctx, engine.PriceRequest{SKU: "RM-EPDM-01", Cost: 100, TargetMarginPct: 100})
	assert.ErrorIs(t, err, engine.ErrInvalidMargin)
	assert.True(t, engine.IsDomainError(err))

	_, err = e.RecommendPrice(ctx, engine.PriceRequest{SKU: "RM-EPDM-01", Cost: 100, TargetMarginPct: -5})
	assert.ErrorIs(t, err, engine.ErrInvalidMargin)
}
