package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/procure-engine/engine"
)

func TestCompare_PriceOrderingIsAscendingAndStable(t *testing.T) {
	// GIVEN: Three quotes at quantity 5000 (totals 54500 / 56050 / 57500)
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	cmp, err := e.Compare(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	// THEN: Primary output ascends by total price
	require.Len(t, cmp.QuotesByPrice, 3)
	for i := 1; i < len(cmp.QuotesByPrice); i++ {
		prev := cmp.QuotesByPrice[i-1].TotalPrice
		cur := cmp.QuotesByPrice[i].TotalPrice
		assert.True(t, prev.LessThanOrEqual(cur), "quotes not ascending at %d", i)
	}
	assert.Equal(t, "Bargain Supply", cmp.LowestCostVendor)
	assert.Equal(t, "Bargain Supply", cmp.FastestVendor)
}

func TestCompare_Notes_SpreadOnlyWithTwoOrMoreQuotes(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "US-West", "")

	cmp, err := e.Compare(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	// max 57500 - min 54500 = 3000
	require.Len(t, cmp.Notes, 3)
	assert.Equal(t, "Lowest cost: Bargain Supply at $54,500.00", cmp.Notes[0])
	assert.Equal(t, "Fastest delivery: Bargain Supply in 10 days", cmp.Notes[1])
	assert.Equal(t, "Price spread: $3,000.00", cmp.Notes[2])
}

func TestCompare_SingleQuote_NoSpreadNote(t *testing.T) {
	// GIVEN: Only the Global vendor is eligible in the EU
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 5000, "EU", "")

	cmp, err := e.Compare(context.Background(), s, rfq.ID)
	require.NoError(t, err)

	require.Len(t, cmp.QuotesByPrice, 1)
	assert.Len(t, cmp.Notes, 2, "spread note requires at least two quotes")
}

func TestCompare_NoQuotes_SignalsEmptyResult(t *testing.T) {
	e, _ := newTestEngine(t)
	s := engine.NewSession()
	rfq := createRFQ(t, e, s, 100, "Atlantis", "")

	_, err := e.Compare(context.Background(), s, rfq.ID)

	require.Error(t, err)
	assert.True(t, engine.IsEmptyResult(err))
}
