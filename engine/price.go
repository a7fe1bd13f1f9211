/*
price.go - Sell-price recommendation

PURPOSE:
  Computes a recommended sell price from unit cost and a target margin,
  then applies bounded adjustments for demand signals and competitor
  anchors.

COMPUTATION:
  base     = cost / (1 - margin/100)            (margin inversion)
  demand   = +5% high demand/hot, -5% slow/low demand (rule table)
  anchor   = -5% when base > competitor_mean*1.15
             +3% when base < competitor_mean*0.85
  price    = round(base * (1 + demand + anchor), 2)
  achieved = round(((price - cost) / price) * 100, 1)

VALIDATION:
  Inputs are rejected at this boundary before any computation: negative
  cost, margin outside [0, 100). cost=0 with margin=0 legitimately
  yields price 0; the achieved-margin calculation guards the division.
*/
package engine

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// PriceRequest is the input shape for a sell-price recommendation.
// DemandNotes and CompetitorPrices are optional; an empty competitor
// sample disables anchoring.
type PriceRequest struct {
	SKU              SKU
	Cost             float64
	TargetMarginPct  float64
	DemandNotes      string
	CompetitorPrices []float64
}

// RecommendPrice computes the recommendation. The SKU is only used to
// resolve a display name; an unknown SKU falls back to the raw SKU
// string rather than failing, since the computation needs no item data.
func (e *Engine) RecommendPrice(ctx context.Context, req PriceRequest) (*PriceRecommendation, error) {
	if req.Cost < 0 {
		return nil, ErrInvalidCost
	}
	if req.TargetMarginPct < 0 || req.TargetMarginPct >= 100 {
		return nil, &MarginError{TargetMarginPct: req.TargetMarginPct}
	}

	itemName := string(req.SKU)
	if item, err := e.catalog.Item(ctx, req.SKU); err == nil {
		itemName = item.Name
	} else if !errors.Is(err, ErrItemNotFound) {
		return nil, err
	}

	cost := dec(req.Cost)
	base := cost.Div(one.Sub(dec(req.TargetMarginPct / 100)))

	demandAdj, _ := e.rules.DemandAdjustment(req.DemandNotes)

	competitorAdj := 0.0
	var competitorAvg *decimal.Decimal
	if len(req.CompetitorPrices) > 0 {
		sum := decimal.Zero
		for _, p := range req.CompetitorPrices {
			sum = sum.Add(dec(p))
		}
		mean := sum.Div(decimal.NewFromInt(int64(len(req.CompetitorPrices))))
		rounded := mean.Round(2)
		competitorAvg = &rounded

		switch {
		case base.GreaterThan(mean.Mul(dec(e.bands.PremiumCeiling))):
			competitorAdj = e.bands.PullbackPct
		case base.LessThan(mean.Mul(dec(e.bands.HeadroomFloor))):
			competitorAdj = e.bands.HeadroomPct
		}
	}

	adjusted := base.Mul(one.Add(dec(demandAdj + competitorAdj))).Round(2)

	actualMargin := 0.0
	if !adjusted.IsZero() {
		actualMargin, _ = adjusted.Sub(cost).Div(adjusted).Mul(hundred).Round(1).Float64()
	}

	return &PriceRecommendation{
		SKU:              req.SKU,
		ItemName:         itemName,
		RecommendedPrice: adjusted,
		Currency:         DefaultCurrency,
		CostBasis:        cost,
		TargetMarginPct:  req.TargetMarginPct,
		ActualMarginPct:  actualMargin,
		CompetitorAvg:    competitorAvg,
		DemandSignal:     req.DemandNotes,
		Adjustments: AdjustmentBreakdown{
			Demand:     formatPct(demandAdj),
			Competitor: formatPct(competitorAdj),
		},
	}, nil
}
