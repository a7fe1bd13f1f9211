/*
rationale.go - Price recommendation rationale

PURPOSE:
  Pure formatting of an already-computed price recommendation into an
  ordered list of explanatory bullets. Always emits the same four
  content groups in the same order; only message content varies with
  which optional inputs were present:

  1. cost basis
  2. target vs actual margin
  3. competitor position, or an explicit no-data statement
  4. demand signal (plus a directional note for high / slow signals),
     or an explicit no-signal statement
*/
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ExplainPrice renders the rationale bullets for a recommendation.
func ExplainPrice(rec *PriceRecommendation) []string {
	rationale := []string{
		fmt.Sprintf("Cost basis: %s per unit", FormatMoney(rec.CostBasis)),
		fmt.Sprintf("Target margin: %s%% → Actual margin: %.1f%%",
			formatMargin(rec.TargetMarginPct), rec.ActualMarginPct),
	}

	if rec.CompetitorAvg != nil && !rec.CompetitorAvg.IsZero() {
		diff := rec.RecommendedPrice.Sub(*rec.CompetitorAvg)
		diffPct := diff.Div(*rec.CompetitorAvg).Mul(hundred).InexactFloat64()
		position := "below"
		if diffPct > 0 {
			position = "above"
		}
		if diffPct < 0 {
			diffPct = -diffPct
		}
		rationale = append(rationale,
			fmt.Sprintf("Competitor average: %s (positioned %.1f%% %s)",
				FormatMoney(*rec.CompetitorAvg), diffPct, position))
	} else {
		rationale = append(rationale, "No competitor data available for anchoring")
	}

	if rec.DemandSignal != "" {
		rationale = append(rationale, fmt.Sprintf("Demand signal: %s", rec.DemandSignal))
		lower := strings.ToLower(rec.DemandSignal)
		if strings.Contains(lower, "high") {
			rationale = append(rationale, "↑ Price adjusted upward for high demand")
		} else if strings.Contains(lower, "slow") || strings.Contains(lower, "low") {
			rationale = append(rationale, "↓ Price adjusted downward to stimulate demand")
		}
	} else {
		rationale = append(rationale, "No demand signal provided")
	}

	return rationale
}

// formatMargin renders the margin with its shortest decimal form but
// keeps a trailing .0 on integral values (30 -> "30.0", 12.5 -> "12.5").
func formatMargin(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
