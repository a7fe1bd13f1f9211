/*
award.go - Strategy scoring and award recommendation

PURPOSE:
  Scores every quote in an RFQ's set under a selection strategy and
  recommends the argmin as the award winner, with ranked alternatives
  and ordered reasoning bullets.

STRATEGIES (closed enumeration, each with its own scorer):
  lowest_cost  score = total price
  fastest      score = lead_time*dominance + total price
               (dominance defaults to 1000 so lead time always wins;
               price only breaks ties within a day)
  balanced     score = price/1000 + lead_time*5 + risk_flags*50
                       + (100 - reliability)*2

  The weight constants are tunable parameters carried over from the
  legacy scoring rules; defaults preserve them exactly. Lower score is
  always better, and ties keep synthesis order (stable sort).
*/
package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// =============================================================================
// STRATEGY - Closed enumeration
// =============================================================================

type Strategy string

const (
	StrategyLowestCost Strategy = "lowest_cost"
	StrategyFastest    Strategy = "fastest"
	StrategyBalanced   Strategy = "balanced"
)

// ParseStrategy maps free text onto the enumeration. Unrecognized
// values fall back to balanced; ok is false so callers can log the
// fallback.
func ParseStrategy(s string) (strategy Strategy, ok bool) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyLowestCost:
		return StrategyLowestCost, true
	case StrategyFastest:
		return StrategyFastest, true
	case StrategyBalanced, "":
		return StrategyBalanced, true
	default:
		return StrategyBalanced, false
	}
}

// =============================================================================
// SCORING WEIGHTS
// =============================================================================

// ScoringWeights parameterize the fastest and balanced scorers.
type ScoringWeights struct {
	// FastestDominance multiplies lead time so it dominates any
	// realistic price swing per day. Not a unit conversion.
	FastestDominance float64

	BalancedPriceDivisor  float64
	BalancedLeadTimeDays  float64
	BalancedRiskFlag      float64
	BalancedUnreliability float64
}

func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		FastestDominance:      1000,
		BalancedPriceDivisor:  1000,
		BalancedLeadTimeDays:  5,
		BalancedRiskFlag:      50,
		BalancedUnreliability: 2,
	}
}

type scoreFunc func(VendorQuote) float64

// scorerFor dispatches the closed enumeration to its scoring function.
func (e *Engine) scorerFor(strategy Strategy) scoreFunc {
	w := e.weights
	switch strategy {
	case StrategyLowestCost:
		return func(q VendorQuote) float64 {
			return q.TotalPrice.InexactFloat64()
		}
	case StrategyFastest:
		return func(q VendorQuote) float64 {
			return float64(q.LeadTimeDays)*w.FastestDominance + q.TotalPrice.InexactFloat64()
		}
	default: // balanced
		return func(q VendorQuote) float64 {
			return q.TotalPrice.InexactFloat64()/w.BalancedPriceDivisor +
				float64(q.LeadTimeDays)*w.BalancedLeadTimeDays +
				float64(len(q.RiskFlags))*w.BalancedRiskFlag +
				float64(100-q.VendorReliability)*w.BalancedUnreliability
		}
	}
}

// =============================================================================
// AWARD RECOMMENDATION
// =============================================================================

// RecommendAward scores the RFQ's quotes under the strategy and picks
// the winner plus up to two alternatives.
func (e *Engine) RecommendAward(ctx context.Context, s *Session, rfqID RFQID, strategy Strategy) (*AwardRecommendation, error) {
	quotes, err := e.Quotes(ctx, s, rfqID)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, &NoQuotesError{RFQID: rfqID}
	}

	score := e.scorerFor(strategy)
	scored := make([]VendorQuote, len(quotes))
	copy(scored, quotes)
	sort.SliceStable(scored, func(i, j int) bool {
		return score(scored[i]) < score(scored[j])
	})

	winner := scored[0]

	var reasoning []string
	switch strategy {
	case StrategyLowestCost:
		reasoning = append(reasoning,
			fmt.Sprintf("Selected based on lowest total cost: %s", FormatMoney(winner.TotalPrice)))
	case StrategyFastest:
		reasoning = append(reasoning,
			fmt.Sprintf("Selected based on fastest delivery: %d days", winner.LeadTimeDays))
	default:
		reasoning = append(reasoning,
			"Selected using balanced scoring (cost, speed, reliability, risk)")
	}
	reasoning = append(reasoning,
		fmt.Sprintf("Vendor rating: %s/5.0", strconv.FormatFloat(winner.VendorRating, 'f', 1, 64)),
		fmt.Sprintf("Reliability score: %d%%", winner.VendorReliability),
	)
	if winner.VolumeDiscountApplied {
		reasoning = append(reasoning, "Volume discount applied to pricing")
	}
	if len(winner.RiskFlags) > 0 {
		reasoning = append(reasoning,
			fmt.Sprintf("Risk considerations: %s", strings.Join(winner.RiskFlags, ", ")))
	} else {
		reasoning = append(reasoning, "No risk flags identified")
	}

	var alternatives []Alternative
	for _, q := range scored[1:min(len(scored), 3)] {
		alternatives = append(alternatives, Alternative{
			VendorName:   q.VendorName,
			TotalPrice:   q.TotalPrice,
			LeadTimeDays: q.LeadTimeDays,
		})
	}

	return &AwardRecommendation{
		RFQID:        rfqID,
		VendorID:     winner.VendorID,
		VendorName:   winner.VendorName,
		Strategy:     strategy,
		Reasoning:    reasoning,
		Quote:        winner,
		Alternatives: alternatives,
	}, nil
}
