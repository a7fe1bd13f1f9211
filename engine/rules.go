/*
rules.go - Data-driven keyword rule tables

PURPOSE:
  The engine recognizes a handful of free-text signals by substring
  matching: rush/urgent flags inside RFQ constraints, and demand
  categories inside pricing notes. Rather than burying the keywords in
  the scoring code, each recognizer is an explicit ordered list of
  (patterns, effect) pairs so the behavior is configuration and can be
  unit-tested on its own.

MATCH SEMANTICS:
  - Case-insensitive substring match
  - Rules are checked in order; the FIRST matching rule wins
  - Demand categories are exclusive: "high demand" beats a later "slow"

SEE ALSO:
  - factory/config.go: JSON overrides for these tables
  - synthesize.go: Uses IsRush
  - price.go: Uses DemandAdjustment and PricingBands
*/
package engine

import "strings"

// =============================================================================
// KEYWORD RULES
// =============================================================================

// DemandRule maps a set of trigger substrings to a fractional price
// adjustment (0.05 == +5%).
type DemandRule struct {
	Label      string // short category name, e.g. "high", "slow"
	Patterns   []string
	Adjustment float64
}

// RuleSet bundles the keyword recognizers the engine consults.
type RuleSet struct {
	// RushKeywords flag an RFQ constraint string as urgent. Any match
	// applies the vendor's rush surcharge and compresses lead time.
	RushKeywords []string

	// DemandRules adjust the recommended sell price. First match wins.
	DemandRules []DemandRule
}

// DefaultRules returns the stock recognizers.
func DefaultRules() RuleSet {
	return RuleSet{
		RushKeywords: []string{"rush", "urgent"},
		DemandRules: []DemandRule{
			{Label: "high", Patterns: []string{"high demand", "hot"}, Adjustment: 0.05},
			{Label: "slow", Patterns: []string{"slow", "low demand"}, Adjustment: -0.05},
		},
	}
}

// IsRush reports whether the constraint text requests urgency.
func (rs RuleSet) IsRush(constraints string) bool {
	lower := strings.ToLower(constraints)
	for _, kw := range rs.RushKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DemandAdjustment returns the fractional adjustment and rule label for
// the first matching demand rule, or (0, "") when nothing matches.
func (rs RuleSet) DemandAdjustment(notes string) (float64, string) {
	if notes == "" {
		return 0, ""
	}
	lower := strings.ToLower(notes)
	for _, rule := range rs.DemandRules {
		for _, p := range rule.Patterns {
			if strings.Contains(lower, p) {
				return rule.Adjustment, rule.Label
			}
		}
	}
	return 0, ""
}

// =============================================================================
// PRICING BANDS - Competitor anchoring thresholds
// =============================================================================

// PricingBands control how far the margin-inverted base price may drift
// from the competitor mean before an adjustment kicks in. The stock
// values are carried over from the legacy pricing rules and are tunable
// parameters, not derived business truths.
type PricingBands struct {
	// PremiumCeiling: base > mean*PremiumCeiling pulls the price back.
	PremiumCeiling float64
	PullbackPct    float64 // fractional, negative

	// HeadroomFloor: base < mean*HeadroomFloor captures headroom.
	HeadroomFloor float64
	HeadroomPct   float64 // fractional, positive
}

func DefaultPricingBands() PricingBands {
	return PricingBands{
		PremiumCeiling: 1.15,
		PullbackPct:    -0.05,
		HeadroomFloor:  0.85,
		HeadroomPct:    0.03,
	}
}
