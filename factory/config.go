/*
Package factory provides JSON to Go engine configuration conversion.

PURPOSE:
  Converts JSON tuning definitions into engine.Config objects. This
  enables sourcing rule tuning without code changes - a category manager
  can adjust rush keywords, demand rules, scoring weights, and pricing
  bands in JSON, and the factory creates the proper Go structs.

WHY JSON?
  - Non-developers can modify tuning
  - Easy integration with admin UI
  - Version control for tuning definitions
  - Database storage of tuning configs

JSON SCHEMA:
  {
    "rules": {
      "rush_keywords": ["rush", "urgent"],
      "demand_rules": [
        {"label": "high", "patterns": ["high demand", "hot"], "adjustment": 0.05},
        {"label": "slow", "patterns": ["slow", "low demand"], "adjustment": -0.05}
      ]
    },
    "scoring_weights": {
      "fastest_dominance": 1000,
      "balanced_price_divisor": 1000,
      "balanced_lead_time_days": 5,
      "balanced_risk_flag": 50,
      "balanced_unreliability": 2
    },
    "pricing_bands": {
      "premium_ceiling": 1.15,
      "pullback_pct": -0.05,
      "headroom_floor": 0.85,
      "headroom_pct": 0.03
    }
  }

KEY FEATURES:
  - Every section is optional; omitted sections keep engine defaults
  - Validates demand rules (label and at least one pattern required)
  - Round-trips back to JSON for admin surfaces

USAGE:
  factory := NewConfigFactory()
  cfg, err := factory.ParseConfig(jsonStr)
  eng := engine.NewWithConfig(catalog, *cfg)

SEE ALSO:
  - engine/rules.go: RuleSet and PricingBands definitions
  - engine/award.go: ScoringWeights definition
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/procure-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigJSON is the JSON representation of engine tuning.
type ConfigJSON struct {
	Rules          *RulesJSON          `json:"rules,omitempty"`
	ScoringWeights *ScoringWeightsJSON `json:"scoring_weights,omitempty"`
	PricingBands   *PricingBandsJSON   `json:"pricing_bands,omitempty"`
}

// RulesJSON represents the keyword rule tables.
type RulesJSON struct {
	RushKeywords []string         `json:"rush_keywords,omitempty"`
	DemandRules  []DemandRuleJSON `json:"demand_rules,omitempty"`
}

// DemandRuleJSON represents one (patterns, effect) demand rule.
type DemandRuleJSON struct {
	Label      string   `json:"label"`
	Patterns   []string `json:"patterns"`
	Adjustment float64  `json:"adjustment"`
}

// ScoringWeightsJSON represents award scoring weights. Pointers so an
// explicit zero is distinguishable from an omitted field.
type ScoringWeightsJSON struct {
	FastestDominance      *float64 `json:"fastest_dominance,omitempty"`
	BalancedPriceDivisor  *float64 `json:"balanced_price_divisor,omitempty"`
	BalancedLeadTimeDays  *float64 `json:"balanced_lead_time_days,omitempty"`
	BalancedRiskFlag      *float64 `json:"balanced_risk_flag,omitempty"`
	BalancedUnreliability *float64 `json:"balanced_unreliability,omitempty"`
}

// PricingBandsJSON represents competitor anchoring thresholds.
type PricingBandsJSON struct {
	PremiumCeiling *float64 `json:"premium_ceiling,omitempty"`
	PullbackPct    *float64 `json:"pullback_pct,omitempty"`
	HeadroomFloor  *float64 `json:"headroom_floor,omitempty"`
	HeadroomPct    *float64 `json:"headroom_pct,omitempty"`
}

// =============================================================================
// CONFIG FACTORY
// =============================================================================

// ConfigFactory converts JSON tuning to engine.Config.
type ConfigFactory struct{}

// NewConfigFactory creates a new config factory.
func NewConfigFactory() *ConfigFactory {
	return &ConfigFactory{}
}

// ParseConfig parses a JSON string into an engine.Config.
func (f *ConfigFactory) ParseConfig(jsonStr string) (*engine.Config, error) {
	var cj ConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts ConfigJSON to engine.Config. Omitted sections leave
// the corresponding Config field nil so the engine applies its defaults.
func (f *ConfigFactory) FromJSON(cj ConfigJSON) (*engine.Config, error) {
	cfg := &engine.Config{}

	if cj.Rules != nil {
		rules, err := parseRules(*cj.Rules)
		if err != nil {
			return nil, err
		}
		cfg.Rules = rules
	}

	if cj.ScoringWeights != nil {
		cfg.Weights = parseWeights(*cj.ScoringWeights)
	}

	if cj.PricingBands != nil {
		cfg.Bands = parseBands(*cj.PricingBands)
	}

	return cfg, nil
}

func parseRules(rj RulesJSON) (*engine.RuleSet, error) {
	// Start from defaults so a partial rules section only overrides
	// what it names
	rules := engine.DefaultRules()

	if rj.RushKeywords != nil {
		rules.RushKeywords = rj.RushKeywords
	}

	if rj.DemandRules != nil {
		parsed := make([]engine.DemandRule, 0, len(rj.DemandRules))
		for i, dr := range rj.DemandRules {
			if dr.Label == "" {
				return nil, fmt.Errorf("demand rule %d: label is required", i)
			}
			if len(dr.Patterns) == 0 {
				return nil, fmt.Errorf("demand rule %q: at least one pattern is required", dr.Label)
			}
			parsed = append(parsed, engine.DemandRule{
				Label:      dr.Label,
				Patterns:   dr.Patterns,
				Adjustment: dr.Adjustment,
			})
		}
		rules.DemandRules = parsed
	}

	return &rules, nil
}

func parseWeights(wj ScoringWeightsJSON) *engine.ScoringWeights {
	weights := engine.DefaultScoringWeights()
	setIf(&weights.FastestDominance, wj.FastestDominance)
	setIf(&weights.BalancedPriceDivisor, wj.BalancedPriceDivisor)
	setIf(&weights.BalancedLeadTimeDays, wj.BalancedLeadTimeDays)
	setIf(&weights.BalancedRiskFlag, wj.BalancedRiskFlag)
	setIf(&weights.BalancedUnreliability, wj.BalancedUnreliability)
	return &weights
}

func parseBands(bj PricingBandsJSON) *engine.PricingBands {
	bands := engine.DefaultPricingBands()
	setIf(&bands.PremiumCeiling, bj.PremiumCeiling)
	setIf(&bands.PullbackPct, bj.PullbackPct)
	setIf(&bands.HeadroomFloor, bj.HeadroomFloor)
	setIf(&bands.HeadroomPct, bj.HeadroomPct)
	return &bands
}

func setIf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// ToJSON converts an engine.Config back to its JSON representation,
// filling omitted sections with the engine defaults so the output is
// always complete.
func (f *ConfigFactory) ToJSON(cfg engine.Config) ConfigJSON {
	rules := engine.DefaultRules()
	if cfg.Rules != nil {
		rules = *cfg.Rules
	}
	weights := engine.DefaultScoringWeights()
	if cfg.Weights != nil {
		weights = *cfg.Weights
	}
	bands := engine.DefaultPricingBands()
	if cfg.Bands != nil {
		bands = *cfg.Bands
	}

	rj := &RulesJSON{RushKeywords: rules.RushKeywords}
	for _, dr := range rules.DemandRules {
		rj.DemandRules = append(rj.DemandRules, DemandRuleJSON{
			Label:      dr.Label,
			Patterns:   dr.Patterns,
			Adjustment: dr.Adjustment,
		})
	}

	return ConfigJSON{
		Rules: rj,
		ScoringWeights: &ScoringWeightsJSON{
			FastestDominance:      ptr(weights.FastestDominance),
			BalancedPriceDivisor:  ptr(weights.BalancedPriceDivisor),
			BalancedLeadTimeDays:  ptr(weights.BalancedLeadTimeDays),
			BalancedRiskFlag:      ptr(weights.BalancedRiskFlag),
			BalancedUnreliability: ptr(weights.BalancedUnreliability),
		},
		PricingBands: &PricingBandsJSON{
			PremiumCeiling: ptr(bands.PremiumCeiling),
			PullbackPct:    ptr(bands.PullbackPct),
			HeadroomFloor:  ptr(bands.HeadroomFloor),
			HeadroomPct:    ptr(bands.HeadroomPct),
		},
	}
}

func ptr(f float64) *float64 {
	return &f
}
