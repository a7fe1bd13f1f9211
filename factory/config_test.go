package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/procure-engine/engine"
)

func TestParseConfig_FullDocument(t *testing.T) {
	f := NewConfigFactory()

	cfg, err := f.ParseConfig(`{
		"rules": {
			"rush_keywords": ["expedite", "asap"],
			"demand_rules": [
				{"label": "surge", "patterns": ["surge", "spike"], "adjustment": 0.08}
			]
		},
		"scoring_weights": {
			"balanced_risk_flag": 75
		},
		"pricing_bands": {
			"premium_ceiling": 1.2
		}
	}`)
	require.NoError(t, err)

	require.NotNil(t, cfg.Rules)
	assert.Equal(t, []string{"expedite", "asap"}, cfg.Rules.RushKeywords)
	require.Len(t, cfg.Rules.DemandRules, 1)
	assert.Equal(t, 0.08, cfg.Rules.DemandRules[0].Adjustment)

	// Named weight overridden, the rest keep defaults
	require.NotNil(t, cfg.Weights)
	assert.Equal(t, 75.0, cfg.Weights.BalancedRiskFlag)
	assert.Equal(t, 1000.0, cfg.Weights.FastestDominance)

	require.NotNil(t, cfg.Bands)
	assert.Equal(t, 1.2, cfg.Bands.PremiumCeiling)
	assert.Equal(t, -0.05, cfg.Bands.PullbackPct)
}

func TestParseConfig_EmptyDocument_KeepsEngineDefaults(t *testing.T) {
	f := NewConfigFactory()

	cfg, err := f.ParseConfig(`{}`)
	require.NoError(t, err)

	// Nil sections mean the engine applies its own defaults
	assert.Nil(t, cfg.Rules)
	assert.Nil(t, cfg.Weights)
	assert.Nil(t, cfg.Bands)
}

func TestParseConfig_InvalidJSON(t *testing.T) {
	f := NewConfigFactory()

	_, err := f.ParseConfig(`{not json`)
	assert.Error(t, err)
}

func TestParseConfig_RejectsBadDemandRules(t *testing.T) {
	f := NewConfigFactory()

	_, err := f.ParseConfig(`{"rules": {"demand_rules": [{"patterns": ["x"], "adjustment": 0.1}]}}`)
	assert.ErrorContains(t, err, "label is required")

	_, err = f.ParseConfig(`{"rules": {"demand_rules": [{"label": "surge", "adjustment": 0.1}]}}`)
	assert.ErrorContains(t, err, "at least one pattern is required")
}

func TestParseConfig_PartialRules_KeepDefaultDemandRules(t *testing.T) {
	f := NewConfigFactory()

	cfg, err := f.ParseConfig(`{"rules": {"rush_keywords": ["expedite"]}}`)
	require.NoError(t, err)

	require.NotNil(t, cfg.Rules)
	assert.Equal(t, []string{"expedite"}, cfg.Rules.RushKeywords)
	// Demand rules untouched
	assert.Equal(t, engine.DefaultRules().DemandRules, cfg.Rules.DemandRules)
}

func TestConfigRoundTrip(t *testing.T) {
	f := NewConfigFactory()

	weights := engine.DefaultScoringWeights()
	weights.BalancedLeadTimeDays = 7
	cfg := engine.Config{Weights: &weights}

	cj := f.ToJSON(cfg)
	require.NotNil(t, cj.ScoringWeights)
	assert.Equal(t, 7.0, *cj.ScoringWeights.BalancedLeadTimeDays)

	// Omitted sections are rendered with defaults
	require.NotNil(t, cj.Rules)
	assert.Equal(t, []string{"rush", "urgent"}, cj.Rules.RushKeywords)

	parsed, err := f.FromJSON(cj)
	require.NoError(t, err)
	assert.Equal(t, 7.0, parsed.Weights.BalancedLeadTimeDays)
	assert.Equal(t, engine.DefaultPricingBands(), *parsed.Bands)
}
