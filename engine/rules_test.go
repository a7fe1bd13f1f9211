package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/procure-engine/engine"
)

func TestRuleSet_IsRush(t *testing.T) {
	rs := engine.DefaultRules()

	assert.True(t, rs.IsRush("RUSH order please"))
	assert.True(t, rs.IsRush("this is Urgent, ship asap"))
	assert.False(t, rs.IsRush("standard delivery is fine"))
	assert.False(t, rs.IsRush(""))
}

func TestRuleSet_DemandAdjustment_FirstMatchWins(t *testing.T) {
	rs := engine.DefaultRules()

	adj, label := rs.DemandAdjustment("High Demand but the category is slow")

	// "high demand" is listed before "slow", so it wins even though
	// both substrings are present
	assert.Equal(t, 0.05, adj)
	assert.Equal(t, "high", label)
}

func TestRuleSet_DemandAdjustment_Categories(t *testing.T) {
	rs := engine.DefaultRules()

	cases := []struct {
		notes string
		adj   float64
		label string
	}{
		{"hot item this season", 0.05, "high"},
		{"low demand expected", -0.05, "slow"},
		{"sales are slow", -0.05, "slow"},
		{"nothing remarkable", 0, ""},
		{"", 0, ""},
	}
	for _, tc := range cases {
		adj, label := rs.DemandAdjustment(tc.notes)
		assert.Equal(t, tc.adj, adj, "notes %q", tc.notes)
		assert.Equal(t, tc.label, label, "notes %q", tc.notes)
	}
}

func TestCustomRules_OverrideDefaults(t *testing.T) {
	// GIVEN: a rule table with an extra rush keyword and a stronger
	// high-demand rule
	rs := engine.RuleSet{
		RushKeywords: []string{"expedite"},
		DemandRules: []engine.DemandRule{
			{Label: "surge", Patterns: []string{"surge"}, Adjustment: 0.10},
		},
	}

	assert.True(t, rs.IsRush("please expedite"))
	assert.False(t, rs.IsRush("rush order")) // default keyword not carried over

	adj, label := rs.DemandAdjustment("demand surge after outage")
	assert.Equal(t, 0.10, adj)
	assert.Equal(t, "surge", label)
}

func TestDefaultPricingBands_LegacyValues(t *testing.T) {
	b := engine.DefaultPricingBands()

	assert.Equal(t, 1.15, b.PremiumCeiling)
	assert.Equal(t, -0.05, b.PullbackPct)
	assert.Equal(t, 0.85, b.HeadroomFloor)
	assert.Equal(t, 0.03, b.HeadroomPct)
}
