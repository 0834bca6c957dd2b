package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irfon92/carbon-dashboard/internal/domain"
)

func TestDovuRelevance(t *testing.T) {
	tests := []struct {
		name        string
		description string
		sector      string
		want        float64
	}{
		{"empty", "", "", 0.0},
		{"carbon platform terms", "carbon credit marketplace", "", 0.4},
		{"sector bonus alone", "", "carbon-management", 0.2},
		{"supply chain", "scope 3 emissions accounting", "", 0.3},
		{"tokenization", "blockchain settlement layer", "", 0.2},
		{"enterprise", "b2b invoicing", "", 0.1},
		{"stacked clamps to one", "carbon credit supply chain tokenization enterprise platform", "climate-tech", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DovuRelevance(tt.description, tt.sector)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestCompetitiveThreat_BaseScores(t *testing.T) {
	assert.InDelta(t, 0.0, CompetitiveThreat("weather analytics", ""), 1e-9)
	assert.InDelta(t, 0.6, CompetitiveThreat("carbon credit platform", ""), 1e-9)
	assert.InDelta(t, 0.7, CompetitiveThreat("tokenization of carbon assets", ""), 1e-9)
}

func TestCompetitiveThreat_AmountMultiplier(t *testing.T) {
	desc := "carbon credit platform"

	// Base 0.6, x1.2 above $20M, x1.5 above $50M, clamped to 1.0.
	assert.InDelta(t, 0.6, CompetitiveThreat(desc, "$10M"), 1e-9)
	assert.InDelta(t, 0.72, CompetitiveThreat(desc, "$25M"), 1e-9)
	assert.InDelta(t, 0.9, CompetitiveThreat(desc, "$55M"), 1e-9)
	assert.InDelta(t, 1.0, CompetitiveThreat("carbon credit platform with tokenization of carbon", "$1B"), 1e-9)

	// The multiplier amplifies a base of zero to nothing.
	assert.InDelta(t, 0.0, CompetitiveThreat("weather analytics", "$1B"), 1e-9)
}

func TestPartnershipOpportunity(t *testing.T) {
	assert.InDelta(t, 0.0, PartnershipOpportunity(""), 1e-9)
	assert.InDelta(t, 0.3, PartnershipOpportunity("satellite monitoring"), 1e-9)
	assert.InDelta(t, 0.3, PartnershipOpportunity("registry connectors"), 1e-9)
	assert.InDelta(t, 0.2, PartnershipOpportunity("international expansion plans"), 1e-9)
	assert.InDelta(t, 0.2, PartnershipOpportunity("corporate clients"), 1e-9)

	// All four categories stack to the 1.0 maximum.
	assert.InDelta(t, 1.0,
		PartnershipOpportunity("monitoring api for corporate clients expanding internationally"), 1e-9)
}

func TestClassifyBusinessModel(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"carbon credit marketplace", domain.ModelMarketplace},
		{"emissions trading desk", domain.ModelMarketplace},
		{"carbon accounting saas", domain.ModelSoftwarePlatform},
		{"sustainability consulting firm", domain.ModelServices},
		{"direct air capture hardware", domain.ModelHardware},
		{"something else entirely", domain.ModelOther},
		{"", domain.ModelOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyBusinessModel(tt.description), "description %q", tt.description)
	}
}

func TestDetermineStage(t *testing.T) {
	tests := []struct {
		fundingType string
		amount      string
		want        string
	}{
		{"Seed", "", domain.StageSeed},
		{"Pre-Seed", "", domain.StageSeed},
		{"Series A", "$5M", domain.StageGrowth},
		{"Series B", "$55M", domain.StageGrowth},
		{"Series C", "$100M", domain.StageMature},
		{"Acquisition", "$2B", domain.StageExit},
		{"Strategic Acquisition", "", domain.StageExit},
		// Unrecognized round names fall back to amount thresholds.
		{"Grant", "$2M", domain.StageSeed},
		{"Venture Round", "$15M", domain.StageGrowth},
		{"Growth Equity", "$80M", domain.StageMature},
		{"", "", domain.StageSeed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetermineStage(tt.fundingType, tt.amount),
			"funding_type=%q amount=%q", tt.fundingType, tt.amount)
	}
}
