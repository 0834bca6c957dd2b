package score

import (
	"strings"

	"github.com/irfon92/carbon-dashboard/internal/domain"
)

// Sectors considered directly adjacent to the carbon platform
// business.
var relevantSectors = map[string]bool{
	"carbon-management":       true,
	"climate-tech":            true,
	"sustainability-software": true,
}

var (
	carbonPlatformTerms  = []string{"carbon credit", "carbon trading", "carbon platform"}
	fundingChainTerms    = []string{"supply chain", "scope 3", "value chain"}
	fundingTokenTerms    = []string{"tokenization", "blockchain", "digital asset"}
	enterpriseTerms      = []string{"enterprise", "b2b", "platform", "saas"}
	monitoringTerms      = []string{"monitoring", "verification", "measurement"}
	dataRegistryTerms    = []string{"api", "data", "registry"}
	expansionTerms       = []string{"global", "international", "expansion"}
	enterpriseFocusTerms = []string{"enterprise", "corporate", "b2b"}
)

// DovuRelevance scores a funding event's strategic fit from its
// description and sector. Unlike CommitmentRelevance this starts at
// zero and clamps to [0,1].
func DovuRelevance(description, sector string) float64 {
	lower := strings.ToLower(description)
	result := 0.0

	if containsAny(lower, carbonPlatformTerms) {
		result += 0.4
	}
	if containsAny(lower, fundingChainTerms) {
		result += 0.3
	}
	if containsAny(lower, fundingTokenTerms) {
		result += 0.2
	}
	if containsAny(lower, enterpriseTerms) {
		result += 0.1
	}
	if relevantSectors[strings.ToLower(sector)] {
		result += 0.2
	}

	return clamp01(result)
}

// CompetitiveThreat scores how directly a funded company competes.
// Keyword pairs set the base, then funding size multiplies it before
// the final clamp. The multiply-then-clamp order is load-bearing: a
// large raise amplifies whatever base signal exists.
func CompetitiveThreat(description, amount string) float64 {
	lower := strings.ToLower(description)
	result := 0.0

	if strings.Contains(lower, "carbon credit") && strings.Contains(lower, "platform") {
		result += 0.6
	}
	if strings.Contains(lower, "tokenization") && strings.Contains(lower, "carbon") {
		result += 0.7
	}

	if millions := ParseAmount(amount); millions > threatAmountMajor {
		result *= 1.5
	} else if millions > threatAmountNotable {
		result *= 1.2
	}

	return clamp01(result)
}

// PartnershipOpportunity scores collaboration potential across four
// independent keyword categories (max 0.3+0.3+0.2+0.2), clamped to
// [0,1].
func PartnershipOpportunity(description string) float64 {
	lower := strings.ToLower(description)
	result := 0.0

	if containsAny(lower, monitoringTerms) {
		result += 0.3
	}
	if containsAny(lower, dataRegistryTerms) {
		result += 0.3
	}
	if containsAny(lower, expansionTerms) {
		result += 0.2
	}
	if containsAny(lower, enterpriseFocusTerms) {
		result += 0.2
	}

	return clamp01(result)
}

// ClassifyBusinessModel maps a company description to a business
// model bucket.
func ClassifyBusinessModel(description string) string {
	lower := strings.ToLower(description)

	switch {
	case strings.Contains(lower, "marketplace") || strings.Contains(lower, "trading"):
		return domain.ModelMarketplace
	case strings.Contains(lower, "saas") || strings.Contains(lower, "platform") || strings.Contains(lower, "software"):
		return domain.ModelSoftwarePlatform
	case strings.Contains(lower, "consulting") || strings.Contains(lower, "advisory"):
		return domain.ModelServices
	case strings.Contains(lower, "hardware") || strings.Contains(lower, "device"):
		return domain.ModelHardware
	default:
		return domain.ModelOther
	}
}

// DetermineStage derives a company stage from its funding round name,
// falling back to amount-based thresholds when the round name is not
// recognized.
func DetermineStage(fundingType, amount string) string {
	switch strings.ToLower(fundingType) {
	case "seed", "pre-seed":
		return domain.StageSeed
	case "series a", "series b":
		return domain.StageGrowth
	case "series c", "series d", "series e":
		return domain.StageMature
	}
	if strings.Contains(strings.ToLower(fundingType), "acquisition") {
		return domain.StageExit
	}

	switch millions := ParseAmount(amount); {
	case millions < stageSeedMaxMillions:
		return domain.StageSeed
	case millions < stageGrowthMaxMillions:
		return domain.StageGrowth
	default:
		return domain.StageMature
	}
}
