package score

import "strings"

// Keyword categories for commitment relevance. Each category
// contributes at most once regardless of how many of its terms match.
var (
	supplyChainTerms  = []string{"supply chain", "supplier", "sourcing", "value chain"}
	tokenizationTerms = []string{"token", "blockchain", "digital", "tracking"}
	volumeScaleTerms  = []string{"million", "gigaton", "billion"}
	registryTerms     = []string{"registry", "verification", "standard", "methodology"}
)

// Business-opportunity labels, checked in priority order by
// OpportunityLabel.
const (
	OpportunitySupplyChain = "Supply Chain Carbon Management - Full tokenization and tracking solution"
	OpportunityRegistry    = "Registry Integration & Carbon Credit Verification"
	OpportunityRemoval     = "Carbon Removal Portfolio Management & Tokenization"
	OpportunityDefault     = "Comprehensive Decarbonization Platform - End-to-end carbon management"
)

var (
	removalTerms          = []string{"removal", "cdr", "capture"}
	opportunityRegTerms   = []string{"registry", "verification", "standard"}
	opportunityChainTerms = []string{"supply chain", "sourcing", "supplier"}
)

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// CommitmentRelevance scores how closely a commitment's text fits the
// operating business. Base 0.5 with additive keyword category bonuses,
// clamped to [0.40, 0.95]. Matching is case-insensitive substring
// containment.
func CommitmentRelevance(text string) float64 {
	lower := strings.ToLower(text)
	result := 0.5

	if containsAny(lower, supplyChainTerms) {
		result += 0.15
	}
	if containsAny(lower, tokenizationTerms) {
		result += 0.20
	}
	if containsAny(lower, volumeScaleTerms) {
		result += 0.10
	}
	if containsAny(lower, registryTerms) {
		result += 0.10
	}

	if result < RelevanceFloor {
		return RelevanceFloor
	}
	if result > RelevanceCeiling {
		return RelevanceCeiling
	}
	return result
}

// OpportunityLabel maps commitment text to the matched
// business-opportunity category. Checks run in priority order and the
// first matching category wins.
func OpportunityLabel(text string) string {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, opportunityChainTerms):
		return OpportunitySupplyChain
	case containsAny(lower, opportunityRegTerms):
		return OpportunityRegistry
	case containsAny(lower, removalTerms):
		return OpportunityRemoval
	default:
		return OpportunityDefault
	}
}
