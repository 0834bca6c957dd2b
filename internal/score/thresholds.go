// Package score implements the deterministic relevance, threat, and
// partnership heuristics plus free-text amount parsing. All functions
// are pure and total: any input yields a bounded result, never an
// error.
package score

// Score thresholds shared across filtering, alerting, and summary
// statistics. Defined once here so the numbers cannot drift between
// components.
const (
	HighRelevance   = 0.6 // commitment relevance worth surfacing
	HighThreat      = 0.6 // competitive threat worth an urgent alert
	HighPartnership = 0.6 // partnership score worth a medium alert
)

// Clamp bounds for the commitment relevance heuristic. The 0.4 floor
// is intentional: commitments reaching the pipeline are pre-filtered
// to always be somewhat relevant. Funding scores clamp to [0,1].
const (
	RelevanceFloor   = 0.40
	RelevanceCeiling = 0.95
)

// Amount thresholds (millions USD) for the competitive-threat
// multiplier and stage derivation.
const (
	threatAmountMajor      = 50 // >$50M funding multiplies threat x1.5
	threatAmountNotable    = 20 // >$20M funding multiplies threat x1.2
	stageSeedMaxMillions   = 5
	stageGrowthMaxMillions = 25
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
