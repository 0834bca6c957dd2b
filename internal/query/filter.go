package query

import (
	"time"

	"github.com/irfon92/carbon-dashboard/internal/domain"
)

// FilterCommitments applies the filter pipeline to a commitment
// snapshot: date window, then thresholds, then categorical match,
// then the result cap. It returns the truncated slice plus the full
// filtered count so callers can distinguish "matched N, returned
// min(N,100)". Input order is preserved; entities whose dates do not
// parse are excluded, never fatal.
func FilterCommitments(commitments []domain.Commitment, params Params, now time.Time) ([]domain.Commitment, int) {
	p := params.Sanitized()
	cutoff := now.AddDate(0, 0, -p.DaysBack)

	filtered := make([]domain.Commitment, 0, len(commitments))
	for _, c := range commitments {
		date, err := c.Date()
		if err != nil || date.Before(cutoff) {
			continue
		}
		if p.MinRelevance > 0 && c.RelevanceScore < p.MinRelevance {
			continue
		}
		if p.CommitmentType != "" && c.CommitmentType != p.CommitmentType {
			continue
		}
		filtered = append(filtered, c)
	}

	total := len(filtered)
	if total > MaxResults {
		filtered = filtered[:MaxResults]
	}
	return filtered, total
}

// FilterFunding applies the same pipeline to funding events, with the
// relevance threshold reading dovu_relevance and two additional
// thresholds for threat and partnership scores.
func FilterFunding(events []domain.FundingEvent, params Params, now time.Time) ([]domain.FundingEvent, int) {
	p := params.Sanitized()
	cutoff := now.AddDate(0, 0, -p.DaysBack)

	filtered := make([]domain.FundingEvent, 0, len(events))
	for _, f := range events {
		date, err := f.Date()
		if err != nil || date.Before(cutoff) {
			continue
		}
		if p.MinRelevance > 0 && f.DovuRelevance < p.MinRelevance {
			continue
		}
		if p.MinThreat > 0 && f.CompetitiveThreat < p.MinThreat {
			continue
		}
		if p.MinPartnership > 0 && f.PartnershipOpportunity < p.MinPartnership {
			continue
		}
		if p.Sector != "" && f.Sector != p.Sector {
			continue
		}
		filtered = append(filtered, f)
	}

	total := len(filtered)
	if total > MaxResults {
		filtered = filtered[:MaxResults]
	}
	return filtered, total
}
