package alerts

import (
	"fmt"
	"time"

	"github.com/irfon92/carbon-dashboard/internal/domain"
	"github.com/irfon92/carbon-dashboard/internal/score"
)

// SummaryStats are the aggregate dashboard statistics computed over
// the full in-scope collections.
type SummaryStats struct {
	TotalCommitments         int    `json:"total_commitments"`
	RecentCommitments        int    `json:"recent_commitments"`
	HighValueCommitments     int    `json:"high_value_commitments"`
	TotalFundingEvents       int    `json:"total_funding_events"`
	RecentFundingEvents      int    `json:"recent_funding_events"`
	TotalFundingValue        string `json:"total_funding_value"`
	CompetitiveThreats       int    `json:"competitive_threats"`
	PartnershipOpportunities int    `json:"partnership_opportunities"`
	LastUpdated              string `json:"last_updated"`
}

// Summarize computes dashboard statistics from the current entity
// collections. Entities with unparseable dates simply never count as
// recent.
func Summarize(commitments []domain.Commitment, funding []domain.FundingEvent, now time.Time) SummaryStats {
	weekAgo := now.AddDate(0, 0, -RecentWindowDays)
	stats := SummaryStats{
		TotalCommitments:   len(commitments),
		TotalFundingEvents: len(funding),
		LastUpdated:        now.UTC().Format("2006-01-02 15:04 UTC"),
	}

	for _, c := range commitments {
		if date, err := c.Date(); err == nil && !date.Before(weekAgo) {
			stats.RecentCommitments++
		}
		if c.RelevanceScore > score.HighRelevance {
			stats.HighValueCommitments++
		}
	}

	totalValue := 0.0
	for _, f := range funding {
		if date, err := f.Date(); err == nil && !date.Before(weekAgo) {
			stats.RecentFundingEvents++
		}
		if f.CompetitiveThreat > score.HighThreat {
			stats.CompetitiveThreats++
		}
		if f.PartnershipOpportunity > score.HighPartnership {
			stats.PartnershipOpportunities++
		}
		totalValue += score.ParseAmount(f.Amount)
	}
	stats.TotalFundingValue = fmt.Sprintf("$%.1fM", totalValue)

	return stats
}
