// Package alerts derives prioritized, ephemeral notifications and
// aggregate dashboard statistics from the current entity collections.
// Everything here is recomputed per query against an injected "now";
// nothing is stored.
package alerts

import (
	"fmt"
	"sort"
	"time"

	"github.com/irfon92/carbon-dashboard/internal/domain"
	"github.com/irfon92/carbon-dashboard/internal/score"
)

// MaxAlerts caps the returned alert list. The total before truncation
// is reported alongside.
const MaxAlerts = 20

// RecentWindowDays is the recency window for commitment alerts and
// the "recent" summary counts. Threat and partnership alerts carry no
// window: a competitive raise stays alert-worthy regardless of age.
const RecentWindowDays = 7

const threatAction = "Monitor product development and market positioning"
const partnershipAction = "Evaluate integration and partnership potential"

// Derive produces the unified alert list: high-relevance commitments
// from the last 7 days, competitive threats, and partnership
// opportunities, sorted by date descending and truncated to the top
// 20. Returns the truncated list and the count before truncation.
func Derive(commitments []domain.Commitment, funding []domain.FundingEvent, now time.Time) ([]domain.Alert, int) {
	alerts := []domain.Alert{}
	weekAgo := now.AddDate(0, 0, -RecentWindowDays)

	for _, c := range commitments {
		date, err := c.Date()
		if err != nil || date.Before(weekAgo) {
			continue
		}
		if c.RelevanceScore <= score.HighRelevance {
			continue
		}
		alerts = append(alerts, domain.Alert{
			Type:        domain.AlertCommitment,
			Priority:    domain.PriorityHigh,
			Title:       fmt.Sprintf("🎯 High-Value Commitment: %s", c.Company),
			Description: fmt.Sprintf("%s target, relevance score %.2f", c.CommitmentType, c.RelevanceScore),
			Action:      c.DovuOpportunity,
			Date:        c.AnnouncementDate,
			SourceURL:   c.SourceURL,
		})
	}

	for _, f := range funding {
		if f.CompetitiveThreat > score.HighThreat {
			alerts = append(alerts, domain.Alert{
				Type:        domain.AlertThreat,
				Priority:    domain.PriorityUrgent,
				Title:       fmt.Sprintf("⚠️ Competitive Threat: %s", f.Company),
				Description: fmt.Sprintf("%s %s - threat score %.2f", f.FundingType, f.Amount, f.CompetitiveThreat),
				Action:      threatAction,
				Date:        f.AnnouncementDate,
				SourceURL:   f.SourceURL,
			})
		}
	}

	for _, f := range funding {
		if f.PartnershipOpportunity > score.HighPartnership {
			alerts = append(alerts, domain.Alert{
				Type:        domain.AlertPartnership,
				Priority:    domain.PriorityMedium,
				Title:       fmt.Sprintf("🤝 Partnership Opportunity: %s", f.Company),
				Description: fmt.Sprintf("%s - partnership score %.2f", f.BusinessModel, f.PartnershipOpportunity),
				Action:      partnershipAction,
				Date:        f.AnnouncementDate,
				SourceURL:   f.SourceURL,
			})
		}
	}

	// ISO dates sort lexicographically in chronological order, so a
	// plain string compare gives newest-first.
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Date > alerts[j].Date
	})

	total := len(alerts)
	if total > MaxAlerts {
		alerts = alerts[:MaxAlerts]
	}
	return alerts, total
}
