package alerts

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfon92/carbon-dashboard/internal/domain"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func isoDaysAgo(days int) string {
	return testNow.AddDate(0, 0, -days).Format(domain.DateFormat)
}

func TestDerive_CommitmentAlertsWindowAndThreshold(t *testing.T) {
	commitments := []domain.Commitment{
		{Company: "Fresh", AnnouncementDate: isoDaysAgo(2), RelevanceScore: 0.85,
			CommitmentType: "net-zero", DovuOpportunity: "do the thing"},
		{Company: "TooOld", AnnouncementDate: isoDaysAgo(10), RelevanceScore: 0.85},
		{Company: "TooLow", AnnouncementDate: isoDaysAgo(2), RelevanceScore: 0.5},
		{Company: "AtThreshold", AnnouncementDate: isoDaysAgo(2), RelevanceScore: 0.6},
	}

	alerts, total := Derive(commitments, nil, testNow)
	require.Len(t, alerts, 1)
	assert.Equal(t, 1, total)

	a := alerts[0]
	assert.Equal(t, domain.AlertCommitment, a.Type)
	assert.Equal(t, domain.PriorityHigh, a.Priority)
	assert.Contains(t, a.Title, "Fresh")
	assert.Contains(t, a.Description, "net-zero")
	assert.Equal(t, "do the thing", a.Action)
}

func TestDerive_ThreatAlertsAreNotDateWindowed(t *testing.T) {
	funding := []domain.FundingEvent{
		{Company: "OldThreat", AnnouncementDate: isoDaysAgo(400),
			FundingType: "Series B", Amount: "$55M", CompetitiveThreat: 0.95},
	}
	commitments := []domain.Commitment{
		{Company: "OldCommitment", AnnouncementDate: isoDaysAgo(400), RelevanceScore: 0.95},
	}

	alerts, total := Derive(commitments, funding, testNow)
	require.Len(t, alerts, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, domain.AlertThreat, alerts[0].Type)
	assert.Equal(t, domain.PriorityUrgent, alerts[0].Priority)
}

func TestDerive_PartnershipAlerts(t *testing.T) {
	funding := []domain.FundingEvent{
		{Company: "Friend", AnnouncementDate: isoDaysAgo(30),
			BusinessModel: domain.ModelSoftwarePlatform, PartnershipOpportunity: 0.7},
		{Company: "NotQuite", AnnouncementDate: isoDaysAgo(30), PartnershipOpportunity: 0.6},
	}

	alerts, total := Derive(nil, funding, testNow)
	require.Len(t, alerts, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, domain.AlertPartnership, alerts[0].Type)
	assert.Equal(t, domain.PriorityMedium, alerts[0].Priority)
	assert.Contains(t, alerts[0].Description, domain.ModelSoftwarePlatform)
}

func TestDerive_SortedByDateDescending(t *testing.T) {
	funding := []domain.FundingEvent{
		{Company: "Jan", AnnouncementDate: "2026-01-01", CompetitiveThreat: 0.9},
		{Company: "Mar", AnnouncementDate: "2026-03-01", CompetitiveThreat: 0.9},
		{Company: "Feb", AnnouncementDate: "2026-02-01", CompetitiveThreat: 0.9},
	}

	alerts, _ := Derive(nil, funding, testNow)
	require.Len(t, alerts, 3)
	assert.Equal(t, "2026-03-01", alerts[0].Date)
	assert.Equal(t, "2026-02-01", alerts[1].Date)
	assert.Equal(t, "2026-01-01", alerts[2].Date)
}

func TestDerive_TruncatesToTopTwenty(t *testing.T) {
	funding := make([]domain.FundingEvent, 0, 30)
	for i := 0; i < 30; i++ {
		funding = append(funding, domain.FundingEvent{
			Company:           fmt.Sprintf("Threat-%02d", i),
			AnnouncementDate:  isoDaysAgo(i),
			CompetitiveThreat: 0.9,
		})
	}

	alerts, total := Derive(nil, funding, testNow)
	assert.Len(t, alerts, MaxAlerts)
	assert.Equal(t, 30, total)
	assert.GreaterOrEqual(t, total, len(alerts))
	// Newest survives truncation.
	assert.Contains(t, alerts[0].Title, "Threat-00")
}

func TestDerive_UnparseableCommitmentDatesSkipped(t *testing.T) {
	commitments := []domain.Commitment{
		{Company: "Broken", AnnouncementDate: "yesterday", RelevanceScore: 0.9},
	}
	alerts, total := Derive(commitments, nil, testNow)
	assert.Empty(t, alerts)
	assert.Zero(t, total)
}
