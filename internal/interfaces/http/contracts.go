package http

import (
	"time"

	"github.com/irfon92/carbon-dashboard/internal/alerts"
	"github.com/irfon92/carbon-dashboard/internal/domain"
	"github.com/irfon92/carbon-dashboard/internal/query"
)

// CommitmentsResponse is the /api/commitments payload.
type CommitmentsResponse struct {
	Commitments    []domain.Commitment `json:"commitments"`
	Total          int                 `json:"total"`
	FiltersApplied query.Params        `json:"filters_applied"`
	Generated      time.Time           `json:"generated"`
}

// FundingResponse is the /api/funding payload.
type FundingResponse struct {
	FundingEvents  []domain.FundingEvent `json:"funding_events"`
	Total          int                   `json:"total"`
	FiltersApplied query.Params          `json:"filters_applied"`
	Generated      time.Time             `json:"generated"`
}

// AlertsResponse is the /api/alerts payload. Total counts matches
// before truncation.
type AlertsResponse struct {
	Alerts    []domain.Alert `json:"alerts"`
	Total     int            `json:"total"`
	Generated time.Time      `json:"generated"`
}

// StatsResponse is the /api/stats payload.
type StatsResponse struct {
	Stats     alerts.SummaryStats `json:"stats"`
	Cached    bool                `json:"cached"`
	Generated time.Time           `json:"generated"`
}

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	SnapshotLoaded time.Time `json:"snapshot_loaded"`
	Commitments    int       `json:"commitments"`
	FundingEvents  int       `json:"funding_events"`
	Dropped        int       `json:"dropped"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
