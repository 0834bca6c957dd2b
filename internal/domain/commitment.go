// Package domain defines the canonical entities of the carbon deal
// intelligence pipeline: corporate commitments, climate-tech funding
// events, and the alerts derived from them.
package domain

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for all announcement dates.
const DateFormat = "2006-01-02"

// Commitment types recognized by the pipeline.
const (
	CommitmentNetZero         = "net-zero"
	CommitmentCarbonNegative  = "carbon-negative"
	CommitmentScopeReductions = "scope-reductions"
	CommitmentCarbonPurchase  = "carbon-purchase"
	CommitmentProcurement     = "procurement"
	CommitmentOther           = "other"
)

// Commitment represents a corporate carbon pledge.
type Commitment struct {
	Company               string  `json:"company" db:"company"`
	AnnouncementDate      string  `json:"announcement_date" db:"announcement_date"`
	CommitmentType        string  `json:"commitment_type" db:"commitment_type"`
	TargetYear            int     `json:"target_year,omitempty" db:"target_year"`
	BaselineYear          int     `json:"baseline_year,omitempty" db:"baseline_year"`
	CommitmentDetails     string  `json:"commitment_details" db:"commitment_details"`
	CarbonVolumeMentioned string  `json:"carbon_volume_mentioned,omitempty" db:"carbon_volume_mentioned"`
	SourceURL             string  `json:"source_url,omitempty" db:"source_url"`
	RelevanceScore        float64 `json:"relevance_score" db:"relevance_score"`
	DovuOpportunity       string  `json:"dovu_opportunity" db:"dovu_opportunity"`
}

// Date parses the announcement date. Entities with unparseable dates
// are excluded during filtering, never treated as fatal.
func (c Commitment) Date() (time.Time, error) {
	return time.Parse(DateFormat, c.AnnouncementDate)
}

// Validate checks the structural invariants of a commitment.
func (c Commitment) Validate() error {
	if c.Company == "" {
		return fmt.Errorf("commitment missing company")
	}
	if _, err := c.Date(); err != nil {
		return fmt.Errorf("invalid announcement_date %q: %w", c.AnnouncementDate, err)
	}
	if c.RelevanceScore < 0 || c.RelevanceScore > 1 {
		return fmt.Errorf("relevance_score %.2f outside [0,1] range", c.RelevanceScore)
	}
	if c.TargetYear != 0 && c.BaselineYear != 0 && c.BaselineYear > c.TargetYear {
		return fmt.Errorf("baseline_year %d after target_year %d", c.BaselineYear, c.TargetYear)
	}
	return nil
}
