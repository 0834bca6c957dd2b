package domain

import (
	"fmt"
	"time"
)

// Business model classifications for funded companies.
const (
	ModelMarketplace      = "marketplace"
	ModelSoftwarePlatform = "software-platform"
	ModelServices         = "services"
	ModelHardware         = "hardware"
	ModelOther            = "other"
)

// Company stages derived from funding round and amount.
const (
	StageSeed   = "seed"
	StageGrowth = "growth"
	StageMature = "mature"
	StageExit   = "exit"
)

// FundingEvent represents a funding round, acquisition, or partnership
// in the climate-tech sector, scored along three independent axes.
type FundingEvent struct {
	Company          string   `json:"company" db:"company"`
	FundingType      string   `json:"funding_type" db:"funding_type"`
	Amount           string   `json:"amount,omitempty" db:"amount"`
	Valuation        string   `json:"valuation,omitempty" db:"valuation"`
	Investors        []string `json:"investors" db:"-"`
	AnnouncementDate string   `json:"announcement_date" db:"announcement_date"`
	Sector           string   `json:"sector" db:"sector"`
	BusinessModel    string   `json:"business_model" db:"business_model"`
	Stage            string   `json:"stage" db:"stage"`
	SourceURL        string   `json:"source_url,omitempty" db:"source_url"`

	// Independent [0,1] heuristics: strategic fit, competitive risk,
	// collaboration potential.
	DovuRelevance          float64 `json:"dovu_relevance" db:"dovu_relevance"`
	CompetitiveThreat      float64 `json:"competitive_threat" db:"competitive_threat"`
	PartnershipOpportunity float64 `json:"partnership_opportunity" db:"partnership_opportunity"`
}

// Date parses the announcement date.
func (f FundingEvent) Date() (time.Time, error) {
	return time.Parse(DateFormat, f.AnnouncementDate)
}

// Validate checks the structural invariants of a funding event.
func (f FundingEvent) Validate() error {
	if f.Company == "" {
		return fmt.Errorf("funding event missing company")
	}
	if _, err := f.Date(); err != nil {
		return fmt.Errorf("invalid announcement_date %q: %w", f.AnnouncementDate, err)
	}
	for _, s := range []struct {
		name  string
		value float64
	}{
		{"dovu_relevance", f.DovuRelevance},
		{"competitive_threat", f.CompetitiveThreat},
		{"partnership_opportunity", f.PartnershipOpportunity},
	} {
		if s.value < 0 || s.value > 1 {
			return fmt.Errorf("%s %.2f outside [0,1] range", s.name, s.value)
		}
	}
	return nil
}
