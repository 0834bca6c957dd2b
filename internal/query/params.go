// Package query applies date-window, threshold, and categorical
// filters over immutable snapshots of normalized entities. Invalid
// parameters are clamped or reset rather than rejected: the filtering
// core degrades best-effort and never fails a request.
package query

import "regexp"

// Filter bounds and defaults, defined once to keep them from drifting
// between the commitment and funding paths.
const (
	DefaultDaysBack = 30
	MinDaysBack     = 1
	MaxDaysBack     = 180 // 6-month data ceiling
	MaxResults      = 100
)

// categoricalRe is the only shape a categorical filter value may
// take. Anything else (including injection attempts) silently resets
// to no-filter.
var categoricalRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Params is one request's filter parameter set. The zero value of a
// threshold means "inactive".
type Params struct {
	MinRelevance   float64 `json:"min_relevance"`
	DaysBack       int     `json:"days_back"`
	CommitmentType string  `json:"commitment_type,omitempty"`
	Sector         string  `json:"sector,omitempty"`
	MinThreat      float64 `json:"min_threat"`
	MinPartnership float64 `json:"min_partnership"`
}

// DefaultParams returns the parameter set used when a caller supplies
// nothing.
func DefaultParams() Params {
	return Params{DaysBack: DefaultDaysBack}
}

// Sanitized returns a copy with every parameter forced into its valid
// range: thresholds clamp to [0,1], the day window clamps to
// [1,180], and categorical values that fail validation reset to
// no-filter.
func (p Params) Sanitized() Params {
	p.MinRelevance = clampThreshold(p.MinRelevance)
	p.MinThreat = clampThreshold(p.MinThreat)
	p.MinPartnership = clampThreshold(p.MinPartnership)

	if p.DaysBack < MinDaysBack {
		p.DaysBack = MinDaysBack
	}
	if p.DaysBack > MaxDaysBack {
		p.DaysBack = MaxDaysBack
	}

	if p.CommitmentType != "" && !categoricalRe.MatchString(p.CommitmentType) {
		p.CommitmentType = ""
	}
	if p.Sector != "" && !categoricalRe.MatchString(p.Sector) {
		p.Sector = ""
	}

	return p
}

func clampThreshold(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
