// Package normalize maps heterogeneous raw event records into the
// canonical Commitment and FundingEvent shapes. Every optional field
// is defaulted safely; the only condition that drops a record is a
// missing or unparseable announcement date, and drops are counted
// rather than silently lost.
package normalize

import (
	"time"

	"github.com/irfon92/carbon-dashboard/internal/domain"
	"github.com/irfon92/carbon-dashboard/internal/score"
)

// RawRecord is one loosely-typed event record as produced by a source
// tracker or loaded from a snapshot file. Keys may be absent or carry
// unexpected types; readers must never assume a key exists.
type RawRecord map[string]any

func (r RawRecord) str(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

func (r RawRecord) float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func (r RawRecord) intval(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case float64:
		// encoding/json decodes all numbers as float64.
		return int(v)
	}
	return 0
}

func (r RawRecord) strings(key string) []string {
	out := []string{}
	switch v := r[key].(type) {
	case []string:
		out = append(out, v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func (r RawRecord) hasDate() bool {
	date := r.str("announcement_date")
	if date == "" {
		return false
	}
	_, err := time.Parse(domain.DateFormat, date)
	return err == nil
}

// Commitments normalizes raw commitment records. Records without a
// parseable announcement date are dropped and counted; everything else
// degrades to defaults.
func Commitments(records []RawRecord) ([]domain.Commitment, int) {
	out := make([]domain.Commitment, 0, len(records))
	dropped := 0

	for _, rec := range records {
		if !rec.hasDate() {
			dropped++
			continue
		}
		out = append(out, commitment(rec))
	}

	return out, dropped
}

func commitment(rec RawRecord) domain.Commitment {
	details := rec.str("commitment_details")

	relevance, ok := rec.float("relevance_score")
	if !ok {
		relevance = 0.0
	}

	opportunity := rec.str("dovu_opportunity")
	if opportunity == "" {
		opportunity = score.OpportunityLabel(details)
	}

	commitmentType := rec.str("commitment_type")
	if commitmentType == "" {
		commitmentType = domain.CommitmentOther
	}

	return domain.Commitment{
		Company:               rec.str("company"),
		AnnouncementDate:      rec.str("announcement_date"),
		CommitmentType:        commitmentType,
		TargetYear:            rec.intval("target_year"),
		BaselineYear:          rec.intval("baseline_year"),
		CommitmentDetails:     details,
		CarbonVolumeMentioned: rec.str("carbon_volume_mentioned"),
		SourceURL:             rec.str("source_url"),
		RelevanceScore:        relevance,
		DovuOpportunity:       opportunity,
	}
}

// FundingEvents normalizes raw funding records with the same drop
// contract as Commitments. Stage and business model are derived
// deterministically when the source did not supply them.
func FundingEvents(records []RawRecord) ([]domain.FundingEvent, int) {
	out := make([]domain.FundingEvent, 0, len(records))
	dropped := 0

	for _, rec := range records {
		if !rec.hasDate() {
			dropped++
			continue
		}
		out = append(out, fundingEvent(rec))
	}

	return out, dropped
}

func fundingEvent(rec RawRecord) domain.FundingEvent {
	fundingType := rec.str("funding_type")
	amount := rec.str("amount")

	stage := rec.str("stage")
	if stage == "" {
		stage = score.DetermineStage(fundingType, amount)
	}

	model := rec.str("business_model")
	if model == "" {
		model = score.ClassifyBusinessModel(rec.str("description"))
	}

	relevance, _ := rec.float("dovu_relevance")
	threat, _ := rec.float("competitive_threat")
	partnership, _ := rec.float("partnership_opportunity")

	return domain.FundingEvent{
		Company:                rec.str("company"),
		FundingType:            fundingType,
		Amount:                 amount,
		Valuation:              rec.str("valuation"),
		Investors:              rec.strings("investors"),
		AnnouncementDate:       rec.str("announcement_date"),
		Sector:                 rec.str("sector"),
		BusinessModel:          model,
		Stage:                  stage,
		SourceURL:              rec.str("source_url"),
		DovuRelevance:          relevance,
		CompetitiveThreat:      threat,
		PartnershipOpportunity: partnership,
	}
}
