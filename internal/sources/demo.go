package sources

import (
	"time"

	"github.com/irfon92/carbon-dashboard/internal/domain"
	"github.com/irfon92/carbon-dashboard/internal/normalize"
	"github.com/irfon92/carbon-dashboard/internal/score"
)

// DemoCommitments returns a representative batch of commitment
// records for local development and demos, dated relative to now so
// the dashboard windows have something to show.
func DemoCommitments(now time.Time) []normalize.RawRecord {
	day := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).Format(domain.DateFormat)
	}

	return []normalize.RawRecord{
		{
			"company":                 "Microsoft Corporation",
			"announcement_date":       day(2),
			"commitment_type":         domain.CommitmentCarbonNegative,
			"target_year":             2030,
			"commitment_details":      "Microsoft commits to be carbon negative by 2030 and remove all historical emissions by 2050",
			"carbon_volume_mentioned": "16 million tons CO2e annually",
			"relevance_score":         0.85,
			"dovu_opportunity":        score.OpportunitySupplyChain,
			"source_url":              "https://blogs.microsoft.com/blog/2020/01/16/microsoft-will-be-carbon-negative-by-2030/",
		},
		{
			"company":                 "Amazon.com Inc",
			"announcement_date":       day(5),
			"commitment_type":         domain.CommitmentNetZero,
			"target_year":             2040,
			"commitment_details":      "The Climate Pledge: net-zero carbon emissions by 2040, 10 years ahead of Paris Agreement",
			"carbon_volume_mentioned": "44 million tons CO2e baseline",
			"relevance_score":         0.92,
			"dovu_opportunity":        score.OpportunityDefault,
		},
		{
			"company":                 "Walmart Inc",
			"announcement_date":       day(12),
			"commitment_type":         domain.CommitmentScopeReductions,
			"target_year":             2030,
			"commitment_details":      "Reduce Scope 1 and 2 emissions by 35% and Scope 3 emissions by 1 gigaton by 2030",
			"carbon_volume_mentioned": "1 gigaton CO2e scope 3 reductions",
			"relevance_score":         0.78,
			"dovu_opportunity":        score.OpportunitySupplyChain,
		},
		{
			"company":            "Unilever PLC",
			"announcement_date":  day(20),
			"commitment_type":    domain.CommitmentNetZero,
			"target_year":        2039,
			"commitment_details": "Achieve net-zero emissions across value chain by 2039",
			"relevance_score":    0.65,
			"dovu_opportunity":   score.OpportunityRegistry,
		},
		{
			"company":            "IKEA Group",
			"announcement_date":  day(28),
			"commitment_type":    domain.CommitmentCarbonNegative,
			"target_year":        2030,
			"commitment_details": "Become climate positive by 2030 by reducing more greenhouse gases than entire value chain emits",
			"relevance_score":    0.71,
			"dovu_opportunity":   score.OpportunityDefault,
		},
	}
}

// DemoFunding returns a representative batch of funding records,
// scored through the real heuristics so demo data and live data agree.
func DemoFunding(now time.Time) []normalize.RawRecord {
	day := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).Format(domain.DateFormat)
	}

	type seed struct {
		company     string
		fundingType string
		amount      string
		investors   []string
		daysAgo     int
		sector      string
		description string
	}

	seeds := []seed{
		{
			company:     "CarbonChain",
			fundingType: "Series A",
			amount:      "$5M",
			investors:   []string{"Bessemer", "Connect Ventures"},
			daysAgo:     3,
			sector:      "carbon-management",
			description: "Supply chain carbon accounting platform",
		},
		{
			company:     "Pachama",
			fundingType: "Series B",
			amount:      "$55M",
			investors:   []string{"Lowercarbon Capital", "Future Positive"},
			daysAgo:     8,
			sector:      "nature-based-solutions",
			description: "Forest carbon monitoring and verification",
		},
		{
			company:     "Toucan Protocol",
			fundingType: "Seed",
			amount:      "$7.5M",
			investors:   []string{"Variant"},
			daysAgo:     15,
			sector:      "climate-tech",
			description: "Tokenization infrastructure for carbon credit markets on a public carbon platform",
		},
		{
			company:     "Persefoni",
			fundingType: "Series B",
			amount:      "$101M",
			investors:   []string{"Lightspeed", "TPG Rise Fund"},
			daysAgo:     25,
			sector:      "sustainability-software",
			description: "Enterprise carbon accounting and management saas platform",
		},
	}

	records := make([]normalize.RawRecord, 0, len(seeds))
	for _, s := range seeds {
		records = append(records, normalize.RawRecord{
			"company":                 s.company,
			"funding_type":            s.fundingType,
			"amount":                  s.amount,
			"investors":               s.investors,
			"announcement_date":       day(s.daysAgo),
			"sector":                  s.sector,
			"description":             s.description,
			"dovu_relevance":          score.DovuRelevance(s.description, s.sector),
			"competitive_threat":      score.CompetitiveThreat(s.description, s.amount),
			"partnership_opportunity": score.PartnershipOpportunity(s.description),
		})
	}
	return records
}
