package sources

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/irfon92/carbon-dashboard/internal/normalize"
)

// VC and deal-flow sources monitored for climate-tech funding events.
var fundingSources = []string{
	"https://techcrunch.com/category/climate/",
	"https://www.climatetechlist.com/api/companies",
}

// FundingTracker monitors VC funding, acquisitions, and partnerships
// in the carbon and climate space.
type FundingTracker struct {
	fetcher *fetcher
}

// NewFundingTracker creates a tracker rate-limited to one request
// every three seconds across its sources.
func NewFundingTracker() *FundingTracker {
	return &FundingTracker{fetcher: newFetcher("funding-tracker", 1.0/3.0)}
}

func (t *FundingTracker) Name() string { return "funding-tracker" }

// Collect visits each deal-flow source and extracts funding records.
// Extraction is a stub, matching CommitmentTracker.
func (t *FundingTracker) Collect(ctx context.Context) ([]normalize.RawRecord, error) {
	records := []normalize.RawRecord{}

	for _, url := range fundingSources {
		body, err := t.fetcher.get(ctx, url)
		if err != nil {
			log.Warn().Err(err).Str("source", url).Msg("funding source unavailable")
			continue
		}
		records = append(records, t.extract(body)...)
	}

	return records, nil
}

func (t *FundingTracker) extract(_ []byte) []normalize.RawRecord {
	return nil
}
