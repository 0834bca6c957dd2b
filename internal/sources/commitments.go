package sources

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/irfon92/carbon-dashboard/internal/normalize"
)

// Corporate sustainability news sources monitored for commitment
// announcements.
var commitmentSources = []string{
	"https://www.environmentalleader.com/category/carbon-management/",
	"https://www.greenbiz.com/collection/13031/carbon-management",
	"https://sustainabilitymag.com/carbon-management",
	"https://www.carbonbrief.org/tag/business",
}

// CommitmentTracker monitors corporate announcements, press releases,
// and sustainability reports for carbon commitments.
type CommitmentTracker struct {
	fetcher *fetcher
}

// NewCommitmentTracker creates a tracker rate-limited to one request
// every two seconds across its sources.
func NewCommitmentTracker() *CommitmentTracker {
	return &CommitmentTracker{fetcher: newFetcher("corporate-commitments", 0.5)}
}

func (t *CommitmentTracker) Name() string { return "corporate-commitments" }

// Collect visits each news source and extracts commitment records.
// Extraction is a stub: pages are fetched but no records are parsed
// out of them yet. A source failure skips that source, never the
// whole collection.
func (t *CommitmentTracker) Collect(ctx context.Context) ([]normalize.RawRecord, error) {
	records := []normalize.RawRecord{}

	for _, url := range commitmentSources {
		body, err := t.fetcher.get(ctx, url)
		if err != nil {
			log.Warn().Err(err).Str("source", url).Msg("commitment source unavailable")
			continue
		}
		records = append(records, t.extract(body)...)
	}

	return records, nil
}

// extract would parse commitment announcements out of a source page.
// TODO(irfon): wire up the article parser once the extraction rules
// from the shared-intel notes are finalized.
func (t *CommitmentTracker) extract(_ []byte) []normalize.RawRecord {
	return nil
}
