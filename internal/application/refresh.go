package application

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/irfon92/carbon-dashboard/internal/cache"
	"github.com/irfon92/carbon-dashboard/internal/domain"
	"github.com/irfon92/carbon-dashboard/internal/normalize"
	"github.com/irfon92/carbon-dashboard/internal/persistence"
	"github.com/irfon92/carbon-dashboard/internal/persistence/postgres"
	"github.com/irfon92/carbon-dashboard/internal/sources"
)

// RefreshObserver receives refresh outcomes for monitoring. The HTTP
// layer wires its Prometheus registry in through this.
type RefreshObserver interface {
	RecordRefresh(commitments, funding, dropped int, duration time.Duration)
	RecordRefreshError(stage string)
}

type nopObserver struct{}

func (nopObserver) RecordRefresh(int, int, int, time.Duration) {}
func (nopObserver) RecordRefreshError(string)                  {}

// Refresher runs the full ingestion pass: collect raw records from
// every tracker, normalize them, persist a dated snapshot, reload it
// into memory, then archive and invalidate the stats cache.
type Refresher struct {
	commitmentTrackers []sources.Tracker
	fundingTrackers    []sources.Tracker
	store              *persistence.Store
	archive            postgres.ArchiveRepo
	stats              *cache.StatsCache
	observer           RefreshObserver
}

// NewRefresher wires a refresher. archive may be nil when no database
// is configured; stats may be nil when no cache is configured.
func NewRefresher(
	commitmentTrackers, fundingTrackers []sources.Tracker,
	store *persistence.Store,
	archive postgres.ArchiveRepo,
	stats *cache.StatsCache,
	observer RefreshObserver,
) *Refresher {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Refresher{
		commitmentTrackers: commitmentTrackers,
		fundingTrackers:    fundingTrackers,
		store:              store,
		archive:            archive,
		stats:              stats,
		observer:           observer,
	}
}

// Run executes one refresh pass. Tracker failures degrade the pass
// rather than aborting it; persistence failures abort.
func (r *Refresher) Run(ctx context.Context, now time.Time) (*persistence.Snapshot, error) {
	start := time.Now()

	rawCommitments := r.collect(ctx, r.commitmentTrackers)
	rawFunding := r.collect(ctx, r.fundingTrackers)

	commitments, droppedC := normalize.Commitments(rawCommitments)
	funding, droppedF := normalize.FundingEvents(rawFunding)
	dropped := droppedC + droppedF

	return r.Ingest(ctx, commitments, funding, dropped, now, start)
}

// Seed persists a prepared batch directly, bypassing collection. Used
// by the seed command to load demo data.
func (r *Refresher) Seed(ctx context.Context, raw []normalize.RawRecord, rawFunding []normalize.RawRecord, now time.Time) (*persistence.Snapshot, error) {
	commitments, droppedC := normalize.Commitments(raw)
	funding, droppedF := normalize.FundingEvents(rawFunding)
	return r.Ingest(ctx, commitments, funding, droppedC+droppedF, now, time.Now())
}

// Ingest writes, reloads, archives, and invalidates for one batch.
func (r *Refresher) Ingest(ctx context.Context, commitments []domain.Commitment, funding []domain.FundingEvent, dropped int, now, started time.Time) (*persistence.Snapshot, error) {
	if err := r.store.Write(commitments, funding, now); err != nil {
		r.observer.RecordRefreshError("write")
		return nil, err
	}

	snap, err := r.store.Reload(now)
	if err != nil {
		r.observer.RecordRefreshError("reload")
		return nil, err
	}

	if r.archive != nil {
		if err := r.archive.ArchiveCommitments(ctx, now, snap.Commitments); err != nil {
			r.observer.RecordRefreshError("archive")
			log.Error().Err(err).Msg("commitment archive failed")
		}
		if err := r.archive.ArchiveFunding(ctx, now, snap.Funding); err != nil {
			r.observer.RecordRefreshError("archive")
			log.Error().Err(err).Msg("funding archive failed")
		}
	}

	if err := r.stats.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("stats cache invalidation failed")
	}

	r.observer.RecordRefresh(len(snap.Commitments), len(snap.Funding), dropped, time.Since(started))

	log.Info().
		Int("commitments", len(snap.Commitments)).
		Int("funding_events", len(snap.Funding)).
		Int("dropped", dropped).
		Msg("refresh complete")
	return snap, nil
}

func (r *Refresher) collect(ctx context.Context, trackers []sources.Tracker) []normalize.RawRecord {
	var records []normalize.RawRecord
	for _, t := range trackers {
		batch, err := t.Collect(ctx)
		if err != nil {
			r.observer.RecordRefreshError("collect")
			log.Error().Err(err).Str("tracker", t.Name()).Msg("tracker collection failed")
			continue
		}
		records = append(records, batch...)
	}
	return records
}
