// Package postgres provides an optional long-term archive of ingested
// batches. The JSON snapshot store remains the source of truth for
// queries; the archive exists for offline analysis of how scores and
// commitments evolve across batches.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/irfon92/carbon-dashboard/internal/domain"
)

// ArchiveRepo persists ingestion batches for historical analysis.
type ArchiveRepo interface {
	// ArchiveCommitments inserts a batch of commitments atomically.
	ArchiveCommitments(ctx context.Context, batchDate time.Time, commitments []domain.Commitment) error

	// ArchiveFunding inserts a batch of funding events atomically.
	ArchiveFunding(ctx context.Context, batchDate time.Time, events []domain.FundingEvent) error
}

type archiveRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewArchiveRepo creates a PostgreSQL-backed archive repository.
func NewArchiveRepo(db *sqlx.DB, timeout time.Duration) ArchiveRepo {
	return &archiveRepo{db: db, timeout: timeout}
}

const insertCommitment = `
	INSERT INTO commitment_archive
		(batch_date, company, announcement_date, commitment_type, target_year,
		 baseline_year, commitment_details, carbon_volume_mentioned, source_url,
		 relevance_score, dovu_opportunity)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const insertFunding = `
	INSERT INTO funding_archive
		(batch_date, company, funding_type, amount, valuation, investors,
		 announcement_date, sector, business_model, stage, source_url,
		 dovu_relevance, competitive_threat, partnership_opportunity)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func (r *archiveRepo) ArchiveCommitments(ctx context.Context, batchDate time.Time, commitments []domain.Commitment) error {
	if len(commitments) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range commitments {
		_, err := tx.ExecContext(ctx, insertCommitment,
			batchDate, c.Company, c.AnnouncementDate, c.CommitmentType,
			nullableYear(c.TargetYear), nullableYear(c.BaselineYear),
			c.CommitmentDetails, c.CarbonVolumeMentioned, c.SourceURL,
			c.RelevanceScore, c.DovuOpportunity)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return fmt.Errorf("duplicate commitment for %s: %w", c.Company, err)
			}
			return fmt.Errorf("failed to archive commitment for %s: %w", c.Company, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit commitment archive: %w", err)
	}
	return nil
}

func (r *archiveRepo) ArchiveFunding(ctx context.Context, batchDate time.Time, events []domain.FundingEvent) error {
	if len(events) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	for _, f := range events {
		_, err := tx.ExecContext(ctx, insertFunding,
			batchDate, f.Company, f.FundingType, f.Amount, f.Valuation,
			pq.Array(f.Investors), f.AnnouncementDate, f.Sector,
			f.BusinessModel, f.Stage, f.SourceURL,
			f.DovuRelevance, f.CompetitiveThreat, f.PartnershipOpportunity)
		if err != nil {
			return fmt.Errorf("failed to archive funding event for %s: %w", f.Company, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit funding archive: %w", err)
	}
	return nil
}

// nullableYear maps the zero value to NULL so optional years archive
// as absent rather than year zero.
func nullableYear(year int) any {
	if year == 0 {
		return nil
	}
	return year
}
