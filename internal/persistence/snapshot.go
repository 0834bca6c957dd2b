// Package persistence stores ingestion batches as dated JSON files
// and serves the latest batch as an immutable in-memory snapshot.
// Snapshot replacement is atomic: concurrent readers see either the
// old batch or the new one in full, never a mix.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/irfon92/carbon-dashboard/internal/domain"
	"github.com/irfon92/carbon-dashboard/internal/normalize"
)

// MaxSnapshotRecords caps how many records are loaded from one file,
// guarding against runaway snapshot sizes.
const MaxSnapshotRecords = 1000

const fileDateFormat = "20060102"

// Snapshot is one immutable point-in-time view of the normalized
// entity collections.
type Snapshot struct {
	Commitments []domain.Commitment
	Funding     []domain.FundingEvent
	Dropped     int
	LoadedAt    time.Time
}

// Store manages dated snapshot files under a data directory and holds
// the most recently loaded snapshot behind an atomic pointer.
type Store struct {
	dataDir string
	current atomic.Pointer[Snapshot]
}

// NewStore creates the data directory if needed and returns a store
// with an empty current snapshot.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
	}

	s := &Store{dataDir: dataDir}
	s.current.Store(&Snapshot{
		Commitments: []domain.Commitment{},
		Funding:     []domain.FundingEvent{},
	})
	return s, nil
}

// Current returns the latest loaded snapshot. The returned value is
// immutable; callers must not mutate its slices.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Write persists a batch as dated commitment and funding files. Files
// are written to a temp path and renamed so a crashed write never
// leaves a truncated snapshot behind.
func (s *Store) Write(commitments []domain.Commitment, funding []domain.FundingEvent, now time.Time) error {
	stamp := now.Format(fileDateFormat)

	if err := s.writeJSON(fmt.Sprintf("commitments_%s.json", stamp), commitments); err != nil {
		return err
	}
	if err := s.writeJSON(fmt.Sprintf("funding_%s.json", stamp), funding); err != nil {
		return err
	}
	return nil
}

func (s *Store) writeJSON(name string, v any) error {
	path := filepath.Join(s.dataDir, name)
	tmp := path + ".tmp"

	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode snapshot %s: %w", name, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close snapshot %s: %w", name, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to publish snapshot %s: %w", name, err)
	}
	return nil
}

// Reload reads the newest commitment and funding files, normalizes
// their records, and atomically swaps in the resulting snapshot.
// Missing files yield empty collections, not errors; malformed
// individual records are dropped and counted.
func (s *Store) Reload(now time.Time) (*Snapshot, error) {
	commitmentRecords, err := s.loadLatest("commitments_*.json")
	if err != nil {
		return nil, err
	}
	fundingRecords, err := s.loadLatest("funding_*.json")
	if err != nil {
		return nil, err
	}

	commitments, droppedCommitments := normalize.Commitments(commitmentRecords)
	funding, droppedFunding := normalize.FundingEvents(fundingRecords)

	snapshot := &Snapshot{
		Commitments: commitments,
		Funding:     funding,
		Dropped:     droppedCommitments + droppedFunding,
		LoadedAt:    now,
	}
	s.current.Store(snapshot)

	if snapshot.Dropped > 0 {
		log.Warn().
			Int("dropped", snapshot.Dropped).
			Int("commitments", len(commitments)).
			Int("funding_events", len(funding)).
			Msg("snapshot loaded with dropped records")
	}
	return snapshot, nil
}

// loadLatest returns the records of the most recently modified file
// matching the pattern, or an empty slice when none exists.
func (s *Store) loadLatest(pattern string) ([]normalize.RawRecord, error) {
	matches, err := filepath.Glob(filepath.Join(s.dataDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad snapshot pattern %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return []normalize.RawRecord{}, nil
	}

	latest := ""
	var latestMod time.Time
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = path
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return []normalize.RawRecord{}, nil
	}

	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", latest, err)
	}

	var records []normalize.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", latest, err)
	}

	if len(records) > MaxSnapshotRecords {
		records = records[:MaxSnapshotRecords]
	}
	return records, nil
}
