/*
Package memory provides an in-memory calculation history store for tests.

PURPOSE:
  Implements tuition.HistoryStore with a mutex-guarded slice. Same
  retention semantics as the SQLite store: most recent N records kept,
  oldest pruned on append.

USAGE:
  store := memory.New(50)
  handler := api.NewHandler(tables, store)
*/
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/warp/tuition-engine/tuition"
)

// Store implements tuition.HistoryStore in memory.
type Store struct {
	mu      sync.Mutex
	keep    int
	records []tuition.CalculationRecord // newest first
}

// New creates a store retaining the most recent keep records.
func New(keep int) *Store {
	if keep <= 0 {
		keep = 200
	}
	return &Store{keep: keep}
}

func (s *Store) Append(ctx context.Context, rec tuition.CalculationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.records = append([]tuition.CalculationRecord{rec}, s.records...)
	if len(s.records) > s.keep {
		s.records = s.records[:s.keep]
	}
	return nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]tuition.CalculationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]tuition.CalculationRecord, limit)
	copy(out, s.records[:limit])
	return out, nil
}

func (s *Store) Close() error { return nil }

var _ tuition.HistoryStore = (*Store)(nil)
