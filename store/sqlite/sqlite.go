/*
Package sqlite provides the SQLite-backed calculation history store.

PURPOSE:
  Implements tuition.HistoryStore using SQLite. The history is a bounded
  most-recent-N list: every append prunes entries beyond the retention
  bound. In production the same pattern applies to PostgreSQL - only
  minor SQL dialect differences.

SCHEMA:
  calculations: one row per archived calculation, with the serialized
  result payload and a few denormalized columns for listing.

RETENTION:
  Keep is fixed at construction. Append inserts, then deletes everything
  older than the newest Keep rows in the same transaction, so readers
  never observe more than Keep + in-flight rows.

CONCURRENCY:
  Uses sync.Mutex for write serialization. SQLite is opened with WAL so
  readers don't block on the single writer.

USAGE:
  store, err := sqlite.New("./data/tuition.db", 200)
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - tuition/store.go: Interface and record definitions
  - store/memory: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/tuition-engine/finance"
	"github.com/warp/tuition-engine/tuition"
)

// DefaultKeep is the retention bound used when New is given keep <= 0.
const DefaultKeep = 200

// Store implements tuition.HistoryStore using SQLite.
type Store struct {
	db   *sql.DB
	keep int
	mu   sync.Mutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database. keep bounds the history to
// the most recent N records; keep <= 0 selects DefaultKeep.
func New(dbPath string, keep int) (*Store, error) {
	if keep <= 0 {
		keep = DefaultKeep
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, keep: keep}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		label TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		payload_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_created_at
		ON calculations(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_calculations_kind
		ON calculations(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores a record and prunes entries beyond the retention bound.
func (s *Store) Append(ctx context.Context, rec tuition.CalculationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO calculations (id, kind, label, total_amount, payload_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		string(rec.Kind),
		rec.Label,
		rec.TotalAmount.String(),
		rec.PayloadJSON,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert calculation: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM calculations WHERE id NOT IN (
			SELECT id FROM calculations ORDER BY created_at DESC, id DESC LIMIT ?
		)`, s.keep)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	return tx.Commit()
}

// ListRecent returns up to limit records, newest first. limit <= 0 or
// beyond the retention bound returns everything retained.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]tuition.CalculationRecord, error) {
	if limit <= 0 || limit > s.keep {
		limit = s.keep
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, label, total_amount, payload_json, created_at
		FROM calculations
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculations: %w", err)
	}
	defer rows.Close()

	var records []tuition.CalculationRecord
	for rows.Next() {
		var rec tuition.CalculationRecord
		var kind, total, createdAt string
		if err := rows.Scan(&rec.ID, &kind, &rec.Label, &total, &rec.PayloadJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		rec.Kind = tuition.CalculationKind(kind)
		if rec.TotalAmount, err = finance.ParseMoney(total); err != nil {
			return nil, fmt.Errorf("corrupt total_amount %q: %w", total, err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("corrupt created_at %q: %w", createdAt, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Compile-time check that Store implements the history contract.
var _ tuition.HistoryStore = (*Store)(nil)
