/*
store.go - Calculation history collaborator contract

PURPOSE:
  Defines the record type and storage interface for the bounded
  calculation-history list described by the engine's external contract.
  The calculators never touch the store; only the API collaborator
  appends to it after a successful calculation.

RETENTION:
  The store keeps the most recent N records. The engine has no opinion on
  N; it is a property of the store implementation.

SEE ALSO:
  - store/sqlite: SQLite-backed implementation
  - store/memory: In-memory implementation for tests
*/
package tuition

import (
	"context"
	"time"

	"github.com/warp/tuition-engine/finance"
)

// CalculationKind identifies which calculator produced a record.
type CalculationKind string

const (
	KindFee         CalculationKind = "fee"
	KindLateFee     CalculationKind = "late_fee"
	KindPaymentPlan CalculationKind = "payment_plan"
	KindRefund      CalculationKind = "refund"
)

// CalculationRecord is one archived calculation outcome. PayloadJSON is
// the serialized result record as the API collaborator rendered it; the
// remaining fields are denormalized for listing.
type CalculationRecord struct {
	ID          string
	Kind        CalculationKind
	Label       string
	TotalAmount finance.Money
	PayloadJSON string
	CreatedAt   time.Time
}

// HistoryStore persists a bounded most-recent-N list of calculation
// records.
type HistoryStore interface {
	// Append stores a record, pruning the oldest entries beyond the
	// store's retention bound.
	Append(ctx context.Context, rec CalculationRecord) error

	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]CalculationRecord, error)

	// Close releases any underlying resources.
	Close() error
}
