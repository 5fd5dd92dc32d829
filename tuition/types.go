/*
Package tuition implements the school tuition financial calculation engine:
fee calculation, late-fee accrual, payment-plan generation, and refund
proration.

PURPOSE:
  Four independent, stateless calculators sharing the finance vocabulary
  (Money, Date). Each takes a request and an injected policy table and
  returns an immutable result record. There is no control flow between
  calculators; they are leaves.

KEY CONCEPTS IN THIS FILE (types.go):
  - GradeFeeSchedule: per-grade base fee lookup (tuition, books, lab, activity)
  - DiscountPolicySet: named multiplicative discount rates
  - RefundBandTable: day-banded refund proration, first match wins
  - Result records: FeeCalculationResult, LateFeeResult, PaymentPlanResult,
    RefundResult - value objects created per calculation, never mutated

DESIGN PRINCIPLES:
  1. Tables are injected, immutable dependencies - constructors copy their
     inputs so tests can substitute alternative tables without touching
     calculator code, and in-flight calculations always see a consistent
     snapshot
  2. Calculators hold no state across calls; concurrent use needs no locks
  3. Validation happens before any computation; there is no partial result

USAGE:
  calc := tuition.NewFeeCalculator(tuition.DefaultGradeFeeSchedule(), tuition.DefaultDiscountPolicies())
  result, err := calc.Calculate("Grade 10", "none", nil)

SEE ALSO:
  - tables.go: Default preset tables
  - fees.go, latefee.go, plan.go, refund.go: The calculators
  - store.go: Calculation history collaborator contract
*/
package tuition

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/tuition-engine/finance"
)

// =============================================================================
// GRADE FEE SCHEDULE - Per-grade base fee lookup
// =============================================================================

// GradeLevel identifies a school-year cohort, e.g. "Grade 10".
type GradeLevel string

// BaseFees are the standard charges for one grade level.
type BaseFees struct {
	Tuition  finance.Money
	Books    finance.Money
	Lab      finance.Money
	Activity finance.Money
}

// Subtotal sums the four base charges.
func (b BaseFees) Subtotal() finance.Money {
	return b.Tuition.Add(b.Books).Add(b.Lab).Add(b.Activity)
}

// GradeFeeSchedule maps grade levels to their base fees. Immutable after
// construction.
type GradeFeeSchedule struct {
	fees map[GradeLevel]BaseFees
}

// NewGradeFeeSchedule copies the given mapping into an immutable schedule.
func NewGradeFeeSchedule(fees map[GradeLevel]BaseFees) GradeFeeSchedule {
	copied := make(map[GradeLevel]BaseFees, len(fees))
	for grade, b := range fees {
		copied[grade] = b
	}
	return GradeFeeSchedule{fees: copied}
}

// Lookup resolves a grade level to its base fees.
func (s GradeFeeSchedule) Lookup(grade GradeLevel) (BaseFees, bool) {
	b, ok := s.fees[grade]
	return b, ok
}

// Grades returns all grade levels in lexical order, for stable listings.
func (s GradeFeeSchedule) Grades() []GradeLevel {
	grades := make([]GradeLevel, 0, len(s.fees))
	for g := range s.fees {
		grades = append(grades, g)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i] < grades[j] })
	return grades
}

// =============================================================================
// DISCOUNT POLICIES - Named multiplicative rates
// =============================================================================

// DiscountPolicy is a named rate applied multiplicatively to a subtotal.
// Rate is in [0, 1]; 0 means no discount.
type DiscountPolicy struct {
	Key   string
	Label string
	Rate  decimal.Decimal
}

// DiscountPolicySet is an immutable keyed collection of discount policies.
type DiscountPolicySet struct {
	byKey map[string]DiscountPolicy
	order []string
}

// NewDiscountPolicySet copies the given policies, preserving order for
// listings. A later policy with a duplicate key replaces the earlier one.
func NewDiscountPolicySet(policies []DiscountPolicy) DiscountPolicySet {
	set := DiscountPolicySet{byKey: make(map[string]DiscountPolicy, len(policies))}
	for _, p := range policies {
		if _, exists := set.byKey[p.Key]; !exists {
			set.order = append(set.order, p.Key)
		}
		set.byKey[p.Key] = p
	}
	return set
}

// Lookup resolves a policy key.
func (s DiscountPolicySet) Lookup(key string) (DiscountPolicy, bool) {
	p, ok := s.byKey[key]
	return p, ok
}

// Policies returns all policies in definition order.
func (s DiscountPolicySet) Policies() []DiscountPolicy {
	out := make([]DiscountPolicy, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byKey[key])
	}
	return out
}

// =============================================================================
// FEE CALCULATION - Request pieces and result record
// =============================================================================

// AdditionalFeeLine is a caller-supplied extra charge. Names need not be
// unique; the list is unordered.
type AdditionalFeeLine struct {
	Name  string
	Price finance.Money
}

// FeeCalculationResult is the immutable outcome of one fee calculation.
// Snapshots of the inputs are included so the record is self-contained
// for the export and history collaborators.
type FeeCalculationResult struct {
	GradeLevel          GradeLevel
	BaseFees            BaseFees
	AdditionalFees      []AdditionalFeeLine
	Subtotal            finance.Money
	AdditionalTotal     finance.Money
	TotalBeforeDiscount finance.Money
	DiscountKey         string
	DiscountLabel       string
	DiscountRate        decimal.Decimal
	DiscountAmount      finance.Money
	FinalTotal          finance.Money
	ComputedAt          time.Time
}

// =============================================================================
// LATE FEES
// =============================================================================

// RateType selects how the daily late-fee rate is interpreted.
type RateType string

const (
	// RatePercentage: rate is a percent of the original amount per day.
	RatePercentage RateType = "percentage"
	// RateFlat: rate is a fixed amount per day.
	RateFlat RateType = "flat"
)

type LateFeeRequest struct {
	OriginalAmount finance.Money
	OverdueDays    int
	RateType       RateType
	Rate           decimal.Decimal
}

type LateFeeResult struct {
	OriginalAmount finance.Money
	OverdueDays    int
	RateType       RateType
	Rate           decimal.Decimal
	LateFeeAmount  finance.Money
	TotalAmount    finance.Money
}

// =============================================================================
// PAYMENT PLANS
// =============================================================================

type PaymentPlanRequest struct {
	TotalAmount      finance.Money
	InstallmentCount int
	StartDate        finance.Date
}

// InstallmentStatus tracks payment state. The generator always emits
// "pending"; transitions to paid/overdue are owned by the external
// payment-tracking collaborator.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

// Installment is one scheduled partial payment. Index is 1-based.
type Installment struct {
	Index   int
	Amount  finance.Money
	DueDate finance.Date
	Status  InstallmentStatus
}

// PaymentPlanResult holds the generated schedule. Invariant: the
// installment amounts sum to TotalAmount exactly.
type PaymentPlanResult struct {
	TotalAmount      finance.Money
	InstallmentCount int
	Installments     []Installment
}

// =============================================================================
// REFUNDS - Policy, band table, request, result
// =============================================================================

// RefundPolicy selects how a refund is computed.
type RefundPolicy string

const (
	RefundFull     RefundPolicy = "full"
	RefundNone     RefundPolicy = "none"
	RefundProrated RefundPolicy = "prorated"
)

// RefundBand grants RefundPercent when the elapsed day count is at most
// MaxDaysInclusive. Percent is in [0, 100].
type RefundBand struct {
	MaxDaysInclusive int
	RefundPercent    decimal.Decimal
}

// RefundBandTable is an ordered band list evaluated ascending; the first
// satisfied band wins, with an implicit terminal 0% beyond the last band.
// Immutable after construction.
type RefundBandTable struct {
	bands []RefundBand
}

// NewRefundBandTable copies and validates the bands: strictly ascending
// day boundaries and percents within [0, 100].
func NewRefundBandTable(bands []RefundBand) (RefundBandTable, error) {
	copied := make([]RefundBand, len(bands))
	copy(copied, bands)
	hundred := decimal.NewFromInt(100)
	for i, b := range copied {
		if b.MaxDaysInclusive < 0 {
			return RefundBandTable{}, finance.Invalid("refund_bands", "band %d has negative day boundary %d", i, b.MaxDaysInclusive)
		}
		if i > 0 && b.MaxDaysInclusive <= copied[i-1].MaxDaysInclusive {
			return RefundBandTable{}, finance.Invalid("refund_bands", "band boundaries must be strictly ascending (band %d: %d after %d)", i, b.MaxDaysInclusive, copied[i-1].MaxDaysInclusive)
		}
		if b.RefundPercent.IsNegative() || b.RefundPercent.GreaterThan(hundred) {
			return RefundBandTable{}, finance.Invalid("refund_bands", "band %d percent %s outside [0, 100]", i, b.RefundPercent)
		}
	}
	return RefundBandTable{bands: copied}, nil
}

// Resolve returns the refund percent for an elapsed day count. Boundaries
// are inclusive of the upper bound: exactly 30 days falls in the <=30
// band. Beyond the last band the refund is 0.
func (t RefundBandTable) Resolve(days int) decimal.Decimal {
	for _, b := range t.bands {
		if days <= b.MaxDaysInclusive {
			return b.RefundPercent
		}
	}
	return decimal.Zero
}

// Bands returns a copy of the band list for listings.
func (t RefundBandTable) Bands() []RefundBand {
	out := make([]RefundBand, len(t.bands))
	copy(out, t.bands)
	return out
}

type RefundRequest struct {
	OriginalAmount finance.Money
	EnrollmentDate finance.Date
	WithdrawalDate finance.Date
	Policy         RefundPolicy
}

type RefundResult struct {
	OriginalAmount      finance.Money
	DaysSinceEnrollment int
	Policy              RefundPolicy
	RefundPercent       decimal.Decimal
	RefundAmount        finance.Money
	NonRefundableAmount finance.Money
}
