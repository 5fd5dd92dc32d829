/*
refund.go - Refund calculator

PURPOSE:
  Computes a withdrawal refund from elapsed enrollment days and a policy:

    full     -> 100%
    none     -> 0%
    prorated -> banded lookup against an injected RefundBandTable

  Elapsed days are whole calendar days (truncated, never rounded), so a
  partial-day difference still resolves to a whole day count. Band
  boundaries are inclusive of the upper bound: exactly 30 days falls in
  the <=30 band.

SEE ALSO:
  - types.go: RefundBandTable and its Resolve semantics
  - tables.go: DefaultRefundBands
*/
package tuition

import (
	"github.com/shopspring/decimal"

	"github.com/warp/tuition-engine/finance"
)

// RefundCalculator evaluates refund requests against an injected band
// table. Stateless and safe for concurrent use.
type RefundCalculator struct {
	bands RefundBandTable
}

func NewRefundCalculator(bands RefundBandTable) *RefundCalculator {
	return &RefundCalculator{bands: bands}
}

// Calculate produces a RefundResult. This is a single evaluation, not a
// multi-step process; there is no state machine.
func (c *RefundCalculator) Calculate(req RefundRequest) (*RefundResult, error) {
	if req.OriginalAmount.IsNegative() {
		return nil, finance.Invalid("original_amount", "must not be negative, got %s", req.OriginalAmount)
	}
	if req.WithdrawalDate.Before(req.EnrollmentDate) {
		return nil, finance.Invalid("withdrawal_date", "%s is before enrollment date %s", req.WithdrawalDate, req.EnrollmentDate)
	}

	days := finance.DaysBetween(req.EnrollmentDate, req.WithdrawalDate)

	var percent decimal.Decimal
	switch req.Policy {
	case RefundFull:
		percent = hundred
	case RefundNone:
		percent = decimal.Zero
	case RefundProrated:
		percent = c.bands.Resolve(days)
	default:
		return nil, finance.Invalid("policy", "must be %q, %q or %q, got %q", RefundFull, RefundNone, RefundProrated, req.Policy)
	}

	refund := req.OriginalAmount.MulRate(percent.Div(hundred)).Round()

	return &RefundResult{
		OriginalAmount:      req.OriginalAmount,
		DaysSinceEnrollment: days,
		Policy:              req.Policy,
		RefundPercent:       percent,
		RefundAmount:        refund,
		NonRefundableAmount: req.OriginalAmount.Sub(refund),
	}, nil
}
