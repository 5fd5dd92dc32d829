/*
latefee.go - Late fee calculator

PURPOSE:
  Accrues a late fee from an overdue balance, the number of days overdue,
  and a daily rate that is either a percentage of the original amount or
  a flat amount per day.

ACCRUAL RULE:
  Percentage accrual is linear against the ORIGINAL amount - the rate is
  never compounded day over day against a growing balance:

    lateFee = originalAmount * (rate / 100) * overdueDays

  Flat accrual:

    lateFee = rate * overdueDays

  There is no cap on accrual.
*/
package tuition

import (
	"github.com/shopspring/decimal"

	"github.com/warp/tuition-engine/finance"
)

var hundred = decimal.NewFromInt(100)

// CalculateLateFee is a pure function: same request, same result.
func CalculateLateFee(req LateFeeRequest) (*LateFeeResult, error) {
	if req.OverdueDays < 1 {
		return nil, finance.Invalid("overdue_days", "must be at least 1, got %d", req.OverdueDays)
	}
	if req.OriginalAmount.IsNegative() {
		return nil, finance.Invalid("original_amount", "must not be negative, got %s", req.OriginalAmount)
	}
	if req.Rate.IsNegative() {
		return nil, finance.Invalid("rate", "must not be negative, got %s", req.Rate)
	}

	days := decimal.NewFromInt(int64(req.OverdueDays))

	var lateFee finance.Money
	switch req.RateType {
	case RatePercentage:
		lateFee = req.OriginalAmount.MulRate(req.Rate.Div(hundred).Mul(days)).Round()
	case RateFlat:
		lateFee = finance.Money{Value: req.Rate.Mul(days)}.Round()
	default:
		return nil, finance.Invalid("rate_type", "must be %q or %q, got %q", RatePercentage, RateFlat, req.RateType)
	}

	return &LateFeeResult{
		OriginalAmount: req.OriginalAmount,
		OverdueDays:    req.OverdueDays,
		RateType:       req.RateType,
		Rate:           req.Rate,
		LateFeeAmount:  lateFee,
		TotalAmount:    req.OriginalAmount.Add(lateFee),
	}, nil
}
