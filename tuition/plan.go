/*
plan.go - Payment plan generator

PURPOSE:
  Splits a total into N monthly installments with deterministic remainder
  handling and deterministic due dates.

AMOUNTS:
  perInstallment = totalAmount / N, quantized DOWN to the minor unit. The
  LAST installment absorbs the rounding remainder:

    amountN = totalAmount - perInstallment * (N - 1)

  so the installment amounts sum to the total exactly
  (10000 / 3 -> 3333.33, 3333.33, 3333.34). Rounding down keeps the
  remainder non-negative: rounding half-up would let perInstallment
  exceed its exact share and push the last installment below zero
  (0.02 / 4 would otherwise yield 0.01, 0.01, 0.01, -0.01).

DUE DATES:
  dueDate[i] = startDate + i calendar months, with the day-of-month
  clamped to the last day of the target month (see
  finance.Date.AddMonthsClamped). A plan starting Jan 31 lands on
  Feb 28, Mar 31, Apr 30, ...

STATUS:
  Every installment starts "pending". Transitions to paid/overdue are
  owned by the external payment-tracking collaborator.
*/
package tuition

import (
	"github.com/warp/tuition-engine/finance"
)

// GeneratePlan is a pure function: same request, same schedule.
func GeneratePlan(req PaymentPlanRequest) (*PaymentPlanResult, error) {
	if req.InstallmentCount < 2 {
		return nil, finance.Invalid("installment_count", "must be at least 2, got %d", req.InstallmentCount)
	}
	if !req.TotalAmount.IsPositive() {
		return nil, finance.Invalid("total_amount", "must be positive, got %s", req.TotalAmount)
	}
	if req.StartDate.IsZero() {
		return nil, finance.Invalid("start_date", "is required")
	}

	n := req.InstallmentCount
	per := req.TotalAmount.DivInt(n).RoundDown()
	last := req.TotalAmount.Sub(per.MulInt(n - 1))

	installments := make([]Installment, n)
	for i := 0; i < n; i++ {
		amount := per
		if i == n-1 {
			amount = last
		}
		installments[i] = Installment{
			Index:   i + 1,
			Amount:  amount,
			DueDate: req.StartDate.AddMonthsClamped(i),
			Status:  InstallmentPending,
		}
	}

	return &PaymentPlanResult{
		TotalAmount:      req.TotalAmount,
		InstallmentCount: n,
		Installments:     installments,
	}, nil
}
