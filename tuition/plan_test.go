package tuition_test

import (
	"testing"
	"time"

	"github.com/warp/tuition-engine/finance"
	"github.com/warp/tuition-engine/tuition"
)

// =============================================================================
// PAYMENT PLAN TESTS
// =============================================================================

func TestGeneratePlan_EvenSplit(t *testing.T) {
	// GIVEN: 9000 over 3 installments starting 2025-03-01
	// WHEN: Generating the plan
	// THEN: Three installments of 3000 due Mar 1, Apr 1, May 1

	result, err := tuition.GeneratePlan(tuition.PaymentPlanRequest{
		TotalAmount:      money(9000),
		InstallmentCount: 3,
		StartDate:        date(2025, time.March, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Installments) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(result.Installments))
	}

	wantDates := []finance.Date{
		date(2025, time.March, 1),
		date(2025, time.April, 1),
		date(2025, time.May, 1),
	}
	for i, inst := range result.Installments {
		if inst.Index != i+1 {
			t.Errorf("installment %d: expected index %d, got %d", i, i+1, inst.Index)
		}
		if !inst.Amount.Equal(money(3000)) {
			t.Errorf("installment %d: expected 3000, got %s", i+1, inst.Amount)
		}
		if !inst.DueDate.Equal(wantDates[i]) {
			t.Errorf("installment %d: expected due %s, got %s", i+1, wantDates[i], inst.DueDate)
		}
		if inst.Status != tuition.InstallmentPending {
			t.Errorf("installment %d: expected pending status, got %s", i+1, inst.Status)
		}
	}
}

func TestGeneratePlan_LastInstallmentAbsorbsRemainder(t *testing.T) {
	// GIVEN: 10000 over 3 installments
	// WHEN: Generating the plan
	// THEN: 3333.33, 3333.33, 3333.34 - the last absorbs the remainder

	result, err := tuition.GeneratePlan(tuition.PaymentPlanRequest{
		TotalAmount:      money(10000),
		InstallmentCount: 3,
		StartDate:        date(2025, time.March, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"3333.33", "3333.33", "3333.34"}
	for i, inst := range result.Installments {
		if got := inst.Amount.String(); got != want[i] {
			t.Errorf("installment %d: expected %s, got %s", i+1, want[i], got)
		}
	}
}

func TestGeneratePlan_SumEqualsTotalExactly(t *testing.T) {
	// GIVEN: Awkward totals over various installment counts
	// WHEN: Generating plans
	// THEN: Installments always sum to the total exactly - no rounding
	//       leakage - and no installment ever goes negative

	totals := []float64{10000, 9999.99, 100.01, 7, 15000.55, 0.03, 0.02}
	counts := []int{2, 3, 4, 5, 7, 11, 12}

	for _, total := range totals {
		for _, count := range counts {
			result, err := tuition.GeneratePlan(tuition.PaymentPlanRequest{
				TotalAmount:      money(total),
				InstallmentCount: count,
				StartDate:        date(2025, time.September, 1),
			})
			if err != nil {
				t.Fatalf("%v/%d: unexpected error: %v", total, count, err)
			}
			if len(result.Installments) != count {
				t.Fatalf("%v/%d: expected %d installments, got %d", total, count, count, len(result.Installments))
			}

			sum := finance.ZeroMoney()
			for _, inst := range result.Installments {
				if inst.Amount.IsNegative() {
					t.Errorf("%v/%d: installment %d is negative: %s", total, count, inst.Index, inst.Amount)
				}
				sum = sum.Add(inst.Amount)
			}
			if !sum.Equal(result.TotalAmount) {
				t.Errorf("%v/%d: installments sum to %s, expected %s", total, count, sum, result.TotalAmount)
			}
		}
	}
}

func TestGeneratePlan_HalfCentShareRoundsDown(t *testing.T) {
	// GIVEN: 0.02 over 4 installments, an exact half-cent per share
	// WHEN: Generating the plan
	// THEN: Shares round down to 0.00 and the last installment carries the
	//       whole 0.02 - rounding half-up here would produce a negative
	//       final installment

	result, err := tuition.GeneratePlan(tuition.PaymentPlanRequest{
		TotalAmount:      money(0.02),
		InstallmentCount: 4,
		StartDate:        date(2025, time.March, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"0.00", "0.00", "0.00", "0.02"}
	for i, inst := range result.Installments {
		if inst.Amount.IsNegative() {
			t.Errorf("installment %d is negative: %s", inst.Index, inst.Amount)
		}
		if got := inst.Amount.String(); got != want[i] {
			t.Errorf("installment %d: expected %s, got %s", i+1, want[i], got)
		}
	}
}

func TestGeneratePlan_MonthEndClamping(t *testing.T) {
	// GIVEN: A plan starting Jan 31, 2025
	// WHEN: Generating 4 installments
	// THEN: Due dates clamp to month ends: Jan 31, Feb 28, Mar 31, Apr 30

	result, err := tuition.GeneratePlan(tuition.PaymentPlanRequest{
		TotalAmount:      money(4000),
		InstallmentCount: 4,
		StartDate:        date(2025, time.January, 31),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDates := []finance.Date{
		date(2025, time.January, 31),
		date(2025, time.February, 28),
		date(2025, time.March, 31),
		date(2025, time.April, 30),
	}
	for i, inst := range result.Installments {
		if !inst.DueDate.Equal(wantDates[i]) {
			t.Errorf("installment %d: expected due %s, got %s", i+1, wantDates[i], inst.DueDate)
		}
	}
}

func TestGeneratePlan_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  tuition.PaymentPlanRequest
	}{
		{"single installment", tuition.PaymentPlanRequest{TotalAmount: money(1000), InstallmentCount: 1, StartDate: date(2025, time.March, 1)}},
		{"zero installments", tuition.PaymentPlanRequest{TotalAmount: money(1000), InstallmentCount: 0, StartDate: date(2025, time.March, 1)}},
		{"zero total", tuition.PaymentPlanRequest{TotalAmount: finance.ZeroMoney(), InstallmentCount: 3, StartDate: date(2025, time.March, 1)}},
		{"negative total", tuition.PaymentPlanRequest{TotalAmount: money(-100), InstallmentCount: 3, StartDate: date(2025, time.March, 1)}},
		{"missing start date", tuition.PaymentPlanRequest{TotalAmount: money(1000), InstallmentCount: 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tuition.GeneratePlan(tc.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !finance.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
