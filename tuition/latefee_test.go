package tuition_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/tuition-engine/finance"
	"github.com/warp/tuition-engine/tuition"
)

func rate(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// =============================================================================
// LATE FEE TESTS
// =============================================================================

func TestCalculateLateFee_PercentageScenario(t *testing.T) {
	// GIVEN: 15000 overdue for 10 days at 5% per day
	// WHEN: Accruing the late fee
	// THEN: 15000 * 0.05 * 10 = 7500; total 22500

	result, err := tuition.CalculateLateFee(tuition.LateFeeRequest{
		OriginalAmount: money(15000),
		OverdueDays:    10,
		RateType:       tuition.RatePercentage,
		Rate:           rate(5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.LateFeeAmount.Equal(money(7500)) {
		t.Errorf("expected late fee 7500, got %s", result.LateFeeAmount)
	}
	if !result.TotalAmount.Equal(money(22500)) {
		t.Errorf("expected total 22500, got %s", result.TotalAmount)
	}
}

func TestCalculateLateFee_FlatRate(t *testing.T) {
	// GIVEN: 15 days overdue at a flat 25 per day
	// WHEN: Accruing
	// THEN: 375, regardless of the original amount

	result, err := tuition.CalculateLateFee(tuition.LateFeeRequest{
		OriginalAmount: money(800),
		OverdueDays:    15,
		RateType:       tuition.RateFlat,
		Rate:           rate(25),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.LateFeeAmount.Equal(money(375)) {
		t.Errorf("expected late fee 375, got %s", result.LateFeeAmount)
	}
	if !result.TotalAmount.Equal(money(1175)) {
		t.Errorf("expected total 1175, got %s", result.TotalAmount)
	}
}

func TestCalculateLateFee_LinearNotCompounding(t *testing.T) {
	// GIVEN: The same request at 1 and 2 days overdue
	// WHEN: Accruing at 10% per day
	// THEN: Day 2 is exactly twice day 1 - the rate applies to the
	//       original amount, never the growing balance

	day1, err := tuition.CalculateLateFee(tuition.LateFeeRequest{
		OriginalAmount: money(1000), OverdueDays: 1, RateType: tuition.RatePercentage, Rate: rate(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day2, err := tuition.CalculateLateFee(tuition.LateFeeRequest{
		OriginalAmount: money(1000), OverdueDays: 2, RateType: tuition.RatePercentage, Rate: rate(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !day1.LateFeeAmount.Equal(money(100)) {
		t.Errorf("expected day-1 fee 100, got %s", day1.LateFeeAmount)
	}
	if !day2.LateFeeAmount.Equal(money(200)) {
		t.Errorf("expected day-2 fee 200 (linear), got %s", day2.LateFeeAmount)
	}
}

func TestCalculateLateFee_MonotonicInOverdueDays(t *testing.T) {
	// GIVEN: A fixed rate and amount
	// WHEN: Increasing overdue days
	// THEN: The late fee never decreases, and total == original + fee

	previous := finance.ZeroMoney()
	for days := 1; days <= 60; days++ {
		result, err := tuition.CalculateLateFee(tuition.LateFeeRequest{
			OriginalAmount: money(3333.33),
			OverdueDays:    days,
			RateType:       tuition.RatePercentage,
			Rate:           rate(1.5),
		})
		if err != nil {
			t.Fatalf("day %d: unexpected error: %v", days, err)
		}
		if result.LateFeeAmount.LessThan(previous) {
			t.Fatalf("day %d: fee %s decreased from %s", days, result.LateFeeAmount, previous)
		}
		if !result.TotalAmount.Equal(result.OriginalAmount.Add(result.LateFeeAmount)) {
			t.Fatalf("day %d: total %s != original + fee", days, result.TotalAmount)
		}
		previous = result.LateFeeAmount
	}
}

func TestCalculateLateFee_ZeroRate(t *testing.T) {
	// Rate 0 is valid: no fee accrues.
	result, err := tuition.CalculateLateFee(tuition.LateFeeRequest{
		OriginalAmount: money(500), OverdueDays: 30, RateType: tuition.RatePercentage, Rate: decimal.Zero,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.LateFeeAmount.IsZero() {
		t.Errorf("expected zero fee, got %s", result.LateFeeAmount)
	}
	if !result.TotalAmount.Equal(money(500)) {
		t.Errorf("expected total 500, got %s", result.TotalAmount)
	}
}

func TestCalculateLateFee_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  tuition.LateFeeRequest
	}{
		{"zero overdue days", tuition.LateFeeRequest{OriginalAmount: money(100), OverdueDays: 0, RateType: tuition.RatePercentage, Rate: rate(5)}},
		{"negative overdue days", tuition.LateFeeRequest{OriginalAmount: money(100), OverdueDays: -3, RateType: tuition.RateFlat, Rate: rate(5)}},
		{"negative amount", tuition.LateFeeRequest{OriginalAmount: money(-100), OverdueDays: 5, RateType: tuition.RatePercentage, Rate: rate(5)}},
		{"negative rate", tuition.LateFeeRequest{OriginalAmount: money(100), OverdueDays: 5, RateType: tuition.RateFlat, Rate: rate(-1)}},
		{"unknown rate type", tuition.LateFeeRequest{OriginalAmount: money(100), OverdueDays: 5, RateType: "hourly", Rate: rate(5)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tuition.CalculateLateFee(tc.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !finance.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
