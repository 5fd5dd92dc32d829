/*
fees.go - Fee calculator

PURPOSE:
  Combines per-grade base fees, caller-supplied additional fee lines, and
  a named discount into a final total.

ALGORITHM:
  1. subtotal            = tuition + books + lab + activity for the grade
  2. additionalTotal     = sum of additional line prices
  3. totalBeforeDiscount = subtotal + additionalTotal
  4. discountAmount      = totalBeforeDiscount * policy rate
  5. finalTotal          = totalBeforeDiscount - discountAmount

  The discount amount is quantized to the minor unit and the final total
  is derived by subtraction, so finalTotal + discountAmount always equals
  totalBeforeDiscount exactly. With rate 0 the final total equals the
  total before discount exactly.

SEE ALSO:
  - tables.go: Default schedule and discount policies
*/
package tuition

import (
	"time"

	"github.com/warp/tuition-engine/finance"
)

// FeeCalculator resolves grade and discount lookups against injected
// immutable tables. It holds no state across calls and is safe for
// concurrent use.
type FeeCalculator struct {
	schedule  GradeFeeSchedule
	discounts DiscountPolicySet
}

func NewFeeCalculator(schedule GradeFeeSchedule, discounts DiscountPolicySet) *FeeCalculator {
	return &FeeCalculator{schedule: schedule, discounts: discounts}
}

// Calculate produces a FeeCalculationResult for one student's fees.
// The additionalFees list is snapshotted into the result; the caller's
// slice is not retained.
func (c *FeeCalculator) Calculate(grade GradeLevel, discountKey string, additionalFees []AdditionalFeeLine) (*FeeCalculationResult, error) {
	base, ok := c.schedule.Lookup(grade)
	if !ok {
		return nil, &finance.UnknownGradeError{GradeLevel: string(grade)}
	}

	policy, ok := c.discounts.Lookup(discountKey)
	if !ok {
		return nil, &finance.UnknownDiscountError{Key: discountKey}
	}

	additionalTotal := finance.ZeroMoney()
	lines := make([]AdditionalFeeLine, len(additionalFees))
	for i, line := range additionalFees {
		if line.Name == "" {
			return nil, finance.Invalid("additional_fees", "line %d has an empty name", i+1)
		}
		if line.Price.IsNegative() {
			return nil, finance.Invalid("additional_fees", "line %q has negative price %s", line.Name, line.Price)
		}
		lines[i] = line
		additionalTotal = additionalTotal.Add(line.Price)
	}

	subtotal := base.Subtotal()
	totalBeforeDiscount := subtotal.Add(additionalTotal)
	discountAmount := totalBeforeDiscount.MulRate(policy.Rate).Round()
	finalTotal := totalBeforeDiscount.Sub(discountAmount)

	return &FeeCalculationResult{
		GradeLevel:          grade,
		BaseFees:            base,
		AdditionalFees:      lines,
		Subtotal:            subtotal,
		AdditionalTotal:     additionalTotal,
		TotalBeforeDiscount: totalBeforeDiscount,
		DiscountKey:         policy.Key,
		DiscountLabel:       policy.Label,
		DiscountRate:        policy.Rate,
		DiscountAmount:      discountAmount,
		FinalTotal:          finalTotal,
		ComputedAt:          time.Now().UTC(),
	}, nil
}
