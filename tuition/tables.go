/*
tables.go - Default reference tables

PURPOSE:
  The preset grade fee schedule, discount policies, and refund bands the
  engine ships with. These are plain data: the calculators take whichever
  tables they are constructed with, and the factory package can replace
  any of them from JSON configuration.

  Amounts are in the school's single unit of account; there is no
  currency localization.

SEE ALSO:
  - factory/config.go: JSON overrides for these tables
  - types.go: Table type definitions
*/
package tuition

import (
	"github.com/shopspring/decimal"

	"github.com/warp/tuition-engine/finance"
)

// Well-known discount policy keys.
const (
	DiscountNone         = "none"
	DiscountSibling      = "sibling"
	DiscountMerit        = "merit"
	DiscountFinancialAid = "financial_aid"
	DiscountStaffChild   = "staff_child"
)

func baseFees(tuition, books, lab, activity float64) BaseFees {
	return BaseFees{
		Tuition:  finance.NewMoney(tuition),
		Books:    finance.NewMoney(books),
		Lab:      finance.NewMoney(lab),
		Activity: finance.NewMoney(activity),
	}
}

// DefaultGradeFeeSchedule returns the standard per-grade base fees,
// Nursery through Grade 12.
func DefaultGradeFeeSchedule() GradeFeeSchedule {
	return NewGradeFeeSchedule(map[GradeLevel]BaseFees{
		"Nursery":      baseFees(8000, 800, 0, 500),
		"Kindergarten": baseFees(8500, 1000, 0, 500),
		"Grade 1":      baseFees(9000, 1200, 0, 600),
		"Grade 2":      baseFees(9500, 1200, 0, 600),
		"Grade 3":      baseFees(10000, 1300, 200, 600),
		"Grade 4":      baseFees(10500, 1300, 200, 700),
		"Grade 5":      baseFees(11000, 1400, 250, 700),
		"Grade 6":      baseFees(11500, 1500, 300, 800),
		"Grade 7":      baseFees(12500, 1600, 350, 800),
		"Grade 8":      baseFees(13000, 1700, 400, 900),
		"Grade 9":      baseFees(14000, 1800, 450, 900),
		"Grade 10":     baseFees(15000, 2000, 500, 1000),
		"Grade 11":     baseFees(16000, 2200, 600, 1000),
		"Grade 12":     baseFees(17000, 2400, 700, 1100),
	})
}

// DefaultDiscountPolicies returns the standard named discounts. "none"
// carries rate 0 so callers can always pass a policy key.
func DefaultDiscountPolicies() DiscountPolicySet {
	return NewDiscountPolicySet([]DiscountPolicy{
		{Key: DiscountNone, Label: "No Discount", Rate: decimal.Zero},
		{Key: DiscountSibling, Label: "Sibling Discount", Rate: decimal.NewFromFloat(0.10)},
		{Key: DiscountMerit, Label: "Merit Scholarship", Rate: decimal.NewFromFloat(0.25)},
		{Key: DiscountFinancialAid, Label: "Financial Aid", Rate: decimal.NewFromFloat(0.50)},
		{Key: DiscountStaffChild, Label: "Staff Child", Rate: decimal.NewFromFloat(0.75)},
	})
}

// DefaultRefundBands returns the standard proration bands:
// <=30 days 90%, <=60 75%, <=90 50%, <=120 25%, beyond that 0%.
func DefaultRefundBands() RefundBandTable {
	table, err := NewRefundBandTable([]RefundBand{
		{MaxDaysInclusive: 30, RefundPercent: decimal.NewFromInt(90)},
		{MaxDaysInclusive: 60, RefundPercent: decimal.NewFromInt(75)},
		{MaxDaysInclusive: 90, RefundPercent: decimal.NewFromInt(50)},
		{MaxDaysInclusive: 120, RefundPercent: decimal.NewFromInt(25)},
	})
	if err != nil {
		panic(err) // static table, validated by tests
	}
	return table
}
