/*
Package finance provides the shared monetary and calendar vocabulary for
the tuition calculation engine.

PURPOSE:
  This package contains the value types every calculator speaks: exact
  decimal money, day-granularity calendar dates, and the validation error
  taxonomy. It knows nothing about tuition, grades, or policies - those
  live in the tuition package.

KEY CONCEPTS IN THIS FILE (money.go):
  - Money: A decimal amount in a single unit of account
  - Minor unit: 2 decimal places, applied only at quantization points

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point drift
  2. Immutability: Money values are never mutated, operations return new values
  3. Late rounding: Internal arithmetic is exact; rounding to the minor
     unit happens only where an amount becomes an output

USAGE:
  total := finance.NewMoney(15000).Add(finance.NewMoney(2000))
  discounted := total.MulRate(decimal.NewFromFloat(0.10)).Round()

SEE ALSO:
  - calendar.go: Date arithmetic (day differences, month increments)
  - errors.go: Validation error taxonomy
*/
package finance

import (
	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places in the minor unit of
// the single currency in use (e.g. cents).
const MinorUnitPlaces = 2

// =============================================================================
// MONEY - Decimal amount in a single unit of account
// =============================================================================

type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money {
	return Money{Value: decimal.NewFromFloat(value)}
}

func NewMoneyFromInt(value int) Money {
	return Money{Value: decimal.NewFromInt(int64(value))}
}

// ParseMoney parses a decimal string like "3333.34".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Value: d}, nil
}

func ZeroMoney() Money { return Money{Value: decimal.Zero} }

func (m Money) Add(b Money) Money { return Money{Value: m.Value.Add(b.Value)} }
func (m Money) Sub(b Money) Money { return Money{Value: m.Value.Sub(b.Value)} }

// MulRate scales the amount by a dimensionless rate (e.g. a discount rate
// of 0.25 or a fractional percentage).
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{Value: m.Value.Mul(rate)}
}

func (m Money) MulInt(n int) Money {
	return Money{Value: m.Value.Mul(decimal.NewFromInt(int64(n)))}
}

func (m Money) DivInt(n int) Money {
	return Money{Value: m.Value.Div(decimal.NewFromInt(int64(n)))}
}

func (m Money) IsNegative() bool          { return m.Value.IsNegative() }
func (m Money) IsZero() bool              { return m.Value.IsZero() }
func (m Money) IsPositive() bool          { return m.Value.IsPositive() }
func (m Money) Equal(b Money) bool        { return m.Value.Equal(b.Value) }
func (m Money) GreaterThan(b Money) bool  { return m.Value.GreaterThan(b.Value) }
func (m Money) LessThan(b Money) bool     { return m.Value.LessThan(b.Value) }

// Round quantizes to the minor unit. Applied at output boundaries only.
func (m Money) Round() Money {
	return Money{Value: m.Value.Round(MinorUnitPlaces)}
}

// RoundDown quantizes to the minor unit, rounding toward zero. Used where
// a quantized part must never exceed its exact share (installment splits).
func (m Money) RoundDown() Money {
	return Money{Value: m.Value.RoundDown(MinorUnitPlaces)}
}

// Float64 returns the amount as a float64 for presentation layers.
// Callers should Round() first; the conversion itself is lossy.
func (m Money) Float64() float64 {
	f, _ := m.Value.Float64()
	return f
}

// String formats the amount at minor-unit precision, e.g. "3333.34".
func (m Money) String() string {
	return m.Value.StringFixed(MinorUnitPlaces)
}
