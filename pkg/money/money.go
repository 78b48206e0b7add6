// Package money provides a thin wrapper for formatting monetary
// amounts consistently across report surfaces.
package money

import "github.com/shopspring/decimal"

// Money is a monetary amount with financial precision.
type Money struct {
	decimal.Decimal
}

// FromDecimal wraps an existing decimal amount.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds to cents using half-up rounding.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual.
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// String renders the amount with two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Whole renders the amount rounded to whole currency units.
func (m Money) Whole() string {
	return m.Decimal.Round(0).StringFixed(0)
}
