package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SpendingBasket maps a spending category to its monthly amount in
// today's money.
type SpendingBasket map[string]decimal.Decimal

// CategoryDrift maps a spending category to its annual rate differential
// versus headline inflation. Categories missing from the map drift at 0.
type CategoryDrift map[string]decimal.Decimal

// Validate checks that all basket amounts are non-negative.
func (b SpendingBasket) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("spending basket is empty")
	}
	for cat, amount := range b {
		if amount.IsNegative() {
			return fmt.Errorf("category %q: monthly amount cannot be negative", cat)
		}
	}
	return nil
}

// MonthlyTotal sums the basket's monthly amounts.
func (b SpendingBasket) MonthlyTotal() decimal.Decimal {
	var total decimal.Decimal
	for _, amount := range b {
		total = total.Add(amount)
	}
	return total
}

// Validate checks that every drift key refers to a basket category.
// Silent defaulting of unknown keys hides typos, so mismatches are errors.
func (d CategoryDrift) Validate(basket SpendingBasket) error {
	for cat := range d {
		if _, ok := basket[cat]; !ok {
			return fmt.Errorf("drift for unknown category %q", cat)
		}
	}
	return nil
}

// CategoryYearCost holds the projected cost of one category at one
// future year offset.
type CategoryYearCost struct {
	Year           int             `json:"year"`
	Category       string          `json:"category"`
	MonthlyNominal decimal.Decimal `json:"monthly_nominal"`
	MonthlyReal    decimal.Decimal `json:"monthly_real"`
	AnnualNominal  decimal.Decimal `json:"annual_nominal"`
	AnnualReal     decimal.Decimal `json:"annual_real"`
}

// CostProjection is the category-by-year cost table produced by the
// cost projector. Real values are deflated to today's money.
type CostProjection struct {
	Years int                `json:"years"`
	Rows  []CategoryYearCost `json:"rows"`
}

// YearBasket is the basket total for a single projected year.
type YearBasket struct {
	MonthlyNominal decimal.Decimal `json:"monthly_nominal"`
	MonthlyReal    decimal.Decimal `json:"monthly_real"`
	AnnualNominal  decimal.Decimal `json:"annual_nominal"`
	AnnualReal     decimal.Decimal `json:"annual_real"`
}
