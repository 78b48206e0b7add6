package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSpendingBasketValidate(t *testing.T) {
	basket := SpendingBasket{
		"housing": decimal.NewFromInt(1200),
		"food":    decimal.NewFromInt(350),
	}
	assert.NoError(t, basket.Validate())

	assert.Error(t, SpendingBasket{}.Validate(), "empty basket")
	assert.Error(t, SpendingBasket{"food": decimal.NewFromInt(-1)}.Validate(), "negative amount")
}

func TestSpendingBasketMonthlyTotal(t *testing.T) {
	basket := SpendingBasket{
		"housing": decimal.NewFromInt(1200),
		"food":    decimal.NewFromInt(350),
		"energy":  decimal.NewFromInt(150),
	}
	assert.True(t, basket.MonthlyTotal().Equal(decimal.NewFromInt(1700)))
}

func TestCategoryDriftValidate(t *testing.T) {
	basket := SpendingBasket{"housing": decimal.NewFromInt(1200)}

	assert.NoError(t, CategoryDrift{"housing": decimal.NewFromFloat(0.01)}.Validate(basket))
	assert.Error(t, CategoryDrift{"hovsing": decimal.NewFromFloat(0.01)}.Validate(basket),
		"typoed category must be rejected, not silently ignored")
}
