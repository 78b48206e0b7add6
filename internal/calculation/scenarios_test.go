package calculation

import (
	"context"
	"testing"

	"github.com/futureproof/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	engine := NewEngine()
	base := engineTestConfig()

	baseRun, err := engine.Run(context.Background(), base)
	require.NoError(t, err)

	variants := []Variant{
		{Name: "unchanged"},
		{
			Name: "save more",
			Apply: func(c *domain.SimulationConfig) {
				c.MonthlyContribution = c.MonthlyContribution.Add(decimal.NewFromInt(500))
			},
		},
		{
			Name: "cut target",
			Apply: func(c *domain.SimulationConfig) {
				for m := range c.TargetMonthlyReal {
					c.TargetMonthlyReal[m] = c.TargetMonthlyReal[m].Mul(decimal.NewFromFloat(0.5))
				}
			},
		},
	}

	results, err := engine.Compare(context.Background(), base, variants)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "unchanged", results[0].Name)
	assert.True(t, results[0].Summary.SuccessRate.Equal(baseRun.Summary.SuccessRate),
		"a variant with no overrides must reproduce the base run")

	// Variants must not leak edits back into the base configuration.
	assert.True(t, base.MonthlyContribution.Equal(decimal.NewFromInt(500)))
	assert.True(t, base.TargetMonthlyReal[100].Equal(decimal.NewFromInt(1000)))
}

func TestCompareSurfacesVariantErrors(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Compare(context.Background(), engineTestConfig(), []Variant{
		{
			Name:  "broken",
			Apply: func(c *domain.SimulationConfig) { c.NumPaths = 0 },
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
