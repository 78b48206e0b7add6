package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/futureproof/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engineTestConfig is a valid 10-year plan retiring at month 60 with a
// flat 20% tax and a 1000/month real target.
func engineTestConfig() domain.SimulationConfig {
	horizon := 120
	target := make([]decimal.Decimal, horizon+1)
	for m := 60; m <= horizon; m++ {
		target[m] = decimal.NewFromInt(1000)
	}
	return domain.SimulationConfig{
		CurrentAge:          55,
		RetirementMonth:     60,
		HorizonMonths:       horizon,
		InitialAssets:       decimal.NewFromInt(500000),
		MonthlyContribution: decimal.NewFromInt(500),
		ContributionGrowth:  decimal.Zero,
		EquityAllocation:    decimal.NewFromFloat(0.6),
		BondAllocation:      decimal.NewFromFloat(0.4),
		EquityReturn:        decimal.NewFromFloat(0.06),
		EquityVolatility:    decimal.NewFromFloat(0.18),
		BondReturn:          decimal.NewFromFloat(0.01),
		BondVolatility:      decimal.NewFromFloat(0.06),
		Correlation:         decimal.NewFromFloat(0.2),
		AnnualFees:          decimal.NewFromFloat(0.002),
		Inflation:           decimal.Zero,
		TargetMonthlyReal:   target,
		WithdrawalRate:      decimal.NewFromFloat(0.03),
		Policy:              domain.PolicyMeetTarget,
		Legacy:              domain.LegacySpendToZero,
		Tax: domain.TaxSpec{
			Name: "flat",
			Brackets: []domain.TaxBracket{
				{Rate: decimal.NewFromFloat(0.20)},
			},
		},
		NumPaths: 40,
		Seed:     7,
	}
}

func TestRunDeterministicUnderFixedSeed(t *testing.T) {
	engine := NewEngine()
	cfg := engineTestConfig()

	r1, err := engine.Run(context.Background(), cfg)
	require.NoError(t, err)
	r2, err := engine.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, r1.Summary.SuccessRate.Equal(r2.Summary.SuccessRate))
	for m := range r1.Summary.WealthP50 {
		assert.True(t, r1.Summary.WealthP50[m].Equal(r2.Summary.WealthP50[m]),
			"median wealth differs at month %d", m)
		assert.True(t, r1.Summary.WithdrawalP50[m].Equal(r2.Summary.WithdrawalP50[m]),
			"median withdrawal differs at month %d", m)
	}
}

func TestRunZeroVolatilityCollapsesBands(t *testing.T) {
	cfg := engineTestConfig()
	cfg.EquityVolatility = decimal.Zero
	cfg.BondVolatility = decimal.Zero

	result, err := NewEngine().Run(context.Background(), cfg)
	require.NoError(t, err)

	// Every path is identical, so the percentile band has zero width.
	s := result.Summary
	for m := 0; m <= cfg.HorizonMonths; m++ {
		assert.True(t, s.WealthP5[m].Equal(s.WealthP95[m]),
			"wealth band open at month %d: %s vs %s", m, s.WealthP5[m], s.WealthP95[m])
		assert.True(t, s.WithdrawalP5[m].Equal(s.WithdrawalP95[m]),
			"withdrawal band open at month %d", m)
	}
}

func TestRunWealthNeverNegative(t *testing.T) {
	cfg := engineTestConfig()
	cfg.InitialAssets = decimal.NewFromInt(20000) // deplete quickly

	result, err := NewEngine().Run(context.Background(), cfg)
	require.NoError(t, err)

	for i, p := range result.Paths {
		for m, w := range p.Wealth {
			assert.False(t, w.IsNegative(), "path %d month %d wealth %s", i, m, w)
		}
	}
}

func TestRunWithdrawalTiming(t *testing.T) {
	cfg := engineTestConfig()
	cfg.EquityVolatility = decimal.Zero
	cfg.BondVolatility = decimal.Zero

	result, err := NewEngine().Run(context.Background(), cfg)
	require.NoError(t, err)

	p := result.Paths[0]
	for m := 0; m <= cfg.RetirementMonth; m++ {
		assert.True(t, p.Withdrawals[m].IsZero(), "withdrawal before retirement at month %d", m)
	}
	for m := cfg.RetirementMonth + 1; m <= cfg.HorizonMonths; m++ {
		assert.True(t, p.Withdrawals[m].Equal(decimal.NewFromInt(1000)),
			"month %d delivered %s", m, p.Withdrawals[m])
	}
}

func TestRunSuccessClassification(t *testing.T) {
	t.Run("Funded plan succeeds in simple mode", func(t *testing.T) {
		cfg := engineTestConfig()
		cfg.EquityVolatility = decimal.Zero
		cfg.BondVolatility = decimal.Zero

		result, err := NewEngine().Run(context.Background(), cfg)
		require.NoError(t, err)
		assert.True(t, result.Summary.SuccessRate.Equal(decimal.NewFromInt(100)))
	})

	t.Run("Funded plan succeeds in coverage mode", func(t *testing.T) {
		cfg := engineTestConfig()
		cfg.EquityVolatility = decimal.Zero
		cfg.BondVolatility = decimal.Zero
		cfg.SuccessCoverage = decimal.NewFromFloat(0.9)

		result, err := NewEngine().Run(context.Background(), cfg)
		require.NoError(t, err)
		assert.True(t, result.Summary.SuccessRate.Equal(decimal.NewFromInt(100)))
	})

	t.Run("Underfunded plan fails", func(t *testing.T) {
		cfg := engineTestConfig()
		cfg.EquityVolatility = decimal.Zero
		cfg.BondVolatility = decimal.Zero
		cfg.InitialAssets = decimal.NewFromInt(1000)
		cfg.MonthlyContribution = decimal.Zero
		for m := 60; m <= cfg.HorizonMonths; m++ {
			cfg.TargetMonthlyReal[m] = decimal.NewFromInt(5000)
		}

		result, err := NewEngine().Run(context.Background(), cfg)
		require.NoError(t, err)
		assert.True(t, result.Summary.SuccessRate.IsZero(),
			"got %s%%", result.Summary.SuccessRate)
	})

	t.Run("Retirement at horizon reduces to solvency", func(t *testing.T) {
		cfg := engineTestConfig()
		cfg.RetirementMonth = cfg.HorizonMonths
		for m := range cfg.TargetMonthlyReal {
			cfg.TargetMonthlyReal[m] = decimal.Zero
		}

		result, err := NewEngine().Run(context.Background(), cfg)
		require.NoError(t, err)
		assert.True(t, result.Summary.SuccessRate.Equal(decimal.NewFromInt(100)))
	})
}

func TestRunValidatesBeforeSimulating(t *testing.T) {
	cfg := engineTestConfig()
	cfg.NumPaths = 0

	_, err := NewEngine().Run(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Run(ctx, engineTestConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSeedFallback(t *testing.T) {
	SetSeedFunc(func() int64 { return 12345 })
	defer SetSeedFunc(func() int64 { return time.Now().UnixNano() })

	cfg := engineTestConfig()
	cfg.Seed = 0

	result, err := NewEngine().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), result.Summary.Seed)
}

func TestPercentileBand(t *testing.T) {
	values := []decimal.Decimal{
		decimal.NewFromInt(30),
		decimal.NewFromInt(10),
		decimal.NewFromInt(20),
	}
	p5, p50, p95 := percentileBand(values)

	assert.True(t, p50.Equal(decimal.NewFromInt(20)))
	assert.True(t, p5.GreaterThanOrEqual(decimal.NewFromInt(10)))
	assert.True(t, p5.LessThan(p50))
	assert.True(t, p95.GreaterThan(p50))
	assert.True(t, p95.LessThanOrEqual(decimal.NewFromInt(30)))

	single := []decimal.Decimal{decimal.NewFromInt(42)}
	p5, p50, p95 = percentileBand(single)
	assert.True(t, p5.Equal(p50))
	assert.True(t, p50.Equal(p95))
}
