package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/futureproof/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary() *domain.SimulationSummary {
	months := 25
	s := &domain.SimulationSummary{
		Ages:             make([]decimal.Decimal, months),
		WealthP5:         make([]decimal.Decimal, months),
		WealthP50:        make([]decimal.Decimal, months),
		WealthP95:        make([]decimal.Decimal, months),
		WithdrawalP5:     make([]decimal.Decimal, months),
		WithdrawalP50:    make([]decimal.Decimal, months),
		WithdrawalP95:    make([]decimal.Decimal, months),
		TargetAnnualReal: make([]decimal.Decimal, months),
		SuccessRate:      decimal.NewFromFloat(87.5),
		CoverageP5:       decimal.NewFromFloat(0.8),
		CoverageP50:      decimal.NewFromFloat(0.95),
		CoverageP95:      decimal.NewFromInt(1),
		NumPaths:         40,
		Seed:             7,
	}
	for m := 0; m < months; m++ {
		s.Ages[m] = decimal.NewFromFloat(60 + float64(m)/12.0)
		s.WealthP5[m] = decimal.NewFromInt(int64(90000 - m*100))
		s.WealthP50[m] = decimal.NewFromInt(int64(100000 - m*100))
		s.WealthP95[m] = decimal.NewFromInt(int64(110000 - m*100))
		s.WithdrawalP50[m] = decimal.NewFromInt(1000)
		s.TargetAnnualReal[m] = decimal.NewFromInt(15000)
	}
	return s
}

func TestMedianSeriesCSV(t *testing.T) {
	data, err := MedianSeriesCSV(testSummary())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 26, "header plus one row per month")

	assert.Equal(t, []string{"age", "wealth_median_real", "income_median_real_annual"}, records[0])
	assert.Equal(t, "100000.00", records[1][1])
	assert.Equal(t, "12000.00", records[1][2], "1000/month annualized")
}

func TestConfigJSON(t *testing.T) {
	data, err := ConfigJSON(map[string]int{"paths": 1000})
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1000, decoded["paths"])
}

func TestConsoleReport(t *testing.T) {
	cfg := domain.SimulationConfig{
		CurrentAge:      60,
		RetirementMonth: 12,
		HorizonMonths:   24,
		WithdrawalRate:  decimal.NewFromFloat(0.03),
		Inflation:       decimal.NewFromFloat(0.025),
		SuccessCoverage: decimal.NewFromFloat(0.9),
		Tax: domain.TaxSpec{
			Name:     "flat",
			Brackets: []domain.TaxBracket{{Rate: decimal.NewFromFloat(0.20)}},
		},
	}

	report := ConsoleReport(cfg, testSummary())

	assert.True(t, strings.Contains(report, "87.5%"), "success rate missing:\n%s", report)
	assert.True(t, strings.Contains(report, "Wealth at retirement"), "report:\n%s", report)
	assert.True(t, strings.Contains(report, "90%"), "coverage threshold missing:\n%s", report)
	assert.True(t, strings.Contains(report, "15000"), "target income missing:\n%s", report)
}
