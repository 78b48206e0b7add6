package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/futureproof/retirement-planner/internal/calculation"
	"github.com/futureproof/retirement-planner/internal/domain"
	"github.com/futureproof/retirement-planner/pkg/money"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ConsoleReport renders a human-readable run summary: success odds,
// wealth bands at retirement and plan end, and the rule-based starting
// income before and after tax at retirement-year brackets.
func ConsoleReport(cfg domain.SimulationConfig, s *domain.SimulationSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Simulated %d paths over %d months (seed %d)\n\n", s.NumPaths, cfg.HorizonMonths, s.Seed)
	fmt.Fprintf(&b, "Success rate: %s%%", s.SuccessRate.StringFixed(1))
	if cfg.SuccessCoverage.IsPositive() {
		fmt.Fprintf(&b, "  (meets target in >= %s%% of retirement months)", cfg.SuccessCoverage.Mul(hundred).StringFixed(0))
	}
	b.WriteString("\n\n")

	r := cfg.RetirementMonth
	fmt.Fprintf(&b, "Wealth at retirement (age %s, real): p5 %s / p50 %s / p95 %s\n",
		s.Ages[r].StringFixed(1),
		money.FromDecimal(s.WealthP5[r]).Whole(),
		money.FromDecimal(s.WealthP50[r]).Whole(),
		money.FromDecimal(s.WealthP95[r]).Whole(),
	)
	last := cfg.HorizonMonths
	fmt.Fprintf(&b, "Wealth at plan end (age %s, real):   p5 %s / p50 %s / p95 %s\n\n",
		s.Ages[last].StringFixed(1),
		money.FromDecimal(s.WealthP5[last]).Whole(),
		money.FromDecimal(s.WealthP50[last]).Whole(),
		money.FromDecimal(s.WealthP95[last]).Whole(),
	)

	// Rule-based starting income from median wealth at retirement,
	// taxed at retirement-year brackets.
	grossRule := s.WealthP50[r].Mul(cfg.WithdrawalRate)
	cpi, _ := cfg.Inflation.Float64()
	factor := decimal.NewFromFloat(math.Pow(1+cpi, float64(r)/12.0))
	netRule := calculation.NetFromGross(grossRule, calculation.IndexSpec(cfg.Tax, factor))
	fmt.Fprintf(&b, "Rule-based starting income (%s%%/yr of median pot, real): %s gross, %s net\n",
		cfg.WithdrawalRate.Mul(hundred).StringFixed(1),
		money.FromDecimal(grossRule).Whole(),
		money.FromDecimal(netRule).Whole(),
	)
	fmt.Fprintf(&b, "Target income at retirement (real, annual): %s\n", money.FromDecimal(targetAtRetirement(cfg, s)).Whole())
	fmt.Fprintf(&b, "Coverage of target months: p5 %s / p50 %s / p95 %s\n",
		s.CoverageP5.StringFixed(2), s.CoverageP50.StringFixed(2), s.CoverageP95.StringFixed(2))

	return b.String()
}

// targetAtRetirement picks the first nonzero annual target at or after
// the retirement month.
func targetAtRetirement(cfg domain.SimulationConfig, s *domain.SimulationSummary) decimal.Decimal {
	for m := cfg.RetirementMonth; m < len(s.TargetAnnualReal); m++ {
		if s.TargetAnnualReal[m].IsPositive() {
			return s.TargetAnnualReal[m]
		}
	}
	return decimal.Zero
}
