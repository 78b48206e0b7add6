package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SpendingPolicy selects how the monthly retirement income target is set.
type SpendingPolicy string

const (
	// PolicyMeetTarget funds the projected cost-of-living basket.
	PolicyMeetTarget SpendingPolicy = "meet_target"
	// PolicyRuleOnly pays the percentage-of-portfolio rule regardless of need.
	PolicyRuleOnly SpendingPolicy = "rule_only"
	// PolicyLowerOf takes the lower of the basket target and the rule.
	PolicyLowerOf SpendingPolicy = "lower_of"
)

// LegacyMode selects whether withdrawals may consume the starting principal.
type LegacyMode string

const (
	// LegacySpendToZero allows the portfolio to be spent down completely.
	LegacySpendToZero LegacyMode = "spend_to_zero"
	// LegacyPreserveCapital only spends real growth above the initial
	// real principal.
	LegacyPreserveCapital LegacyMode = "preserve_capital"
)

// SimulationConfig is the immutable parameter bundle for one Monte
// Carlo run. All returns and volatilities are annual real rates; all
// monetary amounts are in today's money unless stated otherwise.
type SimulationConfig struct {
	// Timeline. RetirementMonth and HorizonMonths are month indexes
	// counted from now; CurrentAge anchors the age axis for reporting.
	CurrentAge      int
	RetirementMonth int
	HorizonMonths   int

	// Money today.
	InitialAssets       decimal.Decimal
	MonthlyContribution decimal.Decimal
	ContributionGrowth  decimal.Decimal // nominal, per year

	// Two-asset portfolio.
	EquityAllocation decimal.Decimal
	BondAllocation   decimal.Decimal
	EquityReturn     decimal.Decimal
	EquityVolatility decimal.Decimal
	BondReturn       decimal.Decimal
	BondVolatility   decimal.Decimal
	Correlation      decimal.Decimal
	AnnualFees       decimal.Decimal

	// Inflation.
	Inflation decimal.Decimal

	// TargetMonthlyReal is the real monthly spending target per month
	// index, length HorizonMonths+1, zero before retirement.
	TargetMonthlyReal []decimal.Decimal

	// Withdrawal policy.
	WithdrawalRate decimal.Decimal // annual, e.g. 0.03 for the 3% rule
	Policy         SpendingPolicy
	Legacy         LegacyMode

	// Tax schedule at today's price level; the engine indexes it with
	// cumulative inflation as the simulation advances.
	Tax TaxSpec

	// Simulation controls. Seed 0 means a fresh random run.
	// SuccessCoverage > 0 enables coverage-mode success classification;
	// 0 falls back to the terminal-wealth check.
	NumPaths        int
	Seed            int64
	SuccessCoverage decimal.Decimal
}

// Validate rejects configurations the engine cannot sensibly simulate.
// It runs before any simulation work begins.
func (c SimulationConfig) Validate() error {
	one := decimal.NewFromInt(1)

	if c.CurrentAge < 0 {
		return fmt.Errorf("current age cannot be negative")
	}
	if c.HorizonMonths <= 0 {
		return fmt.Errorf("horizon must be at least one month")
	}
	if c.RetirementMonth < 0 {
		return fmt.Errorf("retirement month cannot be negative")
	}
	if c.RetirementMonth > c.HorizonMonths {
		return fmt.Errorf("retirement month %d is beyond the %d-month horizon", c.RetirementMonth, c.HorizonMonths)
	}
	if c.InitialAssets.IsNegative() {
		return fmt.Errorf("initial assets cannot be negative")
	}
	if c.MonthlyContribution.IsNegative() {
		return fmt.Errorf("monthly contribution cannot be negative")
	}
	if c.EquityAllocation.IsNegative() || c.BondAllocation.IsNegative() {
		return fmt.Errorf("asset allocations cannot be negative")
	}
	if !c.EquityAllocation.Add(c.BondAllocation).Equal(one) {
		return fmt.Errorf("asset allocations must sum to 1")
	}
	if c.EquityVolatility.IsNegative() || c.BondVolatility.IsNegative() {
		return fmt.Errorf("volatility cannot be negative")
	}
	if c.Correlation.LessThan(one.Neg()) || c.Correlation.GreaterThan(one) {
		return fmt.Errorf("correlation must be between -1 and 1")
	}
	if c.AnnualFees.IsNegative() || c.AnnualFees.GreaterThanOrEqual(one) {
		return fmt.Errorf("annual fees must be between 0 and 1")
	}
	if c.Inflation.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("inflation cannot be less than -10%% (extreme deflation)")
	}
	if len(c.TargetMonthlyReal) != c.HorizonMonths+1 {
		return fmt.Errorf("target series length %d does not match horizon %d months (+1)", len(c.TargetMonthlyReal), c.HorizonMonths)
	}
	for m, target := range c.TargetMonthlyReal {
		if target.IsNegative() {
			return fmt.Errorf("target series month %d cannot be negative", m)
		}
	}
	if c.WithdrawalRate.IsNegative() || c.WithdrawalRate.GreaterThan(one) {
		return fmt.Errorf("withdrawal rate must be between 0 and 1")
	}
	switch c.Policy {
	case PolicyMeetTarget, PolicyRuleOnly, PolicyLowerOf:
	default:
		return fmt.Errorf("spending policy must be %q, %q or %q", PolicyMeetTarget, PolicyRuleOnly, PolicyLowerOf)
	}
	switch c.Legacy {
	case LegacySpendToZero, LegacyPreserveCapital:
	default:
		return fmt.Errorf("legacy mode must be %q or %q", LegacySpendToZero, LegacyPreserveCapital)
	}
	if err := c.Tax.Validate(); err != nil {
		return err
	}
	if c.NumPaths <= 0 {
		return fmt.Errorf("number of paths must be positive")
	}
	if c.SuccessCoverage.IsNegative() || c.SuccessCoverage.GreaterThan(one) {
		return fmt.Errorf("success coverage must be between 0 and 1")
	}
	return nil
}

// Clone returns a deep copy so scenario variants can edit a
// configuration without touching the base run's slices.
func (c SimulationConfig) Clone() SimulationConfig {
	out := c
	out.TargetMonthlyReal = append([]decimal.Decimal(nil), c.TargetMonthlyReal...)
	out.Tax.Brackets = append([]TaxBracket(nil), c.Tax.Brackets...)
	return out
}
