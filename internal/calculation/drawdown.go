package calculation

import (
	"github.com/futureproof/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// DrawdownPolicy computes the desired real net withdrawal for a month
// of retirement. RuleMonthly is fixed at simulation start from the
// initial portfolio value and never recomputed from current wealth;
// recomputing it each year is the other common convention, but fixing
// it makes the rule income insensitive to sequence-of-returns luck.
type DrawdownPolicy struct {
	Kind          domain.SpendingPolicy
	Legacy        domain.LegacyMode
	RuleMonthly   decimal.Decimal
	InitialWealth decimal.Decimal
}

// NewDrawdownPolicy derives the fixed monthly rule amount from the
// initial portfolio and the annual withdrawal rate.
func NewDrawdownPolicy(cfg domain.SimulationConfig) DrawdownPolicy {
	return DrawdownPolicy{
		Kind:          cfg.Policy,
		Legacy:        cfg.Legacy,
		RuleMonthly:   cfg.InitialAssets.Mul(cfg.WithdrawalRate).Div(twelve),
		InitialWealth: cfg.InitialAssets,
	}
}

// DesiredNet returns the net real amount the policy wants to withdraw
// this month, given the basket target and current wealth. The result
// is never negative. Under preserve-capital the amount is capped at
// the real growth above the starting principal; market losses can
// still push wealth below the principal, but withdrawals never do.
func (p DrawdownPolicy) DesiredNet(targetMonthly, wealthNow decimal.Decimal) decimal.Decimal {
	var desired decimal.Decimal
	switch p.Kind {
	case domain.PolicyRuleOnly:
		desired = p.RuleMonthly
	case domain.PolicyLowerOf:
		desired = targetMonthly
		if p.RuleMonthly.LessThan(desired) {
			desired = p.RuleMonthly
		}
	default: // domain.PolicyMeetTarget
		desired = targetMonthly
	}

	if p.Legacy == domain.LegacyPreserveCapital {
		allowable := wealthNow.Sub(p.InitialWealth)
		if allowable.IsNegative() {
			allowable = decimal.Zero
		}
		if allowable.LessThan(desired) {
			desired = allowable
		}
	}

	if desired.IsNegative() {
		return decimal.Zero
	}
	return desired
}
