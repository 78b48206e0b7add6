package calculation

import (
	"github.com/futureproof/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// grossSearchCeiling bounds the bisection in GrossForNet. Any realistic
// withdrawal sits far below it; a net target no amount of gross can
// reach within the bound saturates to the bound instead of failing.
var grossSearchCeiling = decimal.NewFromInt(2_000_000_000)

// grossSearchIterations gives sub-cent convergence over the ceiling:
// 2e9 / 2^70 is far below a cent.
const grossSearchIterations = 70

var two = decimal.NewFromInt(2)

// effectiveAllowance applies the allowance taper: above the taper
// threshold the allowance shrinks by TaperRatio per unit of gross,
// floored at zero (UK-style £1 lost per £2 over £100k).
func effectiveAllowance(gross decimal.Decimal, spec domain.TaxSpec) decimal.Decimal {
	if spec.TaperStart == nil || gross.LessThanOrEqual(*spec.TaperStart) {
		return spec.Allowance
	}
	reduction := gross.Sub(*spec.TaperStart).Mul(spec.TaperRatio)
	allowance := spec.Allowance.Sub(reduction)
	if allowance.IsNegative() {
		return decimal.Zero
	}
	return allowance
}

// TaxDue computes the income tax on a gross amount under spec: taxable
// income above the (tapered) allowance is walked through the marginal
// brackets in order, the unbounded top bracket absorbs the remainder,
// and any flat levy applies to the whole taxable amount.
func TaxDue(gross decimal.Decimal, spec domain.TaxSpec) decimal.Decimal {
	if gross.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	taxable := gross.Sub(effectiveAllowance(gross, spec))
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	tax := decimal.Zero
	consumed := decimal.Zero
	remaining := taxable
	for _, bracket := range spec.Brackets {
		if !remaining.IsPositive() {
			break
		}
		width := remaining
		if bracket.Upper != nil {
			bandWidth := bracket.Upper.Sub(consumed)
			if bandWidth.IsNegative() {
				bandWidth = decimal.Zero
			}
			if bandWidth.LessThan(width) {
				width = bandWidth
			}
		}
		tax = tax.Add(width.Mul(bracket.Rate))
		consumed = consumed.Add(width)
		remaining = remaining.Sub(width)
	}

	if spec.LevyRate.IsPositive() {
		tax = tax.Add(taxable.Mul(spec.LevyRate))
	}
	return tax
}

// NetFromGross returns gross minus the tax due on it.
func NetFromGross(gross decimal.Decimal, spec domain.TaxSpec) decimal.Decimal {
	return gross.Sub(TaxDue(gross, spec))
}

// GrossForNet inverts NetFromGross by bisection. Net-of-tax income is
// monotonically non-decreasing and piecewise linear in gross, so a
// plain bisection over [0, grossSearchCeiling] converges without
// derivative information. Returns 0 for net targets <= 0 and saturates
// at the ceiling for unreachable targets.
func GrossForNet(netTarget decimal.Decimal, spec domain.TaxSpec) decimal.Decimal {
	if netTarget.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	lo := decimal.Zero
	hi := grossSearchCeiling
	for i := 0; i < grossSearchIterations; i++ {
		mid := lo.Add(hi).Div(two)
		if NetFromGross(mid, spec).LessThan(netTarget) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// IndexSpec scales the spec's monetary fields (allowance, finite
// bracket bounds, taper threshold) by a cumulative inflation factor.
// Rates, the levy and the unbounded top bracket are unchanged.
func IndexSpec(spec domain.TaxSpec, factor decimal.Decimal) domain.TaxSpec {
	out := spec
	out.Allowance = spec.Allowance.Mul(factor)
	out.Brackets = make([]domain.TaxBracket, len(spec.Brackets))
	for i, b := range spec.Brackets {
		indexed := domain.TaxBracket{Rate: b.Rate}
		if b.Upper != nil {
			upper := b.Upper.Mul(factor)
			indexed.Upper = &upper
		}
		out.Brackets[i] = indexed
	}
	if spec.TaperStart != nil {
		taper := spec.TaperStart.Mul(factor)
		out.TaperStart = &taper
	}
	return out
}
