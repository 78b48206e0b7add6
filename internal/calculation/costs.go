package calculation

import (
	"math"
	"sort"

	"github.com/futureproof/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// ProjectCosts inflates each basket category across year offsets
// 0..years inclusive. Nominal cost grows at (CPI + drift) per year;
// real cost deflates the nominal by (1+CPI)^year, so only the drift
// shows up in today's-money terms. Inputs are assumed validated.
func ProjectCosts(basket domain.SpendingBasket, cpi decimal.Decimal, drifts domain.CategoryDrift, years int) domain.CostProjection {
	cpiF, _ := cpi.Float64()

	cats := make([]string, 0, len(basket))
	for cat := range basket {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	rows := make([]domain.CategoryYearCost, 0, len(cats)*(years+1))
	for _, cat := range cats {
		monthlyNow := basket[cat]
		driftF := 0.0
		if d, ok := drifts[cat]; ok {
			driftF, _ = d.Float64()
		}
		for year := 0; year <= years; year++ {
			nominalMult := decimal.NewFromFloat(math.Pow(1+cpiF+driftF, float64(year)))
			realMult := decimal.NewFromFloat(math.Pow(1+cpiF, float64(year)))

			monthlyNominal := monthlyNow.Mul(nominalMult)
			monthlyReal := monthlyNominal.Div(realMult)
			rows = append(rows, domain.CategoryYearCost{
				Year:           year,
				Category:       cat,
				MonthlyNominal: monthlyNominal,
				MonthlyReal:    monthlyReal,
				AnnualNominal:  monthlyNominal.Mul(twelve),
				AnnualReal:     monthlyReal.Mul(twelve),
			})
		}
	}
	return domain.CostProjection{Years: years, Rows: rows}
}

// SummarizeYear sums the projection across categories for one year.
func SummarizeYear(proj domain.CostProjection, year int) domain.YearBasket {
	var out domain.YearBasket
	for _, row := range proj.Rows {
		if row.Year != year {
			continue
		}
		out.MonthlyNominal = out.MonthlyNominal.Add(row.MonthlyNominal)
		out.MonthlyReal = out.MonthlyReal.Add(row.MonthlyReal)
		out.AnnualNominal = out.AnnualNominal.Add(row.AnnualNominal)
		out.AnnualReal = out.AnnualReal.Add(row.AnnualReal)
	}
	return out
}

// TargetSeries expands a cost projection into the real monthly spending
// target the engine consumes: piecewise-constant within each projected
// year, zeroed before the retirement month, length horizonMonths+1.
func TargetSeries(proj domain.CostProjection, horizonMonths, retirementMonth int) []decimal.Decimal {
	target := make([]decimal.Decimal, horizonMonths+1)
	for year := 0; year <= proj.Years; year++ {
		monthly := SummarizeYear(proj, year).AnnualReal.Div(twelve)
		start := year * 12
		for m := start; m < start+12 && m <= horizonMonths; m++ {
			target[m] = monthly
		}
	}
	for m := 0; m < retirementMonth && m <= horizonMonths; m++ {
		target[m] = decimal.Zero
	}
	return target
}
