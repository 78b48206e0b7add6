package calculation

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
)

// ReturnModel parameterizes the two-asset real return distribution.
// Means and volatilities are annual; Correlation couples the two
// assets' monthly draws.
type ReturnModel struct {
	EquityReturn     decimal.Decimal
	EquityVolatility decimal.Decimal
	BondReturn       decimal.Decimal
	BondVolatility   decimal.Decimal
	Correlation      decimal.Decimal
}

// monthlyParams converts annual mean/vol to monthly under the i.i.d.
// assumption: the mean divides by 12, the vol by sqrt(12).
func monthlyParams(mu, vol decimal.Decimal) (float64, float64) {
	muF, _ := mu.Float64()
	volF, _ := vol.Float64()
	return muF / 12.0, volF / math.Sqrt(12.0)
}

// boxMuller converts two uniform variates into a pair of independent
// standard normal variates.
func boxMuller(u1, u2 float64) (float64, float64) {
	r := math.Sqrt(-2 * math.Log(u1))
	return r * math.Cos(2*math.Pi*u2), r * math.Sin(2*math.Pi*u2)
}

// DrawMonthlyReturns samples `months` correlated monthly real returns
// for the two assets from a bivariate normal distribution. Monthly
// returns are treated as i.i.d. normal — a planning simplification,
// not a trading model. The caller owns rng, so a fixed seed reproduces
// the draw exactly.
func DrawMonthlyReturns(model ReturnModel, months int, rng *rand.Rand) (equity, bond []decimal.Decimal) {
	muE, volE := monthlyParams(model.EquityReturn, model.EquityVolatility)
	muB, volB := monthlyParams(model.BondReturn, model.BondVolatility)
	rho, _ := model.Correlation.Float64()
	// Cholesky factor of the 2x2 correlation matrix.
	residual := math.Sqrt(math.Max(0, 1-rho*rho))

	equity = make([]decimal.Decimal, months)
	bond = make([]decimal.Decimal, months)
	for m := 0; m < months; m++ {
		// 1-Float64() keeps u1 in (0,1] so the log stays finite.
		z1, z2 := boxMuller(1-rng.Float64(), rng.Float64())
		equity[m] = decimal.NewFromFloat(muE + volE*z1)
		bond[m] = decimal.NewFromFloat(muB + volB*(rho*z1+residual*z2))
	}
	return equity, bond
}
