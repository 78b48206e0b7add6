package calculation

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/futureproof/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// defaultWorkers caps concurrent path computations.
const defaultWorkers = 10

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Engine runs Monte Carlo retirement simulations. It holds no state
// between runs: each run is a pure function of its configuration and
// seed, so one Engine may serve many runs.
type Engine struct {
	Logger  Logger
	Workers int
}

// NewEngine creates an engine with a no-op logger and default
// concurrency.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}, Workers: defaultWorkers}
}

// SetLogger sets the logger used for per-run diagnostics.
func (e *Engine) SetLogger(l Logger) {
	if l != nil {
		e.Logger = l
	}
}

// monthlyFactors holds per-run constants shared by all paths.
type monthlyFactors struct {
	fee          decimal.Decimal   // (1-annual_fee)^(1/12)
	contribGrow  decimal.Decimal   // (1+contrib_growth)^(1/12)
	cumInflation []decimal.Decimal // (1+cpi)^(m/12) per month index
	taxSpecs     []domain.TaxSpec  // tax spec indexed by elapsed year
}

func newMonthlyFactors(cfg domain.SimulationConfig) monthlyFactors {
	feesF, _ := cfg.AnnualFees.Float64()
	growthF, _ := cfg.ContributionGrowth.Float64()
	cpiF, _ := cfg.Inflation.Float64()

	cum := make([]decimal.Decimal, cfg.HorizonMonths+1)
	for m := 0; m <= cfg.HorizonMonths; m++ {
		cum[m] = decimal.NewFromFloat(math.Pow(1+cpiF, float64(m)/12.0))
	}

	// The bracket factor bumps by (1+cpi) every 12 simulated months,
	// so month m uses the spec indexed for year m/12.
	years := cfg.HorizonMonths/12 + 1
	specs := make([]domain.TaxSpec, years)
	for y := 0; y < years; y++ {
		factor := decimal.NewFromFloat(math.Pow(1+cpiF, float64(y)))
		specs[y] = IndexSpec(cfg.Tax, factor)
	}

	return monthlyFactors{
		fee:          decimal.NewFromFloat(math.Pow(1-feesF, 1.0/12.0)),
		contribGrow:  decimal.NewFromFloat(math.Pow(1+growthF, 1.0/12.0)),
		cumInflation: cum,
		taxSpecs:     specs,
	}
}

// Run executes the simulation. It validates the configuration before
// any work begins, computes paths in parallel with per-path sub-seeds
// drawn from a single master generator (so a fixed seed reproduces the
// whole run), and honors ctx cancellation between paths.
func (e *Engine) Run(ctx context.Context, cfg domain.SimulationConfig) (*domain.SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = seedFunc()
	}
	master := rand.New(rand.NewSource(seed))
	pathSeeds := make([]int64, cfg.NumPaths)
	for i := range pathSeeds {
		pathSeeds[i] = master.Int63()
	}

	factors := newMonthlyFactors(cfg)
	policy := NewDrawdownPolicy(cfg)
	model := ReturnModel{
		EquityReturn:     cfg.EquityReturn,
		EquityVolatility: cfg.EquityVolatility,
		BondReturn:       cfg.BondReturn,
		BondVolatility:   cfg.BondVolatility,
		Correlation:      cfg.Correlation,
	}

	e.Logger.Debugf("starting run: %d paths, %d months, seed %d", cfg.NumPaths, cfg.HorizonMonths, seed)

	workers := e.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > cfg.NumPaths {
		workers = cfg.NumPaths
	}

	paths := make([]domain.PathResult, cfg.NumPaths)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				paths[idx] = runPath(cfg, factors, policy, model, pathSeeds[idx])
			}
		}()
	}

feed:
	for i := 0; i < cfg.NumPaths; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		e.Logger.Warnf("run cancelled: %v", err)
		return nil, err
	}

	summary := summarize(cfg, paths, seed)
	return &domain.SimulationResult{Summary: summary, Paths: paths}, nil
}

// runPath simulates one future at monthly resolution. Wealth is real
// (today's money) and floored at zero after every return and
// withdrawal step: the portfolio cannot borrow.
func runPath(cfg domain.SimulationConfig, factors monthlyFactors, policy DrawdownPolicy, model ReturnModel, seed int64) domain.PathResult {
	rng := rand.New(rand.NewSource(seed))
	equityR, bondR := DrawMonthlyReturns(model, cfg.HorizonMonths, rng)

	wealth := make([]decimal.Decimal, cfg.HorizonMonths+1)
	withdrawals := make([]decimal.Decimal, cfg.HorizonMonths+1)
	wealth[0] = cfg.InitialAssets

	w := cfg.InitialAssets
	contrib := cfg.MonthlyContribution
	coveredMonths, retiredMonths := 0, 0
	anyWithdrawal := false

	// GrossForNet is the expensive step; the target and the indexed
	// spec only change yearly, so reuse the last inversion when its
	// inputs are unchanged.
	var lastDesired, lastGross decimal.Decimal
	lastSpecYear := -1

	for m := 1; m <= cfg.HorizonMonths; m++ {
		if m <= cfg.RetirementMonth {
			// Contributions grow nominally and are deflated into
			// today's money before entering the (real) portfolio.
			contrib = contrib.Mul(factors.contribGrow).Round(8)
			w = w.Add(contrib.Div(factors.cumInflation[m]))
		}

		portReturn := cfg.EquityAllocation.Mul(equityR[m-1]).Add(cfg.BondAllocation.Mul(bondR[m-1]))
		w = w.Mul(one.Add(portReturn))
		if w.IsNegative() {
			w = decimal.Zero
		}
		w = w.Mul(factors.fee).Round(8)

		if m > cfg.RetirementMonth {
			retiredMonths++
			target := cfg.TargetMonthlyReal[m]
			desired := policy.DesiredNet(target, w)

			specYear := m / 12
			if specYear != lastSpecYear || !desired.Equal(lastDesired) {
				lastGross = GrossForNet(desired.Mul(twelve), factors.taxSpecs[specYear]).Div(twelve)
				lastDesired = desired
				lastSpecYear = specYear
			}
			gross := lastGross
			if gross.GreaterThan(w) {
				gross = w
			}
			delivered := desired
			if gross.LessThan(delivered) {
				delivered = gross
			}

			w = w.Sub(gross)
			if w.IsNegative() {
				w = decimal.Zero
			}
			withdrawals[m] = delivered
			if delivered.IsPositive() {
				anyWithdrawal = true
			}
			if delivered.GreaterThanOrEqual(target) {
				coveredMonths++
			}
		}

		wealth[m] = w
	}

	coverage := one
	if retiredMonths > 0 {
		coverage = decimal.NewFromInt(int64(coveredMonths)).Div(decimal.NewFromInt(int64(retiredMonths)))
	}

	return domain.PathResult{
		Wealth:      wealth,
		Withdrawals: withdrawals,
		Coverage:    coverage,
		Success:     classifySuccess(cfg, w, coverage, anyWithdrawal, retiredMonths),
	}
}

// classifySuccess applies coverage mode when a coverage threshold is
// configured, the simple terminal check otherwise. With retirement at
// or beyond the horizon no decumulation happens and success reduces to
// ending non-negative.
func classifySuccess(cfg domain.SimulationConfig, finalWealth, coverage decimal.Decimal, anyWithdrawal bool, retiredMonths int) bool {
	if retiredMonths == 0 {
		return !finalWealth.IsNegative()
	}
	if cfg.SuccessCoverage.IsPositive() {
		return coverage.GreaterThanOrEqual(cfg.SuccessCoverage) && !finalWealth.IsNegative()
	}
	return finalWealth.IsPositive() && anyWithdrawal
}

// summarize stacks all paths and takes percentiles per month column.
// No single path is "the median path": each month's percentile is
// computed independently across paths.
func summarize(cfg domain.SimulationConfig, paths []domain.PathResult, seed int64) domain.SimulationSummary {
	months := cfg.HorizonMonths + 1
	s := domain.SimulationSummary{
		Ages:             make([]decimal.Decimal, months),
		WealthP5:         make([]decimal.Decimal, months),
		WealthP50:        make([]decimal.Decimal, months),
		WealthP95:        make([]decimal.Decimal, months),
		WithdrawalP5:     make([]decimal.Decimal, months),
		WithdrawalP50:    make([]decimal.Decimal, months),
		WithdrawalP95:    make([]decimal.Decimal, months),
		TargetAnnualReal: make([]decimal.Decimal, months),
		NumPaths:         len(paths),
		Seed:             seed,
	}

	successCount := 0
	for _, p := range paths {
		if p.Success {
			successCount++
		}
	}
	s.SuccessRate = decimal.NewFromInt(int64(successCount)).
		Div(decimal.NewFromInt(int64(len(paths)))).
		Mul(hundred)

	column := make([]decimal.Decimal, len(paths))
	for m := 0; m < months; m++ {
		s.Ages[m] = decimal.NewFromFloat(float64(cfg.CurrentAge) + float64(m)/12.0)
		s.TargetAnnualReal[m] = cfg.TargetMonthlyReal[m].Mul(twelve)

		for i, p := range paths {
			column[i] = p.Wealth[m]
		}
		s.WealthP5[m], s.WealthP50[m], s.WealthP95[m] = percentileBand(column)

		for i, p := range paths {
			column[i] = p.Withdrawals[m]
		}
		s.WithdrawalP5[m], s.WithdrawalP50[m], s.WithdrawalP95[m] = percentileBand(column)
	}

	for i, p := range paths {
		column[i] = p.Coverage
	}
	s.CoverageP5, s.CoverageP50, s.CoverageP95 = percentileBand(column)

	return s
}

// percentileBand sorts values in place and returns the 5th, 50th and
// 95th percentiles with linear interpolation between ranks.
func percentileBand(values []decimal.Decimal) (p5, p50, p95 decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
	return percentile(values, 5), percentile(values, 50), percentile(values, 95)
}

func percentile(sorted []decimal.Decimal, q float64) decimal.Decimal {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := q / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo].Add(sorted[lo+1].Sub(sorted[lo]).Mul(decimal.NewFromFloat(frac)))
}
