package domain

import "github.com/shopspring/decimal"

// PathResult is one simulated future: real wealth and delivered real
// net withdrawal at monthly resolution, plus the success flag and the
// fraction of retirement months in which the target was met.
type PathResult struct {
	Wealth      []decimal.Decimal `json:"wealth"`
	Withdrawals []decimal.Decimal `json:"withdrawals"`
	Coverage    decimal.Decimal   `json:"coverage"`
	Success     bool              `json:"success"`
}

// SimulationSummary aggregates all paths: 5th/50th/95th percentile
// wealth and withdrawal trajectories per month, the success rate in
// percent, and coverage-ratio percentiles. All values are real
// (today's money); withdrawal trajectories are monthly amounts.
type SimulationSummary struct {
	Ages []decimal.Decimal `json:"ages"`

	SuccessRate decimal.Decimal `json:"success_rate"`

	WealthP5  []decimal.Decimal `json:"wealth_p5"`
	WealthP50 []decimal.Decimal `json:"wealth_p50"`
	WealthP95 []decimal.Decimal `json:"wealth_p95"`

	WithdrawalP5  []decimal.Decimal `json:"withdrawal_p5"`
	WithdrawalP50 []decimal.Decimal `json:"withdrawal_p50"`
	WithdrawalP95 []decimal.Decimal `json:"withdrawal_p95"`

	CoverageP5  decimal.Decimal `json:"coverage_p5"`
	CoverageP50 decimal.Decimal `json:"coverage_p50"`
	CoverageP95 decimal.Decimal `json:"coverage_p95"`

	// TargetAnnualReal is the annualized target series the run was
	// measured against, for charting and export alongside the bands.
	TargetAnnualReal []decimal.Decimal `json:"target_annual_real"`

	NumPaths int   `json:"num_paths"`
	Seed     int64 `json:"seed"`
}

// SimulationResult bundles the summary with the raw per-path
// trajectories for callers that want to export them.
type SimulationResult struct {
	Summary SimulationSummary `json:"summary"`
	Paths   []PathResult      `json:"paths,omitempty"`
}
