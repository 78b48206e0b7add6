package config

import (
	"fmt"
	"os"

	"github.com/futureproof/retirement-planner/internal/calculation"
	"github.com/futureproof/retirement-planner/internal/domain"
	"github.com/futureproof/retirement-planner/internal/presets"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Plan is the YAML plan file a user edits. It describes the household
// in natural units (ages, monthly amounts, annual rates); Build turns
// it into the engine's SimulationConfig.
type Plan struct {
	Profile    Profile         `yaml:"profile"`
	Savings    Savings         `yaml:"savings"`
	Inflation  decimal.Decimal `yaml:"inflation"`
	Portfolio  Portfolio       `yaml:"portfolio"`
	Spending   Spending        `yaml:"spending"`
	Withdrawal Withdrawal      `yaml:"withdrawal"`
	Tax        Tax             `yaml:"tax"`
	Simulation Simulation      `yaml:"simulation"`
}

// Profile holds the plan's timeline in years of age.
type Profile struct {
	CurrentAge int `yaml:"current_age"`
	RetireAge  int `yaml:"retire_age"`
	PlanEndAge int `yaml:"plan_end_age"`
}

// Savings holds today's investable assets and the contribution
// schedule (monthly amount plus nominal annual growth).
type Savings struct {
	Assets              decimal.Decimal `yaml:"assets"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution"`
	ContributionGrowth  decimal.Decimal `yaml:"contribution_growth"`
}

// Asset is one asset class: either a named return preset or explicit
// real mean/volatility. Explicit values win over the preset.
type Asset struct {
	Preset     string           `yaml:"preset,omitempty"`
	RealReturn *decimal.Decimal `yaml:"real_return,omitempty"`
	Volatility *decimal.Decimal `yaml:"volatility,omitempty"`
}

// Portfolio describes the two-asset allocation, correlation and fees.
type Portfolio struct {
	EquityAllocation decimal.Decimal `yaml:"equity_allocation"`
	BondAllocation   decimal.Decimal `yaml:"bond_allocation"`
	Equity           Asset           `yaml:"equity"`
	Bond             Asset           `yaml:"bond"`
	Correlation      decimal.Decimal `yaml:"correlation"`
	AnnualFees       decimal.Decimal `yaml:"annual_fees"`
}

// Spending holds the monthly basket in today's money and per-category
// drifts versus headline inflation.
type Spending struct {
	Basket domain.SpendingBasket `yaml:"basket"`
	Drifts domain.CategoryDrift  `yaml:"drifts"`
}

// Withdrawal selects the drawdown rule, spending policy and legacy mode.
type Withdrawal struct {
	Rate   decimal.Decimal       `yaml:"rate"`
	Policy domain.SpendingPolicy `yaml:"policy"`
	Legacy domain.LegacyMode     `yaml:"legacy"`
}

// Tax selects a jurisdiction preset by country name or supplies a
// custom spec inline. A custom spec wins over the country lookup.
type Tax struct {
	Country string          `yaml:"country,omitempty"`
	Custom  *domain.TaxSpec `yaml:"custom,omitempty"`
}

// Simulation holds the Monte Carlo controls.
type Simulation struct {
	Paths           int             `yaml:"paths"`
	Seed            int64           `yaml:"seed"`
	SuccessCoverage decimal.Decimal `yaml:"success_coverage"`
}

// LoadFromFile reads and validates a YAML plan file.
func LoadFromFile(filename string) (*Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &plan, nil
}

// Validate checks the parts of the plan the SimulationConfig
// validation cannot see, before any projection or simulation work.
func (p *Plan) Validate() error {
	if p.Profile.CurrentAge < 18 || p.Profile.CurrentAge > 100 {
		return fmt.Errorf("current age must be between 18 and 100")
	}
	if p.Profile.RetireAge <= p.Profile.CurrentAge {
		return fmt.Errorf("retire age must be after current age")
	}
	if p.Profile.PlanEndAge <= p.Profile.RetireAge {
		return fmt.Errorf("plan end age must be after retire age")
	}
	if err := p.Spending.Basket.Validate(); err != nil {
		return err
	}
	if err := p.Spending.Drifts.Validate(p.Spending.Basket); err != nil {
		return err
	}
	if err := p.validateAsset("equity", p.Portfolio.Equity); err != nil {
		return err
	}
	if err := p.validateAsset("bond", p.Portfolio.Bond); err != nil {
		return err
	}
	if p.Tax.Custom == nil && p.Tax.Country == "" {
		return fmt.Errorf("tax: either a country or a custom spec is required")
	}
	return nil
}

func (p *Plan) validateAsset(name string, a Asset) error {
	if a.Preset == "" && (a.RealReturn == nil || a.Volatility == nil) {
		return fmt.Errorf("portfolio.%s: either a preset or explicit real_return and volatility are required", name)
	}
	if a.Preset != "" {
		if _, err := presets.Returns(a.Preset); err != nil {
			return fmt.Errorf("portfolio.%s: %w", name, err)
		}
	}
	return nil
}

func resolveAsset(a Asset) (mu, vol decimal.Decimal, err error) {
	if a.Preset != "" {
		p, err := presets.Returns(a.Preset)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		mu, vol = p.RealReturn, p.Volatility
	}
	if a.RealReturn != nil {
		mu = *a.RealReturn
	}
	if a.Volatility != nil {
		vol = *a.Volatility
	}
	return mu, vol, nil
}

// Build projects the spending basket over the full plan horizon,
// derives the monthly target series from it, resolves presets and
// assembles the validated SimulationConfig. The projection is returned
// alongside so callers can report cost-of-living figures.
func (p *Plan) Build() (domain.SimulationConfig, domain.CostProjection, error) {
	if err := p.Validate(); err != nil {
		return domain.SimulationConfig{}, domain.CostProjection{}, err
	}

	years := p.Profile.PlanEndAge - p.Profile.CurrentAge
	horizon := years * 12
	retirement := (p.Profile.RetireAge - p.Profile.CurrentAge) * 12

	proj := calculation.ProjectCosts(p.Spending.Basket, p.Inflation, p.Spending.Drifts, years)
	target := calculation.TargetSeries(proj, horizon, retirement)

	equityMu, equityVol, err := resolveAsset(p.Portfolio.Equity)
	if err != nil {
		return domain.SimulationConfig{}, domain.CostProjection{}, err
	}
	bondMu, bondVol, err := resolveAsset(p.Portfolio.Bond)
	if err != nil {
		return domain.SimulationConfig{}, domain.CostProjection{}, err
	}

	taxSpec := domain.TaxSpec{}
	if p.Tax.Custom != nil {
		taxSpec = *p.Tax.Custom
	} else {
		taxSpec, err = presets.Tax(p.Tax.Country)
		if err != nil {
			return domain.SimulationConfig{}, domain.CostProjection{}, err
		}
	}

	cfg := domain.SimulationConfig{
		CurrentAge:          p.Profile.CurrentAge,
		RetirementMonth:     retirement,
		HorizonMonths:       horizon,
		InitialAssets:       p.Savings.Assets,
		MonthlyContribution: p.Savings.MonthlyContribution,
		ContributionGrowth:  p.Savings.ContributionGrowth,
		EquityAllocation:    p.Portfolio.EquityAllocation,
		BondAllocation:      p.Portfolio.BondAllocation,
		EquityReturn:        equityMu,
		EquityVolatility:    equityVol,
		BondReturn:          bondMu,
		BondVolatility:      bondVol,
		Correlation:         p.Portfolio.Correlation,
		AnnualFees:          p.Portfolio.AnnualFees,
		Inflation:           p.Inflation,
		TargetMonthlyReal:   target,
		WithdrawalRate:      p.Withdrawal.Rate,
		Policy:              p.Withdrawal.Policy,
		Legacy:              p.Withdrawal.Legacy,
		Tax:                 taxSpec,
		NumPaths:            p.Simulation.Paths,
		Seed:                p.Simulation.Seed,
		SuccessCoverage:     p.Simulation.SuccessCoverage,
	}
	if err := cfg.Validate(); err != nil {
		return domain.SimulationConfig{}, domain.CostProjection{}, err
	}
	return cfg, proj, nil
}

// ExamplePlan returns a complete plan with sensible defaults, used by
// the `example` command as a starting point for editing.
func ExamplePlan() *Plan {
	ruleRate := decimal.NewFromFloat(0.03)
	return &Plan{
		Profile: Profile{CurrentAge: 30, RetireAge: 60, PlanEndAge: 95},
		Savings: Savings{
			Assets:              decimal.NewFromInt(20000),
			MonthlyContribution: decimal.NewFromInt(800),
			ContributionGrowth:  decimal.NewFromFloat(0.02),
		},
		Inflation: decimal.NewFromFloat(0.025),
		Portfolio: Portfolio{
			EquityAllocation: decimal.NewFromFloat(0.6),
			BondAllocation:   decimal.NewFromFloat(0.4),
			Equity:           Asset{Preset: "MSCI ACWI (global)"},
			Bond:             Asset{Preset: "Bonds (Global Agg)"},
			Correlation:      decimal.NewFromFloat(0.2),
			AnnualFees:       decimal.NewFromFloat(0.002),
		},
		Spending: Spending{
			Basket: domain.SpendingBasket{
				"housing":       decimal.NewFromInt(1200),
				"food":          decimal.NewFromInt(350),
				"energy":        decimal.NewFromInt(150),
				"transport":     decimal.NewFromInt(250),
				"health":        decimal.NewFromInt(100),
				"entertainment": decimal.NewFromInt(200),
				"other":         decimal.NewFromInt(300),
			},
			Drifts: domain.CategoryDrift{
				"housing": decimal.NewFromFloat(0.01),
				"food":    decimal.NewFromFloat(0.005),
				"energy":  decimal.NewFromFloat(0.01),
				"health":  decimal.NewFromFloat(0.01),
			},
		},
		Withdrawal: Withdrawal{
			Rate:   ruleRate,
			Policy: domain.PolicyLowerOf,
			Legacy: domain.LegacySpendToZero,
		},
		Tax: Tax{Country: "United Kingdom"},
		Simulation: Simulation{
			Paths:           1000,
			Seed:            42,
			SuccessCoverage: decimal.NewFromFloat(0.9),
		},
	}
}
