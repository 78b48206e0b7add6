// Package presets supplies the opinionated lookup tables the core
// treats as opaque inputs: long-run real return estimates per index
// and simplified jurisdiction tax schedules. None of these are
// promises — just sane defaults users can override.
package presets

import (
	"fmt"
	"sort"

	"github.com/futureproof/retirement-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// ReturnPreset is a long-run annualized real return estimate with its
// volatility (standard deviation).
type ReturnPreset struct {
	RealReturn decimal.Decimal
	Volatility decimal.Decimal
}

var returnPresets = map[string]ReturnPreset{
	"S&P 500 (SPY)":      {RealReturn: decimal.NewFromFloat(0.055), Volatility: decimal.NewFromFloat(0.18)},
	"NASDAQ-100 (QQQ)":   {RealReturn: decimal.NewFromFloat(0.065), Volatility: decimal.NewFromFloat(0.24)},
	"FTSE 100":           {RealReturn: decimal.NewFromFloat(0.035), Volatility: decimal.NewFromFloat(0.16)},
	"MSCI ACWI (global)": {RealReturn: decimal.NewFromFloat(0.05), Volatility: decimal.NewFromFloat(0.17)},
	"60/40 Global":       {RealReturn: decimal.NewFromFloat(0.04), Volatility: decimal.NewFromFloat(0.11)},
	"Bonds (Global Agg)": {RealReturn: decimal.NewFromFloat(0.01), Volatility: decimal.NewFromFloat(0.06)},
}

// Returns looks up a return preset by name.
func Returns(name string) (ReturnPreset, error) {
	p, ok := returnPresets[name]
	if !ok {
		return ReturnPreset{}, fmt.Errorf("unknown return preset %q", name)
	}
	return p, nil
}

// ReturnPresetNames lists the available presets in stable order.
func ReturnPresetNames() []string {
	names := make([]string, 0, len(returnPresets))
	for name := range returnPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func upper(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// taxSpecs holds simplified progressive schedules at today's price
// level; the simulation indexes them with CPI. These aim for a
// realistic ballpark, not legal compliance.
var taxSpecs = map[string]func() domain.TaxSpec{
	"United Kingdom": func() domain.TaxSpec {
		// 2024/25 baseline; allowance tapers £1 per £2 over £100k.
		return domain.TaxSpec{
			Name:      "United Kingdom",
			Allowance: dec(12_570),
			Brackets: []domain.TaxBracket{
				{Upper: upper(50_270), Rate: dec(0.20)},
				{Upper: upper(125_140), Rate: dec(0.40)},
				{Rate: dec(0.45)},
			},
			TaperStart: upper(100_000),
			TaperRatio: dec(0.5),
		}
	},
	"United States": func() domain.TaxSpec {
		// Federal only, single filer; state taxes not modeled.
		return domain.TaxSpec{
			Name:      "United States (federal, single)",
			Allowance: dec(14_600),
			Brackets: []domain.TaxBracket{
				{Upper: upper(11_600), Rate: dec(0.10)},
				{Upper: upper(47_150), Rate: dec(0.12)},
				{Upper: upper(100_525), Rate: dec(0.22)},
				{Upper: upper(191_950), Rate: dec(0.24)},
				{Upper: upper(243_725), Rate: dec(0.32)},
				{Upper: upper(609_350), Rate: dec(0.35)},
				{Rate: dec(0.37)},
			},
		}
	},
	"France": func() domain.TaxSpec {
		// Simplified IR with one part; social contributions ignored.
		return domain.TaxSpec{
			Name: "France (simplified, 1 part)",
			Brackets: []domain.TaxBracket{
				{Upper: upper(11_294), Rate: dec(0.00)},
				{Upper: upper(28_797), Rate: dec(0.11)},
				{Upper: upper(82_341), Rate: dec(0.30)},
				{Upper: upper(177_106), Rate: dec(0.41)},
				{Rate: dec(0.45)},
			},
		}
	},
	"Germany": func() domain.TaxSpec {
		// Stepwise approximation of the continuous curve, singles.
		return domain.TaxSpec{
			Name:      "Germany (simplified)",
			Allowance: dec(11_000),
			Brackets: []domain.TaxBracket{
				{Upper: upper(62_000), Rate: dec(0.14)},
				{Upper: upper(277_000), Rate: dec(0.42)},
				{Rate: dec(0.45)},
			},
		}
	},
	"Australia": func() domain.TaxSpec {
		return domain.TaxSpec{
			Name:      "Australia (resident)",
			Allowance: dec(18_200),
			Brackets: []domain.TaxBracket{
				{Upper: upper(45_000), Rate: dec(0.19)},
				{Upper: upper(120_000), Rate: dec(0.325)},
				{Upper: upper(180_000), Rate: dec(0.37)},
				{Rate: dec(0.45)},
			},
			LevyRate: dec(0.02),
		}
	},
}

// Tax looks up a jurisdiction tax spec by country name. The returned
// spec is a fresh copy the caller may edit.
func Tax(country string) (domain.TaxSpec, error) {
	build, ok := taxSpecs[country]
	if !ok {
		return domain.TaxSpec{}, fmt.Errorf("unknown tax jurisdiction %q", country)
	}
	return build(), nil
}

// TaxJurisdictions lists the available jurisdictions in stable order.
func TaxJurisdictions() []string {
	names := make([]string, 0, len(taxSpecs))
	for name := range taxSpecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
