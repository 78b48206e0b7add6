package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBracket is one marginal band of a progressive schedule. A nil
// Upper marks the unbounded top bracket.
type TaxBracket struct {
	Upper *decimal.Decimal `yaml:"upper" json:"upper"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// TaxSpec describes a jurisdiction's progressive income tax:
// a tax-free allowance, ordered marginal brackets, an optional
// allowance taper above a threshold, and an optional flat levy on
// taxable income (e.g. the Australian Medicare levy).
type TaxSpec struct {
	Name       string           `yaml:"name" json:"name"`
	Allowance  decimal.Decimal  `yaml:"allowance" json:"allowance"`
	Brackets   []TaxBracket     `yaml:"brackets" json:"brackets"`
	TaperStart *decimal.Decimal `yaml:"taper_start,omitempty" json:"taper_start,omitempty"`
	TaperRatio decimal.Decimal  `yaml:"taper_ratio,omitempty" json:"taper_ratio,omitempty"`
	LevyRate   decimal.Decimal  `yaml:"levy_rate,omitempty" json:"levy_rate,omitempty"`
}

// Validate checks bracket ordering and rate ranges.
func (s TaxSpec) Validate() error {
	if len(s.Brackets) == 0 {
		return fmt.Errorf("tax spec %q: at least one bracket is required", s.Name)
	}
	if s.Allowance.IsNegative() {
		return fmt.Errorf("tax spec %q: allowance cannot be negative", s.Name)
	}
	one := decimal.NewFromInt(1)
	var prev *decimal.Decimal
	for i, b := range s.Brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("tax spec %q: bracket %d rate must be between 0 and 1", s.Name, i)
		}
		if b.Upper == nil {
			if i != len(s.Brackets)-1 {
				return fmt.Errorf("tax spec %q: only the last bracket may be unbounded", s.Name)
			}
			continue
		}
		if !b.Upper.IsPositive() {
			return fmt.Errorf("tax spec %q: bracket %d upper bound must be positive", s.Name, i)
		}
		if prev != nil && !b.Upper.GreaterThan(*prev) {
			return fmt.Errorf("tax spec %q: bracket upper bounds must be strictly increasing", s.Name)
		}
		upper := *b.Upper
		prev = &upper
	}
	if s.TaperStart != nil && s.TaperStart.IsNegative() {
		return fmt.Errorf("tax spec %q: taper start cannot be negative", s.Name)
	}
	if s.TaperRatio.IsNegative() {
		return fmt.Errorf("tax spec %q: taper ratio cannot be negative", s.Name)
	}
	if s.LevyRate.IsNegative() || s.LevyRate.GreaterThan(one) {
		return fmt.Errorf("tax spec %q: levy rate must be between 0 and 1", s.Name)
	}
	return nil
}
