package calculation

import (
	"context"
	"fmt"

	"github.com/futureproof/retirement-planner/internal/domain"
)

// Variant is a named what-if: Apply edits a copy of the base
// configuration before the engine re-runs it.
type Variant struct {
	Name  string
	Apply func(*domain.SimulationConfig)
}

// VariantResult pairs a variant with its run summary.
type VariantResult struct {
	Name    string
	Summary domain.SimulationSummary
}

// Compare re-runs the engine once per variant against a cloned copy of
// the base configuration, so what-if questions reuse the exact
// simulation logic of the main run. Results keep the variants' order.
func (e *Engine) Compare(ctx context.Context, base domain.SimulationConfig, variants []Variant) ([]VariantResult, error) {
	results := make([]VariantResult, 0, len(variants))
	for _, v := range variants {
		cfg := base.Clone()
		if v.Apply != nil {
			v.Apply(&cfg)
		}
		res, err := e.Run(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.Name, err)
		}
		results = append(results, VariantResult{Name: v.Name, Summary: res.Summary})
	}
	return results, nil
}
