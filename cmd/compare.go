package cmd

import (
	"fmt"

	"github.com/futureproof/retirement-planner/internal/calculation"
	"github.com/futureproof/retirement-planner/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagExtraSaving int
	flagDelayMonths int
	flagCutTarget   int
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run quick what-ifs against a plan and compare success rates",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().IntVar(&flagExtraSaving, "extra-saving", 200, "Additional monthly contribution from today")
	compareCmd.Flags().IntVar(&flagDelayMonths, "retire-later", 12, "Months to delay retirement")
	compareCmd.Flags().IntVar(&flagCutTarget, "cut-target", 10, "Percent cut to target spending from retirement onward")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadPlan()
	if err != nil {
		return err
	}

	engine := newEngine()
	base, err := engine.Run(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("base simulation failed: %w", err)
	}

	extra := decimal.NewFromInt(int64(flagExtraSaving))
	cut := decimal.NewFromInt(int64(100 - flagCutTarget)).Div(decimal.NewFromInt(100))

	variants := []calculation.Variant{
		{
			Name: fmt.Sprintf("Save %d more per month", flagExtraSaving),
			Apply: func(c *domain.SimulationConfig) {
				c.MonthlyContribution = c.MonthlyContribution.Add(extra)
			},
		},
		{
			Name: fmt.Sprintf("Retire %d months later", flagDelayMonths),
			Apply: func(c *domain.SimulationConfig) {
				c.RetirementMonth += flagDelayMonths
				if c.RetirementMonth > c.HorizonMonths {
					c.RetirementMonth = c.HorizonMonths
				}
			},
		},
		{
			Name: fmt.Sprintf("Cut target spend %d%%", flagCutTarget),
			Apply: func(c *domain.SimulationConfig) {
				for m := c.RetirementMonth; m < len(c.TargetMonthlyReal); m++ {
					c.TargetMonthlyReal[m] = c.TargetMonthlyReal[m].Mul(cut)
				}
			},
		},
	}

	results, err := engine.Compare(cmd.Context(), cfg, variants)
	if err != nil {
		return err
	}

	fmt.Printf("%-28s %s\n", "Scenario", "Success rate")
	fmt.Printf("%-28s %s%%\n", "Base plan", base.Summary.SuccessRate.StringFixed(1))
	for _, r := range results {
		fmt.Printf("%-28s %s%%\n", r.Name, r.Summary.SuccessRate.StringFixed(1))
	}
	return nil
}
