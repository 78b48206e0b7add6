package cmd

import (
	"fmt"
	"os"

	"github.com/futureproof/retirement-planner/internal/calculation"
	"github.com/futureproof/retirement-planner/internal/config"
	"github.com/futureproof/retirement-planner/internal/domain"

	"github.com/spf13/cobra"
)

var (
	flagInput string
	flagDebug bool
	flagPaths int
	flagSeed  int64
)

var rootCmd = &cobra.Command{
	Use:   "futureproof",
	Short: "Household retirement Monte Carlo planner",
	Long: "Project household living costs, simulate correlated market returns\n" +
		"and tax-aware drawdown, and report the odds of a plan holding up.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "Plan YAML file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().IntVar(&flagPaths, "paths", 0, "Override the number of simulated paths")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Override the random seed")
}

// loadPlan is the shared loading path used by run and compare.
func loadPlan() (domain.SimulationConfig, domain.CostProjection, error) {
	if flagInput == "" {
		return domain.SimulationConfig{}, domain.CostProjection{}, fmt.Errorf("an input plan is required (use --input)")
	}
	plan, err := config.LoadFromFile(flagInput)
	if err != nil {
		return domain.SimulationConfig{}, domain.CostProjection{}, err
	}
	cfg, proj, err := plan.Build()
	if err != nil {
		return domain.SimulationConfig{}, domain.CostProjection{}, err
	}
	if flagPaths > 0 {
		cfg.NumPaths = flagPaths
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	return cfg, proj, nil
}

func newEngine() *calculation.Engine {
	engine := calculation.NewEngine()
	if flagDebug {
		engine.SetLogger(stderrLogger{})
	}
	return engine
}

// stderrLogger writes engine diagnostics to stderr when --debug is set.
type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...any) { logf("DEBUG", format, args...) }
func (stderrLogger) Infof(format string, args ...any)  { logf("INFO", format, args...) }
func (stderrLogger) Warnf(format string, args ...any)  { logf("WARN", format, args...) }
func (stderrLogger) Errorf(format string, args ...any) { logf("ERROR", format, args...) }

func logf(level, format string, args ...any) {
	fmt.Fprintf(os.Stderr, level+": "+format+"\n", args...)
}
