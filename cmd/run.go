package cmd

import (
	"fmt"
	"os"

	"github.com/futureproof/retirement-planner/internal/output"

	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagOutput string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Monte Carlo simulation for a plan",
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().StringVarP(&flagFormat, "format", "f", "console", "Output format: console, csv or json")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write output to a file instead of stdout")
	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadPlan()
	if err != nil {
		return err
	}

	result, err := newEngine().Run(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	var data []byte
	switch flagFormat {
	case "console":
		data = []byte(output.ConsoleReport(cfg, &result.Summary))
	case "csv":
		data, err = output.MedianSeriesCSV(&result.Summary)
		if err != nil {
			return fmt.Errorf("failed to render CSV: %w", err)
		}
	case "json":
		data, err = output.ConfigJSON(result.Summary)
		if err != nil {
			return fmt.Errorf("failed to render JSON: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want console, csv or json)", flagFormat)
	}

	if flagOutput != "" {
		return os.WriteFile(flagOutput, data, 0o644)
	}
	_, err = os.Stdout.Write(data)
	return err
}
