package cmd

import (
	"fmt"
	"os"

	"github.com/futureproof/retirement-planner/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagExampleOutput string

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write an example plan YAML to edit",
	RunE:  runExample,
}

func init() {
	exampleCmd.Flags().StringVarP(&flagExampleOutput, "output", "o", "", "Write the plan to a file instead of stdout")
	rootCmd.AddCommand(exampleCmd)
}

func runExample(_ *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(config.ExamplePlan())
	if err != nil {
		return fmt.Errorf("failed to render example plan: %w", err)
	}
	if flagExampleOutput != "" {
		return os.WriteFile(flagExampleOutput, data, 0o644)
	}
	_, err = os.Stdout.Write(data)
	return err
}
