// configlint - YAML config linting for templated SQL reports
// Source: https://github.com/calder-analytics/configlint

// Package cli provides the Cobra-based command surface for configlint:
// the full pipeline (lint), the individual phases (fix, check), registry
// introspection (templates), and the save-triggered loop (watch).
package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/calder-analytics/configlint/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "configlint",
	Short: "Lint YAML config files for templated SQL reports",
	Long: `configlint validates a YAML report config in two passes.

The style pass checks formatting rules (document start, indentation,
colon spacing, trailing whitespace, line length) and auto-corrects the
mechanically safe subset, re-checking until the file stabilizes.

The content pass reads the SQL template the file names under
inputs.sql_template, resolves the matching parameter schema, and reports
type mismatches and missing fields. Content findings are never
auto-fixed.`,
	Example: `  # Full pipeline on one file
  configlint lint configs/monthly_revenue.yaml

  # Style fixes only
  configlint fix configs/monthly_revenue.yaml

  # Content check only (no file modification)
  configlint check configs/monthly_revenue.yaml

  # Re-lint on every save
  configlint watch configs/`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		noColor, _ := cmd.Flags().GetBool("no-color")
		if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
			color.NoColor = true
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "Path to the lint rule config file")
	rootCmd.PersistentFlags().String("schema-dir", "", "Schema store directory (overrides config)")
	rootCmd.PersistentFlags().String("template-dir", "", "SQL template directory (overrides config)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Report fix passes as they run")
}

// loadConfig loads the rule configuration named by --config and applies
// directory flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dir, _ := cmd.Flags().GetString("schema-dir"); dir != "" {
		cfg.SchemaDir = dir
	}
	if dir, _ := cmd.Flags().GetString("template-dir"); dir != "" {
		cfg.TemplateDir = dir
	}
	return cfg, nil
}
