package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calder-analytics/configlint/internal/lint"
)

var lintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Run the style and content passes on a config file",
	Long: `Run the full pipeline on a YAML config file.

The style pass auto-fixes what it safely can, rewriting the file in
place, and re-checks until it stabilizes. The content pass then reports
type mismatches and missing fields against the schema selected by the
file's sql_template reference.

Exit code 0 when the file is clean, 1 when error-level findings remain.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner(cmd)
		if err != nil {
			return err
		}
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return WrapExitError(ExitInvalidArguments, fmt.Errorf("config file not found: %s", path))
		}

		rep, err := runner.Run(path)
		if err != nil {
			return err
		}
		renderReport(cmd.OutOrStdout(), rep, verboseFlag(cmd))
		if rep.HasErrors() {
			return NewExitError(ExitLintFailed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

// verboseFlag reads the persistent --verbose flag.
func verboseFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

// newRunner loads the configuration and schema registry for a command.
func newRunner(cmd *cobra.Command) (*lint.Runner, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, WrapExitError(ExitEnvironment, err)
	}
	runner, err := lint.NewRunner(cfg)
	if err != nil {
		return nil, WrapExitError(ExitEnvironment, err)
	}
	return runner, nil
}
