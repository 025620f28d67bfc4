package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix <file>",
	Short: "Run only the style pass, fixing what it safely can",
	Long: `Auto-fix the style of a YAML config file.

Runs the fix-recheck loop until no fixable violations remain, a pass
makes no progress, or the configured pass ceiling is hit. Anything that
cannot be fixed mechanically is reported and left in place. Line-length
findings are reported only; a rewrap could change what the YAML means.`,
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

		rep, err := runner.RunStyle(path)
		if err != nil {
			return err
		}
		renderStyle(cmd.OutOrStdout(), rep, verboseFlag(cmd))
		if rep.HasErrors() {
			return NewExitError(ExitLintFailed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)
}
