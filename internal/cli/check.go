package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Run only the content pass (no file modification)",
	Long: `Check a YAML config file against its schemas.

Reads the sql_template reference from the file, resolves the general
schema and the template's parameter schema, and reports type mismatches
as errors and absent declared fields as notes. The file is never
modified.`,
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

		rep, err := runner.RunContent(path)
		if err != nil {
			return err
		}
		renderContent(cmd.OutOrStdout(), rep)
		if rep.HasErrors() {
			return NewExitError(ExitLintFailed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
