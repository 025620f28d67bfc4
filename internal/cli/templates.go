package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calder-analytics/configlint/internal/schema"
	"github.com/calder-analytics/configlint/internal/sqltmpl"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [name]",
	Short: "List known SQL templates and their parameter schemas",
	Long: `Inspect the schema registry and the SQL template store.

Without arguments, lists every template that has a registered schema and
flags templates whose SQL file or schema is missing. With a name, shows
the template's placeholder variables side by side with its registered
schema params.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner(cmd)
		if err != nil {
			return err
		}
		store := sqltmpl.NewStore(runner.Config.TemplateDir)
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			return showTemplate(cmd, runner.Registry, store, args[0])
		}

		registered := runner.Registry.Templates()
		onDisk, err := store.List()
		if err != nil {
			return WrapExitError(ExitEnvironment, err)
		}
		sqlFiles := map[string]bool{}
		for _, name := range onDisk {
			sqlFiles[name] = true
		}

		fmt.Fprintf(out, "%d registered template(s):\n", len(registered))
		for _, name := range registered {
			if sqlFiles[name] {
				fmt.Fprintf(out, "  %s\n", name)
			} else {
				fmt.Fprintf(out, "  %s (no .sql file in %s)\n", name, runner.Config.TemplateDir)
			}
			delete(sqlFiles, name)
		}
		for _, name := range onDisk {
			if sqlFiles[name] {
				fmt.Fprintf(out, "  %s (.sql file without a registered schema)\n", name)
			}
		}
		return nil
	},
}

// showTemplate prints one template's placeholders next to its schema.
func showTemplate(cmd *cobra.Command, reg *schema.Registry, store *sqltmpl.Store, name string) error {
	out := cmd.OutOrStdout()

	tmplSchema, err := reg.Template(name)
	if err != nil {
		return WrapExitError(ExitInvalidArguments, err)
	}

	sql, err := store.Load(name)
	if err != nil {
		return WrapExitError(ExitEnvironment, err)
	}
	placeholders := sqltmpl.Placeholders(sql)

	fmt.Fprintf(out, "template: %s\n", tmplSchema.Name)
	fmt.Fprintln(out, "schema params:")
	declared := map[string]bool{}
	for _, f := range tmplSchema.Fields {
		declared[f.Name] = true
		fmt.Fprintf(out, "  %s: %s\n", f.Name, f.Type)
	}
	fmt.Fprintln(out, "placeholders in SQL:")
	used := map[string]bool{}
	for _, p := range placeholders {
		used[p] = true
		if declared[p] {
			fmt.Fprintf(out, "  %s\n", p)
		} else {
			fmt.Fprintf(out, "  %s (no schema param)\n", p)
		}
	}
	for _, f := range tmplSchema.Fields {
		if !used[f.Name] {
			fmt.Fprintf(out, "schema param %q is not referenced by the template\n", f.Name)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
