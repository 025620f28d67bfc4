// configlint - YAML config linting for templated SQL reports
// Source: https://github.com/calder-analytics/configlint

package main

import (
	"fmt"
	"os"

	"github.com/calder-analytics/configlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if msg := cli.ErrorMessage(err); msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", msg)
		}
		os.Exit(cli.ExitCode(err))
	}
}
