package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/calder-analytics/configlint/internal/config"
	"github.com/calder-analytics/configlint/internal/content"
	"github.com/calder-analytics/configlint/internal/document"
	"github.com/calder-analytics/configlint/internal/lint"
	"github.com/calder-analytics/configlint/internal/schema"
	"github.com/calder-analytics/configlint/internal/style"
)

var (
	errorLabel = color.New(color.FgRed)
	warnLabel  = color.New(color.FgYellow)
	infoLabel  = color.New(color.FgCyan)
	okLabel    = color.New(color.FgGreen)
)

// renderStyle writes the style phase section of a report. With verbose set
// it also lists what the first scan found before any fixes ran.
func renderStyle(out io.Writer, rep *lint.Report, verbose bool) {
	if verbose && len(rep.InitialViolations) > 0 {
		fmt.Fprintf(out, "%s: first scan found %d violation(s):\n", rep.Path, len(rep.InitialViolations))
		renderViolations(out, rep.InitialViolations)
	}
	if rep.Fixed {
		fmt.Fprintf(out, "%s: fixed style issues in %d pass(es)\n", rep.Path, rep.FixPasses)
	}
	if len(rep.StyleViolations) == 0 {
		okLabel.Fprintf(out, "✓ %s has no style violations\n", rep.Path)
		return
	}
	fmt.Fprintf(out, "%s: %d style violation(s) remain:\n", rep.Path, len(rep.StyleViolations))
	renderViolations(out, rep.StyleViolations)
}

func renderViolations(out io.Writer, violations []style.Violation) {
	for _, v := range violations {
		label := errorLabel
		if v.Severity == config.SeverityWarning {
			label = warnLabel
		} else if v.Severity == config.SeverityInfo {
			label = infoLabel
		}
		fmt.Fprintf(out, "  %d:%d %s %s (%s)\n",
			v.Line, v.Column, label.Sprintf("[%s]", v.Severity), v.Message, v.Rule)
	}
}

// renderContent writes the content phase section of a report.
func renderContent(out io.Writer, rep *lint.Report) {
	if rep.ContentErr != nil {
		switch {
		case errors.Is(rep.ContentErr, document.ErrMissingTemplateReference):
			errorLabel.Fprint(out, "[error] ")
			fmt.Fprintln(out, "content check skipped: no sql_template named under 'inputs'.")
		case errors.Is(rep.ContentErr, schema.ErrUnknownTemplate):
			errorLabel.Fprint(out, "[error] ")
			fmt.Fprintf(out, "content check skipped: %v.\n", rep.ContentErr)
		default:
			errorLabel.Fprint(out, "[error] ")
			fmt.Fprintf(out, "content check skipped: %v\n", rep.ContentErr)
		}
		return
	}
	if len(rep.Diagnostics) == 0 {
		okLabel.Fprintf(out, "✓ %s matches its schemas\n", rep.Path)
		return
	}
	for _, d := range rep.Diagnostics {
		line := d.String()
		// Colorize just the leading [kind] tag; the line format itself is
		// part of the tool's contract.
		if d.Kind == content.KindError {
			errorLabel.Fprint(out, "[error]")
			fmt.Fprintln(out, line[len("[error]"):])
		} else {
			infoLabel.Fprint(out, "[info]")
			fmt.Fprintln(out, line[len("[info]"):])
		}
	}
	if n := content.CountErrors(rep.Diagnostics); n > 0 {
		fmt.Fprintf(out, "%d content error(s), %d note(s)\n", n, len(rep.Diagnostics)-n)
	}
}

// renderReport writes both sections of a full lint report.
func renderReport(out io.Writer, rep *lint.Report, verbose bool) {
	fmt.Fprintln(out, "=== Style ===")
	renderStyle(out, rep, verbose)
	fmt.Fprintln(out, "=== Content ===")
	renderContent(out, rep)
}
