// Package lint wires the two phases together: the style pass stabilizes
// the file in place, then the content pass checks it against the schema
// pair selected by its template reference.
package lint

import (
	"github.com/calder-analytics/configlint/internal/config"
	"github.com/calder-analytics/configlint/internal/content"
	"github.com/calder-analytics/configlint/internal/document"
	"github.com/calder-analytics/configlint/internal/schema"
	"github.com/calder-analytics/configlint/internal/style"
)

// Report is the combined outcome of one lint run over one file.
type Report struct {
	Path string

	// Style phase
	InitialViolations []style.Violation
	StyleViolations   []style.Violation
	FixPasses         int
	Fixed             bool

	// Content phase
	Diagnostics []content.Diagnostic
	// ContentErr is set when the content phase could not run: the file
	// names no template, names an unknown one, or does not parse. Style
	// results are still valid when it is set.
	ContentErr error
}

// HasErrors reports whether anything blocking remains: style violations at
// error severity, content error diagnostics, or a skipped content phase.
// Warnings alone (line-length) do not count.
func (r *Report) HasErrors() bool {
	for _, v := range r.StyleViolations {
		if v.Severity == config.SeverityError {
			return true
		}
	}
	if content.CountErrors(r.Diagnostics) > 0 {
		return true
	}
	return r.ContentErr != nil
}

// Runner executes lint runs with a fixed configuration and schema
// registry, both loaded once per invocation.
type Runner struct {
	Config   *config.Configuration
	Registry *schema.Registry
}

// NewRunner builds a Runner, loading the schema registry from the
// configured schema directory.
func NewRunner(cfg *config.Configuration) (*Runner, error) {
	reg, err := schema.LoadRegistry(cfg.SchemaDir)
	if err != nil {
		return nil, err
	}
	return &Runner{Config: cfg, Registry: reg}, nil
}

// Run executes both phases on the file at path. Style fixes are written
// back to the file; content diagnostics are report-only. A skipped content
// phase is recorded on the report, not returned as an error.
func (r *Runner) Run(path string) (*Report, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}

	report, err := r.stabilize(doc)
	if err != nil {
		return nil, err
	}

	r.validate(doc, report)
	return report, nil
}

// RunStyle executes only the style phase (the fix command).
func (r *Runner) RunStyle(path string) (*Report, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	return r.stabilize(doc)
}

// RunContent executes only the content phase (the check command); the
// file is not modified.
func (r *Runner) RunContent(path string) (*Report, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	report := &Report{Path: path}
	r.validate(doc, report)
	return report, nil
}

func (r *Runner) stabilize(doc *document.Document) (*Report, error) {
	res, err := style.Stabilize(doc, r.Config.Rules, r.Config.MaxFixPasses)
	if err != nil {
		return nil, err
	}
	return &Report{
		Path:              doc.Path,
		InitialViolations: res.Initial,
		StyleViolations:   res.Remaining,
		FixPasses:         res.Passes,
		Fixed:             res.Changed,
	}, nil
}

func (r *Runner) validate(doc *document.Document, report *Report) {
	general, tmpl, err := r.Registry.Resolve(doc)
	if err != nil {
		report.ContentErr = err
		return
	}
	diags, err := content.Validate(doc, general, tmpl)
	if err != nil {
		report.ContentErr = err
		return
	}
	report.Diagnostics = diags
}
