package style

import (
	"github.com/calder-analytics/configlint/internal/config"
	"github.com/calder-analytics/configlint/internal/document"
)

// Result is the outcome of a Stabilize run.
type Result struct {
	Initial   []Violation // violations found on the first scan
	Remaining []Violation // violations still present after the last pass
	Passes    int         // fix passes applied
	Changed   bool        // whether the file was rewritten
}

// Stabilize drives the fix-recheck loop: lint, fix the fixable set, rewrite
// the file, and lint again, until no fixable violations remain. Two guards
// bound the loop: a pass that leaves the text unchanged stops it (no
// progress is possible), and maxPasses caps it outright.
func Stabilize(doc *document.Document, rules config.RuleSet, maxPasses int) (*Result, error) {
	res := &Result{}
	text := string(doc.Raw)

	for res.Passes < maxPasses {
		violations := Lint(text, rules)
		if res.Passes == 0 {
			res.Initial = violations
		}
		fixable, _ := Partition(violations)
		if len(fixable) == 0 {
			res.Remaining = violations
			return res, nil
		}

		fixed := Fix(text, violations, rules)
		if fixed == text {
			res.Remaining = violations
			return res, nil
		}

		text = fixed
		res.Passes++
		res.Changed = true
		if err := doc.WriteRaw([]byte(text)); err != nil {
			return nil, err
		}
	}

	res.Remaining = Lint(text, rules)
	return res, nil
}
