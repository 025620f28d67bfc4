// Package style implements the YAML style pass: a small rule engine that
// reports formatting violations, a fixer that mechanically corrects the
// safe subset, and the fix-recheck loop that drives both until the file
// stabilizes.
package style

import (
	"fmt"
	"sort"

	"github.com/calder-analytics/configlint/internal/config"
)

// Rule identifies a style rule.
type Rule string

const (
	RuleDocumentStart  Rule = "document-start"
	RuleIndentation    Rule = "indentation"
	RuleColons         Rule = "colons"
	RuleTrailingSpaces Rule = "trailing-spaces"
	RuleNewLineAtEOF   Rule = "new-line-at-end-of-file"
	RuleLineLength     Rule = "line-length"
)

// Violation is a single style finding. Line and Column are 1-based.
type Violation struct {
	Rule     Rule
	Line     int
	Column   int
	Severity config.Severity
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%d:%d [%s] %s (%s)", v.Line, v.Column, v.Severity, v.Message, v.Rule)
}

// Fixable reports whether the fixer can mechanically correct this kind of
// violation. Line-length is never fixable: rewrapping a line can change
// what the YAML means.
func (v Violation) Fixable() bool {
	switch v.Rule {
	case RuleDocumentStart, RuleIndentation, RuleColons, RuleTrailingSpaces, RuleNewLineAtEOF:
		return true
	}
	return false
}

// Partition splits violations into the fixable and unfixable sets.
func Partition(violations []Violation) (fixable, unfixable []Violation) {
	for _, v := range violations {
		if v.Fixable() {
			fixable = append(fixable, v)
		} else {
			unfixable = append(unfixable, v)
		}
	}
	return fixable, unfixable
}

// sortViolations orders violations by line then column for stable reports.
func sortViolations(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		return violations[i].Column < violations[j].Column
	})
}
