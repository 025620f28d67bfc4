package style

import (
	"fmt"
	"strings"

	"github.com/calder-analytics/configlint/internal/config"
)

// Lint runs the enabled style rules over src and returns every violation
// found, ordered by line then column. It never modifies src.
func Lint(src string, rules config.RuleSet) []Violation {
	lines := splitLines(src)
	var violations []Violation

	if rules.DocumentStart.Enabled {
		violations = append(violations, checkDocumentStart(lines)...)
	}
	if rules.Indentation.Enabled {
		violations = append(violations, checkIndentation(lines, rules.Indentation.Spaces)...)
	}
	if rules.Colons.Enabled {
		violations = append(violations, checkColons(lines)...)
	}
	if rules.TrailingSpaces.Enabled {
		violations = append(violations, checkTrailingSpaces(lines)...)
	}
	if rules.NewLineAtEOF.Enabled {
		violations = append(violations, checkNewLineAtEOF(src, lines)...)
	}
	if rules.LineLength.Enabled {
		violations = append(violations, checkLineLength(lines, rules.LineLength)...)
	}

	sortViolations(violations)
	return violations
}

// splitLines splits src into lines without their newline terminators. A
// trailing newline does not produce a phantom empty line.
func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// contentful reports whether a line carries YAML content (not blank, not a
// comment).
func contentful(line string) bool {
	s := strings.TrimSpace(line)
	return s != "" && !strings.HasPrefix(s, "#")
}

// indentOf returns the width of a line's indentation with tabs expanded to
// step spaces, and whether the indentation contains a tab.
func indentOf(line string, step int) (width int, hasTab bool) {
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += step
			hasTab = true
		default:
			return width, hasTab
		}
	}
	return width, hasTab
}

func checkDocumentStart(lines []string) []Violation {
	for _, line := range lines {
		if !contentful(line) {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "---") {
			return nil
		}
		return []Violation{{
			Rule:     RuleDocumentStart,
			Line:     1,
			Column:   1,
			Severity: config.SeverityError,
			Message:  `missing document start "---"`,
		}}
	}
	return nil
}

func checkIndentation(lines []string, step int) []Violation {
	var violations []Violation
	prevIndent := 0
	for i, line := range lines {
		if !contentful(line) {
			continue
		}
		indent, hasTab := indentOf(line, step)
		expected := expectedIndent(indent, prevIndent, step)
		if hasTab {
			violations = append(violations, Violation{
				Rule:     RuleIndentation,
				Line:     i + 1,
				Column:   1,
				Severity: config.SeverityError,
				Message:  "found tab character in indentation",
			})
		} else if expected != indent {
			violations = append(violations, Violation{
				Rule:     RuleIndentation,
				Line:     i + 1,
				Column:   1,
				Severity: config.SeverityError,
				Message:  fmt.Sprintf("wrong indentation: expected %d but found %d", expected, indent),
			})
		}
		prevIndent = indent
	}
	return violations
}

// expectedIndent returns the nearest valid indentation level for a line:
// a multiple of step, at most one step deeper than the previous contentful
// line.
func expectedIndent(indent, prevIndent, step int) int {
	max := prevIndent + step
	if indent > max {
		// Snap the max to a level too, in case the parent itself is off.
		return (max / step) * step
	}
	return ((indent + step/2) / step) * step
}

func checkColons(lines []string) []Violation {
	var violations []Violation
	for i, line := range lines {
		if !contentful(line) {
			continue
		}
		col := separatorColon(line)
		if col < 0 {
			continue
		}
		if col > 0 && line[col-1] == ' ' {
			violations = append(violations, Violation{
				Rule:     RuleColons,
				Line:     i + 1,
				Column:   col + 1,
				Severity: config.SeverityError,
				Message:  "too many spaces before colon",
			})
		}
		after := line[col+1:]
		if len(after)-len(strings.TrimLeft(after, " ")) > 1 && strings.TrimLeft(after, " ") != "" {
			violations = append(violations, Violation{
				Rule:     RuleColons,
				Line:     i + 1,
				Column:   col + 2,
				Severity: config.SeverityError,
				Message:  "too many spaces after colon",
			})
		}
	}
	return violations
}

// separatorColon returns the index of the first colon acting as a mapping
// separator (followed by a space or end of line, outside quotes and
// comments), or -1 when the line has none.
func separatorColon(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#' && i > 0 && line[i-1] == ' ':
			return -1
		case c == ':':
			if i+1 == len(line) || line[i+1] == ' ' {
				return i
			}
		}
	}
	return -1
}

func checkTrailingSpaces(lines []string) []Violation {
	var violations []Violation
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed != line {
			violations = append(violations, Violation{
				Rule:     RuleTrailingSpaces,
				Line:     i + 1,
				Column:   len(trimmed) + 1,
				Severity: config.SeverityError,
				Message:  "trailing spaces",
			})
		}
	}
	return violations
}

func checkNewLineAtEOF(src string, lines []string) []Violation {
	if src == "" || strings.HasSuffix(src, "\n") {
		return nil
	}
	last := lines[len(lines)-1]
	return []Violation{{
		Rule:     RuleNewLineAtEOF,
		Line:     len(lines),
		Column:   len(last) + 1,
		Severity: config.SeverityError,
		Message:  "no new line character at the end of file",
	}}
}

func checkLineLength(lines []string, rule config.LineLengthRule) []Violation {
	var violations []Violation
	for i, line := range lines {
		length := len([]rune(line))
		if length > rule.Max {
			violations = append(violations, Violation{
				Rule:     RuleLineLength,
				Line:     i + 1,
				Column:   rule.Max + 1,
				Severity: rule.Severity,
				Message:  fmt.Sprintf("line too long (%d > %d characters)", length, rule.Max),
			})
		}
	}
	return violations
}
