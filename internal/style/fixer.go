package style

import (
	"sort"
	"strings"

	"github.com/calder-analytics/configlint/internal/config"
)

// Fix applies the mechanical corrections for every fixable violation and
// returns the corrected text. Unfixable violations are left alone. Fixes
// are applied bottom-up so that an edit never shifts the line numbers of a
// fix still to be applied; the whole-file fixes (document start, final
// newline) run after the per-line ones.
func Fix(src string, violations []Violation, rules config.RuleSet) string {
	lines := splitLines(src)
	hadFinalNewline := strings.HasSuffix(src, "\n")

	fixable, _ := Partition(violations)
	sort.SliceStable(fixable, func(i, j int) bool {
		return fixable[i].Line > fixable[j].Line
	})

	insertDocStart := false
	appendNewline := false

	for _, v := range fixable {
		i := v.Line - 1
		if i < 0 || i >= len(lines) {
			continue
		}
		switch v.Rule {
		case RuleTrailingSpaces:
			lines[i] = strings.TrimRight(lines[i], " \t")
		case RuleColons:
			lines[i] = normalizeColon(lines[i])
		case RuleIndentation:
			lines[i] = reindent(lines, i, rules.Indentation.Spaces)
		case RuleDocumentStart:
			insertDocStart = true
		case RuleNewLineAtEOF:
			appendNewline = true
		}
	}

	if insertDocStart {
		lines = append([]string{"---"}, lines...)
	}

	out := strings.Join(lines, "\n")
	if hadFinalNewline || appendNewline {
		out += "\n"
	}
	return out
}

// normalizeColon rewrites the first mapping colon of a line to have no
// space before it and exactly one space after it.
func normalizeColon(line string) string {
	col := separatorColon(line)
	if col < 0 {
		return line
	}
	j := col
	for j > 0 && line[j-1] == ' ' {
		j--
	}
	value := strings.TrimLeft(line[col+1:], " ")
	if value == "" {
		return line[:j] + ":"
	}
	return line[:j] + ": " + value
}

// reindent moves line i to the nearest valid indentation level, judged
// against the previous contentful line as it currently stands.
func reindent(lines []string, i, step int) string {
	prevIndent := 0
	for j := i - 1; j >= 0; j-- {
		if contentful(lines[j]) {
			prevIndent, _ = indentOf(lines[j], step)
			break
		}
	}
	indent, _ := indentOf(lines[i], step)
	expected := expectedIndent(indent, prevIndent, step)
	return strings.Repeat(" ", expected) + strings.TrimLeft(lines[i], " \t")
}
