package style

import (
	"testing"

	"github.com/calder-analytics/configlint/internal/config"
)

func defaultRules() config.RuleSet {
	return config.Default().Rules
}

func violationsFor(t *testing.T, src string, rule Rule) []Violation {
	t.Helper()
	var out []Violation
	for _, v := range Lint(src, defaultRules()) {
		if v.Rule == rule {
			out = append(out, v)
		}
	}
	return out
}

func TestLint_DocumentStart(t *testing.T) {
	tests := map[string]struct {
		src  string
		want int
	}{
		"marker present":                 {"---\nkey: value\n", 0},
		"marker missing":                 {"key: value\n", 1},
		"marker after comments":          {"# header\n---\nkey: value\n", 0},
		"comment only file":              {"# nothing here\n", 0},
		"empty file":                     {"", 0},
		"marker with directives variant": {"--- !tag\nkey: value\n", 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := violationsFor(t, tc.src, RuleDocumentStart)
			if len(got) != tc.want {
				t.Errorf("got %d document-start violations, want %d: %v", len(got), tc.want, got)
			}
			if tc.want == 1 {
				if got[0].Line != 1 || got[0].Severity != config.SeverityError {
					t.Errorf("unexpected violation position/severity: %+v", got[0])
				}
			}
		})
	}
}

func TestLint_TrailingSpaces(t *testing.T) {
	tests := map[string]struct {
		src      string
		wantLine int
		wantCol  int
	}{
		"spaces at line end": {"---\nkey: value  \n", 2, 11},
		"tab at line end":    {"---\nkey: value\t\n", 2, 11},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := violationsFor(t, tc.src, RuleTrailingSpaces)
			if len(got) != 1 {
				t.Fatalf("got %d trailing-spaces violations, want 1: %v", len(got), got)
			}
			if got[0].Line != tc.wantLine || got[0].Column != tc.wantCol {
				t.Errorf("got %d:%d, want %d:%d", got[0].Line, got[0].Column, tc.wantLine, tc.wantCol)
			}
		})
	}

	if got := violationsFor(t, "---\nkey: value\n", RuleTrailingSpaces); len(got) != 0 {
		t.Errorf("clean file reported trailing spaces: %v", got)
	}
}

func TestLint_Colons(t *testing.T) {
	tests := map[string]struct {
		src  string
		want int
	}{
		"clean":                        {"---\nkey: value\n", 0},
		"space before colon":           {"---\nkey : value\n", 1},
		"extra spaces after colon":     {"---\nkey:   value\n", 1},
		"both":                         {"---\nkey :   value\n", 2},
		"key without value":            {"---\nkey:\n", 0},
		"colon inside quoted value":    {"---\nkey: \"12 : 30\"\n", 0},
		"colon inside inline comment":  {"---\nkey: value # note : here\n", 0},
		"time value after mapping key": {"---\nstart: 12:30\n", 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := violationsFor(t, tc.src, RuleColons)
			if len(got) != tc.want {
				t.Errorf("got %d colon violations, want %d: %v", len(got), tc.want, got)
			}
		})
	}
}

func TestLint_Indentation(t *testing.T) {
	tests := map[string]struct {
		src  string
		want int
	}{
		"clean nesting": {"---\ndag:\n  owner: data\n", 0},
		"over-indented": {"---\ndag:\n    owner: data\n", 1},
		"odd indent":    {"---\ndag:\n owner: data\n", 1},
		"tab indent":    {"---\ndag:\n\towner: data\n", 1},
		"list items":    {"---\ninputs:\n  - sql_template: x\n", 0},
		"deep but consistent": {
			"---\ndag:\n  schedule:\n    cron: daily\n", 0,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := violationsFor(t, tc.src, RuleIndentation)
			if len(got) != tc.want {
				t.Errorf("got %d indentation violations, want %d: %v", len(got), tc.want, got)
			}
		})
	}
}

func TestLint_LineLength(t *testing.T) {
	long := "---\nkey: " + strings121() + "\n"

	got := violationsFor(t, long, RuleLineLength)
	if len(got) != 1 {
		t.Fatalf("got %d line-length violations, want 1", len(got))
	}
	if got[0].Severity != config.SeverityWarning {
		t.Errorf("line-length severity = %s, want warning", got[0].Severity)
	}
	if got[0].Fixable() {
		t.Error("line-length must never be fixable")
	}
}

// strings121 returns a value long enough to push its line past 120 chars.
func strings121() string {
	s := ""
	for len(s) < 130 {
		s += "abcdefghij"
	}
	return s
}

func TestLint_NewLineAtEOF(t *testing.T) {
	if got := violationsFor(t, "---\nkey: value", RuleNewLineAtEOF); len(got) != 1 {
		t.Errorf("missing final newline not reported: %v", got)
	}
	if got := violationsFor(t, "---\nkey: value\n", RuleNewLineAtEOF); len(got) != 0 {
		t.Errorf("final newline present but reported: %v", got)
	}
}

func TestLint_DisabledRulesAreSilent(t *testing.T) {
	rules := defaultRules()
	rules.TrailingSpaces.Enabled = false
	rules.DocumentStart.Enabled = false

	src := "key: value  \n"
	for _, v := range Lint(src, rules) {
		if v.Rule == RuleTrailingSpaces || v.Rule == RuleDocumentStart {
			t.Errorf("disabled rule still reported: %v", v)
		}
	}
}

func TestLint_OrderedByLine(t *testing.T) {
	src := "key: value  \nother : x\n"
	got := Lint(src, defaultRules())
	for i := 1; i < len(got); i++ {
		if got[i].Line < got[i-1].Line {
			t.Fatalf("violations out of order: %v", got)
		}
	}
}
