// Package sqltmpl reads the SQL template files that config files refer to
// and extracts the Jinja-style placeholders a template expects to have
// rendered into it.
package sqltmpl

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/calder-analytics/configlint/internal/schema"
)

// Store reads SQL templates from a directory by name.
type Store struct {
	dir string
}

// NewStore returns a store over the given template directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load returns the text of the named template. The name may come straight
// from a config file's sql_template field; a missing .sql extension is
// added.
func (s *Store) Load(name string) (string, error) {
	base := schema.NormalizeTemplateName(name) + ".sql"
	data, err := os.ReadFile(filepath.Join(s.dir, base))
	if err != nil {
		return "", fmt.Errorf("loading sql template %q: %w", name, err)
	}
	return string(data), nil
}

// List returns the template names available in the store, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading template dir %s: %w", s.dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".sql"))
	}
	sort.Strings(names)
	return names, nil
}

// expressionPattern matches {{ ... }} placeholder expressions.
var expressionPattern = regexp.MustCompile(`\{\{-?\s*([A-Za-z_][A-Za-z0-9_]*)`)

// statementPattern matches the variable positions inside {% ... %} blocks
// we care about: the condition of if/elif and the iterable of for ... in.
var statementPattern = regexp.MustCompile(`\{%-?\s*(?:if|elif)\s+([A-Za-z_][A-Za-z0-9_]*)|\sin\s+([A-Za-z_][A-Za-z0-9_]*)\s*-?%\}`)

// Placeholders returns the sorted set of variable roots a template
// references. Only the leading identifier of each expression counts:
// filters and attribute access select within a variable, they do not name
// a new one.
func Placeholders(sql string) []string {
	seen := map[string]bool{}
	for _, m := range expressionPattern.FindAllStringSubmatch(sql, -1) {
		seen[m[1]] = true
	}
	for _, m := range statementPattern.FindAllStringSubmatch(sql, -1) {
		for _, name := range m[1:] {
			if name != "" {
				seen[name] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
