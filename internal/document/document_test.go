package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func load(t *testing.T, src string) *Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestTemplateRef(t *testing.T) {
	tests := map[string]struct {
		src     string
		want    string
		wantErr bool
	}{
		"inputs as mapping": {
			src:  "---\ninputs:\n  sql_template: monthly_revenue.sql\n",
			want: "monthly_revenue.sql",
		},
		"inputs as sequence": {
			src:  "---\ninputs:\n  - sql_template: sql/weekly_summary.sql\n",
			want: "sql/weekly_summary.sql",
		},
		"no inputs section": {
			src:     "---\ndag:\n  owner: data\n",
			wantErr: true,
		},
		"inputs without template": {
			src:     "---\ninputs:\n  sql_params:\n    limit: 10\n",
			wantErr: true,
		},
		"empty template value": {
			src:     "---\ninputs:\n  sql_template:\n",
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			doc := load(t, tc.src)
			got, err := doc.TemplateRef()
			if tc.wantErr {
				if !errors.Is(err, ErrMissingTemplateReference) {
					t.Fatalf("error = %v, want ErrMissingTemplateReference", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("TemplateRef failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTemplateRef_Deterministic(t *testing.T) {
	doc := load(t, "---\ninputs:\n  sql_template: monthly_revenue.sql\n")
	first, err := doc.TemplateRef()
	if err != nil {
		t.Fatal(err)
	}
	second, err := doc.TemplateRef()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("template ref changed between reads: %q vs %q", first, second)
	}
}

func TestSQLParams(t *testing.T) {
	doc := load(t, "---\ninputs:\n  sql_template: x.sql\n  sql_params:\n    limit: 10\n")
	params, err := doc.SQLParams()
	if err != nil {
		t.Fatal(err)
	}
	if params == nil {
		t.Fatal("sql_params not found")
	}
	if Find(params, "limit") == nil {
		t.Error("limit not found under sql_params")
	}

	doc = load(t, "---\ndag:\n  owner: data\n")
	params, err = doc.SQLParams()
	if err != nil {
		t.Fatal(err)
	}
	if params != nil {
		t.Errorf("expected nil params for a document without inputs, got %v", params)
	}
}

func TestWriteRawInvalidatesParse(t *testing.T) {
	doc := load(t, "---\nkey: first\n")
	if _, err := doc.Root(); err != nil {
		t.Fatal(err)
	}
	if err := doc.WriteRaw([]byte("---\nkey: second\n")); err != nil {
		t.Fatal(err)
	}
	m, err := doc.Mapping()
	if err != nil {
		t.Fatal(err)
	}
	if got := Find(m, "key").Value; got != "second" {
		t.Errorf("stale parse after WriteRaw: got %q", got)
	}
}

func TestTypeName(t *testing.T) {
	src := `---
s: text
i: 42
f: 4.2
b: true
l: [1, 2]
m:
  k: v
n: null
d: 2023-01-01
`
	doc := load(t, src)
	m, err := doc.Mapping()
	if err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"s": TypeString,
		"i": TypeInteger,
		"f": TypeFloat,
		"b": TypeBoolean,
		"l": TypeList,
		"m": TypeMapping,
		"n": TypeNull,
		"d": TypeTimestamp,
	}
	for key, want := range tests {
		node := Find(m, key)
		if node == nil {
			t.Fatalf("key %q not found", key)
		}
		if got := TypeName(node); got != want {
			t.Errorf("TypeName(%s) = %q, want %q", key, got, want)
		}
	}

	var alias yaml.Node
	if err := yaml.Unmarshal([]byte("---\na: &x 5\nb: *x\n"), &alias); err != nil {
		t.Fatal(err)
	}
	b := Find(&alias, "b")
	if got := TypeName(b); got != TypeInteger {
		t.Errorf("alias TypeName = %q, want integer", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
