// Package content implements the content pass: comparing a config file's
// fields against the general schema and the template-specific sql_params
// schema, and reporting mismatches. It never modifies the file.
package content

import "fmt"

// Kind is the severity of a diagnostic. A type mismatch is an error; an
// absent field is informational, since the downstream SQL render treats
// missing params as simply unset.
type Kind string

const (
	KindError Kind = "error"
	KindInfo  Kind = "info"
)

// Diagnostic is one content finding.
type Diagnostic struct {
	Kind      Kind
	FieldPath string
	Expected  string
	Found     string
	Message   string
}

func (d Diagnostic) String() string {
	return d.Message
}

// mismatch builds the error diagnostic for a field whose value has the
// wrong type.
func mismatch(path, expected, found string) Diagnostic {
	return Diagnostic{
		Kind:      KindError,
		FieldPath: path,
		Expected:  expected,
		Found:     found,
		Message:   fmt.Sprintf("[error] Field '%s' should be '%s', got '%s'.", path, expected, found),
	}
}

// absent builds the info diagnostic for a schema-declared field the config
// file does not supply.
func absent(path string) Diagnostic {
	return Diagnostic{
		Kind:      KindInfo,
		FieldPath: path,
		Message:   fmt.Sprintf("[info] '%s' was found in the SQL template/schema but not in the config file.", path),
	}
}

// CountErrors returns how many diagnostics are errors.
func CountErrors(diags []Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Kind == KindError {
			n++
		}
	}
	return n
}
