package content

import (
	"gopkg.in/yaml.v3"

	"github.com/calder-analytics/configlint/internal/document"
	"github.com/calder-analytics/configlint/internal/schema"
)

// sqlParamsField is checked exclusively against the template schema, even
// if a general schema happens to declare it.
const sqlParamsField = "sql_params"

// Validate compares the document against the resolved schema pair and
// returns every diagnostic. Fields the schemas declare are checked for
// presence and type; fields the document carries but no schema declares
// are tolerated. Diagnostics follow schema declaration order. The only
// error case is a document that does not parse as a YAML mapping.
func Validate(doc *document.Document, general, tmpl *schema.Schema) ([]Diagnostic, error) {
	mapping, err := doc.Mapping()
	if err != nil {
		return nil, err
	}

	var diags []Diagnostic

	for i := range general.Fields {
		field := &general.Fields[i]
		node := document.Find(mapping, field.Name)
		if field.Name == "inputs" {
			// The inputs section may be written as a sequence with a
			// single entry; validate against that entry rather than
			// flagging the section's own type.
			if entry := sequenceEntry(node); entry != nil {
				node = entry
			}
		}
		diags = append(diags, checkField(field.Name, field, node)...)
	}

	params, err := doc.SQLParams()
	if err != nil {
		return nil, err
	}
	for i := range tmpl.Fields {
		field := &tmpl.Fields[i]
		var node *yaml.Node
		if params != nil {
			node = document.Find(params, field.Name)
		}
		diags = append(diags, checkField(sqlParamsField+"."+field.Name, field, node)...)
	}

	return diags, nil
}

// checkField validates one declared field and, for mapping fields, its
// declared children.
func checkField(path string, field *schema.Field, node *yaml.Node) []Diagnostic {
	if node == nil {
		return []Diagnostic{absent(path)}
	}

	found := document.TypeName(node)
	if !typeMatches(field.Type, found) {
		return []Diagnostic{mismatch(path, string(field.Type), found)}
	}

	var diags []Diagnostic
	if field.Type == schema.TypeMapping && node.Kind == yaml.MappingNode {
		for i := range field.Fields {
			child := &field.Fields[i]
			if child.Name == sqlParamsField {
				continue
			}
			diags = append(diags, checkField(path+"."+child.Name, child, document.Find(node, child.Name))...)
		}
	}
	return diags
}

// typeMatches reports whether a found value type satisfies the declared
// type. An integer satisfies a declared float; everything else is exact.
func typeMatches(expected schema.FieldType, found string) bool {
	if string(expected) == found {
		return true
	}
	return expected == schema.TypeFloat && found == document.TypeInteger
}

// sequenceEntry returns the first mapping element of a sequence node, or
// nil when node is not that shape.
func sequenceEntry(node *yaml.Node) *yaml.Node {
	if node == nil || node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return nil
	}
	if node.Content[0].Kind != yaml.MappingNode {
		return nil
	}
	return node.Content[0]
}
