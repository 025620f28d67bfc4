// Package schema models the two schemas a config file is validated
// against: the general schema for top-level sections and a per-template
// schema for the sql_params section, looked up by the template the file
// names.
package schema

import (
	"fmt"

	"github.com/calder-analytics/configlint/internal/document"
)

// FieldType is the declared type of a schema field. The names match the
// canonical document type names so diagnostics can compare them directly.
type FieldType string

const (
	TypeString    FieldType = document.TypeString
	TypeInteger   FieldType = document.TypeInteger
	TypeFloat     FieldType = document.TypeFloat
	TypeBoolean   FieldType = document.TypeBoolean
	TypeList      FieldType = document.TypeList
	TypeMapping   FieldType = document.TypeMapping
	TypeTimestamp FieldType = document.TypeTimestamp
)

// ParseFieldType parses a type name as written in a schema file.
func ParseFieldType(s string) (FieldType, error) {
	switch FieldType(s) {
	case TypeString, TypeInteger, TypeFloat, TypeBoolean, TypeList, TypeMapping, TypeTimestamp:
		return FieldType(s), nil
	case "int":
		return TypeInteger, nil
	case "bool":
		return TypeBoolean, nil
	case "str":
		return TypeString, nil
	}
	return "", fmt.Errorf("unknown field type %q", s)
}

// Field declares one expected field. Mapping fields may declare children;
// declaration order is preserved so reports read in schema order.
type Field struct {
	Name   string
	Type   FieldType
	Fields []Field
}

// Child returns the declared child field with the given name, or nil.
func (f *Field) Child(name string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// Schema is a named collection of field declarations: either the general
// schema (top-level sections) or one template's sql_params schema.
type Schema struct {
	Name   string
	Fields []Field
}

// Field returns the declared top-level field with the given name, or nil.
func (s *Schema) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}
