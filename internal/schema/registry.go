package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/calder-analytics/configlint/internal/document"
)

// ErrUnknownTemplate is returned when a config names a SQL template that
// has no registered schema.
var ErrUnknownTemplate = errors.New("no schema registered for the named sql template")

// Registry holds the general schema and one schema per known SQL template.
// It is loaded once at startup and never mutated afterwards, so resolution
// is deterministic: the same template reference always yields the same
// schema pair.
type Registry struct {
	General   *Schema
	templates map[string]*Schema
}

// GeneralSchemaFile is the registry file describing top-level sections.
const GeneralSchemaFile = "general.yaml"

// templatesSubdir holds one schema file per SQL template.
const templatesSubdir = "templates"

// LoadRegistry reads a schema store directory: <dir>/general.yaml plus
// <dir>/templates/<name>.yaml for each supported template.
func LoadRegistry(dir string) (*Registry, error) {
	general, err := loadSchemaFile(filepath.Join(dir, GeneralSchemaFile), "sections")
	if err != nil {
		return nil, fmt.Errorf("loading general schema: %w", err)
	}
	general.Name = "general"

	reg := &Registry{General: general, templates: map[string]*Schema{}}

	tmplDir := filepath.Join(dir, templatesSubdir)
	entries, err := os.ReadDir(tmplDir)
	if err != nil {
		return nil, fmt.Errorf("reading template schema dir %s: %w", tmplDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		s, err := loadSchemaFile(filepath.Join(tmplDir, entry.Name()), "params")
		if err != nil {
			return nil, fmt.Errorf("loading template schema %s: %w", entry.Name(), err)
		}
		s.Name = name
		reg.templates[name] = s
	}

	return reg, nil
}

// Template looks up the schema for a template reference. The reference may
// carry a directory prefix or a .sql suffix as it does in config files;
// only the base name keys the registry.
func (r *Registry) Template(ref string) (*Schema, error) {
	name := NormalizeTemplateName(ref)
	s, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, ref)
	}
	return s, nil
}

// Templates returns the known template names, sorted.
func (r *Registry) Templates() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve reads the template reference from the document and returns the
// general schema together with the matching template schema.
func (r *Registry) Resolve(doc *document.Document) (*Schema, *Schema, error) {
	ref, err := doc.TemplateRef()
	if err != nil {
		return nil, nil, err
	}
	tmpl, err := r.Template(ref)
	if err != nil {
		return nil, nil, err
	}
	return r.General, tmpl, nil
}

// NormalizeTemplateName reduces a template reference to its registry key:
// the base file name without the .sql extension.
func NormalizeTemplateName(ref string) string {
	name := filepath.Base(strings.TrimSpace(ref))
	return strings.TrimSuffix(name, ".sql")
}

// loadSchemaFile parses one schema file, reading field declarations from
// the mapping under rootKey. Declarations are walked as nodes rather than
// decoded into maps so their order survives into reports.
func loadSchemaFile(path, rootKey string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	decls := document.Find(&root, rootKey)
	if decls == nil {
		return nil, fmt.Errorf("%s: missing %q section", path, rootKey)
	}
	if decls.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: %q must be a mapping", path, rootKey)
	}

	fields, err := parseFields(decls)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Schema{Fields: fields}, nil
}

// parseFields converts a declaration mapping into Fields. A scalar value
// is a bare type name; a mapping value declares type (default mapping) and
// nested fields.
func parseFields(node *yaml.Node) ([]Field, error) {
	var fields []Field
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		switch value.Kind {
		case yaml.ScalarNode:
			ft, err := ParseFieldType(value.Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			fields = append(fields, Field{Name: key, Type: ft})

		case yaml.MappingNode:
			field := Field{Name: key, Type: TypeMapping}
			if typeNode := document.Find(value, "type"); typeNode != nil {
				ft, err := ParseFieldType(typeNode.Value)
				if err != nil {
					return nil, fmt.Errorf("field %q: %w", key, err)
				}
				field.Type = ft
			}
			if children := document.Find(value, "fields"); children != nil {
				if children.Kind != yaml.MappingNode {
					return nil, fmt.Errorf("field %q: fields must be a mapping", key)
				}
				nested, err := parseFields(children)
				if err != nil {
					return nil, err
				}
				field.Fields = nested
			}
			fields = append(fields, field)

		default:
			return nil, fmt.Errorf("field %q: declaration must be a type name or mapping", key)
		}
	}
	return fields, nil
}
