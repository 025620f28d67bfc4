// Package document models the YAML config file under edit: its raw text,
// its parsed node tree, and the template reference that selects which
// parameter schema applies to it.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMissingTemplateReference is returned when the config file does not
// name a SQL template under inputs.sql_template.
var ErrMissingTemplateReference = errors.New("config file does not name a sql_template")

// Document is the YAML file under edit. The style pass works on Raw and
// rewrites the file in place; the content pass works on the parsed tree.
type Document struct {
	Path string
	Raw  []byte

	root *yaml.Node
}

// Load reads the file at path. The YAML is parsed lazily so that the style
// pass can run on files that do not parse yet.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Document{Path: path, Raw: data}, nil
}

// Reload re-reads the file from disk, discarding any parsed state.
func (d *Document) Reload() error {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return fmt.Errorf("re-reading %s: %w", d.Path, err)
	}
	d.Raw = data
	d.root = nil
	return nil
}

// WriteRaw overwrites the file with text and updates the in-memory copy.
// Any parsed state is discarded; the next Root call re-parses.
func (d *Document) WriteRaw(text []byte) error {
	if err := os.WriteFile(d.Path, text, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", d.Path, err)
	}
	d.Raw = text
	d.root = nil
	return nil
}

// Root returns the parsed document node, parsing Raw on first use.
func (d *Document) Root() (*yaml.Node, error) {
	if d.root != nil {
		return d.root, nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal(d.Raw, &node); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", d.Path, err)
	}
	if node.Kind == 0 {
		return nil, fmt.Errorf("parsing %s: %w", d.Path, io.ErrUnexpectedEOF)
	}
	d.root = &node
	return d.root, nil
}

// Mapping returns the root mapping node of the document.
func (d *Document) Mapping() (*yaml.Node, error) {
	root, err := d.Root()
	if err != nil {
		return nil, err
	}
	m := rootMapping(root)
	if m == nil {
		return nil, fmt.Errorf("%s: document is not a YAML mapping", d.Path)
	}
	return m, nil
}

// TemplateRef returns the SQL template named by the document. The inputs
// section may be a mapping or a sequence whose first element is a mapping;
// both layouts occur in the wild.
func (d *Document) TemplateRef() (string, error) {
	entry, err := d.inputsEntry()
	if err != nil {
		return "", err
	}
	tmpl := Find(entry, "sql_template")
	if tmpl == nil || tmpl.Kind != yaml.ScalarNode || tmpl.Value == "" {
		return "", ErrMissingTemplateReference
	}
	return tmpl.Value, nil
}

// SQLParams returns the sql_params mapping node, or nil when the document
// has none. A missing section is not an error; the content pass reports
// absent params individually.
func (d *Document) SQLParams() (*yaml.Node, error) {
	entry, err := d.inputsEntry()
	if err != nil {
		if errors.Is(err, ErrMissingTemplateReference) {
			return nil, nil
		}
		return nil, err
	}
	return Find(entry, "sql_params"), nil
}

// inputsEntry locates the mapping that carries sql_template and sql_params.
func (d *Document) inputsEntry() (*yaml.Node, error) {
	m, err := d.Mapping()
	if err != nil {
		return nil, err
	}
	inputs := Find(m, "inputs")
	if inputs == nil {
		return nil, ErrMissingTemplateReference
	}
	switch inputs.Kind {
	case yaml.MappingNode:
		return inputs, nil
	case yaml.SequenceNode:
		if len(inputs.Content) > 0 && inputs.Content[0].Kind == yaml.MappingNode {
			return inputs.Content[0], nil
		}
	}
	return nil, ErrMissingTemplateReference
}

// Find returns the value node for key in a mapping node, descending through
// a document node if given one. Returns nil when the key is absent.
func Find(node *yaml.Node, key string) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		return Find(node.Content[0], key)
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// rootMapping returns the root mapping node from a document node.
func rootMapping(root *yaml.Node) *yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		return rootMapping(root.Content[0])
	}
	if root.Kind == yaml.MappingNode {
		return root
	}
	return nil
}
