package document

import "gopkg.in/yaml.v3"

// Canonical type names shared by the document and the schemas. These are
// the names that appear in diagnostics.
const (
	TypeString    = "string"
	TypeInteger   = "integer"
	TypeFloat     = "float"
	TypeBoolean   = "boolean"
	TypeList      = "list"
	TypeMapping   = "mapping"
	TypeNull      = "null"
	TypeTimestamp = "timestamp"
)

// TypeName returns the canonical type name of a node's value.
func TypeName(node *yaml.Node) string {
	if node == nil {
		return TypeNull
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return TypeName(node.Alias)
	}
	switch node.Kind {
	case yaml.MappingNode:
		return TypeMapping
	case yaml.SequenceNode:
		return TypeList
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			return TypeName(node.Content[0])
		}
		return TypeNull
	}
	switch node.Tag {
	case "!!str":
		return TypeString
	case "!!int":
		return TypeInteger
	case "!!float":
		return TypeFloat
	case "!!bool":
		return TypeBoolean
	case "!!null":
		return TypeNull
	case "!!timestamp":
		return TypeTimestamp
	}
	return TypeString
}
