package construct

import (
	"fmt"

	"github.com/kayz/fabula/internal/schema"
)

// Check cross-validates a type's declared shape against its schema document.
// It runs on every construction so drift between code and schema files is
// caught before it can produce a silently misconfigured node.
//
// The check is one-directional: every declared field must exist in the
// schema, but the schema may carry extra properties the type does not
// consume. That keeps old binaries working against newer schema files.
func Check(shape Shape, doc *schema.Document) error {
	for _, field := range shape.Fields {
		prop, ok := doc.Properties[field.Name]
		if !ok {
			return &Error{
				Kind:  KindFieldMissingFromSchema,
				Type:  shape.Name,
				Field: field.Name,
			}
		}
		if !prop.HasRequired {
			return &Error{
				Kind:  KindSchemaEntryIncomplete,
				Type:  shape.Name,
				Field: field.Name,
				Msg:   "schema entry lacks 'required'",
			}
		}
		if !prop.HasType {
			return &Error{
				Kind:  KindSchemaEntryIncomplete,
				Type:  shape.Name,
				Field: field.Name,
				Msg:   "schema entry lacks 'type'",
			}
		}
		if !kindMatches(prop.Type, field, prop.Required) {
			return &Error{
				Kind:  KindTypeMismatch,
				Type:  shape.Name,
				Field: field.Name,
				Msg:   fmt.Sprintf("schema type %q does not match declared %s", prop.Type, field.describeKind()),
			}
		}
		if field.Required() != prop.Required {
			return &Error{
				Kind:  KindRequiredMismatch,
				Type:  shape.Name,
				Field: field.Name,
				Msg:   fmt.Sprintf("schema required=%t, declared required=%t", prop.Required, field.Required()),
			}
		}
	}
	return nil
}

func (f Field) describeKind() string {
	if len(f.Union) > 0 {
		return fmt.Sprintf("union %v", f.Union)
	}
	return f.Kind.String()
}

// kindMatches reports whether a schema type name is compatible with a
// declared field kind.
//
// Union fields only match when every member kind matches. Optional fields
// additionally match whenever the schema entry is not required. Schema type
// names outside the known vocabulary match anything.
func kindMatches(schemaType string, field Field, required bool) bool {
	if field.Optional && !required {
		return true
	}
	if len(field.Union) > 0 {
		for _, k := range field.Union {
			if !baseKindMatch(schemaType, k) {
				return false
			}
		}
		return true
	}
	return baseKindMatch(schemaType, field.Kind)
}

func baseKindMatch(schemaType string, kind Kind) bool {
	switch schemaType {
	case "string":
		return kind == String
	case "integer", "int":
		return kind == Int
	case "float":
		return kind == Float || kind == Int
	case "bool", "boolean":
		return kind == Bool
	case "list", "array":
		return kind == List
	case "object", "dict":
		// Generic catch-all for anything mapping shaped, including nested
		// nodes.
		return kind == Map || kind == Object
	default:
		// Unrecognized schema type names are tolerated rather than rejected.
		return true
	}
}
