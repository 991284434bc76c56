package construct

import (
	"testing"

	"github.com/kayz/fabula/internal/schema"
)

func prop(required bool, typ string) schema.Property {
	return schema.Property{
		Required:    required,
		Type:        typ,
		HasRequired: true,
		HasType:     true,
	}
}

func TestCheckOK(t *testing.T) {
	shape := Shape{
		Name: "Widget",
		Fields: []Field{
			{Name: "name", Kind: String},
			{Name: "count", Kind: Int, Optional: true},
			{Name: "parts", Kind: List},
			{Name: "child", Kind: Object, Node: "Child"},
		},
	}
	doc := &schema.Document{
		Name: "Widget",
		Properties: map[string]schema.Property{
			"name":  prop(true, "string"),
			"count": prop(false, "integer"),
			"parts": prop(true, "list"),
			"child": prop(true, "object"),
			"extra": prop(false, "string"),
		},
	}
	if err := Check(shape, doc); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
}

func TestCheckFieldMissingFromSchema(t *testing.T) {
	shape := Shape{Name: "Widget", Fields: []Field{{Name: "name", Kind: String}}}
	doc := &schema.Document{Name: "Widget", Properties: map[string]schema.Property{}}
	err := Check(shape, doc)
	if !IsKind(err, KindFieldMissingFromSchema) {
		t.Fatalf("expected field-missing error, got %v", err)
	}
}

func TestCheckSchemaEntryIncomplete(t *testing.T) {
	shape := Shape{Name: "Widget", Fields: []Field{{Name: "name", Kind: String}}}

	noRequired := &schema.Document{Name: "Widget", Properties: map[string]schema.Property{
		"name": {Type: "string", HasType: true},
	}}
	if err := Check(shape, noRequired); !IsKind(err, KindSchemaEntryIncomplete) {
		t.Fatalf("missing required key: expected incomplete-entry error, got %v", err)
	}

	noType := &schema.Document{Name: "Widget", Properties: map[string]schema.Property{
		"name": {Required: true, HasRequired: true},
	}}
	if err := Check(shape, noType); !IsKind(err, KindSchemaEntryIncomplete) {
		t.Fatalf("missing type key: expected incomplete-entry error, got %v", err)
	}
}

func TestCheckTypeMismatch(t *testing.T) {
	shape := Shape{Name: "Widget", Fields: []Field{{Name: "count", Kind: Int}}}
	doc := &schema.Document{Name: "Widget", Properties: map[string]schema.Property{
		"count": prop(true, "string"),
	}}
	err := Check(shape, doc)
	if !IsKind(err, KindTypeMismatch) {
		t.Fatalf("expected type-mismatch error, got %v", err)
	}
}

func TestCheckRequiredMismatch(t *testing.T) {
	shape := Shape{Name: "Widget", Fields: []Field{{Name: "name", Kind: String}}}
	doc := &schema.Document{Name: "Widget", Properties: map[string]schema.Property{
		"name": prop(false, "string"),
	}}
	err := Check(shape, doc)
	if !IsKind(err, KindRequiredMismatch) {
		t.Fatalf("expected required-mismatch error, got %v", err)
	}
}

func TestKindMatchesUnion(t *testing.T) {
	// A union field matches only when every member kind matches.
	field := Field{Name: "n", Union: []Kind{Int, Float}}
	if !kindMatches("float", field, true) {
		t.Fatalf("float should admit both Int and Float")
	}
	if kindMatches("integer", field, true) {
		t.Fatalf("integer should reject the Float member")
	}
}

func TestKindMatchesOptionalNotRequired(t *testing.T) {
	// Optional fields match any schema type as long as the schema does not
	// require them.
	field := Field{Name: "note", Kind: String, Optional: true}
	if !kindMatches("integer", field, false) {
		t.Fatalf("optional + not required should match any type")
	}
	if kindMatches("integer", field, true) {
		t.Fatalf("required schema entry should still enforce the kind")
	}
}

func TestKindMatchesUnknownSchemaType(t *testing.T) {
	field := Field{Name: "blob", Kind: Map}
	if !kindMatches("custom_thing", field, true) {
		t.Fatalf("unknown schema type names should match anything")
	}
}

func TestKindMatchesFloatAdmitsInt(t *testing.T) {
	field := Field{Name: "n", Kind: Int}
	if !kindMatches("float", field, true) {
		t.Fatalf("float schema type should admit an int field")
	}
	if kindMatches("integer", Field{Name: "n", Kind: Float}, true) {
		t.Fatalf("integer schema type should not admit a float field")
	}
}
