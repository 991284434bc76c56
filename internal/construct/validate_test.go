package construct

import (
	"errors"
	"testing"

	"github.com/kayz/fabula/internal/schema"
)

func floatPtr(f float64) *float64 { return &f }

func TestValidateBounds(t *testing.T) {
	shape := Shape{Name: "Gen", Fields: []Field{{Name: "temperature", Kind: Float, Optional: true}}}
	doc := &schema.Document{Name: "Gen", Properties: map[string]schema.Property{
		"temperature": {
			Required: false, HasRequired: true,
			Type: "float", HasType: true,
			Minimum: floatPtr(0), Maximum: floatPtr(2),
		},
	}}

	if err := Validate(map[string]any{"temperature": 0.7}, doc, shape); err != nil {
		t.Fatalf("in-range value rejected: %v", err)
	}
	if err := Validate(map[string]any{"temperature": -0.1}, doc, shape); !IsKind(err, KindOutOfRange) {
		t.Fatalf("below minimum: expected out-of-range, got %v", err)
	}
	if err := Validate(map[string]any{"temperature": 2.5}, doc, shape); !IsKind(err, KindOutOfRange) {
		t.Fatalf("above maximum: expected out-of-range, got %v", err)
	}
	if err := Validate(map[string]any{"temperature": "warm"}, doc, shape); !IsKind(err, KindTypeMismatch) {
		t.Fatalf("non-numeric bounded value: expected type mismatch, got %v", err)
	}
}

func TestValidateEnum(t *testing.T) {
	shape := Shape{Name: "UI", Fields: []Field{{Name: "mode", Kind: String}}}
	doc := &schema.Document{Name: "UI", Properties: map[string]schema.Property{
		"mode": {
			Required: true, HasRequired: true,
			Type: "string", HasType: true,
			Enum: []any{"plain", "verbose"},
		},
	}}

	if err := Validate(map[string]any{"mode": "plain"}, doc, shape); err != nil {
		t.Fatalf("enum member rejected: %v", err)
	}
	if err := Validate(map[string]any{"mode": "loud"}, doc, shape); !IsKind(err, KindNotInEnum) {
		t.Fatalf("expected not-in-enum, got %v", err)
	}
	// Case-sensitive membership.
	if err := Validate(map[string]any{"mode": "Plain"}, doc, shape); !IsKind(err, KindNotInEnum) {
		t.Fatalf("expected case-sensitive rejection, got %v", err)
	}
}

func TestValidateEnumNumericEquivalence(t *testing.T) {
	shape := Shape{Name: "Gen", Fields: []Field{{Name: "n", Kind: Int}}}
	doc := &schema.Document{Name: "Gen", Properties: map[string]schema.Property{
		"n": {
			Required: true, HasRequired: true,
			Type: "integer", HasType: true,
			Enum: []any{1, 2},
		},
	}}
	// YAML decodes numbers as int, callers may hand in float64.
	if err := Validate(map[string]any{"n": float64(2)}, doc, shape); err != nil {
		t.Fatalf("numerically equal enum member rejected: %v", err)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	shape := Shape{Name: "Widget", Fields: []Field{
		{Name: "name", Kind: String},
		{Name: "note", Kind: String, Optional: true},
		{Name: "child", Kind: Object, Node: "Child"},
	}}
	doc := &schema.Document{Name: "Widget", Properties: map[string]schema.Property{
		"name":        prop(true, "string"),
		"note":        prop(false, "string"),
		"child":       prop(true, "object"),
		"schema_only": prop(true, "string"),
	}}

	err := Validate(map[string]any{}, doc, shape)
	if !IsKind(err, KindMissingRequiredField) {
		t.Fatalf("expected missing-required-field, got %v", err)
	}
	var violations *Violations
	if !errors.As(err, &violations) {
		t.Fatalf("expected aggregated violations, got %T", err)
	}
	// Only "name" is reported: "note" is optional, "child" is filled by
	// recursion, and "schema_only" is not part of the declared shape.
	if len(violations.List) != 1 || violations.List[0].Field != "name" {
		t.Fatalf("unexpected violations: %v", violations)
	}
}

func TestValidateAggregatesAllViolations(t *testing.T) {
	shape := Shape{Name: "Gen", Fields: []Field{
		{Name: "temperature", Kind: Float, Optional: true},
		{Name: "mode", Kind: String},
	}}
	doc := &schema.Document{Name: "Gen", Properties: map[string]schema.Property{
		"temperature": {
			Required: false, HasRequired: true,
			Type: "float", HasType: true,
			Minimum: floatPtr(0), Maximum: floatPtr(2),
		},
		"mode": {
			Required: true, HasRequired: true,
			Type: "string", HasType: true,
			Enum: []any{"plain"},
		},
	}}

	err := Validate(map[string]any{"temperature": 5.0, "mode": "loud"}, doc, shape)
	var violations *Violations
	if !errors.As(err, &violations) {
		t.Fatalf("expected violations, got %v", err)
	}
	if len(violations.List) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(violations.List), violations)
	}
	// Sorted by field name for deterministic reporting.
	if violations.List[0].Field != "mode" || violations.List[1].Field != "temperature" {
		t.Fatalf("unexpected order: %v", violations)
	}
}
