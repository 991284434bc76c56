package construct

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/kayz/fabula/internal/schema"
	"github.com/spf13/cast"
)

// Test fixture: a widget holds a backend chosen by widget-level data, plus a
// couple of plain fields. Mirrors the real configuration tree in miniature.

type testWidget struct {
	Name    string
	Count   int
	Backend Node
}

func (w *testWidget) TypeName() string { return "Widget" }

func (w *testWidget) CanonicalDoc() map[string]any {
	return map[string]any{
		"name":         w.Name,
		"count":        w.Count,
		"backend_type": backendTypeOf(w.Backend),
		"backend":      w.Backend.CanonicalDoc(),
	}
}

func backendTypeOf(n Node) string {
	if n.TypeName() == "BetaBackend" {
		return "beta"
	}
	return "alpha"
}

type testAlpha struct {
	Model string
}

func (b *testAlpha) TypeName() string { return "AlphaBackend" }
func (b *testAlpha) CanonicalDoc() map[string]any {
	return map[string]any{"model": b.Model}
}

type testBeta struct {
	URL string
}

func (b *testBeta) TypeName() string { return "BetaBackend" }
func (b *testBeta) CanonicalDoc() map[string]any {
	return map[string]any{"url": b.URL}
}

const widgetSchema = `
Widget:
  properties:
    name:
      required: true
      type: string
      default: thing
    count:
      required: true
      type: integer
      default: 1
      minimum: 0
      maximum: 100
    backend_type:
      required: true
      type: string
      default: alpha
      enum: [alpha, beta]
    backend:
      required: true
      type: object
`

const alphaSchema = `
AlphaBackend:
  properties:
    model:
      required: true
      type: string
`

const betaSchema = `
BetaBackend:
  properties:
    url:
      required: true
      type: string
      default: http://localhost:5000
`

func testEngine(t *testing.T) *Engine {
	t.Helper()
	r := NewRegistry()
	r.RegisterType("Widget", &Registration{
		Shape: Shape{Fields: []Field{
			{Name: "name", Kind: String},
			{Name: "count", Kind: Int},
			{Name: "backend_type", Kind: String},
			{Name: "backend", Kind: Object, Node: "Backend"},
		}},
		Make: func(doc map[string]any) (Node, error) {
			name, err := cast.ToStringE(doc["name"])
			if err != nil {
				return nil, fmt.Errorf("name: %w", err)
			}
			count, err := cast.ToIntE(doc["count"])
			if err != nil {
				return nil, fmt.Errorf("count: %w", err)
			}
			backend, ok := doc["backend"].(Node)
			if !ok {
				return nil, fmt.Errorf("backend: expected constructed node, got %T", doc["backend"])
			}
			return &testWidget{Name: name, Count: count, Backend: backend}, nil
		},
	})
	r.RegisterType("AlphaBackend", &Registration{
		Shape: Shape{Fields: []Field{{Name: "model", Kind: String}}},
		Make: func(doc map[string]any) (Node, error) {
			model, err := cast.ToStringE(doc["model"])
			if err != nil {
				return nil, fmt.Errorf("model: %w", err)
			}
			return &testAlpha{Model: model}, nil
		},
	})
	r.RegisterType("BetaBackend", &Registration{
		Shape: Shape{Fields: []Field{{Name: "url", Kind: String}}},
		Make: func(doc map[string]any) (Node, error) {
			url, err := cast.ToStringE(doc["url"])
			if err != nil {
				return nil, fmt.Errorf("url: %w", err)
			}
			return &testBeta{URL: url}, nil
		},
	})
	r.RegisterFamily(&Family{
		Name:          "Backend",
		Discriminator: "backend_type",
		Default:       "alpha",
		Variants:      map[string]string{"alpha": "AlphaBackend", "beta": "BetaBackend"},
	})

	store := schema.MapStore{
		"Widget":       []byte(widgetSchema),
		"AlphaBackend": []byte(alphaSchema),
		"BetaBackend":  []byte(betaSchema),
	}
	return NewEngine(store, r)
}

func TestConstructDefaults(t *testing.T) {
	e := testEngine(t)

	// The default backend has no default model, so a fully empty document
	// still fails on the one field nothing can supply.
	_, err := e.Construct("Widget", map[string]any{}, nil)
	if !IsKind(err, KindMissingRequiredField) {
		t.Fatalf("expected missing-required-field for model, got %v", err)
	}

	node, err := e.Construct("Widget", map[string]any{
		"backend": map[string]any{"model": "gpt-x"},
	}, nil)
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	w := node.(*testWidget)
	if w.Name != "thing" || w.Count != 1 {
		t.Fatalf("defaults not applied: %+v", w)
	}
	alpha, ok := w.Backend.(*testAlpha)
	if !ok {
		t.Fatalf("default backend is %T, want *testAlpha", w.Backend)
	}
	if alpha.Model != "gpt-x" {
		t.Fatalf("model = %q", alpha.Model)
	}
}

func TestConstructVariantFromParentData(t *testing.T) {
	e := testEngine(t)

	node, err := e.Construct("Widget", map[string]any{
		"backend_type": "beta",
	}, nil)
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	w := node.(*testWidget)
	beta, ok := w.Backend.(*testBeta)
	if !ok {
		t.Fatalf("backend is %T, want *testBeta", w.Backend)
	}
	if beta.URL != "http://localhost:5000" {
		t.Fatalf("url default not applied: %q", beta.URL)
	}
}

func TestConstructUnknownVariant(t *testing.T) {
	e := testEngine(t)

	_, err := e.Construct("Widget", map[string]any{"backend_type": "gamma"}, nil)
	// The enum on backend_type never gets a chance to fire: variant
	// resolution happens before validation and the failure is fatal.
	if !IsKind(err, KindUnknownVariant) {
		t.Fatalf("expected unknown-variant, got %v", err)
	}
	if IsKind(err, KindNotInEnum) {
		t.Fatalf("expected variant resolution to fail before enum validation: %v", err)
	}
}

func TestConstructInputNotMutated(t *testing.T) {
	e := testEngine(t)

	input := map[string]any{
		"backend": map[string]any{"model": "gpt-x"},
	}
	want := map[string]any{
		"backend": map[string]any{"model": "gpt-x"},
	}
	if _, err := e.Construct("Widget", input, nil); err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	if !reflect.DeepEqual(input, want) {
		t.Fatalf("input document was mutated: %v", input)
	}
}

func TestConstructNodeFieldNotMapping(t *testing.T) {
	e := testEngine(t)

	_, err := e.Construct("Widget", map[string]any{"backend": "nope"}, nil)
	if !IsKind(err, KindTypeMismatch) {
		t.Fatalf("expected type-mismatch, got %v", err)
	}
}

func TestConstructValidationFailure(t *testing.T) {
	e := testEngine(t)

	_, err := e.Construct("Widget", map[string]any{
		"count":   500,
		"backend": map[string]any{"model": "gpt-x"},
	}, nil)
	if !IsKind(err, KindOutOfRange) {
		t.Fatalf("expected out-of-range, got %v", err)
	}
}

func TestConstructInstantiationError(t *testing.T) {
	e := testEngine(t)

	// A list for name passes validation (no bounds, no enum) and fails only
	// inside the factory.
	_, err := e.Construct("Widget", map[string]any{
		"name":    []any{"x"},
		"backend": map[string]any{"model": "gpt-x"},
	}, nil)
	if !IsKind(err, KindInstantiation) {
		t.Fatalf("expected instantiation error, got %v", err)
	}
}

func TestConstructUnknownType(t *testing.T) {
	e := testEngine(t)

	_, err := e.Construct("Gizmo", map[string]any{}, nil)
	if err == nil {
		t.Fatalf("expected error for unregistered type")
	}
}

func TestConstructSchemaNotFound(t *testing.T) {
	r := NewRegistry()
	r.RegisterType("Orphan", &Registration{
		Shape: Shape{Fields: nil},
		Make:  func(doc map[string]any) (Node, error) { return nil, nil },
	})
	e := NewEngine(schema.MapStore{}, r)

	_, err := e.Construct("Orphan", map[string]any{}, nil)
	var notFound *schema.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected schema NotFoundError, got %v", err)
	}
}

func TestConstructRoundTrip(t *testing.T) {
	e := testEngine(t)

	input := map[string]any{
		"name":         "custom",
		"count":        7,
		"backend_type": "beta",
		"backend":      map[string]any{"url": "http://example:8080"},
	}
	first, err := e.Construct("Widget", input, nil)
	if err != nil {
		t.Fatalf("first Construct failed: %v", err)
	}
	second, err := e.Construct("Widget", first.CanonicalDoc(), nil)
	if err != nil {
		t.Fatalf("round-trip Construct failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip changed the node:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.RegisterType("Widget", &Registration{})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	r.RegisterType("Widget", &Registration{})
}
