package construct

import (
	"fmt"

	"github.com/kayz/fabula/internal/debug"
	"github.com/kayz/fabula/internal/schema"
	"github.com/spf13/cast"
)

// Engine builds configuration trees: it resolves variants, loads and
// cross-checks schemas, merges defaults, recurses into nested node fields
// and instantiates concrete types. One Engine may serve many independent
// constructions concurrently; it holds no mutable state.
type Engine struct {
	Store    schema.Store
	Registry *Registry
}

func NewEngine(store schema.Store, registry *Registry) *Engine {
	return &Engine{Store: store, Registry: registry}
}

// Construct builds the node named by name, which may be a variant family or
// a concrete type. data is the (possibly partial) document for this node and
// parent is the enclosing level's data, used for variant resolution and
// schema selection. Inputs are never mutated.
//
// Any failure at any depth aborts the whole construction; a half built
// configuration is more dangerous than a hard failure at startup.
func (e *Engine) Construct(name string, data, parent map[string]any) (Node, error) {
	return e.construct(name, copyDoc(data), parent)
}

func (e *Engine) construct(name string, data, parent map[string]any) (Node, error) {
	typeName := name
	if fam, ok := e.Registry.Family(name); ok {
		resolved, err := fam.Resolve(data, parent)
		if err != nil {
			return nil, err
		}
		typeName = resolved
	}

	reg, ok := e.Registry.Type(typeName)
	if !ok {
		return nil, fmt.Errorf("construct: no registration for type %q", typeName)
	}
	debug.Log("constructing %s (requested as %s)", typeName, name)

	schemaName := typeName
	if reg.SchemaName != nil {
		var err error
		schemaName, err = reg.SchemaName(data, parent)
		if err != nil {
			return nil, err
		}
	}

	// The schema is reloaded and rechecked on every construction. Redundant
	// for repeated types, but it means edits to schema files are always
	// picked up by the next construction.
	file, err := e.Store.Load(schemaName)
	if err != nil {
		return nil, err
	}
	doc, err := file.For(typeName)
	if err != nil {
		return nil, err
	}

	if err := Check(reg.Shape, doc); err != nil {
		return nil, err
	}

	for fieldName, prop := range doc.Properties {
		if _, present := data[fieldName]; !present && prop.HasDefault {
			data[fieldName] = copyValue(prop.Default)
		}
	}

	// Children are built before this level validates, with this level's
	// defaulted data as their parent context. A required node field is
	// therefore never reported missing as long as its own construction
	// succeeds.
	for _, field := range reg.Shape.Fields {
		if field.Node == "" {
			continue
		}
		sub := map[string]any{}
		if raw, present := data[field.Name]; present && raw != nil {
			sub, err = cast.ToStringMapE(raw)
			if err != nil {
				return nil, &Error{
					Kind:  KindTypeMismatch,
					Type:  typeName,
					Field: field.Name,
					Msg:   fmt.Sprintf("expected a mapping, got %T", raw),
				}
			}
		}
		child, err := e.construct(field.Node, copyDoc(sub), data)
		if err != nil {
			return nil, err
		}
		data[field.Name] = child
	}

	if err := Validate(data, doc, reg.Shape); err != nil {
		return nil, err
	}

	node, err := reg.Make(data)
	if err != nil {
		return nil, &Error{Kind: KindInstantiation, Type: typeName, Err: err}
	}
	return node, nil
}

// copyDoc deep-copies a document so defaults and constructed children never
// leak into caller owned maps. Node values are shared; finished nodes are
// read-only.
func copyDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return copyDoc(tv)
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
