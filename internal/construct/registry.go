package construct

import (
	"fmt"
)

// Node is one finished, statically typed unit of configuration. A parent
// node exclusively owns its children; the tree is acyclic by construction.
type Node interface {
	TypeName() string
	// CanonicalDoc serializes the node back to a plain nested mapping, the
	// same shape Construct accepts as input.
	CanonicalDoc() map[string]any
}

// Registration binds a concrete type name to everything the engine needs to
// build it: the declared shape, the schema document to load, and the typed
// factory.
type Registration struct {
	Shape Shape

	// SchemaName returns the schema store name for this construction. Most
	// types use a fixed name; some pick a document based on their own or
	// their parent's data (generation presets, for example). When nil the
	// shape name is used as-is.
	SchemaName func(own, parent map[string]any) (string, error)

	// Make instantiates the concrete type from validated data. Nested node
	// fields arrive as already constructed Node values. Coercion failures
	// are returned as plain errors and surface as instantiation errors.
	Make func(doc map[string]any) (Node, error)
}

// Registry is the closed, statically registered table of configuration
// types and variant families. Lookup is by type name; nothing is resolved
// at runtime beyond this table.
type Registry struct {
	types    map[string]*Registration
	families map[string]*Family
}

func NewRegistry() *Registry {
	return &Registry{
		types:    make(map[string]*Registration),
		families: make(map[string]*Family),
	}
}

// RegisterType adds a concrete type. Registering the same name twice is a
// programming error.
func (r *Registry) RegisterType(name string, reg *Registration) {
	if _, exists := r.types[name]; exists {
		panic(fmt.Sprintf("construct: type %q registered twice", name))
	}
	reg.Shape.Name = name
	r.types[name] = reg
}

// RegisterFamily adds a variant family. Every variant target must be
// registered as a type before construction time.
func (r *Registry) RegisterFamily(fam *Family) {
	if _, exists := r.families[fam.Name]; exists {
		panic(fmt.Sprintf("construct: family %q registered twice", fam.Name))
	}
	r.families[fam.Name] = fam
}

// Type returns the registration for a concrete type name.
func (r *Registry) Type(name string) (*Registration, bool) {
	reg, ok := r.types[name]
	return reg, ok
}

// Family returns the family registered under name, if any.
func (r *Registry) Family(name string) (*Family, bool) {
	fam, ok := r.families[name]
	return fam, ok
}
