package schema

import (
	"fmt"
)

// Document describes one configuration type: its fields, their constraints
// and their defaults. Documents are pure data supplied by schema files and
// never mutated after loading.
type Document struct {
	Name       string
	Properties map[string]Property
}

// Property is one entry of a document's property table.
type Property struct {
	Required bool
	Type     string
	Default  any
	Minimum  *float64
	Maximum  *float64
	Enum     []any

	// HasRequired/HasType/HasDefault record whether the keys were present at
	// all in the source document; the consistency check and default merge
	// need to tell a zero value apart from an absent key.
	HasRequired bool
	HasType     bool
	HasDefault  bool
}

// NotFoundError reports that no schema document exists for a type name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schema not found for %q", e.Name)
}

// MalformedError reports that a schema resource exists but cannot be parsed
// into the property-table shape.
type MalformedError struct {
	Name   string
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed schema %q: %s: %v", e.Name, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed schema %q: %s", e.Name, e.Reason)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Store loads schema files by name. Loads must be idempotent and safe to
// call concurrently; the construction engine reloads on every call.
type Store interface {
	Load(name string) (File, error)
}
