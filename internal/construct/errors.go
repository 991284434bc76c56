package construct

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies construction failures. Every kind is fatal for the
// whole tree; the engine never returns a partially built node.
type ErrorKind int

const (
	KindUnknownVariant ErrorKind = iota
	KindFieldMissingFromSchema
	KindSchemaEntryIncomplete
	KindTypeMismatch
	KindRequiredMismatch
	KindMissingRequiredField
	KindOutOfRange
	KindNotInEnum
	KindInstantiation
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnknownVariant:
		return "unknown variant"
	case KindFieldMissingFromSchema:
		return "field missing from schema"
	case KindSchemaEntryIncomplete:
		return "schema entry incomplete"
	case KindTypeMismatch:
		return "type mismatch"
	case KindRequiredMismatch:
		return "required status mismatch"
	case KindMissingRequiredField:
		return "missing required field"
	case KindOutOfRange:
		return "out of range"
	case KindNotInEnum:
		return "not in enum"
	case KindInstantiation:
		return "instantiation failed"
	default:
		return "construction error"
	}
}

// Error identifies the failing type, field and rule of one violation.
type Error struct {
	Kind  ErrorKind
	Type  string
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Type != "" {
		fmt.Fprintf(&b, " in %s", e.Type)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ", field %q", e.Field)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Violations aggregates every rule violation found in one validation pass,
// so a bad document reports all of its problems at once instead of one per
// run.
type Violations struct {
	Type string
	List []*Error
}

func (v *Violations) Error() string {
	if len(v.List) == 1 {
		return v.List[0].Error()
	}
	parts := make([]string, len(v.List))
	for i, e := range v.List {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("%d violations in %s: %s", len(v.List), v.Type, strings.Join(parts, "; "))
}

// IsKind reports whether err is, or aggregates, a construction error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *Error
	if errors.As(err, &ce) && ce.Kind == kind {
		return true
	}
	var vs *Violations
	if errors.As(err, &vs) {
		for _, v := range vs.List {
			if v.Kind == kind {
				return true
			}
		}
	}
	return false
}
