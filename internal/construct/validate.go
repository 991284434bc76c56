package construct

import (
	"fmt"
	"sort"

	"github.com/kayz/fabula/internal/schema"
	"github.com/spf13/cast"
)

// Validate checks a candidate value set against the schema's per-field
// constraints. Nested node fields are expected to have been constructed
// already; their absence from data is tolerated here because the engine
// fills them in by recursion before instantiation.
//
// Every violation found in the pass is collected and reported as one
// aggregated error.
func Validate(data map[string]any, doc *schema.Document, shape Shape) error {
	var violations []*Error

	names := make([]string, 0, len(doc.Properties))
	for name := range doc.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, fieldName := range names {
		prop := doc.Properties[fieldName]
		value, present := data[fieldName]
		if !present {
			if !prop.Required {
				continue
			}
			field, declared := shape.FieldNamed(fieldName)
			if !declared {
				// Schema-only property; forward compatible extras are not
				// enforced against the data.
				continue
			}
			if field.Node != "" {
				// Constructed by recursion, never reported missing here.
				continue
			}
			violations = append(violations, &Error{
				Kind:  KindMissingRequiredField,
				Type:  shape.Name,
				Field: fieldName,
			})
			continue
		}

		if prop.Minimum != nil || prop.Maximum != nil {
			number, err := cast.ToFloat64E(value)
			if err != nil {
				violations = append(violations, &Error{
					Kind:  KindTypeMismatch,
					Type:  shape.Name,
					Field: fieldName,
					Msg:   fmt.Sprintf("bounds declared but value %v is not numeric", value),
				})
			} else {
				if prop.Minimum != nil && number < *prop.Minimum {
					violations = append(violations, &Error{
						Kind:  KindOutOfRange,
						Type:  shape.Name,
						Field: fieldName,
						Msg:   fmt.Sprintf("%v is below minimum %v", value, *prop.Minimum),
					})
				}
				if prop.Maximum != nil && number > *prop.Maximum {
					violations = append(violations, &Error{
						Kind:  KindOutOfRange,
						Type:  shape.Name,
						Field: fieldName,
						Msg:   fmt.Sprintf("%v is above maximum %v", value, *prop.Maximum),
					})
				}
			}
		}

		if len(prop.Enum) > 0 && !enumContains(prop.Enum, value) {
			violations = append(violations, &Error{
				Kind:  KindNotInEnum,
				Type:  shape.Name,
				Field: fieldName,
				Msg:   fmt.Sprintf("%v is not one of %v", value, prop.Enum),
			})
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return &Violations{Type: shape.Name, List: violations}
}

func enumContains(enum []any, value any) bool {
	for _, member := range enum {
		if member == value {
			return true
		}
		// YAML and caller-supplied numbers may differ in Go type (int vs
		// int64 vs float64) while being the same number.
		mf, merr := cast.ToFloat64E(member)
		vf, verr := cast.ToFloat64E(value)
		if merr == nil && verr == nil && mf == vf {
			_, mStr := member.(string)
			_, vStr := value.(string)
			if !mStr && !vStr {
				return true
			}
		}
	}
	return false
}
