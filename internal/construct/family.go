package construct

import (
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// Family is a closed set of concrete configuration types fronted by one
// abstract role. The discriminator field in the parent's data selects which
// concrete type to build; resolution is strictly top-down.
type Family struct {
	Name          string
	Discriminator string
	// Default is the discriminator value assumed when the parent carries no
	// discriminator at all.
	Default string
	// Variants maps discriminator values to concrete type names. Lookup is
	// exact and case-sensitive.
	Variants map[string]string
}

// Resolve picks the concrete type for this family. Pure function of its
// inputs and the static variant table.
func (f *Family) Resolve(own, parent map[string]any) (string, error) {
	value := f.Default
	if parent != nil {
		if raw, ok := parent[f.Discriminator]; ok {
			value = cast.ToString(raw)
		}
	}
	concrete, ok := f.Variants[value]
	if !ok {
		return "", &Error{
			Kind: KindUnknownVariant,
			Type: f.Name,
			Msg:  fmt.Sprintf("%s=%q, valid values are %v", f.Discriminator, value, f.variantValues()),
		}
	}
	return concrete, nil
}

func (f *Family) variantValues() []string {
	values := make([]string, 0, len(f.Variants))
	for v := range f.Variants {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
