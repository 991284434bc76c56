package construct

// Kind is the static type of one configuration field.
type Kind int

const (
	KindInvalid Kind = iota
	String
	Int
	Float
	Bool
	List
	Map
	// Object marks a field whose value is itself a constructed node.
	Object
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case List:
		return "list"
	case Map:
		return "map"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// Field declares one field of a configuration type: its name, static kind
// and whether the engine must recurse into it. Declaring fields explicitly
// replaces runtime reflection over struct types.
type Field struct {
	Name string
	Kind Kind

	// Union lists member kinds for union-typed fields. When set, Kind is
	// ignored and a schema type only matches if every member matches.
	Union []Kind

	// Optional marks fields that may be absent from the finished node
	// (pointer-typed or defaulted in Go terms).
	Optional bool

	// Node names the family or concrete type this field is built from. The
	// engine constructs such fields recursively before validating the
	// parent.
	Node string
}

// Required reports whether the field must end up populated.
func (f Field) Required() bool { return !f.Optional }

// Shape is the declared field set of one concrete configuration type.
type Shape struct {
	Name   string
	Fields []Field
}

// FieldNamed returns the declared field with the given name.
func (s Shape) FieldNamed(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
