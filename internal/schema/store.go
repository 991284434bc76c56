package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// File is one parsed schema resource: a mapping from type name to that
// type's document. Most files describe a single type, but nothing forbids
// bundling several.
type File map[string]*Document

// For returns the document for the given type name.
func (f File) For(typeName string) (*Document, error) {
	doc, ok := f[typeName]
	if !ok {
		return nil, &NotFoundError{Name: typeName}
	}
	return doc, nil
}

// DirStore loads schema files from a directory tree. Names are slash
// separated relative paths without extension, e.g.
// "generation/backends/openai".
type DirStore struct {
	Root string
}

func NewDirStore(root string) *DirStore {
	return &DirStore{Root: root}
}

func (s *DirStore) Load(name string) (File, error) {
	var data []byte
	var err error
	for _, ext := range []string{".yml", ".yaml"} {
		data, err = os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(name)+ext))
		if err == nil {
			break
		}
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("read schema %q: %w", name, err)
	}
	return Parse(name, data)
}

// MapStore serves schema files from memory. Used by tests and by callers
// that embed their schemas.
type MapStore map[string][]byte

func (s MapStore) Load(name string) (File, error) {
	data, ok := s[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return Parse(name, data)
}

// Parse decodes schema file bytes into a File. The expected shape is
//
//	TypeName:
//	  properties:
//	    field_name:
//	      required: true
//	      type: string
//	      default: ...
//	      minimum: 0
//	      maximum: 10
//	      enum: [a, b]
func Parse(name string, data []byte) (File, error) {
	var raw map[string]struct {
		Properties map[string]map[string]any `yaml:"properties"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedError{Name: name, Reason: "not valid yaml", Err: err}
	}
	if len(raw) == 0 {
		return nil, &MalformedError{Name: name, Reason: "no type entries"}
	}

	file := make(File, len(raw))
	for typeName, entry := range raw {
		if entry.Properties == nil {
			return nil, &MalformedError{Name: name, Reason: fmt.Sprintf("type %q has no properties table", typeName)}
		}
		doc := &Document{Name: typeName, Properties: make(map[string]Property, len(entry.Properties))}
		for fieldName, attrs := range entry.Properties {
			prop, err := parseProperty(attrs)
			if err != nil {
				return nil, &MalformedError{Name: name, Reason: fmt.Sprintf("property %s.%s", typeName, fieldName), Err: err}
			}
			doc.Properties[fieldName] = prop
		}
		file[typeName] = doc
	}
	return file, nil
}

func parseProperty(attrs map[string]any) (Property, error) {
	var prop Property
	if v, ok := attrs["required"]; ok {
		req, err := cast.ToBoolE(v)
		if err != nil {
			return prop, fmt.Errorf("required: %w", err)
		}
		prop.Required = req
		prop.HasRequired = true
	}
	if v, ok := attrs["type"]; ok {
		t, err := cast.ToStringE(v)
		if err != nil {
			return prop, fmt.Errorf("type: %w", err)
		}
		prop.Type = t
		prop.HasType = true
	}
	if v, ok := attrs["default"]; ok {
		prop.Default = v
		prop.HasDefault = true
	}
	if v, ok := attrs["minimum"]; ok {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return prop, fmt.Errorf("minimum: %w", err)
		}
		prop.Minimum = &f
	}
	if v, ok := attrs["maximum"]; ok {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return prop, fmt.Errorf("maximum: %w", err)
		}
		prop.Maximum = &f
	}
	if v, ok := attrs["enum"]; ok {
		list, err := cast.ToSliceE(v)
		if err != nil {
			return prop, fmt.Errorf("enum: %w", err)
		}
		prop.Enum = list
	}
	return prop, nil
}
