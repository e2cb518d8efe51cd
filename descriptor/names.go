package descriptor

import (
	"reflect"
	"strings"
)

// Namer maps a declared field to the name used in JSON. An empty name
// excludes the field from encoding and decoding.
type Namer interface {
	FieldName(f reflect.StructField) string
}

// DeclaredNamer uses the Go identifier unchanged.
type DeclaredNamer struct{}

func (DeclaredNamer) FieldName(f reflect.StructField) string {
	return f.Name
}

// TagNamer reads the name from a struct tag, falling back to the identifier
// when the tag is absent or has an empty name part. A tag of exactly "-"
// excludes the field; "-," names it "-".
type TagNamer struct {
	Key string
}

func (n TagNamer) FieldName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup(n.Key)
	if !ok {
		return f.Name
	}
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
