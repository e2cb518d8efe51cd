package descriptor

import "reflect"

// Type is the classified shape of a field or container element.
type Type struct {
	GoType reflect.Type
	Elem   *Type       // sequence element or associative value
	Key    *Type       // associative key, always TagString
	Record *Descriptor // nested record
	Len    int         // fixed array length, -1 otherwise
	Tag    Tag
}

// IsArray reports whether a sequence has a fixed length.
func (t *Type) IsArray() bool {
	return t.Tag == TagSequence && t.Len >= 0
}

func (t *Type) String() string {
	switch t.Tag {
	case TagSequence:
		return t.Tag.String() + "<" + t.Elem.String() + ">"
	case TagAssociative:
		return t.Tag.String() + "<" + t.Key.String() + "," + t.Elem.String() + ">"
	case TagRecord:
		return t.Record.Name
	default:
		return t.Tag.String()
	}
}

// Field describes one declared field of a record.
type Field struct {
	Type   *Type
	Name   string
	Index  int
	Offset uintptr
	Width  int
	blank  bool
}

// Serialized reports whether the field is encoded and decoded.
func (f *Field) Serialized() bool {
	return !f.blank && f.Type.Tag.Serialized()
}

// Descriptor is the immutable metadata of one record type.
type Descriptor struct {
	GoType reflect.Type
	byName map[string]int
	Name   string
	Fields []Field
	Arity  Arity
}

// Lookup finds a serialized field by name.
func (d *Descriptor) Lookup(name string) (*Field, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}
	return &d.Fields[i], true
}

// Field returns the i-th declared field.
func (d *Descriptor) Field(i int) *Field {
	return &d.Fields[i]
}

// NumField returns the number of declared fields.
func (d *Descriptor) NumField() int {
	return len(d.Fields)
}

// Size returns the record size in bytes.
func (d *Descriptor) Size() uintptr {
	return d.GoType.Size()
}
