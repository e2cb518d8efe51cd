package recjson

import (
	"fmt"
	"strings"

	"github.com/wippyai/recjson/codec"
	"github.com/wippyai/recjson/descriptor"
)

// Sink receives encoded output.
type Sink = codec.Sink

// Result reports syntax status and dropped values of a decode.
type Result = codec.Result

// Marshal returns the JSON object for v.
func Marshal[T any](v *T) ([]byte, error) {
	return codec.Marshal(v)
}

// MarshalTo appends the JSON object for v to sink.
func MarshalTo[T any](sink Sink, v *T) error {
	return codec.Encode(sink, v)
}

// Unmarshal populates v from data, leniently.
func Unmarshal[T any](data []byte, v *T) (Result, error) {
	return codec.Unmarshal(data, v)
}

// Describe renders the descriptor of T: one line per field with its index,
// offset, classification and slot width. Nested records follow, indented.
func Describe[T any]() (string, error) {
	d, err := descriptor.Of[T]()
	if err != nil {
		return "", err
	}
	return DescribeDescriptor(d), nil
}

// DescribeDescriptor renders d the way Describe does.
func DescribeDescriptor(d *descriptor.Descriptor) string {
	var b strings.Builder
	describe(&b, d, "", map[*descriptor.Descriptor]bool{})
	return b.String()
}

func describe(b *strings.Builder, d *descriptor.Descriptor, indent string, seen map[*descriptor.Descriptor]bool) {
	seen[d] = true
	fmt.Fprintf(b, "%s%s size=%d arity=%d\n", indent, d.Name, d.Size(), d.Arity.Count)

	for i := range d.Fields {
		f := &d.Fields[i]
		name := f.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(b, "%s  %d %s @%d %s", indent, f.Index, name, f.Offset, f.Type)
		if !f.Serialized() {
			b.WriteString(" (skipped)")
		}
		b.WriteByte('\n')
	}

	for i := range d.Fields {
		if nested := recordOf(d.Fields[i].Type); nested != nil && !seen[nested] {
			describe(b, nested, indent+"  ", seen)
		}
	}
}

// recordOf finds the record reached through containers, if any.
func recordOf(t *descriptor.Type) *descriptor.Descriptor {
	for t != nil {
		if t.Tag == descriptor.TagRecord {
			return t.Record
		}
		t = t.Elem
	}
	return nil
}
