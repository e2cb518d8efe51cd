package witschema

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/recjson/descriptor"
	"github.com/wippyai/recjson/errors"
	"github.com/wippyai/recjson/witschema/internal/layout"
)

// Schema is the WIT form of one record and every record it reaches.
type Schema struct {
	// Root is the exported record.
	Root *wit.TypeDef
	// Records lists named records in dependency order, Root last.
	Records []*wit.TypeDef
	calc    *layout.Calculator
}

// FieldLayout is the Canonical ABI position of one record field.
type FieldLayout struct {
	Name   string
	Offset uint32
}

// Layout is the Canonical ABI memory layout of a record.
type Layout struct {
	Fields []FieldLayout
	Size   uint32
	Align  uint32
}

// Export builds the WIT schema of d.
func Export(d *descriptor.Descriptor) (*Schema, error) {
	e := &exporter{
		done:     make(map[*descriptor.Descriptor]*wit.TypeDef),
		visiting: make(map[*descriptor.Descriptor]bool),
	}
	root, err := e.record(d, nil)
	if err != nil {
		return nil, err
	}
	return &Schema{Root: root, Records: e.order, calc: layout.NewCalculator()}, nil
}

// ExportOf builds the WIT schema of T from the default registry.
func ExportOf[T any]() (*Schema, error) {
	d, err := descriptor.Of[T]()
	if err != nil {
		return nil, err
	}
	return Export(d)
}

type exporter struct {
	done     map[*descriptor.Descriptor]*wit.TypeDef
	visiting map[*descriptor.Descriptor]bool
	order    []*wit.TypeDef
}

func (e *exporter) record(d *descriptor.Descriptor, path []string) (*wit.TypeDef, error) {
	if td, ok := e.done[d]; ok {
		return td, nil
	}
	if e.visiting[d] {
		return nil, errors.Unsupported(errors.PhaseEncode, path, d.Name, "recursive records have no WIT form")
	}
	e.visiting[d] = true
	defer delete(e.visiting, d)

	rec := &wit.Record{}
	for i := range d.Fields {
		f := &d.Fields[i]
		if !f.Serialized() {
			continue
		}
		typ, err := e.typeOf(f.Type, f.Path(path))
		if err != nil {
			return nil, err
		}
		rec.Fields = append(rec.Fields, wit.Field{Name: ident(f.Name), Type: typ})
	}

	name := ident(typeBaseName(d.GoType))
	td := &wit.TypeDef{Name: &name, Kind: rec}
	e.done[d] = td
	e.order = append(e.order, td)
	return td, nil
}

func (e *exporter) typeOf(t *descriptor.Type, path []string) (wit.Type, error) {
	switch t.Tag {
	case descriptor.TagBool:
		return wit.Bool{}, nil
	case descriptor.TagInt, descriptor.TagInt64:
		return integer(t.GoType.Kind()), nil
	case descriptor.TagFloat:
		return wit.F32{}, nil
	case descriptor.TagDouble:
		return wit.F64{}, nil
	case descriptor.TagChar:
		return wit.Char{}, nil
	case descriptor.TagString:
		return wit.String{}, nil
	case descriptor.TagCharPointer:
		return &wit.TypeDef{Kind: &wit.Option{Type: wit.String{}}}, nil

	case descriptor.TagSequence:
		elem, err := e.typeOf(t.Elem, path)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.List{Type: elem}}, nil

	case descriptor.TagAssociative:
		elem, err := e.typeOf(t.Elem, path)
		if err != nil {
			return nil, err
		}
		entry := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.String{}, elem}}}
		return &wit.TypeDef{Kind: &wit.List{Type: entry}}, nil

	case descriptor.TagRecord:
		return e.record(t.Record, path)
	}
	return nil, errors.Unsupported(errors.PhaseEncode, path, t.GoType.String(), "no WIT form for "+t.Tag.String())
}

func integer(k reflect.Kind) wit.Type {
	switch k {
	case reflect.Int8:
		return wit.S8{}
	case reflect.Int16:
		return wit.S16{}
	case reflect.Int32:
		return wit.S32{}
	case reflect.Int, reflect.Int64:
		return wit.S64{}
	case reflect.Uint8:
		return wit.U8{}
	case reflect.Uint16:
		return wit.U16{}
	case reflect.Uint32:
		return wit.U32{}
	default:
		return wit.U64{}
	}
}

func typeBaseName(t reflect.Type) string {
	if name := t.Name(); name != "" {
		// instantiated generics carry their type arguments
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		return name
	}
	return "anonymous-record"
}

var keywords = map[string]bool{
	"bool": true, "s8": true, "s16": true, "s32": true, "s64": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "f32": true, "f64": true,
	"char": true, "string": true, "list": true, "option": true, "tuple": true,
	"result": true, "record": true, "variant": true, "enum": true, "flags": true,
	"resource": true, "type": true, "func": true, "use": true, "own": true,
	"borrow": true, "interface": true, "world": true, "package": true,
	"import": true, "export": true, "include": true, "with": true,
	"static": true, "constructor": true, "future": true, "stream": true,
}

// ident converts a Go name to a WIT identifier, escaping keywords with %.
func ident(name string) string {
	k := Kebab(name)
	if keywords[k] {
		return "%" + k
	}
	return k
}

// Kebab converts a Go identifier to a WIT identifier: "InnerList" becomes
// "inner-list" and "HTTPServer" becomes "http-server".
func Kebab(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)

	for i, r := range runes {
		switch {
		case r == '_' || r == ' ':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
			continue
		case unicode.IsUpper(r):
			if i > 0 && b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('-')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Layout computes the Canonical ABI layout of the root record.
func (s *Schema) Layout() Layout {
	info := s.calc.Calculate(s.Root)
	rec := s.Root.Kind.(*wit.Record)

	out := Layout{Size: info.Size, Align: info.Align, Fields: make([]FieldLayout, len(rec.Fields))}
	for i, f := range rec.Fields {
		out.Fields[i] = FieldLayout{Name: f.Name, Offset: info.FieldOffs[f.Name]}
	}
	return out
}

// String renders the schema as WIT record definitions.
func (s *Schema) String() string {
	var b strings.Builder
	for i, td := range s.Records {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "record %s {\n", *td.Name)
		for _, f := range td.Kind.(*wit.Record).Fields {
			fmt.Fprintf(&b, "    %s: %s,\n", f.Name, TypeString(f.Type))
		}
		b.WriteString("}\n")
	}
	return b.String()
}

// TypeString renders a type expression as it appears in WIT source.
func TypeString(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		switch k := v.Kind.(type) {
		case *wit.List:
			return "list<" + TypeString(k.Type) + ">"
		case *wit.Option:
			return "option<" + TypeString(k.Type) + ">"
		case *wit.Tuple:
			parts := make([]string, len(k.Types))
			for i, et := range k.Types {
				parts[i] = TypeString(et)
			}
			return "tuple<" + strings.Join(parts, ", ") + ">"
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}
