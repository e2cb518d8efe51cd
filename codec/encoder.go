package codec

import (
	"math"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
	"unsafe"

	jsoniter "github.com/json-iterator/go"

	"github.com/wippyai/recjson/descriptor"
	"github.com/wippyai/recjson/errors"
)

var jsonAPI = jsoniter.Config{EscapeHTML: false}.Froze()

type sliceHeader struct {
	Data unsafe.Pointer
	Len  int
	Cap  int
}

// Encoder writes records as JSON objects. It is safe for concurrent use.
type Encoder struct {
	reg      *descriptor.Registry
	observer Observer
	prefixes sync.Map // *descriptor.Descriptor -> []string
}

func NewEncoder(opts Options) *Encoder {
	opts = opts.normalized()
	return &Encoder{reg: opts.Registry, observer: opts.Observer}
}

var defaultEncoder = NewEncoder(DefaultOptions())

// Encode appends the JSON form of v, a struct or pointer to struct, to sink.
// It fails only when the type cannot be registered.
func (e *Encoder) Encode(sink Sink, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return errors.NilPointer(errors.PhaseEncode, nil, "nil")
	}

	var ptr unsafe.Pointer
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return errors.NilPointer(errors.PhaseEncode, nil, rv.Type().String())
		}
		ptr = rv.UnsafePointer()
	} else {
		cp := reflect.New(rv.Type())
		cp.Elem().Set(rv)
		ptr = cp.UnsafePointer()
	}

	d, err := e.reg.For(rv.Type())
	if err != nil {
		return err
	}
	e.EncodeRecord(sink, d, ptr)
	return nil
}

// EncodeRecord appends the record at rec, described by d, to sink.
func (e *Encoder) EncodeRecord(sink Sink, d *descriptor.Descriptor, rec unsafe.Pointer) {
	var start time.Time
	if e.observer != nil {
		start = time.Now()
	}

	buf := getBuf()
	stream := jsonAPI.BorrowStream(nil)
	stream.SetBuffer(*buf)

	e.writeRecord(stream, d, rec)

	out := stream.Buffer()
	sink.Append(out)
	*buf = out
	stream.SetBuffer(nil)
	jsonAPI.ReturnStream(stream)
	putBuf(buf)

	if e.observer != nil {
		e.observer.Encoded(d.Name, len(out), time.Since(start))
	}
}

// fieldPrefixes returns the precomputed `"name":` text of every field.
func (e *Encoder) fieldPrefixes(d *descriptor.Descriptor) []string {
	if cached, ok := e.prefixes.Load(d); ok {
		return cached.([]string)
	}

	prefixes := make([]string, len(d.Fields))
	stream := jsoniter.NewStream(jsonAPI, nil, 64)
	for i := range d.Fields {
		stream.Reset(nil)
		stream.WriteObjectField(validUTF8(d.Fields[i].Name))
		prefixes[i] = string(stream.Buffer())
	}

	actual, _ := e.prefixes.LoadOrStore(d, prefixes)
	return actual.([]string)
}

func (e *Encoder) writeRecord(s *jsoniter.Stream, d *descriptor.Descriptor, rec unsafe.Pointer) {
	prefixes := e.fieldPrefixes(d)

	s.WriteObjectStart()
	first := true
	for i := range d.Fields {
		f := &d.Fields[i]
		if !f.Serialized() {
			continue
		}
		if !first {
			s.WriteMore()
		}
		first = false
		s.WriteRaw(prefixes[i])
		e.writeValue(s, f.Type, descriptor.Pointer(rec, f))
	}
	s.WriteObjectEnd()
}

func (e *Encoder) writeValue(s *jsoniter.Stream, t *descriptor.Type, p unsafe.Pointer) {
	switch t.Tag {
	case descriptor.TagBool:
		s.WriteBool(*(*bool)(p))

	case descriptor.TagInt, descriptor.TagInt64:
		writeInteger(s, t.GoType.Kind(), p)

	case descriptor.TagFloat:
		f := *(*float32)(p)
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			s.WriteNil()
			return
		}
		s.WriteFloat32(f)

	case descriptor.TagDouble:
		f := *(*float64)(p)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			s.WriteNil()
			return
		}
		s.WriteFloat64(f)

	case descriptor.TagChar:
		s.WriteString(string(rune(*(*descriptor.Char)(p))))

	case descriptor.TagCharPointer:
		sp := *(**string)(p)
		if sp == nil {
			s.WriteNil()
			return
		}
		s.WriteString(validUTF8(*sp))

	case descriptor.TagString:
		s.WriteString(validUTF8(*(*string)(p)))

	case descriptor.TagSequence:
		e.writeSequence(s, t, p)

	case descriptor.TagAssociative:
		e.writeAssociative(s, t, p)

	case descriptor.TagRecord:
		e.writeRecord(s, t.Record, p)
	}
}

// validUTF8 replaces invalid byte sequences with U+FFFD. The stream copies
// non-ASCII bytes through unchecked.
func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "\uFFFD")
}

func writeInteger(s *jsoniter.Stream, kind reflect.Kind, p unsafe.Pointer) {
	switch kind {
	case reflect.Int:
		s.WriteInt(*(*int)(p))
	case reflect.Int8:
		s.WriteInt8(*(*int8)(p))
	case reflect.Int16:
		s.WriteInt16(*(*int16)(p))
	case reflect.Int32:
		s.WriteInt32(*(*int32)(p))
	case reflect.Int64:
		s.WriteInt64(*(*int64)(p))
	case reflect.Uint:
		s.WriteUint(*(*uint)(p))
	case reflect.Uint8:
		s.WriteUint8(*(*uint8)(p))
	case reflect.Uint16:
		s.WriteUint16(*(*uint16)(p))
	case reflect.Uint32:
		s.WriteUint32(*(*uint32)(p))
	case reflect.Uint64:
		s.WriteUint64(*(*uint64)(p))
	case reflect.Uintptr:
		s.WriteUint64(uint64(*(*uintptr)(p)))
	}
}

func (e *Encoder) writeSequence(s *jsoniter.Stream, t *descriptor.Type, p unsafe.Pointer) {
	data, n := p, t.Len
	if !t.IsArray() {
		sh := (*sliceHeader)(p)
		data, n = sh.Data, sh.Len
	}

	size := t.Elem.GoType.Size()
	s.WriteArrayStart()
	for i := 0; i < n; i++ {
		if i > 0 {
			s.WriteMore()
		}
		e.writeValue(s, t.Elem, unsafe.Add(data, uintptr(i)*size))
	}
	s.WriteArrayEnd()
}

func (e *Encoder) writeAssociative(s *jsoniter.Stream, t *descriptor.Type, p unsafe.Pointer) {
	m := reflect.NewAt(t.GoType, p).Elem()

	s.WriteObjectStart()
	if m.Len() > 0 {
		keys := m.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})

		tmp := reflect.New(t.Elem.GoType)
		for i, k := range keys {
			if i > 0 {
				s.WriteMore()
			}
			s.WriteObjectField(validUTF8(k.String()))
			tmp.Elem().Set(m.MapIndex(k))
			e.writeValue(s, t.Elem, tmp.UnsafePointer())
		}
	}
	s.WriteObjectEnd()
}

// Encode appends v to sink using the default encoder.
func Encode[T any](sink Sink, v *T) error {
	return defaultEncoder.Encode(sink, v)
}

// Marshal returns the JSON form of v using the default encoder.
func Marshal[T any](v *T) ([]byte, error) {
	var buf Buffer
	if err := defaultEncoder.Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
