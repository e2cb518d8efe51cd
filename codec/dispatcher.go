package codec

import (
	"strings"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/recjson/descriptor"
	"github.com/wippyai/recjson/errors"
	"github.com/wippyai/recjson/token"
)

// handler is one open JSON object or array. Methods return false to stop
// the parse.
type handler interface {
	scalar(d *Dispatcher, v scalar) bool
	startObject(d *Dispatcher) bool
	startArray(d *Dispatcher) bool
	key(d *Dispatcher, k string) bool
	end(d *Dispatcher) bool
}

// Dispatcher routes parser events to the handler on top of its stack and
// writes decoded values straight into the target record.
//
// The root record handler is pushed at construction, so the document's
// outermost StartObject opens nothing new. Values that cannot be stored are
// collected as mismatches; keys with no matching field are collected as
// unknown paths. Neither stops the parse.
type Dispatcher struct {
	desc       *descriptor.Descriptor
	stack      []handler
	mismatches []*errors.Error
	unknown    []string
	started    bool
}

// NewDispatcher binds a dispatcher to the record at rec, described by desc.
func NewDispatcher(desc *descriptor.Descriptor, rec unsafe.Pointer) *Dispatcher {
	d := &Dispatcher{
		desc:  desc,
		stack: make([]handler, 0, 8),
	}
	d.push(&recordHandler{desc: desc, rec: rec})
	return d
}

// Mismatches returns the values dropped so far.
func (d *Dispatcher) Mismatches() []*errors.Error {
	return d.mismatches
}

// Unknown returns the dotted paths of keys that matched no field.
func (d *Dispatcher) Unknown() []string {
	return d.unknown
}

// Depth returns the number of open handlers.
func (d *Dispatcher) Depth() int {
	return len(d.stack)
}

func (d *Dispatcher) push(h handler) {
	d.stack = append(d.stack, h)
}

func (d *Dispatcher) pop() {
	d.stack[len(d.stack)-1] = nil
	d.stack = d.stack[:len(d.stack)-1]
}

func (d *Dispatcher) top() handler {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

// root handles events that arrive before the root object is opened.
func (d *Dispatcher) root(got string) bool {
	d.started = true
	d.mismatches = append(d.mismatches,
		errors.TypeMismatch(errors.PhaseDecode, nil, d.desc.GoType.String(), got))
	Logger().Debug("root is not an object",
		zap.String("type", d.desc.Name),
		zap.String("got", got))
	return true
}

func (d *Dispatcher) dispatchScalar(v scalar) bool {
	if !d.started {
		return d.root(v.cat.String())
	}
	h := d.top()
	if h == nil {
		return true
	}
	return h.scalar(d, v)
}

// store assigns v into the value of type t at p, recording a mismatch when
// it cannot.
func (d *Dispatcher) store(t *descriptor.Type, p unsafe.Pointer, path []string, v scalar) bool {
	if kind := assign(t, p, v); kind != "" {
		d.mismatch(kind, t, path, v.cat.String(), v.value())
		return false
	}
	return true
}

// object opens a JSON object for the value of type t at p.
func (d *Dispatcher) object(t *descriptor.Type, p unsafe.Pointer, path []string, done func()) {
	switch t.Tag {
	case descriptor.TagRecord:
		d.push(&recordHandler{desc: t.Record, rec: p, path: path, done: done})
	case descriptor.TagAssociative:
		d.push(newMapHandler(t, p, path, done))
	default:
		d.mismatch(errors.KindTypeMismatch, t, path, "object", nil)
		d.push(&skipHandler{depth: 1})
	}
}

// array opens a JSON array for the value of type t at p.
func (d *Dispatcher) array(t *descriptor.Type, p unsafe.Pointer, path []string, done func()) {
	if t.Tag == descriptor.TagSequence {
		d.push(newSequenceHandler(t, p, path, done))
		return
	}
	d.mismatch(errors.KindTypeMismatch, t, path, "array", nil)
	d.push(&skipHandler{depth: 1})
}

func (d *Dispatcher) mismatch(kind errors.Kind, t *descriptor.Type, path []string, got string, value any) {
	var err *errors.Error
	if kind == errors.KindOverflow {
		err = errors.Overflow(errors.PhaseDecode, path, value, t.GoType.String())
	} else {
		err = errors.TypeMismatch(errors.PhaseDecode, path, t.GoType.String(), got)
		err.Value = value
	}
	d.mismatches = append(d.mismatches, err)
	Logger().Debug("value dropped",
		zap.String("path", strings.Join(path, ".")),
		zap.String("kind", string(kind)),
		zap.String("field_type", t.String()),
		zap.String("got", got))
}

func (d *Dispatcher) outOfBounds(path []string, index, length int) {
	d.mismatches = append(d.mismatches, errors.OutOfBounds(errors.PhaseDecode, path, index, length))
	Logger().Debug("array element dropped",
		zap.String("path", strings.Join(path, ".")),
		zap.Int("index", index),
		zap.Int("length", length))
}

func (d *Dispatcher) unknownKey(path []string) {
	p := strings.Join(path, ".")
	d.unknown = append(d.unknown, p)
	Logger().Debug("unknown key ignored", zap.String("path", p))
}

func (d *Dispatcher) Null() bool         { return d.dispatchScalar(scalar{cat: catNull}) }
func (d *Dispatcher) Bool(b bool) bool   { return d.dispatchScalar(scalar{cat: catBool, b: b}) }
func (d *Dispatcher) Int(i int32) bool   { return d.Int64(int64(i)) }
func (d *Dispatcher) Uint(u uint32) bool { return d.Uint64(uint64(u)) }

func (d *Dispatcher) Int64(i int64) bool {
	if i >= 0 {
		return d.dispatchScalar(scalar{cat: catUnsigned, u: uint64(i)})
	}
	return d.dispatchScalar(scalar{cat: catSigned, i: i})
}

func (d *Dispatcher) Uint64(u uint64) bool {
	return d.dispatchScalar(scalar{cat: catUnsigned, u: u})
}

func (d *Dispatcher) Double(f float64) bool {
	return d.dispatchScalar(scalar{cat: catDouble, f: f})
}

func (d *Dispatcher) RawNumber(s string) bool {
	v, ok := parseRawNumber(s)
	if !ok {
		v = scalar{cat: catHuge, s: s}
	}
	return d.dispatchScalar(v)
}

func (d *Dispatcher) String(s string) bool {
	return d.dispatchScalar(scalar{cat: catString, s: s})
}

func (d *Dispatcher) StartObject() bool {
	if !d.started {
		d.started = true
		return true
	}
	h := d.top()
	if h == nil {
		return true
	}
	return h.startObject(d)
}

func (d *Dispatcher) Key(s string) bool {
	h := d.top()
	if h == nil {
		return true
	}
	return h.key(d, s)
}

func (d *Dispatcher) EndObject(int) bool {
	h := d.top()
	if h == nil {
		return true
	}
	return h.end(d)
}

func (d *Dispatcher) StartArray() bool {
	if !d.started {
		d.root("array")
		d.stack = append(d.stack[:0], &skipHandler{depth: 1})
		return true
	}
	h := d.top()
	if h == nil {
		return true
	}
	return h.startArray(d)
}

func (d *Dispatcher) EndArray(int) bool {
	h := d.top()
	if h == nil {
		return true
	}
	return h.end(d)
}

var _ token.Handler = (*Dispatcher)(nil)
