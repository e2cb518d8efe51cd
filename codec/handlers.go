package codec

import (
	"reflect"
	"strconv"
	"unsafe"

	"github.com/wippyai/recjson/descriptor"
)

// recordHandler fills the fields of one record.
type recordHandler struct {
	desc  *descriptor.Descriptor
	rec   unsafe.Pointer
	field *descriptor.Field // nil after an unknown key
	path  []string
	done  func()
}

func (h *recordHandler) key(d *Dispatcher, k string) bool {
	f, ok := h.desc.Lookup(k)
	if !ok {
		h.field = nil
		d.unknownKey(append(h.path[:len(h.path):len(h.path)], k))
		return true
	}
	h.field = f
	return true
}

func (h *recordHandler) scalar(d *Dispatcher, v scalar) bool {
	if h.field == nil {
		return true
	}
	d.store(h.field.Type, descriptor.Pointer(h.rec, h.field), h.field.Path(h.path), v)
	return true
}

func (h *recordHandler) startObject(d *Dispatcher) bool {
	if h.field == nil {
		d.push(&skipHandler{depth: 1})
		return true
	}
	d.object(h.field.Type, descriptor.Pointer(h.rec, h.field), h.field.Path(h.path), nil)
	return true
}

func (h *recordHandler) startArray(d *Dispatcher) bool {
	if h.field == nil {
		d.push(&skipHandler{depth: 1})
		return true
	}
	d.array(h.field.Type, descriptor.Pointer(h.rec, h.field), h.field.Path(h.path), nil)
	return true
}

func (h *recordHandler) end(d *Dispatcher) bool {
	d.pop()
	if h.done != nil {
		h.done()
	}
	return true
}

// sequenceHandler appends one element per value to a slice, or writes an
// array by index.
type sequenceHandler struct {
	typ  *descriptor.Type
	v    reflect.Value
	path []string
	n    int
	done func()
}

func newSequenceHandler(t *descriptor.Type, p unsafe.Pointer, path []string, done func()) *sequenceHandler {
	v := reflect.NewAt(t.GoType, p).Elem()
	if !t.IsArray() && v.IsNil() {
		v.Set(reflect.MakeSlice(t.GoType, 0, 0))
	}
	return &sequenceHandler{typ: t, v: v, path: path, done: done}
}

// next returns the slot for the next element, or nil if an array is full.
func (h *sequenceHandler) next(d *Dispatcher) (unsafe.Pointer, []string) {
	i := h.n
	h.n++
	path := append(h.path[:len(h.path):len(h.path)], strconv.Itoa(i))

	if h.typ.IsArray() {
		if i >= h.typ.Len {
			d.outOfBounds(path, i, h.typ.Len)
			return nil, path
		}
		return h.v.Index(i).Addr().UnsafePointer(), path
	}

	h.v.Set(reflect.Append(h.v, reflect.Zero(h.typ.Elem.GoType)))
	return h.v.Index(h.v.Len() - 1).Addr().UnsafePointer(), path
}

func (h *sequenceHandler) scalar(d *Dispatcher, v scalar) bool {
	p, path := h.next(d)
	if p != nil {
		d.store(h.typ.Elem, p, path, v)
	}
	return true
}

func (h *sequenceHandler) startObject(d *Dispatcher) bool {
	p, path := h.next(d)
	if p == nil {
		d.push(&skipHandler{depth: 1})
		return true
	}
	d.object(h.typ.Elem, p, path, nil)
	return true
}

func (h *sequenceHandler) startArray(d *Dispatcher) bool {
	p, path := h.next(d)
	if p == nil {
		d.push(&skipHandler{depth: 1})
		return true
	}
	d.array(h.typ.Elem, p, path, nil)
	return true
}

func (h *sequenceHandler) key(*Dispatcher, string) bool {
	return true
}

func (h *sequenceHandler) end(d *Dispatcher) bool {
	d.pop()
	if h.done != nil {
		h.done()
	}
	return true
}

// mapHandler decodes each member into a fresh element seeded with the
// existing entry, then stores it under the member's key.
type mapHandler struct {
	typ  *descriptor.Type
	m    reflect.Value
	cur  reflect.Value
	name string
	path []string
	done func()
}

func newMapHandler(t *descriptor.Type, p unsafe.Pointer, path []string, done func()) *mapHandler {
	m := reflect.NewAt(t.GoType, p).Elem()
	if m.IsNil() {
		m.Set(reflect.MakeMap(t.GoType))
	}
	return &mapHandler{typ: t, m: m, path: path, done: done}
}

func (h *mapHandler) key(_ *Dispatcher, k string) bool {
	h.name = k
	h.cur = reflect.ValueOf(k).Convert(h.typ.Key.GoType)
	return true
}

func (h *mapHandler) element() (reflect.Value, []string) {
	tmp := reflect.New(h.typ.Elem.GoType)
	if old := h.m.MapIndex(h.cur); old.IsValid() {
		tmp.Elem().Set(old)
	}
	return tmp, append(h.path[:len(h.path):len(h.path)], h.name)
}

func (h *mapHandler) commit(key, tmp reflect.Value) func() {
	return func() {
		h.m.SetMapIndex(key, tmp.Elem())
	}
}

func (h *mapHandler) scalar(d *Dispatcher, v scalar) bool {
	tmp, path := h.element()
	if d.store(h.typ.Elem, tmp.UnsafePointer(), path, v) {
		h.m.SetMapIndex(h.cur, tmp.Elem())
	}
	return true
}

func (h *mapHandler) startObject(d *Dispatcher) bool {
	tmp, path := h.element()
	d.object(h.typ.Elem, tmp.UnsafePointer(), path, h.commit(h.cur, tmp))
	return true
}

func (h *mapHandler) startArray(d *Dispatcher) bool {
	tmp, path := h.element()
	d.array(h.typ.Elem, tmp.UnsafePointer(), path, h.commit(h.cur, tmp))
	return true
}

func (h *mapHandler) end(d *Dispatcher) bool {
	d.pop()
	if h.done != nil {
		h.done()
	}
	return true
}

// skipHandler swallows one composite value.
type skipHandler struct {
	depth int
}

func (h *skipHandler) scalar(*Dispatcher, scalar) bool { return true }
func (h *skipHandler) key(*Dispatcher, string) bool    { return true }

func (h *skipHandler) startObject(*Dispatcher) bool {
	h.depth++
	return true
}

func (h *skipHandler) startArray(*Dispatcher) bool {
	h.depth++
	return true
}

func (h *skipHandler) end(d *Dispatcher) bool {
	h.depth--
	if h.depth == 0 {
		d.pop()
	}
	return true
}
