package descriptor

import (
	"reflect"
	"strconv"
	"unsafe"

	"github.com/wippyai/recjson/errors"
)

// Pointer returns the address of field f inside the record at rec.
func Pointer(rec unsafe.Pointer, f *Field) unsafe.Pointer {
	return unsafe.Add(rec, f.Offset)
}

// Value returns a settable reflect.Value for field f inside the record at rec.
func Value(rec unsafe.Pointer, f *Field) reflect.Value {
	return reflect.NewAt(f.Type.GoType, Pointer(rec, f)).Elem()
}

// Ref returns a typed, writable reference to the index-th field of rec.
// F must be exactly the field's declared type.
func Ref[F, R any](rec *R, index int) (*F, error) {
	if rec == nil {
		return nil, errors.NilPointer(errors.PhaseAccess, nil, reflect.TypeFor[*R]().String())
	}
	d, err := Of[R]()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(d.Fields) {
		return nil, errors.OutOfBounds(errors.PhaseAccess, []string{d.Name}, index, len(d.Fields))
	}

	f := &d.Fields[index]
	want := reflect.TypeFor[F]()
	if f.Type.GoType != want {
		return nil, errors.New(errors.PhaseAccess, errors.KindTypeMismatch).
			Path(d.Name, f.Name).
			GoType(f.Type.GoType.String()).
			Detail("requested as %s", want).
			Build()
	}
	return (*F)(Pointer(unsafe.Pointer(rec), f)), nil
}

// Get returns a copy of the index-th field of rec.
func Get[F, R any](rec *R, index int) (F, error) {
	p, err := Ref[F](rec, index)
	if err != nil {
		var zero F
		return zero, err
	}
	return *p, nil
}

// RefByName is like Ref but addresses the field by its serialized name.
func RefByName[F, R any](rec *R, name string) (*F, error) {
	d, err := Of[R]()
	if err != nil {
		return nil, err
	}
	f, ok := d.Lookup(name)
	if !ok {
		return nil, errors.FieldMissing(errors.PhaseAccess, []string{d.Name}, name)
	}
	return Ref[F](rec, f.Index)
}

// Path renders a field position for logs and errors.
func (f *Field) Path(parent []string) []string {
	if f.Name != "" {
		return errors.Join(parent, f.Name)
	}
	return errors.Join(parent, strconv.Itoa(f.Index))
}
