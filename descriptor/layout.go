package descriptor

import "reflect"

// measureOffsets takes a zero instance of t and returns, per field, the
// distance between the field's address and the instance base address.
func measureOffsets(t reflect.Type) []uintptr {
	v := reflect.New(t).Elem()
	base := v.UnsafeAddr()
	offsets := make([]uintptr, t.NumField())
	for i := range offsets {
		offsets[i] = v.Field(i).UnsafeAddr() - base
	}
	return offsets
}
