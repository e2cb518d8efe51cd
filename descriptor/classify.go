package descriptor

import "reflect"

// Classify returns the Tag of t. Rules are tried in a fixed order and the
// first match wins; TagRecord is the fallback.
func Classify(t reflect.Type) Tag {
	if t.Implements(ignoredType) {
		return TagIgnored
	}
	if t == stringPtrType {
		return TagCharPointer
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return TagSmartRef
	case reflect.Bool:
		return TagBool
	}

	if t == charType {
		return TagChar
	}

	switch t.Kind() {
	case reflect.String:
		return TagString
	case reflect.Int64, reflect.Uint64:
		return TagInt64
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uintptr:
		return TagInt
	case reflect.Float32:
		return TagFloat
	case reflect.Float64:
		return TagDouble
	case reflect.Slice, reflect.Array:
		return TagSequence
	case reflect.Map:
		return TagAssociative
	default:
		return TagRecord
	}
}
