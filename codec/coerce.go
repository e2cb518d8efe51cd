package codec

import (
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/recjson/descriptor"
	"github.com/wippyai/recjson/errors"
)

// category is the JSON value class of a scalar event after normalization.
type category uint8

const (
	catNull category = iota
	catBool
	catSigned
	catUnsigned
	catDouble
	catString
	// number text outside float64 range, only seen with raw numbers
	catHuge
)

var categoryNames = [...]string{
	catNull:     "null",
	catBool:     "bool",
	catSigned:   "integer",
	catUnsigned: "integer",
	catDouble:   "double",
	catString:   "string",
	catHuge:     "number",
}

func (c category) String() string {
	return categoryNames[c]
}

// scalar is one decoded JSON scalar. Only the member matching cat is set.
type scalar struct {
	s   string
	f   float64
	i   int64
	u   uint64
	cat category
	b   bool
}

func (v scalar) value() any {
	switch v.cat {
	case catBool:
		return v.b
	case catSigned:
		return v.i
	case catUnsigned:
		return v.u
	case catDouble:
		return v.f
	case catString, catHuge:
		return v.s
	default:
		return nil
	}
}

// parseRawNumber classifies number text the same way the reader does.
func parseRawNumber(text string) (scalar, bool) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		if i < 0 {
			return scalar{cat: catSigned, i: i}, true
		}
		return scalar{cat: catUnsigned, u: uint64(i)}, true
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return scalar{cat: catUnsigned, u: u}, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && (math.IsInf(f, 0) || err.(*strconv.NumError).Err == strconv.ErrSyntax) {
		return scalar{}, false
	}
	return scalar{cat: catDouble, f: f}, true
}

// assign stores v into the value of type t at p. It returns the empty Kind
// on success, KindOverflow for numbers outside the field's range and
// KindTypeMismatch when the categories are incompatible.
func assign(t *descriptor.Type, p unsafe.Pointer, v scalar) errors.Kind {
	if v.cat == catNull {
		assignNull(t, p)
		return ""
	}
	if v.cat == catHuge {
		switch t.Tag {
		case descriptor.TagInt, descriptor.TagInt64, descriptor.TagFloat, descriptor.TagDouble:
			return errors.KindOverflow
		}
		return errors.KindTypeMismatch
	}

	switch t.Tag {
	case descriptor.TagBool:
		if v.cat != catBool {
			return errors.KindTypeMismatch
		}
		*(*bool)(p) = v.b

	case descriptor.TagInt, descriptor.TagInt64:
		return assignInteger(t.GoType, p, v)

	case descriptor.TagFloat:
		f, ok := asFloat(v)
		if !ok {
			return errors.KindTypeMismatch
		}
		if math.Abs(f) > math.MaxFloat32 {
			return errors.KindOverflow
		}
		*(*float32)(p) = float32(f)

	case descriptor.TagDouble:
		f, ok := asFloat(v)
		if !ok {
			return errors.KindTypeMismatch
		}
		*(*float64)(p) = f

	case descriptor.TagChar:
		if v.cat != catString {
			return errors.KindTypeMismatch
		}
		r, size := utf8.DecodeRuneInString(v.s)
		if size == 0 || size != len(v.s) {
			return errors.KindTypeMismatch
		}
		*(*descriptor.Char)(p) = descriptor.Char(r)

	case descriptor.TagCharPointer:
		if v.cat != catString {
			return errors.KindTypeMismatch
		}
		s := v.s
		*(**string)(p) = &s

	case descriptor.TagString:
		if v.cat != catString {
			return errors.KindTypeMismatch
		}
		*(*string)(p) = v.s

	default:
		return errors.KindTypeMismatch
	}
	return ""
}

// assignNull resets nullable values and leaves everything else untouched.
func assignNull(t *descriptor.Type, p unsafe.Pointer) {
	switch {
	case t.Tag == descriptor.TagCharPointer:
		*(**string)(p) = nil
	case t.Tag == descriptor.TagSequence && !t.IsArray(), t.Tag == descriptor.TagAssociative:
		reflect.NewAt(t.GoType, p).Elem().SetZero()
	}
}

func asFloat(v scalar) (float64, bool) {
	switch v.cat {
	case catSigned:
		return float64(v.i), true
	case catUnsigned:
		return float64(v.u), true
	case catDouble:
		return v.f, true
	}
	return 0, false
}

// asInt64 and asUint64 accept integral doubles, mirroring the reader's
// integer classes.
func asInt64(v scalar) (int64, bool) {
	switch v.cat {
	case catSigned:
		return v.i, true
	case catUnsigned:
		if v.u <= math.MaxInt64 {
			return int64(v.u), true
		}
	case catDouble:
		if v.f >= math.MinInt64 && v.f < math.MaxInt64 && v.f == math.Trunc(v.f) {
			return int64(v.f), true
		}
	}
	return 0, false
}

func asUint64(v scalar) (uint64, bool) {
	switch v.cat {
	case catUnsigned:
		return v.u, true
	case catSigned:
		if v.i >= 0 {
			return uint64(v.i), true
		}
	case catDouble:
		if v.f >= 0 && v.f < math.MaxUint64 && v.f == math.Trunc(v.f) {
			return uint64(v.f), true
		}
	}
	return 0, false
}

func assignInteger(goType reflect.Type, p unsafe.Pointer, v scalar) errors.Kind {
	if v.cat != catSigned && v.cat != catUnsigned && v.cat != catDouble {
		return errors.KindTypeMismatch
	}
	bits := uint(goType.Size() * 8)

	switch goType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := asInt64(v)
		if !ok {
			if v.cat == catDouble && v.f != math.Trunc(v.f) {
				return errors.KindTypeMismatch
			}
			return errors.KindOverflow
		}
		if bits < 64 && (i < -(1<<(bits-1)) || i > 1<<(bits-1)-1) {
			return errors.KindOverflow
		}
		switch goType.Kind() {
		case reflect.Int:
			*(*int)(p) = int(i)
		case reflect.Int8:
			*(*int8)(p) = int8(i)
		case reflect.Int16:
			*(*int16)(p) = int16(i)
		case reflect.Int32:
			*(*int32)(p) = int32(i)
		default:
			*(*int64)(p) = i
		}

	default:
		u, ok := asUint64(v)
		if !ok {
			if v.cat == catDouble && v.f != math.Trunc(v.f) {
				return errors.KindTypeMismatch
			}
			return errors.KindOverflow
		}
		if bits < 64 && u >= 1<<bits {
			return errors.KindOverflow
		}
		switch goType.Kind() {
		case reflect.Uint:
			*(*uint)(p) = uint(u)
		case reflect.Uint8:
			*(*uint8)(p) = uint8(u)
		case reflect.Uint16:
			*(*uint16)(p) = uint16(u)
		case reflect.Uint32:
			*(*uint32)(p) = uint32(u)
		case reflect.Uintptr:
			*(*uintptr)(p) = uintptr(u)
		default:
			*(*uint64)(p) = u
		}
	}
	return ""
}
