package descriptor

import (
	"reflect"
	"testing"
	"unsafe"
)

type classifyPoint struct{ X, Y int }

type namedString string

type embeddedIgnore struct {
	Ignore[int]
}

func TestClassify(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		name string
		want Tag
	}{
		{reflect.TypeFor[bool](), "bool", TagBool},
		{reflect.TypeFor[int](), "int", TagInt},
		{reflect.TypeFor[int8](), "int8", TagInt},
		{reflect.TypeFor[uint16](), "uint16", TagInt},
		{reflect.TypeFor[int32](), "int32", TagInt},
		{reflect.TypeFor[rune](), "rune", TagInt},
		{reflect.TypeFor[uintptr](), "uintptr", TagInt},
		{reflect.TypeFor[int64](), "int64", TagInt64},
		{reflect.TypeFor[uint64](), "uint64", TagInt64},
		{reflect.TypeFor[float32](), "float32", TagFloat},
		{reflect.TypeFor[float64](), "float64", TagDouble},
		{reflect.TypeFor[Char](), "Char", TagChar},
		{reflect.TypeFor[*string](), "*string", TagCharPointer},
		{reflect.TypeFor[string](), "string", TagString},
		{reflect.TypeFor[namedString](), "named string", TagString},
		{reflect.TypeFor[[]int](), "slice", TagSequence},
		{reflect.TypeFor[[3]float64](), "array", TagSequence},
		{reflect.TypeFor[map[string]int](), "map", TagAssociative},
		{reflect.TypeFor[map[int]int](), "int-keyed map", TagAssociative},
		{reflect.TypeFor[classifyPoint](), "struct", TagRecord},
		{reflect.TypeFor[complex128](), "complex falls back", TagRecord},
		{reflect.TypeFor[Ignore[string]](), "ignore", TagIgnored},
		{reflect.TypeFor[Ignore[*int]](), "ignore wins over pointer", TagIgnored},
		{reflect.TypeFor[*Ignore[int]](), "pointer to ignore", TagIgnored},
		{reflect.TypeFor[embeddedIgnore](), "embedded ignore", TagIgnored},
		{reflect.TypeFor[*int](), "pointer", TagSmartRef},
		{reflect.TypeFor[*classifyPoint](), "struct pointer", TagSmartRef},
		{reflect.TypeFor[any](), "interface", TagSmartRef},
		{reflect.TypeFor[func()](), "func", TagSmartRef},
		{reflect.TypeFor[chan int](), "chan", TagSmartRef},
		{reflect.TypeFor[unsafe.Pointer](), "unsafe pointer", TagSmartRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.typ); got != tt.want {
				t.Errorf("Classify(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestTagString(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
	}{
		{"bool", TagBool},
		{"char_pointer", TagCharPointer},
		{"associative", TagAssociative},
		{"smart_ref", TagSmartRef},
		{"unknown", Tag(200)},
	}
	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.name {
			t.Errorf("Tag(%d).String() = %q, want %q", tt.tag, got, tt.name)
		}
	}
}

func TestTagPredicates(t *testing.T) {
	for tag := TagBool; tag <= TagSmartRef; tag++ {
		wantSerialized := tag != TagIgnored && tag != TagSmartRef
		if tag.Serialized() != wantSerialized {
			t.Errorf("%v.Serialized() = %v", tag, tag.Serialized())
		}
	}
	if !TagString.IsScalar() || TagSequence.IsScalar() {
		t.Error("IsScalar boundary wrong")
	}
	if TagBool.IsNumeric() || !TagInt64.IsNumeric() || !TagDouble.IsNumeric() || TagChar.IsNumeric() {
		t.Error("IsNumeric wrong")
	}
}
