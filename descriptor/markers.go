package descriptor

import "reflect"

// Ignore wraps a field value that keeps its place in the record but is never
// encoded or decoded.
type Ignore[T any] struct {
	Value T
}

func (Ignore[T]) ignoredField() {}

type ignoredMarker interface {
	ignoredField()
}

// Char is a single character encoded as a one-rune JSON string.
type Char rune

var (
	ignoredType   = reflect.TypeFor[ignoredMarker]()
	charType      = reflect.TypeFor[Char]()
	stringPtrType = reflect.TypeFor[*string]()
)
