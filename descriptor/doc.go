// Package descriptor introspects plain Go struct types into ordered field
// descriptors used by the encoder and the streaming decoder.
//
// A Descriptor lists every field of a record in declaration order with its
// name, classified Tag, byte offset and slot width. Descriptors are built once
// per type by a Registry and never mutated afterwards:
//
//	d, err := descriptor.Of[Config]()
//	f, ok := d.Lookup("ratio")
//	p := descriptor.Pointer(unsafe.Pointer(&cfg), f)
//
// # Classification
//
// Field types are classified structurally into a closed set of tags. The
// order of the rules is fixed: the Ignore wrapper wins over everything,
// *string is a nullable CharPointer, every other pointer or interface is a
// SmartRef, Char is tested before the integer rules, and anything that no rule
// claims is a nested Record. Ignored and SmartRef fields keep their memory
// slot but are never encoded or decoded.
//
// # Arity
//
// Each descriptor carries an Arity: the number of flattened leaf slots (Raw),
// the number of top-level fields (Count) and the slot width of each field.
// A nested record field is as wide as its own Raw count; every other field is
// one slot wide. Records whose Count exceeds Options.MaxArity, or whose nested
// width exceeds Options.MaxWidth, fail at registration.
//
// # Thread Safety
//
// Registry lookups are lock-free once a type is cached. The first
// registration of a type is serialized by a mutex so each type maps to
// exactly one Descriptor.
package descriptor
