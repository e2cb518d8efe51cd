// Package witschema describes registered records as WebAssembly Interface
// Types. A record becomes a named WIT record whose fields keep declaration
// order; field and type names are converted to kebab-case.
//
// # Type Mapping
//
//	bool                 bool
//	int8..int32          s8, s16, s32
//	int, int64           s64
//	uint8..uint32        u8, u16, u32
//	uint, uint64         u64
//	float32, float64     f32, f64
//	descriptor.Char      char
//	string               string
//	*string              option<string>
//	[]T, [N]T            list<T>
//	map[string]V         list<tuple<string, V>>
//	struct               named record
//
// Ignored and SmartRef fields are left out. WIT has no recursive types, so
// records that reach themselves cannot be exported.
package witschema
