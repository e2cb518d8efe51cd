// Package layout computes Canonical ABI size, alignment and field offsets
// for the WIT types produced by witschema.
//
// # Layout Rules
//
//   - Primitives: size equals alignment (u8=1, u32=4, u64=8, etc.)
//   - Records and tuples: members laid out in order, padded to alignment
//   - Options: one discriminant byte followed by the aligned payload
//   - Lists/Strings: (pointer, length) pair in memory, content elsewhere
package layout
