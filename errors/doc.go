// Package errors provides structured error types for recjson.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path, the Go type involved, the offending value
// and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("config", "ratio").
//		GoType("float64").
//		Detail("string value not assignable").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseDecode, path, "float64", "string")
//	err := errors.ArityExceeded(typeName, 40, 32)
//
// Registration errors are fatal for the type involved. Decode mismatches are
// collected rather than returned, see package codec.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
