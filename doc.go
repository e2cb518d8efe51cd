// Package recjson serializes Go structs to JSON and back using per-type field
// descriptors built once by reflection.
//
// A descriptor records every field's name, classification and byte offset.
// The encoder walks it and writes each field in declaration order. The
// decoder is a push parser: JSON events drive a stack of handlers that write
// values directly into the target struct, with no intermediate tree.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	recjson/             Root package with the convenience API
//	├── descriptor/      Type classification, arity, names, offsets, cache
//	├── token/           Push-parser event interface and recorder
//	├── reader/          JSON text to token events
//	├── codec/           Encoder, decode dispatcher and handlers
//	├── witschema/       WIT record export and canonical ABI layout
//	├── metrics/         Prometheus observer for codec calls
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
//	type Config struct {
//	    Flag   bool
//	    Values []int
//	}
//
//	data, err := recjson.Marshal(&Config{Flag: true, Values: []int{1, 2, 3}})
//	// {"Flag":true,"Values":[1,2,3]}
//
//	var cfg Config
//	res, err := recjson.Unmarshal(data, &cfg)
//
// # Field Classification
//
//   - Scalars: bool, integers, float32, float64, descriptor.Char, string
//   - *string is a nullable string
//   - Slices and arrays are sequences, map[string]V is associative
//   - Nested structs are records
//   - Other pointers, interfaces, funcs and channels are never serialized
//   - descriptor.Ignore[T] excludes a field explicitly
//
// # Decoding Policy
//
// Unknown keys and values that do not fit their field are skipped. They are
// listed in the decode Result and become an error only with
// codec.Options.Strict. Syntax errors carry line, column and offset.
//
// # Thread Safety
//
// Registries, encoders and decoders are safe for concurrent use. A
// Dispatcher belongs to a single parse.
package recjson
