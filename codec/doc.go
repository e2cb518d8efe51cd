// Package codec encodes records to JSON and decodes JSON into records using
// the field descriptors of package descriptor.
//
// # Encoding
//
// The Encoder walks a descriptor's fields in declaration order and appends
// one JSON object per record to a Sink:
//
//	var buf codec.Buffer
//	err := codec.Encode(&buf, &cfg)
//
// Ignored and SmartRef fields are skipped. Map keys are written in sorted
// order. Nil slices encode as [] and nil maps as {}. A nil *string and a
// non-finite float encode as null.
//
// # Decoding
//
// Decoding is single pass. The reader pushes events into a Dispatcher which
// keeps one handler per open JSON object or array and writes values straight
// into the target record:
//
//	res, err := codec.Unmarshal(data, &cfg)
//
// Decoding is lenient: unknown keys are skipped and values that cannot be
// stored in their field are dropped. Both are reported in Result so callers
// can inspect them; Options.Strict turns dropped values into an error once
// the parse has finished. Syntax errors stop the parse and are reported with
// line, column and byte offset. Fields written before a failure keep their
// new values.
//
// Slices are appended to, so decoding into a populated record extends its
// slices. Fixed arrays are written from index zero and surplus elements are
// dropped. Map members are merged into the existing map.
//
// # Coercion
//
// JSON integers are stored into integer fields when they fit the field's Go
// type, and into float fields. Doubles are stored into float fields, and
// into integer fields only when integral and in range. Strings go into
// string, *string and Char fields (the latter only for exactly one rune).
// null resets *string, slices and maps to nil and is ignored for other fields.
package codec
