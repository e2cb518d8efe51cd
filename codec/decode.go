package codec

import (
	"reflect"
	"time"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/recjson/descriptor"
	"github.com/wippyai/recjson/errors"
	"github.com/wippyai/recjson/reader"
)

// Result is the outcome of a decode: the reader's syntax status plus the
// values that were dropped along the way.
type Result struct {
	reader.Result
	Mismatches []*errors.Error
	Unknown    []string
}

// Clean reports whether the document parsed and every value was stored.
func (r Result) Clean() bool {
	return r.OK && len(r.Mismatches) == 0
}

// Decoder populates records from JSON text. It is safe for concurrent use.
type Decoder struct {
	opts Options
}

func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts.normalized()}
}

var defaultDecoder = NewDecoder(DefaultOptions())

// Decode fills v, a non-nil pointer to a struct, from data.
//
// Unknown keys and values that do not fit their field are skipped and
// listed in the Result. The returned error is non-nil for a syntax error,
// for an unusable v, and in strict mode when anything was dropped.
func (dec *Decoder) Decode(data []byte, v any) (Result, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer {
		return Result{}, errors.InvalidInput(errors.PhaseDecode, "decode target must be a pointer to a struct")
	}
	if rv.IsNil() {
		return Result{}, errors.NilPointer(errors.PhaseDecode, nil, rv.Type().String())
	}

	d, err := dec.opts.Registry.For(rv.Type())
	if err != nil {
		return Result{}, err
	}
	return dec.DecodeRecord(data, d, rv.UnsafePointer())
}

// DecodeRecord fills the record at rec, described by d, from data.
func (dec *Decoder) DecodeRecord(data []byte, d *descriptor.Descriptor, rec unsafe.Pointer) (Result, error) {
	start := time.Now()

	disp := NewDispatcher(d, rec)
	res := Result{
		Result: reader.ParseWithOptions(data, disp, reader.Options{
			RawNumbers: dec.opts.RawNumbers,
			MaxDepth:   dec.opts.MaxDepth,
		}),
		Mismatches: disp.Mismatches(),
		Unknown:    disp.Unknown(),
	}

	if dec.opts.Observer != nil {
		dec.opts.Observer.Decoded(d.Name, DecodeStats{
			Elapsed:    time.Since(start),
			Bytes:      len(data),
			Mismatches: len(res.Mismatches),
			Unknown:    len(res.Unknown),
			Code:       res.Code,
			OK:         res.OK,
		})
	}

	if !res.OK {
		Logger().Debug("decode failed",
			zap.String("type", d.Name),
			zap.Stringer("code", res.Code),
			zap.Int("line", res.Line),
			zap.Int("column", res.Column))
		return res, res.Err()
	}

	if dec.opts.Strict && len(res.Mismatches) > 0 {
		return res, errors.New(errors.PhaseDecode, res.Mismatches[0].Kind).
			GoType(d.GoType.String()).
			Value(len(res.Mismatches)).
			Detail("%d value(s) dropped", len(res.Mismatches)).
			Cause(res.Mismatches[0]).
			Build()
	}
	return res, nil
}

// Decode fills v from data using opts.
func Decode(data []byte, v any, opts Options) (Result, error) {
	return NewDecoder(opts).Decode(data, v)
}

// Unmarshal fills rec from data with the default options.
func Unmarshal[T any](data []byte, rec *T) (Result, error) {
	return defaultDecoder.Decode(data, rec)
}
