package codec

import (
	"time"

	"github.com/wippyai/recjson/descriptor"
	"github.com/wippyai/recjson/reader"
)

// Observer receives per-call statistics. Implementations must be safe for
// concurrent use.
type Observer interface {
	Encoded(typeName string, bytes int, elapsed time.Duration)
	Decoded(typeName string, stats DecodeStats)
}

// DecodeStats summarizes one decode call.
type DecodeStats struct {
	Elapsed    time.Duration
	Bytes      int
	Mismatches int
	Unknown    int
	Code       reader.Code
	OK         bool
}

// Options configures encoders and decoders.
type Options struct {
	// Registry resolves descriptors. Nil means descriptor.Default().
	Registry *descriptor.Registry
	Observer Observer
	MaxDepth int
	// Strict makes Decode return an error when values were dropped.
	Strict bool
	// RawNumbers parses numbers from their source text instead of the
	// reader's classification.
	RawNumbers bool
}

// DefaultOptions returns lenient options backed by the default registry.
func DefaultOptions() Options {
	return Options{
		Registry: descriptor.Default(),
		MaxDepth: reader.DefaultMaxDepth,
	}
}

func (o Options) normalized() Options {
	if o.Registry == nil {
		o.Registry = descriptor.Default()
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = reader.DefaultMaxDepth
	}
	return o
}
