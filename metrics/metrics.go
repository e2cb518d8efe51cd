// Package metrics exports codec activity as Prometheus metrics.
//
// A Collector implements codec.Observer; install it through
// codec.Options.Observer:
//
//	c := metrics.NewCollector(prometheus.DefaultRegisterer)
//	dec := codec.NewDecoder(codec.Options{Observer: c})
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wippyai/recjson/codec"
)

const namespace = "recjson"

// Collector holds the codec metrics. All series are labelled by record type.
type Collector struct {
	EncodeTotal    *prometheus.CounterVec
	EncodeBytes    *prometheus.HistogramVec
	EncodeDuration *prometheus.HistogramVec

	DecodeTotal    *prometheus.CounterVec
	DecodeBytes    *prometheus.HistogramVec
	DecodeDuration *prometheus.HistogramVec
	// DecodeErrors counts failed parses by reader code.
	DecodeErrors *prometheus.CounterVec
	Mismatches   *prometheus.CounterVec
	UnknownKeys  *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them with registerer. A nil
// registerer leaves them unregistered.
func NewCollector(registerer prometheus.Registerer) *Collector {
	f := promauto.With(registerer)
	sizeBuckets := prometheus.ExponentialBuckets(64, 4, 8) // 64B to 1MB

	return &Collector{
		EncodeTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "encode_total",
				Help:      "Total number of encoded records",
			},
			[]string{"type"},
		),
		EncodeBytes: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "encode_size_bytes",
				Help:      "Size of encoded records in bytes",
				Buckets:   sizeBuckets,
			},
			[]string{"type"},
		),
		EncodeDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "encode_duration_seconds",
				Help:      "Record encoding duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
			},
			[]string{"type"},
		),
		DecodeTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decode_total",
				Help:      "Total number of decode calls",
			},
			[]string{"type", "status"},
		),
		DecodeBytes: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "decode_size_bytes",
				Help:      "Size of decoded documents in bytes",
				Buckets:   sizeBuckets,
			},
			[]string{"type"},
		),
		DecodeDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "decode_duration_seconds",
				Help:      "Document decoding duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
			},
			[]string{"type"},
		),
		DecodeErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decode_syntax_errors_total",
				Help:      "Total number of documents rejected by the reader",
			},
			[]string{"type", "code"},
		),
		Mismatches: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decode_dropped_values_total",
				Help:      "Total number of values dropped because they did not fit their field",
			},
			[]string{"type"},
		),
		UnknownKeys: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decode_unknown_keys_total",
				Help:      "Total number of keys that matched no field",
			},
			[]string{"type"},
		),
	}
}

func (c *Collector) Encoded(typeName string, bytes int, elapsed time.Duration) {
	c.EncodeTotal.WithLabelValues(typeName).Inc()
	c.EncodeBytes.WithLabelValues(typeName).Observe(float64(bytes))
	c.EncodeDuration.WithLabelValues(typeName).Observe(elapsed.Seconds())
}

func (c *Collector) Decoded(typeName string, stats codec.DecodeStats) {
	status := "ok"
	if !stats.OK {
		status = "error"
		c.DecodeErrors.WithLabelValues(typeName, stats.Code.Name()).Inc()
	}
	c.DecodeTotal.WithLabelValues(typeName, status).Inc()
	c.DecodeBytes.WithLabelValues(typeName).Observe(float64(stats.Bytes))
	c.DecodeDuration.WithLabelValues(typeName).Observe(stats.Elapsed.Seconds())
	if stats.Mismatches > 0 {
		c.Mismatches.WithLabelValues(typeName).Add(float64(stats.Mismatches))
	}
	if stats.Unknown > 0 {
		c.UnknownKeys.WithLabelValues(typeName).Add(float64(stats.Unknown))
	}
}

var _ codec.Observer = (*Collector)(nil)
