package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/wippyai/recjson"
	"github.com/wippyai/recjson/codec"
	"github.com/wippyai/recjson/descriptor"
	"github.com/wippyai/recjson/metrics"
	"github.com/wippyai/recjson/witschema"
)

// app carries the pipeline configured from Settings. Every action returns
// its output as text so the CLI and the TUI share it.
type app struct {
	cfg       Settings
	reg       *descriptor.Registry
	enc       *codec.Encoder
	dec       *codec.Decoder
	promReg   *prometheus.Registry
	collector *metrics.Collector
}

func newApp(cfg Settings) *app {
	reg := descriptor.NewRegistry(descriptor.Options{Namer: cfg.namer()})
	promReg := prometheus.NewRegistry()
	collector := metrics.NewCollector(promReg)

	opts := codec.Options{
		Registry: reg,
		Observer: collector,
		MaxDepth: cfg.MaxDepth,
		Strict:   cfg.Strict,
	}
	return &app{
		cfg:       cfg,
		reg:       reg,
		enc:       codec.NewEncoder(opts),
		dec:       codec.NewDecoder(opts),
		promReg:   promReg,
		collector: collector,
	}
}

func (a *app) descriptorOf(s sample) (*descriptor.Descriptor, error) {
	return a.reg.For(s.typ)
}

func (a *app) describe(s sample) (string, error) {
	d, err := a.descriptorOf(s)
	if err != nil {
		return "", err
	}
	return recjson.DescribeDescriptor(d), nil
}

func (a *app) encode(s sample) ([]byte, error) {
	return encodeSample(a.enc, s.filled())
}

func (a *app) wit(s sample) (string, error) {
	d, err := a.descriptorOf(s)
	if err != nil {
		return "", err
	}
	schema, err := witschema.Export(d)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(schema.String())
	l := schema.Layout()
	fmt.Fprintf(&b, "\n// canonical ABI: size %d, align %d\n", l.Size, l.Align)
	for _, f := range l.Fields {
		fmt.Fprintf(&b, "//   %-16s @%d\n", f.Name, f.Offset)
	}
	return b.String(), nil
}

// decode populates a fresh value from data and reports what was dropped,
// followed by the value encoded again.
func (a *app) decode(s sample, data []byte) (string, error) {
	v := s.fresh()
	res, err := a.dec.Decode(data, v)

	var b strings.Builder
	for _, m := range res.Mismatches {
		fmt.Fprintf(&b, "dropped: %v\n", m)
	}
	for _, k := range res.Unknown {
		fmt.Fprintf(&b, "unknown key: %s\n", k)
	}
	if err != nil {
		return b.String(), err
	}

	out, err := encodeSample(a.enc, v)
	if err != nil {
		return b.String(), err
	}
	b.Write(out)
	b.WriteByte('\n')
	return b.String(), nil
}

func (a *app) bench(s sample, n int) (string, error) {
	data, err := a.encode(s)
	if err != nil {
		return "", err
	}
	v := s.filled()

	start := time.Now()
	for range n {
		if _, err := encodeSample(a.enc, v); err != nil {
			return "", err
		}
	}
	encNs := time.Since(start).Nanoseconds() / int64(n)

	start = time.Now()
	for range n {
		if _, err := a.dec.Decode(data, s.fresh()); err != nil {
			return "", err
		}
	}
	decNs := time.Since(start).Nanoseconds() / int64(n)

	return fmt.Sprintf("%s: %d bytes, %d iterations\n  encode %d ns/op\n  decode %d ns/op\n",
		s.name, len(data), n, encNs, decNs), nil
}

// writeMetrics dumps the collected metrics in the Prometheus text format.
func (a *app) writeMetrics(w io.Writer) error {
	families, err := a.promReg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// readInput reads the decode input; "-" is stdin.
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
