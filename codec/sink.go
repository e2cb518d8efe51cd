package codec

import "io"

// Sink receives encoded output. Append must not retain p.
type Sink interface {
	Append(p []byte)
}

// Buffer is a growable Sink.
type Buffer struct {
	b []byte
}

func (b *Buffer) Append(p []byte) {
	b.b = append(b.b, p...)
}

// Bytes returns the accumulated output. It aliases the buffer until the next Append or Reset.
func (b *Buffer) Bytes() []byte {
	return b.b
}

func (b *Buffer) String() string {
	return string(b.b)
}

func (b *Buffer) Len() int {
	return len(b.b)
}

// Reset empties the buffer, keeping its capacity.
func (b *Buffer) Reset() {
	b.b = b.b[:0]
}

// WriterSink adapts an io.Writer. The first write error is kept in Err and
// later appends are dropped.
type WriterSink struct {
	W   io.Writer
	Err error
}

func (w *WriterSink) Append(p []byte) {
	if w.Err != nil {
		return
	}
	_, w.Err = w.W.Write(p)
}
