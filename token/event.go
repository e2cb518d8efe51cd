package token

import (
	"fmt"
	"strings"
)

// Kind identifies an event.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindInt64
	KindUint64
	KindDouble
	KindRawNumber
	KindString
	KindStartObject
	KindKey
	KindEndObject
	KindStartArray
	KindEndArray
)

var kindNames = [...]string{
	KindNull:        "Null",
	KindBool:        "Bool",
	KindInt:         "Int",
	KindUint:        "Uint",
	KindInt64:       "Int64",
	KindUint64:      "Uint64",
	KindDouble:      "Double",
	KindRawNumber:   "RawNumber",
	KindString:      "String",
	KindStartObject: "StartObject",
	KindKey:         "Key",
	KindEndObject:   "EndObject",
	KindStartArray:  "StartArray",
	KindEndArray:    "EndArray",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether the event carries a complete value.
func (k Kind) IsScalar() bool {
	return k <= KindString
}

// Event is one recorded parser callback. Value holds the callback argument,
// nil for Null, StartObject and StartArray.
type Event struct {
	Value any
	Kind  Kind
}

func (e Event) String() string {
	if e.Value == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s(%v)", e.Kind, e.Value)
}

// Recorder is a Handler that stores every event it receives.
type Recorder struct {
	Events []Event
	// StopAfter makes the recorder return false once it holds this many
	// events. Zero means never stop.
	StopAfter int
}

func (r *Recorder) add(k Kind, v any) bool {
	r.Events = append(r.Events, Event{Kind: k, Value: v})
	return r.StopAfter == 0 || len(r.Events) < r.StopAfter
}

func (r *Recorder) Null() bool              { return r.add(KindNull, nil) }
func (r *Recorder) Bool(b bool) bool        { return r.add(KindBool, b) }
func (r *Recorder) Int(i int32) bool        { return r.add(KindInt, i) }
func (r *Recorder) Uint(u uint32) bool      { return r.add(KindUint, u) }
func (r *Recorder) Int64(i int64) bool      { return r.add(KindInt64, i) }
func (r *Recorder) Uint64(u uint64) bool    { return r.add(KindUint64, u) }
func (r *Recorder) Double(f float64) bool   { return r.add(KindDouble, f) }
func (r *Recorder) RawNumber(s string) bool { return r.add(KindRawNumber, s) }
func (r *Recorder) String(s string) bool    { return r.add(KindString, s) }
func (r *Recorder) StartObject() bool       { return r.add(KindStartObject, nil) }
func (r *Recorder) Key(s string) bool       { return r.add(KindKey, s) }
func (r *Recorder) EndObject(n int) bool    { return r.add(KindEndObject, n) }
func (r *Recorder) StartArray() bool        { return r.add(KindStartArray, nil) }
func (r *Recorder) EndArray(n int) bool     { return r.add(KindEndArray, n) }

// Format renders the events one per line.
func (r *Recorder) Format() string {
	var b strings.Builder
	for _, e := range r.Events {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Replay delivers events to h in order and reports whether h accepted all of them.
func Replay(events []Event, h Handler) bool {
	for _, e := range events {
		if !deliver(e, h) {
			return false
		}
	}
	return true
}

func deliver(e Event, h Handler) bool {
	switch e.Kind {
	case KindNull:
		return h.Null()
	case KindBool:
		return h.Bool(e.Value.(bool))
	case KindInt:
		return h.Int(e.Value.(int32))
	case KindUint:
		return h.Uint(e.Value.(uint32))
	case KindInt64:
		return h.Int64(e.Value.(int64))
	case KindUint64:
		return h.Uint64(e.Value.(uint64))
	case KindDouble:
		return h.Double(e.Value.(float64))
	case KindRawNumber:
		return h.RawNumber(e.Value.(string))
	case KindString:
		return h.String(e.Value.(string))
	case KindStartObject:
		return h.StartObject()
	case KindKey:
		return h.Key(e.Value.(string))
	case KindEndObject:
		return h.EndObject(e.Value.(int))
	case KindStartArray:
		return h.StartArray()
	case KindEndArray:
		return h.EndArray(e.Value.(int))
	default:
		return false
	}
}
