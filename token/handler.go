// Package token defines the push-parser event interface that connects a JSON
// reader to a consumer.
package token

// Handler receives parser events in document order. Every method returns
// false to stop the parse.
type Handler interface {
	Null() bool
	Bool(b bool) bool
	Int(i int32) bool
	Uint(u uint32) bool
	Int64(i int64) bool
	Uint64(u uint64) bool
	Double(f float64) bool
	RawNumber(s string) bool
	String(s string) bool
	StartObject() bool
	Key(s string) bool
	EndObject(members int) bool
	StartArray() bool
	EndArray(elements int) bool
}

// Nop accepts every event. Embed it to implement only the events you need.
type Nop struct{}

func (Nop) Null() bool            { return true }
func (Nop) Bool(bool) bool        { return true }
func (Nop) Int(int32) bool        { return true }
func (Nop) Uint(uint32) bool      { return true }
func (Nop) Int64(int64) bool      { return true }
func (Nop) Uint64(uint64) bool    { return true }
func (Nop) Double(float64) bool   { return true }
func (Nop) RawNumber(string) bool { return true }
func (Nop) String(string) bool    { return true }
func (Nop) StartObject() bool     { return true }
func (Nop) Key(string) bool       { return true }
func (Nop) EndObject(int) bool    { return true }
func (Nop) StartArray() bool      { return true }
func (Nop) EndArray(int) bool     { return true }

var _ Handler = Nop{}
