package main

import (
	"io"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/wippyai/recjson/reader"
	"github.com/wippyai/recjson/token"
)

const (
	ansiReset  = "\x1b[0m"
	ansiKey    = "\x1b[34;1m"
	ansiString = "\x1b[32m"
	ansiNumber = "\x1b[36m"
	ansiLit    = "\x1b[35m"
)

// stdout returns the writer for JSON output and whether it takes color.
func stdout(wantColor bool) (io.Writer, bool) {
	fd := os.Stdout.Fd()
	if wantColor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		return colorable.NewColorableStdout(), true
	}
	return os.Stdout, false
}

// prettyPrinter re-renders a JSON document from parser events with
// indentation and optional ANSI colors. Numbers keep their source text.
type prettyPrinter struct {
	b        strings.Builder
	frames   []bool // per open container: has at least one member
	color    bool
	afterKey bool
}

// prettyJSON renders data, or returns the parse failure.
func prettyJSON(data []byte, color bool) (string, error) {
	p := &prettyPrinter{color: color}
	res := reader.ParseWithOptions(data, p, reader.Options{RawNumbers: true})
	if !res.OK {
		return "", res.Err()
	}
	p.b.WriteByte('\n')
	return p.b.String(), nil
}

func (p *prettyPrinter) paint(code, text string) {
	if p.color {
		p.b.WriteString(code)
		p.b.WriteString(text)
		p.b.WriteString(ansiReset)
		return
	}
	p.b.WriteString(text)
}

func (p *prettyPrinter) newline() {
	p.b.WriteByte('\n')
	p.b.WriteString(strings.Repeat("  ", len(p.frames)))
}

// before positions the output for the next value or key.
func (p *prettyPrinter) before() {
	if p.afterKey {
		p.afterKey = false
		return
	}
	if len(p.frames) == 0 {
		return
	}
	top := len(p.frames) - 1
	if p.frames[top] {
		p.b.WriteByte(',')
	}
	p.frames[top] = true
	p.newline()
}

func (p *prettyPrinter) scalar(code, text string) bool {
	p.before()
	p.paint(code, text)
	return true
}

func (p *prettyPrinter) open(c byte) bool {
	p.before()
	p.b.WriteByte(c)
	p.frames = append(p.frames, false)
	return true
}

func (p *prettyPrinter) close(c byte) bool {
	top := len(p.frames) - 1
	nonEmpty := p.frames[top]
	p.frames = p.frames[:top]
	if nonEmpty {
		p.newline()
	}
	p.b.WriteByte(c)
	return true
}

func (p *prettyPrinter) Null() bool              { return p.scalar(ansiLit, "null") }
func (p *prettyPrinter) Bool(b bool) bool        { return p.scalar(ansiLit, strconv.FormatBool(b)) }
func (p *prettyPrinter) Int(i int32) bool        { return p.scalar(ansiNumber, strconv.FormatInt(int64(i), 10)) }
func (p *prettyPrinter) Uint(u uint32) bool      { return p.scalar(ansiNumber, strconv.FormatUint(uint64(u), 10)) }
func (p *prettyPrinter) Int64(i int64) bool      { return p.scalar(ansiNumber, strconv.FormatInt(i, 10)) }
func (p *prettyPrinter) Uint64(u uint64) bool    { return p.scalar(ansiNumber, strconv.FormatUint(u, 10)) }
func (p *prettyPrinter) Double(f float64) bool   { return p.scalar(ansiNumber, strconv.FormatFloat(f, 'g', -1, 64)) }
func (p *prettyPrinter) RawNumber(s string) bool { return p.scalar(ansiNumber, s) }
func (p *prettyPrinter) String(s string) bool    { return p.scalar(ansiString, quote(s)) }
func (p *prettyPrinter) StartObject() bool       { return p.open('{') }
func (p *prettyPrinter) EndObject(int) bool      { return p.close('}') }
func (p *prettyPrinter) StartArray() bool        { return p.open('[') }
func (p *prettyPrinter) EndArray(int) bool       { return p.close(']') }

func (p *prettyPrinter) Key(s string) bool {
	p.before()
	p.paint(ansiKey, quote(s))
	p.b.WriteString(": ")
	p.afterKey = true
	return true
}

var quoteAPI = jsoniter.Config{EscapeHTML: false}.Froze()

func quote(s string) string {
	q, err := quoteAPI.MarshalToString(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return q
}

var _ token.Handler = (*prettyPrinter)(nil)
