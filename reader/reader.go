// Package reader is a push parser for JSON text. It scans an in-memory
// document once and reports every value to a token.Handler, never building a
// tree.
package reader

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wippyai/recjson/internal/scanner"
	"github.com/wippyai/recjson/token"
)

// DefaultMaxDepth bounds object and array nesting.
const DefaultMaxDepth = 512

// Options configures a parse.
type Options struct {
	// RawNumbers delivers every number through Handler.RawNumber as its
	// source text instead of classifying it.
	RawNumbers bool
	MaxDepth   int
}

// DefaultOptions returns the options used by Parse.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

// Parse reads one JSON value from data and pushes its events to h.
func Parse(data []byte, h token.Handler) Result {
	return ParseWithOptions(data, h, DefaultOptions())
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(data []byte, h token.Handler, opts Options) Result {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	p := &parser{scanr: scanner.New(data), h: h, opts: opts}

	err := p.parseDocument()
	if err == nil {
		return Result{OK: true}
	}

	se := err.(*syntaxError)
	return Result{
		Code:    se.code,
		Message: se.message(),
		Line:    se.pos.Line + 1,
		Column:  se.pos.Col + 1,
		Offset:  se.pos.Offset,
	}
}

type syntaxError struct {
	detail string
	pos    scanner.Pos
	code   Code
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("syntax error at L%d,C%d: %s", e.pos.Line+1, e.pos.Col+1, e.message())
}

func (e *syntaxError) message() string {
	if e.detail == "" {
		return e.code.String()
	}
	return e.code.String() + ": " + e.detail
}

type parser struct {
	scanr *scanner.Scanner
	h     token.Handler
	buf   []byte
	opts  Options
	depth int
}

// fail reports code at the current position, describing the byte found there.
func (p *parser) fail(code Code) error {
	pos := p.scanr.CurrentPos()
	b := p.scanr.Peek()
	detail := "<EOF>"
	if !p.scanr.AtEnd() {
		detail = strconv.QuoteRune(rune(b))
	}
	return &syntaxError{code: code, pos: pos, detail: "got " + detail}
}

func (p *parser) failAt(code Code, pos scanner.Pos) error {
	return &syntaxError{code: code, pos: pos}
}

func (p *parser) emit(ok bool, pos scanner.Pos) error {
	if ok {
		return nil
	}
	return p.failAt(CodeTerminated, pos)
}

func (p *parser) parseDocument() error {
	if p.scanr.SkipSpaceAndPeek(); p.scanr.AtEnd() {
		return p.failAt(CodeDocumentEmpty, p.scanr.CurrentPos())
	}
	if err := p.parseValue(); err != nil {
		return err
	}
	if p.scanr.SkipSpaceAndPeek(); !p.scanr.AtEnd() {
		return p.fail(CodeRootNotSingular)
	}
	return nil
}

func (p *parser) parseValue() error {
	b := p.scanr.SkipSpaceAndPeek()
	pos := p.scanr.CurrentPos()
	switch b {
	case '"':
		s, err := p.parseString()
		if err != nil {
			return err
		}
		return p.emit(p.h.String(s), pos)
	case '{':
		return p.parseObject()
	case '[':
		return p.parseArray()
	case 't':
		if err := p.checkBytes(trueBytes); err != nil {
			return err
		}
		return p.emit(p.h.Bool(true), pos)
	case 'f':
		if err := p.checkBytes(falseBytes); err != nil {
			return err
		}
		return p.emit(p.h.Bool(false), pos)
	case 'n':
		if err := p.checkBytes(nullBytes); err != nil {
			return err
		}
		return p.emit(p.h.Null(), pos)
	default:
		if b == '-' || scanner.IsDigit(b) {
			return p.parseNumber()
		}
		return p.fail(CodeValueInvalid)
	}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		return p.failAt(CodeDepthExceeded, p.scanr.CurrentPos())
	}
	return nil
}

func (p *parser) parseObject() error {
	if err := p.enter(); err != nil {
		return err
	}
	pos := p.scanr.CurrentPos()
	p.scanr.Read()
	if err := p.emit(p.h.StartObject(), pos); err != nil {
		return err
	}

	members := 0
	if p.scanr.SkipSpaceAndPeek() == '}' {
		pos = p.scanr.CurrentPos()
		p.scanr.Read()
		p.depth--
		return p.emit(p.h.EndObject(members), pos)
	}

	for {
		if p.scanr.SkipSpaceAndPeek() != '"' {
			return p.fail(CodeObjectMissName)
		}
		pos = p.scanr.CurrentPos()
		key, err := p.parseString()
		if err != nil {
			return err
		}
		if err := p.emit(p.h.Key(key), pos); err != nil {
			return err
		}

		if p.scanr.SkipSpaceAndPeek() != ':' {
			return p.fail(CodeObjectMissColon)
		}
		p.scanr.Read()

		if err := p.parseValue(); err != nil {
			return err
		}
		members++

		switch p.scanr.SkipSpaceAndPeek() {
		case ',':
			p.scanr.Read()
		case '}':
			pos = p.scanr.CurrentPos()
			p.scanr.Read()
			p.depth--
			return p.emit(p.h.EndObject(members), pos)
		default:
			return p.fail(CodeObjectMissCommaOrBrace)
		}
	}
}

func (p *parser) parseArray() error {
	if err := p.enter(); err != nil {
		return err
	}
	pos := p.scanr.CurrentPos()
	p.scanr.Read()
	if err := p.emit(p.h.StartArray(), pos); err != nil {
		return err
	}

	elements := 0
	if p.scanr.SkipSpaceAndPeek() == ']' {
		pos = p.scanr.CurrentPos()
		p.scanr.Read()
		p.depth--
		return p.emit(p.h.EndArray(elements), pos)
	}

	for {
		if err := p.parseValue(); err != nil {
			return err
		}
		elements++

		switch p.scanr.SkipSpaceAndPeek() {
		case ',':
			p.scanr.Read()
		case ']':
			pos = p.scanr.CurrentPos()
			p.scanr.Read()
			p.depth--
			return p.emit(p.h.EndArray(elements), pos)
		default:
			return p.fail(CodeArrayMissCommaOrBracket)
		}
	}
}

// parseString reads a quoted string at the current position and returns its
// unescaped value.
func (p *parser) parseString() (string, error) {
	p.scanr.Read() // opening quote
	p.scanr.StartToken()
	escaped := false
	p.buf = p.buf[:0]

	for {
		b := p.scanr.Read()
		switch {
		case b == '"':
			p.scanr.Back()
			raw := p.scanr.EndToken()
			p.scanr.Read()
			if !escaped {
				return string(raw), nil
			}
			return string(p.buf), nil

		case b == '\\':
			if !escaped {
				// Copy everything before the first escape.
				p.scanr.Back()
				p.buf = append(p.buf, p.scanr.EndToken()...)
				p.scanr.Read()
				p.scanr.StartToken()
				escaped = true
			}
			if err := p.parseEscape(); err != nil {
				return "", err
			}

		case b == scanner.EOF && p.scanr.PastEnd():
			return "", p.failAt(CodeStringMissQuote, p.scanr.CurrentPos())

		case scanner.IsCtrl(b):
			p.scanr.Back()
			return "", p.fail(CodeStringControlCharacter)

		default:
			if escaped {
				p.buf = append(p.buf, b)
			}
		}
	}
}

func (p *parser) parseEscape() error {
	pos := p.scanr.CurrentPos()
	x := p.scanr.Read()
	switch x {
	case '"', '\\', '/':
		p.buf = append(p.buf, x)
	case 'b':
		p.buf = append(p.buf, '\b')
	case 'f':
		p.buf = append(p.buf, '\f')
	case 'n':
		p.buf = append(p.buf, '\n')
	case 'r':
		p.buf = append(p.buf, '\r')
	case 't':
		p.buf = append(p.buf, '\t')
	case 'u':
		r, err := p.readHex4()
		if err != nil {
			return err
		}
		switch {
		case utf16.IsSurrogate(r) && r < 0xDC00:
			if p.scanr.Read() != '\\' || p.scanr.Read() != 'u' {
				return p.failAt(CodeStringUnicodeSurrogateInvalid, pos)
			}
			lo, err := p.readHex4()
			if err != nil {
				return err
			}
			r = utf16.DecodeRune(r, lo)
			if r == utf8.RuneError {
				return p.failAt(CodeStringUnicodeSurrogateInvalid, pos)
			}
		case utf16.IsSurrogate(r):
			return p.failAt(CodeStringUnicodeSurrogateInvalid, pos)
		}
		p.buf = utf8.AppendRune(p.buf, r)
	default:
		p.scanr.Back()
		return p.fail(CodeStringEscapeInvalid)
	}
	return nil
}

func (p *parser) readHex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		b := p.scanr.Read()
		if !scanner.IsHex(b) {
			p.scanr.Back()
			return 0, p.fail(CodeStringUnicodeEscapeInvalid)
		}
		r = r<<4 | rune(hexValue(b))
	}
	return r, nil
}

func hexValue(b byte) byte {
	switch {
	case b >= 'a':
		return b - 'a' + 10
	case b >= 'A':
		return b - 'A' + 10
	default:
		return b - '0'
	}
}

// parseNumber scans the number grammar, then classifies the literal: negative
// integers become Int or Int64, non-negative ones Uint or Uint64, and
// everything else, including integers beyond 64 bits, Double.
func (p *parser) parseNumber() error {
	pos := p.scanr.StartToken()
	integral := true

	b := p.scanr.Read()
	if b == '-' {
		b = p.scanr.Read()
	}

	switch {
	case b == '0':
		b = p.scanr.Read()
	case b >= '1' && b <= '9':
		b, _ = p.readDigits()
	default:
		p.scanr.Back()
		p.scanr.EndToken()
		return p.fail(CodeValueInvalid)
	}

	if b == '.' {
		integral = false
		var n int
		b, n = p.readDigits()
		if n == 0 {
			p.scanr.Back()
			p.scanr.EndToken()
			return p.fail(CodeNumberMissFraction)
		}
	}

	if b == 'e' || b == 'E' {
		integral = false
		if c := p.scanr.Peek(); c == '-' || c == '+' {
			p.scanr.Read()
		}
		var n int
		_, n = p.readDigits()
		if n == 0 {
			p.scanr.Back()
			p.scanr.EndToken()
			return p.fail(CodeNumberMissExponent)
		}
	}
	p.scanr.Back()
	text := p.scanr.EndToken()

	if p.opts.RawNumbers {
		return p.emit(p.h.RawNumber(string(text)), pos)
	}

	if integral {
		if text[0] == '-' {
			if i, err := strconv.ParseInt(string(text), 10, 64); err == nil {
				if i >= math.MinInt32 {
					return p.emit(p.h.Int(int32(i)), pos)
				}
				return p.emit(p.h.Int64(i), pos)
			}
		} else if u, err := strconv.ParseUint(string(text), 10, 64); err == nil {
			if u <= math.MaxUint32 {
				return p.emit(p.h.Uint(uint32(u)), pos)
			}
			return p.emit(p.h.Uint64(u), pos)
		}
	}

	f, err := strconv.ParseFloat(string(text), 64)
	if err != nil && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return p.failAt(CodeNumberTooBig, pos)
	}
	return p.emit(p.h.Double(f), pos)
}

func (p *parser) readDigits() (byte, int) {
	n := 0
	for {
		b := p.scanr.Read()
		if !scanner.IsDigit(b) {
			return b, n
		}
		n++
	}
}

func (p *parser) checkBytes(expected []byte) error {
	for _, xb := range expected {
		if p.scanr.Read() != xb {
			p.scanr.Back()
			return p.fail(CodeValueInvalid)
		}
	}
	return nil
}

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)
