// Package scanner is a byte cursor over an in-memory JSON document that
// tracks line, column and byte offset.
package scanner

// EOF is returned by Read and Peek past the end of input. Input that is not
// valid UTF-8 may contain the same byte, so callers confirm with AtEnd or
// PastEnd.
const EOF byte = 0xFF

// Pos is a position in the input. Line and Col are zero based; Col counts
// code points, not bytes.
type Pos struct {
	Line   int
	Col    int
	Offset int
}

type Scanner struct {
	data []byte
	pos  Pos
	prev Pos

	// Offset of the token being recorded, -1 when not recording.
	tokenStart int

	// Number of EOFs handed out past the end, so Back after EOF is a no-op.
	eofCount int
}

func New(data []byte) *Scanner {
	return &Scanner{
		data:       data,
		tokenStart: -1,
		prev:       Pos{Line: -1},
	}
}

func (s *Scanner) Read() byte {
	if s.pos.Offset >= len(s.data) {
		s.eofCount++
		return EOF
	}
	b := s.data[s.pos.Offset]
	s.prev = s.pos
	switch {
	case b == '\n':
		s.pos.Line++
		s.pos.Col = 0
	case b < 0x80 || b >= 0xC0:
		// First byte of a code point
		s.pos.Col++
	}
	s.pos.Offset++
	return b
}

func (s *Scanner) Peek() byte {
	if s.pos.Offset >= len(s.data) {
		return EOF
	}
	return s.data[s.pos.Offset]
}

// Back undoes the last Read. It can only be called once per Read.
func (s *Scanner) Back() {
	if s.eofCount > 0 {
		s.eofCount--
		return
	}
	if s.prev.Line < 0 {
		panic("cannot go back twice")
	}
	s.pos = s.prev
	s.prev.Line = -1
}

func (s *Scanner) SkipSpaceAndPeek() byte {
	for s.pos.Offset < len(s.data) {
		switch b := s.data[s.pos.Offset]; b {
		case '\n':
			s.pos.Line++
			s.pos.Col = 0
		case ' ', '\t', '\r':
			s.pos.Col++
		default:
			return b
		}
		s.pos.Offset++
	}
	return EOF
}

// AtEnd reports whether all input has been consumed.
func (s *Scanner) AtEnd() bool {
	return s.pos.Offset >= len(s.data)
}

// PastEnd reports whether the last Read ran off the end of the input.
func (s *Scanner) PastEnd() bool {
	return s.eofCount > 0
}

func (s *Scanner) CurrentPos() Pos {
	return s.pos
}

// StartToken begins recording input at the current position.
func (s *Scanner) StartToken() Pos {
	if s.tokenStart >= 0 {
		panic("already in record mode")
	}
	s.tokenStart = s.pos.Offset
	return s.pos
}

// EndToken returns the bytes read since StartToken. The slice aliases the
// input and must not be modified.
func (s *Scanner) EndToken() []byte {
	if s.tokenStart < 0 {
		panic("not in record mode")
	}
	tok := s.data[s.tokenStart:s.pos.Offset]
	s.tokenStart = -1
	return tok
}

// Remaining returns the unread input.
func (s *Scanner) Remaining() []byte {
	return s.data[s.pos.Offset:]
}

func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsHex(b byte) bool {
	return IsDigit(b) || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

func IsCtrl(b byte) bool {
	return b < 32
}
