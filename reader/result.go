package reader

import "github.com/wippyai/recjson/errors"

// Code identifies why a parse stopped.
type Code uint8

const (
	CodeOK Code = iota
	CodeDocumentEmpty
	CodeRootNotSingular
	CodeValueInvalid
	CodeObjectMissName
	CodeObjectMissColon
	CodeObjectMissCommaOrBrace
	CodeArrayMissCommaOrBracket
	CodeStringUnicodeEscapeInvalid
	CodeStringUnicodeSurrogateInvalid
	CodeStringEscapeInvalid
	CodeStringMissQuote
	CodeStringControlCharacter
	CodeNumberTooBig
	CodeNumberMissFraction
	CodeNumberMissExponent
	CodeDepthExceeded
	CodeTerminated
)

var codeMessages = [...]string{
	CodeOK:                            "no error",
	CodeDocumentEmpty:                 "the document is empty",
	CodeRootNotSingular:               "the document root must not be followed by other values",
	CodeValueInvalid:                  "invalid value",
	CodeObjectMissName:                "missing a name for object member",
	CodeObjectMissColon:               "missing a colon after a name of object member",
	CodeObjectMissCommaOrBrace:        "missing a comma or '}' after an object member",
	CodeArrayMissCommaOrBracket:       "missing a comma or ']' after an array element",
	CodeStringUnicodeEscapeInvalid:    "incorrect hex digit after \\u escape in string",
	CodeStringUnicodeSurrogateInvalid: "the surrogate pair in string is invalid",
	CodeStringEscapeInvalid:           "invalid escape character in string",
	CodeStringMissQuote:               "missing a closing quotation mark in string",
	CodeStringControlCharacter:        "unescaped control character in string",
	CodeNumberTooBig:                  "number too big to be stored in double",
	CodeNumberMissFraction:            "missing fraction part in number",
	CodeNumberMissExponent:            "missing exponent in number",
	CodeDepthExceeded:                 "nesting depth exceeds the configured maximum",
	CodeTerminated:                    "terminated by handler",
}

var codeNames = [...]string{
	CodeOK:                            "ok",
	CodeDocumentEmpty:                 "document_empty",
	CodeRootNotSingular:               "root_not_singular",
	CodeValueInvalid:                  "value_invalid",
	CodeObjectMissName:                "object_miss_name",
	CodeObjectMissColon:               "object_miss_colon",
	CodeObjectMissCommaOrBrace:        "object_miss_comma_or_brace",
	CodeArrayMissCommaOrBracket:       "array_miss_comma_or_bracket",
	CodeStringUnicodeEscapeInvalid:    "string_unicode_escape_invalid",
	CodeStringUnicodeSurrogateInvalid: "string_unicode_surrogate_invalid",
	CodeStringEscapeInvalid:           "string_escape_invalid",
	CodeStringMissQuote:               "string_miss_quote",
	CodeStringControlCharacter:        "string_control_character",
	CodeNumberTooBig:                  "number_too_big",
	CodeNumberMissFraction:            "number_miss_fraction",
	CodeNumberMissExponent:            "number_miss_exponent",
	CodeDepthExceeded:                 "depth_exceeded",
	CodeTerminated:                    "terminated",
}

// Name returns a short identifier for c, suitable for metric labels.
func (c Code) Name() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

func (c Code) String() string {
	if int(c) < len(codeMessages) {
		return codeMessages[c]
	}
	return "unknown error"
}

// Result reports the outcome of a parse. Line and Column are one based,
// Offset is the zero based byte offset of the failure.
type Result struct {
	Message string
	Line    int
	Column  int
	Offset  int
	Code    Code
	OK      bool
}

// Err returns nil for a successful parse and a structured syntax error otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	err := errors.Syntax(r.Line, r.Column, r.Offset, r.Message)
	err.Value = r.Code
	return err
}
