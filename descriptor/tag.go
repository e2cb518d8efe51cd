package descriptor

// Tag classifies a field type for generic encode and decode dispatch.
type Tag uint8

const (
	TagBool Tag = iota
	TagInt
	TagInt64
	TagFloat
	TagDouble
	TagChar
	TagCharPointer
	TagString
	TagSequence
	TagAssociative
	TagRecord
	TagIgnored
	TagSmartRef
)

var tagNames = [...]string{
	TagBool:        "bool",
	TagInt:         "int",
	TagInt64:       "int64",
	TagFloat:       "float",
	TagDouble:      "double",
	TagChar:        "char",
	TagCharPointer: "char_pointer",
	TagString:      "string",
	TagSequence:    "sequence",
	TagAssociative: "associative",
	TagRecord:      "record",
	TagIgnored:     "ignored",
	TagSmartRef:    "smart_ref",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// Serialized reports whether fields of this tag take part in encode and decode.
func (t Tag) Serialized() bool {
	return t != TagIgnored && t != TagSmartRef
}

// IsScalar reports whether the tag is written by a single scalar JSON value.
func (t Tag) IsScalar() bool {
	return t <= TagString
}

// IsNumeric reports whether the tag accepts JSON numbers.
func (t Tag) IsNumeric() bool {
	return t <= TagDouble && t != TagBool
}
