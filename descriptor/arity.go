package descriptor

import "github.com/wippyai/recjson/errors"

const (
	// DefaultMaxArity is the largest supported top-level field count.
	DefaultMaxArity = 32
	// DefaultMaxWidth bounds the flattened slot width of one nested record
	// field. It only guards against pathological nesting; any record that
	// registers on its own fits well below it.
	DefaultMaxWidth = 1024
)

// Arity is the field count of a record and the slots each field consumes
// once nested records are flattened.
type Arity struct {
	Widths []int
	Raw    int
	Count  int
}

// Saved returns how many raw slots nested records absorb beyond one each.
func (a Arity) Saved() int {
	return a.Raw - a.Count
}

// slotWidth is the number of leaf slots a field fills when the record is
// flattened. Nested records span their own raw count, at least one.
func slotWidth(f *Field) int {
	if f.Type.Tag != TagRecord || f.Type.Record == nil {
		return 1
	}
	return max(1, f.Type.Record.Arity.Raw)
}

// probeArity derives the arity of a record from its already classified
// fields. The raw slot list is walked left to right, each field consuming
// its own width.
func probeArity(typeName string, fields []Field, opts Options) (Arity, error) {
	if len(fields) == 0 {
		return Arity{}, nil
	}

	widths := make([]int, len(fields))
	raw := 0
	for i := range fields {
		w := slotWidth(&fields[i])
		if w > opts.MaxWidth {
			return Arity{}, errors.ArityExceeded(typeName, []string{fields[i].Name}, "nested width", w, opts.MaxWidth)
		}
		widths[i] = w
		raw += w
	}

	count, saved := 0, 0
	for pos := 0; pos < raw; count++ {
		pos += widths[count]
		saved += widths[count] - 1
	}

	if count > opts.MaxArity {
		return Arity{}, errors.ArityExceeded(typeName, nil, "field count", count, opts.MaxArity)
	}
	if raw-saved != len(fields) {
		return Arity{}, errors.InvalidData(errors.PhaseRegister, nil, "slot walk disagrees with declared field count")
	}

	return Arity{Raw: raw, Count: count, Widths: widths}, nil
}
