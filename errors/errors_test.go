package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindTypeMismatch,
				Path:   []string{"config", "inner", "id"},
				GoType: "int",
				Detail: "string value not assignable",
			},
			contains: []string{"[decode]", "type_mismatch", "config.inner.id", "Go type int", " - string value"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindSyntax,
			},
			contains: []string{"[parse]", "syntax"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseConfig,
				Kind:   KindInvalidInput,
				Detail: "bad config",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[config]", "invalid_input", ": bad config", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseRegister,
		Kind:  KindArityExceeded,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseRegister, Kind: KindArityExceeded}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindArityExceeded}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseRegister, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}

	var wrapped error = Wrap(PhaseDecode, KindInvalidData, err, "outer")
	target := &Error{Phase: PhaseRegister, Kind: KindArityExceeded}
	if !errors.Is(wrapped, target) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindTypeMismatch).
		Path("inner", "label").
		GoType("string").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "string", "int").
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "inner" || err.Path[1] != "label" {
		t.Errorf("Path = %v, want [inner label]", err.Path)
	}
	if err.GoType != "string" {
		t.Errorf("GoType = %v, want 'string'", err.GoType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected string, got int" {
		t.Errorf("Detail = %v, want 'expected string, got int'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err      *Error
		name     string
		kind     Kind
		phase    Phase
		contains string
	}{
		{TypeMismatch(PhaseDecode, []string{"id"}, "int", "string"), "TypeMismatch", KindTypeMismatch, PhaseDecode, "string value"},
		{Unsupported(PhaseRegister, nil, "complex128", "no JSON form"), "Unsupported", KindUnsupported, PhaseRegister, "no JSON form"},
		{ArityExceeded("main.Big", nil, "field count", 40, 32), "ArityExceeded", KindArityExceeded, PhaseRegister, "40 exceeds maximum 32"},
		{DuplicateField("main.T", "id"), "DuplicateField", KindDuplicateField, PhaseRegister, `"id"`},
		{FieldMissing(PhaseAccess, nil, "name"), "FieldMissing", KindFieldMissing, PhaseAccess, `"name"`},
		{FieldUnknown(PhaseDecode, nil, "extra"), "FieldUnknown", KindFieldUnknown, PhaseDecode, `"extra"`},
		{OutOfBounds(PhaseAccess, nil, 10, 5), "OutOfBounds", KindOutOfBounds, PhaseAccess, "length 5"},
		{Overflow(PhaseDecode, nil, 300, "uint8"), "Overflow", KindOverflow, PhaseDecode, "300 overflows uint8"},
		{NilPointer(PhaseEncode, nil, "*main.T"), "NilPointer", KindNilPointer, PhaseEncode, "nil pointer"},
		{Syntax(2, 7, 19, "unexpected '}'"), "Syntax", KindSyntax, PhaseParse, "L2,C7 (offset 19)"},
		{InvalidData(PhaseRegister, nil, "offset mismatch"), "InvalidData", KindInvalidData, PhaseRegister, "offset mismatch"},
		{NotFound(PhaseConfig, "type", "Nope"), "NotFound", KindNotFound, PhaseConfig, `type "Nope"`},
		{InvalidInput(PhaseConfig, "bad mode"), "InvalidInput", KindInvalidInput, PhaseConfig, "bad mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("Error() = %q, want substring %q", tt.err.Error(), tt.contains)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	parent := make([]string, 1, 4)
	parent[0] = "root"

	a := Join(parent, "a")
	b := Join(parent, "b")

	if a[1] != "a" || b[1] != "b" {
		t.Errorf("Join aliased parent storage: a=%v b=%v", a, b)
	}
	if len(parent) != 1 {
		t.Errorf("parent modified: %v", parent)
	}
}
