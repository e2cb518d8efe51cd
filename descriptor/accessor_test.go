package descriptor

import (
	"errors"
	"reflect"
	"testing"
	"unsafe"

	rjerrors "github.com/wippyai/recjson/errors"
)

type accessRecord struct {
	Flag  bool
	Count int64
	Inner regInner
	Tags  []string
}

func TestRef(t *testing.T) {
	rec := accessRecord{Flag: true, Count: 7, Inner: regInner{ID: 3, Label: "x"}}

	count, err := Ref[int64](&rec, 1)
	if err != nil {
		t.Fatalf("Ref: %v", err)
	}
	*count = 42
	if rec.Count != 42 {
		t.Errorf("write through Ref not visible: %d", rec.Count)
	}

	inner, err := Get[regInner](&rec, 2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if inner.ID != 3 || inner.Label != "x" {
		t.Errorf("Get = %+v", inner)
	}

	tags, err := RefByName[[]string](&rec, "Tags")
	if err != nil {
		t.Fatalf("RefByName: %v", err)
	}
	*tags = append(*tags, "a")
	if len(rec.Tags) != 1 {
		t.Errorf("Tags = %v", rec.Tags)
	}
}

func TestRefErrors(t *testing.T) {
	rec := accessRecord{}

	tests := []struct {
		fn   func() error
		name string
		kind rjerrors.Kind
	}{
		{func() error { _, err := Ref[int](&rec, 1); return err }, "wrong type", rjerrors.KindTypeMismatch},
		{func() error { _, err := Ref[bool](&rec, 9); return err }, "index too large", rjerrors.KindOutOfBounds},
		{func() error { _, err := Ref[bool](&rec, -1); return err }, "negative index", rjerrors.KindOutOfBounds},
		{func() error { _, err := Ref[bool]((*accessRecord)(nil), 0); return err }, "nil record", rjerrors.KindNilPointer},
		{func() error { _, err := RefByName[bool](&rec, "nope"); return err }, "unknown name", rjerrors.KindFieldMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if !errors.Is(err, &rjerrors.Error{Phase: rjerrors.PhaseAccess, Kind: tt.kind}) {
				t.Errorf("err = %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestPointerAndValue(t *testing.T) {
	d := MustOf[accessRecord]()
	rec := accessRecord{}
	base := unsafe.Pointer(&rec)

	*(*bool)(Pointer(base, d.Field(0))) = true
	if !rec.Flag {
		t.Error("Pointer write not visible")
	}

	v := Value(base, d.Field(3))
	v.Set(reflect.Append(v, reflect.ValueOf("b")))
	if len(rec.Tags) != 1 {
		t.Errorf("Value append not visible: %v", rec.Tags)
	}

	if got := d.Field(2).Path([]string{"root"}); len(got) != 2 || got[1] != "Inner" {
		t.Errorf("Path = %v", got)
	}
}
