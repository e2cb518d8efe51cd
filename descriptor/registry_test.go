package descriptor

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"unsafe"

	rjerrors "github.com/wippyai/recjson/errors"
)

type regInner struct {
	ID    int
	Label string
}

type regConfig struct {
	Flag      bool
	Ratio     float64
	Values    []int
	Inner     regInner
	InnerList []regInner
	Lookup    map[string]regInner
	Name      *string
	Cache     Ignore[map[int]string]
	Owner     *regInner
	hidden    int32
	_         int64
}

type regTree struct {
	Name     string
	Children []regTree
	ByName   map[string]regTree
}

type regBadKey struct {
	M map[int]string
}

type regBadElem struct {
	L []any
}

type regComplex struct {
	C complex64
}

type regDup struct {
	A int `json:"x"`
	B int `json:"x"`
}

func TestRegistryDescriptor(t *testing.T) {
	reg := NewRegistry(DefaultOptions())
	d, err := reg.For(reflect.TypeFor[regConfig]())
	if err != nil {
		t.Fatalf("For: %v", err)
	}

	want := []struct {
		name       string
		tag        Tag
		serialized bool
	}{
		{"Flag", TagBool, true},
		{"Ratio", TagDouble, true},
		{"Values", TagSequence, true},
		{"Inner", TagRecord, true},
		{"InnerList", TagSequence, true},
		{"Lookup", TagAssociative, true},
		{"Name", TagCharPointer, true},
		{"Cache", TagIgnored, false},
		{"Owner", TagSmartRef, false},
		{"hidden", TagInt, true},
		{"_", TagInt64, false},
	}

	if d.NumField() != len(want) {
		t.Fatalf("NumField = %d, want %d", d.NumField(), len(want))
	}
	if d.Size() != unsafe.Sizeof(regConfig{}) {
		t.Errorf("Size = %d, want %d", d.Size(), unsafe.Sizeof(regConfig{}))
	}

	rt := reflect.TypeFor[regConfig]()
	for i, w := range want {
		f := d.Field(i)
		if f.Name != w.name || f.Type.Tag != w.tag || f.Serialized() != w.serialized {
			t.Errorf("field %d = {%s %v %v}, want {%s %v %v}",
				i, f.Name, f.Type.Tag, f.Serialized(), w.name, w.tag, w.serialized)
		}
		if f.Index != i {
			t.Errorf("field %s Index = %d", f.Name, f.Index)
		}
		if f.Offset != rt.Field(i).Offset {
			t.Errorf("field %s Offset = %d, want %d", f.Name, f.Offset, rt.Field(i).Offset)
		}
	}

	if _, ok := d.Lookup("Cache"); ok {
		t.Error("ignored field must not be found by Lookup")
	}
	if _, ok := d.Lookup("Owner"); ok {
		t.Error("smart reference must not be found by Lookup")
	}
	if _, ok := d.Lookup("missing"); ok {
		t.Error("unexpected match for missing")
	}
	f, ok := d.Lookup("Ratio")
	if !ok || f.Index != 1 {
		t.Fatalf("Lookup(Ratio) = %v, %v", f, ok)
	}

	inner := d.Field(3).Type.Record
	if inner == nil || inner.GoType != reflect.TypeFor[regInner]() {
		t.Fatalf("Inner record = %v", inner)
	}
	if list := d.Field(4).Type; list.Elem.Record != inner {
		t.Error("slice element should share the nested descriptor")
	}
	if m := d.Field(5).Type; m.Key.Tag != TagString || m.Elem.Record != inner {
		t.Errorf("map type = %s", m)
	}
	if got := d.Field(4).Type.String(); got != "sequence<"+inner.Name+">" {
		t.Errorf("Type.String() = %q", got)
	}
}

func TestRegistryCaching(t *testing.T) {
	reg := NewRegistry(DefaultOptions())

	first, err := reg.For(reflect.TypeFor[regConfig]())
	if err != nil {
		t.Fatal(err)
	}
	second, err := reg.For(reflect.TypeFor[*regConfig]())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("pointer lookup should return the cached descriptor")
	}

	inner, err := reg.For(reflect.TypeFor[regInner]())
	if err != nil {
		t.Fatal(err)
	}
	if inner != first.Field(3).Type.Record {
		t.Error("nested descriptors should be cached during the parent build")
	}
}

func TestRegistryConcurrentFirstUse(t *testing.T) {
	reg := NewRegistry(DefaultOptions())

	const workers = 16
	results := make([]*Descriptor, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := reg.For(reflect.TypeFor[regTree]())
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = d
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("worker %d got a different descriptor", i)
		}
	}
}

func TestRegistryRecursiveType(t *testing.T) {
	d, err := NewRegistry(DefaultOptions()).For(reflect.TypeFor[regTree]())
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if d.Field(1).Type.Elem.Record != d {
		t.Error("Children element should point back to the same descriptor")
	}
	if d.Field(2).Type.Elem.Record != d {
		t.Error("ByName value should point back to the same descriptor")
	}
}

func TestRegistryErrors(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		name string
		kind rjerrors.Kind
	}{
		{reflect.TypeFor[int](), "not a struct", rjerrors.KindUnsupported},
		{reflect.TypeFor[regBadKey](), "non-string map key", rjerrors.KindTypeMismatch},
		{reflect.TypeFor[regBadElem](), "interface element", rjerrors.KindUnsupported},
		{reflect.TypeFor[regComplex](), "complex field", rjerrors.KindUnsupported},
	}

	reg := NewRegistry(DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.For(tt.typ)
			if !errors.Is(err, &rjerrors.Error{Phase: rjerrors.PhaseRegister, Kind: tt.kind}) {
				t.Fatalf("err = %v, want %s", err, tt.kind)
			}
		})
	}

	t.Run("nil type", func(t *testing.T) {
		if _, err := reg.For(nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("duplicate tag names", func(t *testing.T) {
		tagged := NewRegistry(Options{Namer: TagNamer{Key: "json"}})
		_, err := tagged.For(reflect.TypeFor[regDup]())
		if !errors.Is(err, &rjerrors.Error{Phase: rjerrors.PhaseRegister, Kind: rjerrors.KindDuplicateField}) {
			t.Fatalf("err = %v, want duplicate_field", err)
		}
	})
}

func TestMustOfPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustOf should panic for an unregistrable type")
		}
	}()
	MustOf[regBadKey]()
}

func TestOptionsNormalized(t *testing.T) {
	reg := NewRegistry(Options{})
	opts := reg.Options()
	if opts.MaxArity != DefaultMaxArity || opts.MaxWidth != DefaultMaxWidth {
		t.Errorf("limits = %d/%d", opts.MaxArity, opts.MaxWidth)
	}
	if _, ok := opts.Namer.(DeclaredNamer); !ok {
		t.Errorf("Namer = %T", opts.Namer)
	}
}
