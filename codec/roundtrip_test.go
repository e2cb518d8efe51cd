package codec

import (
	"reflect"
	"testing"

	"github.com/wippyai/recjson/descriptor"
)

type rtInner struct {
	ID    int
	Label string
}

type rtConfig struct {
	Flag      bool
	Ratio     float64
	Values    []int
	Inner     rtInner
	InnerList []rtInner
}

type rtComplex struct {
	Name        string
	Config      rtConfig
	Matrix      [][]float64
	InnerMatrix [][]rtInner
}

type rtEverything struct {
	B      bool
	I8     int8
	I16    int16
	I32    int32
	I64    int64
	U      uint
	U32    uint32
	U64    uint64
	F32    float32
	F64    float64
	C      descriptor.Char
	S      string
	P      *string
	Arr    [3]uint16
	ByName map[string][]string
	Nested map[string]map[string]int
	Tree   []rtNode
}

type rtNode struct {
	Name     string
	Children []rtNode
}

func sampleComplex() rtComplex {
	return rtComplex{
		Name: "sample \"complex\"\n",
		Config: rtConfig{
			Flag:      true,
			Ratio:     0.1,
			Values:    []int{-1, 0, 1, 1 << 40},
			Inner:     rtInner{ID: 7, Label: "seven"},
			InnerList: []rtInner{{ID: 1, Label: "a"}, {ID: 2, Label: "b"}},
		},
		Matrix:      [][]float64{{1.5, -2.25}, {}, {3e-9, 1e21}},
		InnerMatrix: [][]rtInner{{{ID: 1}}, {{ID: 2, Label: "x"}, {ID: 3}}},
	}
}

func TestRoundTrip(t *testing.T) {
	p := "pointer"
	tests := []struct {
		name string
		v    any
		out  func() any
	}{
		{"inner", &rtInner{ID: -3, Label: "ü"}, func() any { return &rtInner{} }},
		{"complex", ptr(sampleComplex()), func() any { return &rtComplex{} }},
		{
			name: "everything",
			v: &rtEverything{
				B: true, I8: -128, I16: 32767, I32: -1 << 31, I64: -1 << 63,
				U: 42, U32: 1<<32 - 1, U64: 1<<64 - 1,
				F32: 3.25, F64: -1.0e-7, C: '\t', S: "tab\there", P: &p,
				Arr:    [3]uint16{1, 2, 65535},
				ByName: map[string][]string{"k": {"v1", "v2"}, "empty": {}},
				Nested: map[string]map[string]int{"outer": {"inner": 1}},
				Tree: []rtNode{
					{Name: "root", Children: []rtNode{{Name: "leaf", Children: []rtNode{}}}},
				},
			},
			out: func() any { return &rtEverything{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf Buffer
			if err := NewEncoder(DefaultOptions()).Encode(&buf, tt.v); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			out := tt.out()
			res, err := NewDecoder(DefaultOptions()).Decode(buf.Bytes(), out)
			if err != nil {
				t.Fatalf("Decode(%s): %v", buf.String(), err)
			}
			if !res.Clean() || len(res.Unknown) != 0 {
				t.Fatalf("result = %+v", res)
			}
			if !reflect.DeepEqual(out, tt.v) {
				t.Errorf("round trip mismatch\n got  %+v\n want %+v\n json %s", out, tt.v, buf.String())
			}
		})
	}
}

func TestRoundTripIgnoredField(t *testing.T) {
	type withIgnored struct {
		Keep  string
		Cache descriptor.Ignore[[]int]
	}
	in := withIgnored{Keep: "k", Cache: descriptor.Ignore[[]int]{Value: []int{1}}}
	data, err := Marshal(&in)
	if err != nil {
		t.Fatal(err)
	}

	var out withIgnored
	if _, err := Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Keep != "k" || out.Cache.Value != nil {
		t.Errorf("decoded = %+v", out)
	}
}

func ptr[T any](v T) *T {
	return &v
}

func BenchmarkEncodeComplex(b *testing.B) {
	v := sampleComplex()
	enc := NewEncoder(DefaultOptions())
	var buf Buffer
	b.ReportAllocs()
	for b.Loop() {
		buf.Reset()
		if err := enc.Encode(&buf, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeComplex(b *testing.B) {
	v := sampleComplex()
	data, err := Marshal(&v)
	if err != nil {
		b.Fatal(err)
	}
	dec := NewDecoder(DefaultOptions())
	b.ReportAllocs()
	for b.Loop() {
		var out rtComplex
		if _, err := dec.Decode(data, &out); err != nil {
			b.Fatal(err)
		}
	}
}
