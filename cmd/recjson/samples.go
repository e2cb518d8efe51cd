package main

import (
	"reflect"
	"sort"

	"github.com/wippyai/recjson/codec"
	"github.com/wippyai/recjson/descriptor"
)

type Inner struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

type Config struct {
	Flag      bool    `json:"flag"`
	Ratio     float64 `json:"ratio"`
	Values    []int   `json:"values"`
	Inner     Inner   `json:"inner"`
	InnerList []Inner `json:"inner_list"`

	// never serialized
	Scratch descriptor.Ignore[[]byte]
}

type Complex struct {
	Name        string            `json:"name"`
	Config      Config            `json:"config"`
	Matrix      [][]float64       `json:"matrix"`
	InnerMatrix [][]Inner         `json:"inner_matrix"`
	Labels      map[string]string `json:"labels"`
	Comment     *string           `json:"comment"`
}

func newInner() *Inner {
	return &Inner{ID: 42, Label: "answer"}
}

func newConfig() *Config {
	return &Config{
		Flag:   true,
		Ratio:  0.75,
		Values: []int{1, 2, 3, 5, 8, 13},
		Inner:  *newInner(),
		InnerList: []Inner{
			{ID: 1, Label: "one"},
			{ID: 2, Label: "two"},
			{ID: 3, Label: "three"},
		},
	}
}

func newComplex() *Complex {
	comment := "generated sample"
	c := &Complex{
		Name:    "complex \"sample\"",
		Config:  *newConfig(),
		Labels:  map[string]string{"env": "dev", "owner": "recjson"},
		Comment: &comment,
	}
	for i := range 4 {
		row := make([]float64, 4)
		inner := make([]Inner, 2)
		for j := range row {
			row[j] = float64(i*4+j) / 8
		}
		for j := range inner {
			inner[j] = Inner{ID: i*10 + j, Label: "cell"}
		}
		c.Matrix = append(c.Matrix, row)
		c.InnerMatrix = append(c.InnerMatrix, inner)
	}
	return c
}

// sample is a record type the CLI can work with.
type sample struct {
	// fresh returns a pointer to a zero value, filled a populated one.
	fresh  func() any
	filled func() any
	typ    reflect.Type
	name   string
}

func sampleOf[T any](name string, fill func() *T) sample {
	return sample{
		name:   name,
		typ:    reflect.TypeFor[T](),
		fresh:  func() any { return new(T) },
		filled: func() any { return fill() },
	}
}

var samples = map[string]sample{
	"inner":   sampleOf("inner", newInner),
	"config":  sampleOf("config", newConfig),
	"complex": sampleOf("complex", newComplex),
}

func sampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// encodeSample encodes v with enc into a fresh buffer.
func encodeSample(enc *codec.Encoder, v any) ([]byte, error) {
	var buf codec.Buffer
	if err := enc.Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
