package glslstd450_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shadersim/spirvsim/ext"
	"github.com/shadersim/spirvsim/ext/glslstd450"
)

func call(t *testing.T, code uint32, args ...[]float64) []float64 {
	t.Helper()
	table, ok := ext.Lookup(glslstd450.Name)
	if !ok {
		t.Fatal("GLSL.std.450 not registered")
	}
	out, err := table.Call(code, args)
	if err != nil {
		t.Fatalf("Call(%d): %v", code, err)
	}
	return out
}

func TestTable_Unary(t *testing.T) {
	tests := []struct {
		name string
		code uint32
		in   float64
		want float64
	}{
		{"Floor", glslstd450.Floor, 1.7, 1},
		{"Ceil", glslstd450.Ceil, 1.2, 2},
		{"FAbs", glslstd450.FAbs, -3.5, 3.5},
		{"FSign positive", glslstd450.FSign, 5, 1},
		{"FSign negative", glslstd450.FSign, -5, -1},
		{"FSign zero", glslstd450.FSign, 0, 0},
		{"Sqrt", glslstd450.Sqrt, 16, 4},
		{"Trunc", glslstd450.Trunc, 3.9, 3},
		{"Fract", glslstd450.Fract, 3.25, 0.25},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := call(t, tc.code, []float64{tc.in})
			if len(out) != 1 || math.Abs(out[0]-tc.want) > 1e-9 {
				t.Errorf("got %v, want [%v]", out, tc.want)
			}
		})
	}
}

func TestTable_RoundEven(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{-0.5, 0},
	}
	for _, tc := range tests {
		out := call(t, glslstd450.RoundEven, []float64{tc.in})
		if out[0] != tc.want {
			t.Errorf("RoundEven(%v) = %v, want %v", tc.in, out[0], tc.want)
		}
	}
}

func TestTable_Binary(t *testing.T) {
	out := call(t, glslstd450.Pow, []float64{2}, []float64{10})
	if out[0] != 1024 {
		t.Errorf("Pow(2, 10) = %v, want 1024", out[0])
	}
	out = call(t, glslstd450.Atan2, []float64{1}, []float64{1})
	if math.Abs(out[0]-math.Pi/4) > 1e-9 {
		t.Errorf("Atan2(1, 1) = %v, want pi/4", out[0])
	}
}

func TestTable_Length(t *testing.T) {
	out := call(t, glslstd450.Length, []float64{3, 4})
	if out[0] != 5 {
		t.Errorf("Length([3,4]) = %v, want 5", out[0])
	}
}

func TestTable_Distance(t *testing.T) {
	out := call(t, glslstd450.Distance, []float64{0, 0}, []float64{3, 4})
	if out[0] != 5 {
		t.Errorf("Distance = %v, want 5", out[0])
	}
}

func TestTable_Normalize(t *testing.T) {
	out := call(t, glslstd450.Normalize, []float64{3, 4})
	if math.Abs(out[0]-0.6) > 1e-9 || math.Abs(out[1]-0.8) > 1e-9 {
		t.Errorf("Normalize([3,4]) = %v, want [0.6, 0.8]", out)
	}
}

func TestTable_UnknownInstruction(t *testing.T) {
	table, ok := ext.Lookup(glslstd450.Name)
	if !ok {
		t.Fatal("GLSL.std.450 not registered")
	}
	_, err := table.Call(9999, [][]float64{{1}})
	if !errors.Is(err, ext.ErrUnknownInstruction) {
		t.Fatalf("Call(9999) error = %v, want ErrUnknownInstruction", err)
	}
}
