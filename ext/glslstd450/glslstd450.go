// Package glslstd450 implements the subset of the GLSL.std.450 extended
// instruction set a shader simulator needs for everyday arithmetic:
// rounding, trigonometry, exponentials, and vector geometry. Instructions
// outside that subset (packing, matrix inverse, interpolation, integer
// find-bit helpers, and the rest) are deliberately unimplemented and
// report ext.ErrUnknownInstruction, the same as an opcode this simulator
// was never built to run.
package glslstd450

import (
	"math"

	"github.com/shadersim/spirvsim/ext"
)

// Name is the import string a module's OpExtInstImport names this table
// by.
const Name = "GLSL.std.450"

// Instruction codes, in GLSL.std.450's own numbering.
const (
	Round     uint32 = 1
	RoundEven uint32 = 2
	Trunc     uint32 = 3
	FAbs      uint32 = 4
	SAbs      uint32 = 5
	FSign     uint32 = 6
	SSign     uint32 = 7
	Floor     uint32 = 8
	Ceil      uint32 = 9
	Fract     uint32 = 10
	Radians   uint32 = 11
	Degrees   uint32 = 12
	Sin       uint32 = 13
	Cos       uint32 = 14
	Tan       uint32 = 15
	Asin      uint32 = 16
	Acos      uint32 = 17
	Atan      uint32 = 18
	Sinh      uint32 = 19
	Cosh      uint32 = 20
	Tanh      uint32 = 21
	Asinh     uint32 = 22
	Acosh     uint32 = 23
	Atanh     uint32 = 24
	Atan2     uint32 = 25
	Pow       uint32 = 26
	Exp       uint32 = 27
	Log       uint32 = 28
	Exp2      uint32 = 29
	Log2      uint32 = 30
	Sqrt      uint32 = 31
	InverseSqrt uint32 = 32
	Length      uint32 = 66
	Distance    uint32 = 67
	Normalize   uint32 = 69
)

type table struct{}

func init() {
	ext.Register(Name, table{})
}

func (table) Call(code uint32, args [][]float64) ([]float64, error) {
	switch code {
	case Round:
		return unary(args, math.Round)
	case RoundEven:
		return unary(args, roundEven)
	case Trunc:
		return unary(args, math.Trunc)
	case FAbs, SAbs:
		return unary(args, math.Abs)
	case FSign:
		return unary(args, fsign)
	case SSign:
		return unary(args, fsign)
	case Floor:
		return unary(args, math.Floor)
	case Ceil:
		return unary(args, math.Ceil)
	case Fract:
		return unary(args, func(x float64) float64 { return x - math.Floor(x) })
	case Radians:
		return unary(args, func(x float64) float64 { return x * math.Pi / 180 })
	case Degrees:
		return unary(args, func(x float64) float64 { return x * 180 / math.Pi })
	case Sin:
		return unary(args, math.Sin)
	case Cos:
		return unary(args, math.Cos)
	case Tan:
		return unary(args, math.Tan)
	case Asin:
		return unary(args, math.Asin)
	case Acos:
		return unary(args, math.Acos)
	case Atan:
		return unary(args, math.Atan)
	case Sinh:
		return unary(args, math.Sinh)
	case Cosh:
		return unary(args, math.Cosh)
	case Tanh:
		return unary(args, math.Tanh)
	case Asinh:
		return unary(args, math.Asinh)
	case Acosh:
		return unary(args, math.Acosh)
	case Atanh:
		return unary(args, math.Atanh)
	case Atan2:
		return binary(args, math.Atan2)
	case Pow:
		return binary(args, math.Pow)
	case Exp:
		return unary(args, math.Exp)
	case Log:
		return unary(args, math.Log)
	case Exp2:
		return unary(args, math.Exp2)
	case Log2:
		return unary(args, math.Log2)
	case Sqrt:
		return unary(args, math.Sqrt)
	case InverseSqrt:
		return unary(args, func(x float64) float64 { return 1 / math.Sqrt(x) })
	case Length:
		return []float64{vecLength(args[0])}, nil
	case Distance:
		diff := make([]float64, len(args[0]))
		for i := range diff {
			diff[i] = args[0][i] - args[1][i]
		}
		return []float64{vecLength(diff)}, nil
	case Normalize:
		length := vecLength(args[0])
		out := make([]float64, len(args[0]))
		for i, v := range args[0] {
			out[i] = v / length
		}
		return out, nil
	}
	return nil, ext.ErrUnknownInstruction
}

func unary(args [][]float64, fn func(float64) float64) ([]float64, error) {
	in := args[0]
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out, nil
}

func binary(args [][]float64, fn func(float64, float64) float64) ([]float64, error) {
	a, b := args[0], args[1]
	out := make([]float64, len(a))
	for i := range a {
		out[i] = fn(a[i], b[i])
	}
	return out, nil
}

func roundEven(x float64) float64 {
	floor := math.Floor(x)
	diff := x - floor
	switch {
	case diff < 0.5:
		return floor
	case diff > 0.5:
		return floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			return floor
		}
		return floor + 1
	}
}

func fsign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func vecLength(v []float64) float64 {
	sum := 0.0
	for _, c := range v {
		sum += c * c
	}
	return math.Sqrt(sum)
}
