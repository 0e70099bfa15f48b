package vm

import (
	"fmt"
	"math"

	"github.com/shadersim/spirvsim/ir"
	"github.com/shadersim/spirvsim/spirv"
)

func (s *Simulator) execBinaryArith(frame *Frame, inst spirv.Instruction) error {
	resultType, result, aID, bID := inst.Words[0], inst.Words[1], inst.Words[2], inst.Words[3]
	a, err := s.get(frame, aID)
	if err != nil {
		return err
	}
	b, err := s.get(frame, bID)
	if err != nil {
		return err
	}
	elem, count, err := s.elemTypeAndCount(resultType)
	if err != nil {
		return err
	}
	out := newVectorBytes(count)
	for i := 0; i < count; i++ {
		switch elem.Kind {
		case ir.TypeFloat:
			x, y := componentFloat32(a.Bytes, i), componentFloat32(b.Bytes, i)
			r, err := floatArith(inst.Opcode, x, y)
			if err != nil {
				return err
			}
			setComponentFloat32(out, i, r)
		case ir.TypeInt:
			if elem.Signed {
				x, y := int32(componentUint32(a.Bytes, i)), int32(componentUint32(b.Bytes, i))
				r, err := signedArith(inst.Opcode, x, y)
				if err != nil {
					return err
				}
				setComponentUint32(out, i, uint32(r))
			} else {
				x, y := componentUint32(a.Bytes, i), componentUint32(b.Bytes, i)
				r, err := unsignedArith(inst.Opcode, x, y)
				if err != nil {
					return err
				}
				setComponentUint32(out, i, r)
			}
		default:
			return fmt.Errorf("%w: %s on non-numeric type", ErrTypeMismatch, inst.Opcode)
		}
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

func floatArith(op spirv.OpCode, x, y float32) (float32, error) {
	switch op {
	case spirv.OpFAdd:
		return x + y, nil
	case spirv.OpFSub:
		return x - y, nil
	case spirv.OpFMul:
		return x * y, nil
	case spirv.OpFDiv:
		return x / y, nil
	case spirv.OpFRem:
		return float32(math.Mod(float64(x), float64(y))), nil
	case spirv.OpFMod:
		m := float32(math.Mod(float64(x), float64(y)))
		if m != 0 && (m < 0) != (y < 0) {
			m += y
		}
		return m, nil
	}
	return 0, fmt.Errorf("%w: %s is not a float arithmetic opcode", ErrUnsupportedOpcode, op)
}

func signedArith(op spirv.OpCode, x, y int32) (int32, error) {
	switch op {
	case spirv.OpIAdd:
		return x + y, nil
	case spirv.OpISub:
		return x - y, nil
	case spirv.OpIMul:
		return x * y, nil
	case spirv.OpSDiv:
		if y == 0 {
			return 0, fmt.Errorf("%w: signed division by zero", ErrInvariantViolation)
		}
		return x / y, nil
	case spirv.OpSRem:
		if y == 0 {
			return 0, fmt.Errorf("%w: signed remainder by zero", ErrInvariantViolation)
		}
		return x % y, nil
	case spirv.OpSMod:
		if y == 0 {
			return 0, fmt.Errorf("%w: signed modulo by zero", ErrInvariantViolation)
		}
		m := x % y
		if m != 0 && (m < 0) != (y < 0) {
			m += y
		}
		return m, nil
	}
	return 0, fmt.Errorf("%w: %s is not a signed integer arithmetic opcode", ErrUnsupportedOpcode, op)
}

func unsignedArith(op spirv.OpCode, x, y uint32) (uint32, error) {
	switch op {
	case spirv.OpIAdd:
		return x + y, nil
	case spirv.OpISub:
		return x - y, nil
	case spirv.OpIMul:
		return x * y, nil
	case spirv.OpUDiv:
		if y == 0 {
			return 0, fmt.Errorf("%w: unsigned division by zero", ErrInvariantViolation)
		}
		return x / y, nil
	case spirv.OpUMod:
		if y == 0 {
			return 0, fmt.Errorf("%w: unsigned modulo by zero", ErrInvariantViolation)
		}
		return x % y, nil
	}
	return 0, fmt.Errorf("%w: %s is not an unsigned integer arithmetic opcode", ErrUnsupportedOpcode, op)
}

func (s *Simulator) execUnaryArith(frame *Frame, inst spirv.Instruction) error {
	resultType, result, aID := inst.Words[0], inst.Words[1], inst.Words[2]
	a, err := s.get(frame, aID)
	if err != nil {
		return err
	}
	elem, count, err := s.elemTypeAndCount(resultType)
	if err != nil {
		return err
	}
	out := newVectorBytes(count)
	for i := 0; i < count; i++ {
		switch {
		case inst.Opcode == spirv.OpFNegate && elem.Kind == ir.TypeFloat:
			setComponentFloat32(out, i, -componentFloat32(a.Bytes, i))
		case inst.Opcode == spirv.OpSNegate && elem.Kind == ir.TypeInt:
			setComponentUint32(out, i, uint32(-int32(componentUint32(a.Bytes, i))))
		default:
			return fmt.Errorf("%w: %s on mismatched type", ErrTypeMismatch, inst.Opcode)
		}
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

// execLinAlg implements the vector/matrix product family. Matrices are
// stored column-major: a matrix's Type.Component names its column vector
// type and Type.Count its number of columns, so a column's bytes sit at
// columnSize*col within the register.
func (s *Simulator) execLinAlg(frame *Frame, inst spirv.Instruction) error {
	resultType, result, aID, bID := inst.Words[0], inst.Words[1], inst.Words[2], inst.Words[3]
	a, err := s.get(frame, aID)
	if err != nil {
		return err
	}
	b, err := s.get(frame, bID)
	if err != nil {
		return err
	}
	switch inst.Opcode {
	case spirv.OpVectorTimesScalar:
		return s.vectorTimesScalar(frame, resultType, result, a, b)
	case spirv.OpMatrixTimesScalar:
		return s.matrixTimesScalar(frame, resultType, result, a, b)
	case spirv.OpDot:
		return s.dot(frame, resultType, result, a, b)
	case spirv.OpVectorTimesMatrix:
		return s.vectorTimesMatrix(frame, resultType, result, a, b)
	case spirv.OpMatrixTimesVector:
		return s.matrixTimesVector(frame, resultType, result, a, b)
	case spirv.OpMatrixTimesMatrix:
		return s.matrixTimesMatrix(frame, resultType, result, a, b)
	case spirv.OpOuterProduct:
		return s.outerProduct(frame, resultType, result, a, b)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedOpcode, inst.Opcode)
}

func readVec(bytes []byte, n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = componentFloat32(bytes, i)
	}
	return v
}

func writeVec(v []float32) []byte {
	out := newVectorBytes(len(v))
	for i, x := range v {
		setComponentFloat32(out, i, x)
	}
	return out
}

// matrixColumns splits a matrix register's bytes into its columns.
func (s *Simulator) matrixColumns(typeID uint32, bytes []byte) ([][]float32, int, error) {
	ty, err := s.module.Types.Get(typeID)
	if err != nil {
		return nil, 0, err
	}
	rowCount, err := s.module.Types.CountOf(ty.Component)
	if err != nil {
		return nil, 0, err
	}
	cols := make([][]float32, ty.Count)
	for c := uint32(0); c < ty.Count; c++ {
		start := int(c) * int(rowCount) * 4
		cols[c] = readVec(bytes[start:], int(rowCount))
	}
	return cols, int(rowCount), nil
}

func (s *Simulator) vectorTimesScalar(frame *Frame, resultType, result uint32, a, b Register) error {
	_, count, err := s.elemTypeAndCount(resultType)
	if err != nil {
		return err
	}
	scalar := regFloat32(b)
	v := readVec(a.Bytes, count)
	for i := range v {
		v[i] *= scalar
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: writeVec(v)})
	return nil
}

func (s *Simulator) matrixTimesScalar(frame *Frame, resultType, result uint32, a, b Register) error {
	cols, rows, err := s.matrixColumns(resultType, a.Bytes)
	if err != nil {
		return err
	}
	scalar := regFloat32(b)
	out := make([]byte, 0, len(cols)*rows*4)
	for _, col := range cols {
		scaled := make([]float32, rows)
		for i, x := range col {
			scaled[i] = x * scalar
		}
		out = append(out, writeVec(scaled)...)
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

func (s *Simulator) dot(frame *Frame, resultType, result uint32, a, b Register) error {
	_, count, err := s.elemTypeAndCount(a.TypeID)
	if err != nil {
		return err
	}
	va, vb := readVec(a.Bytes, count), readVec(b.Bytes, count)
	var sum float32
	for i := range va {
		sum += va[i] * vb[i]
	}
	s.set(frame, result, floatRegister(resultType, sum))
	return nil
}

// vectorTimesMatrix treats the vector as a row vector multiplying the
// matrix on the left: result[c] = sum_r vector[r] * matrix.col[c][r].
func (s *Simulator) vectorTimesMatrix(frame *Frame, resultType, result uint32, a, b Register) error {
	cols, rows, err := s.matrixColumns(b.TypeID, b.Bytes)
	if err != nil {
		return err
	}
	vec := readVec(a.Bytes, rows)
	out := make([]float32, len(cols))
	for c, col := range cols {
		var sum float32
		for r := 0; r < rows; r++ {
			sum += vec[r] * col[r]
		}
		out[c] = sum
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: writeVec(out)})
	return nil
}

// matrixTimesVector treats the vector as a column vector multiplying the
// matrix on the right: result[r] = sum_c matrix.col[c][r] * vector[c].
func (s *Simulator) matrixTimesVector(frame *Frame, resultType, result uint32, a, b Register) error {
	cols, rows, err := s.matrixColumns(a.TypeID, a.Bytes)
	if err != nil {
		return err
	}
	vec := readVec(b.Bytes, len(cols))
	out := make([]float32, rows)
	for c, col := range cols {
		for r := 0; r < rows; r++ {
			out[r] += col[r] * vec[c]
		}
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: writeVec(out)})
	return nil
}

func (s *Simulator) matrixTimesMatrix(frame *Frame, resultType, result uint32, a, b Register) error {
	leftCols, leftRows, err := s.matrixColumns(a.TypeID, a.Bytes)
	if err != nil {
		return err
	}
	rightCols, rightRows, err := s.matrixColumns(b.TypeID, b.Bytes)
	if err != nil {
		return err
	}
	if len(leftCols) != rightRows {
		return fmt.Errorf("%w: matrix multiply inner dimension mismatch (%d vs %d)", ErrTypeMismatch, len(leftCols), rightRows)
	}
	out := make([]byte, 0, len(rightCols)*leftRows*4)
	for _, rightCol := range rightCols {
		acc := make([]float32, leftRows)
		for k, scalar := range rightCol {
			for r := 0; r < leftRows; r++ {
				acc[r] += leftCols[k][r] * scalar
			}
		}
		out = append(out, writeVec(acc)...)
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

// outerProduct builds a matrix from column vector a (length m, the result's
// row count) and row vector b (length n, the result's column count):
// result.col[j][i] = a[i] * b[j].
func (s *Simulator) outerProduct(frame *Frame, resultType, result uint32, a, b Register) error {
	_, m, err := s.elemTypeAndCount(a.TypeID)
	if err != nil {
		return err
	}
	_, n, err := s.elemTypeAndCount(b.TypeID)
	if err != nil {
		return err
	}
	va, vb := readVec(a.Bytes, m), readVec(b.Bytes, n)
	out := make([]byte, 0, n*m*4)
	for j := 0; j < n; j++ {
		col := make([]float32, m)
		for i := 0; i < m; i++ {
			col[i] = va[i] * vb[j]
		}
		out = append(out, writeVec(col)...)
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}
