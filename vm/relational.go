package vm

import (
	"fmt"
	"math"

	"github.com/shadersim/spirvsim/ir"
	"github.com/shadersim/spirvsim/spirv"
)

func (s *Simulator) execCompare(frame *Frame, inst spirv.Instruction) error {
	resultType, result, aID, bID := inst.Words[0], inst.Words[1], inst.Words[2], inst.Words[3]
	a, err := s.get(frame, aID)
	if err != nil {
		return err
	}
	b, err := s.get(frame, bID)
	if err != nil {
		return err
	}
	elem, count, err := s.elemTypeAndCount(a.TypeID)
	if err != nil {
		return err
	}
	out := newVectorBytes(count)
	for i := 0; i < count; i++ {
		var truth bool
		switch elem.Kind {
		case ir.TypeFloat:
			x, y := componentFloat32(a.Bytes, i), componentFloat32(b.Bytes, i)
			truth, err = floatCompare(inst.Opcode, x, y)
		case ir.TypeInt:
			if elem.Signed {
				truth, err = signedCompare(inst.Opcode, int32(componentUint32(a.Bytes, i)), int32(componentUint32(b.Bytes, i)))
			} else {
				truth, err = unsignedCompare(inst.Opcode, componentUint32(a.Bytes, i), componentUint32(b.Bytes, i))
			}
		default:
			err = fmt.Errorf("%w: %s on non-numeric type", ErrTypeMismatch, inst.Opcode)
		}
		if err != nil {
			return err
		}
		if truth {
			setComponentUint32(out, i, 1)
		}
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

func signedCompare(op spirv.OpCode, x, y int32) (bool, error) {
	switch op {
	case spirv.OpIEqual:
		return x == y, nil
	case spirv.OpINotEqual:
		return x != y, nil
	case spirv.OpSGreaterThan:
		return x > y, nil
	case spirv.OpSGreaterThanEqual:
		return x >= y, nil
	case spirv.OpSLessThan:
		return x < y, nil
	case spirv.OpSLessThanEqual:
		return x <= y, nil
	}
	return false, fmt.Errorf("%w: %s is not a signed comparison", ErrUnsupportedOpcode, op)
}

func unsignedCompare(op spirv.OpCode, x, y uint32) (bool, error) {
	switch op {
	case spirv.OpIEqual:
		return x == y, nil
	case spirv.OpINotEqual:
		return x != y, nil
	case spirv.OpUGreaterThan:
		return x > y, nil
	case spirv.OpUGreaterThanEqual:
		return x >= y, nil
	case spirv.OpULessThan:
		return x < y, nil
	case spirv.OpULessThanEqual:
		return x <= y, nil
	}
	return false, fmt.Errorf("%w: %s is not an unsigned comparison", ErrUnsupportedOpcode, op)
}

func floatCompare(op spirv.OpCode, x, y float32) (bool, error) {
	nan := math.IsNaN(float64(x)) || math.IsNaN(float64(y))
	switch op {
	case spirv.OpFOrdEqual:
		return !nan && x == y, nil
	case spirv.OpFUnordEqual:
		return nan || x == y, nil
	case spirv.OpFOrdNotEqual:
		return !nan && x != y, nil
	case spirv.OpFUnordNotEqual:
		return nan || x != y, nil
	case spirv.OpFOrdLessThan:
		return !nan && x < y, nil
	case spirv.OpFUnordLessThan:
		return nan || x < y, nil
	case spirv.OpFOrdGreaterThan:
		return !nan && x > y, nil
	case spirv.OpFUnordGreaterThan:
		return nan || x > y, nil
	case spirv.OpFOrdLessThanEqual:
		return !nan && x <= y, nil
	case spirv.OpFUnordLessThanEqual:
		return nan || x <= y, nil
	case spirv.OpFOrdGreaterThanEqual:
		return !nan && x >= y, nil
	case spirv.OpFUnordGreaterThanEqual:
		return nan || x >= y, nil
	case spirv.OpLessOrGreater:
		return !nan && x != y, nil
	case spirv.OpOrdered:
		return !nan, nil
	case spirv.OpUnordered:
		return nan, nil
	}
	return false, fmt.Errorf("%w: %s is not a float comparison", ErrUnsupportedOpcode, op)
}

// execLogical implements the OpLogical* family. Operand types are not
// checked: every operand word is read as a nonzero-word truth value, so a module that feeds a
// float condition through here still gets a sensible answer instead of a
// type-mismatch error.
func (s *Simulator) execLogical(frame *Frame, inst spirv.Instruction) error {
	resultType, result, aID := inst.Words[0], inst.Words[1], inst.Words[2]
	a, err := s.get(frame, aID)
	if err != nil {
		return err
	}
	_, count, err := s.elemTypeAndCount(resultType)
	if err != nil {
		return err
	}
	out := newVectorBytes(count)

	if inst.Opcode == spirv.OpLogicalNot {
		for i := 0; i < count; i++ {
			if componentUint32(a.Bytes, i) == 0 {
				setComponentUint32(out, i, 1)
			}
		}
		s.set(frame, result, Register{TypeID: resultType, Bytes: out})
		return nil
	}

	bID := inst.Words[3]
	b, err := s.get(frame, bID)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		x, y := componentUint32(a.Bytes, i) != 0, componentUint32(b.Bytes, i) != 0
		var truth bool
		switch inst.Opcode {
		case spirv.OpLogicalEqual:
			truth = x == y
		case spirv.OpLogicalNotEqual:
			truth = x != y
		case spirv.OpLogicalOr:
			truth = x || y
		case spirv.OpLogicalAnd:
			truth = x && y
		}
		if truth {
			setComponentUint32(out, i, 1)
		}
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

func (s *Simulator) execSelect(frame *Frame, inst spirv.Instruction) error {
	resultType, result, condID, trueID, falseID := inst.Words[0], inst.Words[1], inst.Words[2], inst.Words[3], inst.Words[4]
	cond, err := s.get(frame, condID)
	if err != nil {
		return err
	}
	t, err := s.get(frame, trueID)
	if err != nil {
		return err
	}
	f, err := s.get(frame, falseID)
	if err != nil {
		return err
	}
	_, count, err := s.elemTypeAndCount(resultType)
	if err != nil {
		return err
	}
	_, condCount, err := s.elemTypeAndCount(cond.TypeID)
	if err != nil {
		return err
	}
	out := newVectorBytes(count)
	for i := 0; i < count; i++ {
		condIdx := i
		if condCount == 1 {
			condIdx = 0
		}
		if componentUint32(cond.Bytes, condIdx) != 0 {
			copy(component(out, i), component(t.Bytes, i))
		} else {
			copy(component(out, i), component(f.Bytes, i))
		}
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

func (s *Simulator) execAnyAll(frame *Frame, inst spirv.Instruction) error {
	resultType, result, aID := inst.Words[0], inst.Words[1], inst.Words[2]
	a, err := s.get(frame, aID)
	if err != nil {
		return err
	}
	_, count, err := s.elemTypeAndCount(a.TypeID)
	if err != nil {
		return err
	}
	truth := inst.Opcode == spirv.OpAll
	for i := 0; i < count; i++ {
		bit := componentUint32(a.Bytes, i) != 0
		if inst.Opcode == spirv.OpAny {
			truth = truth || bit
		} else {
			truth = truth && bit
		}
	}
	s.set(frame, result, boolRegister(resultType, truth))
	return nil
}

func (s *Simulator) execFloatPredicate(frame *Frame, inst spirv.Instruction) error {
	resultType, result, aID := inst.Words[0], inst.Words[1], inst.Words[2]
	a, err := s.get(frame, aID)
	if err != nil {
		return err
	}
	_, count, err := s.elemTypeAndCount(a.TypeID)
	if err != nil {
		return err
	}
	out := newVectorBytes(count)
	for i := 0; i < count; i++ {
		x := float64(componentFloat32(a.Bytes, i))
		var truth bool
		switch inst.Opcode {
		case spirv.OpIsNan:
			truth = math.IsNaN(x)
		case spirv.OpIsInf:
			truth = math.IsInf(x, 0)
		case spirv.OpIsFinite:
			truth = !math.IsNaN(x) && !math.IsInf(x, 0)
		case spirv.OpIsNormal:
			truth = x != 0 && !math.IsNaN(x) && !math.IsInf(x, 0) && math.Abs(x) >= math.SmallestNonzeroFloat32*float64(1<<23)
		case spirv.OpSignBitSet:
			truth = math.Signbit(x)
		}
		if truth {
			setComponentUint32(out, i, 1)
		}
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}
