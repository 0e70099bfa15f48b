package vm

import (
	"fmt"

	"github.com/shadersim/spirvsim/ir"
	"github.com/shadersim/spirvsim/spirv"
)

// exec executes one instruction against frame, the current top of the
// call stack. It returns jumped=true when it has already repositioned
// frame.PC (a branch, a call, a return) so Step must not also advance it.
func (s *Simulator) exec(frame *Frame, inst spirv.Instruction) (bool, error) {
	switch inst.Opcode {
	case spirv.OpNop, spirv.OpLabel, spirv.OpLoopMerge, spirv.OpSelectionMerge:
		return false, nil

	case spirv.OpBranch:
		return s.execBranch(frame, inst)
	case spirv.OpBranchConditional:
		return s.execBranchConditional(frame, inst)
	case spirv.OpSwitch:
		return s.execSwitch(frame, inst)
	case spirv.OpKill, spirv.OpUnreachable:
		return s.execKill()
	case spirv.OpReturn:
		return s.execReturn(frame, 0)
	case spirv.OpReturnValue:
		return s.execReturn(frame, inst.Words[0])

	case spirv.OpFunctionCall:
		return s.execFunctionCall(frame, inst)

	case spirv.OpVariable:
		return false, fmt.Errorf("%w: OpVariable after the start of a function's body", ErrInvariantViolation)
	case spirv.OpLoad:
		return false, s.execLoad(frame, inst)
	case spirv.OpStore:
		return false, s.execStore(frame, inst)
	case spirv.OpAccessChain:
		return false, s.execAccessChain(frame, inst)

	case spirv.OpExtInst:
		return false, s.execExtInst(frame, inst)

	case spirv.OpIAdd, spirv.OpFAdd, spirv.OpISub, spirv.OpFSub, spirv.OpIMul, spirv.OpFMul,
		spirv.OpUDiv, spirv.OpSDiv, spirv.OpFDiv, spirv.OpUMod, spirv.OpSRem, spirv.OpSMod,
		spirv.OpFRem, spirv.OpFMod:
		return false, s.execBinaryArith(frame, inst)
	case spirv.OpSNegate, spirv.OpFNegate:
		return false, s.execUnaryArith(frame, inst)
	case spirv.OpVectorTimesScalar, spirv.OpMatrixTimesScalar, spirv.OpVectorTimesMatrix,
		spirv.OpMatrixTimesVector, spirv.OpMatrixTimesMatrix, spirv.OpOuterProduct, spirv.OpDot:
		return false, s.execLinAlg(frame, inst)

	case spirv.OpShiftRightLogical, spirv.OpShiftRightArithmetic, spirv.OpShiftLeftLogical,
		spirv.OpBitwiseOr, spirv.OpBitwiseXor, spirv.OpBitwiseAnd, spirv.OpNot,
		spirv.OpBitFieldInsert, spirv.OpBitFieldSExtract, spirv.OpBitFieldUExtract,
		spirv.OpBitReverse, spirv.OpBitCount:
		return false, s.execBitwise(frame, inst)

	case spirv.OpIEqual, spirv.OpINotEqual, spirv.OpUGreaterThan, spirv.OpSGreaterThan,
		spirv.OpUGreaterThanEqual, spirv.OpSGreaterThanEqual, spirv.OpULessThan, spirv.OpSLessThan,
		spirv.OpULessThanEqual, spirv.OpSLessThanEqual,
		spirv.OpFOrdEqual, spirv.OpFUnordEqual, spirv.OpFOrdNotEqual, spirv.OpFUnordNotEqual,
		spirv.OpFOrdLessThan, spirv.OpFUnordLessThan, spirv.OpFOrdGreaterThan, spirv.OpFUnordGreaterThan,
		spirv.OpFOrdLessThanEqual, spirv.OpFUnordLessThanEqual,
		spirv.OpFOrdGreaterThanEqual, spirv.OpFUnordGreaterThanEqual,
		spirv.OpLessOrGreater, spirv.OpOrdered, spirv.OpUnordered:
		return false, s.execCompare(frame, inst)
	case spirv.OpLogicalEqual, spirv.OpLogicalNotEqual, spirv.OpLogicalOr, spirv.OpLogicalAnd, spirv.OpLogicalNot:
		return false, s.execLogical(frame, inst)
	case spirv.OpSelect:
		return false, s.execSelect(frame, inst)
	case spirv.OpAny, spirv.OpAll:
		return false, s.execAnyAll(frame, inst)
	case spirv.OpIsNan, spirv.OpIsInf, spirv.OpIsFinite, spirv.OpIsNormal, spirv.OpSignBitSet:
		return false, s.execFloatPredicate(frame, inst)

	case spirv.OpVectorExtractDynamic, spirv.OpVectorInsertDynamic, spirv.OpVectorShuffle,
		spirv.OpCompositeConstruct, spirv.OpCompositeExtract, spirv.OpCompositeInsert,
		spirv.OpCopyObject, spirv.OpTranspose:
		return false, s.execComposite(frame, inst)

	case spirv.OpConvertFToU, spirv.OpConvertFToS, spirv.OpConvertSToF, spirv.OpConvertUToF,
		spirv.OpUConvert, spirv.OpSConvert, spirv.OpFConvert, spirv.OpConvertPtrToU,
		spirv.OpSatConvertSToU, spirv.OpSatConvertUToS, spirv.OpConvertUToPtr, spirv.OpBitcast:
		return false, s.execConvert(frame, inst)
	}
	return false, ErrUnsupportedOpcode
}

func (s *Simulator) execBranch(frame *Frame, inst spirv.Instruction) (bool, error) {
	target := inst.Words[0]
	idx, ok := frame.Function.Labels[target]
	if !ok {
		return false, fmt.Errorf("%w: branch to label %d with no OpLabel", ErrInvariantViolation, target)
	}
	frame.PC = idx
	return true, nil
}

func (s *Simulator) execBranchConditional(frame *Frame, inst spirv.Instruction) (bool, error) {
	cond, err := s.get(frame, inst.Words[0])
	if err != nil {
		return false, err
	}
	target := inst.Words[1]
	if !regBool(cond) {
		target = inst.Words[2]
	}
	idx, ok := frame.Function.Labels[target]
	if !ok {
		return false, fmt.Errorf("%w: branch to label %d with no OpLabel", ErrInvariantViolation, target)
	}
	frame.PC = idx
	return true, nil
}

func (s *Simulator) execSwitch(frame *Frame, inst spirv.Instruction) (bool, error) {
	selector, err := s.get(frame, inst.Words[0])
	if err != nil {
		return false, err
	}
	def := inst.Words[1]
	target := def
	value := regUint32(selector)
	rest := inst.Words[2:]
	for idx := 0; idx+1 < len(rest); idx += 2 {
		if rest[idx] == value {
			target = rest[idx+1]
			break
		}
	}
	i, ok := frame.Function.Labels[target]
	if !ok {
		return false, fmt.Errorf("%w: switch to label %d with no OpLabel", ErrInvariantViolation, target)
	}
	frame.PC = i
	return true, nil
}

func (s *Simulator) execKill() (bool, error) {
	for s.stack.Len() > 0 {
		s.stack.Pop()
	}
	return true, nil
}

func (s *Simulator) execReturn(frame *Frame, valueID uint32) (bool, error) {
	var value Register
	var hasValue bool
	if valueID != 0 {
		v, err := s.get(frame, valueID)
		if err != nil {
			return false, err
		}
		value, hasValue = v, true
	}
	popped := s.stack.Pop()
	s.heap.ResetTo(popped.HeapMark)
	if hasValue && popped.ResultRegister != 0 {
		caller := s.stack.Top()
		if caller == nil {
			return false, fmt.Errorf("%w: return value %d with no caller frame to receive it", ErrInvariantViolation, valueID)
		}
		s.set(caller, popped.ResultRegister, CloneRegister(value))
	}
	return true, nil
}

func (s *Simulator) execFunctionCall(frame *Frame, inst spirv.Instruction) (bool, error) {
	resultType, result, funcID := inst.Words[0], inst.Words[1], inst.Words[2]
	fn, err := s.module.Functions.Get(funcID)
	if err != nil {
		return false, err
	}
	callee, err := s.newFrame(fn, result, resultType)
	if err != nil {
		return false, err
	}
	argIDs := inst.Words[3:]
	for i, paramID := range fn.Params {
		if i >= len(argIDs) {
			return false, fmt.Errorf("%w: call to function %d missing argument %d", ErrInvariantViolation, funcID, i)
		}
		arg, err := s.get(frame, argIDs[i])
		if err != nil {
			return false, err
		}
		callee.Registers.Set(paramID, CloneRegister(arg))
	}
	frame.PC++
	s.stack.Push(callee)
	return true, nil
}

func (s *Simulator) execLoad(frame *Frame, inst spirv.Instruction) error {
	resultType, result, pointerID := inst.Words[0], inst.Words[1], inst.Words[2]
	ptr, err := s.get(frame, pointerID)
	if err != nil {
		return err
	}
	size, err := s.module.Types.SizeOf(resultType)
	if err != nil {
		return err
	}
	data, err := s.heap.Read(regUint32(ptr), size)
	if err != nil {
		return err
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: data})
	return nil
}

func (s *Simulator) execStore(frame *Frame, inst spirv.Instruction) error {
	pointerID, valueID := inst.Words[0], inst.Words[1]
	ptr, err := s.get(frame, pointerID)
	if err != nil {
		return err
	}
	val, err := s.get(frame, valueID)
	if err != nil {
		return err
	}
	return s.heap.Write(regUint32(ptr), val.Bytes)
}

func (s *Simulator) execAccessChain(frame *Frame, inst spirv.Instruction) error {
	resultType, result, baseID := inst.Words[0], inst.Words[1], inst.Words[2]
	base, err := s.get(frame, baseID)
	if err != nil {
		return err
	}
	basePtrType, err := s.module.Types.Get(base.TypeID)
	if err != nil {
		return err
	}
	offset := regUint32(base)
	current := basePtrType.Base
	for _, indexID := range inst.Words[3:] {
		idxReg, err := s.get(frame, indexID)
		if err != nil {
			return err
		}
		idx := regUint32(idxReg)
		ty, err := s.module.Types.Get(current)
		if err != nil {
			return err
		}
		switch ty.Kind {
		case ir.TypeStruct:
			if int(idx) >= len(ty.Members) {
				return fmt.Errorf("%w: struct %d has no member %d", ErrInvariantViolation, current, idx)
			}
			for _, member := range ty.Members[:idx] {
				size, err := s.module.Types.SizeOf(member)
				if err != nil {
					return err
				}
				offset += size
			}
			current = ty.Members[idx]
		case ir.TypeArray, ir.TypeRuntimeArray:
			elemSize, err := s.module.Types.SizeOf(ty.Element)
			if err != nil {
				return err
			}
			offset += idx * elemSize
			current = ty.Element
		case ir.TypeVector, ir.TypeMatrix:
			elemSize, err := s.module.Types.SizeOf(ty.Component)
			if err != nil {
				return err
			}
			offset += idx * elemSize
			current = ty.Component
		default:
			return fmt.Errorf("%w: cannot index into type %d", ErrTypeMismatch, current)
		}
	}
	s.set(frame, result, scalarRegister(resultType, offset))
	return nil
}
