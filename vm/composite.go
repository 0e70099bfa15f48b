package vm

import (
	"fmt"

	"github.com/shadersim/spirvsim/ir"
	"github.com/shadersim/spirvsim/spirv"
)

// undefIndex is OpVectorShuffle's sentinel for "this component is
// undefined"; this simulator has no notion of undefined values, so it
// fills the slot with zero instead.
const undefIndex = 0xFFFFFFFF

func (s *Simulator) execComposite(frame *Frame, inst spirv.Instruction) error {
	switch inst.Opcode {
	case spirv.OpVectorExtractDynamic:
		return s.execVectorExtractDynamic(frame, inst)
	case spirv.OpVectorInsertDynamic:
		return s.execVectorInsertDynamic(frame, inst)
	case spirv.OpVectorShuffle:
		return s.execVectorShuffle(frame, inst)
	case spirv.OpCompositeConstruct:
		return s.execCompositeConstruct(frame, inst)
	case spirv.OpCompositeExtract:
		return s.execCompositeExtract(frame, inst)
	case spirv.OpCompositeInsert:
		return s.execCompositeInsert(frame, inst)
	case spirv.OpCopyObject:
		return s.execCopyObject(frame, inst)
	case spirv.OpTranspose:
		return s.execTranspose(frame, inst)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedOpcode, inst.Opcode)
}

func (s *Simulator) execVectorExtractDynamic(frame *Frame, inst spirv.Instruction) error {
	resultType, result, vecID, idxID := inst.Words[0], inst.Words[1], inst.Words[2], inst.Words[3]
	vec, err := s.get(frame, vecID)
	if err != nil {
		return err
	}
	idxReg, err := s.get(frame, idxID)
	if err != nil {
		return err
	}
	idx := regUint32(idxReg)
	out := make([]byte, 4)
	copy(out, component(vec.Bytes, int(idx)))
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

func (s *Simulator) execVectorInsertDynamic(frame *Frame, inst spirv.Instruction) error {
	resultType, result, vecID, compID, idxID := inst.Words[0], inst.Words[1], inst.Words[2], inst.Words[3], inst.Words[4]
	vec, err := s.get(frame, vecID)
	if err != nil {
		return err
	}
	comp, err := s.get(frame, compID)
	if err != nil {
		return err
	}
	idxReg, err := s.get(frame, idxID)
	if err != nil {
		return err
	}
	idx := regUint32(idxReg)
	out := make([]byte, len(vec.Bytes))
	copy(out, vec.Bytes)
	copy(component(out, int(idx)), comp.Bytes[:4])
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

func (s *Simulator) execVectorShuffle(frame *Frame, inst spirv.Instruction) error {
	resultType, result, v1ID, v2ID := inst.Words[0], inst.Words[1], inst.Words[2], inst.Words[3]
	v1, err := s.get(frame, v1ID)
	if err != nil {
		return err
	}
	v2, err := s.get(frame, v2ID)
	if err != nil {
		return err
	}
	_, n1, err := s.elemTypeAndCount(v1.TypeID)
	if err != nil {
		return err
	}
	indices := inst.Words[4:]
	out := newVectorBytes(len(indices))
	for i, idx := range indices {
		switch {
		case idx == undefIndex:
			// leave zeroed
		case int(idx) < n1:
			copy(component(out, i), component(v1.Bytes, int(idx)))
		default:
			copy(component(out, i), component(v2.Bytes, int(idx)-n1))
		}
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

func (s *Simulator) execCompositeConstruct(frame *Frame, inst spirv.Instruction) error {
	resultType, result := inst.Words[0], inst.Words[1]
	var out []byte
	for _, id := range inst.Words[2:] {
		part, err := s.get(frame, id)
		if err != nil {
			return err
		}
		out = append(out, part.Bytes...)
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

// compositeOffset walks indices (literal, not <id>s) through typeID the
// same way execAccessChain walks dynamic <id> indices through a pointer,
// returning the byte offset and leaf type of the addressed element.
func (s *Simulator) compositeOffset(typeID uint32, indices []uint32) (offset uint32, leafType uint32, err error) {
	current := typeID
	for _, idx := range indices {
		ty, err := s.module.Types.Get(current)
		if err != nil {
			return 0, 0, err
		}
		switch ty.Kind {
		case ir.TypeStruct:
			if int(idx) >= len(ty.Members) {
				return 0, 0, fmt.Errorf("%w: struct %d has no member %d", ErrInvariantViolation, current, idx)
			}
			for _, member := range ty.Members[:idx] {
				size, err := s.module.Types.SizeOf(member)
				if err != nil {
					return 0, 0, err
				}
				offset += size
			}
			current = ty.Members[idx]
		case ir.TypeArray, ir.TypeRuntimeArray:
			elemSize, err := s.module.Types.SizeOf(ty.Element)
			if err != nil {
				return 0, 0, err
			}
			offset += idx * elemSize
			current = ty.Element
		case ir.TypeVector, ir.TypeMatrix:
			elemSize, err := s.module.Types.SizeOf(ty.Component)
			if err != nil {
				return 0, 0, err
			}
			offset += idx * elemSize
			current = ty.Component
		default:
			return 0, 0, fmt.Errorf("%w: cannot index into type %d", ErrTypeMismatch, current)
		}
	}
	return offset, current, nil
}

func (s *Simulator) execCompositeExtract(frame *Frame, inst spirv.Instruction) error {
	resultType, result, compID := inst.Words[0], inst.Words[1], inst.Words[2]
	composite, err := s.get(frame, compID)
	if err != nil {
		return err
	}
	offset, _, err := s.compositeOffset(composite.TypeID, inst.Words[3:])
	if err != nil {
		return err
	}
	size, err := s.module.Types.SizeOf(resultType)
	if err != nil {
		return err
	}
	out := make([]byte, size)
	copy(out, composite.Bytes[offset:offset+size])
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

func (s *Simulator) execCompositeInsert(frame *Frame, inst spirv.Instruction) error {
	resultType, result, objID, compID := inst.Words[0], inst.Words[1], inst.Words[2], inst.Words[3]
	obj, err := s.get(frame, objID)
	if err != nil {
		return err
	}
	composite, err := s.get(frame, compID)
	if err != nil {
		return err
	}
	offset, leafType, err := s.compositeOffset(composite.TypeID, inst.Words[4:])
	if err != nil {
		return err
	}
	size, err := s.module.Types.SizeOf(leafType)
	if err != nil {
		return err
	}
	out := make([]byte, len(composite.Bytes))
	copy(out, composite.Bytes)
	copy(out[offset:offset+size], obj.Bytes)
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

func (s *Simulator) execCopyObject(frame *Frame, inst spirv.Instruction) error {
	resultType, result, aID := inst.Words[0], inst.Words[1], inst.Words[2]
	a, err := s.get(frame, aID)
	if err != nil {
		return err
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: append([]byte{}, a.Bytes...)})
	return nil
}

func (s *Simulator) execTranspose(frame *Frame, inst spirv.Instruction) error {
	resultType, result, aID := inst.Words[0], inst.Words[1], inst.Words[2]
	a, err := s.get(frame, aID)
	if err != nil {
		return err
	}
	cols, rows, err := s.matrixColumns(a.TypeID, a.Bytes)
	if err != nil {
		return err
	}
	out := make([]byte, 0, len(cols)*rows*4)
	for r := 0; r < rows; r++ {
		row := make([]float32, len(cols))
		for c, col := range cols {
			row[c] = col[r]
		}
		out = append(out, writeVec(row)...)
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}
