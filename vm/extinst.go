package vm

import (
	"fmt"

	"github.com/shadersim/spirvsim/ir"
	"github.com/shadersim/spirvsim/spirv"
)

// execExtInst decodes OpExtInst's operands into plain float64 components,
// hands them to the resolved ext.Table, and re-encodes its result into
// the result register's own type.
func (s *Simulator) execExtInst(frame *Frame, inst spirv.Instruction) error {
	resultType, result, setID, code := inst.Words[0], inst.Words[1], inst.Words[2], inst.Words[3]
	table, ok := s.extIDs[setID]
	if !ok {
		return fmt.Errorf("%w: OpExtInst references unimported set %d", ErrInvariantViolation, setID)
	}

	args := make([][]float64, 0, len(inst.Words)-4)
	for _, id := range inst.Words[4:] {
		reg, err := s.get(frame, id)
		if err != nil {
			return err
		}
		vals, err := s.decodeComponents(reg)
		if err != nil {
			return err
		}
		args = append(args, vals)
	}

	out, err := table.Call(code, args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedExtension, err)
	}
	reg, err := s.encodeComponents(out, resultType)
	if err != nil {
		return err
	}
	s.set(frame, result, reg)
	return nil
}

func (s *Simulator) decodeComponents(reg Register) ([]float64, error) {
	elem, count, err := s.elemTypeAndCount(reg.TypeID)
	if err != nil {
		return nil, err
	}
	out := make([]float64, count)
	for i := 0; i < count; i++ {
		switch elem.Kind {
		case ir.TypeFloat:
			out[i] = float64(componentFloat32(reg.Bytes, i))
		case ir.TypeInt:
			if elem.Signed {
				out[i] = float64(int32(componentUint32(reg.Bytes, i)))
			} else {
				out[i] = float64(componentUint32(reg.Bytes, i))
			}
		case ir.TypeBool:
			if componentUint32(reg.Bytes, i) != 0 {
				out[i] = 1
			}
		default:
			return nil, fmt.Errorf("%w: extended instruction operand of non-numeric type", ErrTypeMismatch)
		}
	}
	return out, nil
}

func (s *Simulator) encodeComponents(vals []float64, resultType uint32) (Register, error) {
	elem, count, err := s.elemTypeAndCount(resultType)
	if err != nil {
		return Register{}, err
	}
	if len(vals) != count {
		return Register{}, fmt.Errorf("%w: extended instruction returned %d components, result type wants %d", ErrInvariantViolation, len(vals), count)
	}
	out := newVectorBytes(count)
	for i, v := range vals {
		switch elem.Kind {
		case ir.TypeFloat:
			setComponentFloat32(out, i, float32(v))
		case ir.TypeInt:
			if elem.Signed {
				setComponentUint32(out, i, uint32(int32(v)))
			} else {
				setComponentUint32(out, i, uint32(v))
			}
		default:
			return Register{}, fmt.Errorf("%w: extended instruction result of non-numeric type", ErrTypeMismatch)
		}
	}
	return Register{TypeID: resultType, Bytes: out}, nil
}
