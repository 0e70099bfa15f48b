package vm

import (
	"fmt"
	"math"

	"github.com/shadersim/spirvsim/spirv"
)

func (s *Simulator) execConvert(frame *Frame, inst spirv.Instruction) error {
	resultType, result, aID := inst.Words[0], inst.Words[1], inst.Words[2]
	a, err := s.get(frame, aID)
	if err != nil {
		return err
	}

	switch inst.Opcode {
	case spirv.OpConvertPtrToU, spirv.OpConvertUToPtr, spirv.OpBitcast:
		s.set(frame, result, Register{TypeID: resultType, Bytes: append([]byte{}, a.Bytes...)})
		return nil
	}

	_, count, err := s.elemTypeAndCount(resultType)
	if err != nil {
		return err
	}
	_, srcCount, err := s.elemTypeAndCount(a.TypeID)
	if err != nil {
		return err
	}
	if count != srcCount {
		return fmt.Errorf("%w: %s changes component count", ErrTypeMismatch, inst.Opcode)
	}

	out := newVectorBytes(count)
	for i := 0; i < count; i++ {
		switch inst.Opcode {
		case spirv.OpConvertFToU:
			setComponentUint32(out, i, clampFloatToUint32(componentFloat32(a.Bytes, i)))
		case spirv.OpConvertFToS:
			setComponentUint32(out, i, uint32(clampFloatToInt32(componentFloat32(a.Bytes, i))))
		case spirv.OpConvertSToF:
			setComponentFloat32(out, i, float32(int32(componentUint32(a.Bytes, i))))
		case spirv.OpConvertUToF:
			setComponentFloat32(out, i, float32(componentUint32(a.Bytes, i)))
		case spirv.OpUConvert, spirv.OpSConvert:
			setComponentUint32(out, i, componentUint32(a.Bytes, i))
		case spirv.OpFConvert:
			setComponentFloat32(out, i, componentFloat32(a.Bytes, i))
		case spirv.OpSatConvertSToU:
			v := int32(componentUint32(a.Bytes, i))
			if v < 0 {
				v = 0
			}
			setComponentUint32(out, i, uint32(v))
		case spirv.OpSatConvertUToS:
			v := componentUint32(a.Bytes, i)
			if v > math.MaxInt32 {
				v = math.MaxInt32
			}
			setComponentUint32(out, i, v)
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedOpcode, inst.Opcode)
		}
	}
	s.set(frame, result, Register{TypeID: resultType, Bytes: out})
	return nil
}

// clampFloatToUint32 clamps v to [0, math.MaxUint32] before the caller
// truncates it to an integer, since Go's float-to-uint32 conversion is
// undefined for out-of-range or negative inputs rather than saturating.
func clampFloatToUint32(v float32) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

// clampFloatToInt32 clamps v to [math.MinInt32, math.MaxInt32] before the
// caller truncates it to an integer, for the same reason as
// clampFloatToUint32.
func clampFloatToInt32(v float32) int32 {
	if v <= math.MinInt32 {
		return math.MinInt32
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}
