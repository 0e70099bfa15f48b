package vm

import (
	"fmt"

	"github.com/shadersim/spirvsim/ir"
)

func (s *Simulator) get(frame *Frame, id uint32) (Register, error) {
	if r, ok := frame.Registers.Get(id); ok {
		return r, nil
	}
	if r, ok := s.globals.Get(id); ok {
		return r, nil
	}
	return Register{}, fmt.Errorf("%w: register %d has no value", ErrInvariantViolation, id)
}

func (s *Simulator) set(frame *Frame, id uint32, r Register) {
	frame.Registers.Set(id, r)
}

// elemTypeAndCount resolves typeID to its scalar component type and the
// number of components: (componentType, 1) for a scalar, (componentType,
// N) for a vector of N, matching the shape every elementwise opcode
// iterates over.
func (s *Simulator) elemTypeAndCount(typeID uint32) (*ir.Type, int, error) {
	ty, err := s.module.Types.Get(typeID)
	if err != nil {
		return nil, 0, err
	}
	if ty.Kind == ir.TypeVector {
		comp, err := s.module.Types.Get(ty.Component)
		if err != nil {
			return nil, 0, err
		}
		return comp, int(ty.Count), nil
	}
	return ty, 1, nil
}

func newVectorBytes(count int) []byte {
	return make([]byte, count*4)
}
