// Package ir holds the decoded, id-addressed module graph a SPIR-V binary
// unpacks into: types and constants (keyed by their SPIR-V result id),
// decorations, global variables and their interface bindings, functions,
// and entry points. It is the product of the loader package, not of a
// parser of its own — nothing in this package reads bytes.
package ir

import (
	"errors"
	"fmt"

	"github.com/shadersim/spirvsim/spirv"
)

// ErrUnknownID is returned whenever a type, constant, or function id is
// referenced but was never defined.
var ErrUnknownID = errors.New("ir: unknown id")

// TypeKind distinguishes the variants of Type.
type TypeKind int

const (
	TypeVoid TypeKind = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeVector
	TypeMatrix
	TypeArray
	TypeRuntimeArray
	TypeStruct
	TypePointer
	TypeFunction
)

// Type is a decoded OpType* instruction, keyed by its result id in
// TypeTable.
type Type struct {
	ID    uint32
	Kind  TypeKind
	Width uint32 // OpTypeInt/OpTypeFloat bit width
	Signed bool  // OpTypeInt signedness

	Component uint32 // OpTypeVector: element type id
	Count     uint32 // OpTypeVector/OpTypeMatrix: component/column count

	Element uint32 // OpTypeArray/OpTypeRuntimeArray: element type id
	Length  uint32 // OpTypeArray: resolved element count (from the length constant)

	Members []uint32 // OpTypeStruct: member type ids, in declaration order

	StorageClass spirv.StorageClass // OpTypePointer
	Base         uint32             // OpTypePointer: pointee type id

	Return uint32   // OpTypeFunction: return type id
	Params []uint32 // OpTypeFunction: parameter type ids
}

// TypeTable holds every type defined in a module, keyed by SPIR-V id, with
// memoized byte-size and element-count queries. Repeated SizeOf/CountOf
// calls are the dispatcher's bread and butter — every OpAccessChain step
// and every heap allocation asks — so results are cached per id the first
// time they're computed.
type TypeTable struct {
	types    map[uint32]*Type
	sizeOf   map[uint32]uint32
	countOf  map[uint32]uint32
}

// NewTypeTable creates an empty type table.
func NewTypeTable() *TypeTable {
	return &TypeTable{
		types:   make(map[uint32]*Type),
		sizeOf:  make(map[uint32]uint32),
		countOf: make(map[uint32]uint32),
	}
}

// Add registers a decoded type under its id. Re-adding the same id
// overwrites the previous entry and invalidates its memoized size.
func (t *TypeTable) Add(ty *Type) {
	t.types[ty.ID] = ty
	delete(t.sizeOf, ty.ID)
	delete(t.countOf, ty.ID)
}

// Get returns the type registered under id.
func (t *TypeTable) Get(id uint32) (*Type, error) {
	ty, ok := t.types[id]
	if !ok {
		return nil, fmt.Errorf("%w: type %d", ErrUnknownID, id)
	}
	return ty, nil
}

// SizeOf returns the byte size of the type named by id, computing and
// caching it on first use. Struct size is the packed sum of member sizes;
// OpMemberDecorate Offset is not taken into account.
func (t *TypeTable) SizeOf(id uint32) (uint32, error) {
	if size, ok := t.sizeOf[id]; ok {
		return size, nil
	}
	ty, err := t.Get(id)
	if err != nil {
		return 0, err
	}
	var size uint32
	switch ty.Kind {
	case TypeVoid:
		size = 0
	case TypeBool:
		size = 4
	case TypeInt, TypeFloat:
		size = ty.Width / 8
	case TypeVector:
		compSize, err := t.SizeOf(ty.Component)
		if err != nil {
			return 0, err
		}
		size = compSize * ty.Count
	case TypeMatrix:
		colSize, err := t.SizeOf(ty.Component)
		if err != nil {
			return 0, err
		}
		size = colSize * ty.Count
	case TypeArray:
		elemSize, err := t.SizeOf(ty.Element)
		if err != nil {
			return 0, err
		}
		size = elemSize * ty.Length
	case TypeRuntimeArray:
		elemSize, err := t.SizeOf(ty.Element)
		if err != nil {
			return 0, err
		}
		size = elemSize
	case TypeStruct:
		for _, member := range ty.Members {
			memberSize, err := t.SizeOf(member)
			if err != nil {
				return 0, err
			}
			size += memberSize
		}
	case TypePointer:
		size = 4 // a pointer register holds a heap offset, not the pointee
	case TypeFunction:
		return 0, fmt.Errorf("ir: OpTypeFunction %d has no byte size", id)
	}
	t.sizeOf[id] = size
	return size, nil
}

// CountOf returns the component/element/member count of a vector, matrix,
// array, or struct type.
func (t *TypeTable) CountOf(id uint32) (uint32, error) {
	if count, ok := t.countOf[id]; ok {
		return count, nil
	}
	ty, err := t.Get(id)
	if err != nil {
		return 0, err
	}
	var count uint32
	switch ty.Kind {
	case TypeVector, TypeMatrix:
		count = ty.Count
	case TypeArray:
		count = ty.Length
	case TypeStruct:
		count = uint32(len(ty.Members))
	default:
		return 0, fmt.Errorf("ir: type %d (kind %v) has no element count", id, ty.Kind)
	}
	t.countOf[id] = count
	return count, nil
}

// IsFloat reports whether id names a scalar float type, or a vector whose
// component type is float.
func (t *TypeTable) IsFloat(id uint32) bool {
	ty, err := t.Get(id)
	if err != nil {
		return false
	}
	if ty.Kind == TypeFloat {
		return true
	}
	if ty.Kind == TypeVector {
		return t.IsFloat(ty.Component)
	}
	return false
}
