package ir_test

import (
	"encoding/binary"
	"testing"

	"github.com/shadersim/spirvsim/ir"
)

func TestConstantTable_Materialize_Composite(t *testing.T) {
	types := ir.NewTypeTable()
	f32 := uint32(1)
	vec2 := uint32(2)
	types.Add(&ir.Type{ID: f32, Kind: ir.TypeFloat, Width: 32})
	types.Add(&ir.Type{ID: vec2, Kind: ir.TypeVector, Component: f32, Count: 2})

	constants := ir.NewConstantTable()
	a := &ir.Constant{ID: 10, Type: f32, Words: []uint32{0x3F800000}} // 1.0
	b := &ir.Constant{ID: 11, Type: f32, Words: []uint32{0x40000000}} // 2.0
	composite := &ir.Constant{ID: 12, Type: vec2, Constituents: []uint32{10, 11}}
	constants.Add(a)
	constants.Add(b)
	constants.Add(composite)

	bytes, err := constants.Materialize(12, types)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(bytes) != 8 {
		t.Fatalf("Materialize returned %d bytes, want 8", len(bytes))
	}
	if got := binary.LittleEndian.Uint32(bytes[0:4]); got != 0x3F800000 {
		t.Errorf("component 0 = 0x%08x, want 0x3F800000", got)
	}
	if got := binary.LittleEndian.Uint32(bytes[4:8]); got != 0x40000000 {
		t.Errorf("component 1 = 0x%08x, want 0x40000000", got)
	}
}

func TestConstantTable_ScalarUint32_Bool(t *testing.T) {
	constants := ir.NewConstantTable()
	c := &ir.Constant{ID: 1, IsBool: true, Bool: true}
	constants.Add(c)
	v, err := c.ScalarUint32()
	if err != nil || v != 1 {
		t.Errorf("ScalarUint32() = %d, %v, want 1, nil", v, err)
	}
}

func TestConstantTable_IDs(t *testing.T) {
	constants := ir.NewConstantTable()
	constants.Add(&ir.Constant{ID: 1})
	constants.Add(&ir.Constant{ID: 2})
	ids := constants.IDs()
	if len(ids) != 2 {
		t.Fatalf("IDs() returned %d ids, want 2", len(ids))
	}
}
