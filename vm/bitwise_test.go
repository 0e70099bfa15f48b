package vm_test

import (
	"testing"

	"github.com/shadersim/spirvsim/internal/fixture"
	"github.com/shadersim/spirvsim/spirv"
)

func TestBitwise_ShiftAndLogic(t *testing.T) {
	tests := []struct {
		name string
		op   spirv.OpCode
		a, b uint32
		want uint32
	}{
		{"ShiftLeftLogical", spirv.OpShiftLeftLogical, 1, 4, 16},
		{"ShiftRightLogical", spirv.OpShiftRightLogical, 0xFF00, 8, 0xFF},
		{"BitwiseAnd", spirv.OpBitwiseAnd, 0xF0F0, 0x0FF0, 0x00F0},
		{"BitwiseOr", spirv.OpBitwiseOr, 0xF000, 0x000F, 0xF00F},
		{"BitwiseXor", spirv.OpBitwiseXor, 0xFF00, 0x0FF0, 0xF0F0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := runToOutput(t, 0, func(b *fixture.ModuleBuilder, ts commonTypes) (uint32, uint32) {
				a := b.AddConstant(ts.u32, tc.a)
				bb := b.AddConstant(ts.u32, tc.b)
				return b.AddBinaryOp(tc.op, ts.u32, a, bb), ts.u32
			})
			if got := asU32(out); got != tc.want {
				t.Errorf("%s(%#x, %#x) = %#x, want %#x", tc.name, tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestBitwise_ShiftRightArithmeticSignExtends(t *testing.T) {
	out := runToOutput(t, 0, func(b *fixture.ModuleBuilder, ts commonTypes) (uint32, uint32) {
		neg8 := int32(-8)
		a := b.AddConstant(ts.i32, uint32(neg8))
		shift := b.AddConstant(ts.i32, 1)
		return b.AddBinaryOp(spirv.OpShiftRightArithmetic, ts.i32, a, shift), ts.i32
	})
	if got := asI32(out); got != -4 {
		t.Errorf("-8 >> 1 (arithmetic) = %d, want -4", got)
	}
}

func TestBitwise_Not(t *testing.T) {
	out := runToOutput(t, 0, func(b *fixture.ModuleBuilder, ts commonTypes) (uint32, uint32) {
		a := b.AddConstant(ts.u32, 0)
		return b.AddUnaryOp(spirv.OpNot, ts.u32, a), ts.u32
	})
	if got := asU32(out); got != 0xFFFFFFFF {
		t.Errorf("Not(0) = %#x, want 0xFFFFFFFF", got)
	}
}

func TestBitwise_BitCount(t *testing.T) {
	out := runToOutput(t, 0, func(b *fixture.ModuleBuilder, ts commonTypes) (uint32, uint32) {
		a := b.AddConstant(ts.u32, 0b10110)
		return b.AddUnaryOp(spirv.OpBitCount, ts.u32, a), ts.u32
	})
	if got := asU32(out); got != 3 {
		t.Errorf("BitCount(0b10110) = %d, want 3", got)
	}
}

func TestBitwise_BitFieldInsertAndExtract(t *testing.T) {
	out := runToOutput(t, 0, func(b *fixture.ModuleBuilder, ts commonTypes) (uint32, uint32) {
		base := b.AddConstant(ts.u32, 0)
		insert := b.AddConstant(ts.u32, 0b1111)
		offset := b.AddConstant(ts.u32, 4)
		count := b.AddConstant(ts.u32, 4)
		return b.AddBitFieldInsert(ts.u32, base, insert, offset, count), ts.u32
	})
	if got := asU32(out); got != 0xF0 {
		t.Errorf("BitFieldInsert = %#x, want 0xF0", got)
	}

	out = runToOutput(t, 0, func(b *fixture.ModuleBuilder, ts commonTypes) (uint32, uint32) {
		base := b.AddConstant(ts.u32, 0xF0)
		offset := b.AddConstant(ts.u32, 4)
		count := b.AddConstant(ts.u32, 4)
		return b.AddBitFieldExtract(spirv.OpBitFieldUExtract, ts.u32, base, offset, count), ts.u32
	})
	if got := asU32(out); got != 0xF {
		t.Errorf("BitFieldUExtract = %#x, want 0xF", got)
	}
}

func TestBitwise_SignExtractSignExtends(t *testing.T) {
	out := runToOutput(t, 0, func(b *fixture.ModuleBuilder, ts commonTypes) (uint32, uint32) {
		base := b.AddConstant(ts.i32, 0b1111_0000)
		offset := b.AddConstant(ts.u32, 4)
		count := b.AddConstant(ts.u32, 4)
		return b.AddBitFieldExtract(spirv.OpBitFieldSExtract, ts.i32, base, offset, count), ts.i32
	})
	if got := asI32(out); got != -1 {
		t.Errorf("BitFieldSExtract(0xF0, 4, 4) = %d, want -1", got)
	}
}
