package ir

import (
	"testing"

	"github.com/shadersim/spirvsim/spirv"
)

func TestDecorationIndex_GetAndFind(t *testing.T) {
	idx := NewDecorationIndex()
	idx.AddDecorate(1, spirv.DecorationLocation, []uint32{0})
	idx.AddDecorate(1, spirv.DecorationBinding, []uint32{2})

	got := idx.Get(1)
	if len(got) != 2 {
		t.Fatalf("Get(1) returned %d entries, want 2", len(got))
	}

	entry, ok := idx.Find(1, spirv.DecorationBinding)
	if !ok {
		t.Fatal("Find(1, Binding) = false, want true")
	}
	if entry.Params[0] != 2 {
		t.Errorf("Binding param = %d, want 2", entry.Params[0])
	}

	if _, ok := idx.Find(1, spirv.DecorationBuiltIn); ok {
		t.Error("Find(1, BuiltIn) = true, want false (never added)")
	}
	if _, ok := idx.Find(99, spirv.DecorationLocation); ok {
		t.Error("Find on unknown id = true, want false")
	}
}

func TestDecorationIndex_MemberDecorations(t *testing.T) {
	idx := NewDecorationIndex()
	idx.AddMemberDecorate(10, 0, spirv.DecorationOffset, []uint32{0})
	idx.AddMemberDecorate(10, 1, spirv.DecorationOffset, []uint32{16})

	entry, ok := idx.FindMember(10, 1, spirv.DecorationOffset)
	if !ok {
		t.Fatal("FindMember(10, 1, Offset) = false, want true")
	}
	if entry.Params[0] != 16 {
		t.Errorf("member 1 offset = %d, want 16", entry.Params[0])
	}

	if _, ok := idx.FindMember(10, 0, spirv.DecorationColMajor); ok {
		t.Error("FindMember for an undecorated kind = true, want false")
	}
	if _, ok := idx.FindMember(10, 5, spirv.DecorationOffset); ok {
		t.Error("FindMember on unknown member index = true, want false")
	}
}
