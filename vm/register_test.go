package vm

import "testing"

func TestRegisterFile_SetGet(t *testing.T) {
	f := NewRegisterFile()
	if _, ok := f.Get(1); ok {
		t.Fatal("Get on empty file found a value")
	}
	f.Set(1, Register{TypeID: 7, Bytes: []byte{1, 2, 3, 4}})
	r, ok := f.Get(1)
	if !ok {
		t.Fatal("Get after Set found nothing")
	}
	if r.TypeID != 7 {
		t.Errorf("TypeID = %d, want 7", r.TypeID)
	}
}

func TestRegisterFile_SetReplaces(t *testing.T) {
	f := NewRegisterFile()
	f.Set(1, Register{TypeID: 1, Bytes: []byte{0}})
	f.Set(1, Register{TypeID: 2, Bytes: []byte{1}})
	r, _ := f.Get(1)
	if r.TypeID != 2 {
		t.Errorf("TypeID after replace = %d, want 2", r.TypeID)
	}
}

func TestCloneRegister_DeepCopies(t *testing.T) {
	orig := Register{TypeID: 1, Bytes: []byte{9, 9, 9}}
	clone := CloneRegister(orig)
	clone.Bytes[0] = 0
	if orig.Bytes[0] != 9 {
		t.Error("CloneRegister aliased the original's backing array")
	}
}

func TestComponentHelpers_Float32RoundTrip(t *testing.T) {
	bytes := newVectorBytes(2)
	setComponentFloat32(bytes, 0, 1.5)
	setComponentFloat32(bytes, 1, -2.5)
	if got := componentFloat32(bytes, 0); got != 1.5 {
		t.Errorf("component 0 = %v, want 1.5", got)
	}
	if got := componentFloat32(bytes, 1); got != -2.5 {
		t.Errorf("component 1 = %v, want -2.5", got)
	}
}

func TestScalarRegister_PackingHelpers(t *testing.T) {
	r := scalarRegister(5, 100)
	if regUint32(r) != 100 {
		t.Errorf("regUint32 = %d, want 100", regUint32(r))
	}
	fr := floatRegister(5, 2.25)
	if regFloat32(fr) != 2.25 {
		t.Errorf("regFloat32 = %v, want 2.25", regFloat32(fr))
	}
	br := boolRegister(5, true)
	if !regBool(br) {
		t.Error("regBool(boolRegister(true)) = false")
	}
}
