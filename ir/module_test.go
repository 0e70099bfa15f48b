package ir

import "testing"

func TestModule_EntryPointByName(t *testing.T) {
	m := NewModule()
	m.EntryPoints = []EntryPoint{{Name: "main", FunctionID: 1}, {Name: "vs", FunctionID: 2}}

	ep, ok := m.EntryPointByName("vs")
	if !ok || ep.FunctionID != 2 {
		t.Errorf("EntryPointByName(vs) = (%+v, %v), want FunctionID 2, true", ep, ok)
	}
	if _, ok := m.EntryPointByName("missing"); ok {
		t.Error("EntryPointByName(missing) = true, want false")
	}
}

func TestModule_GlobalByID(t *testing.T) {
	m := NewModule()
	m.Globals = []GlobalVariable{{ID: 7, Name: "out0"}, {ID: 8, Name: "out1"}}

	g, ok := m.GlobalByID(8)
	if !ok || g.Name != "out1" {
		t.Errorf("GlobalByID(8) = (%+v, %v), want out1, true", g, ok)
	}
	if _, ok := m.GlobalByID(99); ok {
		t.Error("GlobalByID(99) = true, want false")
	}
}
