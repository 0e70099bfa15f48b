package ir

import "github.com/shadersim/spirvsim/spirv"

// Module is the fully decoded graph a loader.Load call produces: every
// type, constant, decoration, global variable, function, and entry point
// defined in a SPIR-V binary, cross-referenced by id.
type Module struct {
	Version spirv.Version

	Types       *TypeTable
	Constants   *ConstantTable
	Decorations *DecorationIndex
	Functions   *FunctionTable
	Interfaces  *InterfacePointerTable

	Globals     []GlobalVariable
	EntryPoints []EntryPoint

	// ExtInstImports maps an imported extended-instruction-set result id
	// (e.g. the id bound to OpExtInstImport "GLSL.std.450") to the set's
	// name, so OpExtInst can resolve which table to dispatch into.
	ExtInstImports map[uint32]string
}

// NewModule creates an empty module with all tables initialized.
func NewModule() *Module {
	return &Module{
		Types:          NewTypeTable(),
		Constants:      NewConstantTable(),
		Decorations:    NewDecorationIndex(),
		Functions:      NewFunctionTable(),
		Interfaces:     NewInterfacePointerTable(),
		ExtInstImports: make(map[uint32]string),
	}
}

// EntryPointByName finds the entry point with the given name, the way
// Simulator.Init selects which entry point to run.
func (m *Module) EntryPointByName(name string) (*EntryPoint, bool) {
	for i := range m.EntryPoints {
		if m.EntryPoints[i].Name == name {
			return &m.EntryPoints[i], true
		}
	}
	return nil, false
}

// GlobalByID finds a global variable by its result id.
func (m *Module) GlobalByID(id uint32) (*GlobalVariable, bool) {
	for i := range m.Globals {
		if m.Globals[i].ID == id {
			return &m.Globals[i], true
		}
	}
	return nil, false
}
