package ir

import "github.com/shadersim/spirvsim/spirv"

// GlobalVariable is a decoded module-scope OpVariable: one the dispatcher
// allocates storage for once, at load time, rather than per function call.
type GlobalVariable struct {
	ID           uint32
	PointerType  uint32 // OpTypePointer id naming this variable's type
	StorageClass spirv.StorageClass
	Name         string // from OpName, empty if the module carried none
	Initializer  uint32 // constant id, 0 if none
}

// AccessKind distinguishes how host code addresses an interface variable:
// by its shader-assigned Location, by a BuiltIn semantic, or by its
// descriptor Binding (within a DescriptorSet).
type AccessKind int

const (
	AccessLocation AccessKind = iota
	AccessBuiltin
	AccessBinding
)

// InterfaceKey identifies one host-addressable binding point: the
// variable's storage class, how it's addressed, and the address itself
// (a location number, a spirv.BuiltIn value, or a (set<<16|binding) pair).
type InterfaceKey struct {
	StorageClass spirv.StorageClass
	Access       AccessKind
	Index        uint32
}

// InterfaceBinding names the storage an InterfaceKey resolves to. Most
// bindings address an entire variable (Offset 0, TypeID 0 meaning "the
// variable's own pointee type"); a binding on one member of a
// struct-typed Input/Output variable (e.g. a gl_PerVertex-shaped output
// with a per-member BuiltIn) instead carries that member's byte offset
// within the variable's storage and its type id.
type InterfaceBinding struct {
	VariableID uint32
	Offset     uint32
	TypeID     uint32
}

// InterfacePointerTable maps every host-visible binding point a module
// declares to the storage that backs it. It is built once at load time by
// scanning each global's decorations, and is what
// Simulator.RetrieveInterfacePointer and Simulator.AssociateData consult.
type InterfacePointerTable struct {
	entries map[InterfaceKey]InterfaceBinding
}

// NewInterfacePointerTable creates an empty table.
func NewInterfacePointerTable() *InterfacePointerTable {
	return &InterfacePointerTable{entries: make(map[InterfaceKey]InterfaceBinding)}
}

// Bind records that key addresses binding. A later Bind for the same key
// overwrites the earlier one — the loader only calls this once per
// binding, so a collision means two variables (or members) claim the same
// binding, which the loader reports as an error rather than silently
// shadowing.
func (t *InterfacePointerTable) Bind(key InterfaceKey, binding InterfaceBinding) {
	t.entries[key] = binding
}

// Lookup resolves a binding key to the storage backing it.
func (t *InterfacePointerTable) Lookup(key InterfaceKey) (InterfaceBinding, bool) {
	binding, ok := t.entries[key]
	return binding, ok
}

// Has reports whether key is already bound, used by the loader to detect
// two variables claiming the same binding point.
func (t *InterfacePointerTable) Has(key InterfaceKey) bool {
	_, ok := t.entries[key]
	return ok
}
