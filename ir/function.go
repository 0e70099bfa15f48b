package ir

import (
	"fmt"

	"github.com/shadersim/spirvsim/spirv"
)

// LocalVariable is an OpVariable inside a function body (storage class
// Function): allocated fresh on the stack frame for every call, unlike a
// GlobalVariable.
type LocalVariable struct {
	ID          uint32
	PointerType uint32
	Name        string
	Initializer uint32 // constant id, 0 if none
}

// Function is a decoded OpFunction...OpFunctionEnd region: its signature
// plus the flat instruction stream making up its body, with a label index
// for control flow to jump through.
type Function struct {
	ID         uint32
	ResultType uint32 // return type id
	TypeID     uint32 // OpTypeFunction id
	Name       string

	Params []uint32 // OpFunctionParameter result ids, in order
	Locals []LocalVariable

	// Body is the function's instructions in file order, starting at its
	// first OpLabel. OpFunction/OpFunctionParameter/OpFunctionEnd are not
	// included — they're consumed by the loader to build this struct.
	Body []spirv.Instruction

	// Labels maps an OpLabel's result id to its index within Body, so a
	// branch can resolve its target in O(1).
	Labels map[uint32]int
}

// FunctionTable holds every function defined in a module, keyed by id.
type FunctionTable struct {
	functions map[uint32]*Function
}

// NewFunctionTable creates an empty function table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{functions: make(map[uint32]*Function)}
}

// Add registers a function under its id.
func (t *FunctionTable) Add(f *Function) {
	t.functions[f.ID] = f
}

// Get returns the function registered under id.
func (t *FunctionTable) Get(id uint32) (*Function, error) {
	f, ok := t.functions[id]
	if !ok {
		return nil, fmt.Errorf("%w: function %d", ErrUnknownID, id)
	}
	return f, nil
}

// EntryPoint is a decoded OpEntryPoint, naming the function a shader
// invocation starts at and the interface variables it touches.
type EntryPoint struct {
	ExecutionModel spirv.ExecutionModel
	FunctionID     uint32
	Name           string
	Interfaces     []uint32 // global variable ids referenced by this entry point

	LocalSize [3]uint32 // from ExecutionModeLocalSize, zero if unset
}
