// Package vm implements the register-and-heap virtual machine that
// executes a decoded SPIR-V module one instruction at a time: a global
// frame for module-scope constants and variables, a LIFO stack of
// function-call frames, a single bump-allocated heap, and a dispatcher
// covering the arithmetic, bitwise, relational, composite, conversion,
// control-flow, memory, and function-call opcodes a shader body is built
// from.
package vm

import (
	"fmt"

	"github.com/shadersim/spirvsim/ext"
	"github.com/shadersim/spirvsim/ir"
	"github.com/shadersim/spirvsim/spirv"
)

// Options configures a Simulator.
type Options struct {
	// HeapSize is the total size, in bytes, of the simulator's memory
	// arena. Every global and local variable is carved out of it.
	HeapSize uint32
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{HeapSize: 4 << 20}
}

// Simulator is a single running instance of a decoded module: its heap,
// its global register file (constants and global-variable pointers), and
// its call stack.
type Simulator struct {
	module *ir.Module
	opts   Options

	heap    *Heap
	globals *RegisterFile
	stack   *Stack
	extIDs  map[uint32]ext.Table

	entry *ir.EntryPoint

	err  error
	done bool
}

// Init decodes no bytes of its own — module is already the product of
// loader.Load — and prepares a Simulator ready to Step through the named
// entry point. It materializes every constant into the global register
// file, allocates and initializes every global variable's heap storage,
// and pushes the entry function's initial call frame.
func Init(module *ir.Module, opts Options, entryPointName string) (*Simulator, error) {
	entry, ok := module.EntryPointByName(entryPointName)
	if !ok {
		return nil, fmt.Errorf("%w: no entry point named %q", ErrMissingBinding, entryPointName)
	}
	fn, err := module.Functions.Get(entry.FunctionID)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		module:  module,
		opts:    opts,
		heap:    NewHeap(opts.HeapSize),
		globals: NewRegisterFile(),
		stack:   NewStack(),
		extIDs:  make(map[uint32]ext.Table),
		entry:   entry,
	}

	for importID, name := range module.ExtInstImports {
		table, ok := ext.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, name)
		}
		s.extIDs[importID] = table
	}

	if err := s.materializeConstants(); err != nil {
		return nil, err
	}
	if err := s.allocateGlobals(); err != nil {
		return nil, err
	}

	frame, err := s.newFrame(fn, 0, 0)
	if err != nil {
		return nil, err
	}
	s.stack.Push(frame)
	return s, nil
}

func (s *Simulator) materializeConstants() error {
	ids := s.module.Constants.IDs()
	for _, id := range ids {
		c, err := s.module.Constants.Get(id)
		if err != nil {
			return err
		}
		bytes, err := s.module.Constants.Materialize(id, s.module.Types)
		if err != nil {
			return fmt.Errorf("vm: materializing constant %d: %w", id, err)
		}
		s.globals.Set(id, Register{TypeID: c.Type, Bytes: bytes})
	}
	return nil
}

func (s *Simulator) allocateGlobals() error {
	for _, gv := range s.module.Globals {
		ptrType, err := s.module.Types.Get(gv.PointerType)
		if err != nil {
			return err
		}
		size, err := s.module.Types.SizeOf(ptrType.Base)
		if err != nil {
			return err
		}
		offset, err := s.heap.Alloc(size)
		if err != nil {
			return err
		}
		if gv.Initializer != 0 {
			data, err := s.module.Constants.Materialize(gv.Initializer, s.module.Types)
			if err != nil {
				return err
			}
			if err := s.heap.Write(offset, data); err != nil {
				return err
			}
		}
		s.globals.Set(gv.ID, scalarRegister(gv.PointerType, offset))
	}
	return nil
}

// newFrame allocates heap storage for fn's local variables and returns a
// ready-to-run Frame positioned at the first body instruction after the
// leading OpLabel.
func (s *Simulator) newFrame(fn *ir.Function, resultRegister, resultType uint32) (*Frame, error) {
	frame := &Frame{
		Function:       fn,
		Registers:      NewRegisterFile(),
		HeapMark:       s.heap.Mark(),
		ResultRegister: resultRegister,
		ResultType:     resultType,
	}
	for _, local := range fn.Locals {
		ptrType, err := s.module.Types.Get(local.PointerType)
		if err != nil {
			return nil, err
		}
		size, err := s.module.Types.SizeOf(ptrType.Base)
		if err != nil {
			return nil, err
		}
		offset, err := s.heap.Alloc(size)
		if err != nil {
			return nil, err
		}
		if local.Initializer != 0 {
			data, err := s.resolveConstantOrNil(local.Initializer)
			if err != nil {
				return nil, err
			}
			if data != nil {
				if err := s.heap.Write(offset, data); err != nil {
					return nil, err
				}
			}
		}
		frame.Registers.Set(local.ID, scalarRegister(local.PointerType, offset))
	}
	for frame.PC < len(fn.Body) && fn.Body[frame.PC].Opcode == spirv.OpLabel {
		frame.PC++
	}
	return frame, nil
}

func (s *Simulator) resolveConstantOrNil(id uint32) ([]byte, error) {
	if _, err := s.module.Constants.Get(id); err != nil {
		return nil, nil
	}
	return s.module.Constants.Materialize(id, s.module.Types)
}

// AssociateData copies host-owned bytes into the storage backing the
// variable bound at key, for feeding shader inputs before Step-ing.
func (s *Simulator) AssociateData(key ir.InterfaceKey, data []byte) error {
	offset, size, err := s.interfaceLocation(key)
	if err != nil {
		return err
	}
	if uint32(len(data)) != size {
		return fmt.Errorf("%w: binding expects %d bytes, got %d", ErrTypeMismatch, size, len(data))
	}
	return s.heap.Write(offset, data)
}

// RetrieveInterfacePointer returns a live view into the heap region
// backing the variable bound at key, letting host code read shader
// outputs (or poke further inputs) directly.
func (s *Simulator) RetrieveInterfacePointer(key ir.InterfaceKey) ([]byte, error) {
	offset, size, err := s.interfaceLocation(key)
	if err != nil {
		return nil, err
	}
	return s.heap.Slice(offset, size)
}

func (s *Simulator) interfaceLocation(key ir.InterfaceKey) (offset, size uint32, err error) {
	binding, ok := s.module.Interfaces.Lookup(key)
	if !ok {
		return 0, 0, fmt.Errorf("%w: no variable bound at %+v", ErrMissingBinding, key)
	}
	gv, ok := s.module.GlobalByID(binding.VariableID)
	if !ok {
		return 0, 0, fmt.Errorf("%w: binding %+v names unknown variable %d", ErrInvariantViolation, key, binding.VariableID)
	}
	reg, ok := s.globals.Get(gv.ID)
	if !ok {
		return 0, 0, fmt.Errorf("%w: variable %d has no allocated storage", ErrInvariantViolation, gv.ID)
	}
	regionType := binding.TypeID
	if regionType == 0 {
		ptrType, err := s.module.Types.Get(gv.PointerType)
		if err != nil {
			return 0, 0, err
		}
		regionType = ptrType.Base
	}
	size, err = s.module.Types.SizeOf(regionType)
	if err != nil {
		return 0, 0, err
	}
	return regUint32(reg) + binding.Offset, size, nil
}

// RegisterByID returns the current value of id, checking the active call
// frame before the global file, mirroring the dispatcher's own lookup
// order.
func (s *Simulator) RegisterByID(id uint32) (Register, error) {
	if frame := s.stack.Top(); frame != nil {
		if r, ok := frame.Registers.Get(id); ok {
			return r, nil
		}
	}
	if r, ok := s.globals.Get(id); ok {
		return r, nil
	}
	return Register{}, fmt.Errorf("%w: register %d has no value", ErrInvariantViolation, id)
}

// Err returns the sticky error that halted the simulator, or nil.
func (s *Simulator) Err() error {
	return s.err
}

// Done reports whether the call stack has unwound back to empty.
func (s *Simulator) Done() bool {
	return s.done
}

// Shutdown releases the simulator's heap. It is not strictly necessary in
// Go (the garbage collector would reclaim it anyway) but mirrors the
// explicit init/shutdown pairing of the facade this simulator implements,
// and gives callers a clear point to assert no further Step calls follow.
func (s *Simulator) Shutdown() {
	s.heap = nil
	s.globals = nil
	s.stack = nil
}

// Step executes exactly one instruction. Once Err returns non-nil, or
// Done returns true, Step is a no-op that returns the same outcome again.
func (s *Simulator) Step() error {
	if s.err != nil {
		return s.err
	}
	if s.done {
		return ErrSimulationComplete
	}
	frame := s.stack.Top()
	if frame == nil {
		s.done = true
		return ErrSimulationComplete
	}
	if frame.PC >= len(frame.Function.Body) {
		return s.fail(fmt.Errorf("%w: function %d fell off the end of its body without a return", ErrInvariantViolation, frame.Function.ID))
	}
	inst := frame.Function.Body[frame.PC]
	jumped, err := s.exec(frame, inst)
	if err != nil {
		return s.fail(opcodeError(inst, err))
	}
	if !jumped {
		frame.PC++
	}
	if s.stack.Len() == 0 {
		s.done = true
	}
	return nil
}

func (s *Simulator) fail(err error) error {
	s.err = err
	return err
}

func opcodeError(inst spirv.Instruction, err error) error {
	return fmt.Errorf("%s: %w", inst.Opcode, err)
}
