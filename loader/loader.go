// Package loader drives a decoded spirv.WordStream into an ir.Module: it
// walks the instruction stream once to collect debug names and
// decorations (which may forward-reference ids not yet defined), then a
// second time to build types, constants, global variables, functions, and
// entry points in file order.
package loader

import (
	"errors"
	"fmt"

	"github.com/shadersim/spirvsim/ir"
	"github.com/shadersim/spirvsim/spirv"
)

// ErrUnsupportedType is returned when loadType is handed a type opcode it
// has no case for. Other type opcodes (images, samplers and the like) are
// skipped by Load without an error, and OpTypeInt/OpTypeFloat are accepted
// at any width.
var ErrUnsupportedType = errors.New("loader: unsupported type")

// ErrInterfaceCollision is returned when two global variables claim the
// same host-visible binding point (same storage class, same location or
// builtin or descriptor binding).
var ErrInterfaceCollision = errors.New("loader: interface binding collision")

// Load decodes a SPIR-V binary and builds its ir.Module.
func Load(data []byte, opts spirv.Options) (*ir.Module, error) {
	ws, err := spirv.Decode(data, opts)
	if err != nil {
		return nil, err
	}
	return LoadWordStream(ws)
}

// LoadWordStream builds an ir.Module from an already-decoded word stream.
func LoadWordStream(ws *spirv.WordStream) (*ir.Module, error) {
	l := &loaderState{
		module: ir.NewModule(),
		names:  make(map[uint32]string),
	}
	l.module.Version = spirv.Version{Major: ws.Header.VersionMajor, Minor: ws.Header.VersionMinor}

	for _, inst := range ws.Instructions {
		switch inst.Opcode {
		case spirv.OpName:
			l.names[inst.Words[0]] = decodeString(inst.Words[1:])
		case spirv.OpDecorate:
			l.module.Decorations.AddDecorate(inst.Words[0], spirv.Decoration(inst.Words[1]), inst.Words[2:])
		case spirv.OpMemberDecorate:
			l.module.Decorations.AddMemberDecorate(inst.Words[0], inst.Words[1], spirv.Decoration(inst.Words[2]), inst.Words[3:])
		}
	}

	var currentFunc *ir.Function
	var bodyLabelOpen bool

	for _, inst := range ws.Instructions {
		switch {
		case currentFunc != nil:
			if err := l.stepFunction(currentFunc, &bodyLabelOpen, inst); err != nil {
				return nil, err
			}
			if inst.Opcode == spirv.OpFunctionEnd {
				finalizeFunction(currentFunc)
				l.module.Functions.Add(currentFunc)
				currentFunc = nil
			}
			continue
		}

		switch inst.Opcode {
		case spirv.OpExtInstImport:
			id := inst.Words[0]
			l.module.ExtInstImports[id] = decodeString(inst.Words[1:])
		case spirv.OpEntryPoint:
			ep := ir.EntryPoint{
				ExecutionModel: spirv.ExecutionModel(inst.Words[0]),
				FunctionID:     inst.Words[1],
			}
			rest := inst.Words[2:]
			name, consumed := decodeStringWithLength(rest)
			ep.Name = name
			for _, id := range rest[consumed:] {
				ep.Interfaces = append(ep.Interfaces, id)
			}
			l.module.EntryPoints = append(l.module.EntryPoints, ep)
		case spirv.OpExecutionMode:
			l.applyExecutionMode(inst)
		case spirv.OpTypeVoid, spirv.OpTypeBool, spirv.OpTypeInt, spirv.OpTypeFloat,
			spirv.OpTypeVector, spirv.OpTypeMatrix, spirv.OpTypeArray, spirv.OpTypeRuntimeArray,
			spirv.OpTypeStruct, spirv.OpTypePointer, spirv.OpTypeFunction:
			if err := l.loadType(inst); err != nil {
				return nil, err
			}
		case spirv.OpConstantTrue, spirv.OpConstantFalse, spirv.OpConstant, spirv.OpConstantComposite,
			spirv.OpSpecConstantTrue, spirv.OpSpecConstantFalse, spirv.OpSpecConstant, spirv.OpSpecConstantComposite:
			l.loadConstant(inst)
		case spirv.OpVariable:
			if err := l.loadGlobalVariable(inst); err != nil {
				return nil, err
			}
		case spirv.OpFunction:
			currentFunc = &ir.Function{
				ResultType: inst.Words[0],
				ID:         inst.Words[1],
				TypeID:     inst.Words[3],
				Name:       l.names[inst.Words[1]],
				Labels:     make(map[uint32]int),
			}
			bodyLabelOpen = false
		}
	}

	if err := l.buildInterfaceTable(); err != nil {
		return nil, err
	}
	return l.module, nil
}

type loaderState struct {
	module *ir.Module
	names  map[uint32]string
}

func finalizeFunction(f *ir.Function) {
	for i, inst := range f.Body {
		if inst.Opcode == spirv.OpLabel {
			f.Labels[inst.Words[0]] = i
		}
	}
}

func (l *loaderState) stepFunction(f *ir.Function, bodyLabelOpen *bool, inst spirv.Instruction) error {
	switch inst.Opcode {
	case spirv.OpFunctionParameter:
		f.Params = append(f.Params, inst.Words[1])
	case spirv.OpVariable:
		// Locals are the OpVariables ahead of the first OpLabel or directly
		// after it, before any other body instruction.
		if !*bodyLabelOpen || len(f.Body) == 1 {
			f.Locals = append(f.Locals, ir.LocalVariable{
				ID:          inst.Words[1],
				PointerType: inst.Words[0],
				Name:        l.names[inst.Words[1]],
				Initializer: initializerOf(inst),
			})
			return nil
		}
		f.Body = append(f.Body, inst)
	case spirv.OpLabel:
		*bodyLabelOpen = true
		f.Body = append(f.Body, inst)
	case spirv.OpFunctionEnd:
		// handled by caller
	default:
		f.Body = append(f.Body, inst)
	}
	return nil
}

// initializerOf returns an OpVariable's optional initializer constant id.
// Words is [pointerType, id, storageClass, initializer?] for both global
// and function-local variables, so the initializer, when present, is
// always the fourth word.
func initializerOf(inst spirv.Instruction) uint32 {
	if len(inst.Words) > 3 {
		return inst.Words[3]
	}
	return 0
}

func (l *loaderState) loadType(inst spirv.Instruction) error {
	w := inst.Words
	id := w[0]
	ty := &ir.Type{ID: id}
	switch inst.Opcode {
	case spirv.OpTypeVoid:
		ty.Kind = ir.TypeVoid
	case spirv.OpTypeBool:
		ty.Kind = ir.TypeBool
	case spirv.OpTypeInt:
		ty.Kind = ir.TypeInt
		ty.Width = w[1]
		ty.Signed = w[2] != 0
	case spirv.OpTypeFloat:
		ty.Kind = ir.TypeFloat
		ty.Width = w[1]
	case spirv.OpTypeVector:
		ty.Kind = ir.TypeVector
		ty.Component = w[1]
		ty.Count = w[2]
	case spirv.OpTypeMatrix:
		ty.Kind = ir.TypeMatrix
		ty.Component = w[1] // column type (a vector type id)
		ty.Count = w[2]
	case spirv.OpTypeArray:
		ty.Kind = ir.TypeArray
		ty.Element = w[1]
		lengthConst, err := l.module.Constants.Get(w[2])
		if err != nil {
			return fmt.Errorf("loader: array type %d length constant: %w", id, err)
		}
		length, err := lengthConst.ScalarUint32()
		if err != nil {
			return err
		}
		ty.Length = length
	case spirv.OpTypeRuntimeArray:
		ty.Kind = ir.TypeRuntimeArray
		ty.Element = w[1]
	case spirv.OpTypeStruct:
		ty.Kind = ir.TypeStruct
		ty.Members = append([]uint32{}, w[1:]...)
	case spirv.OpTypePointer:
		ty.Kind = ir.TypePointer
		ty.StorageClass = spirv.StorageClass(w[1])
		ty.Base = w[2]
	case spirv.OpTypeFunction:
		ty.Kind = ir.TypeFunction
		ty.Return = w[1]
		ty.Params = append([]uint32{}, w[2:]...)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, inst.Opcode)
	}
	l.module.Types.Add(ty)
	return nil
}

func (l *loaderState) loadConstant(inst spirv.Instruction) {
	w := inst.Words
	c := &ir.Constant{Type: w[0], ID: w[1]}
	switch inst.Opcode {
	case spirv.OpConstantTrue, spirv.OpSpecConstantTrue:
		c.IsBool, c.Bool = true, true
	case spirv.OpConstantFalse, spirv.OpSpecConstantFalse:
		c.IsBool, c.Bool = true, false
	case spirv.OpConstant, spirv.OpSpecConstant:
		c.Words = append([]uint32{}, w[2:]...)
	case spirv.OpConstantComposite, spirv.OpSpecConstantComposite:
		c.Constituents = append([]uint32{}, w[2:]...)
	}
	c.Specialized = inst.Opcode == spirv.OpSpecConstantTrue || inst.Opcode == spirv.OpSpecConstantFalse ||
		inst.Opcode == spirv.OpSpecConstant || inst.Opcode == spirv.OpSpecConstantComposite
	l.module.Constants.Add(c)
}

func (l *loaderState) loadGlobalVariable(inst spirv.Instruction) error {
	w := inst.Words
	gv := ir.GlobalVariable{
		PointerType:  w[0],
		ID:           w[1],
		StorageClass: spirv.StorageClass(w[2]),
		Name:         l.names[w[1]],
		Initializer:  initializerOf(inst),
	}
	l.module.Globals = append(l.module.Globals, gv)
	return nil
}

func (l *loaderState) applyExecutionMode(inst spirv.Instruction) {
	w := inst.Words
	entryFunc := w[0]
	mode := spirv.ExecutionMode(w[1])
	for i := range l.module.EntryPoints {
		ep := &l.module.EntryPoints[i]
		if ep.FunctionID != entryFunc {
			continue
		}
		if mode == spirv.ExecutionModeLocalSize && len(w) >= 5 {
			ep.LocalSize = [3]uint32{w[2], w[3], w[4]}
		}
	}
}

// buildInterfaceTable scans every global variable's decorations and binds
// it into the module's InterfacePointerTable. A struct-typed Input/Output
// variable with no whole-variable BuiltIn/Location of its own (the
// gl_PerVertex pattern) binds one key per member instead, each carrying
// its member's byte offset within the variable's storage.
func (l *loaderState) buildInterfaceTable() error {
	for _, gv := range l.module.Globals {
		var key ir.InterfaceKey
		key.StorageClass = gv.StorageClass
		switch gv.StorageClass {
		case spirv.StorageClassInput, spirv.StorageClassOutput:
			if entry, ok := l.module.Decorations.Find(gv.ID, spirv.DecorationBuiltIn); ok {
				key.Access = ir.AccessBuiltin
				key.Index = entry.Params[0]
				if err := l.bindInterface(key, gv, 0, 0); err != nil {
					return err
				}
			} else if entry, ok := l.module.Decorations.Find(gv.ID, spirv.DecorationLocation); ok {
				key.Access = ir.AccessLocation
				key.Index = entry.Params[0]
				if err := l.bindInterface(key, gv, 0, 0); err != nil {
					return err
				}
			} else if err := l.bindStructMembers(gv, key); err != nil {
				return err
			}
		case spirv.StorageClassUniform, spirv.StorageClassUniformConstant, spirv.StorageClassStorageBuffer, spirv.StorageClassPushConstant:
			bindingEntry, hasBinding := l.module.Decorations.Find(gv.ID, spirv.DecorationBinding)
			if !hasBinding {
				continue
			}
			setEntry, hasSet := l.module.Decorations.Find(gv.ID, spirv.DecorationDescriptorSet)
			set := uint32(0)
			if hasSet {
				set = setEntry.Params[0]
			}
			key.Access = ir.AccessBinding
			key.Index = (set << 16) | (bindingEntry.Params[0] & 0xFFFF)
			if err := l.bindInterface(key, gv, 0, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// bindStructMembers binds one InterfaceKey per member of a struct-typed
// variable that carries its own BuiltIn or Location member-decoration,
// accumulating each member's byte offset the same way
// Simulator.compositeOffset walks struct members. A non-struct variable
// with no whole-variable decoration is simply left unbound, as before.
func (l *loaderState) bindStructMembers(gv ir.GlobalVariable, base ir.InterfaceKey) error {
	ptrType, err := l.module.Types.Get(gv.PointerType)
	if err != nil {
		return err
	}
	ty, err := l.module.Types.Get(ptrType.Base)
	if err != nil {
		return err
	}
	if ty.Kind != ir.TypeStruct {
		return nil
	}
	var offset uint32
	for member, memberType := range ty.Members {
		key := base
		if entry, ok := l.module.Decorations.FindMember(ptrType.Base, uint32(member), spirv.DecorationBuiltIn); ok {
			key.Access = ir.AccessBuiltin
			key.Index = entry.Params[0]
			if err := l.bindInterface(key, gv, offset, memberType); err != nil {
				return err
			}
		} else if entry, ok := l.module.Decorations.FindMember(ptrType.Base, uint32(member), spirv.DecorationLocation); ok {
			key.Access = ir.AccessLocation
			key.Index = entry.Params[0]
			if err := l.bindInterface(key, gv, offset, memberType); err != nil {
				return err
			}
		}
		size, err := l.module.Types.SizeOf(memberType)
		if err != nil {
			return err
		}
		offset += size
	}
	return nil
}

// bindInterface binds key to the given variable, offset, and type, failing
// if key is already claimed by a prior variable or member.
func (l *loaderState) bindInterface(key ir.InterfaceKey, gv ir.GlobalVariable, offset, typeID uint32) error {
	if l.module.Interfaces.Has(key) {
		return fmt.Errorf("%w: storage class %d access %d index %d claimed by both variable and a prior one",
			ErrInterfaceCollision, key.StorageClass, key.Access, key.Index)
	}
	l.module.Interfaces.Bind(key, ir.InterfaceBinding{VariableID: gv.ID, Offset: offset, TypeID: typeID})
	return nil
}

// decodeString reads a null-terminated, word-packed UTF-8 string starting
// at the first word of words.
func decodeString(words []uint32) string {
	s, _ := decodeStringWithLength(words)
	return s
}

// decodeStringWithLength returns the decoded string and how many words it
// consumed, for callers (like OpEntryPoint) that have trailing operands
// after the string.
func decodeStringWithLength(words []uint32) (string, int) {
	var b []byte
	for i, w := range words {
		bytes := [4]byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
		for _, c := range bytes {
			if c == 0 {
				return string(b), i + 1
			}
			b = append(b, c)
		}
	}
	return string(b), len(words)
}
