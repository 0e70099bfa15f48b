// Package fixture builds binary-encoded SPIR-V modules for tests. It is the
// test-only counterpart to spirv.WordStream: where WordStream reads a
// module, ModuleBuilder writes one, so package tests throughout the repo
// can synthesize exactly the instruction sequence a case needs instead of
// depending on an external compiler.
package fixture

import (
	"encoding/binary"
	"math"

	"github.com/shadersim/spirvsim/spirv"
)

// Instruction represents a single SPIR-V instruction prior to encoding.
type Instruction struct {
	Opcode spirv.OpCode
	Words  []uint32 // operand words, not including the opcode/length word
}

// InstructionBuilder accumulates operand words for one instruction.
type InstructionBuilder struct {
	words []uint32
}

// NewInstructionBuilder creates a new instruction builder.
func NewInstructionBuilder() *InstructionBuilder {
	return &InstructionBuilder{words: make([]uint32, 0, 8)}
}

// AddWord appends a raw operand word.
func (b *InstructionBuilder) AddWord(word uint32) {
	b.words = append(b.words, word)
}

// AddString appends a null-terminated, word-padded UTF-8 string.
func (b *InstructionBuilder) AddString(s string) {
	bytes := []byte(s)
	bytes = append(bytes, 0)
	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}
	for i := 0; i < len(bytes); i += 4 {
		word := uint32(bytes[i]) | uint32(bytes[i+1])<<8 | uint32(bytes[i+2])<<16 | uint32(bytes[i+3])<<24
		b.words = append(b.words, word)
	}
}

// Build finalizes the instruction with the given opcode.
func (b *InstructionBuilder) Build(opcode spirv.OpCode) Instruction {
	return Instruction{Opcode: opcode, Words: b.words}
}

// Encode returns the instruction's full word sequence, including its
// leading (length<<16)|opcode word.
func (i Instruction) Encode() []uint32 {
	wordCount := uint32(len(i.Words) + 1)
	result := make([]uint32, 0, wordCount)
	result = append(result, (wordCount<<16)|uint32(i.Opcode))
	result = append(result, i.Words...)
	return result
}

// ModuleBuilder builds a complete SPIR-V binary section by section, in the
// order the format requires.
type ModuleBuilder struct {
	version   spirv.Version
	generator uint32
	schema    uint32

	capabilities   []Instruction
	extInstImports []Instruction
	memoryModel    *Instruction
	entryPoints    []Instruction
	executionModes []Instruction
	debugNames     []Instruction
	annotations    []Instruction
	types          []Instruction
	globalVars     []Instruction
	functions      []Instruction

	nextID uint32
}

// NewModuleBuilder creates a builder targeting the given SPIR-V version.
func NewModuleBuilder(version spirv.Version) *ModuleBuilder {
	return &ModuleBuilder{
		version:   version,
		generator: spirv.GeneratorID,
		nextID:    1,
	}
}

// AllocID allocates a fresh SPIR-V result ID.
func (b *ModuleBuilder) AllocID() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

func (b *ModuleBuilder) AddCapability(capability uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(capability)
	b.capabilities = append(b.capabilities, ib.Build(spirv.OpCapability))
}

func (b *ModuleBuilder) AddExtInstImport(name string) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddString(name)
	b.extInstImports = append(b.extInstImports, ib.Build(spirv.OpExtInstImport))
	return id
}

func (b *ModuleBuilder) SetMemoryModel(addressing spirv.AddressingModel, memory spirv.MemoryModel) {
	ib := NewInstructionBuilder()
	ib.AddWord(uint32(addressing))
	ib.AddWord(uint32(memory))
	inst := ib.Build(spirv.OpMemoryModel)
	b.memoryModel = &inst
}

func (b *ModuleBuilder) AddEntryPoint(model spirv.ExecutionModel, funcID uint32, name string, interfaces ...uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(uint32(model))
	ib.AddWord(funcID)
	ib.AddString(name)
	for _, iface := range interfaces {
		ib.AddWord(iface)
	}
	b.entryPoints = append(b.entryPoints, ib.Build(spirv.OpEntryPoint))
}

func (b *ModuleBuilder) AddExecutionMode(entryPoint uint32, mode spirv.ExecutionMode, params ...uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(entryPoint)
	ib.AddWord(uint32(mode))
	for _, p := range params {
		ib.AddWord(p)
	}
	b.executionModes = append(b.executionModes, ib.Build(spirv.OpExecutionMode))
}

func (b *ModuleBuilder) AddName(id uint32, name string) {
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddString(name)
	b.debugNames = append(b.debugNames, ib.Build(spirv.OpName))
}

func (b *ModuleBuilder) AddDecorate(id uint32, decoration spirv.Decoration, params ...uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(uint32(decoration))
	for _, p := range params {
		ib.AddWord(p)
	}
	b.annotations = append(b.annotations, ib.Build(spirv.OpDecorate))
}

func (b *ModuleBuilder) AddMemberDecorate(structID, member uint32, decoration spirv.Decoration, params ...uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(structID)
	ib.AddWord(member)
	ib.AddWord(uint32(decoration))
	for _, p := range params {
		ib.AddWord(p)
	}
	b.annotations = append(b.annotations, ib.Build(spirv.OpMemberDecorate))
}

func (b *ModuleBuilder) AddTypeVoid() uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	b.types = append(b.types, ib.Build(spirv.OpTypeVoid))
	return id
}

func (b *ModuleBuilder) AddTypeBool() uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	b.types = append(b.types, ib.Build(spirv.OpTypeBool))
	return id
}

func (b *ModuleBuilder) AddTypeFloat(width uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(width)
	b.types = append(b.types, ib.Build(spirv.OpTypeFloat))
	return id
}

func (b *ModuleBuilder) AddTypeInt(width uint32, signed bool) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(width)
	if signed {
		ib.AddWord(1)
	} else {
		ib.AddWord(0)
	}
	b.types = append(b.types, ib.Build(spirv.OpTypeInt))
	return id
}

func (b *ModuleBuilder) AddTypeVector(componentType, count uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(componentType)
	ib.AddWord(count)
	b.types = append(b.types, ib.Build(spirv.OpTypeVector))
	return id
}

func (b *ModuleBuilder) AddTypeMatrix(columnType, columnCount uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(columnType)
	ib.AddWord(columnCount)
	b.types = append(b.types, ib.Build(spirv.OpTypeMatrix))
	return id
}

func (b *ModuleBuilder) AddTypeArray(elementType, lengthConstID uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(elementType)
	ib.AddWord(lengthConstID)
	b.types = append(b.types, ib.Build(spirv.OpTypeArray))
	return id
}

func (b *ModuleBuilder) AddTypePointer(storageClass spirv.StorageClass, baseType uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(uint32(storageClass))
	ib.AddWord(baseType)
	b.types = append(b.types, ib.Build(spirv.OpTypePointer))
	return id
}

func (b *ModuleBuilder) AddTypeFunction(returnType uint32, paramTypes ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(returnType)
	for _, p := range paramTypes {
		ib.AddWord(p)
	}
	b.types = append(b.types, ib.Build(spirv.OpTypeFunction))
	return id
}

func (b *ModuleBuilder) AddTypeStruct(memberTypes ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	for _, m := range memberTypes {
		ib.AddWord(m)
	}
	b.types = append(b.types, ib.Build(spirv.OpTypeStruct))
	return id
}

func (b *ModuleBuilder) AddConstantTrue(typeID uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(typeID)
	ib.AddWord(id)
	b.types = append(b.types, ib.Build(spirv.OpConstantTrue))
	return id
}

func (b *ModuleBuilder) AddConstantFalse(typeID uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(typeID)
	ib.AddWord(id)
	b.types = append(b.types, ib.Build(spirv.OpConstantFalse))
	return id
}

func (b *ModuleBuilder) AddConstant(typeID uint32, values ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(typeID)
	ib.AddWord(id)
	for _, v := range values {
		ib.AddWord(v)
	}
	b.types = append(b.types, ib.Build(spirv.OpConstant))
	return id
}

// AddConstantFloat32 adds a 32-bit float constant.
func (b *ModuleBuilder) AddConstantFloat32(typeID uint32, value float32) uint32 {
	return b.AddConstant(typeID, math.Float32bits(value))
}

// AddConstantFloat64 adds a 64-bit float constant, low word first.
func (b *ModuleBuilder) AddConstantFloat64(typeID uint32, value float64) uint32 {
	bits := math.Float64bits(value)
	return b.AddConstant(typeID, uint32(bits&0xFFFFFFFF), uint32(bits>>32))
}

func (b *ModuleBuilder) AddConstantComposite(typeID uint32, constituents ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(typeID)
	ib.AddWord(id)
	for _, c := range constituents {
		ib.AddWord(c)
	}
	b.types = append(b.types, ib.Build(spirv.OpConstantComposite))
	return id
}

func (b *ModuleBuilder) AddVariable(pointerType uint32, storageClass spirv.StorageClass) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(pointerType)
	ib.AddWord(id)
	ib.AddWord(uint32(storageClass))
	b.globalVars = append(b.globalVars, ib.Build(spirv.OpVariable))
	return id
}

func (b *ModuleBuilder) AddVariableWithInit(pointerType uint32, storageClass spirv.StorageClass, initID uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(pointerType)
	ib.AddWord(id)
	ib.AddWord(uint32(storageClass))
	ib.AddWord(initID)
	b.globalVars = append(b.globalVars, ib.Build(spirv.OpVariable))
	return id
}

// AddLocalVariable adds a function-local OpVariable. Call it before the
// function's first AddLabel: the loader collects OpVariables ahead of the
// first OpLabel (or directly after it) as the function's locals.
func (b *ModuleBuilder) AddLocalVariable(pointerType uint32, initID uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(pointerType)
	ib.AddWord(id)
	ib.AddWord(uint32(spirv.StorageClassFunction))
	if initID != 0 {
		ib.AddWord(initID)
	}
	b.functions = append(b.functions, ib.Build(spirv.OpVariable))
	return id
}

func (b *ModuleBuilder) AddFunction(funcType, returnType uint32, control spirv.FunctionControl) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(returnType)
	ib.AddWord(id)
	ib.AddWord(uint32(control))
	ib.AddWord(funcType)
	b.functions = append(b.functions, ib.Build(spirv.OpFunction))
	return id
}

func (b *ModuleBuilder) AddFunctionParameter(typeID uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(typeID)
	ib.AddWord(id)
	b.functions = append(b.functions, ib.Build(spirv.OpFunctionParameter))
	return id
}

func (b *ModuleBuilder) AddLabel() uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	b.functions = append(b.functions, ib.Build(spirv.OpLabel))
	return id
}

// AddLabelWithID emits an OpLabel for an id allocated earlier via AllocID,
// for blocks whose id must be known before the block itself is written
// (forward branch targets).
func (b *ModuleBuilder) AddLabelWithID(id uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	b.functions = append(b.functions, ib.Build(spirv.OpLabel))
}

func (b *ModuleBuilder) AddReturn() {
	b.functions = append(b.functions, NewInstructionBuilder().Build(spirv.OpReturn))
}

func (b *ModuleBuilder) AddReturnValue(valueID uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(valueID)
	b.functions = append(b.functions, ib.Build(spirv.OpReturnValue))
}

func (b *ModuleBuilder) AddFunctionEnd() {
	b.functions = append(b.functions, NewInstructionBuilder().Build(spirv.OpFunctionEnd))
}

// AddBinaryOp adds any two-operand, result-typed instruction (arithmetic,
// relational, logical, bitwise...).
func (b *ModuleBuilder) AddBinaryOp(opcode spirv.OpCode, resultType, left, right uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(left)
	ib.AddWord(right)
	b.functions = append(b.functions, ib.Build(opcode))
	return id
}

// AddUnaryOp adds any one-operand, result-typed instruction (negation,
// conversions, OpCopyObject, OpTranspose, OpNot...).
func (b *ModuleBuilder) AddUnaryOp(opcode spirv.OpCode, resultType, operand uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(operand)
	b.functions = append(b.functions, ib.Build(opcode))
	return id
}

func (b *ModuleBuilder) AddLoad(resultType, pointer uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(pointer)
	b.functions = append(b.functions, ib.Build(spirv.OpLoad))
	return id
}

func (b *ModuleBuilder) AddStore(pointer, value uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(pointer)
	ib.AddWord(value)
	b.functions = append(b.functions, ib.Build(spirv.OpStore))
}

func (b *ModuleBuilder) AddAccessChain(resultType, base uint32, indices ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(base)
	for _, idx := range indices {
		ib.AddWord(idx)
	}
	b.functions = append(b.functions, ib.Build(spirv.OpAccessChain))
	return id
}

func (b *ModuleBuilder) AddFunctionCall(resultType, function uint32, args ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(function)
	for _, a := range args {
		ib.AddWord(a)
	}
	b.functions = append(b.functions, ib.Build(spirv.OpFunctionCall))
	return id
}

func (b *ModuleBuilder) AddCompositeConstruct(resultType uint32, constituents ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	for _, c := range constituents {
		ib.AddWord(c)
	}
	b.functions = append(b.functions, ib.Build(spirv.OpCompositeConstruct))
	return id
}

func (b *ModuleBuilder) AddCompositeExtract(resultType, composite uint32, indices ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(composite)
	for _, idx := range indices {
		ib.AddWord(idx)
	}
	b.functions = append(b.functions, ib.Build(spirv.OpCompositeExtract))
	return id
}

func (b *ModuleBuilder) AddCompositeInsert(resultType, object, composite uint32, indices ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(object)
	ib.AddWord(composite)
	for _, idx := range indices {
		ib.AddWord(idx)
	}
	b.functions = append(b.functions, ib.Build(spirv.OpCompositeInsert))
	return id
}

func (b *ModuleBuilder) AddVectorShuffle(resultType, vec1, vec2 uint32, components []uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(vec1)
	ib.AddWord(vec2)
	for _, c := range components {
		ib.AddWord(c)
	}
	b.functions = append(b.functions, ib.Build(spirv.OpVectorShuffle))
	return id
}

func (b *ModuleBuilder) AddVectorExtractDynamic(resultType, vector, index uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(vector)
	ib.AddWord(index)
	b.functions = append(b.functions, ib.Build(spirv.OpVectorExtractDynamic))
	return id
}

func (b *ModuleBuilder) AddVectorInsertDynamic(resultType, vector, component, index uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(vector)
	ib.AddWord(component)
	ib.AddWord(index)
	b.functions = append(b.functions, ib.Build(spirv.OpVectorInsertDynamic))
	return id
}

func (b *ModuleBuilder) AddBitFieldInsert(resultType, base, insert, offset, count uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(base)
	ib.AddWord(insert)
	ib.AddWord(offset)
	ib.AddWord(count)
	b.functions = append(b.functions, ib.Build(spirv.OpBitFieldInsert))
	return id
}

func (b *ModuleBuilder) AddBitFieldExtract(opcode spirv.OpCode, resultType, base, offset, count uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(base)
	ib.AddWord(offset)
	ib.AddWord(count)
	b.functions = append(b.functions, ib.Build(opcode))
	return id
}

func (b *ModuleBuilder) AddSelect(resultType, condition, accept, reject uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(condition)
	ib.AddWord(accept)
	ib.AddWord(reject)
	b.functions = append(b.functions, ib.Build(spirv.OpSelect))
	return id
}

func (b *ModuleBuilder) AddSelectionMerge(mergeLabel uint32, control spirv.SelectionControl) {
	ib := NewInstructionBuilder()
	ib.AddWord(mergeLabel)
	ib.AddWord(uint32(control))
	b.functions = append(b.functions, ib.Build(spirv.OpSelectionMerge))
}

func (b *ModuleBuilder) AddLoopMerge(mergeLabel, continueLabel uint32, control spirv.LoopControl) {
	ib := NewInstructionBuilder()
	ib.AddWord(mergeLabel)
	ib.AddWord(continueLabel)
	ib.AddWord(uint32(control))
	b.functions = append(b.functions, ib.Build(spirv.OpLoopMerge))
}

func (b *ModuleBuilder) AddBranch(target uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(target)
	b.functions = append(b.functions, ib.Build(spirv.OpBranch))
}

func (b *ModuleBuilder) AddBranchConditional(condition, trueLabel, falseLabel uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(condition)
	ib.AddWord(trueLabel)
	ib.AddWord(falseLabel)
	b.functions = append(b.functions, ib.Build(spirv.OpBranchConditional))
}

// AddSwitch adds OpSwitch. pairs alternates (literal, label) per case.
func (b *ModuleBuilder) AddSwitch(selector, defaultLabel uint32, pairs ...uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(selector)
	ib.AddWord(defaultLabel)
	for _, p := range pairs {
		ib.AddWord(p)
	}
	b.functions = append(b.functions, ib.Build(spirv.OpSwitch))
}

func (b *ModuleBuilder) AddKill() {
	b.functions = append(b.functions, NewInstructionBuilder().Build(spirv.OpKill))
}

func (b *ModuleBuilder) AddExtInst(resultType, extSet, instruction uint32, operands ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(id)
	ib.AddWord(extSet)
	ib.AddWord(instruction)
	for _, op := range operands {
		ib.AddWord(op)
	}
	b.functions = append(b.functions, ib.Build(spirv.OpExtInst))
	return id
}

// Build generates the final SPIR-V binary from the accumulated sections.
func (b *ModuleBuilder) Build() []byte {
	bound := b.nextID

	totalWords := 5
	totalWords += countWords(b.capabilities)
	totalWords += countWords(b.extInstImports)
	if b.memoryModel != nil {
		totalWords += len(b.memoryModel.Encode())
	}
	totalWords += countWords(b.entryPoints)
	totalWords += countWords(b.executionModes)
	totalWords += countWords(b.debugNames)
	totalWords += countWords(b.annotations)
	totalWords += countWords(b.types)
	totalWords += countWords(b.globalVars)
	totalWords += countWords(b.functions)

	buffer := make([]byte, totalWords*4)
	offset := 0

	binary.LittleEndian.PutUint32(buffer[offset:], spirv.MagicNumber)
	offset += 4
	binary.LittleEndian.PutUint32(buffer[offset:], versionToWord(b.version))
	offset += 4
	binary.LittleEndian.PutUint32(buffer[offset:], b.generator)
	offset += 4
	binary.LittleEndian.PutUint32(buffer[offset:], bound)
	offset += 4
	binary.LittleEndian.PutUint32(buffer[offset:], b.schema)
	offset += 4

	offset = writeInstructions(buffer, offset, b.capabilities)
	offset = writeInstructions(buffer, offset, b.extInstImports)
	if b.memoryModel != nil {
		offset = writeInstruction(buffer, offset, *b.memoryModel)
	}
	offset = writeInstructions(buffer, offset, b.entryPoints)
	offset = writeInstructions(buffer, offset, b.executionModes)
	offset = writeInstructions(buffer, offset, b.debugNames)
	offset = writeInstructions(buffer, offset, b.annotations)
	offset = writeInstructions(buffer, offset, b.types)
	offset = writeInstructions(buffer, offset, b.globalVars)
	_ = writeInstructions(buffer, offset, b.functions)

	return buffer
}

func countWords(instructions []Instruction) int {
	count := 0
	for _, inst := range instructions {
		count += len(inst.Encode())
	}
	return count
}

func writeInstructions(buffer []byte, offset int, instructions []Instruction) int {
	for _, inst := range instructions {
		offset = writeInstruction(buffer, offset, inst)
	}
	return offset
}

func writeInstruction(buffer []byte, offset int, inst Instruction) int {
	for _, word := range inst.Encode() {
		binary.LittleEndian.PutUint32(buffer[offset:], word)
		offset += 4
	}
	return offset
}

func versionToWord(v spirv.Version) uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}
