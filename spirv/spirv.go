// Package spirv decodes the binary SPIR-V module format: the five-word
// header and the stream of opcode records that follow it. It does not
// interpret what those records mean — that is the job of the ir and vm
// packages built on top of it.
package spirv

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions.
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// Options configures decoding of a SPIR-V binary.
type Options struct {
	// MaxIDBound caps the id-bound field accepted from the header, guarding
	// against a malformed file claiming an absurd id range. Zero means no
	// cap.
	MaxIDBound uint32
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		MaxIDBound: 1 << 20,
	}
}

// SPIR-V magic number and a generator ID used by the fixture builder.
const (
	MagicNumber = 0x07230203
	GeneratorID = 0x00000000 // Unregistered generator
)

// OpCode identifies the kind of a SPIR-V instruction.
type OpCode uint16

// Debug and module-scope opcodes.
const (
	OpNop               OpCode = 0
	OpSource            OpCode = 3
	OpName              OpCode = 5
	OpMemberName        OpCode = 6
	OpString            OpCode = 7
	OpExtension         OpCode = 10
	OpExtInstImport     OpCode = 11
	OpExtInst           OpCode = 12
	OpMemoryModel       OpCode = 14
	OpEntryPoint        OpCode = 15
	OpExecutionMode     OpCode = 16
	OpCapability        OpCode = 17
	OpTypeVoid          OpCode = 19
	OpTypeBool          OpCode = 20
	OpTypeInt           OpCode = 21
	OpTypeFloat         OpCode = 22
	OpTypeVector        OpCode = 23
	OpTypeMatrix        OpCode = 24
	OpTypeArray         OpCode = 28
	OpTypeRuntimeArray  OpCode = 29
	OpTypeStruct        OpCode = 30
	OpTypePointer       OpCode = 32
	OpTypeFunction       OpCode = 33
	OpConstantTrue      OpCode = 41
	OpConstantFalse     OpCode = 42
	OpConstant          OpCode = 43
	OpConstantComposite OpCode = 44
	OpConstantNull      OpCode = 46
	OpSpecConstantTrue      OpCode = 48
	OpSpecConstantFalse     OpCode = 49
	OpSpecConstant          OpCode = 50
	OpSpecConstantComposite OpCode = 51
	OpFunction          OpCode = 54
	OpFunctionParameter OpCode = 55
	OpFunctionEnd       OpCode = 56
	OpFunctionCall      OpCode = 57
	OpVariable          OpCode = 59
	OpLoad              OpCode = 61
	OpStore             OpCode = 62
	OpAccessChain       OpCode = 65
	OpDecorate          OpCode = 71
	OpMemberDecorate    OpCode = 72
)

// Composite and conversion opcodes.
const (
	OpVectorExtractDynamic OpCode = 77
	OpVectorInsertDynamic  OpCode = 78
	OpVectorShuffle        OpCode = 79
	OpCompositeConstruct   OpCode = 80
	OpCompositeExtract     OpCode = 81
	OpCompositeInsert      OpCode = 82
	OpCopyObject           OpCode = 83
	OpTranspose            OpCode = 84

	OpConvertFToU      OpCode = 109
	OpConvertFToS      OpCode = 110
	OpConvertSToF      OpCode = 111
	OpConvertUToF      OpCode = 112
	OpUConvert         OpCode = 113
	OpSConvert         OpCode = 114
	OpFConvert         OpCode = 115
	OpConvertPtrToU    OpCode = 117
	OpSatConvertSToU   OpCode = 118
	OpSatConvertUToS   OpCode = 119
	OpConvertUToPtr    OpCode = 120
	OpBitcast          OpCode = 124
)

// Arithmetic opcodes.
const (
	OpSNegate OpCode = 126
	OpFNegate OpCode = 127
	OpIAdd    OpCode = 128
	OpFAdd    OpCode = 129
	OpISub    OpCode = 130
	OpFSub    OpCode = 131
	OpIMul    OpCode = 132
	OpFMul    OpCode = 133
	OpUDiv    OpCode = 134
	OpSDiv    OpCode = 135
	OpFDiv    OpCode = 136
	OpUMod    OpCode = 137
	OpSRem    OpCode = 138
	OpSMod    OpCode = 139
	OpFRem    OpCode = 140
	OpFMod    OpCode = 141

	OpVectorTimesScalar OpCode = 142
	OpMatrixTimesScalar OpCode = 143
	OpVectorTimesMatrix OpCode = 144
	OpMatrixTimesVector OpCode = 145
	OpMatrixTimesMatrix OpCode = 146
	OpOuterProduct      OpCode = 147
	OpDot               OpCode = 148
)

// Relational and logical opcodes.
const (
	OpAny           OpCode = 154
	OpAll           OpCode = 155
	OpIsNan         OpCode = 156
	OpIsInf         OpCode = 157
	OpIsFinite      OpCode = 158
	OpIsNormal      OpCode = 159
	OpSignBitSet    OpCode = 160
	OpLessOrGreater OpCode = 161
	OpOrdered       OpCode = 162
	OpUnordered     OpCode = 163

	OpLogicalEqual    OpCode = 164
	OpLogicalNotEqual OpCode = 165
	OpLogicalOr       OpCode = 166
	OpLogicalAnd      OpCode = 167
	OpLogicalNot      OpCode = 168
	OpSelect          OpCode = 169

	OpIEqual               OpCode = 170
	OpINotEqual            OpCode = 171
	OpUGreaterThan         OpCode = 172
	OpSGreaterThan         OpCode = 173
	OpUGreaterThanEqual    OpCode = 174
	OpSGreaterThanEqual    OpCode = 175
	OpULessThan            OpCode = 176
	OpSLessThan            OpCode = 177
	OpULessThanEqual       OpCode = 178
	OpSLessThanEqual       OpCode = 179
	OpFOrdEqual            OpCode = 180
	OpFUnordEqual          OpCode = 181
	OpFOrdNotEqual         OpCode = 182
	OpFUnordNotEqual       OpCode = 183
	OpFOrdLessThan         OpCode = 184
	OpFUnordLessThan       OpCode = 185
	OpFOrdGreaterThan      OpCode = 186
	OpFUnordGreaterThan    OpCode = 187
	OpFOrdLessThanEqual    OpCode = 188
	OpFUnordLessThanEqual  OpCode = 189
	OpFOrdGreaterThanEqual OpCode = 190
	OpFUnordGreaterThanEqual OpCode = 191
)

// Shift and bitwise opcodes.
const (
	OpShiftRightLogical    OpCode = 194
	OpShiftRightArithmetic OpCode = 195
	OpShiftLeftLogical     OpCode = 196
	OpBitwiseOr            OpCode = 197
	OpBitwiseXor           OpCode = 198
	OpBitwiseAnd           OpCode = 199
	OpNot                  OpCode = 200
	OpBitFieldInsert       OpCode = 201
	OpBitFieldSExtract     OpCode = 202
	OpBitFieldUExtract     OpCode = 203
	OpBitReverse           OpCode = 204
	OpBitCount             OpCode = 205
)

// Control flow opcodes.
const (
	OpLoopMerge         OpCode = 246
	OpSelectionMerge    OpCode = 247
	OpLabel             OpCode = 248
	OpBranch            OpCode = 249
	OpBranchConditional OpCode = 250
	OpSwitch            OpCode = 251
	OpKill              OpCode = 252
	OpReturn            OpCode = 253
	OpReturnValue       OpCode = 254
	OpUnreachable       OpCode = 255
)

// String returns the opcode's mnemonic, or "OpUnknown" for an opcode
// this decoder was not built to recognize. It exists so error messages can
// name the offending instruction kind; it intentionally does not format an
// instruction's operands, which would make it a disassembler.
func (c OpCode) String() string {
	if name, ok := opcodeNames[c]; ok {
		return name
	}
	return "OpUnknown"
}

var opcodeNames = map[OpCode]string{
	OpNop: "OpNop", OpSource: "OpSource", OpName: "OpName",
	OpMemberName: "OpMemberName", OpString: "OpString", OpExtension: "OpExtension",
	OpExtInstImport: "OpExtInstImport", OpExtInst: "OpExtInst",
	OpMemoryModel: "OpMemoryModel", OpEntryPoint: "OpEntryPoint",
	OpExecutionMode: "OpExecutionMode", OpCapability: "OpCapability",
	OpTypeVoid: "OpTypeVoid", OpTypeBool: "OpTypeBool", OpTypeInt: "OpTypeInt",
	OpTypeFloat: "OpTypeFloat", OpTypeVector: "OpTypeVector", OpTypeMatrix: "OpTypeMatrix",
	OpTypeArray: "OpTypeArray", OpTypeRuntimeArray: "OpTypeRuntimeArray",
	OpTypeStruct: "OpTypeStruct", OpTypePointer: "OpTypePointer",
	OpTypeFunction: "OpTypeFunction", OpConstantTrue: "OpConstantTrue",
	OpConstantFalse: "OpConstantFalse", OpConstant: "OpConstant",
	OpConstantComposite: "OpConstantComposite", OpConstantNull: "OpConstantNull",
	OpSpecConstantTrue: "OpSpecConstantTrue", OpSpecConstantFalse: "OpSpecConstantFalse",
	OpSpecConstant: "OpSpecConstant", OpSpecConstantComposite: "OpSpecConstantComposite",
	OpFunction: "OpFunction", OpFunctionParameter: "OpFunctionParameter",
	OpFunctionEnd: "OpFunctionEnd", OpFunctionCall: "OpFunctionCall",
	OpVariable: "OpVariable", OpLoad: "OpLoad", OpStore: "OpStore",
	OpAccessChain: "OpAccessChain", OpDecorate: "OpDecorate",
	OpMemberDecorate: "OpMemberDecorate",
	OpVectorExtractDynamic: "OpVectorExtractDynamic", OpVectorInsertDynamic: "OpVectorInsertDynamic",
	OpVectorShuffle: "OpVectorShuffle", OpCompositeConstruct: "OpCompositeConstruct",
	OpCompositeExtract: "OpCompositeExtract", OpCompositeInsert: "OpCompositeInsert",
	OpCopyObject: "OpCopyObject", OpTranspose: "OpTranspose",
	OpConvertFToU: "OpConvertFToU", OpConvertFToS: "OpConvertFToS",
	OpConvertSToF: "OpConvertSToF", OpConvertUToF: "OpConvertUToF",
	OpUConvert: "OpUConvert", OpSConvert: "OpSConvert", OpFConvert: "OpFConvert",
	OpConvertPtrToU: "OpConvertPtrToU", OpSatConvertSToU: "OpSatConvertSToU",
	OpSatConvertUToS: "OpSatConvertUToS", OpConvertUToPtr: "OpConvertUToPtr",
	OpBitcast: "OpBitcast",
	OpSNegate: "OpSNegate", OpFNegate: "OpFNegate", OpIAdd: "OpIAdd", OpFAdd: "OpFAdd",
	OpISub: "OpISub", OpFSub: "OpFSub", OpIMul: "OpIMul", OpFMul: "OpFMul",
	OpUDiv: "OpUDiv", OpSDiv: "OpSDiv", OpFDiv: "OpFDiv", OpUMod: "OpUMod",
	OpSRem: "OpSRem", OpSMod: "OpSMod", OpFRem: "OpFRem", OpFMod: "OpFMod",
	OpVectorTimesScalar: "OpVectorTimesScalar", OpMatrixTimesScalar: "OpMatrixTimesScalar",
	OpVectorTimesMatrix: "OpVectorTimesMatrix", OpMatrixTimesVector: "OpMatrixTimesVector",
	OpMatrixTimesMatrix: "OpMatrixTimesMatrix", OpOuterProduct: "OpOuterProduct", OpDot: "OpDot",
	OpAny: "OpAny", OpAll: "OpAll", OpIsNan: "OpIsNan", OpIsInf: "OpIsInf",
	OpIsFinite: "OpIsFinite", OpIsNormal: "OpIsNormal", OpSignBitSet: "OpSignBitSet",
	OpLessOrGreater: "OpLessOrGreater", OpOrdered: "OpOrdered", OpUnordered: "OpUnordered",
	OpLogicalEqual: "OpLogicalEqual", OpLogicalNotEqual: "OpLogicalNotEqual",
	OpLogicalOr: "OpLogicalOr", OpLogicalAnd: "OpLogicalAnd", OpLogicalNot: "OpLogicalNot",
	OpSelect: "OpSelect",
	OpIEqual: "OpIEqual", OpINotEqual: "OpINotEqual", OpUGreaterThan: "OpUGreaterThan",
	OpSGreaterThan: "OpSGreaterThan", OpUGreaterThanEqual: "OpUGreaterThanEqual",
	OpSGreaterThanEqual: "OpSGreaterThanEqual", OpULessThan: "OpULessThan",
	OpSLessThan: "OpSLessThan", OpULessThanEqual: "OpULessThanEqual",
	OpSLessThanEqual: "OpSLessThanEqual", OpFOrdEqual: "OpFOrdEqual",
	OpFUnordEqual: "OpFUnordEqual", OpFOrdNotEqual: "OpFOrdNotEqual",
	OpFUnordNotEqual: "OpFUnordNotEqual", OpFOrdLessThan: "OpFOrdLessThan",
	OpFUnordLessThan: "OpFUnordLessThan", OpFOrdGreaterThan: "OpFOrdGreaterThan",
	OpFUnordGreaterThan: "OpFUnordGreaterThan", OpFOrdLessThanEqual: "OpFOrdLessThanEqual",
	OpFUnordLessThanEqual: "OpFUnordLessThanEqual", OpFOrdGreaterThanEqual: "OpFOrdGreaterThanEqual",
	OpFUnordGreaterThanEqual: "OpFUnordGreaterThanEqual",
	OpShiftRightLogical: "OpShiftRightLogical", OpShiftRightArithmetic: "OpShiftRightArithmetic",
	OpShiftLeftLogical: "OpShiftLeftLogical", OpBitwiseOr: "OpBitwiseOr",
	OpBitwiseXor: "OpBitwiseXor", OpBitwiseAnd: "OpBitwiseAnd", OpNot: "OpNot",
	OpBitFieldInsert: "OpBitFieldInsert", OpBitFieldSExtract: "OpBitFieldSExtract",
	OpBitFieldUExtract: "OpBitFieldUExtract", OpBitReverse: "OpBitReverse", OpBitCount: "OpBitCount",
	OpLoopMerge: "OpLoopMerge", OpSelectionMerge: "OpSelectionMerge", OpLabel: "OpLabel",
	OpBranch: "OpBranch", OpBranchConditional: "OpBranchConditional", OpSwitch: "OpSwitch",
	OpKill: "OpKill", OpReturn: "OpReturn", OpReturnValue: "OpReturnValue",
	OpUnreachable: "OpUnreachable",
}

// Decoration represents a SPIR-V decoration.
type Decoration uint32

// Decorations consumed by the decoration index.
const (
	DecorationBlock         Decoration = 2
	DecorationRowMajor      Decoration = 4
	DecorationColMajor      Decoration = 5
	DecorationArrayStride   Decoration = 6
	DecorationMatrixStride  Decoration = 7
	DecorationBuiltIn       Decoration = 11
	DecorationLocation      Decoration = 30
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset        Decoration = 35
)

// BuiltIn represents a SPIR-V built-in decoration value.
type BuiltIn uint32

// Built-in values used with DecorationBuiltIn.
const (
	BuiltInPosition      BuiltIn = 0
	BuiltInVertexID      BuiltIn = 5
	BuiltInInstanceID    BuiltIn = 6
	BuiltInFragCoord     BuiltIn = 15
	BuiltInFrontFacing   BuiltIn = 17
	BuiltInFragDepth     BuiltIn = 22
	BuiltInGlobalInvocationID BuiltIn = 28
	BuiltInVertexIndex   BuiltIn = 42
	BuiltInInstanceIndex BuiltIn = 43
)

// ExecutionModel represents a SPIR-V execution model.
type ExecutionModel uint32

const (
	ExecutionModelVertex   ExecutionModel = 0
	ExecutionModelFragment ExecutionModel = 4
	ExecutionModelGLCompute ExecutionModel = 5
)

// ExecutionMode represents a SPIR-V execution mode.
type ExecutionMode uint32

const (
	ExecutionModeOriginUpperLeft ExecutionMode = 7
	ExecutionModeLocalSize       ExecutionMode = 17
)

// StorageClass represents a SPIR-V storage class.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassPushConstant    StorageClass = 9
	StorageClassStorageBuffer   StorageClass = 12
)

// AddressingModel represents a SPIR-V addressing model.
type AddressingModel uint32

const (
	AddressingModelLogical AddressingModel = 0
)

// MemoryModel represents a SPIR-V memory model.
type MemoryModel uint32

const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
)

// FunctionControl represents a SPIR-V function control mask.
type FunctionControl uint32

const (
	FunctionControlNone FunctionControl = 0x0
)

// SelectionControl flags for OpSelectionMerge.
type SelectionControl uint32

const (
	SelectionControlNone SelectionControl = 0x0
)

// LoopControl flags for OpLoopMerge.
type LoopControl uint32

const (
	LoopControlNone LoopControl = 0x0
)
