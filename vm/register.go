package vm

import (
	"encoding/binary"
	"math"
)

// Register holds one SSA value's raw bytes plus the type id that explains
// how to interpret them. Scalars are 4 bytes; vectors, matrices, arrays,
// and structs are their constituents laid out back to back, matching the
// byte layout ir.TypeTable.SizeOf computes.
type Register struct {
	TypeID uint32
	Bytes  []byte
}

// CloneRegister returns a deep copy of r, used when a value crosses from
// one frame's registers to another's (call arguments and return values)
// so mutating one doesn't alias the other.
func CloneRegister(r Register) Register {
	b := make([]byte, len(r.Bytes))
	copy(b, r.Bytes)
	return Register{TypeID: r.TypeID, Bytes: b}
}

func regUint32(r Register) uint32 {
	return binary.LittleEndian.Uint32(r.Bytes[:4])
}

func regFloat32(r Register) float32 {
	return math.Float32frombits(regUint32(r))
}

func regBool(r Register) bool {
	return regUint32(r) != 0
}

func scalarRegister(typeID uint32, value uint32) Register {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, value)
	return Register{TypeID: typeID, Bytes: b}
}

func floatRegister(typeID uint32, value float32) Register {
	return scalarRegister(typeID, math.Float32bits(value))
}

func boolRegister(typeID uint32, value bool) Register {
	v := uint32(0)
	if value {
		v = 1
	}
	return scalarRegister(typeID, v)
}

// component returns the 4-byte word at index i within a vector/matrix
// register's bytes.
func component(bytes []byte, i int) []byte {
	return bytes[i*4 : i*4+4]
}

func componentUint32(bytes []byte, i int) uint32 {
	return binary.LittleEndian.Uint32(component(bytes, i))
}

func componentFloat32(bytes []byte, i int) float32 {
	return math.Float32frombits(componentUint32(bytes, i))
}

func setComponentUint32(bytes []byte, i int, v uint32) {
	binary.LittleEndian.PutUint32(component(bytes, i), v)
}

func setComponentFloat32(bytes []byte, i int, v float32) {
	setComponentUint32(bytes, i, math.Float32bits(v))
}

// RegisterFile is the per-frame map from SSA result id to its current
// value. The dispatcher consults the active frame's file first and falls
// back to the global file (constants and global variable pointers), the
// same two-tier lookup a closure's local scope plus its enclosing scope
// would use.
type RegisterFile struct {
	values map[uint32]Register
}

// NewRegisterFile creates an empty register file.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{values: make(map[uint32]Register)}
}

// Set assigns id's value, per spirv_sim_assign_register in the reference
// implementation this VM is grounded on: assignment always replaces, never
// merges.
func (f *RegisterFile) Set(id uint32, r Register) {
	f.values[id] = r
}

// Get returns id's current value.
func (f *RegisterFile) Get(id uint32) (Register, bool) {
	r, ok := f.values[id]
	return r, ok
}
