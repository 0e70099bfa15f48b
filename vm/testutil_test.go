package vm_test

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/shadersim/spirvsim/internal/fixture"
	"github.com/shadersim/spirvsim/ir"
	"github.com/shadersim/spirvsim/loader"
	"github.com/shadersim/spirvsim/spirv"
	"github.com/shadersim/spirvsim/vm"
)

// commonTypes holds the handful of scalar type ids most dispatcher tests
// need, built once per module so test bodies can focus on the instruction
// under test.
type commonTypes struct {
	void, i32, u32, f32, boolT uint32
}

func addCommonTypes(b *fixture.ModuleBuilder) commonTypes {
	return commonTypes{
		void:  b.AddTypeVoid(),
		i32:   b.AddTypeInt(32, true),
		u32:   b.AddTypeInt(32, false),
		f32:   b.AddTypeFloat(32),
		boolT: b.AddTypeBool(),
	}
}

// runToOutput builds a single-function compute module whose body is
// produced by build (which must return the id of the value to store, plus
// the type that value should be stored as), runs it to completion, and
// returns the raw bytes the output variable ends up holding.
func runToOutput(t *testing.T, _ uint32, build func(b *fixture.ModuleBuilder, ts commonTypes) (uint32, uint32)) []byte {
	t.Helper()
	b := fixture.NewModuleBuilder(spirv.Version1_3)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	ts := addCommonTypes(b)

	fnType := b.AddTypeFunction(ts.void)
	fn := b.AddFunction(fnType, ts.void, spirv.FunctionControlNone)
	b.AddLabel()
	value, resultType := build(b, ts)

	ptrOut := b.AddTypePointer(spirv.StorageClassOutput, resultType)
	out0 := b.AddVariable(ptrOut, spirv.StorageClassOutput)
	b.AddDecorate(out0, spirv.DecorationLocation, 0)

	b.AddStore(out0, value)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelGLCompute, fn, "main", out0)

	module, err := loader.Load(b.Build(), spirv.DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sim, err := vm.Init(module, vm.DefaultOptions(), "main")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	for !sim.Done() {
		if err := sim.Step(); err != nil && !errors.Is(err, vm.ErrSimulationComplete) {
			t.Fatalf("Step: %v", err)
		}
	}
	out, err := sim.RetrieveInterfacePointer(ir.InterfaceKey{StorageClass: spirv.StorageClassOutput, Access: ir.AccessLocation, Index: 0})
	if err != nil {
		t.Fatalf("RetrieveInterfacePointer: %v", err)
	}
	return out
}

func mustLoad(t *testing.T, b *fixture.ModuleBuilder) *ir.Module {
	t.Helper()
	module, err := loader.Load(b.Build(), spirv.DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return module
}

func mustInit(t *testing.T, module *ir.Module) *vm.Simulator {
	t.Helper()
	sim, err := vm.Init(module, vm.DefaultOptions(), "main")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return sim
}

func runToCompletion(t *testing.T, sim *vm.Simulator) {
	t.Helper()
	for !sim.Done() {
		if err := sim.Step(); err != nil && !errors.Is(err, vm.ErrSimulationComplete) {
			t.Fatalf("Step: %v", err)
		}
	}
}

func outputKey(index uint32) ir.InterfaceKey {
	return ir.InterfaceKey{StorageClass: spirv.StorageClassOutput, Access: ir.AccessLocation, Index: index}
}

func inputKey(index uint32) ir.InterfaceKey {
	return ir.InterfaceKey{StorageClass: spirv.StorageClassInput, Access: ir.AccessLocation, Index: index}
}

func asU32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func asI32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

func asF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
