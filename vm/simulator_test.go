package vm_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/shadersim/spirvsim/internal/fixture"
	"github.com/shadersim/spirvsim/ir"
	"github.com/shadersim/spirvsim/loader"
	"github.com/shadersim/spirvsim/spirv"
	"github.com/shadersim/spirvsim/vm"
)

func encodeU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func decodeU32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// buildAddOneModule builds a compute shader that loads an int from an
// Input-bound variable, adds one, and stores it to an Output-bound
// variable.
func buildAddOneModule(t *testing.T) (*ir.Module, ir.InterfaceKey, ir.InterfaceKey) {
	t.Helper()
	b := fixture.NewModuleBuilder(spirv.Version1_3)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	voidID := b.AddTypeVoid()
	i32 := b.AddTypeInt(32, true)
	fnType := b.AddTypeFunction(voidID)
	ptrIn := b.AddTypePointer(spirv.StorageClassInput, i32)
	ptrOut := b.AddTypePointer(spirv.StorageClassOutput, i32)

	in0 := b.AddVariable(ptrIn, spirv.StorageClassInput)
	out0 := b.AddVariable(ptrOut, spirv.StorageClassOutput)
	b.AddDecorate(in0, spirv.DecorationLocation, 0)
	b.AddDecorate(out0, spirv.DecorationLocation, 0)

	one := b.AddConstant(i32, 1)

	fn := b.AddFunction(fnType, voidID, spirv.FunctionControlNone)
	b.AddLabel()
	loaded := b.AddLoad(i32, in0)
	sum := b.AddBinaryOp(spirv.OpIAdd, i32, loaded, one)
	b.AddStore(out0, sum)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelGLCompute, fn, "main", in0, out0)

	module, err := loader.Load(b.Build(), spirv.DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	inKey := ir.InterfaceKey{StorageClass: spirv.StorageClassInput, Access: ir.AccessLocation, Index: 0}
	outKey := ir.InterfaceKey{StorageClass: spirv.StorageClassOutput, Access: ir.AccessLocation, Index: 0}
	return module, inKey, outKey
}

func TestSimulator_RunToCompletion(t *testing.T) {
	module, inKey, outKey := buildAddOneModule(t)
	sim, err := vm.Init(module, vm.DefaultOptions(), "main")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := sim.AssociateData(inKey, encodeU32(41)); err != nil {
		t.Fatalf("AssociateData: %v", err)
	}

	for !sim.Done() {
		if err := sim.Step(); err != nil && !errors.Is(err, vm.ErrSimulationComplete) {
			t.Fatalf("Step: %v", err)
		}
	}

	out, err := sim.RetrieveInterfacePointer(outKey)
	if err != nil {
		t.Fatalf("RetrieveInterfacePointer: %v", err)
	}
	if got := decodeU32(out); got != 42 {
		t.Errorf("output = %d, want 42", got)
	}
}

func TestSimulator_RetrieveUnboundInterfacePointer(t *testing.T) {
	module, _, _ := buildAddOneModule(t)
	sim, err := vm.Init(module, vm.DefaultOptions(), "main")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	// Location 99 is not declared by the module.
	_, err = sim.RetrieveInterfacePointer(ir.InterfaceKey{StorageClass: spirv.StorageClassInput, Access: ir.AccessLocation, Index: 99})
	if !errors.Is(err, vm.ErrMissingBinding) {
		t.Fatalf("RetrieveInterfacePointer error = %v, want ErrMissingBinding", err)
	}
}

func TestSimulator_UnknownEntryPoint(t *testing.T) {
	module, _, _ := buildAddOneModule(t)
	_, err := vm.Init(module, vm.DefaultOptions(), "nope")
	if !errors.Is(err, vm.ErrMissingBinding) {
		t.Fatalf("Init error = %v, want ErrMissingBinding", err)
	}
}

// buildBranchModule builds a function that branches to one of two labels
// depending on a boolean constant, storing a different value from each.
func buildBranchModule(t *testing.T, takeTrue bool) *ir.Module {
	t.Helper()
	b := fixture.NewModuleBuilder(spirv.Version1_3)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	voidID := b.AddTypeVoid()
	boolID := b.AddTypeBool()
	i32 := b.AddTypeInt(32, true)
	fnType := b.AddTypeFunction(voidID)
	ptrOut := b.AddTypePointer(spirv.StorageClassOutput, i32)
	out0 := b.AddVariable(ptrOut, spirv.StorageClassOutput)
	b.AddDecorate(out0, spirv.DecorationLocation, 0)

	var cond uint32
	if takeTrue {
		cond = b.AddConstantTrue(boolID)
	} else {
		cond = b.AddConstantFalse(boolID)
	}
	ten := b.AddConstant(i32, 10)
	twenty := b.AddConstant(i32, 20)

	trueLabel := b.AllocID()
	falseLabel := b.AllocID()

	fn := b.AddFunction(fnType, voidID, spirv.FunctionControlNone)
	b.AddLabel()
	b.AddBranchConditional(cond, trueLabel, falseLabel)

	// True branch
	b.AddLabelWithID(trueLabel)
	b.AddStore(out0, ten)
	b.AddReturn()

	// False branch
	b.AddLabelWithID(falseLabel)
	b.AddStore(out0, twenty)
	b.AddReturn()

	b.AddFunctionEnd()
	b.AddEntryPoint(spirv.ExecutionModelGLCompute, fn, "main", out0)

	module, err := loader.Load(b.Build(), spirv.DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return module
}

func TestSimulator_BranchConditional(t *testing.T) {
	for _, tc := range []struct {
		takeTrue bool
		want     uint32
	}{
		{true, 10},
		{false, 20},
	} {
		module := buildBranchModule(t, tc.takeTrue)
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
		if got := decodeU32(out); got != tc.want {
			t.Errorf("takeTrue=%v: output = %d, want %d", tc.takeTrue, got, tc.want)
		}
	}
}
