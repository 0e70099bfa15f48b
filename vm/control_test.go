package vm_test

import (
	"testing"

	"github.com/shadersim/spirvsim/internal/fixture"
	"github.com/shadersim/spirvsim/spirv"
)

func TestControl_FunctionCallWithReturnValue(t *testing.T) {
	b := fixture.NewModuleBuilder(spirv.Version1_3)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	ts := addCommonTypes(b)
	ptrOut := b.AddTypePointer(spirv.StorageClassOutput, ts.i32)
	out0 := b.AddVariable(ptrOut, spirv.StorageClassOutput)
	b.AddDecorate(out0, spirv.DecorationLocation, 0)

	doubleFnType := b.AddTypeFunction(ts.i32, ts.i32)
	doubleFn := b.AddFunction(doubleFnType, ts.i32, spirv.FunctionControlNone)
	param := b.AddFunctionParameter(ts.i32)
	b.AddLabel()
	two := b.AddConstant(ts.i32, 2)
	doubled := b.AddBinaryOp(spirv.OpIMul, ts.i32, param, two)
	b.AddReturnValue(doubled)
	b.AddFunctionEnd()

	mainFnType := b.AddTypeFunction(ts.void)
	mainFn := b.AddFunction(mainFnType, ts.void, spirv.FunctionControlNone)
	b.AddLabel()
	arg := b.AddConstant(ts.i32, 21)
	result := b.AddFunctionCall(ts.i32, doubleFn, arg)
	b.AddStore(out0, result)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelGLCompute, mainFn, "main", out0)

	module := mustLoad(t, b)
	sim := mustInit(t, module)
	runToCompletion(t, sim)
	out, err := sim.RetrieveInterfacePointer(outputKey(0))
	if err != nil {
		t.Fatalf("RetrieveInterfacePointer: %v", err)
	}
	if got := asI32(out); got != 42 {
		t.Errorf("double(21) = %d, want 42", got)
	}
}

func TestControl_AccessChainIntoStruct(t *testing.T) {
	b := fixture.NewModuleBuilder(spirv.Version1_3)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	ts := addCommonTypes(b)
	structType := b.AddTypeStruct(ts.i32, ts.f32)
	ptrStructFunc := b.AddTypePointer(spirv.StorageClassFunction, structType)
	ptrI32Func := b.AddTypePointer(spirv.StorageClassFunction, ts.i32)
	ptrF32Out := b.AddTypePointer(spirv.StorageClassOutput, ts.f32)
	out0 := b.AddVariable(ptrF32Out, spirv.StorageClassOutput)
	b.AddDecorate(out0, spirv.DecorationLocation, 0)

	fnType := b.AddTypeFunction(ts.void)
	fn := b.AddFunction(fnType, ts.void, spirv.FunctionControlNone)
	local := b.AddLocalVariable(ptrStructFunc, 0)
	b.AddLabel()

	zero := b.AddConstant(ts.i32, 0)
	one := b.AddConstant(ts.i32, 1)
	fieldIntPtr := b.AddAccessChain(ptrI32Func, local, zero)
	fortyTwo := b.AddConstant(ts.i32, 42)
	b.AddStore(fieldIntPtr, fortyTwo)

	ptrF32Func := b.AddTypePointer(spirv.StorageClassFunction, ts.f32)
	fieldFloatPtr := b.AddAccessChain(ptrF32Func, local, one)
	pi := b.AddConstantFloat32(ts.f32, 3.5)
	b.AddStore(fieldFloatPtr, pi)

	loadedFloat := b.AddLoad(ts.f32, fieldFloatPtr)
	b.AddStore(out0, loadedFloat)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelGLCompute, fn, "main", out0)

	module := mustLoad(t, b)
	sim := mustInit(t, module)
	runToCompletion(t, sim)
	out, err := sim.RetrieveInterfacePointer(outputKey(0))
	if err != nil {
		t.Fatalf("RetrieveInterfacePointer: %v", err)
	}
	if got := asF32(out); got != 3.5 {
		t.Errorf("struct field load = %v, want 3.5", got)
	}
}

func TestControl_SwitchDefault(t *testing.T) {
	b := fixture.NewModuleBuilder(spirv.Version1_3)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	ts := addCommonTypes(b)
	ptrOut := b.AddTypePointer(spirv.StorageClassOutput, ts.i32)
	out0 := b.AddVariable(ptrOut, spirv.StorageClassOutput)
	b.AddDecorate(out0, spirv.DecorationLocation, 0)

	caseLabel := b.AllocID()
	defaultLabel := b.AllocID()

	fnType := b.AddTypeFunction(ts.void)
	fn := b.AddFunction(fnType, ts.void, spirv.FunctionControlNone)
	b.AddLabel()
	selector := b.AddConstant(ts.i32, 99)
	b.AddSwitch(selector, defaultLabel, 1, caseLabel)

	b.AddLabelWithID(caseLabel)
	one := b.AddConstant(ts.i32, 1)
	b.AddStore(out0, one)
	b.AddReturn()

	b.AddLabelWithID(defaultLabel)
	zero := b.AddConstant(ts.i32, 0)
	b.AddStore(out0, zero)
	b.AddReturn()

	b.AddFunctionEnd()
	b.AddEntryPoint(spirv.ExecutionModelGLCompute, fn, "main", out0)

	module := mustLoad(t, b)
	sim := mustInit(t, module)
	runToCompletion(t, sim)
	out, err := sim.RetrieveInterfacePointer(outputKey(0))
	if err != nil {
		t.Fatalf("RetrieveInterfacePointer: %v", err)
	}
	if got := asI32(out); got != 0 {
		t.Errorf("switch(99) with no matching case = %d, want 0 (default)", got)
	}
}
