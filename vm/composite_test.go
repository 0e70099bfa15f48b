package vm_test

import (
	"testing"

	"github.com/shadersim/spirvsim/internal/fixture"
	"github.com/shadersim/spirvsim/spirv"
)

func TestComposite_ConstructAndExtract(t *testing.T) {
	b := fixture.NewModuleBuilder(spirv.Version1_3)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	ts := addCommonTypes(b)
	vec3 := b.AddTypeVector(ts.f32, 3)
	ptrOut := b.AddTypePointer(spirv.StorageClassOutput, ts.f32)
	out0 := b.AddVariable(ptrOut, spirv.StorageClassOutput)
	b.AddDecorate(out0, spirv.DecorationLocation, 0)

	fnType := b.AddTypeFunction(ts.void)
	fn := b.AddFunction(fnType, ts.void, spirv.FunctionControlNone)
	b.AddLabel()
	x := b.AddConstantFloat32(ts.f32, 1)
	y := b.AddConstantFloat32(ts.f32, 2)
	z := b.AddConstantFloat32(ts.f32, 3)
	v := b.AddCompositeConstruct(vec3, x, y, z)
	middle := b.AddCompositeExtract(ts.f32, v, 1)
	b.AddStore(out0, middle)
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
	if got := asF32(out); got != 2 {
		t.Errorf("CompositeExtract(vec3(1,2,3), 1) = %v, want 2", got)
	}
}

func TestComposite_Insert(t *testing.T) {
	b := fixture.NewModuleBuilder(spirv.Version1_3)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	ts := addCommonTypes(b)
	vec3 := b.AddTypeVector(ts.f32, 3)
	ptrOut := b.AddTypePointer(spirv.StorageClassOutput, vec3)
	out0 := b.AddVariable(ptrOut, spirv.StorageClassOutput)
	b.AddDecorate(out0, spirv.DecorationLocation, 0)

	fnType := b.AddTypeFunction(ts.void)
	fn := b.AddFunction(fnType, ts.void, spirv.FunctionControlNone)
	b.AddLabel()
	x := b.AddConstantFloat32(ts.f32, 1)
	y := b.AddConstantFloat32(ts.f32, 2)
	z := b.AddConstantFloat32(ts.f32, 3)
	v := b.AddCompositeConstruct(vec3, x, y, z)
	replacement := b.AddConstantFloat32(ts.f32, 99)
	updated := b.AddCompositeInsert(vec3, replacement, v, 0)
	b.AddStore(out0, updated)
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
	if got := asF32(out[0:4]); got != 99 {
		t.Errorf("component 0 = %v, want 99", got)
	}
	if got := asF32(out[4:8]); got != 2 {
		t.Errorf("component 1 = %v, want 2 (unchanged)", got)
	}
}

func TestComposite_VectorShuffle(t *testing.T) {
	b := fixture.NewModuleBuilder(spirv.Version1_3)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	ts := addCommonTypes(b)
	vec2 := b.AddTypeVector(ts.f32, 2)
	vec4 := b.AddTypeVector(ts.f32, 4)
	ptrOut := b.AddTypePointer(spirv.StorageClassOutput, vec4)
	out0 := b.AddVariable(ptrOut, spirv.StorageClassOutput)
	b.AddDecorate(out0, spirv.DecorationLocation, 0)

	fnType := b.AddTypeFunction(ts.void)
	fn := b.AddFunction(fnType, ts.void, spirv.FunctionControlNone)
	b.AddLabel()
	a1 := b.AddConstantFloat32(ts.f32, 1)
	a2 := b.AddConstantFloat32(ts.f32, 2)
	b1 := b.AddConstantFloat32(ts.f32, 10)
	b2 := b.AddConstantFloat32(ts.f32, 20)
	va := b.AddCompositeConstruct(vec2, a1, a2)
	vb := b.AddCompositeConstruct(vec2, b1, b2)
	shuffled := b.AddVectorShuffle(vec4, va, vb, []uint32{1, 0, 2, 3})
	b.AddStore(out0, shuffled)
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
	want := []float32{2, 1, 10, 20}
	for i, w := range want {
		if got := asF32(out[i*4 : i*4+4]); got != w {
			t.Errorf("component %d = %v, want %v", i, got, w)
		}
	}
}
