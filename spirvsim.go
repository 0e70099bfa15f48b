package spirvsim

import (
	"github.com/shadersim/spirvsim/ir"
	"github.com/shadersim/spirvsim/loader"
	"github.com/shadersim/spirvsim/spirv"
	"github.com/shadersim/spirvsim/vm"

	_ "github.com/shadersim/spirvsim/ext/glslstd450" // registers the GLSL.std.450 extended instruction set
)

// Re-exported types host code names without importing the ir/spirv/vm
// packages directly.
type (
	Module       = ir.Module
	InterfaceKey = ir.InterfaceKey
	AccessKind   = ir.AccessKind
	StorageClass = spirv.StorageClass
	Register     = vm.Register
	Simulator    = vm.Simulator
)

const (
	AccessLocation = ir.AccessLocation
	AccessBuiltin  = ir.AccessBuiltin
	AccessBinding  = ir.AccessBinding
)

// Options configures both decoding and execution.
type Options struct {
	Decode spirv.Options
	Run    vm.Options
}

// DefaultOptions returns sensible defaults for both decoding and
// execution.
func DefaultOptions() Options {
	return Options{Decode: spirv.DefaultOptions(), Run: vm.DefaultOptions()}
}

// Load decodes a SPIR-V binary into its typed module graph, without
// running anything.
func Load(data []byte, opts spirv.Options) (*Module, error) {
	return loader.Load(data, opts)
}

// NewSimulator decodes data and prepares a Simulator positioned at the
// named entry point's first instruction.
func NewSimulator(data []byte, opts Options, entryPointName string) (*Simulator, error) {
	module, err := Load(data, opts.Decode)
	if err != nil {
		return nil, err
	}
	return vm.Init(module, opts.Run, entryPointName)
}
