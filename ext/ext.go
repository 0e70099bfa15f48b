// Package ext is the registry extended-instruction-set implementations
// (GLSL.std.450 and, in principle, others a module might import) register
// themselves into. It depends only on basic numeric slices, not on the vm
// package's Register type, so vm can depend on ext without a cycle.
package ext

import "fmt"

// Table evaluates one extended-instruction-set's instructions. Every
// operand and result component is carried as float64 regardless of the
// SPIR-V type it was decoded from; callers convert to/from the concrete
// scalar width.
type Table interface {
	// Call evaluates instruction code against args (one []float64 per
	// operand, each holding that operand's scalar or per-component
	// values) and returns the result's components.
	Call(code uint32, args [][]float64) ([]float64, error)
}

var tables = make(map[string]Table)

// Register installs a Table under the extended-instruction-set name a
// module's OpExtInstImport would name (e.g. "GLSL.std.450").
func Register(name string, table Table) {
	tables[name] = table
}

// Lookup finds a registered Table by import name.
func Lookup(name string) (Table, bool) {
	t, ok := tables[name]
	return t, ok
}

// ErrUnknownInstruction is returned by a Table when code names an
// instruction it does not implement.
var ErrUnknownInstruction = fmt.Errorf("ext: unsupported instruction")
