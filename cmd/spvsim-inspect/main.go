// Command spvsim-inspect loads a SPIR-V binary and prints its SPIR-V
// version and entry points. It exists to exercise the public API from a main
// package, not as a disassembler or test runner.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shadersim/spirvsim"
	"github.com/shadersim/spirvsim/spirv"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <module.spv>", os.Args[0])
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	module, err := spirvsim.Load(data, spirv.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("version %d.%d\n", module.Version.Major, module.Version.Minor)
	for _, ep := range module.EntryPoints {
		fmt.Printf("entry point %q (model %d, function %d)\n", ep.Name, ep.ExecutionModel, ep.FunctionID)
	}
}
