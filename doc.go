// Package spirvsim loads a SPIR-V binary and runs it on a small
// register-and-heap virtual machine: decode the word stream, build the
// typed module graph, then step a chosen entry point one instruction at a
// time while host code feeds and reads interface bindings.
package spirvsim
