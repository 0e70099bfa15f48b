package vm

import "errors"

// The simulator's error taxonomy. Once Step sets Simulator.err to any of
// these (wrapped with instruction context via fmt.Errorf), the error is
// sticky: every later Step call is a no-op that returns the same error.
var (
	// ErrUnsupportedOpcode is returned when a function body instruction is
	// not one this dispatcher implements.
	ErrUnsupportedOpcode = errors.New("vm: unsupported opcode")

	// ErrUnsupportedExtension is returned by Init when the module imports an
	// extended-instruction set this simulator has no table for, and by Step
	// when an OpExtInst names an instruction its set's table does not
	// implement.
	ErrUnsupportedExtension = errors.New("vm: unsupported extension instruction")

	// ErrTypeMismatch is returned when an instruction's operands don't
	// have the shape its opcode requires (e.g. a non-float operand to a
	// float-only comparison).
	ErrTypeMismatch = errors.New("vm: type mismatch")

	// ErrMissingBinding is returned when host code asks for an interface
	// pointer or tries to associate data with a binding point the module
	// never declared.
	ErrMissingBinding = errors.New("vm: missing binding")

	// ErrInvariantViolation is returned when the dispatcher's own
	// bookkeeping would be violated: a register read before it was
	// written, a branch to an id with no OpLabel, a heap access outside
	// the heap's bounds.
	ErrInvariantViolation = errors.New("vm: invariant violation")

	// ErrSimulationComplete is returned by Step once the call stack has
	// unwound back to empty; it is not sticky in Simulator.err since it
	// reflects ordinary completion, not failure.
	ErrSimulationComplete = errors.New("vm: simulation complete")
)
