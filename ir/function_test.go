package ir

import (
	"errors"
	"testing"
)

func TestFunctionTable_AddAndGet(t *testing.T) {
	table := NewFunctionTable()
	fn := &Function{ID: 5, ResultType: 1, Name: "main"}
	table.Add(fn)

	got, err := table.Get(5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != fn {
		t.Error("Get returned a different *Function than was added")
	}
}

func TestFunctionTable_GetUnknownID(t *testing.T) {
	table := NewFunctionTable()
	if _, err := table.Get(99); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Get(99) error = %v, want ErrUnknownID", err)
	}
}
