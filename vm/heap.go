package vm

import "fmt"

// Heap is the simulator's single byte-addressable memory arena. Every
// OpVariable — global or function-local — gets a slice of it; pointers
// are just byte offsets into it. A function call bumps the arena forward
// for its locals and OpReturn/OpReturnValue rewinds it back to the
// low-water mark recorded when the call began, so recursion and repeated
// calls don't leak.
type Heap struct {
	bytes []byte
	next  uint32
}

// ErrOutOfMemory is returned when an allocation would exceed the heap's
// fixed size.
var ErrOutOfMemory = fmt.Errorf("vm: heap exhausted")

// NewHeap creates a heap of the given byte size.
func NewHeap(size uint32) *Heap {
	return &Heap{bytes: make([]byte, size)}
}

// Mark returns the current bump offset, to be restored later via ResetTo.
func (h *Heap) Mark() uint32 {
	return h.next
}

// ResetTo rewinds the bump pointer to a previously captured mark. It does
// not zero the reclaimed bytes — the next Alloc through that region
// overwrites them, matching the original simulator's "cheap stack,
// garbage reused" arena discipline.
func (h *Heap) ResetTo(mark uint32) {
	h.next = mark
}

// Alloc reserves size bytes (rounded up to 8 bytes) and returns their
// starting offset.
func (h *Heap) Alloc(size uint32) (uint32, error) {
	aligned := (size + 7) &^ 7
	if h.next+aligned > uint32(len(h.bytes)) {
		return 0, ErrOutOfMemory
	}
	offset := h.next
	h.next += aligned
	return offset, nil
}

// Slice returns a byte window [offset, offset+size) for direct read/write,
// the way the original simulator hands callers a raw pointer into its
// memory block.
func (h *Heap) Slice(offset, size uint32) ([]byte, error) {
	if uint64(offset)+uint64(size) > uint64(len(h.bytes)) {
		return nil, fmt.Errorf("%w: heap access [%d:%d] out of bounds (size %d)", ErrInvariantViolation, offset, offset+size, len(h.bytes))
	}
	return h.bytes[offset : offset+size], nil
}

// Write copies data into the heap at offset.
func (h *Heap) Write(offset uint32, data []byte) error {
	dst, err := h.Slice(offset, uint32(len(data)))
	if err != nil {
		return err
	}
	copy(dst, data)
	return nil
}

// Read returns a copy of size bytes starting at offset.
func (h *Heap) Read(offset, size uint32) ([]byte, error) {
	src, err := h.Slice(offset, size)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, src)
	return out, nil
}
