package ir

import "fmt"

// Constant is a decoded OpConstant*/OpSpecConstant* instruction. Spec
// constants are folded to their literal default at load time (the module
// carries no external specialization), so they share this same
// representation as ordinary constants — Specialized only records where
// the value came from for diagnostics.
type Constant struct {
	ID   uint32
	Type uint32

	// Words holds the literal value for a scalar constant (one word for
	// up to 32-bit types, two for 64-bit, little-word-first).
	Words []uint32

	// Bool holds the value of an OpConstantTrue/OpConstantFalse/
	// OpSpecConstantTrue/OpSpecConstantFalse constant.
	Bool bool
	IsBool bool

	// Constituents holds the constant ids making up an
	// OpConstantComposite/OpSpecConstantComposite value, in order.
	Constituents []uint32

	Specialized bool
}

// ConstantTable holds every constant defined in a module, keyed by id.
type ConstantTable struct {
	constants map[uint32]*Constant
}

// NewConstantTable creates an empty constant table.
func NewConstantTable() *ConstantTable {
	return &ConstantTable{constants: make(map[uint32]*Constant)}
}

// Add registers a constant under its id.
func (t *ConstantTable) Add(c *Constant) {
	t.constants[c.ID] = c
}

// IDs returns every constant id registered in the table, in no particular
// order; callers that need determinism (materializing the global register
// file) don't — each id is independent of the others.
func (t *ConstantTable) IDs() []uint32 {
	ids := make([]uint32, 0, len(t.constants))
	for id := range t.constants {
		ids = append(ids, id)
	}
	return ids
}

// Get returns the constant registered under id.
func (t *ConstantTable) Get(id uint32) (*Constant, error) {
	c, ok := t.constants[id]
	if !ok {
		return nil, fmt.Errorf("%w: constant %d", ErrUnknownID, id)
	}
	return c, nil
}

// ScalarUint32 returns a scalar constant's value as an unsigned 32-bit
// word, for contexts that need it as a plain count or index (array
// lengths, OpTypeArray's length operand).
func (c *Constant) ScalarUint32() (uint32, error) {
	if c.IsBool {
		if c.Bool {
			return 1, nil
		}
		return 0, nil
	}
	if len(c.Words) == 0 {
		return 0, fmt.Errorf("ir: constant %d has no scalar value", c.ID)
	}
	return c.Words[0], nil
}

// Materialize expands a (possibly composite) constant into its flat byte
// representation, used to seed heap storage for a variable's initializer.
// types is passed in rather than held by the ConstantTable, since
// Materialize needs to recurse through constituents whose own type ids
// only a TypeTable can resolve.
func (t *ConstantTable) Materialize(id uint32, types *TypeTable) ([]byte, error) {
	c, err := t.Get(id)
	if err != nil {
		return nil, err
	}
	size, err := types.SizeOf(c.Type)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, size)
	if c.IsBool {
		v := uint32(0)
		if c.Bool {
			v = 1
		}
		return appendWord(out, v), nil
	}
	if len(c.Constituents) > 0 {
		for _, constituent := range c.Constituents {
			bytes, err := t.Materialize(constituent, types)
			if err != nil {
				return nil, err
			}
			out = append(out, bytes...)
		}
		return out, nil
	}
	for _, w := range c.Words {
		out = appendWord(out, w)
	}
	return out, nil
}

func appendWord(b []byte, w uint32) []byte {
	return append(b, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
}
