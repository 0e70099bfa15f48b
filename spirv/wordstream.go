package spirv

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformed is the sentinel wrapped by every error Decode returns for a
// structurally invalid binary: a short header, a bad magic number, a
// truncated instruction, or an id-bound that exceeds Options.MaxIDBound.
var ErrMalformed = errors.New("spirv: malformed binary")

// Header is the five-word preamble of every SPIR-V module.
type Header struct {
	Magic        uint32
	VersionMajor uint8
	VersionMinor uint8
	Generator    uint32
	IDBound      uint32
	Schema       uint32
}

// Instruction is one decoded opcode record: its kind and the operand words
// that followed it, in file order. The result-type and result-id words, if
// any, are not distinguished here — WordStream has no opcode-specific
// knowledge of operand layout. That belongs to the loader, which knows
// which opcodes carry a result type.
type Instruction struct {
	Opcode OpCode
	Words  []uint32
}

// WordStream is a decoded SPIR-V module: its header plus the ordered list
// of instructions that follow it.
type WordStream struct {
	Header       Header
	Instructions []Instruction
}

const headerWordCount = 5

// Decode parses a SPIR-V binary into its header and instruction records.
// It validates the header and that every instruction's declared word count
// fits within the remaining stream; it does not validate that an opcode's
// operand shape makes sense, which is the loader's job.
func Decode(data []byte, opts Options) (*WordStream, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 4", ErrMalformed, len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	return DecodeWords(words, opts)
}

// DecodeWords parses an already-word-split SPIR-V module.
func DecodeWords(words []uint32, opts Options) (*WordStream, error) {
	if len(words) < headerWordCount {
		return nil, fmt.Errorf("%w: stream has %d words, need at least %d for the header", ErrMalformed, len(words), headerWordCount)
	}
	header := Header{
		Magic:        words[0],
		VersionMajor: uint8(words[1] >> 16),
		VersionMinor: uint8(words[1] >> 8),
		Generator:    words[2],
		IDBound:      words[3],
		Schema:       words[4],
	}
	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: magic number 0x%08x, expected 0x%08x", ErrMalformed, header.Magic, MagicNumber)
	}
	if opts.MaxIDBound != 0 && header.IDBound > opts.MaxIDBound {
		return nil, fmt.Errorf("%w: id-bound %d exceeds configured maximum %d", ErrMalformed, header.IDBound, opts.MaxIDBound)
	}

	ws := &WordStream{Header: header}
	cursor := headerWordCount
	for cursor < len(words) {
		head := words[cursor]
		length := int(head >> 16)
		opcode := OpCode(head & 0xFFFF)
		if length == 0 {
			return nil, fmt.Errorf("%w: zero-length instruction at word %d", ErrMalformed, cursor)
		}
		if cursor+length > len(words) {
			return nil, fmt.Errorf("%w: instruction at word %d declares %d words but only %d remain", ErrMalformed, cursor, length, len(words)-cursor)
		}
		operands := make([]uint32, length-1)
		copy(operands, words[cursor+1:cursor+length])
		ws.Instructions = append(ws.Instructions, Instruction{Opcode: opcode, Words: operands})
		cursor += length
	}
	return ws, nil
}
