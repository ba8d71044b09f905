package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location and generated bytes.
type Opcode struct {
	LineNo    int
	Address   int
	Words     []string
	Bytes     []byte
	LinkLabel string
}

// Contains returns true if the address is within the assembled bytes.
func (op *Opcode) Contains(address uint16) bool {
	return int(address) >= op.Address && int(address) < op.Address+len(op.Bytes)
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the source line that assembled the byte at address.
func (prog *Program) Debug(address uint16) (dbg Debug) {
	for n := range prog.Opcodes {
		op := &prog.Opcodes[n]
		if op.Contains(address) {
			dbg = Debug{
				Opcode: op,
				Index:  int(address) - op.Address,
			}
			break
		}
	}

	return
}

// Image returns every assembled byte, by address.
func (prog *Program) Image() iter.Seq2[uint16, byte] {
	return func(yield func(address uint16, data byte) bool) {
		for _, op := range prog.Opcodes {
			for n, data := range op.Bytes {
				if !yield(uint16(op.Address+n), data) {
					return
				}
			}
		}
	}
}

// Load writes the program image into memory.
func (prog *Program) Load(mem Bus) {
	for address, data := range prog.Image() {
		mem.Write(uint32(address), data)
	}
}
