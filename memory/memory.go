// Package memory implements the 64KiB byte-addressable store of the 6502
// system.
//
// Every access is bounds checked. An access outside of the address space
// is a caller bug, and panics with an ErrAddress value.
package memory

import (
	"fmt"
	"io"
	"iter"
	"maps"
)

var _memory_defines = map[string]string{
	"MEMORY_SIZE":  fmt.Sprintf("0x%x", MEMORY_SIZE),
	"ZERO_PAGE":    fmt.Sprintf("0x%x", ARENA_ZERO_PAGE),
	"STACK_PAGE":   fmt.Sprintf("0x%x", ARENA_STACK),
	"RESET_VECTOR": fmt.Sprintf("0x%x", RESET_VECTOR),
}

// Memory is the addressed memory of the system.
type Memory struct {
	Data []byte // Backing store, always MEMORY_SIZE bytes.
}

// NewMemory creates a new zero filled memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{
		Data: make([]byte, MEMORY_SIZE),
	}

	return
}

// Defines returns the address space layout as assembler equates.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// check panics if the range [address, address+size) is not addressable.
func (mem *Memory) check(address uint32, size uint32) {
	if address >= uint32(len(mem.Data)) {
		panic(ErrAddress(address))
	}
	if size > uint32(len(mem.Data))-address {
		panic(ErrAddress(address + size - 1))
	}
}

// Initialise zero fills the memory.
func (mem *Memory) Initialise() {
	if len(mem.Data) != MEMORY_SIZE {
		mem.Data = make([]byte, MEMORY_SIZE)
		return
	}

	clear(mem.Data)
}

// Read a single byte.
func (mem *Memory) Read(address uint32) byte {
	mem.check(address, 1)
	return mem.Data[address]
}

// Write a single byte.
func (mem *Memory) Write(address uint32, value byte) {
	mem.check(address, 1)
	mem.Data[address] = value
}

// ReadWord reads a little-endian word, charging 2 cycles.
func (mem *Memory) ReadWord(address uint32, cycles *int) (value uint16) {
	mem.check(address, 2)

	value = uint16(mem.Data[address]) | (uint16(mem.Data[address+1]) << 8)
	*cycles -= 2

	return
}

// WriteWord writes a little-endian word, charging 2 cycles.
func (mem *Memory) WriteWord(value uint16, address uint32, cycles *int) {
	mem.check(address, 2)

	mem.Data[address] = byte(value & 0xff)
	mem.Data[address+1] = byte(value >> 8)
	*cycles -= 2
}

// Load copies an image into memory at address.
func (mem *Memory) Load(address uint32, data []byte) {
	if len(data) == 0 {
		return
	}

	mem.check(address, uint32(len(data)))
	copy(mem.Data[address:], data)
}

// ReadImage reads a raw binary image from r, destined for address.
// The image must fit in the address space.
func ReadImage(address uint32, r io.Reader) (data []byte, err error) {
	if address >= MEMORY_SIZE {
		err = ErrAddress(address)
		return
	}

	data, err = io.ReadAll(io.LimitReader(r, int64(MEMORY_SIZE-address)+1))
	if err != nil {
		return
	}

	if len(data) > MEMORY_SIZE-int(address) {
		data = nil
		err = ErrAddress(MEMORY_SIZE)
		return
	}

	return
}
