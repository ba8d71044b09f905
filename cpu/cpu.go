package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/mos6502/memory"
)

// Bus is the addressed memory seen by the CPU.
type Bus interface {
	Read(address uint32) byte
	Write(address uint32, value byte)
}

// initialiser is implemented by memories that can be zero filled.
type initialiser interface {
	Initialise()
}

var _ Bus = (*memory.Memory)(nil)

// Reset state.
const (
	RESET_PC = uint16(memory.RESET_VECTOR) // PC after reset.
	RESET_SP = uint8(0xff)                 // SP after reset, top of the stack page.
)

// Status register bit layout, NV-BDIZC.
const (
	STATUS_C      = uint8(1 << 0) // Carry
	STATUS_Z      = uint8(1 << 1) // Zero
	STATUS_I      = uint8(1 << 2) // Interrupt disable
	STATUS_D      = uint8(1 << 3) // Decimal mode
	STATUS_B      = uint8(1 << 4) // Break
	STATUS_UNUSED = uint8(1 << 5) // Always reads as 1
	STATUS_V      = uint8(1 << 6) // Overflow
	STATUS_N      = uint8(1 << 7) // Negative
)

var _cpu_defines = map[string]string{
	"CODE_BRK":     fmt.Sprintf("0x%02x", byte(CODE_BRK)),
	"CODE_JSR":     fmt.Sprintf("0x%02x", byte(CODE_JSR)),
	"CODE_RTS":     fmt.Sprintf("0x%02x", byte(CODE_RTS)),
	"CODE_LDA_ZP":  fmt.Sprintf("0x%02x", byte(CODE_LDA_ZP)),
	"CODE_LDA_IM":  fmt.Sprintf("0x%02x", byte(CODE_LDA_IM)),
	"CODE_LDA_ZPX": fmt.Sprintf("0x%02x", byte(CODE_LDA_ZPX)),
}

// Cpu is the simulation context of the processor core.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	PC uint16 // Program counter, address of the next instruction byte.
	SP uint8  // Stack pointer, offset into the stack page.

	A uint8 // Accumulator.
	X uint8 // X index register.
	Y uint8 // Y index register.

	C bool // Carry flag.
	Z bool // Zero flag.
	I bool // Interrupt disable flag.
	D bool // Decimal mode flag.
	B bool // Break flag.
	V bool // Overflow flag.
	N bool // Negative flag.

	Ticks int // Cycles consumed since reset.
}

// NewCpu creates a new CPU in its reset state, without touching memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.clear()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// clear sets all registers and flags to their reset values.
func (cpu *Cpu) clear() {
	*cpu = Cpu{
		Verbose: cpu.Verbose,
		PC:      RESET_PC,
		SP:      RESET_SP,
	}
}

// Reset the CPU state.
// - PC is set to the reset vector, SP to the top of the stack page.
// - Clears the registers, flags and cycle counter.
// - Zero fills the memory.
func (cpu *Cpu) Reset(mem Bus) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.clear()

	if zero, ok := mem.(initialiser); ok {
		zero.Initialise()
		return
	}

	for address := range uint32(memory.MEMORY_SIZE) {
		mem.Write(address, 0)
	}
}

// Status returns the flags packed as a status register.
func (cpu *Cpu) Status() (status uint8) {
	status = STATUS_UNUSED

	flags := []struct {
		set bool
		bit uint8
	}{
		{cpu.C, STATUS_C},
		{cpu.Z, STATUS_Z},
		{cpu.I, STATUS_I},
		{cpu.D, STATUS_D},
		{cpu.B, STATUS_B},
		{cpu.V, STATUS_V},
		{cpu.N, STATUS_N},
	}
	for _, flag := range flags {
		if flag.set {
			status |= flag.bit
		}
	}

	return
}

// setStatus unpacks a status register into the flags.
func (cpu *Cpu) setStatus(status uint8) {
	cpu.C = (status & STATUS_C) != 0
	cpu.Z = (status & STATUS_Z) != 0
	cpu.I = (status & STATUS_I) != 0
	cpu.D = (status & STATUS_D) != 0
	cpu.B = (status & STATUS_B) != 0
	cpu.V = (status & STATUS_V) != 0
	cpu.N = (status & STATUS_N) != 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	flags := []byte("NV-BDIZC")
	status := cpu.Status()
	for n := range flags {
		if status&(0x80>>n) == 0 {
			flags[n] = '.'
		}
	}

	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X SP:%02X P:%s ticks:%d",
		cpu.PC, cpu.A, cpu.X, cpu.Y, cpu.SP, string(flags), cpu.Ticks)
}

// FetchByte reads the byte at PC and advances PC, charging 1 cycle.
func (cpu *Cpu) FetchByte(cycles *int, mem Bus) (data byte) {
	data = mem.Read(uint32(cpu.PC))
	cpu.PC++
	*cycles--

	return
}

// FetchWord reads the little-endian word at PC and advances PC by 2,
// charging 2 cycles.
func (cpu *Cpu) FetchWord(cycles *int, mem Bus) (data uint16) {
	data = uint16(mem.Read(uint32(cpu.PC)))
	cpu.PC++

	data |= uint16(mem.Read(uint32(cpu.PC))) << 8
	cpu.PC++

	*cycles -= 2

	return
}

// ReadByte reads the byte at an already resolved address, charging 1 cycle.
func (cpu *Cpu) ReadByte(cycles *int, address uint16, mem Bus) (data byte) {
	data = mem.Read(uint32(address))
	*cycles--

	return
}

// SetLoadFlags updates Z and N from the accumulator.
func (cpu *Cpu) SetLoadFlags() {
	cpu.Z = cpu.A == 0
	cpu.N = (cpu.A & 0x80) != 0
}
