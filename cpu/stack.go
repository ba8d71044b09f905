package cpu

import (
	"github.com/ezrec/mos6502/memory"
)

// StackAddress returns the memory address SP refers to.
func (cpu *Cpu) StackAddress() uint16 {
	return uint16(memory.ARENA_STACK) | uint16(cpu.SP)
}

// PushByte writes value at the top of the stack, then decrements SP,
// charging 1 cycle.
func (cpu *Cpu) PushByte(cycles *int, value byte, mem Bus) {
	mem.Write(uint32(cpu.StackAddress()), value)
	cpu.SP--
	*cycles--
}

// PushWord pushes the high byte, then the low byte, charging 2 cycles.
func (cpu *Cpu) PushWord(cycles *int, value uint16, mem Bus) {
	cpu.PushByte(cycles, byte(value>>8), mem)
	cpu.PushByte(cycles, byte(value&0xff), mem)
}

// PopByte increments SP, then reads the top of the stack, charging 1 cycle.
func (cpu *Cpu) PopByte(cycles *int, mem Bus) (value byte) {
	cpu.SP++
	value = mem.Read(uint32(cpu.StackAddress()))
	*cycles--

	return
}

// PopWord pops the low byte, then the high byte, charging 2 cycles.
func (cpu *Cpu) PopWord(cycles *int, mem Bus) (value uint16) {
	value = uint16(cpu.PopByte(cycles, mem))
	value |= uint16(cpu.PopByte(cycles, mem)) << 8

	return
}
