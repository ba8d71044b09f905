package cpu

import (
	"fmt"
	"log"
)

// Stop is the reason Execute returned.
type Stop int

//go:generate go tool stringer -linecomment -type=Stop
const (
	STOP_BUDGET = Stop(0) // budget
	STOP_HALT   = Stop(1) // halt
	STOP_DECODE = Stop(2) // decode
)

// Execute runs instructions from PC until the cycle budget is spent,
// a halt instruction is executed, or an unknown opcode is fetched.
//
// The budget is only checked between instructions, so the last
// instruction always runs to completion even if it overdraws it.
// An unknown opcode returns STOP_DECODE and an ErrOpcode, with PC
// left just past the offending byte.
func (cpu *Cpu) Execute(cycles int, mem Bus) (stop Stop, err error) {
	budget := cycles
	defer func() {
		cpu.Ticks += budget - cycles
	}()

	for cycles > 0 {
		pc := cpu.PC

		if cpu.Verbose {
			text, _ := Disassemble(mem, pc)
			log.Printf("%04x: %v", pc, text)
		}

		code := Code(cpu.FetchByte(&cycles, mem))
		ins := code.Decode()

		switch ins.Op {
		case OP_LDA:
			cpu.A = cpu.load(&cycles, ins.Mode, mem)
			cpu.SetLoadFlags()
		case OP_JSR:
			target := cpu.FetchWord(&cycles, mem)
			cpu.PushWord(&cycles, cpu.PC-1, mem)
			cpu.PC = target
			cycles--
		case OP_RTS:
			cpu.PC = cpu.PopWord(&cycles, mem) + 1
			cycles--
		case OP_BRK:
			if cpu.Verbose {
				log.Printf("cpu: halt at 0x%04x", pc)
			}
			stop = STOP_HALT
			return
		default:
			if cpu.Verbose {
				log.Printf("cpu: unknown opcode 0x%02x at 0x%04x", byte(code), pc)
			}
			stop = STOP_DECODE
			err = ErrOpcode{Code: code, PC: pc}
			return
		}
	}

	stop = STOP_BUDGET

	return
}

// load fetches the operand of a load instruction in the given mode.
func (cpu *Cpu) load(cycles *int, mode CodeMode, mem Bus) (value byte) {
	switch mode {
	case MODE_IMMEDIATE:
		value = cpu.FetchByte(cycles, mem)
	case MODE_ZERO_PAGE:
		address := cpu.FetchByte(cycles, mem)
		value = cpu.ReadByte(cycles, uint16(address), mem)
	case MODE_ZERO_X:
		address := cpu.FetchByte(cycles, mem)
		// Index wraps within the zero page.
		address += cpu.X
		*cycles--
		value = cpu.ReadByte(cycles, uint16(address), mem)
	default:
		panic(fmt.Sprintf("load: unsupported mode %v", mode))
	}

	return
}
