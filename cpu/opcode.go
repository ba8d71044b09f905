package cpu

import (
	"fmt"
)

// Code is a raw opcode byte, as found in memory.
type Code byte

// Opcode encodings of the supported instruction subset.
const (
	CODE_BRK     = Code(0x00) // brk
	CODE_JSR     = Code(0x20) // jsr abs
	CODE_RTS     = Code(0x60) // rts
	CODE_LDA_ZP  = Code(0xa5) // lda zp
	CODE_LDA_IM  = Code(0xa9) // lda #imm
	CODE_LDA_ZPX = Code(0xb5) // lda zp,x
)

// CodeOp is the operation performed by an instruction.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_UNKNOWN = CodeOp(0) // ???
	OP_LDA     = CodeOp(1) // lda
	OP_JSR     = CodeOp(2) // jsr
	OP_RTS     = CodeOp(3) // rts
	OP_BRK     = CodeOp(4) // brk
)

// CodeMode is an addressing mode.
type CodeMode int

//go:generate go tool stringer -linecomment -type=CodeMode
const (
	MODE_IMPLIED   = CodeMode(0) // imp
	MODE_IMMEDIATE = CodeMode(1) // imm
	MODE_ZERO_PAGE = CodeMode(2) // zp
	MODE_ZERO_X    = CodeMode(3) // zpx
	MODE_ABSOLUTE  = CodeMode(4) // abs
)

// Operands returns the number of operand bytes following the opcode.
func (mode CodeMode) Operands() int {
	switch mode {
	case MODE_IMMEDIATE, MODE_ZERO_PAGE, MODE_ZERO_X:
		return 1
	case MODE_ABSOLUTE:
		return 2
	}

	return 0
}

// Instruction is a decoded opcode.
type Instruction struct {
	Op   CodeOp
	Mode CodeMode
}

// Size returns the encoded size of the instruction, in bytes.
func (ins Instruction) Size() int {
	return 1 + ins.Mode.Operands()
}

// Known returns false for undecodable opcodes.
func (ins Instruction) Known() bool {
	return ins.Op != OP_UNKNOWN
}

// Format renders the instruction with its operand in assembler syntax.
func (ins Instruction) Format(operand uint16) (text string) {
	switch ins.Mode {
	case MODE_IMMEDIATE:
		text = fmt.Sprintf("%v #$%02x", ins.Op, operand&0xff)
	case MODE_ZERO_PAGE:
		text = fmt.Sprintf("%v $%02x", ins.Op, operand&0xff)
	case MODE_ZERO_X:
		text = fmt.Sprintf("%v $%02x,x", ins.Op, operand&0xff)
	case MODE_ABSOLUTE:
		text = fmt.Sprintf("%v $%04x", ins.Op, operand)
	default:
		text = ins.Op.String()
	}

	return
}

// decodeTable maps every opcode byte to its instruction.
// Unlisted opcodes decode as OP_UNKNOWN.
var decodeTable = [256]Instruction{
	CODE_BRK:     {OP_BRK, MODE_IMPLIED},
	CODE_JSR:     {OP_JSR, MODE_ABSOLUTE},
	CODE_RTS:     {OP_RTS, MODE_IMPLIED},
	CODE_LDA_ZP:  {OP_LDA, MODE_ZERO_PAGE},
	CODE_LDA_IM:  {OP_LDA, MODE_IMMEDIATE},
	CODE_LDA_ZPX: {OP_LDA, MODE_ZERO_X},
}

// Decode returns the instruction for the opcode.
func (code Code) Decode() Instruction {
	return decodeTable[code]
}

// Encode finds the opcode for an operation and addressing mode.
func Encode(op CodeOp, mode CodeMode) (code Code, ok bool) {
	if op == OP_UNKNOWN {
		return
	}

	for n, ins := range decodeTable {
		if ins.Op == op && ins.Mode == mode {
			code = Code(n)
			ok = true
			return
		}
	}

	return
}

// String returns the assembly mnemonic and mode of the opcode.
func (code Code) String() string {
	ins := code.Decode()
	if !ins.Known() {
		return fmt.Sprintf(".byte $%02x", byte(code))
	}
	if ins.Mode == MODE_IMPLIED {
		return ins.Op.String()
	}
	return fmt.Sprintf("%v %v", ins.Op, ins.Mode)
}

// Disassemble renders the instruction at address, without charging cycles.
// Unknown opcodes render as a single .byte.
func Disassemble(bus Bus, address uint16) (text string, size int) {
	code := Code(bus.Read(uint32(address)))
	ins := code.Decode()
	if !ins.Known() {
		text = code.String()
		size = 1
		return
	}

	var operand uint16
	for n := range ins.Mode.Operands() {
		operand |= uint16(bus.Read(uint32(address+1+uint16(n)))) << (8 * n)
	}

	text = ins.Format(operand)
	size = ins.Size()

	return
}
