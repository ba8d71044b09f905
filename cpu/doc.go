// Package cpu implements the processor core and assembler for a 6502-class
// microprocessor.
//
// The core holds the program counter (PC), an 8-bit stack pointer (SP) into
// the stack page, the accumulator (A), two index registers (X, Y), and seven
// status flags. Every memory access made on behalf of an instruction is
// charged against a caller supplied cycle budget, which drives Execute.
//
// The assembler accepts a small 6502 assembly dialect covering the supported
// instruction subset, with labels, equates, macros, and compile-time
// expression evaluation.
package cpu
