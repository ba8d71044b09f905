// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/mos6502/cpu"
	"github.com/ezrec/mos6502/internal"
	"github.com/ezrec/mos6502/memory"
)

const (
	LOAD_ADDRESS = 0x0200 // Default load address of binary images.
)

var _emulator_defines = map[string]string{
	"LOAD_ADDRESS": fmt.Sprintf("0x%x", LOAD_ADDRESS),
}

// Segment is a binary image applied to memory on each reset.
type Segment struct {
	Address uint32
	Data    []byte
}

// Emulator state. CPU + memory + loaded images.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Memory   *memory.Memory // Addressed memory.
	Program  *cpu.Program   // Reference to the currently running program listing.

	Segments []Segment // Binary images, loaded after the program.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Memory:  memory.NewMemory(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Memory.Defines(),
	)
}

// Load reads a binary image, to be placed at address on each reset.
func (emu *Emulator) Load(address uint32, r io.Reader) (err error) {
	data, err := memory.ReadImage(address, r)
	if err != nil {
		return
	}

	emu.Segments = append(emu.Segments, Segment{Address: address, Data: data})

	return
}

// Reset the CPU and memory, then load the program and binary images.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset(emu.Memory)

	emu.Program.Load(emu.Memory)

	for _, segment := range emu.Segments {
		if emu.Verbose {
			log.Printf("emulator: load %d bytes at 0x%04x", len(segment.Data), segment.Address)
		}
		emu.Memory.Load(segment.Address, segment.Data)
	}

	return
}

// Ticks returns the total cycles since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Cpu.PC)
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.lineAt(emu.Cpu.PC)
}

// lineAt returns the source line that assembled address, or 0.
func (emu *Emulator) lineAt(address uint16) int {
	dbg := emu.Program.Debug(address)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Run executes until the cycle budget is spent, or the CPU stops.
func (emu *Emulator) Run(cycles int) (stop cpu.Stop, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	stop, err = emu.Cpu.Execute(cycles, emu.Memory)

	var eo cpu.ErrOpcode
	if errors.As(err, &eo) {
		err = &ErrRuntime{LineNo: emu.lineAt(eo.PC), Address: eo.PC, Err: err}
	}

	if emu.Verbose {
		log.Printf("emulator: %v after %d cycles: %v", stop, emu.Ticks(), emu.Cpu)
	}

	return
}
