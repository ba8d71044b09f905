// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/ezrec/mos6502/cpu"
	"github.com/ezrec/mos6502/emulator"
)

func main() {
	var compile string
	var binary string
	var address string
	var cycles int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&binary, "b", "", "Raw binary image to load")
	flag.StringVar(&address, "a", fmt.Sprintf("0x%04x", emulator.LOAD_ADDRESS), "Binary image load address")
	flag.IntVar(&cycles, "n", 1000000, "Cycle budget")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}

		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if len(binary) != 0 {
		load, err := strconv.ParseUint(address, 0, 16)
		if err != nil {
			log.Fatalf("-a %v: %v", address, err)
		}

		inf, err := os.Open(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		defer inf.Close()

		err = emu.Load(uint32(load), inf)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	stop, err := emu.Run(cycles)

	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	switch stop {
	case cpu.STOP_HALT:
		fmt.Printf("%v %v\n", green(stop), emu.Cpu)
	case cpu.STOP_DECODE:
		fmt.Printf("%v %v\n", red(stop), emu.Cpu)
		fmt.Printf("%v\n", red(err))
		os.Exit(1)
	default:
		fmt.Printf("%v %v\n", stop, emu.Cpu)
	}
}
