package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mos6502/memory"
)

func newExecute() (cpu *Cpu, mem *memory.Memory) {
	cpu = NewCpu()
	mem = memory.NewMemory()
	cpu.Reset(mem)
	return
}

func TestExecute_ZeroCycles(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newExecute()
	mem.Load(0xfffc, []byte{byte(CODE_LDA_IM), 0x84})

	stop, err := cpu.Execute(0, mem)
	assert.NoError(err)
	assert.Equal(STOP_BUDGET, stop)

	assert.Equal(uint16(0xfffc), cpu.PC)
	assert.Equal(uint8(0xff), cpu.SP)
	assert.Equal(uint8(0), cpu.A)
	assert.Equal(uint8(0), cpu.X)
	assert.Equal(uint8(0), cpu.Y)
	assert.False(cpu.C || cpu.Z || cpu.I || cpu.D || cpu.B || cpu.V || cpu.N)
	assert.Equal(0, cpu.Ticks)
}

func TestExecute_LoadImmediate(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newExecute()
	mem.Load(0xfffc, []byte{byte(CODE_LDA_IM), 0x84})

	stop, err := cpu.Execute(2, mem)
	assert.NoError(err)
	assert.Equal(STOP_BUDGET, stop)

	assert.Equal(uint8(0x84), cpu.A)
	assert.False(cpu.Z)
	assert.True(cpu.N)
	assert.Equal(uint16(0xfffe), cpu.PC)
	assert.Equal(2, cpu.Ticks)
}

func TestExecute_LoadImmediateFlags(t *testing.T) {
	assert := assert.New(t)

	for value := range 256 {
		cpu, mem := newExecute()
		mem.Load(0xfffc, []byte{byte(CODE_LDA_IM), byte(value)})

		_, err := cpu.Execute(2, mem)
		assert.NoError(err)

		assert.Equal(uint8(value), cpu.A)
		assert.Equal(value == 0, cpu.Z, "value 0x%02x", value)
		assert.Equal(value&0x80 != 0, cpu.N, "value 0x%02x", value)
	}
}

func TestExecute_LoadZeroPage(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		value byte
		z     bool
		n     bool
	}){
		{"positive", 0x37, false, false},
		{"zero", 0x00, true, false},
		{"negative", 0x80, false, true},
	}

	for _, entry := range table {
		cpu, mem := newExecute()
		cpu.A = 0x55
		mem.Load(0xfffc, []byte{byte(CODE_LDA_ZP), 0x42})
		mem.Write(0x0042, entry.value)

		_, err := cpu.Execute(3, mem)
		assert.NoError(err, entry.name)

		assert.Equal(entry.value, cpu.A, entry.name)
		assert.Equal(entry.z, cpu.Z, entry.name)
		assert.Equal(entry.n, cpu.N, entry.name)
		assert.Equal(3, cpu.Ticks, entry.name)
	}
}

func TestExecute_LoadZeroPageX(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newExecute()
	cpu.X = 5
	mem.Load(0xfffc, []byte{byte(CODE_LDA_ZPX), 0x42})
	mem.Write(0x0047, 0x37)

	_, err := cpu.Execute(4, mem)
	assert.NoError(err)

	assert.Equal(uint8(0x37), cpu.A)
	assert.False(cpu.Z)
	assert.False(cpu.N)
	assert.Equal(4, cpu.Ticks)
}

func TestExecute_LoadZeroPageXWrap(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newExecute()
	cpu.X = 2
	mem.Load(0xfffc, []byte{byte(CODE_LDA_ZPX), 0xff})
	mem.Write(0x0001, 0x81)
	mem.Write(0x0101, 0x22)

	_, err := cpu.Execute(4, mem)
	assert.NoError(err)

	assert.Equal(uint8(0x81), cpu.A)
	assert.True(cpu.N)
}

func TestExecute_JumpToSubroutine(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newExecute()
	mem.Load(0xfffc, []byte{byte(CODE_JSR), 0x42, 0x42})
	mem.Load(0x4242, []byte{byte(CODE_LDA_IM), 0x84})

	stop, err := cpu.Execute(8, mem)
	assert.NoError(err)
	assert.Equal(STOP_BUDGET, stop)

	assert.Equal(uint16(0x4244), cpu.PC)
	assert.Equal(uint8(0x84), cpu.A)
	assert.Equal(uint8(0xfd), cpu.SP)
	assert.Equal(byte(0xff), mem.Read(0x01ff))
	assert.Equal(byte(0xfe), mem.Read(0x01fe))
	assert.Equal(8, cpu.Ticks)
}

func TestExecute_ReturnFromSubroutine(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newExecute()
	mem.Load(0xfffc, []byte{byte(CODE_JSR), 0x42, 0x42, byte(CODE_BRK)})
	mem.Write(0x4242, byte(CODE_RTS))

	_, err := cpu.Execute(6, mem)
	assert.NoError(err)
	assert.Equal(uint16(0x4242), cpu.PC)
	assert.Equal(uint8(0xfd), cpu.SP)
	assert.Equal(6, cpu.Ticks)

	// A single cycle still runs the whole return.
	stop, err := cpu.Execute(1, mem)
	assert.NoError(err)
	assert.Equal(STOP_BUDGET, stop)
	assert.Equal(uint16(0xffff), cpu.PC)
	assert.Equal(uint8(0xff), cpu.SP)
	assert.Equal(10, cpu.Ticks)

	stop, err = cpu.Execute(10, mem)
	assert.NoError(err)
	assert.Equal(STOP_HALT, stop)
	assert.Equal(uint16(0x0000), cpu.PC)
}

func TestExecute_SubroutineRoundTrip(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newExecute()
	mem.Load(0xfffc, []byte{byte(CODE_JSR), 0x00, 0x02, byte(CODE_BRK)})
	mem.Load(0x0200, []byte{
		byte(CODE_LDA_IM), 0x10,
		byte(CODE_JSR), 0x00, 0x03,
		byte(CODE_RTS),
	})
	mem.Load(0x0300, []byte{byte(CODE_LDA_ZP), 0x80, byte(CODE_RTS)})
	mem.Write(0x0080, 0x99)

	stop, err := cpu.Execute(1000, mem)
	assert.NoError(err)
	assert.Equal(STOP_HALT, stop)

	assert.Equal(uint8(0x99), cpu.A)
	assert.Equal(RESET_SP, cpu.SP)
	// Past the brk at 0xffff.
	assert.Equal(uint16(0x0000), cpu.PC)
	// jsr 6, lda 2, jsr 6, lda 3, rts 4, rts 4, brk 1
	assert.Equal(26, cpu.Ticks)
}

func TestExecute_Overdraw(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newExecute()
	mem.Load(0xfffc, []byte{byte(CODE_LDA_IM), 0x01, byte(CODE_LDA_IM), 0x02})

	stop, err := cpu.Execute(1, mem)
	assert.NoError(err)
	assert.Equal(STOP_BUDGET, stop)
	assert.Equal(uint8(0x01), cpu.A)
	assert.Equal(uint16(0xfffe), cpu.PC)
	assert.Equal(2, cpu.Ticks)
}

func TestExecute_Halt(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newExecute()
	mem.Load(0xfffc, []byte{byte(CODE_BRK), byte(CODE_LDA_IM), 0x01})

	stop, err := cpu.Execute(100, mem)
	assert.NoError(err)
	assert.Equal(STOP_HALT, stop)
	assert.Equal(uint16(0xfffd), cpu.PC)
	assert.Equal(uint8(0), cpu.A)
	assert.Equal(1, cpu.Ticks)
}

func TestExecute_Unknown(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newExecute()
	cpu.PC = 0x0200
	mem.Load(0x0200, []byte{byte(CODE_LDA_IM), 0x05, 0xff, byte(CODE_LDA_IM), 0x01})

	stop, err := cpu.Execute(100, mem)
	assert.Equal(STOP_DECODE, stop)
	assert.Error(err)
	assert.True(errors.Is(err, ErrOpcodeDecode))

	var eo ErrOpcode
	assert.True(errors.As(err, &eo))
	assert.Equal(Code(0xff), eo.Code)
	assert.Equal(uint16(0x0202), eo.PC)

	// Stopped just past the bad byte; the trailing lda never ran.
	assert.Equal(uint16(0x0203), cpu.PC)
	assert.Equal(uint8(0x05), cpu.A)
	assert.Equal(3, cpu.Ticks)
	assert.False(cpu.Z)
	assert.False(cpu.N)
	assert.Equal(uint8(0xff), cpu.SP)
}

func TestStop_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("budget", STOP_BUDGET.String())
	assert.Equal("halt", STOP_HALT.String())
	assert.Equal("decode", STOP_DECODE.String())
	assert.Equal("Stop(9)", Stop(9).String())
}
