package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mos6502/memory"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 2, Address: 0xfffc, Words: []string{"jsr", "main"},
				Bytes: []byte{0x20, 0x00, 0x02}, LinkLabel: "main"},
			{LineNo: 3, Address: 0xffff, Words: []string{"brk"},
				Bytes: []byte{0x00}},
			{LineNo: 5, Address: 0x0200, Words: []string{"lda", "#$84"},
				Bytes: []byte{0xa9, 0x84}},
			{LineNo: 6, Address: 0x0202, Words: []string{"rts"},
				Bytes: []byte{0x60}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0xfffc)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.Opcode.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0xfffe)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.Opcode.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(0x0201)
	assert.NotNil(dbg.Opcode)
	assert.Equal(5, dbg.LineNo)
	assert.Equal(1, dbg.Index)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0x0203)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Image(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	image := map[uint16]byte{}
	for address, data := range prog.Image() {
		image[address] = data
	}
	assert.Equal(7, len(image))
	assert.Equal(byte(0x02), image[0xfffe])
	assert.Equal(byte(0x60), image[0x0202])

	var count int
	for range prog.Image() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}

func TestProgram_Load(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	mem := memory.NewMemory()
	prog.Load(mem)

	cpu := NewCpu()
	stop, err := cpu.Execute(100, mem)
	assert.NoError(err)
	assert.Equal(STOP_HALT, stop)
	assert.Equal(uint8(0x84), cpu.A)
	assert.Equal(RESET_SP, cpu.SP)
}
