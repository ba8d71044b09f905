package emulator

import (
	"github.com/ezrec/mos6502/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo  int    // Source line, or 0 if the address was not assembled.
	Address uint16 // Address of the failing instruction.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("address 0x%04x %v", err.Address, err.Err)
	}
	return f("line %d (0x%04x) %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
