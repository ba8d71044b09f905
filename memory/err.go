package memory

import (
	"github.com/ezrec/mos6502/translate"
)

var f = translate.From

// ErrAddress is the panic value for an access outside the address space.
type ErrAddress uint32

func (ea ErrAddress) Error() string {
	return f("address 0x%x out of range", uint32(ea))
}
