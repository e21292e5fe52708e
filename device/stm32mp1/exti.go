package stm32mp1

import (
	"unsafe"

	"omibyte.io/mpboot/volatile"
)

var (
	// EXTI_C2 is the CPU2 (Cortex-M4) view of the interrupt and event masks.
	EXTI_C2 = (*EXTI_Core_Type)(unsafe.Pointer(uintptr(EXTIBase + 0xC0)))
)

type EXTI_Core_Type struct {
	IMR1 volatile.Register32 // 0x00
	EMR1 volatile.Register32 // 0x04
	_    [2]uint32
	IMR2 volatile.Register32 // 0x10
	EMR2 volatile.Register32 // 0x14
	_    [2]uint32
	IMR3 volatile.Register32 // 0x20
	EMR3 volatile.Register32 // 0x24
}

// Masks returns every interrupt and event mask register of the bank.
func (e *EXTI_Core_Type) Masks() []*volatile.Register32 {
	return []*volatile.Register32{
		&e.IMR1, &e.IMR2, &e.IMR3,
		&e.EMR1, &e.EMR2, &e.EMR3,
	}
}
