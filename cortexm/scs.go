package cortexm

import (
	"unsafe"

	"omibyte.io/mpboot/volatile"
)

var (
	SCS = (*SystemControlSpace)(unsafe.Pointer(uintptr(0xE000ED00)))
)

type (
	SystemControlSpace struct {
		CPUID SCS_CPUID
		ICSR  SCS_ICSR
		VTOR  SCS_VTOR
		AIRCR SCS_AIRCR
		SCR   SCS_SCR
		CCR   SCS_CCR
		SHPR1 SCS_SHPR1
		SHPR2 SCS_SHPR2
		SHPR3 SCS_SHPR3
		SHCSR SCS_SHCSR
		CFSR  SCS_CFSR
		HFSR  SCS_HFSR
		DFSR  SCS_DFSR
		MMFAR SCS_MMFAR
		BFAR  SCS_BFAR
		AFSR  SCS_AFSR
		_     [18]uint32
		CPACR SCS_CPACR
	}

	SCS_CPUID uint32
	SCS_ICSR  uint32
	SCS_VTOR  uint32
	SCS_AIRCR uint32
	SCS_SCR   uint32
	SCS_CCR   uint32
	SCS_SHPR1 uint32
	SCS_SHPR2 uint32
	SCS_SHPR3 uint32
	SCS_SHCSR uint32
	SCS_CFSR  uint32
	SCS_HFSR  uint32
	SCS_DFSR  uint32
	SCS_MMFAR uint32
	SCS_BFAR  uint32
	SCS_AFSR  uint32
	SCS_CPACR uint32
)

// Coprocessor access levels for CPACR.CPn.
const (
	CPAccessDenied     = 0x0
	CPAccessPrivileged = 0x1
	CPAccessFull       = 0x3
)

// VTORAlignment is the minimum alignment of a relocated vector table on the
// Cortex-M4 with up to 240 external interrupts.
const VTORAlignment = 0x400

func (reg *SCS_CPACR) GetCP(n int) uint32 {
	v := volatile.LoadUint32((*uint32)(reg))
	return (v >> (uint(n) * 2)) & 0x3
}

// SetCP sets the access level of coprocessor n. The other fields are kept.
func (reg *SCS_CPACR) SetCP(n int, access uint32) {
	shift := uint(n) * 2
	value := volatile.LoadUint32((*uint32)(reg))
	value &= ^(0x3 << shift)
	value |= (access & 0x3) << shift
	volatile.StoreUint32((*uint32)(reg), value)
}

// EnableFPU grants full access to CP10 and CP11, the floating-point unit.
func (reg *SCS_CPACR) EnableFPU() {
	value := volatile.LoadUint32((*uint32)(reg))
	value |= (CPAccessFull << (10 * 2)) | (CPAccessFull << (11 * 2))
	volatile.StoreUint32((*uint32)(reg), value)
}

func (reg *SCS_VTOR) GetTBLOFF() uint32 {
	return volatile.LoadUint32((*uint32)(reg))
}

func (reg *SCS_VTOR) SetTBLOFF(base uint32) {
	volatile.StoreUint32((*uint32)(reg), base)
}
