// Package bringup is the reset-time initialization of the Cortex-M4
// companion core. It runs before anything that depends on the clock.
package bringup

import (
	"omibyte.io/mpboot/cortexm"
	"omibyte.io/mpboot/device/stm32mp1"
)

// Hardware is the set of register blocks the sequence writes.
type Hardware struct {
	SCS  *cortexm.SystemControlSpace
	EXTI *stm32mp1.EXTI_Core_Type
}

// Default returns the memory-mapped blocks of the running core.
func Default() Hardware {
	return Hardware{
		SCS:  cortexm.SCS,
		EXTI: stm32mp1.EXTI_C2,
	}
}

// Initialize sets up the FPU, the vector table and the companion-core
// interrupt masks. It must run once, with interrupts disabled, before any
// other firmware code. The sequence cannot fail; cfg is expected to have
// been checked at build time.
func Initialize(cfg Config, hw Hardware) {
	if cfg.FPU {
		// CP10 and CP11 full access
		hw.SCS.CPACR.EnableFPU()
	}

	if cfg.RelocateVectorTable {
		hw.SCS.VTOR.SetTBLOFF(stm32mp1.MCUAHBSRAM | cfg.VectorTableOffset)
	}

	// Mask every interrupt and event, whatever a bootloader left behind
	for _, reg := range hw.EXTI.Masks() {
		reg.Set(0)
	}

	if cfg.ExtSRAM {
		initExtMemCtl()
	}
}

// initExtMemCtl would configure the external memory controller for an SRAM
// used as data memory. No board needs it yet, so it does nothing.
func initExtMemCtl() {
}
