// Package stm32mp1 describes the STM32MP15x peripherals used by the
// Cortex-M4 companion core. Only the registers this firmware touches are
// named; the rest of each block is padding so field offsets match RM0436.
package stm32mp1

import (
	"unsafe"

	"omibyte.io/mpboot/volatile"
)

const (
	RCCBase  = 0x50000000
	EXTIBase = 0x5000D000
	GPIOBase = 0x50002000

	// MCUAHBSRAM is the M4 alias of SRAM1, used as the relocated vector table base.
	MCUAHBSRAM = 0x10000000
)

var (
	RCC = (*RCC_Type)(unsafe.Pointer(uintptr(RCCBase)))
)

type RCC_Type struct {
	_             [6]uint32
	HSICFGR       volatile.Register32 // 0x018
	CSICFGR       volatile.Register32 // 0x01C
	_             [10]uint32
	MSSCKSELR     volatile.Register32 // 0x048
	_             [501]uint32
	RCK3SELR      volatile.Register32 // 0x820
	RCK4SELR      volatile.Register32 // 0x824
	_             [2]uint32
	MCUDIVR       volatile.Register32 // 0x830
	_             [19]uint32
	PLL3CR        volatile.Register32 // 0x880
	PLL3CFGR1     volatile.Register32 // 0x884
	PLL3CFGR2     volatile.Register32 // 0x888
	PLL3FRACR     volatile.Register32 // 0x88C
	PLL3CSGR      volatile.Register32 // 0x890
	_             [129]uint32
	MC_AHB3ENSETR volatile.Register32 // 0xA98
	MC_AHB3ENCLRR volatile.Register32 // 0xA9C
	_             [2]uint32
	MC_AHB4ENSETR volatile.Register32 // 0xAA8
	MC_AHB4ENCLRR volatile.Register32 // 0xAAC
}

// RCC_HSICFGR
const (
	RCC_HSICFGR_HSIDIV_Pos = 0
	RCC_HSICFGR_HSIDIV_Msk = 0x3 << RCC_HSICFGR_HSIDIV_Pos
)

// RCC_MSSCKSELR
const (
	RCC_MSSCKSELR_MCUSSRC_Pos = 0
	RCC_MSSCKSELR_MCUSSRC_Msk = 0x3 << RCC_MSSCKSELR_MCUSSRC_Pos

	RCC_MSSCKSELR_MCUSSRC_HSI  = 0x0
	RCC_MSSCKSELR_MCUSSRC_HSE  = 0x1
	RCC_MSSCKSELR_MCUSSRC_CSI  = 0x2
	RCC_MSSCKSELR_MCUSSRC_PLL3 = 0x3
)

// RCC_RCK3SELR
const (
	RCC_RCK3SELR_PLL3SRC_Pos = 0
	RCC_RCK3SELR_PLL3SRC_Msk = 0x3 << RCC_RCK3SELR_PLL3SRC_Pos

	RCC_RCK3SELR_PLL3SRC_HSI  = 0x0
	RCC_RCK3SELR_PLL3SRC_HSE  = 0x1
	RCC_RCK3SELR_PLL3SRC_CSI  = 0x2
	RCC_RCK3SELR_PLL3SRC_NONE = 0x3
)

// RCC_MCUDIVR
const (
	RCC_MCUDIVR_MCUDIV_Pos = 0
	RCC_MCUDIVR_MCUDIV_Msk = 0xF << RCC_MCUDIVR_MCUDIV_Pos
)

// RCC_PLL3CFGR1
const (
	RCC_PLL3CFGR1_DIVN_Pos  = 0
	RCC_PLL3CFGR1_DIVN_Msk  = 0x1FF << RCC_PLL3CFGR1_DIVN_Pos
	RCC_PLL3CFGR1_DIVM3_Pos = 16
	RCC_PLL3CFGR1_DIVM3_Msk = 0x3F << RCC_PLL3CFGR1_DIVM3_Pos
)

// RCC_PLL3CFGR2
const (
	RCC_PLL3CFGR2_DIVP_Pos = 0
	RCC_PLL3CFGR2_DIVP_Msk = 0x7F << RCC_PLL3CFGR2_DIVP_Pos
	RCC_PLL3CFGR2_DIVQ_Pos = 8
	RCC_PLL3CFGR2_DIVQ_Msk = 0x7F << RCC_PLL3CFGR2_DIVQ_Pos
	RCC_PLL3CFGR2_DIVR_Pos = 16
	RCC_PLL3CFGR2_DIVR_Msk = 0x7F << RCC_PLL3CFGR2_DIVR_Pos
)

// RCC_PLL3FRACR
const (
	RCC_PLL3FRACR_FRACV_Pos  = 3
	RCC_PLL3FRACR_FRACV_Msk  = 0x1FFF << RCC_PLL3FRACR_FRACV_Pos
	RCC_PLL3FRACR_FRACLE_Pos = 16
	RCC_PLL3FRACR_FRACLE_Msk = 0x1 << RCC_PLL3FRACR_FRACLE_Pos
)

// RCC_MC_AHB3ENSETR / RCC_MC_AHB4ENSETR
const (
	RCC_MC_AHB3ENSETR_HSEMEN  = 1 << 11
	RCC_MC_AHB4ENSETR_GPIOAEN = 1 << 0
	RCC_MC_AHB4ENSETR_GPIOHEN = 1 << 7
)
