package clock

import (
	"omibyte.io/mpboot/device/stm32mp1"
)

// PLLConfig is the PLL3 state relevant to its P output.
type PLLConfig struct {
	Source     Source // HSI, HSE or CSI. NoClock stops the PLL.
	M          uint32 // effective input divider (DIVM3 + 1); 0 yields no clock
	N          uint32 // DIVN; the integer ratio is N + 1
	FracEnable bool   // FRACLE
	FracValue  uint32 // FRACV, in 1/8192 steps
	P          uint32 // DIVP; the output divides by P + 1
}

// Snapshot is the decoded clock-tree state feeding mcu_ck.
type Snapshot struct {
	Source Source // MCUSSRC
	HSIDiv uint8  // HSIDIV, divides HSI by 2^HSIDiv
	PLL    PLLConfig
	MCUDiv uint8 // MCUDIV, divides the selected clock by 2^MCUDiv
}

// Registers holds raw RCC words. The yaml names match the reference manual
// so register dumps can be pasted in as they are.
type Registers struct {
	MSSCKSELR uint32 `yaml:"MSSCKSELR"`
	HSICFGR   uint32 `yaml:"HSICFGR"`
	RCK3SELR  uint32 `yaml:"RCK3SELR"`
	PLL3CFGR1 uint32 `yaml:"PLL3CFGR1"`
	PLL3CFGR2 uint32 `yaml:"PLL3CFGR2"`
	PLL3FRACR uint32 `yaml:"PLL3FRACR"`
	MCUDIVR   uint32 `yaml:"MCUDIVR"`
}

// ReadRegisters reads the clock-tree registers one at a time. The result is
// only coherent when nothing reconfigures the clock tree during the call.
func ReadRegisters(rcc *stm32mp1.RCC_Type) Registers {
	return Registers{
		MSSCKSELR: rcc.MSSCKSELR.Get(),
		HSICFGR:   rcc.HSICFGR.Get(),
		RCK3SELR:  rcc.RCK3SELR.Get(),
		PLL3CFGR1: rcc.PLL3CFGR1.Get(),
		PLL3CFGR2: rcc.PLL3CFGR2.Get(),
		PLL3FRACR: rcc.PLL3FRACR.Get(),
		MCUDIVR:   rcc.MCUDIVR.Get(),
	}
}

func field(reg, mask uint32, pos uint) uint32 {
	return (reg & mask) >> pos
}

func (r Registers) Decode() Snapshot {
	return Snapshot{
		Source: Source(field(r.MSSCKSELR, stm32mp1.RCC_MSSCKSELR_MCUSSRC_Msk, stm32mp1.RCC_MSSCKSELR_MCUSSRC_Pos)),
		HSIDiv: uint8(field(r.HSICFGR, stm32mp1.RCC_HSICFGR_HSIDIV_Msk, stm32mp1.RCC_HSICFGR_HSIDIV_Pos)),
		PLL: PLLConfig{
			Source:     Source(field(r.RCK3SELR, stm32mp1.RCC_RCK3SELR_PLL3SRC_Msk, stm32mp1.RCC_RCK3SELR_PLL3SRC_Pos)),
			M:          field(r.PLL3CFGR1, stm32mp1.RCC_PLL3CFGR1_DIVM3_Msk, stm32mp1.RCC_PLL3CFGR1_DIVM3_Pos) + 1,
			N:          field(r.PLL3CFGR1, stm32mp1.RCC_PLL3CFGR1_DIVN_Msk, stm32mp1.RCC_PLL3CFGR1_DIVN_Pos),
			FracEnable: field(r.PLL3FRACR, stm32mp1.RCC_PLL3FRACR_FRACLE_Msk, stm32mp1.RCC_PLL3FRACR_FRACLE_Pos) != 0,
			FracValue:  field(r.PLL3FRACR, stm32mp1.RCC_PLL3FRACR_FRACV_Msk, stm32mp1.RCC_PLL3FRACR_FRACV_Pos),
			P:          field(r.PLL3CFGR2, stm32mp1.RCC_PLL3CFGR2_DIVP_Msk, stm32mp1.RCC_PLL3CFGR2_DIVP_Pos),
		},
		MCUDiv: uint8(field(r.MCUDIVR, stm32mp1.RCC_MCUDIVR_MCUDIV_Msk, stm32mp1.RCC_MCUDIVR_MCUDIV_Pos)),
	}
}

// Encode is the inverse of Decode for in-range fields. M must be at least 1.
func (s Snapshot) Encode() Registers {
	var r Registers
	r.MSSCKSELR = uint32(s.Source) << stm32mp1.RCC_MSSCKSELR_MCUSSRC_Pos & stm32mp1.RCC_MSSCKSELR_MCUSSRC_Msk
	r.HSICFGR = uint32(s.HSIDiv) << stm32mp1.RCC_HSICFGR_HSIDIV_Pos & stm32mp1.RCC_HSICFGR_HSIDIV_Msk
	r.RCK3SELR = uint32(s.PLL.Source) << stm32mp1.RCC_RCK3SELR_PLL3SRC_Pos & stm32mp1.RCC_RCK3SELR_PLL3SRC_Msk
	r.PLL3CFGR1 = (s.PLL.M-1)<<stm32mp1.RCC_PLL3CFGR1_DIVM3_Pos&stm32mp1.RCC_PLL3CFGR1_DIVM3_Msk |
		s.PLL.N<<stm32mp1.RCC_PLL3CFGR1_DIVN_Pos&stm32mp1.RCC_PLL3CFGR1_DIVN_Msk
	r.PLL3CFGR2 = s.PLL.P << stm32mp1.RCC_PLL3CFGR2_DIVP_Pos & stm32mp1.RCC_PLL3CFGR2_DIVP_Msk
	r.PLL3FRACR = s.PLL.FracValue << stm32mp1.RCC_PLL3FRACR_FRACV_Pos & stm32mp1.RCC_PLL3FRACR_FRACV_Msk
	if s.PLL.FracEnable {
		r.PLL3FRACR |= stm32mp1.RCC_PLL3FRACR_FRACLE_Msk
	}
	r.MCUDIVR = uint32(s.MCUDiv) << stm32mp1.RCC_MCUDIVR_MCUDIV_Pos & stm32mp1.RCC_MCUDIVR_MCUDIV_Msk
	return r
}

// WriteRegisters stores r into rcc. Used by tests and simulators; firmware
// never writes the clock tree through this package.
func WriteRegisters(rcc *stm32mp1.RCC_Type, r Registers) {
	rcc.MSSCKSELR.Set(r.MSSCKSELR)
	rcc.HSICFGR.Set(r.HSICFGR)
	rcc.RCK3SELR.Set(r.RCK3SELR)
	rcc.PLL3CFGR1.Set(r.PLL3CFGR1)
	rcc.PLL3CFGR2.Set(r.PLL3CFGR2)
	rcc.PLL3FRACR.Set(r.PLL3FRACR)
	rcc.MCUDIVR.Set(r.MCUDIVR)
}
