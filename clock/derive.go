// Package clock derives the Cortex-M4 core clock (mcu_ck) of an STM32MP1
// from the RCC clock-tree registers.
//
// The result is computed from the nominal oscillator frequencies, not from
// a measurement. Callers own the returned value and must derive it again
// after every clock-tree reconfiguration; nothing here notices a stale copy.
package clock

import (
	"math"

	"omibyte.io/mpboot/device/stm32mp1"
)

// fracScale is the weight of one FRACV step: the fractional ratio is
// FRACV / 2^13.
const fracScale = 8192

// maxFrequency is 2^32 as a float32.
const maxFrequency float32 = 1 << 32

// Derive returns mcu_ck for the clock tree described by s.
//
// Degenerate PLL settings (M == 0 or no PLL input) yield 0 rather than a
// fault. Callers that need a running clock must check for it.
func Derive(s Snapshot, osc Oscillators) Frequency {
	var freq Frequency
	switch s.Source {
	case HSI, HSE, CSI:
		freq = sourceFrequency(s.Source, s.HSIDiv, osc)
	case PLL3:
		freq = pllOutput(s.PLL, s.HSIDiv, osc)
	default:
		// Unreachable with a 2-bit field.
		freq = 0
	}

	// MCUDIV sits after the system clock mux and applies to every source.
	return freq >> s.MCUDiv
}

// Read derives mcu_ck from the live registers of rcc.
func Read(rcc *stm32mp1.RCC_Type, osc Oscillators) Frequency {
	return Derive(ReadRegisters(rcc).Decode(), osc)
}

// sourceFrequency returns the frequency of an oscillator input. It never
// resolves PLL3, so the PLL cannot feed itself.
func sourceFrequency(src Source, hsiDiv uint8, osc Oscillators) Frequency {
	switch src {
	case HSI:
		return osc.HSI >> hsiDiv
	case HSE:
		return osc.HSE
	case CSI:
		return osc.CSI
	default:
		return 0
	}
}

// pllReference returns the PLL3 input after the M divider, truncated to Hz.
func pllReference(pll PLLConfig, hsiDiv uint8, osc Oscillators) Frequency {
	if pll.M == 0 {
		return 0
	}
	return sourceFrequency(pll.Source, hsiDiv, osc) / Frequency(pll.M)
}

// pllRatio returns the feedback ratio N+1+FRACV/8192. FRACV only counts
// while FRACLE is set.
func pllRatio(pll PLLConfig) float32 {
	var frac uint32
	if pll.FracEnable {
		frac = pll.FracValue
	}
	fraction := float32(frac) / float32(fracScale)
	return float32(float32(pll.N+1) + fraction)
}

// pllVCO returns the VCO frequency in single precision.
func pllVCO(pll PLLConfig, hsiDiv uint8, osc Oscillators) float32 {
	ref := pllReference(pll, hsiDiv, osc)
	return float32(pllRatio(pll) * float32(ref))
}

// pllOutput returns the PLL3 P output. All float32 steps are explicitly
// rounded so the result matches the single-precision reference on any
// platform; the final conversion truncates.
func pllOutput(pll PLLConfig, hsiDiv uint8, osc Oscillators) Frequency {
	if pll.M == 0 {
		return 0
	}
	vco := pllVCO(pll, hsiDiv, osc)
	out := float32(vco / float32(pll.P+1))
	if out >= maxFrequency {
		// Out of the VCO's range; keep the conversion defined.
		return Frequency(math.MaxUint32)
	}
	return Frequency(out)
}
