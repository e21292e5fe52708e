package clock

import (
	"math"
	"testing"

	"omibyte.io/mpboot/device/stm32mp1"
)

// garbagePLL is a PLL setting that must not influence non-PLL sources.
var garbagePLL = PLLConfig{Source: HSE, M: 0, N: 0x1FF, FracEnable: true, FracValue: 0x1FFF, P: 0x7F}

func TestDeriveOscillators(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		expected Frequency
	}{
		{"hsi", Snapshot{Source: HSI, PLL: garbagePLL}, 64 * MHz},
		{"hsiDiv2", Snapshot{Source: HSI, HSIDiv: 1, PLL: garbagePLL}, 32 * MHz},
		{"hsiDiv4", Snapshot{Source: HSI, HSIDiv: 2, PLL: garbagePLL}, 16 * MHz},
		{"hsiDiv8", Snapshot{Source: HSI, HSIDiv: 3, PLL: garbagePLL}, 8 * MHz},
		{"hse", Snapshot{Source: HSE, PLL: garbagePLL}, 24 * MHz},
		{"hseIgnoresHSIDiv", Snapshot{Source: HSE, HSIDiv: 3, PLL: garbagePLL}, 24 * MHz},
		{"csi", Snapshot{Source: CSI, PLL: garbagePLL}, 4 * MHz},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Derive(test.snapshot, DefaultOscillators); got != test.expected {
				t.Errorf("Derive() = %v, expected %v", got, test.expected)
			}
		})
	}
}

func TestDerivePLL(t *testing.T) {
	tests := []struct {
		name     string
		pll      PLLConfig
		hsiDiv   uint8
		expected Frequency
	}{
		{
			"hseDivP2",
			PLLConfig{Source: HSE, M: 1, N: 24, P: 1},
			0,
			300 * MHz,
		},
		{
			"hseDivP1",
			PLLConfig{Source: HSE, M: 1, N: 24, P: 0},
			0,
			600 * MHz,
		},
		{
			"hsiDividedInput",
			PLLConfig{Source: HSI, M: 4, N: 99, P: 1},
			1,
			400 * MHz,
		},
		{
			"fractionHalf",
			PLLConfig{Source: HSE, M: 1, N: 24, FracEnable: true, FracValue: 4096, P: 1},
			0,
			306 * MHz,
		},
		{
			"fractionDisabledIgnoresValue",
			PLLConfig{Source: HSE, M: 1, N: 24, FracEnable: false, FracValue: 4096, P: 1},
			0,
			300 * MHz,
		},
		{
			// 100.0001220703125 * 4 MHz = 400000488.28 Hz, which rounds to
			// 400000480 in single precision before truncation.
			"singlePrecisionRounding",
			PLLConfig{Source: CSI, M: 1, N: 99, FracEnable: true, FracValue: 1, P: 0},
			0,
			400000480,
		},
		{
			// 64 MHz / 3 truncates to 21333333 Hz, which float32 holds as 21333332.
			"truncatedReference",
			PLLConfig{Source: HSI, M: 3, N: 29, P: 0},
			0,
			639999936,
		},
		{
			"maxFraction",
			PLLConfig{Source: HSE, M: 2, N: 49, FracEnable: true, FracValue: 8191, P: 0},
			0,
			611998528,
		},
		{
			"zeroM",
			PLLConfig{Source: HSE, M: 0, N: 24, P: 1},
			0,
			0,
		},
		{
			"noInput",
			PLLConfig{Source: NoClock, M: 1, N: 24, P: 1},
			0,
			0,
		},
		{
			"invalidInput",
			PLLConfig{Source: Source(7), M: 1, N: 24, P: 1},
			0,
			0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := Snapshot{Source: PLL3, HSIDiv: test.hsiDiv, PLL: test.pll}
			if got := Derive(s, DefaultOscillators); got != test.expected {
				t.Errorf("Derive() = %d, expected %d", got, test.expected)
			}
		})
	}
}

func TestDeriveFractionDisabledMatchesZero(t *testing.T) {
	for _, frac := range []uint32{1, 100, 4096, 8191} {
		stale := Snapshot{Source: PLL3, PLL: PLLConfig{Source: CSI, M: 1, N: 99, FracValue: frac, P: 0}}
		clean := Snapshot{Source: PLL3, PLL: PLLConfig{Source: CSI, M: 1, N: 99, FracValue: 0, P: 0}}
		if a, b := Derive(stale, DefaultOscillators), Derive(clean, DefaultOscillators); a != b {
			t.Errorf("FRACV=%d with FRACLE clear: %d, expected %d", frac, a, b)
		}
	}
}

func TestDeriveMCUDivider(t *testing.T) {
	pll := PLLConfig{Source: HSE, M: 1, N: 24, P: 1}
	for k := uint8(0); k <= 3; k++ {
		tests := []struct {
			name string
			s    Snapshot
			base Frequency
		}{
			{"hsi", Snapshot{Source: HSI, MCUDiv: k}, 64 * MHz},
			{"hse", Snapshot{Source: HSE, MCUDiv: k}, 24 * MHz},
			{"csi", Snapshot{Source: CSI, MCUDiv: k}, 4 * MHz},
			{"pll3", Snapshot{Source: PLL3, PLL: pll, MCUDiv: k}, 300 * MHz},
		}
		for _, test := range tests {
			if got, expected := Derive(test.s, DefaultOscillators), test.base>>k; got != expected {
				t.Errorf("%s MCUDIV=%d: %d, expected %d", test.name, k, got, expected)
			}
		}
	}

	// 4 MHz / 3 = 1333333 Hz; dividing by 4 truncates to 333333.
	s := Snapshot{Source: PLL3, PLL: PLLConfig{Source: CSI, M: 3, N: 0}, MCUDiv: 2}
	if got := Derive(s, DefaultOscillators); got != 333333 {
		t.Errorf("Derive() = %d, expected 333333", got)
	}
}

func TestDeriveIdempotent(t *testing.T) {
	s := Snapshot{Source: PLL3, PLL: PLLConfig{Source: HSE, M: 2, N: 49, FracEnable: true, FracValue: 8191}, MCUDiv: 1}
	first := Derive(s, DefaultOscillators)
	for i := 0; i < 10; i++ {
		if got := Derive(s, DefaultOscillators); got != first {
			t.Fatalf("call %d returned %d, first call returned %d", i, got, first)
		}
	}
}

func TestDeriveCustomOscillators(t *testing.T) {
	osc := Oscillators{HSI: 64 * MHz, HSE: 25 * MHz, CSI: 4 * MHz}
	s := Snapshot{Source: PLL3, PLL: PLLConfig{Source: HSE, M: 5, N: 39, P: 0}}
	if got := Derive(s, osc); got != 200*MHz {
		t.Errorf("Derive() = %v, expected 200 MHz", got)
	}
}

func TestDeriveOverflow(t *testing.T) {
	osc := Oscillators{HSI: 64 * MHz, HSE: 48 * MHz, CSI: 4 * MHz}
	s := Snapshot{Source: PLL3, PLL: PLLConfig{Source: HSE, M: 1, N: 0x1FF, P: 0}}
	if got := Derive(s, osc); got != Frequency(math.MaxUint32) {
		t.Errorf("Derive() = %d, expected %d", got, uint32(math.MaxUint32))
	}

	// The clamp happens before MCUDIV.
	s.MCUDiv = 1
	if got := Derive(s, osc); got != Frequency(math.MaxUint32>>1) {
		t.Errorf("Derive() = %d, expected %d", got, uint32(math.MaxUint32>>1))
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		regs     Registers
		expected Snapshot
	}{
		{
			"reset",
			Registers{},
			Snapshot{Source: HSI, PLL: PLLConfig{Source: HSI, M: 1}},
		},
		{
			"pll3",
			Registers{
				MSSCKSELR: 0x3,
				HSICFGR:   0x2,
				RCK3SELR:  0x1,
				PLL3CFGR1: 0x0001_0018, // DIVM3=1, DIVN=24
				PLL3CFGR2: 0x0101_0101, // DIVP=1
				PLL3FRACR: 0x0001_8000, // FRACLE, FRACV=4096
				MCUDIVR:   0x2,
			},
			Snapshot{
				Source: PLL3,
				HSIDiv: 2,
				PLL:    PLLConfig{Source: HSE, M: 2, N: 24, FracEnable: true, FracValue: 4096, P: 1},
				MCUDiv: 2,
			},
		},
		{
			"reservedBitsIgnored",
			Registers{
				MSSCKSELR: 0xFFFF_FFF2,
				HSICFGR:   0xFFFF_FFFC,
				RCK3SELR:  0x8000_0003,
				PLL3CFGR1: 0xFFC0_FE00,
				PLL3CFGR2: 0xFFFF_FF80,
				PLL3FRACR: 0xFFFE_0007,
				MCUDIVR:   0xFFFF_FFF0,
			},
			Snapshot{Source: CSI, PLL: PLLConfig{Source: NoClock, M: 1}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.regs.Decode(); got != test.expected {
				t.Errorf("Decode() = %+v, expected %+v", got, test.expected)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	s := Snapshot{
		Source: PLL3,
		HSIDiv: 3,
		PLL:    PLLConfig{Source: CSI, M: 64, N: 511, FracEnable: true, FracValue: 8191, P: 127},
		MCUDiv: 9,
	}
	if got := s.Encode().Decode(); got != s {
		t.Errorf("Encode().Decode() = %+v, expected %+v", got, s)
	}
}

func TestRead(t *testing.T) {
	var rcc stm32mp1.RCC_Type
	rcc.MSSCKSELR.Set(stm32mp1.RCC_MSSCKSELR_MCUSSRC_PLL3)
	rcc.RCK3SELR.Set(stm32mp1.RCC_RCK3SELR_PLL3SRC_HSE)
	rcc.PLL3CFGR1.Set(24 << stm32mp1.RCC_PLL3CFGR1_DIVN_Pos)
	rcc.PLL3CFGR2.Set(1 << stm32mp1.RCC_PLL3CFGR2_DIVP_Pos)

	if got := Read(&rcc, DefaultOscillators); got != 300*MHz {
		t.Errorf("Read() = %v, expected 300 MHz", got)
	}

	// The caller's copy goes stale until it reads again.
	rcc.MCUDIVR.Set(1)
	if got := Read(&rcc, DefaultOscillators); got != 150*MHz {
		t.Errorf("Read() after MCUDIV change = %v, expected 150 MHz", got)
	}
}

func TestFrequencyString(t *testing.T) {
	tests := []struct {
		freq     Frequency
		expected string
	}{
		{300 * MHz, "300 MHz"},
		{32768, "32768 Hz"},
		{500 * KHz, "500 kHz"},
		{400000480, "400000480 Hz"},
		{0, "0 Hz"},
	}
	for _, test := range tests {
		if got := test.freq.String(); got != test.expected {
			t.Errorf("String() = %q, expected %q", got, test.expected)
		}
	}
}
