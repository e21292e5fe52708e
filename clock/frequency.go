package clock

import "fmt"

// Frequency is a clock rate in Hertz.
type Frequency uint32

const (
	Hz  Frequency = 1
	KHz           = 1000 * Hz
	MHz           = 1000 * KHz
)

func (f Frequency) String() string {
	switch {
	case f >= MHz && f%MHz == 0:
		return fmt.Sprintf("%d MHz", f/MHz)
	case f >= KHz && f%KHz == 0:
		return fmt.Sprintf("%d kHz", f/KHz)
	default:
		return fmt.Sprintf("%d Hz", uint32(f))
	}
}

// Oscillators holds the nominal frequencies the engine trusts for each
// oscillator. Nothing is measured; a crystal that differs from HSE gives a
// wrong result.
type Oscillators struct {
	HSI Frequency `yaml:"hsi"`
	HSE Frequency `yaml:"hse"`
	CSI Frequency `yaml:"csi"`
}

var DefaultOscillators = Oscillators{
	HSI: 64 * MHz,
	HSE: 24 * MHz,
	CSI: 4 * MHz,
}
