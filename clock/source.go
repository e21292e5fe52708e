package clock

// Source is the value of a clock multiplexer field.
type Source uint8

const (
	HSI Source = iota
	HSE
	CSI
	PLL3
)

// The PLL3 source mux reuses the PLL3 encoding for "no clock".
const NoClock = PLL3

func (s Source) String() string {
	switch s {
	case HSI:
		return "HSI"
	case HSE:
		return "HSE"
	case CSI:
		return "CSI"
	case PLL3:
		return "PLL3"
	default:
		return "invalid"
	}
}
