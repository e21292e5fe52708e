package bringup

import (
	"errors"
	"fmt"

	"omibyte.io/mpboot/cortexm"
)

var (
	ErrNoTargetCore         = errors.New("no target core selected")
	ErrUnknownTargetCore    = errors.New("unknown target core")
	ErrVectorTableAlignment = errors.New("vector table offset is not a multiple of 0x400")
)

// Core identifies the processor the sequence is built for.
type Core uint8

const (
	CoreNone Core = iota
	CoreCM4
)

func (c Core) String() string {
	switch c {
	case CoreCM4:
		return "cm4"
	default:
		return "none"
	}
}

// ParseCore maps a target table or build tag name to a Core.
func ParseCore(name string) (Core, error) {
	switch name {
	case "cm4":
		return CoreCM4, nil
	case "":
		return CoreNone, ErrNoTargetCore
	default:
		return CoreNone, fmt.Errorf("%w: %q", ErrUnknownTargetCore, name)
	}
}

// Config is the build-time configuration of the sequence. Firmware builds it
// from constants; host tools load it from the target table.
type Config struct {
	Core Core

	// FPU is set when the core has an FPU and the build uses it.
	FPU bool

	// RelocateVectorTable moves the vector table to MCU AHB SRAM plus
	// VectorTableOffset.
	RelocateVectorTable bool
	VectorTableOffset   uint32

	// ExtSRAM runs the external memory controller setup.
	ExtSRAM bool
}

// Validate reports the conditions the firmware rejects at compile time.
func (c Config) Validate() error {
	var errs []error
	if c.Core == CoreNone {
		errs = append(errs, ErrNoTargetCore)
	}
	if c.VectorTableOffset%cortexm.VTORAlignment != 0 {
		errs = append(errs, fmt.Errorf("%w: %#x", ErrVectorTableAlignment, c.VectorTableOffset))
	}
	return errors.Join(errs...)
}
