package STM32

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/tools/imports"

	"omibyte.io/mpboot/cmd/svd-gen/generator"
	"omibyte.io/mpboot/cmd/svd-gen/svd"
)

var (
	ErrRegisterWidth = errors.New("only 32-bit registers are supported")
	ErrArrayStride   = errors.New("register array stride must be 4 bytes")
)

type Options struct {
	// Package defaults to the lower-case device name.
	Package string

	// Peripherals and Registers select what is named. Registers left out
	// become padding so the offsets of the others still match.
	Peripherals []string
	Registers   []string

	// Volatile is the import path of the Register32 package.
	Volatile string
}

type stm32gen struct {
	device svd.DeviceElement
	opts   Options
}

func NewGenerator(device svd.DeviceElement, opts Options) generator.Generator {
	if len(opts.Package) == 0 {
		opts.Package = strings.ToLower(device.Name)
	}
	if len(opts.Volatile) == 0 {
		opts.Volatile = "omibyte.io/mpboot/volatile"
	}
	return &stm32gen{
		device: device,
		opts:   opts,
	}
}

func (s *stm32gen) Generate(out string) error {
	outputDir := filepath.Join(out, s.opts.Package)
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return err
	}

	for _, periph := range s.device.Peripherals.Elements {
		if !s.wantPeripheral(periph.Name) {
			continue
		}

		// Derived peripherals are declared next to the one they derive from,
		// unless that one is not generated
		if len(periph.DerivedFrom) > 0 {
			if s.wantPeripheral(periph.DerivedFrom) {
				continue
			}
			periph = s.device.Peripherals.Resolve(periph)
			periph.DerivedFrom = ""
		}

		fname := filepath.Join(outputDir, strings.ToLower(s.typePrefix(periph))+".go")
		src, err := s.generatePeripheral(fname, periph)
		if err != nil {
			return err
		}

		if err = os.WriteFile(fname, src, 0640); err != nil {
			return err
		}
	}
	return nil
}

func (s *stm32gen) wantPeripheral(name string) bool {
	return len(s.opts.Peripherals) == 0 || slices.Contains(s.opts.Peripherals, name)
}

func (s *stm32gen) wantRegister(name string) bool {
	return len(s.opts.Registers) == 0 || slices.Contains(s.opts.Registers, name)
}

// derived returns the peripherals sharing the layout of periph, periph first.
func (s *stm32gen) derived(periph svd.PeripheralElement) []svd.PeripheralElement {
	result := []svd.PeripheralElement{periph}
	for _, p := range s.device.Peripherals.Elements {
		if p.DerivedFrom == periph.Name {
			result = append(result, p)
		}
	}
	return result
}

// typePrefix is the group name for peripherals with instances, so GPIOA
// and its copies share GPIO_Type.
func (s *stm32gen) typePrefix(periph svd.PeripheralElement) string {
	if len(s.derived(periph)) > 1 && len(periph.Group) > 0 {
		return periph.Group
	}
	return periph.Name
}

func (s *stm32gen) generatePeripheral(fname string, periph svd.PeripheralElement) ([]byte, error) {
	var w strings.Builder
	prefix := s.typePrefix(periph)

	s.writePreamble(&w)
	fmt.Fprintln(&w, "import (")
	fmt.Fprintln(&w, `"unsafe"`)
	fmt.Fprintf(&w, "%q\n", s.opts.Volatile)
	fmt.Fprintln(&w, ")")
	fmt.Fprintln(&w)

	fmt.Fprintln(&w, "var (")
	for _, p := range s.derived(periph) {
		fmt.Fprintf(&w, "%s = (*%s_Type)(unsafe.Pointer(uintptr(%#x)))\n", p.Name, prefix, p.BaseAddress)
	}
	fmt.Fprintln(&w, ")")
	fmt.Fprintln(&w)

	registers := slices.Clone(periph.Registers.Elements)
	slices.SortStableFunc(registers, func(a, b svd.RegisterElement) bool {
		return a.AddressOffset < b.AddressOffset
	})

	if err := s.writeStruct(&w, prefix, registers); err != nil {
		return nil, fmt.Errorf("%s: %w", periph.Name, err)
	}

	for _, register := range registers {
		if s.wantRegister(registerName(register)) {
			s.writeFields(&w, prefix, register)
		}
	}

	buf, err := imports.Process(fname, []byte(w.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("error formatting %s: %v", fname, err)
	}
	return buf, nil
}

func (s *stm32gen) writePreamble(w io.Writer) {
	fmt.Fprintln(w, "// Code generated by svd-gen. DO NOT EDIT.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "package %s\n\n", s.opts.Package)
}

func (s *stm32gen) writeStruct(w io.Writer, prefix string, registers []svd.RegisterElement) error {
	fmt.Fprintf(w, "type %s_Type struct {\n", prefix)

	offset := svd.Integer(0)
	for _, register := range registers {
		if !s.wantRegister(registerName(register)) {
			continue
		}

		// Alternate views of a register share its offset
		if register.AddressOffset < offset {
			continue
		}

		if register.Width(s.device) != 32 {
			return fmt.Errorf("%w: %s", ErrRegisterWidth, register.Name)
		}

		if padding := register.AddressOffset - offset; padding > 0 {
			if padding%4 == 0 {
				fmt.Fprintf(w, "_ [%d]uint32\n", padding/4)
			} else {
				fmt.Fprintf(w, "_ [%d]byte\n", padding)
			}
		}

		size := svd.Integer(4)
		if register.Count > 1 {
			if register.Increment != 4 {
				return fmt.Errorf("%w: %s", ErrArrayStride, register.Name)
			}
			size *= register.Count
			fmt.Fprintf(w, "%s [%d]volatile.Register32 // 0x%03X\n", registerName(register), register.Count, register.AddressOffset)
		} else {
			fmt.Fprintf(w, "%s volatile.Register32 // 0x%03X\n", registerName(register), register.AddressOffset)
		}
		offset = register.AddressOffset + size
	}

	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	return nil
}

func (s *stm32gen) writeFields(w io.Writer, prefix string, register svd.RegisterElement) {
	if len(register.Fields.Elements) == 0 {
		return
	}

	fields := slices.Clone(register.Fields.Elements)
	slices.SortStableFunc(fields, func(a, b svd.FieldElement) bool {
		return a.BitOffset < b.BitOffset
	})

	name := prefix + "_" + registerName(register)
	fmt.Fprintf(w, "// %s\n", name)
	fmt.Fprintln(w, "const (")
	for _, field := range fields {
		fieldName := name + "_" + field.Name
		fmt.Fprintf(w, "%s_Pos = %d\n", fieldName, field.BitOffset)
		fmt.Fprintf(w, "%s_Msk = %#x << %s_Pos\n", fieldName, uint64(1)<<field.BitWidth-1, fieldName)
		if field.BitWidth == 1 {
			fmt.Fprintf(w, "%s = %s_Msk\n", fieldName, fieldName)
		}

		for _, value := range field.EnumeratedValues.Elements {
			if len(value.Description) > 0 {
				fmt.Fprintf(w, "// %s_%s: %s\n", fieldName, value.Name, value.Description)
			}
			fmt.Fprintf(w, "%s_%s = %#x\n", fieldName, value.Name, value.Value)
		}
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintln(w)
}

func registerName(register svd.RegisterElement) string {
	name := strings.ReplaceAll(register.Name, "[%s]", "")
	return strings.ReplaceAll(name, "%s", "")
}
