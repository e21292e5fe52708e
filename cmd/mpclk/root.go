package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"omibyte.io/mpboot/clock"
	"omibyte.io/mpboot/internal/devmem"
	"omibyte.io/mpboot/targets"
)

var (
	ErrNoInput       = errors.New("one of --regs or --devmem is required")
	ErrMultipleInput = errors.New("--regs and --devmem are mutually exclusive")
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
	colorGreen = "\x1b[32m"
	colorFaint = "\x1b[2m"
)

type inputOpts struct {
	chip   string
	regs   string
	devmem string
	hse    uint32
}

func newRootCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:           "mpclk",
		Short:         "Inspect the STM32MP1 MCU clock tree",
		Long:          "Derive the Cortex-M4 core clock of an STM32MP1 from RCC register contents, read from a dump or live through a memory device.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetOut(output(cmd.OutOrStdout(), noColor))
		},
	}
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newTargetsCmd(), newDeriveCmd(), newTreeCmd())
	return cmd
}

// output wraps w so escape sequences render on every terminal, or are
// stripped when color is off or w is not a terminal file.
func output(w io.Writer, noColor bool) io.Writer {
	if f, ok := w.(*os.File); ok && !noColor && isatty.IsTerminal(f.Fd()) {
		return colorable.NewColorable(f)
	}
	return colorable.NewNonColorable(w)
}

func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.chip, "chip", "c", "stm32mp157c", "chip the registers belong to")
	cmd.Flags().StringVarP(&o.regs, "regs", "r", "", "YAML register dump")
	cmd.Flags().StringVar(&o.devmem, "devmem", "", "memory device to read the live registers from")
	cmd.Flags().Lookup("devmem").NoOptDefVal = devmem.DefaultPath
	cmd.Flags().Uint32Var(&o.hse, "hse", 0, "HSE crystal frequency in Hz, overrides the target table")
}

// load returns the register contents and the oscillator frequencies to
// derive from.
func (o *inputOpts) load() (clock.Registers, clock.Oscillators, error) {
	target, err := targets.All().FindByChip(o.chip)
	if err != nil {
		return clock.Registers{}, clock.Oscillators{}, err
	}

	osc := target.Oscillators
	if o.hse != 0 {
		osc.HSE = clock.Frequency(o.hse)
	}

	var regs clock.Registers
	switch {
	case o.regs != "" && o.devmem != "":
		return regs, osc, ErrMultipleInput
	case o.regs != "":
		regs, err = loadDump(o.regs)
	case o.devmem != "":
		regs, err = readDevice(o.devmem, uintptr(target.Registers["rcc"]))
	default:
		err = ErrNoInput
	}
	return regs, osc, err
}

func loadDump(path string) (clock.Registers, error) {
	f, err := os.Open(path)
	if err != nil {
		return clock.Registers{}, err
	}
	defer f.Close()

	var regs clock.Registers
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&regs); err != nil {
		return clock.Registers{}, fmt.Errorf("%s: %w", path, err)
	}
	return regs, nil
}

func readDevice(path string, base uintptr) (clock.Registers, error) {
	var region *devmem.Region
	var err error
	if base == 0 {
		region, err = devmem.OpenRCC(path)
	} else {
		region, err = devmem.Open(path, base, devmem.RCCSize)
	}
	if err != nil {
		return clock.Registers{}, err
	}
	defer region.Close()

	rcc, err := region.RCC()
	if err != nil {
		return clock.Registers{}, err
	}
	return clock.ReadRegisters(rcc), nil
}

func colorize(color, s string) string {
	return color + s + colorReset
}
