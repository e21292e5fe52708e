package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"omibyte.io/mpboot/clock"
)

func newDeriveCmd() *cobra.Command {
	var opts inputOpts

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print the MCU core clock",
		Long:  "Decode the clock-tree registers and print the frequency of mcu_ck with the settings it was derived from.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			regs, osc, err := opts.load()
			if err != nil {
				return err
			}

			s := regs.Decode()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", clock.NodeMCU, colorize(colorBold, clock.Derive(s, osc).String()))
			printSnapshot(out, s)
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func printSnapshot(out io.Writer, s clock.Snapshot) {
	fmt.Fprintf(out, "  MCUSSRC  %v\n", s.Source)
	fmt.Fprintf(out, "  HSIDIV   /%d\n", 1<<s.HSIDiv)
	fmt.Fprintf(out, "  PLL3SRC  %v\n", pllSource(s.PLL.Source))
	fmt.Fprintf(out, "  DIVM3    /%d\n", s.PLL.M)
	fmt.Fprintf(out, "  DIVN     x%d\n", s.PLL.N+1)
	if s.PLL.FracEnable {
		fmt.Fprintf(out, "  FRACV    %d/8192\n", s.PLL.FracValue)
	} else {
		fmt.Fprintf(out, "  FRACV    %s\n", colorize(colorFaint, "disabled"))
	}
	fmt.Fprintf(out, "  DIVP     /%d\n", s.PLL.P+1)
	fmt.Fprintf(out, "  MCUDIV   /%d\n", 1<<s.MCUDiv)
}

func pllSource(s clock.Source) string {
	if s == clock.NoClock {
		return "none"
	}
	return s.String()
}
