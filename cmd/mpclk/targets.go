package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"omibyte.io/mpboot/targets"
)

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the known targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, target := range targets.All() {
				cfg, err := target.Config()
				if err != nil {
					return err
				}

				fmt.Fprintln(out, colorize(colorBold, target.Series))
				fmt.Fprintf(out, "  core         %s (fpu: %t)\n", cfg.Core, cfg.FPU)
				if cfg.RelocateVectorTable {
					fmt.Fprintf(out, "  vector table MCU SRAM + %#x\n", cfg.VectorTableOffset)
				} else {
					fmt.Fprintln(out, "  vector table boot address")
				}
				fmt.Fprintf(out, "  oscillators  HSI %v, HSE %v, CSI %v\n",
					target.Oscillators.HSI, target.Oscillators.HSE, target.Oscillators.CSI)
				for _, block := range target.RegisterBlocks() {
					fmt.Fprintf(out, "  %-12s %#08x\n", block, target.Registers[block])
				}
				fmt.Fprintf(out, "  chips        %s\n", strings.Join(target.Chips, ", "))
			}
			return nil
		},
	}
}
