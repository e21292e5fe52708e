package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"omibyte.io/mpboot/clock"
)

func newTreeCmd() *cobra.Command {
	var opts inputOpts

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print every clock-tree node feeding mcu_ck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			regs, osc, err := opts.load()
			if err != nil {
				return err
			}

			tree := clock.BuildTree(regs.Decode(), osc)
			nodes, err := tree.Sorted()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, n := range nodes {
				var inputs []string
				for _, in := range tree.Inputs(n) {
					if in.Selected {
						inputs = append(inputs, colorize(colorGreen, in.Node.Name))
					} else {
						inputs = append(inputs, colorize(colorFaint, in.Node.Name))
					}
				}

				line := fmt.Sprintf("%-12s %12v", n.Name, n.Freq)
				if len(inputs) > 0 {
					line += "  <- " + strings.Join(inputs, " ")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}
