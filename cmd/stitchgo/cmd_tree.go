package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stitchgo/color"
)

func runTree(cmd *cobra.Command, args []string) error {
	m, err := openMatcher(palettePath, brand)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, lvl := range m.Tree().LevelOrder() {
		fmt.Fprintf(out, "depth %d (split %s):\n", lvl.Depth, color.AxisOf(lvl.Depth))
		for _, e := range lvl.Entries {
			fmt.Fprintf(out, "  %s\n", e)
		}
	}
	return nil
}
