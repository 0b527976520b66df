package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stitchgo/color"
)

var neighbors int

func parseColorArgs(args []string) (color.Color, error) {
	switch len(args) {
	case 1:
		return color.ParseHex(args[0])
	case 3:
		var v [3]int
		for i, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return color.Color{}, fmt.Errorf("channel %q: %w", a, err)
			}
			v[i] = n
		}
		return color.New(v[0], v[1], v[2]), nil
	default:
		return color.Color{}, fmt.Errorf("expected r g b or #rrggbb, got %d arguments", len(args))
	}
}

func runNearest(cmd *cobra.Command, args []string) error {
	q, err := parseColorArgs(args)
	if err != nil {
		return err
	}

	m, err := openMatcher(palettePath, brand)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	found := m.Tree().NearestK(q, neighbors)
	if len(found) == 0 {
		fmt.Fprintln(out, "palette is empty")
		return nil
	}
	for _, n := range found {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%d\n", n.Entry.Brand, n.Entry.Code, n.Entry.Name, n.Entry.Color.Hex(), n.Distance)
	}
	return nil
}
