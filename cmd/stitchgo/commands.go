package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stitchgo"
)

// --- Global Command Variables ---
var (
	palettePath string
	brand       string
	verbose     bool
	jsonLogs    bool

	rootCmd = &cobra.Command{
		Use:   "stitchgo",
		Short: "Map images onto a thread colour palette",
		Long: `stitchgo builds a colour index from a thread palette catalog and uses it
to turn images into cross-stitch patterns.`,
		SilenceUsage: true,
	}

	patternCmd = &cobra.Command{
		Use:   "pattern [image]",
		Short: "Create a pattern image from a picture",
		Args:  cobra.ExactArgs(1),
		RunE:  runPattern, // Defined in cmd_pattern.go
	}

	nearestCmd = &cobra.Command{
		Use:   "nearest r g b | nearest #rrggbb",
		Short: "Print the palette colours nearest to a colour",
		Args:  cobra.RangeArgs(1, 3),
		RunE:  runNearest, // Defined in cmd_nearest.go
	}

	treeCmd = &cobra.Command{
		Use:   "tree",
		Short: "Print the palette index level by level",
		Args:  cobra.NoArgs,
		RunE:  runTree, // Defined in cmd_tree.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&palettePath, "palette", "p", "", "palette catalog (.json, .json.zst, .json.lz4)")
	rootCmd.PersistentFlags().StringVarP(&brand, "brand", "b", "", "only use colours of this brand")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "log as JSON")

	patternCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML job file")
	patternCmd.Flags().StringVarP(&outputPath, "output", "o", "pattern.png", "output PNG path")
	patternCmd.Flags().StringVar(&reportPath, "report", "", "write a JSON colour report to this path")
	patternCmd.Flags().IntVarP(&width, "width", "w", 0, "pattern width in stitches (0 keeps the image width)")
	patternCmd.Flags().IntVarP(&maxColors, "max-colors", "m", 200, "maximum colours before palette matching")
	patternCmd.Flags().IntVar(&workers, "workers", 0, "recolor goroutines (0 uses GOMAXPROCS)")
	patternCmd.Flags().Int64Var(&seed, "seed", 1, "k-means seed")
	patternCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this path")

	nearestCmd.Flags().IntVarP(&neighbors, "k", "k", 1, "number of palette colours to print")

	rootCmd.AddCommand(patternCmd, nearestCmd, treeCmd)
}

func newLogger() *stitchgo.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if jsonLogs {
		return stitchgo.NewJSONLogger(level)
	}
	return stitchgo.NewTextLogger(level)
}

func openMatcher(path, brand string, optFns ...stitchgo.Option) (*stitchgo.Matcher, error) {
	if path == "" {
		return nil, errMissingPalette
	}
	opts := append([]stitchgo.Option{
		stitchgo.WithBrand(brand),
		stitchgo.WithLogger(newLogger()),
	}, optFns...)
	return stitchgo.Open(path, opts...)
}
