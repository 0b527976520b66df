package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/stitchgo"
	"github.com/hupe1980/stitchgo/internal/imageio"
)

var (
	configPath  string
	outputPath  string
	reportPath  string
	width       int
	maxColors   int
	workers     int
	seed        int64
	metricsFile string
)

// resolveJob merges the optional job file with explicitly set flags.
func resolveJob(cmd *cobra.Command) (JobConfig, error) {
	cfg := JobConfig{
		Palette:     palettePath,
		Brand:       brand,
		Width:       width,
		MaxColors:   maxColors,
		Workers:     workers,
		Seed:        seed,
		Output:      outputPath,
		Report:      reportPath,
		MetricsFile: metricsFile,
	}
	if configPath == "" {
		return cfg, cfg.Validate()
	}

	fileCfg := cfg
	if err := loadConfig(configPath, &fileCfg); err != nil {
		return JobConfig{}, err
	}

	flags := cmd.Flags()
	override := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	override("palette", func() { fileCfg.Palette = palettePath })
	override("brand", func() { fileCfg.Brand = brand })
	override("width", func() { fileCfg.Width = width })
	override("max-colors", func() { fileCfg.MaxColors = maxColors })
	override("workers", func() { fileCfg.Workers = workers })
	override("seed", func() { fileCfg.Seed = seed })
	override("output", func() { fileCfg.Output = outputPath })
	override("report", func() { fileCfg.Report = reportPath })
	override("metrics-file", func() { fileCfg.MetricsFile = metricsFile })

	return fileCfg, fileCfg.Validate()
}

func runPattern(cmd *cobra.Command, args []string) error {
	cfg, err := resolveJob(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	collector := newPrometheusCollector()
	m, err := openMatcher(cfg.Palette, cfg.Brand,
		stitchgo.WithWorkers(cfg.Workers),
		stitchgo.WithMetricsCollector(collector),
		stitchgo.WithLogger(newLogger().WithJob(args[0])),
	)
	if err != nil {
		return err
	}

	img, _, err := imageio.Open(args[0])
	if err != nil {
		return err
	}

	p, err := m.CreatePattern(ctx, img,
		stitchgo.WithWidth(cfg.Width),
		stitchgo.WithMaxColors(cfg.MaxColors),
		stitchgo.WithSeed(cfg.Seed),
	)
	if err != nil {
		return err
	}

	if err := imageio.SavePNG(cfg.Output, p.Image); err != nil {
		return err
	}
	if cfg.Report != "" {
		if err := writeReport(cfg.Report, p); err != nil {
			return err
		}
	}
	if cfg.MetricsFile != "" {
		if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "colors used:", len(p.Used))
	return nil
}

func writeReport(path string, p *stitchgo.Pattern) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := p.WriteReport(w, nil); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
