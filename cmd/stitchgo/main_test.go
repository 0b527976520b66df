package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stitchgo/color"
)

const testCatalog = `{"colors":[
	{"name":"Black","brand":"DMC","code":"310","rgb":{"r":0,"g":0,"b":0}},
	{"name":"White","brand":"DMC","code":"B5200","rgb":{"r":255,"g":255,"b":255}},
	{"name":"Red","brand":"DMC","code":"666","rgb":{"r":255,"g":0,"b":0}}
]}`

func writeCatalog(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "dmc.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestNearestCommand(t *testing.T) {
	catalog := writeCatalog(t, t.TempDir())

	out := execute(t, "nearest", "--palette", catalog, "-k", "1", "10", "10", "10")
	assert.Equal(t, "DMC\t310\tBlack\t#000000\t300\n", out)

	out = execute(t, "nearest", "--palette", catalog, "-k", "2", "#f00")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Red")
}

func TestTreeCommand(t *testing.T) {
	catalog := writeCatalog(t, t.TempDir())

	out := execute(t, "tree", "--palette", catalog)
	assert.Contains(t, out, "depth 0 (split r):\n  White (255, 255, 255)\n")
	assert.Contains(t, out, "depth 1 (split g):")
}

func TestPatternCommand(t *testing.T) {
	dir := t.TempDir()
	catalog := writeCatalog(t, dir)

	src := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for i := range 200 {
		c := color.New(15, 15, 15)
		if i%20 >= 10 {
			c = color.New(235, 10, 10)
		}
		src.Set(i%20, i/20, c)
	}
	in := filepath.Join(dir, "in.png")
	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	job := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(job, []byte(
		"palette: "+catalog+"\n"+
			"width: 10\n"+
			"max_colors: 8\n"+
			"output: "+filepath.Join(dir, "from-config.png")+"\n"+
			"report: "+filepath.Join(dir, "report.json")+"\n"), 0o600))

	out := filepath.Join(dir, "out.png")
	metrics := filepath.Join(dir, "metrics.prom")
	stdout := execute(t, "pattern", "--palette", catalog, "--config", job, "--output", out, "--metrics-file", metrics, in)
	assert.Equal(t, "colors used: 2\n", stdout)

	got, err := os.Open(out)
	require.NoError(t, err)
	defer got.Close()
	img, err := png.Decode(got)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 5), img.Bounds())

	report, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)
	assert.Contains(t, string(report), `"colors_used":2`)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "stitchgo_recolored_pixels_total 50")
	assert.Contains(t, string(prom), "stitchgo_palette_entries 3")

	_, err = os.Stat(filepath.Join(dir, "from-config.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestJobConfig_Validate(t *testing.T) {
	cfg := JobConfig{Palette: "p.json", MaxColors: 10, Output: "o.png"}
	require.NoError(t, cfg.Validate())

	cfg.MaxColors = 0
	assert.Error(t, cfg.Validate())

	cfg = JobConfig{MaxColors: 10, Output: "o.png"}
	assert.Error(t, cfg.Validate())

	cfg = JobConfig{Palette: "p.json", MaxColors: 1, Output: "o.png", Width: -1}
	assert.Error(t, cfg.Validate())
}

func TestParseColorArgs(t *testing.T) {
	c, err := parseColorArgs([]string{"1", "2", "3"})
	require.NoError(t, err)
	assert.Equal(t, color.New(1, 2, 3), c)

	c, err = parseColorArgs([]string{"#0a0b0c"})
	require.NoError(t, err)
	assert.Equal(t, color.New(10, 11, 12), c)

	_, err = parseColorArgs([]string{"1", "x", "3"})
	assert.Error(t, err)

	_, err = parseColorArgs([]string{"1", "2"})
	assert.Error(t, err)
}
