package recolor

import (
	"context"
	"image"
	stdcolor "image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/kdtree"
	"github.com/hupe1980/stitchgo/lookup"
	"github.com/hupe1980/stitchgo/palette"
	"github.com/hupe1980/stitchgo/testutil"
)

func testTree(t *testing.T) *kdtree.Tree {
	t.Helper()
	tree, err := kdtree.BuildRecords([]palette.Record{
		palette.NewRecord(0, 0, 0, "black", "DMC", "310"),
		palette.NewRecord(255, 255, 255, "white", "DMC", "B5200"),
		palette.NewRecord(255, 0, 0, "red", "DMC", "666"),
		palette.NewRecord(0, 0, 255, "blue", "DMC", "820"),
	})
	require.NoError(t, err)
	return tree
}

func stripes(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(3, 5, 3+w, 5+h))
	for y := 5; y < 5+h; y++ {
		for x := 3; x < 3+w; x++ {
			c := stdcolor.NRGBA{R: 10, G: 10, B: 10, A: 255}
			if x%2 == 0 {
				c = stdcolor.NRGBA{R: 240, G: 20, B: 20, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestRun(t *testing.T) {
	tree := testTree(t)
	src := stripes(17, 23)

	for _, shared := range []bool{false, true} {
		for _, workers := range []int{1, 4, 64} {
			res, err := Run(context.Background(), tree, src, func(o *Options) {
				o.Workers = workers
				o.SharedCache = shared
			})
			require.NoError(t, err)
			assert.Equal(t, src.Bounds(), res.Image.Bounds())

			for y := 5; y < 5+23; y++ {
				for x := 3; x < 3+17; x++ {
					want := stdcolor.RGBA{A: 255}
					if x%2 == 0 {
						want = stdcolor.RGBA{R: 255, A: 255}
					}
					require.Equal(t, want, res.Image.RGBAAt(x, y), "pixel %d,%d", x, y)
				}
			}

			require.Len(t, res.Used, 2)
			assert.Equal(t, "black", res.Used[0].Name)
			assert.Equal(t, "red", res.Used[1].Name)
			assert.Equal(t, int64(17*23), res.Stats.Hits+res.Stats.Misses)
			assert.Equal(t, 2, res.Stats.Colors)
		}
	}
}

func TestRun_MatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(12)
	entries := rng.Palette(120)
	tree := kdtree.Build(entries)

	src := image.NewRGBA(image.Rect(0, 0, 32, 32))
	colors := rng.ClusteredColors(32*32, rng.Colors(6), 20)
	for i, c := range colors {
		src.Set(i%32, i/32, c)
	}

	res, err := Run(context.Background(), tree, src)
	require.NoError(t, err)
	for i, c := range colors {
		want, _, _ := testutil.BruteNearest(entries, c)
		got := color.FromStd(res.Image.At(i%32, i/32))
		assert.Equal(t, want.Color.DistanceSquared(c), got.DistanceSquared(c))
	}
}

func TestRun_EmptyPalette(t *testing.T) {
	_, err := Run(context.Background(), kdtree.Build(nil), stripes(4, 4))
	assert.ErrorIs(t, err, lookup.ErrEmptyPalette)
}

func TestRun_EmptyImage(t *testing.T) {
	res, err := Run(context.Background(), testTree(t), image.NewRGBA(image.Rect(0, 0, 0, 0)))
	require.NoError(t, err)
	assert.Empty(t, res.Used)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testTree(t), stripes(8, 8))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitRows(t *testing.T) {
	bands := splitRows(image.Rect(0, 10, 5, 20), 3)
	require.Len(t, bands, 3)
	assert.Equal(t, image.Rect(0, 10, 5, 14), bands[0])
	assert.Equal(t, image.Rect(0, 14, 5, 17), bands[1])
	assert.Equal(t, image.Rect(0, 17, 5, 20), bands[2])

	assert.Len(t, splitRows(image.Rect(0, 0, 5, 2), 8), 2)
	assert.Nil(t, splitRows(image.Rect(0, 0, 0, 0), 4))
}

func TestColors(t *testing.T) {
	c := lookup.New(testTree(t))
	out, err := Colors(c, []color.Color{color.New(1, 2, 3), color.New(10, 10, 200)})
	require.NoError(t, err)
	assert.Equal(t, []color.Color{color.New(0, 0, 0), color.New(0, 0, 255)}, out)

	_, err = Colors(lookup.New(kdtree.Build(nil)), []color.Color{color.New(0, 0, 0)})
	assert.ErrorIs(t, err, lookup.ErrEmptyPalette)
}
