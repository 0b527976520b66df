package kmeans

import (
	"context"
	"errors"
	"image"
	stdcolor "image/color"
	"math/rand"
	"slices"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/kdtree"
	"github.com/hupe1980/stitchgo/lookup"
	"github.com/hupe1980/stitchgo/palette"
)

// ErrInvalidK is returned when k is not positive.
var ErrInvalidK = errors.New("kmeans: k must be positive")

// Options configures training.
type Options struct {
	// MaxIter bounds the number of Lloyd iterations.
	MaxIter int
	// Seed drives centroid initialization.
	Seed int64
}

// DefaultOptions contains the default training options.
var DefaultOptions = Options{
	MaxIter: 20,
	Seed:    1,
}

// Histogram counts the pixels of each distinct colour in img. Colours are
// returned in first-seen (row-major) order with their counts.
func Histogram(img image.Image) ([]color.Color, []int) {
	b := img.Bounds()
	index := make(map[color.Color]int)
	var colors []color.Color
	var counts []int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.FromStd(img.At(x, y))
			i, ok := index[c]
			if !ok {
				i = len(colors)
				index[c] = i
				colors = append(colors, c)
				counts = append(counts, 0)
			}
			counts[i]++
		}
	}
	return colors, counts
}

// TrainKMeans trains up to k centroids from weighted points using Lloyd's
// algorithm. If there are no more than k points they are returned as is.
func TrainKMeans(ctx context.Context, points []color.Color, weights []int, k int, optFns ...func(o *Options)) ([]color.Color, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	n := len(points)
	if n <= k {
		return slices.Clone(points), nil
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	// Initialize centroids randomly from data points
	centroids := make([]color.Color, k)
	perm := rng.Perm(n)
	for i := range k {
		centroids[i] = points[perm[i]]
	}

	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}
	sums := make([][3]int, k)
	counts := make([]int, k)

	for iter := 0; iter < opts.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Assignment step
		tree := kdtree.Build(asEntries(centroids))
		changed := false
		for i, p := range points {
			e, _ := tree.Nearest(p)
			if assignments[i] != int(e.ID) {
				assignments[i] = int(e.ID)
				changed = true
			}
		}
		if !changed {
			break
		}

		// Update step
		clear(sums)
		clear(counts)
		for i, p := range points {
			c := assignments[i]
			w := weights[i]
			sums[c][0] += p.R * w
			sums[c][1] += p.G * w
			sums[c][2] += p.B * w
			counts[c] += w
		}

		for j := range k {
			if counts[j] > 0 {
				centroids[j] = color.New(
					roundDiv(sums[j][0], counts[j]),
					roundDiv(sums[j][1], counts[j]),
					roundDiv(sums[j][2], counts[j]),
				)
			} else {
				// Re-seed empty cluster with a random point
				centroids[j] = points[rng.Intn(n)]
			}
		}
	}

	return dedupe(centroids), nil
}

// Reduce returns a copy of img using at most maxColors distinct colours,
// together with the palette it was reduced to.
func Reduce(ctx context.Context, img image.Image, maxColors int, optFns ...func(o *Options)) (*image.RGBA, []color.Color, error) {
	points, weights := Histogram(img)
	centroids, err := TrainKMeans(ctx, points, weights, maxColors, optFns...)
	if err != nil {
		return nil, nil, err
	}

	b := img.Bounds()
	out := image.NewRGBA(b)
	if len(centroids) == 0 {
		return out, nil, nil
	}

	cache := lookup.New(kdtree.Build(asEntries(centroids)))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			e, err := cache.Lookup(color.FromStd(img.At(x, y)))
			if err != nil {
				return nil, nil, err
			}
			out.SetRGBA(x, y, rgba(e.Color))
		}
	}
	return out, centroids, nil
}

func asEntries(colors []color.Color) []palette.Entry {
	out := make([]palette.Entry, len(colors))
	for i, c := range colors {
		out[i] = palette.Entry{ID: uint32(i), Color: c}
	}
	return out
}

func dedupe(colors []color.Color) []color.Color {
	seen := make(map[color.Color]struct{}, len(colors))
	out := colors[:0]
	for _, c := range colors {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func roundDiv(a, b int) int {
	return (a + b/2) / b
}

func rgba(c color.Color) stdcolor.RGBA {
	n := c.NRGBA()
	return stdcolor.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}
}
