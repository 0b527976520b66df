// Package recolor maps every pixel of an image onto its nearest palette entry.
package recolor

import (
	"context"
	"image"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/lookup"
	"github.com/hupe1980/stitchgo/palette"
)

// Options contains configuration options for a recolor job.
type Options struct {
	// Workers is the number of goroutines processing row bands.
	// Values <= 0 use runtime.GOMAXPROCS(0).
	Workers int

	// SharedCache makes all workers share one lookup.SyncCache instead of
	// owning a private lookup.Cache each.
	SharedCache bool

	// Logger receives debug output. Defaults to a discarding logger.
	Logger *slog.Logger
}

// DefaultOptions contains the default configuration options for a recolor job.
var DefaultOptions = Options{
	Workers: 0,
	Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
}

// Result is the outcome of a recolor job.
type Result struct {
	// Image has src's bounds with every pixel replaced by a palette colour.
	Image *image.RGBA
	// Used lists the distinct palette entries placed, ordered by ID.
	Used []palette.Entry
	// Stats aggregates cache activity over all workers.
	Stats lookup.Stats
	// Duration is the wall time of the job.
	Duration time.Duration
}

// Run recolors src against index. Alpha is dropped: output pixels are opaque.
// An empty index fails with lookup.ErrEmptyPalette.
func Run(ctx context.Context, index lookup.Searcher, src image.Image, optFns ...func(o *Options)) (*Result, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = DefaultOptions.Logger
	}

	start := time.Now()
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)

	bands := splitRows(bounds, opts.Workers)
	opts.Logger.DebugContext(ctx, "recolor started",
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"bands", len(bands),
		"shared_cache", opts.SharedCache,
	)

	var (
		shared  *lookup.SyncCache
		private []*lookup.Cache
	)
	if opts.SharedCache {
		shared = lookup.NewSync(index)
	} else {
		private = make([]*lookup.Cache, len(bands))
		for i := range private {
			private[i] = lookup.New(index)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, band := range bands {
		var r lookup.Resolver
		if shared != nil {
			r = shared
		} else {
			r = private[i]
		}
		g.Go(func() error {
			return recolorBand(gctx, r, src, dst, band)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Image: dst}
	if shared != nil {
		res.Used = shared.UsedEntries()
		res.Stats = shared.Stats()
	} else {
		merged := lookup.New(index)
		for _, c := range private {
			merged.Merge(c)
		}
		res.Used = merged.UsedEntries()
		res.Stats = merged.Stats()
	}
	res.Duration = time.Since(start)

	opts.Logger.DebugContext(ctx, "recolor completed",
		"used", len(res.Used),
		"hits", res.Stats.Hits,
		"misses", res.Stats.Misses,
		"duration", res.Duration,
	)

	return res, nil
}

func recolorBand(ctx context.Context, r lookup.Resolver, src image.Image, dst *image.RGBA, band image.Rectangle) error {
	for y := band.Min.Y; y < band.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := band.Min.X; x < band.Max.X; x++ {
			e, err := r.Lookup(color.FromStd(src.At(x, y)))
			if err != nil {
				return err
			}
			n := e.Color.NRGBA()
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = n.R
			dst.Pix[i+1] = n.G
			dst.Pix[i+2] = n.B
			dst.Pix[i+3] = 0xff
		}
	}
	return nil
}

// splitRows cuts bounds into at most n horizontal bands of near-equal height.
func splitRows(bounds image.Rectangle, n int) []image.Rectangle {
	h := bounds.Dy()
	if h <= 0 || bounds.Dx() <= 0 {
		return nil
	}
	n = min(n, h)

	bands := make([]image.Rectangle, 0, n)
	y := bounds.Min.Y
	for i := range n {
		rows := h / n
		if i < h%n {
			rows++
		}
		bands = append(bands, image.Rect(bounds.Min.X, y, bounds.Max.X, y+rows))
		y += rows
	}
	return bands
}

// Colors maps a colour stream through r, returning the replacement colours.
func Colors(r lookup.Resolver, in []color.Color) ([]color.Color, error) {
	out := make([]color.Color, len(in))
	for i, q := range in {
		e, err := r.Lookup(q)
		if err != nil {
			return nil, err
		}
		out[i] = e.Color
	}
	return out, nil
}
