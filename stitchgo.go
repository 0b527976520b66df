package stitchgo

import (
	"context"
	"image"
	"time"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/internal/imageio"
	"github.com/hupe1980/stitchgo/internal/kmeans"
	"github.com/hupe1980/stitchgo/kdtree"
	"github.com/hupe1980/stitchgo/lookup"
	"github.com/hupe1980/stitchgo/palette"
	"github.com/hupe1980/stitchgo/recolor"
)

// Matcher maps colours and images onto a palette.
type Matcher struct {
	tree *kdtree.Tree
	opts options
}

// New validates records and builds a Matcher over them. If a brand is
// configured only records of that brand are indexed. Any invalid record
// fails construction with ErrInvalidPalette.
func New(records []palette.Record, optFns ...Option) (*Matcher, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return build(context.Background(), records, opts)
}

// Open loads a palette catalog file and builds a Matcher over it.
func Open(path string, optFns ...Option) (*Matcher, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	records, err := palette.Open(path, func(o *palette.LoadOptions) {
		o.Codec = opts.codec
	})
	if err != nil {
		err = translateError(err)
		opts.logger.LogBuild(context.Background(), 0, 0, 0, err)
		opts.metricsCollector.RecordBuild(0, 0, err)
		return nil, err
	}
	return build(context.Background(), records, opts)
}

func build(ctx context.Context, records []palette.Record, opts options) (*Matcher, error) {
	start := time.Now()
	logger := opts.logger
	if opts.brand != "" {
		logger = logger.WithBrand(opts.brand)
	}

	tree, err := buildTree(records, opts.brand)
	duration := time.Since(start)
	if err != nil {
		err = translateError(err)
		logger.LogBuild(ctx, 0, 0, duration, err)
		opts.metricsCollector.RecordBuild(0, duration, err)
		return nil, err
	}

	logger.LogBuild(ctx, tree.Len(), tree.Height(), duration, nil)
	opts.metricsCollector.RecordBuild(tree.Len(), duration, nil)

	return &Matcher{tree: tree, opts: opts}, nil
}

func buildTree(records []palette.Record, brand string) (*kdtree.Tree, error) {
	if err := palette.Validate(records); err != nil {
		return nil, err
	}
	return kdtree.BuildRecords(palette.FilterBrand(records, brand))
}

// Tree returns the underlying index.
func (m *Matcher) Tree() *kdtree.Tree { return m.tree }

// Len returns the number of indexed palette entries.
func (m *Matcher) Len() int { return m.tree.Len() }

// Nearest returns the palette entry closest to c. ok is false for an empty palette.
func (m *Matcher) Nearest(c color.Color) (palette.Entry, bool) {
	return m.tree.Nearest(c)
}

// NewCache returns a fresh single-goroutine lookup cache over the palette.
func (m *Matcher) NewCache() *lookup.Cache {
	return lookup.New(m.tree)
}

// Pattern is an image whose every pixel is a palette colour.
type Pattern struct {
	Image *image.RGBA
	// Used lists the distinct palette entries in the pattern, ordered by ID.
	Used  []palette.Entry
	Stats lookup.Stats
}

// Recolor replaces every pixel of img with its nearest palette colour.
func (m *Matcher) Recolor(ctx context.Context, img image.Image) (*Pattern, error) {
	pixels := img.Bounds().Dx() * img.Bounds().Dy()
	start := time.Now()

	res, err := recolor.Run(ctx, m.tree, img, func(o *recolor.Options) {
		o.Workers = m.opts.workers
		o.SharedCache = m.opts.sharedCache
		o.Logger = m.opts.logger.Logger
	})
	if err != nil {
		err = translateError(err)
		m.opts.logger.LogRecolor(ctx, pixels, 0, 0, 0, err)
		m.opts.metricsCollector.RecordRecolor(pixels, 0, 0, time.Since(start), err)
		return nil, err
	}

	m.opts.logger.LogRecolor(ctx, pixels, len(res.Used), res.Stats.Hits, res.Stats.Misses, nil)
	m.opts.metricsCollector.RecordRecolor(pixels, res.Stats.Hits, res.Stats.Misses, res.Duration, nil)

	return &Pattern{Image: res.Image, Used: res.Used, Stats: res.Stats}, nil
}

// CreatePattern resizes img to the configured width, reduces it to at most
// MaxColors colours and recolors it against the palette.
func (m *Matcher) CreatePattern(ctx context.Context, img image.Image, optFns ...PatternOption) (*Pattern, error) {
	popts := DefaultPatternOptions
	for _, fn := range optFns {
		fn(&popts)
	}
	if popts.MaxColors <= 0 {
		return nil, ErrInvalidMaxColors
	}

	if popts.Width != 0 {
		resized, err := imageio.ResizeToWidth(img, popts.Width)
		if err != nil {
			return nil, translateError(err)
		}
		img = resized
	}

	start := time.Now()
	reduced, centroids, err := kmeans.Reduce(ctx, img, popts.MaxColors, func(o *kmeans.Options) {
		o.MaxIter = popts.MaxIter
		o.Seed = popts.Seed
	})
	duration := time.Since(start)
	if err != nil {
		err = translateError(err)
		m.opts.logger.LogReduce(ctx, 0, duration, err)
		m.opts.metricsCollector.RecordReduce(0, duration, err)
		return nil, err
	}
	m.opts.logger.LogReduce(ctx, len(centroids), duration, nil)
	m.opts.metricsCollector.RecordReduce(len(centroids), duration, nil)

	return m.Recolor(ctx, reduced)
}
