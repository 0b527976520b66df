package palette

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/stitchgo/codec"
	"github.com/hupe1980/stitchgo/color"
)

// LoadOptions configures catalog loading.
type LoadOptions struct {
	// Codec decodes the catalog document. Defaults to codec.Default.
	Codec codec.Codec

	// Brand keeps only colours of this brand when non-empty.
	Brand string
}

// DefaultLoadOptions contains the default catalog loading options.
var DefaultLoadOptions = LoadOptions{
	Codec: codec.Default,
}

type catalog struct {
	Colors []catalogColor `json:"colors"`
}

type catalogColor struct {
	Name  string      `json:"name"`
	Brand string      `json:"brand"`
	Code  string      `json:"code"`
	RGB   *catalogRGB `json:"rgb,omitempty"`
	Hex   string      `json:"hex,omitempty"`
}

type catalogRGB struct {
	R *int `json:"r"`
	G *int `json:"g"`
	B *int `json:"b"`
}

// Load decodes a catalog from r and validates every record.
func Load(r io.Reader, optFns ...func(o *LoadOptions)) ([]Record, error) {
	opts := DefaultLoadOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	var doc catalog
	if err := codec.Decode(opts.Codec, r, &doc); err != nil {
		return nil, fmt.Errorf("palette: decode catalog: %w", err)
	}

	records := make([]Record, len(doc.Colors))
	for i, c := range doc.Colors {
		rec := Record{Name: c.Name, Brand: c.Brand, Code: c.Code}
		switch {
		case c.RGB != nil:
			rec.R, rec.G, rec.B = c.RGB.R, c.RGB.G, c.RGB.B
		case c.Hex != "":
			hc, err := color.ParseHex(c.Hex)
			if err != nil {
				return nil, &RecordError{Index: i, Field: "hex", cause: err}
			}
			rec.R, rec.G, rec.B = &hc.R, &hc.G, &hc.B
		}
		records[i] = rec
	}

	if err := Validate(records); err != nil {
		return nil, err
	}

	return FilterBrand(records, opts.Brand), nil
}

// Open loads a catalog file. Files ending in .zst are zstd-compressed and
// files ending in .lz4 are lz4-compressed.
func Open(path string, optFns ...func(o *LoadOptions)) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("palette: zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	case ".lz4":
		r = lz4.NewReader(r)
	}

	records, err := Load(r, optFns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
