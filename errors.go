package stitchgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/stitchgo/internal/imageio"
	"github.com/hupe1980/stitchgo/internal/kmeans"
	"github.com/hupe1980/stitchgo/lookup"
	"github.com/hupe1980/stitchgo/palette"
)

var (
	// ErrEmptyPalette is returned when recoloring against a palette with no entries.
	ErrEmptyPalette = errors.New("palette is empty")

	// ErrInvalidPalette is returned when a palette record is malformed.
	ErrInvalidPalette = errors.New("invalid palette")

	// ErrInvalidWidth is returned when the pattern width is not positive.
	ErrInvalidWidth = errors.New("width must be positive")

	// ErrInvalidMaxColors is returned when the colour limit is not positive.
	ErrInvalidMaxColors = errors.New("max colors must be positive")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, lookup.ErrEmptyPalette) {
		return fmt.Errorf("%w: %w", ErrEmptyPalette, err)
	}
	if errors.Is(err, palette.ErrInvalidRecord) {
		return fmt.Errorf("%w: %w", ErrInvalidPalette, err)
	}
	if errors.Is(err, imageio.ErrInvalidWidth) {
		return fmt.Errorf("%w: %w", ErrInvalidWidth, err)
	}
	if errors.Is(err, kmeans.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidMaxColors, err)
	}

	return err
}
