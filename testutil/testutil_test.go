package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/palette"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(7).Colors(16)
	b := NewRNG(7).Colors(16)
	assert.Equal(t, a, b)

	r := NewRNG(7)
	first := r.Color()
	r.Reset()
	assert.Equal(t, first, r.Color())
	assert.Equal(t, int64(7), r.Seed())
}

func TestRNG_Records(t *testing.T) {
	records := NewRNG(1).Records(50)
	require.Len(t, records, 50)
	require.NoError(t, palette.Validate(records))
}

func TestRNG_ClusteredColors(t *testing.T) {
	centres := []color.Color{color.New(0, 0, 0), color.New(255, 255, 255)}
	for _, c := range NewRNG(3).ClusteredColors(200, centres, 10) {
		near := c.DistanceSquared(centres[0]) <= 300 || c.DistanceSquared(centres[1]) <= 300
		assert.True(t, near, "colour %v strayed from its centre", c)
	}
}

func TestBruteNearest(t *testing.T) {
	_, _, ok := BruteNearest(nil, color.New(0, 0, 0))
	assert.False(t, ok)

	p := []palette.Entry{
		{ID: 0, Color: color.New(5, 5, 5)},
		{ID: 1, Color: color.New(5, 5, 5)},
		{ID: 2, Color: color.New(100, 0, 0)},
	}
	e, d, ok := BruteNearest(p, color.New(4, 5, 5))
	require.True(t, ok)
	assert.Equal(t, uint32(0), e.ID)
	assert.Equal(t, 1, d)
}
