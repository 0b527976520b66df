package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/palette"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Color returns a uniformly random colour with channels in [0,255].
func (r *RNG) Color() color.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.colorLocked()
}

func (r *RNG) colorLocked() color.Color {
	return color.New(r.rand.Intn(256), r.rand.Intn(256), r.rand.Intn(256))
}

// Colors returns n uniformly random colours.
func (r *RNG) Colors(n int) []color.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = r.colorLocked()
	}
	return out
}

// Records returns n valid palette records with random colours.
// Names are "c<i>", brand is "TEST", codes are "<i>".
func (r *RNG) Records(n int) []palette.Record {
	colors := r.Colors(n)
	out := make([]palette.Record, n)
	for i, c := range colors {
		out[i] = palette.NewRecord(c.R, c.G, c.B, fmt.Sprintf("c%d", i), "TEST", fmt.Sprint(i))
	}
	return out
}

// Palette returns n palette entries with random colours and IDs 0..n-1.
func (r *RNG) Palette(n int) []palette.Entry {
	colors := r.Colors(n)
	out := make([]palette.Entry, n)
	for i, c := range colors {
		out[i] = palette.Entry{
			ID:    uint32(i),
			Color: c,
			Name:  fmt.Sprintf("c%d", i),
			Brand: "TEST",
			Code:  fmt.Sprint(i),
		}
	}
	return out
}

// ClusteredColors returns n colours scattered within spread of one of the
// given centres, picked uniformly. Channels are clamped to [0,255].
func (r *RNG) ClusteredColors(n int, centres []color.Color, spread int) []color.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]color.Color, n)
	for i := range out {
		c := centres[r.rand.Intn(len(centres))]
		out[i] = color.New(
			clamp(c.R+r.jitterLocked(spread)),
			clamp(c.G+r.jitterLocked(spread)),
			clamp(c.B+r.jitterLocked(spread)),
		)
	}
	return out
}

func (r *RNG) jitterLocked(spread int) int {
	if spread <= 0 {
		return 0
	}
	return r.rand.Intn(2*spread+1) - spread
}

// BruteNearest is the linear-scan oracle: the first entry with the smallest
// squared distance to q, and that distance. ok is false for an empty palette.
func BruteNearest(entries []palette.Entry, q color.Color) (best palette.Entry, dist int, ok bool) {
	for i, e := range entries {
		d := q.DistanceSquared(e.Color)
		if i == 0 || d < dist {
			best, dist, ok = e, d, true
		}
	}
	return best, dist, ok
}

func clamp(v int) int {
	return min(max(v, 0), 255)
}
