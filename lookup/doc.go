// Package lookup memoizes nearest-palette-entry queries.
//
// Raster input repeats the same few colours many times. A Cache resolves each
// distinct colour against the index once and serves every later occurrence
// from a map. Caches only grow; they are meant to live for one recolor job.
//
// Cache is for a single goroutine. Give each worker its own Cache and Merge
// them afterwards, or share one SyncCache.
//
// Used palette entries are tracked by Entry.ID in a roaring bitmap, so entries
// handed out by the index must carry distinct IDs (kdtree.Build assigns them).
package lookup

import (
	"errors"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/kdtree"
	"github.com/hupe1980/stitchgo/palette"
)

// ErrEmptyPalette is returned when a lookup runs against an index with no entries.
var ErrEmptyPalette = errors.New("lookup: palette is empty")

// Searcher answers nearest-entry queries. ok is false only for an empty index.
type Searcher interface {
	Nearest(q color.Color) (palette.Entry, bool)
}

// Compile-time check to ensure kdtree.Tree satisfies Searcher.
var _ Searcher = (*kdtree.Tree)(nil)

// Resolver is the common surface of Cache and SyncCache.
type Resolver interface {
	Lookup(q color.Color) (palette.Entry, error)
	UsedEntries() []palette.Entry
	Stats() Stats
}

// Stats is a snapshot of cache activity.
type Stats struct {
	// Hits counts lookups served from the cache.
	Hits int64
	// Misses counts lookups that queried the index.
	Misses int64
	// Colors is the number of distinct cached query colours.
	Colors int
	// Used is the number of distinct palette entries handed out.
	Used int
}
