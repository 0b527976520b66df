package lookup

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/palette"
)

var _ Resolver = (*Cache)(nil)

// Cache is a single-goroutine memo of colour -> nearest entry.
type Cache struct {
	index   Searcher
	entries map[color.Color]palette.Entry
	used    *roaring.Bitmap
	byID    map[uint32]palette.Entry
	hits    int64
	misses  int64
}

// New returns an empty cache resolving misses against index.
func New(index Searcher) *Cache {
	return &Cache{
		index:   index,
		entries: make(map[color.Color]palette.Entry),
		used:    roaring.New(),
		byID:    make(map[uint32]palette.Entry),
	}
}

// Lookup returns the palette entry nearest to q, querying the index only the
// first time q is seen.
func (c *Cache) Lookup(q color.Color) (palette.Entry, error) {
	if e, ok := c.entries[q]; ok {
		c.hits++
		return e, nil
	}

	c.misses++
	e, ok := c.index.Nearest(q)
	if !ok {
		return palette.Entry{}, ErrEmptyPalette
	}

	c.entries[q] = e
	c.markUsed(e)
	return e, nil
}

func (c *Cache) markUsed(e palette.Entry) {
	if c.used.CheckedAdd(e.ID) {
		c.byID[e.ID] = e
	}
}

// Len returns the number of cached query colours.
func (c *Cache) Len() int { return len(c.entries) }

// UsedEntries returns the distinct entries handed out so far, ordered by ID.
func (c *Cache) UsedEntries() []palette.Entry {
	ids := c.used.ToArray()
	out := make([]palette.Entry, len(ids))
	for i, id := range ids {
		out[i] = c.byID[id]
	}
	return out
}

// Stats returns hit/miss counters and set sizes.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:   c.hits,
		Misses: c.misses,
		Colors: len(c.entries),
		Used:   int(c.used.GetCardinality()),
	}
}

// Merge folds other into c: cached colours missing from c are added, used
// entries are unioned and counters summed. other is left unchanged.
func (c *Cache) Merge(other *Cache) {
	for q, e := range other.entries {
		if _, ok := c.entries[q]; !ok {
			c.entries[q] = e
		}
	}
	for id, e := range other.byID {
		c.byID[id] = e
	}
	c.used.Or(other.used)
	c.hits += other.hits
	c.misses += other.misses
}
