package lookup

import (
	"hash/maphash"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/palette"
)

const numShards = 64

var _ Resolver = (*SyncCache)(nil)

type shard struct {
	mu      sync.RWMutex
	entries map[color.Color]palette.Entry
}

// SyncCache is a Cache safe for concurrent use.
// It distributes colours across 64 shards to reduce lock contention.
//
// Index queries run outside any lock. Two goroutines missing on the same
// colour at once may both query the index; the first insert wins and both
// receive the same entry.
type SyncCache struct {
	index  Searcher
	shards [numShards]shard
	seed   maphash.Seed

	usedMu sync.Mutex
	used   *roaring.Bitmap
	byID   map[uint32]palette.Entry

	hits   atomic.Int64
	misses atomic.Int64
}

// NewSync returns an empty concurrent cache resolving misses against index.
func NewSync(index Searcher) *SyncCache {
	s := &SyncCache{
		index: index,
		seed:  maphash.MakeSeed(),
		used:  roaring.New(),
		byID:  make(map[uint32]palette.Entry),
	}
	for i := range s.shards {
		s.shards[i].entries = make(map[color.Color]palette.Entry)
	}
	return s
}

func (s *SyncCache) shard(q color.Color) *shard {
	var h maphash.Hash
	h.SetSeed(s.seed)

	var buf [12]byte
	for i, v := range [3]int{q.R, q.G, q.B} {
		buf[i*4] = byte(v)
		buf[i*4+1] = byte(v >> 8)
		buf[i*4+2] = byte(v >> 16)
		buf[i*4+3] = byte(v >> 24)
	}
	_, _ = h.Write(buf[:])

	return &s.shards[h.Sum64()%numShards]
}

// Lookup returns the palette entry nearest to q.
func (s *SyncCache) Lookup(q color.Color) (palette.Entry, error) {
	sh := s.shard(q)

	sh.mu.RLock()
	e, ok := sh.entries[q]
	sh.mu.RUnlock()
	if ok {
		s.hits.Add(1)
		return e, nil
	}

	s.misses.Add(1)
	e, ok = s.index.Nearest(q)
	if !ok {
		return palette.Entry{}, ErrEmptyPalette
	}

	sh.mu.Lock()
	if prev, exists := sh.entries[q]; exists {
		e = prev
	} else {
		sh.entries[q] = e
	}
	sh.mu.Unlock()

	s.usedMu.Lock()
	if s.used.CheckedAdd(e.ID) {
		s.byID[e.ID] = e
	}
	s.usedMu.Unlock()

	return e, nil
}

// Len returns the number of cached query colours.
func (s *SyncCache) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}

// UsedEntries returns the distinct entries handed out so far, ordered by ID.
func (s *SyncCache) UsedEntries() []palette.Entry {
	s.usedMu.Lock()
	defer s.usedMu.Unlock()

	ids := s.used.ToArray()
	out := make([]palette.Entry, len(ids))
	for i, id := range ids {
		out[i] = s.byID[id]
	}
	return out
}

// Stats returns hit/miss counters and set sizes.
func (s *SyncCache) Stats() Stats {
	s.usedMu.Lock()
	used := int(s.used.GetCardinality())
	s.usedMu.Unlock()

	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Colors: s.Len(),
		Used:   used,
	}
}
