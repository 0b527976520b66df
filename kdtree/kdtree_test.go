package kdtree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/palette"
	"github.com/hupe1980/stitchgo/testutil"
)

func entry(r, g, b int, name string) palette.Entry {
	return palette.Entry{Color: color.New(r, g, b), Name: name, Brand: "TEST", Code: name}
}

func TestNearest_Concrete(t *testing.T) {
	tree := Build([]palette.Entry{
		entry(0, 0, 0, "black"),
		entry(255, 255, 255, "white"),
		entry(255, 0, 0, "red"),
	})

	e, d, ok := tree.NearestWithDistance(color.New(10, 10, 10))
	require.True(t, ok)
	assert.Equal(t, "black", e.Name)
	assert.Equal(t, 300, d)
}

func TestNearest_Empty(t *testing.T) {
	tree := Build(nil)
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 0, tree.Height())

	_, ok := tree.Nearest(color.New(1, 2, 3))
	assert.False(t, ok)
	assert.Nil(t, tree.NearestK(color.New(1, 2, 3), 3))
	assert.Nil(t, tree.LevelOrder())
}

func TestNearest_Singleton(t *testing.T) {
	tree := Build([]palette.Entry{entry(12, 200, 7, "only")})
	for _, q := range testutil.NewRNG(5).Colors(100) {
		e, ok := tree.Nearest(q)
		require.True(t, ok)
		assert.Equal(t, "only", e.Name)
	}
}

func TestNearest_ExactMatch(t *testing.T) {
	entries := testutil.NewRNG(11).Palette(200)
	tree := Build(entries)

	for _, want := range entries {
		e, d, ok := tree.NearestWithDistance(want.Color)
		require.True(t, ok)
		assert.Equal(t, 0, d)
		assert.Equal(t, want.Color, e.Color)
	}
}

func TestNearest_MatchesBruteForce(t *testing.T) {
	for _, n := range []int{1, 2, 10, 1000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			rng := testutil.NewRNG(int64(n))
			entries := rng.Palette(n)
			tree := Build(entries)
			require.Equal(t, n, tree.Len())

			for _, q := range rng.Colors(500) {
				_, want, _ := testutil.BruteNearest(entries, q)
				e, got, ok := tree.NearestWithDistance(q)
				require.True(t, ok)
				assert.Equal(t, want, got, "query %v", q)
				assert.Equal(t, got, q.DistanceSquared(e.Color))
			}
		})
	}
}

func TestNearest_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(99)
	tree := Build(rng.Palette(300))
	for _, q := range rng.Colors(100) {
		a, _ := tree.Nearest(q)
		b, _ := tree.Nearest(q)
		assert.Equal(t, a, b)
	}
}

func TestNearest_TieBreak(t *testing.T) {
	twins := []palette.Entry{entry(10, 10, 10, "A"), entry(10, 10, 10, "B")}

	first, ok := Build(twins).Nearest(color.New(10, 10, 10))
	require.True(t, ok)
	for range 10 {
		e, _ := Build(twins).Nearest(color.New(10, 10, 10))
		assert.Equal(t, first.Name, e.Name)
	}

	// Stable sort keeps A before B; the median (index 1) is B and is reached first.
	assert.Equal(t, "B", first.Name)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	entries := []palette.Entry{entry(9, 0, 0, "a"), entry(1, 0, 0, "b"), entry(5, 0, 0, "c")}
	entries[0].ID = 42
	_ = Build(entries)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, uint32(42), entries[0].ID)
}

func TestBuild_AssignsIDs(t *testing.T) {
	tree := Build([]palette.Entry{entry(9, 0, 0, "a"), entry(1, 0, 0, "b"), entry(5, 0, 0, "c")})
	got := tree.Entries()
	require.Len(t, got, 3)
	for i, e := range got {
		assert.Equal(t, uint32(i), e.ID)
	}
	assert.Equal(t, "b", got[1].Name)
}

func TestBuild_Invariant(t *testing.T) {
	tree := Build(testutil.NewRNG(21).Palette(257))
	assert.Equal(t, 9, tree.Height())

	var check func(n int32, depth int) []palette.Entry
	check = func(n int32, depth int) []palette.Entry {
		if n == none {
			return nil
		}
		nd := tree.nodes[n]
		axis := color.AxisOf(depth)
		left := check(nd.left, depth+1)
		right := check(nd.right, depth+1)
		for _, e := range left {
			assert.LessOrEqual(t, e.Color.Channel(axis), nd.entry.Color.Channel(axis))
		}
		for _, e := range right {
			assert.GreaterOrEqual(t, e.Color.Channel(axis), nd.entry.Color.Channel(axis))
		}
		return append(append(left, right...), nd.entry)
	}
	assert.Len(t, check(tree.root, 0), 257)
}

func TestBuildRecords(t *testing.T) {
	tree, err := BuildRecords([]palette.Record{
		palette.NewRecord(0, 0, 0, "black", "DMC", "310"),
		palette.NewRecord(255, 255, 255, "white", "DMC", "B5200"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Len())

	bad := palette.NewRecord(0, 0, 0, "x", "DMC", "1")
	bad.R = nil
	tree, err = BuildRecords([]palette.Record{palette.NewRecord(1, 1, 1, "a", "b", "c"), bad})
	assert.ErrorIs(t, err, palette.ErrInvalidRecord)
	assert.Nil(t, tree)

	tree, err = BuildRecords(nil)
	require.NoError(t, err)
	_, ok := tree.Nearest(color.New(0, 0, 0))
	assert.False(t, ok)
}

func TestNearestK(t *testing.T) {
	rng := testutil.NewRNG(77)
	entries := rng.Palette(400)
	tree := Build(entries)

	for _, q := range rng.Colors(50) {
		got := tree.NearestK(q, 5)
		require.Len(t, got, 5)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].Distance, got[i].Distance)
		}

		// The k-th distance must be no larger than what a full scan reports
		// for its k-th smallest.
		dists := make([]int, len(entries))
		for i, e := range entries {
			dists[i] = q.DistanceSquared(e.Color)
		}
		assert.Equal(t, kthSmallest(dists, 5), got[4].Distance)

		one, _ := tree.Nearest(q)
		assert.Equal(t, one, tree.NearestK(q, 1)[0].Entry)
	}

	assert.Len(t, tree.NearestK(color.New(0, 0, 0), 10000), 400)
	assert.Nil(t, tree.NearestK(color.New(0, 0, 0), 0))
}

func kthSmallest(v []int, k int) int {
	s := append([]int(nil), v...)
	for i := 0; i < k; i++ {
		m := i
		for j := i + 1; j < len(s); j++ {
			if s[j] < s[m] {
				m = j
			}
		}
		s[i], s[m] = s[m], s[i]
	}
	return s[k-1]
}

func TestLevelOrder(t *testing.T) {
	tree := Build([]palette.Entry{
		entry(0, 0, 0, "black"),
		entry(255, 255, 255, "white"),
		entry(255, 0, 0, "red"),
	})
	levels := tree.LevelOrder()
	require.Len(t, levels, 2)
	assert.Equal(t, "white", levels[0].Entries[0].Name)
	require.Len(t, levels[1].Entries, 2)
	assert.Equal(t, "black", levels[1].Entries[0].Name)
	assert.Equal(t, "red", levels[1].Entries[1].Name)
}

func BenchmarkNearest(b *testing.B) {
	rng := testutil.NewRNG(1)
	tree := Build(rng.Palette(500))
	queries := rng.Colors(1024)
	b.ResetTimer()
	i := 0
	for b.Loop() {
		tree.Nearest(queries[i%len(queries)])
		i++
	}
}
