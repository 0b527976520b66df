package kdtree

import (
	"cmp"
	"math"
	"slices"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/palette"
)

const none int32 = -1

type node struct {
	entry       palette.Entry
	left, right int32
}

// Tree is an immutable k-d tree over palette entries.
type Tree struct {
	nodes  []node
	root   int32
	height int
}

// Build constructs a tree from entries. Each entry is assigned its input
// position as ID. The caller's slice is not modified. An empty input yields
// an empty tree whose queries report not found.
func Build(entries []palette.Entry) *Tree {
	work := slices.Clone(entries)
	for i := range work {
		work[i].ID = uint32(i)
	}

	t := &Tree{
		nodes: make([]node, 0, len(work)),
		root:  none,
	}
	t.root = t.buildNode(work, 0)
	return t
}

// BuildRecords validates records and builds a tree from them. A single
// invalid record fails the build with an error matching palette.ErrInvalidRecord.
func BuildRecords(records []palette.Record) (*Tree, error) {
	entries, err := palette.Entries(records)
	if err != nil {
		return nil, err
	}
	return Build(entries), nil
}

func (t *Tree) buildNode(entries []palette.Entry, depth int) int32 {
	if len(entries) == 0 {
		return none
	}
	if depth+1 > t.height {
		t.height = depth + 1
	}

	axis := color.AxisOf(depth)
	slices.SortStableFunc(entries, func(a, b palette.Entry) int {
		return cmp.Compare(a.Color.Channel(axis), b.Color.Channel(axis))
	})

	median := len(entries) / 2
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{entry: entries[median], left: none, right: none})

	left := t.buildNode(entries[:median], depth+1)
	right := t.buildNode(entries[median+1:], depth+1)
	t.nodes[idx].left = left
	t.nodes[idx].right = right

	return idx
}

// Len returns the number of entries in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Height returns the number of levels (0 for an empty tree).
func (t *Tree) Height() int { return t.height }

// Nearest returns the entry closest to q by squared distance.
// ok is false only when the tree is empty.
func (t *Tree) Nearest(q color.Color) (palette.Entry, bool) {
	e, _, ok := t.NearestWithDistance(q)
	return e, ok
}

// NearestWithDistance is Nearest that also returns the squared distance.
func (t *Tree) NearestWithDistance(q color.Color) (palette.Entry, int, bool) {
	if t.root == none {
		return palette.Entry{}, 0, false
	}
	best, dist := t.search(q, t.root, 0, none, math.MaxInt)
	return t.nodes[best].entry, dist, true
}

func (t *Tree) search(q color.Color, n int32, depth int, best int32, bestDist int) (int32, int) {
	if n == none {
		return best, bestDist
	}
	nd := &t.nodes[n]

	if d := q.DistanceSquared(nd.entry.Color); d < bestDist {
		best, bestDist = n, d
	}

	axis := color.AxisOf(depth)
	qv := q.Channel(axis)
	nv := nd.entry.Color.Channel(axis)

	near, far := nd.right, nd.left
	if qv < nv {
		near, far = nd.left, nd.right
	}

	best, bestDist = t.search(q, near, depth+1, best, bestDist)

	if diff := qv - nv; diff*diff < bestDist {
		best, bestDist = t.search(q, far, depth+1, best, bestDist)
	}

	return best, bestDist
}
