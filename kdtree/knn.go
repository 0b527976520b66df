package kdtree

import (
	"math"

	"github.com/hupe1980/stitchgo/color"
	"github.com/hupe1980/stitchgo/internal/queue"
	"github.com/hupe1980/stitchgo/palette"
)

// Neighbor is an entry together with its squared distance to a query.
type Neighbor struct {
	Entry    palette.Entry
	Distance int
}

// NearestK returns up to k entries closest to q, closest first.
// NearestK(q, 1) selects the same entry as Nearest.
func (t *Tree) NearestK(q color.Color, k int) []Neighbor {
	if k <= 0 || t.root == none {
		return nil
	}
	if k > len(t.nodes) {
		k = len(t.nodes)
	}

	heap := queue.NewMax(k)
	t.searchK(q, t.root, 0, k, heap)

	out := make([]Neighbor, heap.Len())
	for i := len(out) - 1; i >= 0; i-- {
		it, _ := heap.PopItem()
		out[i] = Neighbor{Entry: t.nodes[it.Node].entry, Distance: it.Distance}
	}
	return out
}

func (t *Tree) searchK(q color.Color, n int32, depth, k int, heap *queue.PriorityQueue) {
	if n == none {
		return
	}
	nd := &t.nodes[n]

	d := q.DistanceSquared(nd.entry.Color)
	if heap.Len() < k {
		heap.PushItem(queue.Item{Node: n, Distance: d})
	} else if top, _ := heap.TopItem(); d < top.Distance {
		heap.PopItem()
		heap.PushItem(queue.Item{Node: n, Distance: d})
	}

	axis := color.AxisOf(depth)
	qv := q.Channel(axis)
	nv := nd.entry.Color.Channel(axis)

	near, far := nd.right, nd.left
	if qv < nv {
		near, far = nd.left, nd.right
	}

	t.searchK(q, near, depth+1, k, heap)

	bound := math.MaxInt
	if heap.Len() == k {
		top, _ := heap.TopItem()
		bound = top.Distance
	}
	if diff := qv - nv; diff*diff < bound {
		t.searchK(q, far, depth+1, k, heap)
	}
}
