package kdtree

import "github.com/hupe1980/stitchgo/palette"

// Level is one depth of the tree in left-to-right order.
type Level struct {
	Depth   int
	Entries []palette.Entry
}

// LevelOrder returns the tree breadth first, one Level per depth.
func (t *Tree) LevelOrder() []Level {
	if t.root == none {
		return nil
	}

	levels := make([]Level, 0, t.height)
	frontier := []int32{t.root}
	for depth := 0; len(frontier) > 0; depth++ {
		lvl := Level{Depth: depth, Entries: make([]palette.Entry, 0, len(frontier))}
		next := make([]int32, 0, 2*len(frontier))
		for _, n := range frontier {
			nd := &t.nodes[n]
			lvl.Entries = append(lvl.Entries, nd.entry)
			if nd.left != none {
				next = append(next, nd.left)
			}
			if nd.right != none {
				next = append(next, nd.right)
			}
		}
		levels = append(levels, lvl)
		frontier = next
	}
	return levels
}

// Entries returns every entry ordered by ID, i.e. in palette input order.
func (t *Tree) Entries() []palette.Entry {
	out := make([]palette.Entry, len(t.nodes))
	for _, nd := range t.nodes {
		out[nd.entry.ID] = nd.entry
	}
	return out
}
