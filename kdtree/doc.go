// Package kdtree implements a static three-dimensional k-d tree over palette
// entries for nearest-colour queries.
//
// The tree is built once with Build and never mutated afterwards, so a *Tree
// may be queried from any number of goroutines without synchronization.
//
// # Layout
//
// Nodes live in a single arena slice and reference their children by index.
// A node at depth d splits on axis d mod 3 (r, g, b, r, ...). Each level is
// split at the structural median of a stable sort on that axis, which keeps
// the height at ceil(log2(n+1)) regardless of how the palette is ordered.
//
// # Ties
//
// When several entries are equally close to a query, the first one reached
// during traversal wins. That order depends on the input order of the palette
// (through the stable sort), not on any ordering of names or codes.
package kdtree
