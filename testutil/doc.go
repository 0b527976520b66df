// Package testutil provides deterministic random colours and palettes for tests
// and benchmarks.
package testutil
