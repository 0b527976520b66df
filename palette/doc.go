// Package palette defines palette records and entries and loads palette catalogs.
//
// A Record is the wire form of one catalog colour: three channels plus the
// identifying name, brand and code. Records are validated before they become
// Entries, the unit stored in a kdtree.Tree. A single invalid record fails the
// whole conversion.
//
// Catalog files are JSON documents of the form
//
//	{"colors": [{"name": "Black", "brand": "DMC", "code": "310", "rgb": {"r": 0, "g": 0, "b": 0}}]}
//
// A colour may give "hex": "#rrggbb" instead of "rgb". Open transparently
// decompresses files ending in .zst or .lz4.
package palette
