// Package stitchgo maps images onto a fixed palette of thread colours.
//
// A Matcher is built once from a palette catalog. It owns a static k-d tree
// over the palette and recolors images by resolving every distinct pixel
// colour to its nearest palette entry in RGB space.
//
// # Quick Start
//
//	m, _ := stitchgo.Open("dmc.json", stitchgo.WithBrand("DMC"))
//	f, _ := os.Open("photo.png")
//	img, _, _ := image.Decode(f)
//	p, _ := m.CreatePattern(ctx, img, stitchgo.WithWidth(175), stitchgo.WithMaxColors(100))
//	fmt.Println("colors used:", len(p.Used))
//
// # Pipeline
//
// CreatePattern resizes the image to the requested width in stitches, reduces
// it to at most MaxColors colours with k-means, then recolors each pixel with
// its nearest palette entry. Recolor skips the first two steps.
//
// # Concurrency
//
// The tree is immutable after construction. A Matcher is safe for concurrent
// use; each recolor job owns its lookup caches.
package stitchgo
