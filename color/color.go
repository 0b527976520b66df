package color

import (
	"fmt"
	stdcolor "image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Axis identifies one of the three channels.
type Axis uint8

const (
	AxisR Axis = iota
	AxisG
	AxisB
)

// NumAxes is the fixed dimensionality of the colour space.
const NumAxes = 3

func (a Axis) String() string {
	switch a {
	case AxisR:
		return "r"
	case AxisG:
		return "g"
	case AxisB:
		return "b"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// AxisOf returns the split axis for a tree depth, cycling r, g, b.
func AxisOf(depth int) Axis {
	return Axis(depth % NumAxes)
}

// Color is an immutable RGB triple. Equality is componentwise (==).
type Color struct {
	R, G, B int
}

// New returns the colour (r, g, b). Values are not range checked.
func New(r, g, b int) Color {
	return Color{R: r, G: g, B: b}
}

// Channel returns the value of c on axis a.
func (c Color) Channel(a Axis) int {
	switch a {
	case AxisR:
		return c.R
	case AxisG:
		return c.G
	default:
		return c.B
	}
}

// DistanceSquared returns the squared Euclidean distance between c and o.
// It is monotonic with the true distance, which is all nearest-neighbour
// ranking needs.
func (c Color) DistanceSquared(o Color) int {
	dr := c.R - o.R
	dg := c.G - o.G
	db := c.B - o.B
	return dr*dr + dg*dg + db*db
}

// DistanceSquared is the function form of Color.DistanceSquared.
func DistanceSquared(a, b Color) int {
	return a.DistanceSquared(b)
}

func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex formats c as #rrggbb. Channels are clamped to [0,255] for formatting only.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(clamp8(c.R)) / 255.0,
		G: float64(clamp8(c.G)) / 255.0,
		B: float64(clamp8(c.B)) / 255.0,
	}.Hex()
}

// ParseHex parses #rrggbb (or #rgb) into a Color.
func ParseHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("color: parse %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return New(int(r), int(g), int(b)), nil
}

// FromStd converts any image/color value to an 8-bit Color, dropping alpha.
func FromStd(c stdcolor.Color) Color {
	n := stdcolor.NRGBAModel.Convert(c).(stdcolor.NRGBA)
	return New(int(n.R), int(n.G), int(n.B))
}

// RGBA implements image/color.Color with full opacity.
func (c Color) RGBA() (r, g, b, a uint32) {
	return stdcolor.RGBA{R: clamp8(c.R), G: clamp8(c.G), B: clamp8(c.B), A: 0xff}.RGBA()
}

// NRGBA returns c as an opaque 8-bit stdlib colour.
func (c Color) NRGBA() stdcolor.NRGBA {
	return stdcolor.NRGBA{R: clamp8(c.R), G: clamp8(c.G), B: clamp8(c.B), A: 0xff}
}

func clamp8(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
