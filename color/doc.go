// Package color provides the three-channel RGB value type matched against palettes.
//
// Channels are plain ints. They are conventionally in [0,255] but the type does
// not enforce it: out-of-range values flow through DistanceSquared and the axis
// comparisons unchanged.
//
// # Usage
//
//	c := color.New(10, 10, 10)
//	d := c.DistanceSquared(color.New(0, 0, 0)) // 300
//	v := c.Channel(color.AxisOf(depth))
package color
