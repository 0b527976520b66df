package palette

import "github.com/hupe1980/stitchgo/color"

// Entry is a palette colour plus its identifying metadata.
// Indexes compare entries by Color only.
type Entry struct {
	// ID is the entry's position in the palette it was built from.
	ID    uint32
	Color color.Color
	Name  string
	Brand string
	Code  string
}

func (e Entry) String() string {
	return e.Name + " " + e.Color.String()
}
