package stitchgo

import (
	"io"

	"github.com/hupe1980/stitchgo/codec"
)

// Report summarizes a pattern for display or export.
type Report struct {
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	ColorsUsed int           `json:"colors_used"`
	CacheHits  int64         `json:"cache_hits"`
	IndexScans int64         `json:"index_scans"`
	Colors     []ReportColor `json:"colors"`
}

// ReportColor is one palette entry used by a pattern.
type ReportColor struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Code  string `json:"code"`
	Hex   string `json:"hex"`
}

// Report builds the pattern summary.
func (p *Pattern) Report() Report {
	b := p.Image.Bounds()
	r := Report{
		Width:      b.Dx(),
		Height:     b.Dy(),
		ColorsUsed: len(p.Used),
		CacheHits:  p.Stats.Hits,
		IndexScans: p.Stats.Misses,
		Colors:     make([]ReportColor, len(p.Used)),
	}
	for i, e := range p.Used {
		r.Colors[i] = ReportColor{
			Name:  e.Name,
			Brand: e.Brand,
			Code:  e.Code,
			Hex:   e.Color.Hex(),
		}
	}
	return r
}

// WriteReport encodes the pattern summary to w with c (codec.Default if nil).
func (p *Pattern) WriteReport(w io.Writer, c codec.Codec) error {
	return codec.Encode(c, w, p.Report())
}
