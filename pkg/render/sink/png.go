package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/roadcost/pkg/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette Palette
	scale   float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGPalette overrides the diagram colours.
func WithPNGPalette(p Palette) PNGOption {
	return func(r *pngRenderer) { r.palette = p }
}

// RenderPNG rasterizes the scene. Unlike PDF it needs no external tools.
func RenderPNG(s layout.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{palette: DefaultPalette(), scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) {
		return nil, fmt.Errorf("png scale must be positive, got %v", r.scale)
	}

	w := int(math.Ceil(s.Width * r.scale))
	h := int(math.Ceil(s.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty canvas %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)

	dc.SetHexColor(r.palette.Background)
	dc.Clear()

	r.rect(dc, s.Road, r.palette.Road)
	r.rect(dc, s.AltMethod, r.palette.AltMethod)
	for _, p := range s.Patches {
		r.rect(dc, p.Rect, r.palette.Patch)
	}
	for _, l := range s.Labels {
		r.text(dc, l)
	}
	for _, sw := range s.Legend {
		r.rect(dc, sw.Rect, r.palette.Fill(sw.Kind))
		r.text(dc, sw.Label)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) rect(dc *gg.Context, rc layout.Rect, fill string) {
	dc.DrawRectangle(rc.X, rc.Y, rc.Width, rc.Height)
	dc.SetHexColor(fill)
	dc.FillPreserve()
	dc.SetHexColor(r.palette.Outline)
	dc.SetLineWidth(1)
	dc.Stroke()
}

func (r *pngRenderer) text(dc *gg.Context, l layout.Label) {
	dc.SetHexColor(r.palette.Text)
	dc.DrawString(l.Text, l.X, l.Y)
}
