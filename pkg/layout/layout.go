package layout

import (
	"fmt"

	"github.com/matzehuels/roadcost/pkg/errors"
	"github.com/matzehuels/roadcost/pkg/road"
)

// Canvas fixes the pixel geometry of the diagram.
type Canvas struct {
	Width, Height float64 // full drawing surface
	RoadX, RoadY  float64 // top-left corner of the road band
	RoadLengthPx  float64 // road band width in pixels
	RoadWidthPx   float64 // road band height in pixels
	Labels        int     // number of label intervals; Labels+1 labels are drawn
}

// DefaultCanvas returns the standard 1000×350 canvas with a 900×100 road
// band at (50, 150) and five label intervals.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:        1000,
		Height:       350,
		RoadX:        50,
		RoadY:        150,
		RoadLengthPx: 900,
		RoadWidthPx:  100,
		Labels:       5,
	}
}

// Fixed offsets of labels and legend relative to the road band.
const (
	labelGap     = 20.0
	legendGap    = 60.0
	swatchSize   = 20.0
	swatchText   = 10.0
	legendSpread = 300.0
)

// Option configures Compute.
type Option func(*mapper)

type mapper struct {
	canvas Canvas
}

// WithCanvas overrides the canvas geometry.
func WithCanvas(c Canvas) Option { return func(m *mapper) { m.canvas = c } }

// Compute lays out the road section, the alternative-method span and every
// patch. altMethodName labels the alternative-method legend entry.
//
// It fails with errors.ErrCodeNoPatches when patches is empty and with
// errors.ErrCodeInvalidInput when the section has no length or width.
func Compute(section road.Section, patches []road.Patch, altMethodName string, opts ...Option) (Scene, error) {
	m := mapper{canvas: DefaultCanvas()}
	for _, opt := range opts {
		opt(&m)
	}
	c := m.canvas

	if !(section.Length() > 0) || !(section.Width > 0) {
		return Scene{}, errors.New(errors.ErrCodeInvalidInput, "cannot lay out a road section of %gm × %gm", section.Length(), section.Width)
	}
	spanStart, spanEnd, err := road.Span(patches)
	if err != nil {
		return Scene{}, err
	}
	if altMethodName == "" {
		altMethodName = road.DefaultAltMethodName
	}

	scale := c.RoadLengthPx / section.Length()
	x := func(chainage float64) float64 {
		return c.RoadX + (chainage-section.ChainageStart)*scale
	}

	scene := Scene{
		Width:  c.Width,
		Height: c.Height,
		Road:   Rect{X: c.RoadX, Y: c.RoadY, Width: c.RoadLengthPx, Height: c.RoadWidthPx},
		AltMethod: Rect{
			X:      x(spanStart),
			Y:      c.RoadY,
			Width:  (spanEnd - spanStart) * scale,
			Height: c.RoadWidthPx,
		},
		Patches: make([]PatchRect, len(patches)),
		Labels:  chainageLabels(section, c),
		Legend:  legend(altMethodName, c),
	}

	for i, p := range patches {
		h := (p.Width / section.Width) * c.RoadWidthPx
		scene.Patches[i] = PatchRect{
			Rect: Rect{
				X:      x(p.StartChainage),
				Y:      lateralY(p.Side, h, c),
				Width:  p.Length * scale,
				Height: h,
			},
			Index: i + 1,
			Side:  p.Side,
		}
	}
	return scene, nil
}

// lateralY places a patch of pixel height h across the road band.
func lateralY(side road.Side, h float64, c Canvas) float64 {
	centerline := c.RoadY + c.RoadWidthPx/2
	switch side {
	case road.SideLeft:
		return centerline - c.RoadWidthPx/2
	case road.SideRight:
		return c.RoadY + c.RoadWidthPx - h
	case road.SideCenter:
		return centerline - h/2
	}
	return centerline
}

func chainageLabels(section road.Section, c Canvas) []Label {
	n := max(1, c.Labels)
	labels := make([]Label, n+1)
	step := section.Length() / float64(n)
	for i := range labels {
		labels[i] = Label{
			X:    c.RoadX + float64(i)*c.RoadLengthPx/float64(n),
			Y:    c.RoadY + c.RoadWidthPx + labelGap,
			Text: fmt.Sprintf("%.0fm", section.ChainageStart+float64(i)*step),
		}
	}
	return labels
}

func legend(altMethodName string, c Canvas) []Swatch {
	y := c.RoadY + c.RoadWidthPx + legendGap
	swatch := func(x float64, kind Kind, text string) Swatch {
		return Swatch{
			Rect: Rect{X: x, Y: y, Width: swatchSize, Height: swatchSize},
			Kind: kind,
			Label: Label{
				X:    x + swatchSize + swatchText,
				Y:    y + swatchSize*0.75,
				Text: text,
			},
		}
	}
	return []Swatch{
		swatch(c.RoadX, KindAltMethod, altMethodName),
		swatch(c.RoadX+legendSpread, KindPatch, PatchLegend),
	}
}
