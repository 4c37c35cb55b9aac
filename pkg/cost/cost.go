// Package cost prices the two treatments for a road section and decides
// which one is cheaper.
//
// Unbound pavement is priced per patch: area × rate × layers. The
// alternative full-width method is priced over the span between the first
// patch start and the last patch end, across the full road width. Totals
// keep full floating-point precision; rounding happens only when a
// [Comparison] is formatted.
package cost

import (
	"github.com/matzehuels/roadcost/pkg/road"
)

// Treatment identifies one of the two compared treatments.
type Treatment string

const (
	TreatmentUnbound   Treatment = "unbound"
	TreatmentAltMethod Treatment = "alt_method"
)

// UnboundLabel is the display name of the patch-repair treatment.
const UnboundLabel = "Unbound Pavement"

// Line is the cost of a single patch.
type Line struct {
	Index int        `json:"index"`
	Patch road.Patch `json:"patch"`
	Area  float64    `json:"area"`
	Cost  float64    `json:"cost"`
}

// UnboundCost is the patch-repair treatment priced patch by patch.
type UnboundCost struct {
	Lines  []Line  `json:"lines"`
	Layers int     `json:"layers"`
	Area   float64 `json:"area"`
	Total  float64 `json:"total"`
}

// AltMethodCost is the full-width treatment priced over the patch span.
type AltMethodCost struct {
	Name      string  `json:"name"`
	SpanStart float64 `json:"span_start"`
	SpanEnd   float64 `json:"span_end"`
	Width     float64 `json:"width"`
	Area      float64 `json:"area"`
	Total     float64 `json:"total"`
}

// SpanLength returns SpanEnd - SpanStart.
func (a AltMethodCost) SpanLength() float64 { return a.SpanEnd - a.SpanStart }

// Unbound prices every patch at rate per square meter and layer. An empty
// slice yields a zero total.
func Unbound(patches []road.Patch, rate float64, layers int) UnboundCost {
	if layers < 1 {
		layers = 1
	}
	out := UnboundCost{
		Lines:  make([]Line, len(patches)),
		Layers: layers,
	}
	for i, p := range patches {
		area := p.Area()
		c := area * rate * float64(layers)
		out.Lines[i] = Line{Index: i + 1, Patch: p, Area: area, Cost: c}
		out.Area += area
		out.Total += c
	}
	return out
}

// AltMethod prices the full-width treatment over the span of patches.
// It fails with errors.ErrCodeNoPatches when patches is empty.
func AltMethod(patches []road.Patch, roadWidth, rate float64, name string) (AltMethodCost, error) {
	start, end, err := road.Span(patches)
	if err != nil {
		return AltMethodCost{}, err
	}
	area := (end - start) * roadWidth
	return AltMethodCost{
		Name:      name,
		SpanStart: start,
		SpanEnd:   end,
		Width:     roadWidth,
		Area:      area,
		Total:     area * rate,
	}, nil
}
