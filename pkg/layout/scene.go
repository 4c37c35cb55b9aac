package layout

import "github.com/matzehuels/roadcost/pkg/road"

// PatchLegend is the legend text for the patch swatch.
const PatchLegend = "Patches (Unbound Pavement)"

// Kind tags a rectangle with what it depicts, so sinks can pick colours.
type Kind string

const (
	KindRoad      Kind = "road"
	KindAltMethod Kind = "alt_method"
	KindPatch     Kind = "patch"
)

// Rect is an axis-aligned rectangle in canvas pixels. Y grows downward.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// PatchRect is a positioned patch.
type PatchRect struct {
	Rect
	Index int       `json:"index"`
	Side  road.Side `json:"side"`
}

// Label is a text anchor. X is the left edge of the text, Y its baseline.
type Label struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// Swatch is a legend entry: a filled square followed by text.
type Swatch struct {
	Rect
	Kind  Kind  `json:"kind"`
	Label Label `json:"label"`
}

// Scene is everything needed to draw the road diagram.
type Scene struct {
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Road      Rect        `json:"road"`
	AltMethod Rect        `json:"alt_method"`
	Patches   []PatchRect `json:"patches"`
	Labels    []Label     `json:"labels"`
	Legend    []Swatch    `json:"legend"`
}
