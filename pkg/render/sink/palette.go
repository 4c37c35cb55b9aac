package sink

import "github.com/matzehuels/roadcost/pkg/layout"

// Palette holds hex colours for each part of the diagram.
type Palette struct {
	Background string
	Road       string
	AltMethod  string
	Patch      string
	Outline    string
	Text       string
}

// DefaultPalette returns the standard colours: grey road, green treated
// span and orange patches.
func DefaultPalette() Palette {
	return Palette{
		Background: "#ffffff",
		Road:       "#9e9e9e",
		AltMethod:  "#8bc34a",
		Patch:      "#ff9800",
		Outline:    "#333333",
		Text:       "#000000",
	}
}

// Fill returns the fill colour for a kind of shape.
func (p Palette) Fill(k layout.Kind) string {
	switch k {
	case layout.KindAltMethod:
		return p.AltMethod
	case layout.KindPatch:
		return p.Patch
	}
	return p.Road
}
