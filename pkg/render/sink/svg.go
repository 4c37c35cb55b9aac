package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/roadcost/pkg/layout"
)

const fontFamily = "Arial, Helvetica, sans-serif"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette  Palette
	fontSize float64
	titles   bool
}

// WithPalette overrides the diagram colours.
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithFontSize sets the label font size in pixels (default 12).
func WithFontSize(px float64) SVGOption { return func(r *svgRenderer) { r.fontSize = px } }

// WithTitles adds a hover <title> to every patch naming its index and side.
func WithTitles() SVGOption { return func(r *svgRenderer) { r.titles = true } }

// RenderSVG paints the scene as a standalone SVG document.
func RenderSVG(s layout.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{palette: DefaultPalette(), fontSize: 12}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	fmt.Fprintf(&buf, `  <rect class="background" x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		s.Width, s.Height, r.palette.Background)

	r.rect(&buf, "road", s.Road, r.palette.Road, "")
	r.rect(&buf, "alt-method", s.AltMethod, r.palette.AltMethod, "")
	for _, p := range s.Patches {
		title := ""
		if r.titles {
			title = fmt.Sprintf("Patch %d (%s)", p.Index, p.Side)
		}
		r.rect(&buf, "patch", p.Rect, r.palette.Patch, title)
	}
	for _, l := range s.Labels {
		r.text(&buf, "chainage", l)
	}
	for _, sw := range s.Legend {
		r.rect(&buf, "swatch", sw.Rect, r.palette.Fill(sw.Kind), "")
		r.text(&buf, "legend", sw.Label)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) rect(buf *bytes.Buffer, class string, rc layout.Rect, fill, title string) {
	fmt.Fprintf(buf, `  <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="1"`,
		class, rc.X, rc.Y, rc.Width, rc.Height, fill, r.palette.Outline)
	if title == "" {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString("><title>")
	writeEscaped(buf, title)
	buf.WriteString("</title></rect>\n")
}

func (r *svgRenderer) text(buf *bytes.Buffer, class string, l layout.Label) {
	fmt.Fprintf(buf, `  <text class="%s" x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" fill="%s">`,
		class, l.X, l.Y, fontFamily, r.fontSize, r.palette.Text)
	writeEscaped(buf, l.Text)
	buf.WriteString("</text>\n")
}

func writeEscaped(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}
