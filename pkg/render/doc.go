// Package render holds format conversion shared by the diagram sinks.
//
// The sinks themselves live in [sink]; this package only knows how to turn
// SVG bytes into other formats using the external rsvg-convert tool (from
// librsvg).
//
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [sink]: github.com/matzehuels/roadcost/pkg/render/sink
package render
