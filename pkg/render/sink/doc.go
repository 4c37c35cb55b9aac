// Package sink paints a [layout.Scene] into output formats.
//
// # Overview
//
// A "sink" transforms a computed scene into bytes:
//
//   - SVG: vector output, the reference rendering
//   - PNG: raster output drawn directly with fogleman/gg
//   - PDF: print output (SVG converted by rsvg-convert)
//   - JSON: the scene geometry itself, for external tools
//
// Every sink draws in the same order: road background, alternative-method
// span, patches, chainage labels, legend. Later shapes paint over earlier
// ones, so patches always sit on top of the treated span.
//
//	svg := sink.RenderSVG(scene)
//	png, err := sink.RenderPNG(scene, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(ctx, scene)
//
// # Colours
//
// [DefaultPalette] holds the standard colours. [WithPalette] and
// [WithPNGPalette] override them per call.
//
// [layout.Scene]: github.com/matzehuels/roadcost/pkg/layout.Scene
package sink
