// Package layout maps a road section and its patches onto a fixed drawing
// canvas.
//
// # Overview
//
// [Compute] produces a [Scene]: plain rectangles and text anchors in pixel
// space that any sink can paint. The road is drawn top-down as a horizontal
// band; chainage runs left to right and the road width runs top to bottom.
//
//	scene, err := layout.Compute(section, patches, "Stabilisation")
//	svg := sink.RenderSVG(scene)
//
// # Scaling
//
// Chainage is scaled by RoadLengthPx / section length, relative to the
// section start. Label text shows absolute chainage, so a section starting
// at 1000 m is labelled from "1000m" at the left edge. Patch heights are the patch width as a fraction of the road
// width times RoadWidthPx.
//
// # Lateral Placement
//
// A patch's side decides its vertical position within the road band:
//
//   - left: flush with the top edge
//   - right: flush with the bottom edge
//   - center: centered on the centerline
//   - anything else: top edge on the centerline (no offset)
//
// # Determinism
//
// Compute is a pure function: identical inputs always produce an identical
// Scene, so rendered output is byte-for-byte reproducible and can be cached
// by content hash.
package layout
