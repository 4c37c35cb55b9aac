package estimate

import (
	"context"
	"fmt"

	"github.com/matzehuels/roadcost/pkg/layout"
	"github.com/matzehuels/roadcost/pkg/render/sink"
)

// Render paints scene in each format without touching any cache.
func Render(ctx context.Context, scene layout.Scene, formats []string, pngScale float64) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(scene, sink.WithTitles())
		case FormatPNG:
			data, err = sink.RenderPNG(scene, sink.WithScale(pngScale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, scene, sink.WithPDFSVGOptions(sink.WithTitles()))
		case FormatJSON:
			data, err = sink.RenderJSON(scene)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
