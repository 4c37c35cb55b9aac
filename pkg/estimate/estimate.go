// Package estimate runs the complete roadcost pipeline for CLI and API.
//
// # Stages
//
//  1. Validate: section, rates and formats, with every failure reported at once
//  2. Filter: spreadsheet rows → patches inside the chainage window
//  3. Compare: price unbound patches against the alternative method
//  4. Layout: map road and patches onto the diagram canvas
//  5. Render: paint the diagram in each requested format (cached)
//
// # Usage
//
//	runner := estimate.NewRunner(cache, nil, logger)
//	result, err := runner.Estimate(ctx, rows, estimate.Options{
//	    Section: road.Section{ChainageStart: 0, ChainageEnd: 500, Width: 10},
//	    Params:  road.CostParameters{PatchRepairRate: 110, AltMethodRate: 90},
//	    Formats: []string{estimate.FormatSVG},
//	})
//	fmt.Println(result.Report)
//	svg := result.Artifacts["svg"]
package estimate

import (
	"fmt"
	"time"

	"github.com/matzehuels/roadcost/pkg/cache"
	"github.com/matzehuels/roadcost/pkg/cost"
	"github.com/matzehuels/roadcost/pkg/errors"
	"github.com/matzehuels/roadcost/pkg/layout"
	"github.com/matzehuels/roadcost/pkg/road"
)

// DefaultPNGScale is the raster scale used when Options.PNGScale is zero.
const DefaultPNGScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

const invalidFormat = "invalid format: %q (must be one of: svg, png, pdf, json)"

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, invalidFormat, format)
	}
	return nil
}

// Options configures one estimate.
type Options struct {
	Section road.Section        `json:"section"`
	Params  road.CostParameters `json:"params"`

	// Formats lists diagram outputs to render. Empty renders nothing.
	Formats  []string `json:"formats,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Refresh bypasses cached artifacts; fresh renders are still stored.
	Refresh bool `json:"refresh,omitempty"`
}

// Validate reports every problem with the options as one errors.List.
func (o Options) Validate() error {
	var list errors.List
	if err := road.Validate(o.Section, o.Params); err != nil {
		if l, ok := err.(errors.List); ok {
			list = append(list, l...)
		}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			list.Add(errors.ErrCodeInvalidFormat, invalidFormat, f)
		}
	}
	if o.PNGScale < 0 {
		list.Add(errors.ErrCodeInvalidInput, "png scale cannot be negative")
	}
	return list.Err()
}

func (o Options) pngScale() float64 {
	if o.PNGScale == 0 {
		return DefaultPNGScale
	}
	return o.PNGScale
}

// ArtifactKeyOpts returns cache key options for one format.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.pngScale()
	}
	return opts
}

// Result contains the outputs of one estimate.
type Result struct {
	Patches  []road.Patch `json:"patches"`
	Skipped  int          `json:"skipped"`
	Warnings []string     `json:"warnings,omitempty"`

	Comparison cost.Comparison `json:"comparison"`
	Scene      layout.Scene    `json:"scene"`
	SceneHash  string          `json:"scene_hash"`

	// Details and Report are the human-readable summaries.
	Details string `json:"details"`
	Report  string `json:"report"`

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte `json:"-"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Stats contains timing and size information.
type Stats struct {
	Rows        int           `json:"rows"`
	Patches     int           `json:"patches"`
	CompareTime time.Duration `json:"compare_ns"`
	LayoutTime  time.Duration `json:"layout_ns"`
	RenderTime  time.Duration `json:"render_ns"`
}

// CacheInfo tracks artifact cache usage.
type CacheInfo struct {
	RenderHit bool `json:"render_hit"` // every artifact came from cache
}

func warnings(skipped int, unknown []road.Side) []string {
	var out []string
	if skipped > 0 {
		noun := "rows"
		if skipped == 1 {
			noun = "row"
		}
		out = append(out, fmt.Sprintf("%d %s skipped: outside the chainage range or missing length, width or side", skipped, noun))
	}
	for _, s := range unknown {
		out = append(out, fmt.Sprintf("unrecognised side %q: patch drawn on the centerline", string(s)))
	}
	return out
}
