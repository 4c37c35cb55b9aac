// Package pkg provides the core libraries for roadcost, a tool that prices
// unbound pavement patch repairs on a road section against a full-width
// alternative treatment and draws the section as a schematic diagram.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Domain logic ([road], [cost], [layout])
//  2. Input and output ([sheet], [render], [render/sink])
//  3. Orchestration and infrastructure ([estimate], [cache], [config],
//     [observability], [errors], [buildinfo])
//
// # Architecture
//
// The typical data flow:
//
//	Condition sheet (CSV/XLSX)
//	         ↓
//	    [sheet] package (decode rows)
//	         ↓
//	    [road] package (filter patches, validate section and rates)
//	         ↓
//	    [cost] package (unbound vs alternative method)
//	         ↓
//	    [layout] package (scene geometry)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	rows, _ := sheet.Open("condition.xlsx")
//
//	runner := estimate.NewRunner(nil, nil, nil)
//	res, err := runner.Estimate(ctx, rows, estimate.Options{
//	    Section: road.Section{ChainageStart: 0, ChainageEnd: 500, Width: 10},
//	    Params:  road.CostParameters{PatchRepairRate: 110, AltMethodRate: 90},
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	    return
//	}
//	fmt.Println(res.Report)
//	os.WriteFile("section.svg", res.Artifacts["svg"], 0o644)
//
// # Main Packages
//
// [road] - Section, patch and cost parameter types, row filtering and
// validation.
//
// [cost] - Unbound patch cost, alternative method cost and the comparison
// verdict with its textual report.
//
// [layout] - Maps a section and its patches onto a [layout.Scene]: the road
// rectangle, the alternative-method span, patch rectangles, labels and legend.
//
// [render/sink] - Scene renderers for SVG, PNG, PDF and JSON.
//
// [estimate] - The estimate pipeline (filter, validate, compare, lay out,
// render) used by both the CLI and the HTTP API, with artifact caching.
//
// [cache] - File, Redis and no-op cache backends plus key scoping.
//
// [road]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/road
// [cost]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/cost
// [layout]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/layout
// [layout.Scene]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/layout#Scene
// [sheet]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/sheet
// [render]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/render/sink
// [estimate]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/estimate
// [cache]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/roadcost/pkg/buildinfo
package pkg
