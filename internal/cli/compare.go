package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadcost/pkg/cost"
	"github.com/matzehuels/roadcost/pkg/estimate"
	"github.com/matzehuels/roadcost/pkg/road"
	"github.com/matzehuels/roadcost/pkg/sheet"
)

// sectionOpts holds the flags shared by every command that prices a sheet.
type sectionOpts struct {
	start     float64 // chainage where the analysed section begins (m)
	end       float64 // chainage where it ends (m)
	width     float64 // full road width (m)
	patchRate float64 // unbound pavement rate per m²
	altRate   float64 // alternative method rate per m²
	altName   string  // alternative method display name
	layers    int     // unbound layers per patch
}

// compareOpts holds the command-line flags for the compare command.
type compareOpts struct {
	sectionOpts
	output  string  // output file (single format) or base path
	formats string  // comma-separated diagram formats
	scale   float64 // PNG raster scale
	noCache bool    // skip the artifact cache entirely
	refresh bool    // re-render even when cached
}

func (o *sectionOpts) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&o.start, "start", 0, "chainage start of the section (m)")
	cmd.Flags().Float64Var(&o.end, "end", 0, "chainage end of the section (m)")
	cmd.Flags().Float64Var(&o.width, "width", 0, "road width (m)")
	cmd.Flags().Float64Var(&o.patchRate, "patch-rate", 0, "unbound pavement rate per m² (default from config)")
	cmd.Flags().Float64Var(&o.altRate, "alt-rate", 0, "alternative method rate per m² (default from config)")
	cmd.Flags().StringVar(&o.altName, "alt-name", "", "alternative method name (default from config)")
	cmd.Flags().IntVar(&o.layers, "layers", 0, "unbound layers per patch (default from config)")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("width")
}

// params resolves cost parameters, falling back to config for unset flags.
// A flag set explicitly to zero is kept so validation can reject it.
func (c *CLI) params(cmd *cobra.Command, o sectionOpts) road.CostParameters {
	rates := c.Config.Rates
	p := road.CostParameters{
		PatchRepairRate: rates.PatchRepairRate,
		AltMethodRate:   rates.AltMethodRate,
		AltMethodName:   rates.AltMethodName,
		PatchLayers:     rates.PatchLayers,
	}
	if cmd.Flags().Changed("patch-rate") {
		p.PatchRepairRate = o.patchRate
	}
	if cmd.Flags().Changed("alt-rate") {
		p.AltMethodRate = o.altRate
	}
	if cmd.Flags().Changed("alt-name") {
		p.AltMethodName = o.altName
	}
	if cmd.Flags().Changed("layers") {
		p.PatchLayers = o.layers
	}
	return p
}

func (o sectionOpts) section() road.Section {
	return road.Section{ChainageStart: o.start, ChainageEnd: o.end, Width: o.width}
}

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var opts compareOpts

	cmd := &cobra.Command{
		Use:   "compare [sheet]",
		Short: "Compare patch repair against the alternative treatment",
		Long: `Compare reads patches from an xlsx, csv or json sheet, prices repairing
each patch as unbound pavement against treating the whole patch span with the
alternative method, and draws the road diagram.

The sheet needs the columns "Patch Start Chainage", "Patch Length",
"Patch Width" and "Side". Rows outside the section are skipped.`,
		Example: `  roadcost compare patches.xlsx --start 0 --end 500 --width 10
  roadcost compare patches.csv --end 500 --width 10 --alt-name "Lime Stabilisation" -f svg,png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eopts := estimate.Options{
				Section:  opts.section(),
				Params:   c.params(cmd, opts.sectionOpts),
				Formats:  parseFormats(opts.formats, c.Config.Render.Formats),
				PNGScale: c.Config.Render.PNGScale,
				Refresh:  opts.refresh,
			}
			if cmd.Flags().Changed("scale") {
				eopts.PNGScale = opts.scale
			}
			return c.runCompare(cmd.Context(), args[0], opts, eopts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "diagram format(s): svg, png, pdf, json (comma-separated, default from config)")
	cmd.Flags().Float64Var(&opts.scale, "scale", estimate.DefaultPNGScale, "PNG raster scale")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render diagrams even when cached")

	return cmd
}

func (c *CLI) runCompare(ctx context.Context, input string, opts compareOpts, eopts estimate.Options) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	rows, err := sheet.Open(input)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Read %d rows from %s", len(rows), filepath.Base(input)))

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var sp *spinner
	if len(eopts.Formats) > 0 {
		sp = startSpinner(ctx, os.Stderr, "Rendering "+strings.Join(eopts.Formats, ", "))
	}
	res, err := runner.Estimate(ctx, rows, eopts)
	if sp != nil {
		sp.stop()
	}
	if err != nil {
		return err
	}

	printResult(res)

	if len(eopts.Formats) == 0 {
		return nil
	}
	base := basePath(opts.output, input, c.Config.Render.OutputDir)
	paths, err := writeArtifacts(res.Artifacts, eopts.Formats, base, opts.output)
	if err != nil {
		return err
	}
	printNewline()
	printSuccess("Diagram written")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(res.Patches), res.Skipped, res.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Browse patches", fmt.Sprintf("%s inspect %s --start %g --end %g --width %g",
		appName, input, eopts.Section.ChainageStart, eopts.Section.ChainageEnd, eopts.Section.Width))
	return nil
}

// printResult prints the section details, the patch table, warnings and
// the verdict.
func printResult(res *estimate.Result) {
	fmt.Println(StyleTitle.Render("Road section"))
	fmt.Println(indentLines(res.Details))
	printNewline()

	fmt.Println(renderPatchTable(res.Comparison.Unbound))
	fmt.Println(cost.AltMethodLine(res.Comparison.AltMethod))
	printNewline()

	for _, w := range res.Warnings {
		printWarning("%s", w)
	}
	printSuccess("%s", res.Comparison.Verdict())
}

// basePath derives the base output path (without extension).
// An explicit output wins, with a known format extension stripped. Otherwise
// the input's name is used, placed in dir when dir is set.
func basePath(output, input, dir string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if estimate.ValidFormats[strings.ToLower(strings.TrimPrefix(ext, "."))] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if dir != "" {
		return filepath.Join(dir, filepath.Base(base))
	}
	return base
}

// writeArtifacts writes one file per format and returns the paths in format
// order. A single format with an explicit output path is written there as-is.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
