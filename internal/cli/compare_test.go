package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/roadcost/pkg/config"
	"github.com/matzehuels/roadcost/pkg/cost"
	"github.com/matzehuels/roadcost/pkg/errors"
	"github.com/matzehuels/roadcost/pkg/road"
)

func TestParseFormats(t *testing.T) {
	fallback := []string{"svg"}
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty uses fallback", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , json ,", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input, fallback)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		dir    string
		want   string
	}{
		{"derived from input", "", "data/patches.xlsx", "", "data/patches"},
		{"output dir", "", "data/patches.xlsx", "out", "out/patches"},
		{"explicit base", "report/diagram", "patches.csv", "out", "report/diagram"},
		{"format extension stripped", "diagram.svg", "patches.csv", "", "diagram"},
		{"upper-case extension stripped", "diagram.PNG", "patches.csv", "", "diagram"},
		{"other extension kept", "diagram.v2", "patches.csv", "", "diagram.v2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input, tt.dir); got != filepath.FromSlash(tt.want) {
				t.Errorf("basePath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.dir, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	base := filepath.Join(dir, "nested", "diagram")
	paths, err := writeArtifacts(artifacts, []string{"svg", "json"}, base, "")
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	want := []string{base + ".svg", base + ".json"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}

	single := filepath.Join(dir, "exact.svg")
	paths, err = writeArtifacts(artifacts, []string{"svg"}, filepath.Join(dir, "exact"), single)
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if paths[0] != single {
		t.Errorf("single output path = %q, want %q", paths[0], single)
	}
	if data, _ := os.ReadFile(single); string(data) != "<svg/>" {
		t.Errorf("file content = %q", data)
	}
}

func TestParamsFallBackToConfig(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Rates = config.RatesConfig{PatchRepairRate: 120, AltMethodRate: 80, AltMethodName: "Cement", PatchLayers: 2}

	cmd := c.compareCommand()
	if err := cmd.Flags().Set("alt-rate", "40"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("patch-rate", "0"); err != nil {
		t.Fatal(err)
	}

	got := c.params(cmd, sectionOpts{patchRate: 0, altRate: 40})
	want := road.CostParameters{PatchRepairRate: 0, AltMethodRate: 40, AltMethodName: "Cement", PatchLayers: 2}
	if got != want {
		t.Errorf("params() = %+v, want %+v", got, want)
	}
}

func TestPatchTableRows(t *testing.T) {
	u := cost.Unbound([]road.Patch{
		{StartChainage: 0, Length: 400, Width: 5, Side: road.SideLeft},
		{StartChainage: 450, Length: 30, Width: 3, Side: road.SideRight},
	}, 110, 2)

	rows := patchTableRows(u)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 2 patches + total", len(rows))
	}
	if rows[0][2] != "0.00-400.00" || rows[0][6] != "$440000.00" {
		t.Errorf("first row = %v", rows[0])
	}
	if rows[2][1] != "Total (2 layers)" || rows[2][6] != cost.Money(u.Total) {
		t.Errorf("total row = %v", rows[2])
	}
	if !strings.Contains(renderPatchTable(u), "Chainage (m)") {
		t.Error("rendered table missing header")
	}
}

func TestCompareWritesDiagrams(t *testing.T) {
	dir := sandbox(t)
	sheet := writeSheet(t, dir)
	base := filepath.Join(dir, "out", "diagram")

	_, err := execute(t, "compare", sheet, "--end", "500", "--width", "10", "-f", "svg,json", "-o", base)
	if err != nil {
		t.Fatalf("compare error: %v", err)
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Error("svg file is not svg")
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json not written: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "cache", config.AppName))
	if err != nil || len(entries) == 0 {
		t.Errorf("expected file cache entries under XDG_CACHE_HOME, err=%v", err)
	}
}

func TestCompareNoCache(t *testing.T) {
	dir := sandbox(t)
	sheet := writeSheet(t, dir)

	_, err := execute(t, "compare", sheet, "--end", "500", "--width", "10", "-f", "json", "--no-cache")
	if err != nil {
		t.Fatalf("compare error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "patches.json")); err != nil {
		t.Errorf("output next to the sheet: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cache", config.AppName)); !os.IsNotExist(err) {
		t.Error("--no-cache should not create the cache dir")
	}
}

func TestCompareValidation(t *testing.T) {
	dir := sandbox(t)
	sheet := writeSheet(t, dir)

	_, err := execute(t, "compare", sheet, "--start", "500", "--end", "100", "--width", "0", "--alt-rate", "0")
	for _, code := range []errors.Code{
		errors.ErrCodeInvalidChainageRange,
		errors.ErrCodeInvalidRoadWidth,
		errors.ErrCodeInvalidAltMethodCost,
	} {
		if !errors.Is(err, code) {
			t.Errorf("error %v should carry %s", err, code)
		}
	}
}

func TestCompareRequiresSection(t *testing.T) {
	dir := sandbox(t)
	sheet := writeSheet(t, dir)

	_, err := execute(t, "compare", sheet)
	if err == nil || !strings.Contains(err.Error(), "required flag") {
		t.Errorf("error = %v, want required flag error", err)
	}
}

func TestCompareUsesConfigRates(t *testing.T) {
	dir := sandbox(t)
	sheet := writeSheet(t, dir)
	cfgPath := filepath.Join(dir, "rates.toml")
	toml := "[rates]\nalt_method_rate = 40\nalt_method_name = \"Foamed Bitumen\"\n[render]\nformats = [\"json\"]\n"
	if err := os.WriteFile(cfgPath, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "compare", sheet, "--end", "500", "--width", "10", "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("compare error: %v", err)
	}
	if c.Config.Rates.AltMethodName != "Foamed Bitumen" || c.Config.Rates.AltMethodRate != 40 {
		t.Errorf("config not loaded: %+v", c.Config.Rates)
	}
	if _, err := os.Stat(filepath.Join(dir, "patches.json")); err != nil {
		t.Errorf("formats from config not honoured: %v", err)
	}
}
