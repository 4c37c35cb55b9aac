package layout

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/matzehuels/roadcost/pkg/errors"
	"github.com/matzehuels/roadcost/pkg/road"
)

func scenario() (road.Section, []road.Patch) {
	section := road.Section{ChainageStart: 0, ChainageEnd: 500, Width: 10}
	patches := []road.Patch{
		{StartChainage: 0, Length: 400, Width: 5, Side: road.SideLeft},
		{StartChainage: 450, Length: 30, Width: 3, Side: road.SideRight},
		{StartChainage: 480, Length: 20, Width: 4, Side: road.SideCenter},
	}
	return section, patches
}

func TestComputeRoadAndSpan(t *testing.T) {
	section, patches := scenario()
	scene, err := Compute(section, patches, "Stabilisation")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	wantRoad := Rect{X: 50, Y: 150, Width: 900, Height: 100}
	if scene.Road != wantRoad {
		t.Errorf("Road = %+v, want %+v", scene.Road, wantRoad)
	}
	wantAlt := Rect{X: 50, Y: 150, Width: 900, Height: 100}
	if scene.AltMethod != wantAlt {
		t.Errorf("AltMethod = %+v, want %+v", scene.AltMethod, wantAlt)
	}
	if scene.Width != 1000 || scene.Height != 350 {
		t.Errorf("canvas = %vx%v, want 1000x350", scene.Width, scene.Height)
	}
}

func TestComputePatchPlacement(t *testing.T) {
	section, patches := scenario()
	scene, err := Compute(section, patches, "Stabilisation")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(scene.Patches) != 3 {
		t.Fatalf("len(Patches) = %d, want 3", len(scene.Patches))
	}

	tests := []struct {
		name string
		got  PatchRect
		want Rect
	}{
		// scale = 900/500 = 1.8 px per meter
		{"left", scene.Patches[0], Rect{X: 50, Y: 150, Width: 720, Height: 50}},
		{"right", scene.Patches[1], Rect{X: 50 + 450*1.8, Y: 250 - 30, Width: 30 * 1.8, Height: 30}},
		{"center", scene.Patches[2], Rect{X: 50 + 480*1.8, Y: 200 - 20, Width: 20 * 1.8, Height: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approxRect(tt.got.Rect, tt.want) {
				t.Errorf("rect = %+v, want %+v", tt.got.Rect, tt.want)
			}
		})
	}
	if scene.Patches[2].Index != 3 || scene.Patches[2].Side != road.SideCenter {
		t.Errorf("Patches[2] metadata = %d/%s", scene.Patches[2].Index, scene.Patches[2].Side)
	}
}

func TestComputeMixedCaseSide(t *testing.T) {
	section := road.Section{ChainageStart: 0, ChainageEnd: 100, Width: 8}
	lower := []road.Patch{{StartChainage: 10, Length: 20, Width: 2, Side: road.ParseSide("center")}}
	upper := []road.Patch{{StartChainage: 10, Length: 20, Width: 2, Side: road.ParseSide("CENTER")}}

	a, err := Compute(section, lower, "x")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	b, err := Compute(section, upper, "x")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if a.Patches[0] != b.Patches[0] {
		t.Errorf("CENTER = %+v, center = %+v", b.Patches[0], a.Patches[0])
	}
}

func TestComputeUnknownSideSitsOnCenterline(t *testing.T) {
	section := road.Section{ChainageStart: 0, ChainageEnd: 100, Width: 8}
	patches := []road.Patch{{StartChainage: 10, Length: 20, Width: 2, Side: "verge"}}

	scene, err := Compute(section, patches, "x")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if scene.Patches[0].Y != 200 {
		t.Errorf("unknown side Y = %v, want centerline 200", scene.Patches[0].Y)
	}
}

func TestComputeOffsetSection(t *testing.T) {
	section := road.Section{ChainageStart: 1000, ChainageEnd: 1200, Width: 6}
	patches := []road.Patch{
		{StartChainage: 1050, Length: 20, Width: 3, Side: road.SideLeft},
		{StartChainage: 1150, Length: 50, Width: 6, Side: road.SideRight},
	}

	scene, err := Compute(section, patches, "Stabilisation")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	// scale = 900/200 = 4.5
	if got := scene.Patches[0].X; got != 50+50*4.5 {
		t.Errorf("Patches[0].X = %v, want %v", got, 50+50*4.5)
	}
	if got := scene.Patches[1].Right(); got != 950 {
		t.Errorf("last patch right edge = %v, want 950", got)
	}
	if got := scene.AltMethod.X; got != 50+50*4.5 {
		t.Errorf("AltMethod.X = %v, want %v", got, 50+50*4.5)
	}
	if scene.Labels[0].Text != "1000m" || scene.Labels[5].Text != "1200m" {
		t.Errorf("labels = %q..%q, want 1000m..1200m", scene.Labels[0].Text, scene.Labels[5].Text)
	}
}

func TestComputeLabels(t *testing.T) {
	section, patches := scenario()
	scene, err := Compute(section, patches, "Stabilisation")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(scene.Labels) != 6 {
		t.Fatalf("len(Labels) = %d, want 6", len(scene.Labels))
	}
	wantText := []string{"0m", "100m", "200m", "300m", "400m", "500m"}
	for i, l := range scene.Labels {
		if l.Text != wantText[i] {
			t.Errorf("Labels[%d].Text = %q, want %q", i, l.Text, wantText[i])
		}
		if wantX := 50 + float64(i)*180; l.X != wantX {
			t.Errorf("Labels[%d].X = %v, want %v", i, l.X, wantX)
		}
		if l.Y != 270 {
			t.Errorf("Labels[%d].Y = %v, want 270", i, l.Y)
		}
	}
}

func TestComputeLegend(t *testing.T) {
	section, patches := scenario()
	scene, err := Compute(section, patches, "Cement Stabilisation")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(scene.Legend) != 2 {
		t.Fatalf("len(Legend) = %d, want 2", len(scene.Legend))
	}
	if scene.Legend[0].Kind != KindAltMethod || scene.Legend[0].Label.Text != "Cement Stabilisation" {
		t.Errorf("Legend[0] = %+v", scene.Legend[0])
	}
	if scene.Legend[1].Kind != KindPatch || scene.Legend[1].Label.Text != PatchLegend {
		t.Errorf("Legend[1] = %+v", scene.Legend[1])
	}

	unnamed, err := Compute(section, patches, "")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if unnamed.Legend[0].Label.Text != road.DefaultAltMethodName {
		t.Errorf("empty name legend = %q, want %q", unnamed.Legend[0].Label.Text, road.DefaultAltMethodName)
	}
}

func TestComputeWithCanvas(t *testing.T) {
	section, patches := scenario()
	c := DefaultCanvas()
	c.RoadLengthPx = 500
	c.Labels = 2

	scene, err := Compute(section, patches, "x", WithCanvas(c))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if scene.Road.Width != 500 {
		t.Errorf("Road.Width = %v, want 500", scene.Road.Width)
	}
	if len(scene.Labels) != 3 {
		t.Errorf("len(Labels) = %d, want 3", len(scene.Labels))
	}
	if scene.Patches[0].Width != 400 {
		t.Errorf("Patches[0].Width = %v, want 400", scene.Patches[0].Width)
	}
}

func TestComputeErrors(t *testing.T) {
	section, _ := scenario()
	if _, err := Compute(section, nil, "x"); !errors.Is(err, errors.ErrCodeNoPatches) {
		t.Errorf("empty patches error = %v, want %s", err, errors.ErrCodeNoPatches)
	}

	flat := road.Section{ChainageStart: 10, ChainageEnd: 10, Width: 5}
	patches := []road.Patch{{StartChainage: 10, Length: 1, Width: 1, Side: road.SideLeft}}
	if _, err := Compute(flat, patches, "x"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero-length section error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestComputeDeterministic(t *testing.T) {
	section, patches := scenario()
	a, err := Compute(section, patches, "Stabilisation")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	b, err := Compute(section, patches, "Stabilisation")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if !bytes.Equal(ja, jb) {
		t.Error("Compute() should produce identical scenes for identical inputs")
	}
}

func approxRect(a, b Rect) bool {
	const eps = 1e-9
	near := func(x, y float64) bool { return x-y < eps && y-x < eps }
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Width, b.Width) && near(a.Height, b.Height)
}
