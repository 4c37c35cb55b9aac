package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/roadcost/pkg/estimate"
	"github.com/matzehuels/roadcost/pkg/road"
)

func inspectModel(t *testing.T) PatchListModel {
	t.Helper()
	rows := []road.Row{
		{road.FieldStartChainage: 0.0, road.FieldLength: 400.0, road.FieldWidth: 5.0, road.FieldSide: "left"},
		{road.FieldStartChainage: 450.0, road.FieldLength: 30.0, road.FieldWidth: 3.0, road.FieldSide: "right"},
		{road.FieldStartChainage: 480.0, road.FieldLength: 20.0, road.FieldWidth: 4.0, road.FieldSide: "verge"},
	}
	res, err := estimate.NewRunner(nil, nil, nil).Estimate(context.Background(), rows, estimate.Options{
		Section: road.Section{ChainageStart: 0, ChainageEnd: 500, Width: 10},
		Params:  road.CostParameters{PatchRepairRate: 110, AltMethodRate: 90, AltMethodName: "Stabilisation"},
	})
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	return NewPatchListModel(res)
}

func press(m PatchListModel, key string) (PatchListModel, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(PatchListModel), cmd
}

func TestPatchListNavigation(t *testing.T) {
	m := inspectModel(t)

	m, _ = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above first patch: %d", m.Cursor)
	}
	m, _ = press(m, "down")
	m, _ = press(m, "j")
	m, _ = press(m, "down")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped at last patch)", m.Cursor)
	}
	m, _ = press(m, "k")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
	m, _ = press(m, "g")
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("home: cursor/offset = %d/%d", m.Cursor, m.Offset)
	}
}

func TestPatchListScrolls(t *testing.T) {
	m := inspectModel(t)
	m.Height = 1

	m, _ = press(m, "down")
	if m.Offset != 1 {
		t.Errorf("offset = %d, want 1 after scrolling past the window", m.Offset)
	}
	m, _ = press(m, "G")
	if m.Cursor != 2 || m.Offset != 2 {
		t.Errorf("end: cursor/offset = %d/%d, want 2/2", m.Cursor, m.Offset)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if h := next.(PatchListModel).Height; h != 5 {
		t.Errorf("height = %d, want minimum 5", h)
	}
}

func TestPatchListView(t *testing.T) {
	m := inspectModel(t)
	view := m.View()

	for _, want := range []string{"Patches", "▸ ", "[1/3]", "Stabilisation", "is cheaper"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = press(m, "enter")
	if !m.Detailed {
		t.Fatal("enter should toggle details")
	}
	if !strings.Contains(m.View(), "Patch 1 (left") {
		t.Error("detail line missing for selected patch")
	}
}

func TestPatchListQuit(t *testing.T) {
	m := inspectModel(t)
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		if _, cmd := m.Update(msg); cmd == nil {
			t.Errorf("%q should quit", msg.String())
		}
	}
}
