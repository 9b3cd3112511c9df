package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wellmap/wellmap/pkg/pipeline"
	"github.com/wellmap/wellmap/pkg/platemap"
	"github.com/wellmap/wellmap/pkg/wells"
)

func testFigure(t *testing.T) *platemap.Figure {
	t.Helper()
	tbl := wells.NewTable([]string{"drug", "conc"}, true)
	for _, plate := range []string{"P1", "P2"} {
		for i := range 2 {
			for j := range 3 {
				if plate == "P2" && j == 2 {
					continue
				}
				tbl.Append(wells.Row{Plate: plate, RowI: i, ColJ: j, Values: map[string]wells.Value{
					"drug": wells.StringValue([]string{"aspirin", "ibuprofen"}[i]),
					"conc": wells.IntValue(int64(j)),
				}})
			}
		}
	}
	fig, err := pipeline.Build(tbl, nil, platemap.DefaultColormap)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return fig
}

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func TestPreviewNavigation(t *testing.T) {
	m := newPreviewModel(testFigure(t))

	right := tea.KeyMsg{Type: tea.KeyRight}
	left := tea.KeyMsg{Type: tea.KeyLeft}
	down := tea.KeyMsg{Type: tea.KeyDown}

	got := press(m, right).(previewModel)
	if got.attr != 1 {
		t.Errorf("attr after right = %d, want 1", got.attr)
	}
	got = press(m, right, right).(previewModel)
	if got.attr != 0 {
		t.Errorf("attr should wrap around, got %d", got.attr)
	}
	got = press(m, left).(previewModel)
	if got.attr != 1 {
		t.Errorf("attr after left = %d, want 1", got.attr)
	}
	got = press(m, down).(previewModel)
	if got.plate != 1 {
		t.Errorf("plate after down = %d, want 1", got.plate)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestPreviewView(t *testing.T) {
	m := newPreviewModel(testFigure(t))
	view := m.View()
	for _, want := range []string{"drug", "plate P1", "A", "B", "aspirin", "ibuprofen", cellFilled} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m.plate = 1
	if view := m.View(); !strings.Contains(view, cellEmpty) {
		t.Error("View() should mark wells missing from the plate")
	}
}
