package cli

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/wellmap/wellmap/pkg/platemap"
)

const (
	cellFilled = "██"
	cellEmpty  = "··"
)

var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewAxisStyle  = lipgloss.NewStyle().Foreground(colorGray)
	previewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// previewModel shows one attribute of one plate at a time.
type previewModel struct {
	fig   *platemap.Figure
	attr  int
	plate int
}

func newPreviewModel(fig *platemap.Figure) previewModel {
	return previewModel{fig: fig}
}

func runPreview(ctx context.Context, fig *platemap.Figure) error {
	p := tea.NewProgram(newPreviewModel(fig), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "tab":
		m.attr = (m.attr + 1) % len(m.fig.Attrs)
	case "left", "h", "shift+tab":
		m.attr = (m.attr + len(m.fig.Attrs) - 1) % len(m.fig.Attrs)
	case "down", "j":
		m.plate = (m.plate + 1) % len(m.fig.Plates)
	case "up", "k":
		m.plate = (m.plate + len(m.fig.Plates) - 1) % len(m.fig.Plates)
	}
	return m, nil
}

func (m previewModel) View() string {
	fig := m.fig
	scale := fig.Scales[m.attr]
	grid := fig.Matrices[m.attr][m.plate]

	var b strings.Builder
	title := fig.Attrs[m.attr]
	if p := fig.Plates[m.plate]; p != "" {
		title += "  " + previewAxisStyle.Render("plate "+p)
	}
	b.WriteString(previewTitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString("   ")
	for _, col := range fig.Dims.XTickLabels() {
		b.WriteString(previewAxisStyle.Render(fmt.Sprintf("%-3s", col)))
	}
	b.WriteString("\n")

	for i, row := range fig.Dims.YTickLabels() {
		b.WriteString(previewAxisStyle.Render(fmt.Sprintf("%-3s", row)))
		for j := range fig.Dims.NumCols {
			bin := grid.At(i, j)
			if math.IsNaN(bin) {
				b.WriteString(previewHelpStyle.Render(cellEmpty) + " ")
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(termColor(scale.Color(bin))).Render(cellFilled) + " ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for k, label := range scale.TickLabels() {
		swatch := scale.Color(float64(k))
		b.WriteString(legendStyle(swatch).Render(" " + label + " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "←/→ attribute"
	if len(fig.Plates) > 1 {
		help += "  ↑/↓ plate"
	}
	b.WriteString(previewHelpStyle.Render(help + "  q quit"))
	return b.String()
}

// termColor converts a figure color to a true-color terminal color.
func termColor(c color.Color) lipgloss.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return lipgloss.Color("")
	}
	return lipgloss.Color(cf.Hex())
}

// legendStyle draws a label on its own color, in black or white depending
// on which reads better against it.
func legendStyle(c color.Color) lipgloss.Style {
	st := lipgloss.NewStyle().Background(termColor(c))
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return st
	}
	if l, _, _ := cf.Lab(); l > 0.6 {
		return st.Foreground(lipgloss.Color("#000000"))
	}
	return st.Foreground(lipgloss.Color("#ffffff"))
}
