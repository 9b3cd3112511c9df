package render

import (
	"encoding/json"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/wellmap/wellmap/pkg/platemap"
)

type jsonFigure struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Plates []string   `json:"plates"`
	Rows   []string   `json:"rows"`
	Cols   []string   `json:"cols"`
	Attrs  []jsonAttr `json:"attrs"`
}

type jsonAttr struct {
	Name   string       `json:"name"`
	Legend []jsonLegend `json:"legend"`
	// Wells[j][i][k] is the legend index of row i, column k on plate j, or
	// -1 for an empty well.
	Wells [][][]int `json:"wells"`
}

type jsonLegend struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// RenderJSON exports the layout of fig. Sizes are in points.
func RenderJSON(fig *platemap.Figure) ([]byte, error) {
	w, h := fig.Size()
	out := jsonFigure{
		Width:  float64(w),
		Height: float64(h),
		Plates: fig.Plates,
		Rows:   fig.Dims.YTickLabels(),
		Cols:   fig.Dims.XTickLabels(),
	}
	for i, name := range fig.Attrs {
		scale := fig.Scales[i]
		a := jsonAttr{Name: name}
		for k, label := range scale.TickLabels() {
			a.Legend = append(a.Legend, jsonLegend{Label: label, Color: Hex(scale.Color(float64(k)))})
		}
		for _, m := range fig.Matrices[i] {
			rows, cols := m.Dims()
			grid := make([][]int, rows)
			for r := range grid {
				grid[r] = make([]int, cols)
				for c := range grid[r] {
					v := m.At(r, c)
					if math.IsNaN(v) {
						grid[r][c] = -1
					} else {
						grid[r][c] = int(v)
					}
				}
			}
			a.Wells = append(a.Wells, grid)
		}
		out.Attrs = append(out.Attrs, a)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Hex formats a color as #rrggbb.
func Hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#ffffff"
	}
	return cf.Hex()
}
