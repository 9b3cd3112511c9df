package platemap

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Style controls the look of a figure. Sizes are independent of the layout
// spacing, which only decides where things go.
type Style struct {
	// Label is used for attribute and plate names.
	Label draw.TextStyle
	// Tick is used for row letters, column numbers and legend labels.
	Tick draw.TextStyle

	// TickLength is the length of the legend tick marks; TickPad separates
	// tick labels from whatever they label.
	TickLength vg.Length
	TickPad    vg.Length

	Grid  draw.LineStyle
	Frame draw.LineStyle
}

// DefaultStyle returns the default figure style.
func DefaultStyle() Style {
	sans := font.Font{Typeface: "Liberation", Variant: "Sans"}

	var s Style
	s.Label = text.Style{
		Color:   color.Black,
		Font:    font.From(sans, 10),
		XAlign:  draw.XCenter,
		YAlign:  draw.YBottom,
		Handler: plot.DefaultTextHandler,
	}
	s.Tick = text.Style{
		Color:   color.Black,
		Font:    font.From(sans, 9),
		Handler: plot.DefaultTextHandler,
	}
	s.TickLength = vg.Points(3.5)
	s.TickPad = vg.Points(3.5)
	s.Grid = draw.LineStyle{Color: color.Gray{Y: 0xb0}, Width: vg.Points(0.8)}
	s.Frame = draw.LineStyle{Color: color.Black, Width: vg.Points(0.8)}
	return s
}

func (s Style) tick(x draw.XAlignment, y draw.YAlignment) draw.TextStyle {
	t := s.Tick
	t.XAlign, t.YAlign = x, y
	return t
}

// rowLabel is the attribute name, written upwards along the left edge.
func (s Style) rowLabel() draw.TextStyle {
	t := s.Label
	t.Rotation = math.Pi / 2
	t.XAlign, t.YAlign = draw.XCenter, draw.YBottom
	return t
}
