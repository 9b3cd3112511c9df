package platemap

import (
	"gonum.org/v1/plot/vg"
)

// Spacing holds the fixed distances used to lay out a figure.
type Spacing struct {
	// Cell is the edge of one well.
	Cell vg.Length
	// PadWidth separates neighboring plates, PadHeight neighboring
	// attributes.
	PadWidth  vg.Length
	PadHeight vg.Length
	// BarWidth is the width of a legend color bar and the minimum height
	// of one of its swatches.
	BarWidth    vg.Length
	BarPadWidth vg.Length

	TopMargin    vg.Length
	LeftMargin   vg.Length
	RightMargin  vg.Length
	BottomMargin vg.Length
}

// DefaultSpacing returns the standard spacing.
func DefaultSpacing() Spacing {
	const (
		cell      = 0.25 * vg.Inch
		padWidth  = 0.20 * vg.Inch
		padHeight = 0.20 * vg.Inch
	)
	return Spacing{
		Cell:         cell,
		PadWidth:     padWidth,
		PadHeight:    padHeight,
		BarWidth:     0.15 * vg.Inch,
		BarPadWidth:  padWidth,
		TopMargin:    0.5 * vg.Inch,
		LeftMargin:   0.5 * vg.Inch,
		RightMargin:  padWidth,
		BottomMargin: padHeight,
	}
}

// Plan is the exact geometry of a figure: alternating margins/pads and
// content along each axis. Subplot (i, j) is attribute i and plate j; column
// j == NumPlates is the legend.
type Plan struct {
	HDivs     []vg.Length
	VDivs     []vg.Length
	NumPlates int
	NumAttrs  int
}

// NewPlan lays out one row per attribute and one column per plate, plus a
// legend column wide enough for labelWidth. It panics when there are no
// plates or no attributes.
func NewPlan(dims Dimensions, attrs []string, numPlates int, labelWidth vg.Length, sp Spacing) Plan {
	if numPlates < 1 || len(attrs) < 1 {
		panic("platemap: a figure needs at least one plate and one attribute")
	}

	plateWidth := sp.Cell * vg.Length(dims.NumCols)
	h := []vg.Length{sp.LeftMargin}
	for range numPlates {
		h = append(h, plateWidth, sp.PadWidth)
	}
	h = append(h[:len(h)-1], sp.BarPadWidth, sp.BarWidth, sp.RightMargin+labelWidth)

	v := []vg.Length{sp.TopMargin}
	for _, a := range attrs {
		rowHeight := max(sp.Cell*vg.Length(dims.NumRows), sp.BarWidth*vg.Length(dims.NumValues[a]))
		v = append(v, rowHeight, sp.PadHeight)
	}
	v[len(v)-1] = sp.BottomMargin

	return Plan{HDivs: h, VDivs: v, NumPlates: numPlates, NumAttrs: len(attrs)}
}

// Width returns the total width of the figure.
func (p Plan) Width() vg.Length { return sum(p.HDivs) }

// Height returns the total height of the figure.
func (p Plan) Height() vg.Length { return sum(p.VDivs) }

// Rect returns the rectangle reserved for subplot (i, j), with the origin in
// the bottom left corner of the figure.
func (p Plan) Rect(i, j int) vg.Rectangle {
	x := sum(p.HDivs[:2*j+1])
	w := p.HDivs[2*j+1]
	top := sum(p.VDivs[:2*i+1])
	h := p.VDivs[2*i+1]
	y := p.Height() - top - h
	return vg.Rectangle{
		Min: vg.Point{X: x, Y: y},
		Max: vg.Point{X: x + w, Y: y + h},
	}
}

func sum(ls []vg.Length) vg.Length {
	var s vg.Length
	for _, l := range ls {
		s += l
	}
	return s
}
