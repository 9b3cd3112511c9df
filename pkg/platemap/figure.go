// Package platemap draws well tables as plate maps.
//
// A plate map has one row of subplots per attribute and one column per
// plate. Each subplot shows the plate's wells colored by the attribute's
// value, and every row ends with a legend mapping colors back to values.
//
// Building a figure happens in a fixed order:
//
//  1. [PickAttrs] chooses the attributes.
//  2. [NewDimensions] finds the grid shared by all plates.
//  3. [MeasureLabelWidth] sizes the legend labels.
//  4. [NewPlan] computes the exact geometry.
//  5. [NewColorScale] and [PlateMatrix] fill in each subplot.
//
// [PlotLayout] runs all of these. The resulting [Figure] can be drawn onto
// any gonum/plot canvas; see the render package for file output.
package platemap

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wellmap/wellmap/pkg/wells"
)

// Options control how a figure is built. Zero values select the defaults.
type Options struct {
	Colormap *Colormap
	Spacing  *Spacing
	Style    *Style
}

// Figure is a fully laid out plate map.
type Figure struct {
	Attrs  []string
	Plates []string
	Dims   Dimensions
	Plan   Plan
	// Scales holds one color scale per attribute, in Attrs order.
	Scales []*ColorScale
	// Matrices[i][j] holds the bins of attribute i on plate j.
	Matrices [][]*mat.Dense
	Style    Style
}

// PlotLayout builds the figure for the given attributes, or for every
// informative attribute when attrs is empty. It adds the implicit plate to
// tables that do not name any.
func PlotLayout(t *wells.Table, attrs []string, opts Options) (*Figure, error) {
	t.EnsurePlate()

	picked, err := PickAttrs(t, attrs)
	if err != nil {
		return nil, err
	}

	cmap := opts.Colormap
	if cmap == nil {
		cm, err := LookupColormap(DefaultColormap)
		if err != nil {
			return nil, err
		}
		cmap = &cm
	}
	sp := DefaultSpacing()
	if opts.Spacing != nil {
		sp = *opts.Spacing
	}
	sty := DefaultStyle()
	if opts.Style != nil {
		sty = *opts.Style
	}

	f := &Figure{
		Attrs:  picked,
		Plates: t.Plates(),
		Dims:   NewDimensions(t, picked),
		Style:  sty,
	}
	labelWidth := MeasureLabelWidth(t, picked, sty)
	f.Plan = NewPlan(f.Dims, picked, len(f.Plates), labelWidth, sp)

	for _, a := range picked {
		scale := NewColorScale(t.Column(a), *cmap)
		row := make([]*mat.Dense, len(f.Plates))
		for j, p := range f.Plates {
			row[j] = PlateMatrix(t, p, a, f.Dims, scale)
		}
		f.Scales = append(f.Scales, scale)
		f.Matrices = append(f.Matrices, row)
	}
	return f, nil
}

// Size returns the width and height of the figure.
func (f *Figure) Size() (w, h vg.Length) {
	return f.Plan.Width(), f.Plan.Height()
}

// Draw draws the figure with its bottom left corner at c.Min.
func (f *Figure) Draw(c draw.Canvas) {
	for i, a := range f.Attrs {
		for j, p := range f.Plates {
			lbl := plateLabels{
				rowTicks: j == 0,
				colTicks: i == 0,
			}
			if j == 0 {
				lbl.attr = a
			}
			if i == 0 {
				lbl.plate = p
			}
			drawPlate(c, f.rect(c, i, j), f.Matrices[i][j], f.Scales[i], f.Dims, f.Style, lbl)
		}
		drawColorbar(c, f.rect(c, i, len(f.Plates)), f.Scales[i], f.Style)
	}
}

func (f *Figure) rect(c draw.Canvas, i, j int) vg.Rectangle {
	r := f.Plan.Rect(i, j)
	return vg.Rectangle{Min: r.Min.Add(c.Min), Max: r.Max.Add(c.Min)}
}
