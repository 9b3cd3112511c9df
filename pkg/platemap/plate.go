package platemap

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wellmap/wellmap/pkg/wells"
)

// PlateMatrix returns the bins of attr for every well of one plate, indexed
// by [row_i - I0][col_j - J0]. Wells that are not in the table are NaN.
func PlateMatrix(t *wells.Table, plate, attr string, dims Dimensions, scale *ColorScale) *mat.Dense {
	m := mat.NewDense(dims.NumRows, dims.NumCols, nil)
	for i := range dims.NumRows {
		for j := range dims.NumCols {
			m.Set(i, j, math.NaN())
		}
	}
	for _, r := range t.Rows {
		if r.Plate != plate {
			continue
		}
		m.Set(r.RowI-dims.I0, r.ColJ-dims.J0, scale.Transform(r.Values[attr]))
	}
	return m
}

// plateAxes places the cells of a plate inside its reserved rectangle. The
// cells are square and centered.
type plateAxes struct {
	origin vg.Point // top left corner of cell (0, 0)
	cell   vg.Length
	rows   int
	cols   int
}

func newPlateAxes(r vg.Rectangle, rows, cols int) plateAxes {
	w, h := r.Max.X-r.Min.X, r.Max.Y-r.Min.Y
	cell := min(w/vg.Length(cols), h/vg.Length(rows))
	gw, gh := cell*vg.Length(cols), cell*vg.Length(rows)
	return plateAxes{
		origin: vg.Point{X: r.Min.X + (w-gw)/2, Y: r.Max.Y - (h-gh)/2},
		cell:   cell,
		rows:   rows,
		cols:   cols,
	}
}

func (a plateAxes) left() vg.Length   { return a.origin.X }
func (a plateAxes) right() vg.Length  { return a.origin.X + a.cell*vg.Length(a.cols) }
func (a plateAxes) top() vg.Length    { return a.origin.Y }
func (a plateAxes) bottom() vg.Length { return a.origin.Y - a.cell*vg.Length(a.rows) }

// x returns the horizontal position of column coordinate j; whole numbers
// are cell centers.
func (a plateAxes) x(j float64) vg.Length {
	return a.origin.X + a.cell*vg.Length(j+0.5)
}

// y returns the vertical position of row coordinate i. Row 0 is at the top.
func (a plateAxes) y(i float64) vg.Length {
	return a.origin.Y - a.cell*vg.Length(i+0.5)
}

// plateLabels says which labels a subplot carries.
type plateLabels struct {
	rowTicks bool   // row letters on the left
	colTicks bool   // column numbers on top
	attr     string // attribute name on the left
	plate    string // plate name on top
}

// drawPlate draws one plate as a grid of colored cells.
func drawPlate(c draw.Canvas, r vg.Rectangle, m *mat.Dense, scale *ColorScale, dims Dimensions, sty Style, lbl plateLabels) {
	rows, cols := m.Dims()
	a := newPlateAxes(r, rows, cols)

	for i := range rows {
		for j := range cols {
			clr := scale.Color(m.At(i, j))
			if clr == nil {
				continue
			}
			x0, x1 := a.x(float64(j)-0.5), a.x(float64(j)+0.5)
			y0, y1 := a.y(float64(i)+0.5), a.y(float64(i)-0.5)
			c.FillPolygon(clr, []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}})
		}
	}

	// Grid lines at the half-integer offsets between cells.
	for j := 1; j < cols; j++ {
		x := a.x(float64(j) - 0.5)
		c.StrokeLine2(sty.Grid, x, a.bottom(), x, a.top())
	}
	for i := 1; i < rows; i++ {
		y := a.y(float64(i) - 0.5)
		c.StrokeLine2(sty.Grid, a.left(), y, a.right(), y)
	}
	strokeFrame(c, sty.Frame, a.left(), a.bottom(), a.right(), a.top())

	tickHeight := sty.Tick.Height("0")
	rowTickWidth := vg.Length(0)
	if lbl.rowTicks {
		ts := sty.tick(draw.XRight, draw.YCenter)
		for k, label := range dims.YTickLabels() {
			c.FillText(ts, vg.Point{X: a.left() - sty.TickPad, Y: a.y(float64(k))}, label)
			rowTickWidth = max(rowTickWidth, ts.Width(label))
		}
	}
	if lbl.colTicks {
		ts := sty.tick(draw.XCenter, draw.YBottom)
		for k, label := range dims.XTickLabels() {
			c.FillText(ts, vg.Point{X: a.x(float64(k)), Y: a.top() + sty.TickPad}, label)
		}
	}
	if lbl.attr != "" {
		x := a.left() - sty.TickPad - rowTickWidth - sty.TickPad
		c.FillText(sty.rowLabel(), vg.Point{X: x, Y: (a.top() + a.bottom()) / 2}, lbl.attr)
	}
	if lbl.plate != "" {
		y := a.top() + sty.TickPad
		if lbl.colTicks {
			y += tickHeight + sty.TickPad
		}
		c.FillText(sty.Label, vg.Point{X: (a.left() + a.right()) / 2, Y: y}, lbl.plate)
	}
}

func strokeFrame(c draw.Canvas, sty draw.LineStyle, x0, y0, x1, y1 vg.Length) {
	c.StrokeLines(sty, []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0}})
}
