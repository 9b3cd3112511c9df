package platemap

import (
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// drawColorbar fills r with one swatch per bin, the first value on top, and
// labels each swatch on the right.
func drawColorbar(c draw.Canvas, r vg.Rectangle, scale *ColorScale, sty Style) {
	n := scale.Len()
	if n == 0 {
		return
	}
	h := (r.Max.Y - r.Min.Y) / vg.Length(n)
	labels := scale.TickLabels()
	ts := sty.tick(draw.XLeft, draw.YCenter)

	for k, bin := range scale.Ticks() {
		y1 := r.Max.Y - h*vg.Length(k)
		y0 := y1 - h
		c.FillPolygon(scale.Color(bin), []vg.Point{
			{X: r.Min.X, Y: y0}, {X: r.Max.X, Y: y0}, {X: r.Max.X, Y: y1}, {X: r.Min.X, Y: y1},
		})

		mid := (y0 + y1) / 2
		c.StrokeLine2(sty.Frame, r.Max.X, mid, r.Max.X+sty.TickLength, mid)
		c.FillText(ts, vg.Point{X: r.Max.X + sty.TickLength + sty.TickPad, Y: mid}, labels[k])
	}
	strokeFrame(c, sty.Frame, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}
