package platemap

import (
	"gonum.org/v1/plot/vg"

	"github.com/wellmap/wellmap/pkg/wells"
)

// MeasureLabelWidth returns the horizontal space the widest legend needs to
// the right of its color bar: tick mark, padding and the widest label of any
// of the attributes. It only consults font metrics, so it can run before the
// figure is laid out.
func MeasureLabelWidth(t *wells.Table, attrs []string, sty Style) vg.Length {
	var widest vg.Length
	for _, a := range attrs {
		for _, v := range t.Unique(a) {
			widest = max(widest, sty.Tick.Width(v.String()))
		}
	}
	return sty.TickLength + sty.TickPad + widest
}
