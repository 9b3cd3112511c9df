package platemap

import (
	"github.com/wellmap/wellmap/pkg/wells"
)

// Dimensions is the grid shared by every plate in a figure.
type Dimensions struct {
	I0, J0           int
	NumRows, NumCols int
	// NumValues is the number of distinct values of each attribute, which
	// decides how tall its legend must be.
	NumValues map[string]int
}

// NewDimensions computes the bounding grid of all wells in the table.
func NewDimensions(t *wells.Table, attrs []string) Dimensions {
	d := Dimensions{NumValues: make(map[string]int, len(attrs))}
	if t.Len() > 0 {
		i0, i1 := t.Rows[0].RowI, t.Rows[0].RowI
		j0, j1 := t.Rows[0].ColJ, t.Rows[0].ColJ
		for _, r := range t.Rows[1:] {
			i0, i1 = min(i0, r.RowI), max(i1, r.RowI)
			j0, j1 = min(j0, r.ColJ), max(j1, r.ColJ)
		}
		d.I0, d.J0 = i0, j0
		d.NumRows, d.NumCols = i1-i0+1, j1-j0+1
	}
	for _, a := range attrs {
		d.NumValues[a] = t.NUnique(a)
	}
	return d
}

// XTicks returns the column positions 0..NumCols-1.
func (d Dimensions) XTicks() []float64 { return ticks(d.NumCols) }

// YTicks returns the row positions 0..NumRows-1.
func (d Dimensions) YTicks() []float64 { return ticks(d.NumRows) }

// XTickLabels returns the column numbers, e.g. "1", "2", ...
func (d Dimensions) XTickLabels() []string {
	labels := make([]string, d.NumCols)
	for k := range labels {
		labels[k] = wells.ColFromJ(d.J0 + k)
	}
	return labels
}

// YTickLabels returns the row letters, e.g. "A", "B", ...
func (d Dimensions) YTickLabels() []string {
	labels := make([]string, d.NumRows)
	for k := range labels {
		labels[k] = wells.RowFromI(d.I0 + k)
	}
	return labels
}

func ticks(n int) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i)
	}
	return t
}
