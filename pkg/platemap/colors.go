package platemap

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/wellmap/wellmap/pkg/wells"
)

// ColorScale maps the distinct values of one attribute onto consecutive
// integer bins, each with its own color.
type ColorScale struct {
	values []wells.Value
	index  map[string]int
	colors []color.Color
}

// NewColorScale builds the scale for one attribute from every value it takes
// across the table. Missing values are ignored.
func NewColorScale(vals []wells.Value, cmap Colormap) *ColorScale {
	ordered := OrderValues(vals)
	s := &ColorScale{
		values: ordered,
		index:  make(map[string]int, len(ordered)),
		colors: cmap.Colors(len(ordered)),
	}
	for i, v := range ordered {
		s.index[v.Key()] = i
	}
	return s
}

// OrderValues returns the distinct non-missing values in legend order.
//
// Strings are kept in order of first appearance, because alphabetical order
// rarely means anything for categorical labels. Otherwise the values are
// sorted when they all belong to one total order (numbers, booleans or
// times); mixtures that cannot be compared fall back to first appearance.
func OrderValues(vals []wells.Value) []wells.Value {
	distinct := wells.Distinct(vals)
	if hasString(distinct) || !sortable(distinct) {
		return distinct
	}
	slices.SortStableFunc(distinct, func(a, b wells.Value) int {
		switch {
		case wells.Less(a, b):
			return -1
		case wells.Less(b, a):
			return 1
		default:
			return 0
		}
	})
	return distinct
}

func hasString(vals []wells.Value) bool {
	for _, v := range vals {
		if v.Kind() == wells.String {
			return true
		}
	}
	return false
}

// sortable reports whether every value can be compared with every other.
func sortable(vals []wells.Value) bool {
	for _, v := range vals[min(1, len(vals)):] {
		if !wells.Comparable(vals[0], v) {
			return false
		}
	}
	return true
}

// Len returns the number of bins.
func (s *ColorScale) Len() int { return len(s.values) }

// Values returns the values in bin order.
func (s *ColorScale) Values() []wells.Value { return slices.Clone(s.values) }

// Norm returns the normalization range of the bins. The upper bound is at
// least 1 so that a single-valued scale still has a non-empty range.
func (s *ColorScale) Norm() (lo, hi float64) {
	return 0, float64(max(s.Len()-1, 1))
}

// Boundaries returns the bin edges -0.5, 0.5, ..., n-0.5.
func (s *ColorScale) Boundaries() []float64 {
	b := make([]float64, s.Len()+1)
	for i := range b {
		b[i] = float64(i) - 0.5
	}
	return b
}

// Ticks returns the bin centers 0..n-1.
func (s *ColorScale) Ticks() []float64 {
	t := make([]float64, s.Len())
	for i := range t {
		t[i] = float64(i)
	}
	return t
}

// TickLabels returns the legend labels in bin order.
func (s *ColorScale) TickLabels() []string {
	labels := make([]string, s.Len())
	for i, v := range s.values {
		labels[i] = v.String()
	}
	return labels
}

// Transform returns the bin of v, or NaN when v is missing. It panics when
// v is not part of the scale: the scale is always built from the same table
// it is applied to, so that can only be a bug.
func (s *ColorScale) Transform(v wells.Value) float64 {
	if v.IsMissing() {
		return math.NaN()
	}
	i, ok := s.index[v.Key()]
	if !ok {
		panic(fmt.Sprintf("platemap: value %q (%s) is not in its color scale %v", v.String(), v.Kind(), s.TickLabels()))
	}
	return float64(i)
}

// Color returns the color of a bin, or nil for NaN.
func (s *ColorScale) Color(bin float64) color.Color {
	if math.IsNaN(bin) {
		return nil
	}
	return s.colors[int(bin)]
}
