// Package wells holds the in-memory well table produced from a layout file.
//
// A [Table] has one [Row] per (plate, well) pair. Each row carries its grid
// coordinates and the values of the user-defined attributes, in the order the
// attributes were first seen.
package wells

import (
	"slices"
)

// Structural column names. They describe where a well is, not what is in it,
// and are never offered as attributes.
const (
	ColPlate = "plate"
	ColWell  = "well"
	ColWell0 = "well0"
	ColRow   = "row"
	ColCol   = "col"
	ColRowI  = "row_i"
	ColColJ  = "col_j"
	ColPath  = "path"
)

// Reserved lists every structural column name.
var Reserved = []string{ColPlate, ColWell, ColWell0, ColRow, ColCol, ColRowI, ColColJ, ColPath}

// IsReserved reports whether name is a structural column.
func IsReserved(name string) bool {
	return slices.Contains(Reserved, name)
}

// Row is one well of one plate.
type Row struct {
	Plate  string
	RowI   int
	ColJ   int
	Path   string
	Values map[string]Value
}

// Well returns the well name, e.g. "A1".
func (r Row) Well() string { return WellFromIJ(r.RowI, r.ColJ) }

// Well0 returns the zero-padded well name, e.g. "A01".
func (r Row) Well0() string { return Well0FromIJ(r.RowI, r.ColJ) }

// Table is a row-oriented well table. It is built once by the loader and
// treated as read-only afterwards.
type Table struct {
	Rows     []Row
	Attrs    []string
	hasPlate bool
}

// NewTable returns a table with the given attribute order. hasPlate records
// whether the layout named any plates.
func NewTable(attrs []string, hasPlate bool) *Table {
	return &Table{Attrs: slices.Clone(attrs), hasPlate: hasPlate}
}

// Append adds a row.
func (t *Table) Append(r Row) {
	if r.Values == nil {
		r.Values = map[string]Value{}
	}
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasPlate reports whether the table has a plate column.
func (t *Table) HasPlate() bool { return t.hasPlate }

// HasPath reports whether any row records a data path.
func (t *Table) HasPath() bool {
	for _, r := range t.Rows {
		if r.Path != "" {
			return true
		}
	}
	return false
}

// EnsurePlate adds the plate column with the implicit empty plate name when
// the layout did not define any plates.
func (t *Table) EnsurePlate() {
	if t.hasPlate {
		return
	}
	for i := range t.Rows {
		t.Rows[i].Plate = ""
	}
	t.hasPlate = true
}

// Columns lists the structural columns present in the table followed by the
// attributes.
func (t *Table) Columns() []string {
	var cols []string
	if t.hasPlate {
		cols = append(cols, ColPlate)
	}
	cols = append(cols, ColWell, ColWell0, ColRow, ColCol, ColRowI, ColColJ)
	if t.HasPath() {
		cols = append(cols, ColPath)
	}
	return append(cols, t.Attrs...)
}

// HasColumn reports whether name is one of Columns.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns(), name)
}

// Get returns the value of a structural column or an attribute for row i.
func (t *Table) Get(i int, name string) Value {
	r := t.Rows[i]
	switch name {
	case ColPlate:
		if !t.hasPlate {
			return Value{}
		}
		return StringValue(r.Plate)
	case ColWell:
		return StringValue(r.Well())
	case ColWell0:
		return StringValue(r.Well0())
	case ColRow:
		return StringValue(RowFromI(r.RowI))
	case ColCol:
		return StringValue(ColFromJ(r.ColJ))
	case ColRowI:
		return IntValue(int64(r.RowI))
	case ColColJ:
		return IntValue(int64(r.ColJ))
	case ColPath:
		if r.Path == "" {
			return Value{}
		}
		return StringValue(r.Path)
	default:
		return r.Values[name]
	}
}

// Column returns every value of name, one per row.
func (t *Table) Column(name string) []Value {
	vals := make([]Value, len(t.Rows))
	for i := range t.Rows {
		vals[i] = t.Get(i, name)
	}
	return vals
}

// Unique returns the distinct non-missing values of name in order of first
// appearance.
func (t *Table) Unique(name string) []Value {
	return Distinct(t.Column(name))
}

// NUnique returns the number of distinct non-missing values of name.
func (t *Table) NUnique(name string) int {
	return len(t.Unique(name))
}

// Plates returns the sorted distinct plate names.
func (t *Table) Plates() []string {
	seen := map[string]bool{}
	var plates []string
	for _, r := range t.Rows {
		if !seen[r.Plate] {
			seen[r.Plate] = true
			plates = append(plates, r.Plate)
		}
	}
	slices.Sort(plates)
	return plates
}

// Distinct drops missing values and collapses duplicates, keeping the first
// appearance of each value.
func Distinct(vals []Value) []Value {
	seen := map[string]bool{}
	var out []Value
	for _, v := range vals {
		if v.IsMissing() {
			continue
		}
		k := v.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	return out
}
