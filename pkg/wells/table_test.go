package wells

import (
	"math"
	"slices"
	"testing"
	"time"
)

func testTable() *Table {
	tbl := NewTable([]string{"conc", "drug"}, true)
	tbl.Append(Row{Plate: "P2", RowI: 0, ColJ: 0, Values: map[string]Value{"conc": IntValue(1), "drug": StringValue("x")}})
	tbl.Append(Row{Plate: "P1", RowI: 0, ColJ: 1, Values: map[string]Value{"conc": FloatValue(1.0), "drug": StringValue("x")}})
	tbl.Append(Row{Plate: "P1", RowI: 1, ColJ: 0, Values: map[string]Value{"conc": IntValue(2)}})
	return tbl
}

func TestValueKinds(t *testing.T) {
	if !FloatValue(math.NaN()).IsMissing() {
		t.Error("NaN should be missing")
	}
	if !(Value{}).IsMissing() {
		t.Error("zero Value should be missing")
	}
	if !IntValue(1).Equal(FloatValue(1)) {
		t.Error("1 and 1.0 should be equal")
	}
	if StringValue("1").Equal(IntValue(1)) {
		t.Error("\"1\" and 1 should differ")
	}
	if got := BoolValue(true).String(); got != "true" {
		t.Errorf("String() = %q, want true", got)
	}
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := TimeValue(d).String(); got != "2024-03-01" {
		t.Errorf("String() = %q, want 2024-03-01", got)
	}
	if got := FloatValue(0.5).String(); got != "0.5" {
		t.Errorf("String() = %q, want 0.5", got)
	}
}

func TestValueOf(t *testing.T) {
	if _, ok := ValueOf([]any{1, 2}); ok {
		t.Error("arrays should not convert")
	}
	if _, ok := ValueOf(map[string]any{}); ok {
		t.Error("tables should not convert")
	}
	v, ok := ValueOf(int64(3))
	if !ok || v.Kind() != Int || v.Float() != 3 {
		t.Errorf("ValueOf(3) = %v, %v", v, ok)
	}
}

func TestComparableLess(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		cmp  bool
		less bool
	}{
		{"int float", IntValue(1), FloatValue(1.5), true, true},
		{"large ints", IntValue(1 << 53), IntValue(1<<53 + 1), true, true},
		{"bools", BoolValue(false), BoolValue(true), true, true},
		{"times", TimeValue(time.Unix(0, 0)), TimeValue(time.Unix(10, 0)), true, true},
		{"strings", StringValue("b"), StringValue("a"), true, false},
		{"int bool", IntValue(1), BoolValue(true), false, false},
		{"missing", Value{}, IntValue(1), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Comparable(tt.a, tt.b); got != tt.cmp {
				t.Errorf("Comparable() = %v, want %v", got, tt.cmp)
			}
			if tt.cmp {
				if got := Less(tt.a, tt.b); got != tt.less {
					t.Errorf("Less() = %v, want %v", got, tt.less)
				}
			}
		})
	}
}

func TestValueKey(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		same bool
	}{
		{"int and integral float", IntValue(1), FloatValue(1.0), true},
		{"int and fraction", IntValue(1), FloatValue(1.5), false},
		{"large ints", IntValue(1 << 53), IntValue(1<<53 + 1), false},
		{"large int and float", IntValue(1 << 53), FloatValue(1 << 53), true},
		{"huge float", FloatValue(1e300), FloatValue(1e300), true},
		{"string and int", StringValue("1"), IntValue(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.same {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}
}

func TestTableColumns(t *testing.T) {
	tbl := testTable()
	want := []string{"plate", "well", "well0", "row", "col", "row_i", "col_j", "conc", "drug"}
	if got := tbl.Columns(); !slices.Equal(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}

	tbl.Rows[0].Path = "data/a.csv"
	if !slices.Contains(tbl.Columns(), ColPath) {
		t.Error("Columns() should include path when a row has one")
	}
}

func TestTableGet(t *testing.T) {
	tbl := testTable()
	tests := []struct {
		col  string
		want string
	}{
		{ColPlate, "P1"},
		{ColWell, "B1"},
		{ColWell0, "B01"},
		{ColRow, "B"},
		{ColCol, "1"},
		{ColRowI, "1"},
		{ColColJ, "0"},
		{"conc", "2"},
		{"drug", ""},
	}
	for _, tt := range tests {
		if got := tbl.Get(2, tt.col).String(); got != tt.want {
			t.Errorf("Get(2, %q) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestUnique(t *testing.T) {
	tbl := testTable()

	conc := tbl.Unique("conc")
	if len(conc) != 2 || conc[0].String() != "1" || conc[1].String() != "2" {
		t.Errorf("Unique(conc) = %v, want [1 2]", conc)
	}
	if got := tbl.NUnique("drug"); got != 1 {
		t.Errorf("NUnique(drug) = %d, want 1", got)
	}
	if got := tbl.NUnique("nope"); got != 0 {
		t.Errorf("NUnique(nope) = %d, want 0", got)
	}
}

func TestPlatesAndEnsurePlate(t *testing.T) {
	tbl := testTable()
	if got := tbl.Plates(); !slices.Equal(got, []string{"P1", "P2"}) {
		t.Errorf("Plates() = %v, want [P1 P2]", got)
	}

	anon := NewTable([]string{"x"}, false)
	anon.Append(Row{RowI: 0, ColJ: 0})
	if anon.HasColumn(ColPlate) {
		t.Error("table without plates should not have a plate column")
	}
	anon.EnsurePlate()
	if !anon.HasColumn(ColPlate) {
		t.Error("EnsurePlate() should add the plate column")
	}
	if got := anon.Plates(); !slices.Equal(got, []string{""}) {
		t.Errorf("Plates() = %q, want [\"\"]", got)
	}
}

func TestIsReserved(t *testing.T) {
	for _, name := range Reserved {
		if !IsReserved(name) {
			t.Errorf("IsReserved(%q) = false", name)
		}
	}
	if IsReserved("conc") {
		t.Error("IsReserved(conc) = true")
	}
}
