package wells

import "testing"

func TestRowFromI(t *testing.T) {
	tests := []struct {
		i    int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{7, "H"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := RowFromI(tt.i); got != tt.want {
			t.Errorf("RowFromI(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestIFromRowRoundTrip(t *testing.T) {
	for i := 0; i < 800; i++ {
		got, err := IFromRow(RowFromI(i))
		if err != nil {
			t.Fatalf("IFromRow(%q) error: %v", RowFromI(i), err)
		}
		if got != i {
			t.Fatalf("IFromRow(RowFromI(%d)) = %d", i, got)
		}
	}

	if i, err := IFromRow("c"); err != nil || i != 2 {
		t.Errorf("IFromRow(c) = %d, %v, want 2, nil", i, err)
	}
	for _, bad := range []string{"", "A1", "-"} {
		if _, err := IFromRow(bad); err == nil {
			t.Errorf("IFromRow(%q) expected error", bad)
		}
	}
}

func TestColumns(t *testing.T) {
	if got := ColFromJ(0); got != "1" {
		t.Errorf("ColFromJ(0) = %q, want 1", got)
	}
	if j, err := JFromCol("12"); err != nil || j != 11 {
		t.Errorf("JFromCol(12) = %d, %v, want 11, nil", j, err)
	}
	for _, bad := range []string{"", "0", "x", "-3"} {
		if _, err := JFromCol(bad); err == nil {
			t.Errorf("JFromCol(%q) expected error", bad)
		}
	}
}

func TestWellNames(t *testing.T) {
	if got := WellFromIJ(0, 0); got != "A1" {
		t.Errorf("WellFromIJ(0, 0) = %q, want A1", got)
	}
	if got := Well0FromIJ(7, 11); got != "H12" {
		t.Errorf("Well0FromIJ(7, 11) = %q, want H12", got)
	}
	if got := Well0FromIJ(1, 2); got != "B03" {
		t.Errorf("Well0FromIJ(1, 2) = %q, want B03", got)
	}
}

func TestParseWell(t *testing.T) {
	tests := []struct {
		well    string
		i, j    int
		wantErr bool
	}{
		{well: "A1", i: 0, j: 0},
		{well: "h12", i: 7, j: 11},
		{well: "B03", i: 1, j: 2},
		{well: "AA2", i: 26, j: 1},
		{well: "1A", wantErr: true},
		{well: "A", wantErr: true},
		{well: "A0", wantErr: true},
		{well: "A1B", wantErr: true},
		{well: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.well, func(t *testing.T) {
			i, j, err := ParseWell(tt.well)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseWell(%q) expected error", tt.well)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWell(%q) error: %v", tt.well, err)
			}
			if i != tt.i || j != tt.j {
				t.Errorf("ParseWell(%q) = (%d, %d), want (%d, %d)", tt.well, i, j, tt.i, tt.j)
			}
		})
	}
}
