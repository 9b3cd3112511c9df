package wells

import (
	"fmt"
	"strconv"
	"strings"
)

// RowFromI returns the row letter(s) for a zero-based row index:
// 0 → "A", 25 → "Z", 26 → "AA", 27 → "AB".
func RowFromI(i int) string {
	if i < 0 {
		return ""
	}
	var b []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// IFromRow is the inverse of RowFromI. Letters are case-insensitive.
func IFromRow(row string) (int, error) {
	if row == "" {
		return 0, fmt.Errorf("empty row name")
	}
	n := 0
	for _, r := range strings.ToUpper(row) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid row name %q", row)
		}
		n = n*26 + int(r-'A'+1)
	}
	return n - 1, nil
}

// ColFromJ returns the column label for a zero-based column index: 0 → "1".
func ColFromJ(j int) string {
	return strconv.Itoa(j + 1)
}

// JFromCol is the inverse of ColFromJ.
func JFromCol(col string) (int, error) {
	n, err := strconv.Atoi(col)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid column name %q", col)
	}
	return n - 1, nil
}

// WellFromIJ returns the well name for zero-based indices: (0, 0) → "A1".
func WellFromIJ(i, j int) string {
	return RowFromI(i) + ColFromJ(j)
}

// Well0FromIJ returns the zero-padded well name: (0, 0) → "A01".
func Well0FromIJ(i, j int) string {
	return fmt.Sprintf("%s%02d", RowFromI(i), j+1)
}

// ParseWell splits a well name such as "A1", "b12" or "AA03" into zero-based
// row and column indices.
func ParseWell(well string) (i, j int, err error) {
	k := strings.IndexFunc(well, func(r rune) bool { return r >= '0' && r <= '9' })
	if k <= 0 {
		return 0, 0, fmt.Errorf("invalid well name %q", well)
	}
	if i, err = IFromRow(well[:k]); err != nil {
		return 0, 0, fmt.Errorf("invalid well name %q", well)
	}
	if j, err = JFromCol(well[k:]); err != nil {
		return 0, 0, fmt.Errorf("invalid well name %q", well)
	}
	return i, j, nil
}
