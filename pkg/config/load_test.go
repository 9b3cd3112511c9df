package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/wellmap/wellmap/pkg/errors"
	"github.com/wellmap/wellmap/pkg/wells"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func load(t *testing.T, content string) *wells.Table {
	t.Helper()
	path := writeFile(t, t.TempDir(), "layout.toml", content)
	tbl, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return tbl
}

// value returns the attribute of a well on a plate, or "<none>" when the
// well is not in the table.
func value(tbl *wells.Table, plate, well, attr string) string {
	i, j, _ := wells.ParseWell(well)
	for _, r := range tbl.Rows {
		if r.Plate == plate && r.RowI == i && r.ColJ == j {
			return r.Values[attr].String()
		}
	}
	return "<none>"
}

func TestLoadRowsAndCols(t *testing.T) {
	tbl := load(t, `
[expt]
buffer = "PBS"

[row.A]
conc = 1

[row.B]
conc = 2

[col.1]
drug = "x"

[col.2]
drug = "y"
`)
	if tbl.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", tbl.Len())
	}
	if tbl.HasPlate() {
		t.Error("HasPlate() = true for a layout without plates")
	}
	if !slices.Equal(tbl.Attrs, []string{"buffer", "conc", "drug"}) {
		t.Errorf("Attrs = %v, want [buffer conc drug]", tbl.Attrs)
	}

	tests := []struct {
		well, attr, want string
	}{
		{"A1", "conc", "1"},
		{"B2", "conc", "2"},
		{"A2", "drug", "y"},
		{"B1", "buffer", "PBS"},
		{"C1", "conc", "<none>"},
	}
	for _, tt := range tests {
		if got := value(tbl, "", tt.well, tt.attr); got != tt.want {
			t.Errorf("%s.%s = %q, want %q", tt.well, tt.attr, got, tt.want)
		}
	}
}

func TestLoadPrecedence(t *testing.T) {
	tbl := load(t, `
[expt]
x = "expt"

[block.2x2.A1]
x = "block"

[block.1x1.A1]
x = "small block"

[row.A]
x = "row"

[row.B]
x = "row"

[col.1]
y = 1

[col.2]
y = 2

[col.3]
y = 3

[well.B2]
x = "well"
`)
	tests := []struct {
		well, want string
	}{
		{"A1", "small block"},
		{"A2", "block"},
		{"B1", "block"},
		{"B2", "well"},
		{"A3", "row"},
	}
	for _, tt := range tests {
		if got := value(tbl, "", tt.well, "x"); got != tt.want {
			t.Errorf("%s.x = %q, want %q", tt.well, got, tt.want)
		}
	}
}

func TestLoadPlates(t *testing.T) {
	tbl := load(t, `
[expt]
x = "global"

[row.A]
r = 1

[col.1]
c = 1

[plate.Q]
x = "plate"

[plate.Q.well.A1]
w = "q"

[plate.P]
`)
	if !tbl.HasPlate() {
		t.Fatal("HasPlate() = false")
	}
	if got := tbl.Plates(); !slices.Equal(got, []string{"P", "Q"}) {
		t.Errorf("Plates() = %v, want [P Q]", got)
	}
	if got := value(tbl, "Q", "A1", "x"); got != "plate" {
		t.Errorf("Q A1.x = %q, want plate", got)
	}
	if got := value(tbl, "Q", "A1", "w"); got != "q" {
		t.Errorf("Q A1.w = %q, want q", got)
	}
	if got := value(tbl, "P", "A1", "x"); got != "global" {
		t.Errorf("P A1.x = %q, want global", got)
	}
	if got := value(tbl, "P", "A1", "w"); got != "" {
		t.Errorf("P A1.w = %q, want missing", got)
	}
}

func TestLoadRanges(t *testing.T) {
	tbl := load(t, `
[row.'A-C']
r = "r"

[col.'1,3']
c = "c"
`)
	if tbl.Len() != 6 {
		t.Errorf("Len() = %d, want 6", tbl.Len())
	}
	if got := value(tbl, "", "B3", "c"); got != "c" {
		t.Errorf("B3.c = %q, want c", got)
	}
	if got := value(tbl, "", "B2", "c"); got != "<none>" {
		t.Errorf("B2 should not exist, got %q", got)
	}
}

func TestLoadInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.toml", `
[meta.style]
color = "viridis"

[expt]
buffer = "PBS"
conc = 0

[well.A1]
conc = 5
`)
	path := writeFile(t, dir, "layout.toml", `
[meta]
include = "base.toml"

[expt]
conc = 1

[well.A2]
drug = "x"
`)
	tbl, meta, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(meta.Dependencies) != 2 || meta.Dependencies[0] != path {
		t.Errorf("Dependencies = %v, want [%s base.toml]", meta.Dependencies, path)
	}
	if meta.Style.Color != "viridis" {
		t.Errorf("Style.Color = %q, want viridis", meta.Style.Color)
	}
	if got := value(tbl, "", "A1", "conc"); got != "5" {
		t.Errorf("A1.conc = %q, want 5", got)
	}
	if got := value(tbl, "", "A2", "conc"); got != "1" {
		t.Errorf("A2.conc = %q, want 1", got)
	}
	if got := value(tbl, "", "A2", "buffer"); got != "PBS" {
		t.Errorf("A2.buffer = %q, want PBS", got)
	}
}

func TestLoadDataPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "layout.toml", `
[meta]
path = "{}.csv"

[plate.p1.well.A1]
x = 1
`)
	tbl, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := tbl.Rows[0].Path, filepath.Join(dir, "p1.csv"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
		msg     string
	}{
		{
			name:    "no wells",
			content: "[expt]\nx = 1\n",
			code:    errors.ErrCodeInvalidConfig,
			msg:     "No wells defined",
		},
		{
			name:    "array value",
			content: "[well.A1]\nx = [1, 2]\n",
			code:    errors.ErrCodeInvalidConfig,
			msg:     "expected a single value",
		},
		{
			name:    "bad well",
			content: "[well.1A]\nx = 1\n",
			code:    errors.ErrCodeInvalidConfig,
			msg:     "invalid well name",
		},
		{
			name:    "unknown section",
			content: "[wel.A1]\nx = 1\n",
			code:    errors.ErrCodeInvalidConfig,
			msg:     "unknown section",
		},
		{
			name:    "row col conflict",
			content: "[row.A]\nx = 1\n[col.1]\nx = 2\n",
			code:    errors.ErrCodeInvalidConfig,
			msg:     "both set",
		},
		{
			name:    "reserved name",
			content: "[well.A1]\nplate = 1\n",
			code:    errors.ErrCodeInvalidConfig,
			msg:     "reserved",
		},
		{
			name:    "invalid toml",
			content: "[well.A1\n",
			code:    errors.ErrCodeInvalidConfig,
			msg:     "invalid TOML",
		},
		{
			name:    "bad block",
			content: "[block.2by2.A1]\nx = 1\n",
			code:    errors.ErrCodeInvalidConfig,
			msg:     "block size",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "layout.toml", tt.content)
			_, _, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %v, want %v (%v)", got, tt.code, err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
			if !strings.Contains(errors.UserMessage(err), path) {
				t.Errorf("UserMessage() = %q, want it to name %s", errors.UserMessage(err), path)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadCircularInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.toml", "[meta]\ninclude = [\"b.toml\"]\n[well.A1]\nx = 1\n")
	writeFile(t, dir, "b.toml", "[meta]\ninclude = [\"a.toml\"]\n")
	_, _, err := Load(filepath.Join(dir, "a.toml"))
	if err == nil || !strings.Contains(err.Error(), "circular include") {
		t.Errorf("Load() error = %v, want circular include", err)
	}
}
