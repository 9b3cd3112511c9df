package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wellmap/wellmap/pkg/errors"
)

const testLayout = `
[expt]
plate_type = "96-well"

[row.A]
drug = "aspirin"
[row.B]
drug = "ibuprofen"

[col.1]
conc = 1
[col.2]
conc = 10
[col.3]
conc = 100
`

func writeLayout(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plate.toml")
	if err := os.WriteFile(path, []byte(testLayout), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// newTestCLI returns a CLI with a private cache and captured output.
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("WELLMAP_CACHE_DIR", t.TempDir())
	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Stdout = &out
	c.openViewer = func(string, bool) error {
		t.Error("viewer opened unexpectedly")
		return nil
	}
	return c, &out
}

func execute(c *CLI, args ...string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		pattern, layout, want string
	}{
		{pattern: "$.svg", layout: "plate.toml", want: "plate.svg"},
		{pattern: "out/$-$.png", layout: "dir/expt.toml", want: "out/expt-expt.png"},
		{pattern: "fixed.pdf", layout: "plate.toml", want: "fixed.pdf"},
		{pattern: "$.png", layout: "noext", want: "noext.png"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.pattern, tt.layout); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.pattern, tt.layout, got, tt.want)
		}
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("WELLMAP_CACHE_DIR", "/tmp/wm")
	if dir, _ := cacheDir(); dir != "/tmp/wm" {
		t.Errorf("cacheDir() = %q, want the WELLMAP_CACHE_DIR override", dir)
	}

	t.Setenv("WELLMAP_CACHE_DIR", "")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if dir, _ := cacheDir(); dir != filepath.Join("/tmp/xdg", "wellmap") {
		t.Errorf("cacheDir() = %q, want /tmp/xdg/wellmap", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", "wellmap"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestShowWritesOutput(t *testing.T) {
	c, out := newTestCLI(t)
	layout := writeLayout(t)
	dir := t.TempDir()

	if err := execute(c, layout, "drug", "-o", filepath.Join(dir, "$.svg")); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "plate.svg"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		t.Error("output is not an SVG file")
	}
	if !strings.Contains(out.String(), "Layout written to: ") {
		t.Errorf("output = %q, want a confirmation", out.String())
	}
}

func TestShowOpensViewer(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		args     []string
		wait     bool
		keepFile bool
	}{
		{name: "detached", goos: "darwin", keepFile: true},
		{name: "foreground", goos: "darwin", args: []string{"-f"}, wait: true},
		{name: "foreground xdg-open", goos: "linux", args: []string{"-f"}, wait: true, keepFile: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			c.goos = tt.goos
			t.Setenv("TMPDIR", t.TempDir())
			var opened string
			var waited bool
			var data []byte
			c.openViewer = func(path string, foreground bool) error {
				opened, waited = path, foreground
				data, _ = os.ReadFile(path)
				return nil
			}

			if err := execute(c, append([]string{writeLayout(t)}, tt.args...)...); err != nil {
				t.Fatalf("execute() error: %v", err)
			}
			if filepath.Ext(opened) != ".png" {
				t.Fatalf("viewer opened %q, want a png", opened)
			}
			if waited != tt.wait {
				t.Errorf("foreground = %v, want %v", waited, tt.wait)
			}
			if !bytes.HasPrefix(data, []byte("\x89PNG")) {
				t.Error("viewer file is not a PNG")
			}
			_, err := os.Stat(opened)
			if kept := err == nil; kept != tt.keepFile {
				t.Errorf("temporary image kept = %v, want %v", kept, tt.keepFile)
			}
		})
	}
}

func TestShowErrors(t *testing.T) {
	layout := writeLayout(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{name: "unknown extension", args: []string{layout, "-o", "out.gif"}, code: errors.ErrCodeInvalidFormat},
		{name: "unknown attribute", args: []string{layout, "dose", "-o", filepath.Join(t.TempDir(), "x.svg")}, code: errors.ErrCodeInvalidSelection},
		{name: "unknown color", args: []string{layout, "-c", "sparkly", "-o", filepath.Join(t.TempDir(), "x.svg")}, code: errors.ErrCodeInvalidColor},
		{name: "missing layout", args: []string{filepath.Join(t.TempDir(), "nope.toml"), "-o", "x.svg"}, code: errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			err := execute(c, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("execute() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	c, out := newTestCLI(t)
	layout := writeLayout(t)
	svg := filepath.Join(t.TempDir(), "x.svg")

	if err := execute(c, layout, "-o", svg); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := execute(c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 1 cached image") {
		t.Errorf("output = %q, want one cleared image", out.String())
	}

	out.Reset()
	if err := execute(c, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != os.Getenv("WELLMAP_CACHE_DIR") {
		t.Errorf("cache path = %q, want %q", got, os.Getenv("WELLMAP_CACHE_DIR"))
	}
}

func TestColorsCommand(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(c, "colors"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"rainbow", "viridis", "coolwarm"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("colors output missing %q", name)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(c, "completion", "bash"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "wellmap") {
		t.Error("bash completion should mention the command")
	}
}
