// Package pipeline turns a layout file into a rendered plate map.
//
// The CLI and the preview server both go through a [Runner], so they share
// the same defaults, cache keys and observability events. A run has two
// stages:
//
//  1. Load: parse the TOML layout (and its includes) into a well table
//  2. Render: pick attributes, lay out the figure and encode it
//
// The rendered bytes are cached under a key derived from the contents of
// every file the layout was read from, so editing any of them produces a
// fresh image while unchanged layouts are served from the cache.
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Path:   "plate.toml",
//	    Attrs:  []string{"drug", "conc"},
//	    Format: render.FormatSVG,
//	})
//	os.WriteFile("plate.svg", res.Artifact, 0o644)
package pipeline

import (
	"time"

	"github.com/wellmap/wellmap/pkg/config"
	"github.com/wellmap/wellmap/pkg/errors"
	"github.com/wellmap/wellmap/pkg/platemap"
	"github.com/wellmap/wellmap/pkg/render"
	"github.com/wellmap/wellmap/pkg/wells"
)

// DefaultFormat is used when Options.Format is empty.
const DefaultFormat = render.FormatPNG

// Options configures one pipeline run.
type Options struct {
	// Path is the layout file.
	Path string `json:"path"`
	// Attrs selects the attributes to show, in order. Empty means every
	// attribute that varies across wells.
	Attrs []string `json:"attrs,omitempty"`
	// Color names the color scheme. Empty defers to the layout's
	// [meta.style] color, then to the default scheme.
	Color  string        `json:"color,omitempty"`
	Format render.Format `json:"format,omitempty"`
	// DPI applies to raster formats only.
	DPI int `json:"dpi,omitempty"`
	// Refresh skips cache lookups but still stores the result.
	Refresh bool `json:"refresh,omitempty"`
}

// Result is the outcome of a pipeline run.
type Result struct {
	Table  *wells.Table
	Meta   *config.Meta
	Attrs  []string
	Color  string
	Figure *platemap.Figure

	// Artifact is the rendered file.
	Artifact []byte
	CacheHit bool
	Stats    Stats
}

// Stats contains timings and sizes of a run.
type Stats struct {
	NumWells   int
	NumPlates  int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no layout file given")
	}
	for _, a := range o.Attrs {
		if err := errors.ValidateAttrName(a); err != nil {
			return err
		}
	}
	if o.Color != "" {
		if err := errors.ValidateColorName(o.Color); err != nil {
			return err
		}
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	f, err := render.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f
	if o.Format.IsRaster() && o.DPI <= 0 {
		o.DPI = render.DefaultDPI
	}
	if !o.Format.IsRaster() {
		o.DPI = 0
	}
	return nil
}

// ResolveColor applies the color precedence: explicit option, then the
// layout's own preference, then the default scheme.
func ResolveColor(option string, meta *config.Meta) string {
	if option != "" {
		return option
	}
	if meta != nil && meta.Style.Color != "" {
		return meta.Style.Color
	}
	return platemap.DefaultColormap
}
