package render

import (
	"bytes"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/wellmap/wellmap/pkg/errors"
	"github.com/wellmap/wellmap/pkg/platemap"
)

// Format is an output file format.
type Format string

// Supported output formats.
const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatTIFF Format = "tif"
	FormatPDF  Format = "pdf"
	FormatEPS  Format = "eps"
	FormatJSON Format = "json"
)

// DefaultDPI is the raster resolution used when none is given.
const DefaultDPI = 150

var aliases = map[string]Format{
	"svg":  FormatSVG,
	"png":  FormatPNG,
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
	"pdf":  FormatPDF,
	"eps":  FormatEPS,
	"json": FormatJSON,
}

var contentTypes = map[Format]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatTIFF: "image/tiff",
	FormatPDF:  "application/pdf",
	FormatEPS:  "application/postscript",
	FormatJSON: "application/json",
}

// ParseFormat parses a format name such as "png" or "JPEG".
func ParseFormat(name string) (Format, error) {
	f, ok := aliases[strings.ToLower(strings.TrimPrefix(name, "."))]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (use svg, png, jpg, tif, pdf, eps or json)", name)
	}
	return f, nil
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer an output format from %q: missing file extension", path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	return contentTypes[f]
}

// IsRaster reports whether the format is a bitmap.
func (f Format) IsRaster() bool {
	return f == FormatPNG || f == FormatJPEG || f == FormatTIFF
}

// Render draws fig and serializes it in the given format. dpi only applies
// to raster formats; values below 1 select DefaultDPI.
func Render(fig *platemap.Figure, format Format, dpi int) ([]byte, error) {
	if format == FormatJSON {
		return RenderJSON(fig)
	}
	if dpi < 1 {
		dpi = DefaultDPI
	}

	w, h := fig.Size()
	c, err := newCanvas(format, w, h, dpi)
	if err != nil {
		return nil, err
	}
	fig.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", format)
	}
	return buf.Bytes(), nil
}

func newCanvas(format Format, w, h vg.Length, dpi int) (vg.CanvasWriterTo, error) {
	raster := func() *vgimg.Canvas {
		return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	}
	switch format {
	case FormatSVG:
		return vgsvg.New(w, h), nil
	case FormatPNG:
		return vgimg.PngCanvas{Canvas: raster()}, nil
	case FormatJPEG:
		return vgimg.JpegCanvas{Canvas: raster()}, nil
	case FormatTIFF:
		return vgimg.TiffCanvas{Canvas: raster()}, nil
	case FormatPDF:
		return vgpdf.New(w, h), nil
	case FormatEPS:
		return vgeps.New(w, h), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", format)
	}
}
