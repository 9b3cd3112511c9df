// Package render turns plate-map figures into files.
//
// # Overview
//
// A [platemap.Figure] knows its exact size and how to draw itself onto a
// gonum/plot canvas. This package picks the canvas for an output format,
// draws the figure and serializes the result:
//
//	format, err := render.FormatFromPath("plate.png")
//	data, err := render.Render(fig, format, 300)
//
// # Formats
//
// Vector formats (SVG, PDF, EPS) keep the figure size in points. Raster
// formats (PNG, JPEG, TIFF) rasterize it at the requested resolution. JSON
// exports the computed layout: attributes, plates, legends and the bin of
// every well, for consumers that draw the map themselves.
package render
