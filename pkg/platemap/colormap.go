package platemap

import (
	"image/color"
	"math"
	"slices"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/wellmap/wellmap/pkg/errors"
)

// DefaultColormap is used when neither the command line nor the layout
// file picks a color scheme.
const DefaultColormap = "rainbow"

// Colormap is a named color scheme.
type Colormap struct {
	Name   string
	colors func(n int) []color.Color
}

// Colors returns n colors spread evenly across the scheme. Color k is the
// scheme evaluated at k/max(n-1, 1), so a single color is the start of the
// scheme.
func (c Colormap) Colors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	return c.colors(n)
}

var colormaps = map[string]func() (Colormap, error){
	"rainbow": func() (Colormap, error) {
		return Colormap{Name: "rainbow", colors: rainbow}, nil
	},
	"heat": func() (Colormap, error) {
		return Colormap{Name: "heat", colors: heat}, nil
	},
	"coolwarm": func() (Colormap, error) {
		return fromColorMap("coolwarm", moreland.SmoothBlueRed()), nil
	},
	"purpleorange": func() (Colormap, error) {
		return fromColorMap("purpleorange", moreland.SmoothPurpleOrange()), nil
	},
	"kindlmann": func() (Colormap, error) {
		return fromColorMap("kindlmann", moreland.Kindlmann()), nil
	},
	"blackbody": func() (Colormap, error) {
		return fromColorMap("blackbody", moreland.BlackBody()), nil
	},
	"viridis": func() (Colormap, error) {
		return fromControls("viridis", "#440154", "#3b528b", "#21918c", "#5ec962", "#fde725")
	},
	"plasma": func() (Colormap, error) {
		return fromControls("plasma", "#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921")
	},
}

// LookupColormap returns the scheme called name. Besides the built-in
// schemes every ColorBrewer palette (Set1, Dark2, RdYlBu, ...) is available.
func LookupColormap(name string) (Colormap, error) {
	if name == "" {
		name = DefaultColormap
	}
	if mk, ok := colormaps[strings.ToLower(name)]; ok {
		cm, err := mk()
		if err != nil {
			return Colormap{}, errors.Wrap(errors.ErrCodeInternal, err, "color scheme %q", name)
		}
		return cm, nil
	}
	if sizes := brewerSizes(name); len(sizes) > 0 {
		return Colormap{Name: name, colors: func(n int) []color.Color { return fromBrewer(name, sizes, n) }}, nil
	}
	return Colormap{}, errors.New(errors.ErrCodeInvalidColor,
		"unknown color scheme %q (choose from: %s)", name, strings.Join(ColormapNames(), ", "))
}

// ColormapNames lists every scheme LookupColormap accepts.
func ColormapNames() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	sort.Strings(names)
	var bn []string
	for name := range brewer.DivergingPalettes {
		bn = append(bn, name)
	}
	for name := range brewer.QualitativePalettes {
		bn = append(bn, name)
	}
	for name := range brewer.SequentialPalettes {
		bn = append(bn, name)
	}
	sort.Strings(bn)
	return append(names, bn...)
}

func rainbow(n int) []color.Color {
	if n == 1 {
		return []color.Color{color.NRGBAModel.Convert(palette.HSVA{H: float64(palette.Blue), S: 1, V: 1, A: 1})}
	}
	return palette.Rainbow(n, palette.Blue, palette.Red, 1, 1, 1).Colors()
}

// heat samples an eight color heat palette for small n; palette.Heat
// produces NaN saturations when asked for four to seven colors.
func heat(n int) []color.Color {
	if n >= 8 {
		return palette.Heat(n, 1).Colors()
	}
	base := palette.Heat(8, 1).Colors()
	out := make([]color.Color, n)
	for k := range out {
		out[k] = base[int(math.Round(float64(k*7)/float64(max(n-1, 1))))]
	}
	return out
}

func fromColorMap(name string, cm palette.ColorMap) Colormap {
	cm.SetMin(0)
	cm.SetMax(1)
	return Colormap{Name: name, colors: func(n int) []color.Color {
		out := make([]color.Color, n)
		for k := range out {
			c, err := cm.At(float64(k) / float64(max(n-1, 1)))
			if err != nil {
				// Values are always inside [0, 1].
				panic(err)
			}
			out[k] = c
		}
		return out
	}}
}

func fromControls(name string, hex ...string) (Colormap, error) {
	controls := make([]color.Color, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return Colormap{}, err
		}
		controls[i] = c
	}
	cm, err := moreland.NewLuminance(controls)
	if err != nil {
		return Colormap{}, err
	}
	return fromColorMap(name, cm), nil
}

// brewerSizes returns the palette sizes ColorBrewer offers for name.
func brewerSizes(name string) []int {
	var sizes []int
	if p, ok := brewer.DivergingPalettes[name]; ok {
		for k := range p {
			sizes = append(sizes, k)
		}
	}
	if p, ok := brewer.QualitativePalettes[name]; ok {
		for k := range p {
			sizes = append(sizes, k)
		}
	}
	if p, ok := brewer.SequentialPalettes[name]; ok {
		for k := range p {
			sizes = append(sizes, k)
		}
	}
	slices.Sort(sizes)
	return sizes
}

// fromBrewer picks the ColorBrewer palette closest to n colors and cycles
// through it when n exceeds the largest one.
func fromBrewer(name string, sizes []int, n int) []color.Color {
	size := min(max(n, sizes[0]), sizes[len(sizes)-1])
	p, err := brewer.GetPalette(brewer.TypeAny, name, size)
	if err != nil {
		panic(err)
	}
	cs := p.Colors()
	out := make([]color.Color, n)
	for k := range out {
		out[k] = cs[k%len(cs)]
	}
	return out
}
