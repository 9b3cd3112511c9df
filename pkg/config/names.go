package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wellmap/wellmap/pkg/wells"
)

// block is a rectangle of wells: W columns by H rows anchored at (I, J).
type block struct {
	W, H, I, J int
}

func (b block) contains(i, j int) bool {
	return i >= b.I && i < b.I+b.H && j >= b.J && j < b.J+b.W
}

func (b block) area() int { return b.W * b.H }

// expand splits a comma-separated list of names, each of which may be a
// hyphenated range ("A-D", "1-6"), into indices.
func expand(spec string, parse func(string) (int, error)) ([]int, error) {
	var out []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := parse(strings.TrimSpace(lo))
		if err != nil {
			return nil, err
		}
		if !isRange {
			out = append(out, a)
			continue
		}
		b, err := parse(strings.TrimSpace(hi))
		if err != nil {
			return nil, err
		}
		if b < a {
			return nil, fmt.Errorf("descending range %q", part)
		}
		for k := a; k <= b; k++ {
			out = append(out, k)
		}
	}
	return out, nil
}

func parseRows(spec string) ([]int, error) { return expand(spec, wells.IFromRow) }

func parseCols(spec string) ([]int, error) { return expand(spec, wells.JFromCol) }

// parseWells accepts a list of well names. Ranges of wells ("A1-B3") cover
// the rectangle between the two corners.
func parseWells(spec string) ([][2]int, error) {
	var out [][2]int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		i0, j0, err := wells.ParseWell(strings.TrimSpace(lo))
		if err != nil {
			return nil, err
		}
		if !isRange {
			out = append(out, [2]int{i0, j0})
			continue
		}
		i1, j1, err := wells.ParseWell(strings.TrimSpace(hi))
		if err != nil {
			return nil, err
		}
		if i1 < i0 || j1 < j0 {
			return nil, fmt.Errorf("descending range %q", part)
		}
		for i := i0; i <= i1; i++ {
			for j := j0; j <= j1; j++ {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out, nil
}

// parseBlockSize parses "WxH", e.g. "2x3" is two columns wide and three rows
// tall.
func parseBlockSize(spec string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(spec), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid block size %q, expected WxH", spec)
	}
	if w, err = strconv.Atoi(ws); err != nil || w < 1 {
		return 0, 0, fmt.Errorf("invalid block width in %q", spec)
	}
	if h, err = strconv.Atoi(hs); err != nil || h < 1 {
		return 0, 0, fmt.Errorf("invalid block height in %q", spec)
	}
	return w, h, nil
}

func parseBlocks(size, anchors string) ([]block, error) {
	w, h, err := parseBlockSize(size)
	if err != nil {
		return nil, err
	}
	tl, err := parseWells(anchors)
	if err != nil {
		return nil, err
	}
	blocks := make([]block, len(tl))
	for k, ij := range tl {
		blocks[k] = block{W: w, H: h, I: ij[0], J: ij[1]}
	}
	return blocks, nil
}
