// Package config loads wellmap layout files.
//
// A layout is a TOML document that assigns attribute values to the wells of
// one or more plates. Values can be given for the whole experiment ([expt]),
// one plate ([plate.NAME]), whole rows ([row.A]) or columns ([col.1]),
// rectangular blocks ([block.2x3.A1]) or single wells ([well.A1]). The more
// specific section wins when several assign the same attribute:
//
//	expt < plate < row, col < block < well
//
// Sections nested inside a plate only apply to that plate and beat their
// global counterparts. Other layout files can be layered underneath with
// [meta] include = ["base.toml"].
package config

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wellmap/wellmap/pkg/errors"
	"github.com/wellmap/wellmap/pkg/wells"
)

// Meta describes a loaded layout beyond its wells.
type Meta struct {
	// Path is the layout file that was loaded.
	Path string
	// Dependencies lists every file read while loading, the layout itself
	// first. A rendering of the layout is stale when any of them changes.
	Dependencies []string
	// Style holds display preferences from [meta.style].
	Style Style
}

// Style holds display preferences a layout can record for itself.
type Style struct {
	Color string
}

// Load parses the layout at path into a well table.
func Load(path string) (*wells.Table, *Meta, error) {
	l := newLayout()
	meta := &Meta{Path: path}
	if err := l.read(path, meta, nil); err != nil {
		return nil, nil, err
	}
	tbl, err := l.table()
	if err != nil {
		return nil, nil, errors.WithPath(err, path)
	}
	return tbl, meta, nil
}

// attrs is an ordered set of attribute assignments.
type attrs struct {
	names []string
	vals  map[string]wells.Value
}

func (a *attrs) set(name string, v wells.Value) {
	if a.vals == nil {
		a.vals = map[string]wells.Value{}
	}
	if _, ok := a.vals[name]; !ok {
		a.names = append(a.names, name)
	}
	a.vals[name] = v
}

func (a *attrs) empty() bool { return a == nil || len(a.names) == 0 }

// scope holds the sections that apply either globally or to one plate.
type scope struct {
	expt   attrs
	rows   map[int]*attrs
	cols   map[int]*attrs
	blocks []*blockAttrs
	wells  map[[2]int]*attrs
}

type blockAttrs struct {
	block
	attrs
}

func newScope() *scope {
	return &scope{
		rows:  map[int]*attrs{},
		cols:  map[int]*attrs{},
		wells: map[[2]int]*attrs{},
	}
}

func entry[K comparable](m map[K]*attrs, k K) *attrs {
	a, ok := m[k]
	if !ok {
		a = &attrs{}
		m[k] = a
	}
	return a
}

func (s *scope) block(b block) *attrs {
	for _, ba := range s.blocks {
		if ba.block == b {
			return &ba.attrs
		}
	}
	ba := &blockAttrs{block: b}
	s.blocks = append(s.blocks, ba)
	return &ba.attrs
}

type layout struct {
	global     *scope
	plates     map[string]*scope
	plateOrder []string
	attrOrder  []string
	seenAttr   map[string]bool
	dataPath   string
	dataDir    string
}

func newLayout() *layout {
	return &layout{
		global:   newScope(),
		plates:   map[string]*scope{},
		seenAttr: map[string]bool{},
	}
}

func (l *layout) plate(name string) *scope {
	s, ok := l.plates[name]
	if !ok {
		s = newScope()
		l.plates[name] = s
		l.plateOrder = append(l.plateOrder, name)
	}
	return s
}

func (l *layout) noteAttr(name string) {
	if !l.seenAttr[name] {
		l.seenAttr[name] = true
		l.attrOrder = append(l.attrOrder, name)
	}
}

// read parses one file and its includes. Included files are read first so
// that the including file overrides them. stack guards against cycles.
func (l *layout) read(path string, meta *Meta, stack []string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if slices.Contains(stack, abs) {
		return errors.Config(path, "circular include: %s", strings.Join(append(stack, abs), " -> "))
	}
	stack = append(stack, abs)

	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.ErrCodeInvalidConfig
		if os.IsNotExist(err) {
			code = errors.ErrCodeFileNotFound
		}
		return &errors.Error{Code: code, Message: "cannot read layout", Path: path, Cause: err}
	}
	meta.Dependencies = append(meta.Dependencies, path)

	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return &errors.Error{Code: errors.ErrCodeInvalidConfig, Message: "invalid TOML", Path: path, Cause: err}
	}

	includes, err := readMeta(doc, path, meta, l)
	if err != nil {
		return err
	}
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(path), inc)
		}
		if err := l.read(inc, meta, stack); err != nil {
			return err
		}
	}

	for _, key := range md.Keys() {
		if len(key) == 0 || key[0] == "meta" {
			continue
		}
		v, found := lookup(doc, key)
		if !found {
			return errors.Config(path, "%s: expected a single value", key.String())
		}
		if _, isTable := v.(map[string]any); isTable {
			if len(key) == 2 && key[0] == "plate" {
				l.plate(key[1])
			}
			continue
		}
		if err := l.assign(key, v); err != nil {
			return errors.WithPath(err, path)
		}
	}
	return nil
}

// readMeta applies the [meta] table and returns the includes it names.
// Settings already made by an including file take precedence.
func readMeta(doc map[string]any, path string, meta *Meta, l *layout) ([]string, error) {
	raw, ok := doc["meta"]
	if !ok {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.Config(path, "[meta] must be a table")
	}

	var includes []string
	switch inc := m["include"].(type) {
	case nil:
	case string:
		includes = []string{inc}
	case []any:
		for _, x := range inc {
			s, ok := x.(string)
			if !ok {
				return nil, errors.Config(path, "meta.include must list file names, not %v", x)
			}
			includes = append(includes, s)
		}
	default:
		return nil, errors.Config(path, "meta.include must be a file name or a list of file names")
	}

	switch style := m["style"].(type) {
	case nil:
	case map[string]any:
		if c, ok := style["color"]; ok {
			s, ok := c.(string)
			if !ok {
				return nil, errors.Config(path, "meta.style.color must be a string")
			}
			if meta.Style.Color == "" {
				meta.Style.Color = s
			}
		}
	default:
		return nil, errors.Config(path, "meta.style must be a table")
	}

	if p, ok := m["path"]; ok {
		s, ok := p.(string)
		if !ok {
			return nil, errors.Config(path, "meta.path must be a string")
		}
		if l.dataPath == "" {
			l.dataPath = s
			l.dataDir = filepath.Dir(path)
		}
	}
	return includes, nil
}

// lookup follows key through nested tables.
func lookup(doc map[string]any, key toml.Key) (any, bool) {
	var cur any = doc
	for _, k := range key {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[k]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// assign stores one attribute assignment found at key.
func (l *layout) assign(key toml.Key, raw any) error {
	section, name := key[:len(key)-1], key[len(key)-1]

	v, ok := wells.ValueOf(raw)
	if !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: expected a single value, got %T", key.String(), raw)
	}
	if wells.IsReserved(name) {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: %q is a reserved column name", key.String(), name)
	}
	if len(section) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: attributes must be inside a section such as [expt]", name)
	}

	s := l.global
	if section[0] == "plate" {
		if len(section) < 2 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: expected [plate.NAME]", key.String())
		}
		s = l.plate(section[1])
		section = section[2:]
		if len(section) == 0 {
			l.noteAttr(name)
			s.expt.set(name, v)
			return nil
		}
	}

	targets, err := resolve(s, section)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "[%s]: %v", strings.Join(key[:len(key)-1], "."), err)
	}
	l.noteAttr(name)
	for _, a := range targets {
		a.set(name, v)
	}
	return nil
}

// resolve returns the attribute sets addressed by a section path within s.
func resolve(s *scope, section []string) ([]*attrs, error) {
	kind, args := section[0], section[1:]
	want := 1
	if kind == "block" {
		want = 2
	}
	if kind != "expt" && len(args) != want {
		return nil, fmt.Errorf("malformed section name")
	}

	switch kind {
	case "expt":
		if len(args) != 0 {
			return nil, fmt.Errorf("malformed section name")
		}
		return []*attrs{&s.expt}, nil
	case "row":
		rows, err := parseRows(args[0])
		if err != nil {
			return nil, err
		}
		out := make([]*attrs, len(rows))
		for k, i := range rows {
			out[k] = entry(s.rows, i)
		}
		return out, nil
	case "col":
		cols, err := parseCols(args[0])
		if err != nil {
			return nil, err
		}
		out := make([]*attrs, len(cols))
		for k, j := range cols {
			out[k] = entry(s.cols, j)
		}
		return out, nil
	case "well":
		ws, err := parseWells(args[0])
		if err != nil {
			return nil, err
		}
		out := make([]*attrs, len(ws))
		for k, ij := range ws {
			out[k] = entry(s.wells, ij)
		}
		return out, nil
	case "block":
		bs, err := parseBlocks(args[0], args[1])
		if err != nil {
			return nil, err
		}
		out := make([]*attrs, len(bs))
		for k, b := range bs {
			out[k] = s.block(b)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown section %q", kind)
	}
}

// table builds the well table from everything read.
func (l *layout) table() (*wells.Table, error) {
	plates := slices.Clone(l.plateOrder)
	hasPlate := len(plates) > 0
	if !hasPlate {
		plates = []string{""}
	}

	tbl := wells.NewTable(l.attrOrder, hasPlate)
	for _, name := range plates {
		ps := l.plates[name]
		if ps == nil {
			ps = newScope()
		}
		for _, ij := range definedWells(l.global, ps) {
			vals, err := l.resolveWell(ps, ij[0], ij[1])
			if err != nil {
				return nil, err
			}
			row := wells.Row{Plate: name, RowI: ij[0], ColJ: ij[1], Values: vals}
			if l.dataPath != "" {
				row.Path = filepath.Join(l.dataDir, strings.ReplaceAll(l.dataPath, "{}", name))
			}
			tbl.Append(row)
		}
	}
	if tbl.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "No wells defined")
	}
	return tbl, nil
}

// definedWells lists the wells named by a well section, covered by a block,
// or at the intersection of a row and a column, sorted by row then column.
func definedWells(scopes ...*scope) [][2]int {
	seen := map[[2]int]bool{}
	var rows, cols []int
	for _, s := range scopes {
		for ij := range s.wells {
			seen[ij] = true
		}
		for _, b := range s.blocks {
			for i := b.I; i < b.I+b.H; i++ {
				for j := b.J; j < b.J+b.W; j++ {
					seen[[2]int{i, j}] = true
				}
			}
		}
		for i := range s.rows {
			rows = append(rows, i)
		}
		for j := range s.cols {
			cols = append(cols, j)
		}
	}
	for _, i := range rows {
		for _, j := range cols {
			seen[[2]int{i, j}] = true
		}
	}

	out := make([][2]int, 0, len(seen))
	for ij := range seen {
		out = append(out, ij)
	}
	slices.SortFunc(out, func(a, b [2]int) int {
		return cmp.Or(cmp.Compare(a[0], b[0]), cmp.Compare(a[1], b[1]))
	})
	return out
}

// resolveWell merges every section that covers well (i, j) of the plate
// scope ps, least specific first.
func (l *layout) resolveWell(ps *scope, i, j int) (map[string]wells.Value, error) {
	out := map[string]wells.Value{}
	apply := func(a *attrs) {
		if a.empty() {
			return
		}
		for _, name := range a.names {
			out[name] = a.vals[name]
		}
	}

	apply(&l.global.expt)
	apply(&ps.expt)
	for _, s := range []*scope{l.global, ps} {
		rc, err := mergeRowCol(s.rows[i], s.cols[j], i, j)
		if err != nil {
			return nil, err
		}
		apply(rc)
	}
	for _, s := range []*scope{l.global, ps} {
		for _, b := range coveringBlocks(s, i, j) {
			apply(&b.attrs)
		}
	}
	apply(l.global.wells[[2]int{i, j}])
	apply(ps.wells[[2]int{i, j}])
	return out, nil
}

// mergeRowCol combines a row and a column section. They are equally
// specific, so they must not disagree.
func mergeRowCol(row, col *attrs, i, j int) (*attrs, error) {
	merged := &attrs{}
	for _, a := range []*attrs{row, col} {
		if a.empty() {
			continue
		}
		for _, name := range a.names {
			v := a.vals[name]
			if prev, ok := merged.vals[name]; ok && !prev.Equal(v) {
				return nil, errors.New(errors.ErrCodeInvalidConfig,
					"[row.%s] and [col.%s] both set %q for well %s (%v and %v)",
					wells.RowFromI(i), wells.ColFromJ(j), name, wells.WellFromIJ(i, j), prev, v)
			}
			merged.set(name, v)
		}
	}
	return merged, nil
}

// coveringBlocks returns the blocks of s that contain (i, j), largest first
// so that smaller blocks override larger ones.
func coveringBlocks(s *scope, i, j int) []*blockAttrs {
	var out []*blockAttrs
	for _, b := range s.blocks {
		if b.contains(i, j) {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b *blockAttrs) int {
		return cmp.Compare(b.area(), a.area())
	})
	return out
}
