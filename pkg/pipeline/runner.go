package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wellmap/wellmap/pkg/buildinfo"
	"github.com/wellmap/wellmap/pkg/cache"
	"github.com/wellmap/wellmap/pkg/config"
	"github.com/wellmap/wellmap/pkg/observability"
	"github.com/wellmap/wellmap/pkg/platemap"
	"github.com/wellmap/wellmap/pkg/render"
	"github.com/wellmap/wellmap/pkg/wells"
)

// keyTypeArtifact labels cache events for rendered figures.
const keyTypeArtifact = "artifact"

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// logger uses the charmbracelet default.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute loads the layout, builds the figure and renders it, reusing a
// cached rendering when none of the inputs changed.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	res := &Result{}

	start := time.Now()
	tbl, meta, err := r.Load(ctx, opts.Path)
	if err != nil {
		return nil, err
	}
	res.Table, res.Meta = tbl, meta
	res.Stats.LoadTime = time.Since(start)
	res.Stats.NumWells = tbl.Len()

	r.Logger.Debug("loaded layout",
		"path", opts.Path,
		"wells", tbl.Len(),
		"attrs", len(tbl.Attrs),
		"duration", res.Stats.LoadTime)

	res.Color = ResolveColor(opts.Color, meta)
	fig, err := Build(tbl, opts.Attrs, res.Color)
	if err != nil {
		return nil, err
	}
	res.Figure = fig
	res.Attrs = fig.Attrs
	res.Stats.NumPlates = len(fig.Plates)

	start = time.Now()
	data, hit, err := r.RenderWithCacheInfo(ctx, fig, meta, res.Color, opts)
	if err != nil {
		return nil, err
	}
	res.Artifact = data
	res.CacheHit = hit
	res.Stats.RenderTime = time.Since(start)

	r.Logger.Debug("rendered figure",
		"format", opts.Format,
		"bytes", len(data),
		"cached", hit,
		"duration", res.Stats.RenderTime)
	return res, nil
}

// Load parses the layout at path, reporting the load to the pipeline hooks.
func (r *Runner) Load(ctx context.Context, path string) (*wells.Table, *config.Meta, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	tbl, meta, err := config.Load(path)
	n := 0
	if tbl != nil {
		n = tbl.Len()
	}
	hooks.OnLoadComplete(ctx, path, n, time.Since(start), err)
	return tbl, meta, err
}

// Build lays out the figure for attrs using the named color scheme.
func Build(tbl *wells.Table, attrs []string, color string) (*platemap.Figure, error) {
	cmap, err := platemap.LookupColormap(color)
	if err != nil {
		return nil, err
	}
	return platemap.PlotLayout(tbl, attrs, platemap.Options{Colormap: &cmap})
}

// RenderWithCacheInfo renders fig, consulting the cache first unless
// opts.Refresh is set. It reports whether the result came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, fig *platemap.Figure, meta *config.Meta, color string, opts Options) ([]byte, bool, error) {
	key, err := r.artifactKey(fig, meta, color, opts)
	if err != nil {
		// Without a key the result is rendered but not cached.
		r.Logger.Warn("cannot compute cache key", "err", err)
	}

	cacheHooks := observability.Cache()
	if key != "" && !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache lookup failed", "err", err)
		case hit:
			cacheHooks.OnCacheHit(ctx, keyTypeArtifact)
			return data, true, nil
		default:
			cacheHooks.OnCacheMiss(ctx, keyTypeArtifact)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, string(opts.Format))
	start := time.Now()
	data, err := render.Render(fig, opts.Format, opts.DPI)
	hooks.OnRenderComplete(ctx, string(opts.Format), len(data), time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", opts.Format, err)
	}

	if key != "" {
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	return data, false, nil
}

func (r *Runner) artifactKey(fig *platemap.Figure, meta *config.Meta, color string, opts Options) (string, error) {
	if meta == nil || len(meta.Dependencies) == 0 {
		return "", nil
	}
	inputs, err := cache.HashFiles(meta.Dependencies)
	if err != nil {
		return "", err
	}
	return cache.ArtifactKey(inputs, cache.ArtifactKeyOpts{
		Attrs:   fig.Attrs,
		Color:   color,
		Format:  string(opts.Format),
		DPI:     opts.DPI,
		Version: buildinfo.Resolved(),
	}), nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
