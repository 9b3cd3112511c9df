package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wellmap/wellmap/pkg/cache"
	"github.com/wellmap/wellmap/pkg/errors"
	"github.com/wellmap/wellmap/pkg/observability"
	"github.com/wellmap/wellmap/pkg/pipeline"
	"github.com/wellmap/wellmap/pkg/platemap"
	"github.com/wellmap/wellmap/pkg/render"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	addr     string
	redisURL string
	noCache  bool
}

func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve <toml>",
		Short: "Serve a live preview of a layout over HTTP",
		Long: `Serve a web page showing the layout. The file is reloaded on every
request, so saving it and refreshing the page shows the change.

Routes:
  GET /                      preview page (?attr=NAME&color=NAME)
  GET /plot.{format}         the figure as svg, png, jpg, tif, pdf, eps or json
  GET /wells.json            the well table
  GET /healthz               liveness check
  GET /metrics               Prometheus metrics`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLayoutArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "localhost:8096", "listen `ADDRESS`")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "cache renders in Redis at `URL` (redis://host:6379/0)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not cache renders")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, path string, opts serveOptions) error {
	logger := loggerFromContext(ctx)

	var store cache.Cache
	switch {
	case opts.redisURL != "" && !opts.noCache:
		rc, err := cache.NewRedisCache(ctx, opts.redisURL, cache.DefaultRedisPrefix)
		if err != nil {
			return err
		}
		store = rc
	default:
		store = c.newCache(opts.noCache)
	}
	runner := pipeline.NewRunner(store, logger)
	defer runner.Close()

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	observability.SetPipelineHooks(metrics)
	observability.SetCacheHooks(metrics)
	observability.SetHTTPHooks(metrics)
	defer observability.Reset()

	s := newServer(path, runner, logger, metrics)
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printInfo(c.Stdout, "Serving %s at %s", StyleHighlight.Render(path), StyleHighlight.Render("http://"+opts.addr+"/"))

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", "err", err)
	}
	return ctx.Err()
}

type server struct {
	path    string
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics *observability.Metrics
}

func newServer(path string, runner *pipeline.Runner, logger *log.Logger, metrics *observability.Metrics) *server {
	return &server{path: path, runner: runner, logger: logger, metrics: metrics}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/plot.{format}", s.handlePlot)
	r.Get("/wells.json", s.handleWells)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	return r
}

// requestID tags each request with an id, taken from X-Request-Id when the
// client sent one, and attaches a logger carrying it.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, status, d)
		loggerFromContext(r.Context()).Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", d.Round(time.Microsecond))
	})
}

// plotQuery reads the display options shared by / and /plot.{format}.
// Attributes may repeat (?attr=a&attr=b) or be comma separated.
func plotQuery(r *http.Request) (attrs []string, color string, dpi int, err error) {
	q := r.URL.Query()
	for _, a := range q["attr"] {
		for _, name := range strings.Split(a, ",") {
			if name = strings.TrimSpace(name); name != "" {
				attrs = append(attrs, name)
			}
		}
	}
	if v := q.Get("dpi"); v != "" {
		dpi, err = strconv.Atoi(v)
		if err != nil || dpi < 1 || dpi > 1200 {
			return nil, "", 0, errors.New(errors.ErrCodeInvalidInput, "dpi must be a number between 1 and 1200, got %q", v)
		}
	}
	return attrs, q.Get("color"), dpi, nil
}

func (s *server) handlePlot(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	attrs, color, dpi, err := plotQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Path:   s.path,
		Attrs:  attrs,
		Color:  color,
		Format: format,
		DPI:    dpi,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	if res.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Write(res.Artifact)
}

func (s *server) handleWells(w http.ResponseWriter, r *http.Request) {
	tbl, _, err := s.runner.Load(r.Context(), s.path)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cols := tbl.Columns()
	rows := make([]map[string]any, tbl.Len())
	for i := range rows {
		rows[i] = make(map[string]any, len(cols))
		for _, col := range cols {
			rows[i][col] = tbl.Get(i, col).Interface()
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"columns": cols,
		"attrs":   tbl.Attrs,
		"wells":   rows,
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Path}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
nav a { margin-right: 0.6em; }
nav a.on { font-weight: bold; }
.err { color: #b00; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{.Path}}</h1>
{{if .Error}}<p class="err">{{.Error}}</p>{{else}}
<nav>Attributes:
<a href="?color={{.Color}}"{{if not .Selected}} class="on"{{end}}>all</a>
{{range .Attrs}}<a href="?attr={{.Name}}&amp;color={{$.Color}}"{{if .On}} class="on"{{end}}>{{.Name}}</a>{{end}}
</nav>
<nav>Colors:
{{range .Colors}}<a href="?{{$.AttrQuery}}color={{.Name}}"{{if .On}} class="on"{{end}}>{{.Name}}</a>{{end}}
</nav>
<p><img src="/plot.svg?{{.AttrQuery}}color={{.Color}}" alt="{{.Path}}"></p>
<p><a href="/plot.png?{{.AttrQuery}}color={{.Color}}">png</a> <a href="/plot.pdf?{{.AttrQuery}}color={{.Color}}">pdf</a> <a href="/wells.json">wells.json</a></p>
{{end}}
</body>
</html>
`))

type indexLink struct {
	Name string
	On   bool
}

type indexPage struct {
	Path      string
	Error     string
	Attrs     []indexLink
	Colors    []indexLink
	Selected  bool
	Color     string
	AttrQuery template.URL
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	attrs, color, _, err := plotQuery(r)
	page := indexPage{Path: s.path, Selected: len(attrs) > 0}
	if err != nil {
		page.Error = errors.UserMessage(err)
		s.writePage(w, r, http.StatusBadRequest, page)
		return
	}

	tbl, meta, err := s.runner.Load(r.Context(), s.path)
	if err != nil {
		page.Error = errors.UserMessage(err)
		s.writePage(w, r, httpStatus(err), page)
		return
	}
	page.Color = pipeline.ResolveColor(color, meta)

	var q strings.Builder
	for _, a := range attrs {
		q.WriteString("attr=" + template.URLQueryEscaper(a) + "&")
	}
	page.AttrQuery = template.URL(q.String())
	for _, a := range tbl.Attrs {
		page.Attrs = append(page.Attrs, indexLink{Name: a, On: slices.Contains(attrs, a)})
	}
	for _, name := range platemap.ColormapNames() {
		page.Colors = append(page.Colors, indexLink{Name: name, On: name == page.Color})
	}
	s.writePage(w, r, http.StatusOK, page)
}

func (s *server) writePage(w http.ResponseWriter, r *http.Request, status int, page indexPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, page); err != nil {
		loggerFromContext(r.Context()).Error("render index", "err", err)
	}
}

// httpStatus maps an error code to the response status.
func httpStatus(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidSelection, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidConfig:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, map[string]string{
		"code":    string(code),
		"message": errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
