package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wellmap"

var buckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5}

// Metrics implements every hook interface with Prometheus collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	loads          *prometheus.CounterVec
	loadDuration   prometheus.Histogram
	wells          prometheus.Gauge
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderBytes    *prometheus.CounterVec
	cache          *prometheus.CounterVec
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_loads_total",
			Help:      "Layout files loaded, by result.",
		}, []string{"result"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_load_duration_seconds",
			Help:      "Time taken to parse a layout file and its includes.",
			Buckets:   buckets,
		}),
		wells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layout_wells",
			Help:      "Wells defined by the most recently loaded layout.",
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Figures rendered, by format and result.",
		}, []string{"format", "result"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time taken to draw and encode a figure.",
			Buckets:   buckets,
		}, []string{"format"}),
		renderBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_bytes_total",
			Help:      "Bytes of rendered output.",
		}, []string{"format"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache lookups and writes.",
		}, []string{"type", "event"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Preview server requests, by route and status.",
		}, []string{"method", "route", "code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Preview server response time.",
			Buckets:   buckets,
		}, []string{"route"}),
	}
	reg.MustRegister(
		m.loads,
		m.loadDuration,
		m.wells,
		m.renders,
		m.renderDuration,
		m.renderBytes,
		m.cache,
		m.requests,
		m.requestLatency,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnLoadStart(context.Context, string) {}

func (m *Metrics) OnLoadComplete(_ context.Context, _ string, numWells int, d time.Duration, err error) {
	m.loads.WithLabelValues(result(err)).Inc()
	m.loadDuration.Observe(d.Seconds())
	if err == nil {
		m.wells.Set(float64(numWells))
	}
}

func (m *Metrics) OnRenderStart(context.Context, string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	m.renders.WithLabelValues(format, result(err)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
	m.renderBytes.WithLabelValues(format).Add(float64(size))
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cache.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cache.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cache.WithLabelValues(keyType, "set").Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestLatency.WithLabelValues(route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
	_ HTTPHooks     = (*Metrics)(nil)
)
