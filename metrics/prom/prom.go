// Package prom implements metrics.Provider on top of
// github.com/prometheus/client_golang, the way a Prometheus-backed metrics
// package in this stack registers and exposes its instruments: one
// collector per named instrument, registered on first use, served over HTTP via
// promhttp.Handler.
package prom

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ygrebnov/revidx/metrics"
)

// Provider is a metrics.Provider backed by a dedicated prometheus.Registry,
// so multiple Providers (e.g. in tests) never collide on metric names.
type Provider struct {
	reg *prometheus.Registry

	mu              sync.Mutex
	counters        map[string]*prometheus.CounterVec
	upDownCounters  map[string]*prometheus.GaugeVec
	histograms      map[string]*prometheus.HistogramVec
}

// New creates a Provider with its own registry.
func New() *Provider {
	return &Provider{
		reg:            prometheus.NewRegistry(),
		counters:       make(map[string]*prometheus.CounterVec),
		upDownCounters: make(map[string]*prometheus.GaugeVec),
		histograms:     make(map[string]*prometheus.HistogramVec),
	}
}

// Handler returns the HTTP handler serving this Provider's registry.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}

func attrConfig(opts []metrics.InstrumentOption) metrics.InstrumentConfig {
	var c metrics.InstrumentConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func labelPairs(attrs map[string]string) ([]string, prometheus.Labels) {
	names := make([]string, 0, len(attrs))
	values := make(prometheus.Labels, len(attrs))
	for k, v := range attrs {
		names = append(names, k)
		values[k] = v
	}
	return names, values
}

// Counter returns a monotonic counter named name, registering it on first
// use and reusing the same collector for subsequent calls with the same
// name.
func (p *Provider) Counter(name string, opts ...metrics.InstrumentOption) metrics.Counter {
	cfg := attrConfig(opts)
	p.mu.Lock()
	defer p.mu.Unlock()

	vec, ok := p.counters[name]
	if !ok {
		labelNames, _ := labelPairs(cfg.Attributes)
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: cfg.Description}, labelNames)
		p.reg.MustRegister(vec)
		p.counters[name] = vec
	}
	_, values := labelPairs(cfg.Attributes)
	return counterHandle{vec.With(values)}
}

// UpDownCounter returns a gauge-backed counter named name.
func (p *Provider) UpDownCounter(name string, opts ...metrics.InstrumentOption) metrics.UpDownCounter {
	cfg := attrConfig(opts)
	p.mu.Lock()
	defer p.mu.Unlock()

	vec, ok := p.upDownCounters[name]
	if !ok {
		labelNames, _ := labelPairs(cfg.Attributes)
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: cfg.Description}, labelNames)
		p.reg.MustRegister(vec)
		p.upDownCounters[name] = vec
	}
	_, values := labelPairs(cfg.Attributes)
	return upDownHandle{vec.With(values)}
}

// Histogram returns a histogram named name. It always uses
// prometheus.DefBuckets; bucket boundaries cannot be configured.
func (p *Provider) Histogram(name string, opts ...metrics.InstrumentOption) metrics.Histogram {
	cfg := attrConfig(opts)
	p.mu.Lock()
	defer p.mu.Unlock()

	vec, ok := p.histograms[name]
	if !ok {
		labelNames, _ := labelPairs(cfg.Attributes)
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name,
			Help:    cfg.Description,
			Buckets: prometheus.DefBuckets,
		}, labelNames)
		p.reg.MustRegister(vec)
		p.histograms[name] = vec
	}
	_, values := labelPairs(cfg.Attributes)
	return histogramHandle{vec.With(values)}
}

type counterHandle struct{ c prometheus.Counter }

func (h counterHandle) Add(n int64) { h.c.Add(float64(n)) }

type upDownHandle struct{ g prometheus.Gauge }

func (h upDownHandle) Add(n int64) { h.g.Add(float64(n)) }

type histogramHandle struct{ o prometheus.Observer }

func (h histogramHandle) Record(v float64) { h.o.Observe(v) }
