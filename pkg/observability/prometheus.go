package observability

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics records Metrics calls in Prometheus collectors.
// Dotted names become underscored; counters get a _total suffix and timings
// are observed in seconds. The label set of a metric is fixed by its first use.
type PrometheusMetrics struct {
	reg        *prometheus.Registry
	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
	labels     map[string][]string
}

// NewPrometheusMetrics creates a sink backed by its own registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		reg:        prometheus.NewRegistry(),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		labels:     make(map[string][]string),
	}
}

// Registry returns the registry the collectors live in.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.reg
}

func (m *PrometheusMetrics) Counter(name string, value int64, tags ...Tag) {
	if value < 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	promName := PrometheusName(name) + "_total"
	vec, ok := m.counters[promName]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: promName,
			Help: "Counter " + name,
		}, labelNames(tags))
		vec = register(m.reg, vec)
		m.counters[promName] = vec
		m.labels[promName] = labelNames(tags)
	}
	if c, err := vec.GetMetricWithLabelValues(m.values(promName, tags)...); err == nil {
		c.Add(float64(value))
	}
}

func (m *PrometheusMetrics) Gauge(name string, value float64, tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()

	promName := PrometheusName(name)
	vec, ok := m.gauges[promName]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: promName,
			Help: "Gauge " + name,
		}, labelNames(tags))
		vec = register(m.reg, vec)
		m.gauges[promName] = vec
		m.labels[promName] = labelNames(tags)
	}
	if g, err := vec.GetMetricWithLabelValues(m.values(promName, tags)...); err == nil {
		g.Set(value)
	}
}

func (m *PrometheusMetrics) Histogram(name string, value float64, tags ...Tag) {
	m.observe(PrometheusName(name), name, value, tags)
}

func (m *PrometheusMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	m.observe(PrometheusName(name)+"_seconds", name, duration.Seconds(), tags)
}

func (m *PrometheusMetrics) observe(promName, name string, value float64, tags []Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vec, ok := m.histograms[promName]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    promName,
			Help:    "Histogram " + name,
			Buckets: prometheus.DefBuckets,
		}, labelNames(tags))
		vec = register(m.reg, vec)
		m.histograms[promName] = vec
		m.labels[promName] = labelNames(tags)
	}
	if h, err := vec.GetMetricWithLabelValues(m.values(promName, tags)...); err == nil {
		h.Observe(value)
	}
}

// WriteToTextfile writes the current values in the text exposition format,
// suitable for the node_exporter textfile collector.
func (m *PrometheusMetrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

// values orders tag values by the label names fixed at registration.
// Missing tags become empty values; unknown tags are dropped.
func (m *PrometheusMetrics) values(promName string, tags []Tag) []string {
	names := m.labels[promName]
	byKey := make(map[string]string, len(tags))
	for _, t := range tags {
		byKey[PrometheusName(t.Key)] = t.Value
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = byKey[n]
	}
	return out
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

func labelNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, PrometheusName(t.Key))
	}
	sort.Strings(names)
	return names
}

// PrometheusName converts a dotted metric name to a valid Prometheus name.
func PrometheusName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(name)
}
