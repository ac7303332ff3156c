// Package metrics records Prometheus metrics for a lightness run.
//
// A run is a batch job, so metrics are not scraped over HTTP; they are
// written once at the end in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns the collectors of one run in a private registry.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         *prometheus.Registry

	imagesProcessed prometheus.Counter
	imageFailures   *prometheus.CounterVec
	imageDuration   prometheus.Histogram
	seriesLength    prometheus.Gauge
	runDuration     prometheus.Gauge
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for the per-image duration.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithConstLabels adds fixed labels (e.g. mode) to every metric.
func WithConstLabels(labels map[string]string) Option {
	return func(m *Manager) {
		if labels != nil {
			m.constLabels = labels
		}
	}
}

// NewManager creates a Manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lightness",
		histogramBuckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.imagesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "images_processed_total",
		Help:        "Images reduced to a scalar successfully.",
		ConstLabels: m.constLabels,
	})
	m.imageFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "image_failures_total",
		Help:        "Images that failed, by error kind.",
		ConstLabels: m.constLabels,
	}, []string{"kind"})
	m.imageDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Name:        "image_duration_seconds",
		Help:        "Time to load, crop and aggregate one image.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
	m.seriesLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "series_length",
		Help:        "Number of values in the last produced series.",
		ConstLabels: m.constLabels,
	})
	m.runDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "run_duration_seconds",
		Help:        "Wall time of the last run.",
		ConstLabels: m.constLabels,
	})

	m.registry.MustRegister(m.imagesProcessed, m.imageFailures, m.imageDuration, m.seriesLength, m.runDuration)
	return m
}

// ImageProcessed records a successful image and its duration.
func (m *Manager) ImageProcessed(d time.Duration) {
	m.imagesProcessed.Inc()
	m.imageDuration.Observe(d.Seconds())
}

// ImageFailed records a failed image under the given error kind.
func (m *Manager) ImageFailed(kind string, d time.Duration) {
	m.imageFailures.WithLabelValues(kind).Inc()
	m.imageDuration.Observe(d.Seconds())
}

// RunFinished records the outcome of a whole run.
func (m *Manager) RunFinished(seriesLen int, d time.Duration) {
	m.seriesLength.Set(float64(seriesLen))
	m.runDuration.Set(d.Seconds())
}

// Gatherer exposes the registry, mainly for tests.
func (m *Manager) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics to path atomically.
func (m *Manager) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
