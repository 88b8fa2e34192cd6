package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/20q2/golgari-game-day/application/ports"
	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Bus metrics
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Business metrics
	FeedbackRecorded *prometheus.CounterVec
}

var _ ports.Metrics = (*Collector)(nil)

// NewCollector creates a collector with its own registry
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of dispatched commands and queries",
			},
			[]string{"kind", "name", "status"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Command and query duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind", "name"},
		),
		FeedbackRecorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feedback_recorded_total",
				Help:      "Total number of stored comments, ratings and like changes",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Operations,
		c.OperationDuration,
		c.FeedbackRecorded,
	)
	return c
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the metrics in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordOperation records a dispatched command or query
func (c *Collector) RecordOperation(kind, name string, duration time.Duration, err error) {
	c.Operations.WithLabelValues(kind, name, statusLabel(err)).Inc()
	c.OperationDuration.WithLabelValues(kind, name).Observe(duration.Seconds())
}

// RecordHTTPRequest records a served HTTP request
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordFeedback counts a stored comment, rating or like change
func (c *Collector) RecordFeedback(kind feedback.Kind) {
	c.FeedbackRecorded.WithLabelValues(string(kind)).Inc()
}

// NoopMetrics discards every measurement
type NoopMetrics struct{}

var _ ports.Metrics = NoopMetrics{}

func (NoopMetrics) RecordOperation(string, string, time.Duration, error)  {}
func (NoopMetrics) RecordHTTPRequest(string, string, int, time.Duration) {}
func (NoopMetrics) RecordFeedback(feedback.Kind)                        {}

func statusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
