// Package metrics provides the Prometheus instruments for the pricing
// service.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/optionpricer/pkg/logger"
)

// Metrics bundles the service instruments.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration prometheus.Histogram

	PricingsTotal   prometheus.Counter
	PricingErrors   prometheus.Counter
	PricingDuration prometheus.Histogram
	BatchSize       prometheus.Histogram

	DBQueriesTotal  prometheus.Counter
	DBQueryDuration prometheus.Histogram

	registry *prometheus.Registry
}

// New creates and registers the instruments under the pricing namespace.
func New(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		PricingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "pricings_total",
			Help:      "Total pricing computations",
		}),
		PricingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "pricing_errors_total",
			Help:      "Total pricing computations rejected or failed",
		}),
		PricingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "pricing_duration_seconds",
			Help:      "Lattice computation duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "batch_size",
			Help:      "Contracts per batch pricing request",
			Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000},
		}),
		DBQueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "db_queries_total",
			Help:      "Total database queries",
		}),
		DBQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.PricingsTotal,
		m.PricingErrors,
		m.PricingDuration,
		m.BatchSize,
		m.DBQueriesTotal,
		m.DBQueryDuration,
	)
	return m
}

// ObservePricing records one kernel invocation.
func (m *Metrics) ObservePricing(start time.Time, err error) {
	if m == nil {
		return
	}
	m.PricingsTotal.Inc()
	m.PricingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.PricingErrors.Inc()
	}
}

// ExposeHTTP serves the registry on the given port until the process exits.
func (m *Metrics) ExposeHTTP(port int, path string) {
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "metrics server starting", "addr", addr, "path", path)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error(context.Background(), "metrics server failed", "error", err)
	}
}
