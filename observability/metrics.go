// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package observability holds the Prometheus collectors shared by the
// loaders, the renderer and the preview server.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mineralmap"

// Metrics holds the Prometheus counters and histograms of a run.
type Metrics struct {
	SitesLoaded  *prometheus.CounterVec // labels: format={csv,geojson,sample,catalog}
	RowsRejected *prometheus.CounterVec // labels: reason
	FilesSkipped prometheus.Counter

	// Rendering metrics.
	FeaturesRendered *prometheus.CounterVec // labels: tab
	RenderDuration   prometheus.Histogram

	// Preview server metrics.
	HTTPRequests *prometheus.CounterVec // labels: route, code
}

func newMetrics() *Metrics {
	return &Metrics{
		SitesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sites_loaded_total",
			Help:      "Sites accepted from input files, by input format.",
		}, []string{"format"}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rejected_total",
			Help:      "Input rows rejected during loading, by reason.",
		}, []string{"reason"}),
		FilesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_skipped_total",
			Help:      "Input files skipped because they were missing or malformed.",
		}),
		FeaturesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "features_rendered_total",
			Help:      "Map features written to rendered pages, by tab.",
		}, []string{"tab"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent building and writing one page.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Preview server requests by route and status code.",
		}, []string{"route", "code"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.SitesLoaded,
		m.RowsRejected,
		m.FilesSkipped,
		m.FeaturesRendered,
		m.RenderDuration,
		m.HTTPRequests,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)

	return m
}

// NewMetricsForTesting creates Metrics registered on a fresh registry to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() (*Metrics, *prometheus.Registry) {
	m := newMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.collectors()...)

	return m, reg
}
