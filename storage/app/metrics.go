// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"errors"
	"net/http"

	"github.com/perfdata/benchnorm/adapter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics are the counters served on /metrics. Each App has its own
// registry so that several Apps can live in one process.
type metrics struct {
	registry    *prometheus.Registry
	uploads     *prometheus.CounterVec
	parseErrors *prometheus.CounterVec
	results     *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchnorm_uploads_total",
				Help: "Number of committed uploads, by the adapter of their first file.",
			},
			[]string{"adapter"},
		),
		parseErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchnorm_parse_errors_total",
				Help: "Number of uploaded files rejected by an adapter.",
			},
			[]string{"adapter", "kind"},
		),
		results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchnorm_results_total",
				Help: "Number of normalized benchmark results stored.",
			},
			[]string{"adapter"},
		),
	}
	m.registry.MustRegister(m.uploads, m.parseErrors, m.results)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// errorKind returns the label used to count a parse error.
func errorKind(err error) string {
	var aerr *adapter.Error
	var perr *adapter.ProbeError
	switch {
	case errors.As(err, &perr):
		return "probe"
	case errors.As(err, &aerr):
		return aerr.Kind.String()
	}
	return "unknown"
}
