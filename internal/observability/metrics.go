// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/woozymasta/macroimport"
)

const metricsNamespace = "macroimport"

// stateOversized labels files skipped by the CLI size limit.
const stateOversized = "oversized"

// Metrics holds Prometheus collectors for one run.
//
// Each instance owns its registry so repeated runs never collide.
type Metrics struct {
	registry *prometheus.Registry
	compiles prometheus.Gauge
	hits     prometheus.Gauge
	misses   prometheus.Gauge
	files    *prometheus.GaugeVec
}

// NewMetrics creates and registers the run collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		compiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "pattern_compiles",
			Help:      "Regular expressions compiled during the run.",
		}),
		hits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "decision_cache_hits",
			Help:      "Files served from the decision cache.",
		}),
		misses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "decision_cache_misses",
			Help:      "Files classified without a cached decision.",
		}),
		files: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "files",
			Help:      "Processed files by terminal state.",
		}, []string{"state"}),
	}

	m.registry.MustRegister(m.compiles, m.hits, m.misses, m.files)

	return m
}

// Observe copies a stats snapshot into the collectors.
func (m *Metrics) Observe(stats macroimport.Stats) {
	m.compiles.Set(float64(stats.Compiles))
	m.hits.Set(float64(stats.Hits))
	m.misses.Set(float64(stats.Misses))
	m.files.WithLabelValues(macroimport.StateSkipped.String()).Set(float64(stats.Skipped))
	m.files.WithLabelValues(macroimport.StateAlreadyPresent.String()).Set(float64(stats.AlreadyPresent))
	m.files.WithLabelValues(macroimport.StateInjected.String()).Set(float64(stats.Injected))
}

// ObserveOversized records eligible files left untouched because of their size.
func (m *Metrics) ObserveOversized(n int64) {
	m.files.WithLabelValues(stateOversized).Set(float64(n))
}

// Registry returns the registry holding the run collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the collectors in node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
