// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the dashboard
// service.
//
// Metrics are exposed via the /metrics endpoint. All operations are
// thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace   = "riskdash"
	dashboardSubsystem = "dashboard"
)

// DashboardMetrics holds the Prometheus metrics for the risk dashboard.
// Initialize once at startup via the package-level Default instance.
type DashboardMetrics struct {
	// RequestsTotal counts API requests.
	// Labels: endpoint, status (2xx/4xx/5xx class)
	RequestsTotal *prometheus.CounterVec

	// RequestDurationSeconds measures handler latency.
	// Labels: endpoint
	RequestDurationSeconds *prometheus.HistogramVec

	// SyncRowsTotal counts ingested rows by source and outcome.
	// Labels: source (csv, sheets, upload), outcome (created, updated, error)
	SyncRowsTotal *prometheus.CounterVec

	// SyncRunsTotal counts ingestion runs by source and status.
	// Labels: source, status (success, error)
	SyncRunsTotal *prometheus.CounterVec

	// MitigationTogglesTotal counts mitigation flips.
	// Labels: new_state (mitigated, unmitigated)
	MitigationTogglesTotal *prometheus.CounterVec

	// RegisterSize tracks the current number of risks in the store.
	RegisterSize prometheus.Gauge
}

// Default is the process-wide metrics instance. promauto registers the
// collectors with the default registry at init time.
var Default = &DashboardMetrics{
	RequestsTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: dashboardSubsystem,
			Name:      "requests_total",
			Help:      "API requests by endpoint and status class.",
		},
		[]string{"endpoint", "status"},
	),
	RequestDurationSeconds: promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: dashboardSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Handler latency by endpoint.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	),
	SyncRowsTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: dashboardSubsystem,
			Name:      "sync_rows_total",
			Help:      "Ingested rows by source and outcome.",
		},
		[]string{"source", "outcome"},
	),
	SyncRunsTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: dashboardSubsystem,
			Name:      "sync_runs_total",
			Help:      "Ingestion runs by source and status.",
		},
		[]string{"source", "status"},
	),
	MitigationTogglesTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: dashboardSubsystem,
			Name:      "mitigation_toggles_total",
			Help:      "Mitigation flag flips by resulting state.",
		},
		[]string{"new_state"},
	),
	RegisterSize: promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: dashboardSubsystem,
			Name:      "register_size",
			Help:      "Current number of risks in the register.",
		},
	),
}

// ObserveSync records one ingestion run's counters.
func (m *DashboardMetrics) ObserveSync(source string, created, updated, errs int, failed bool) {
	m.SyncRowsTotal.WithLabelValues(source, "created").Add(float64(created))
	m.SyncRowsTotal.WithLabelValues(source, "updated").Add(float64(updated))
	m.SyncRowsTotal.WithLabelValues(source, "error").Add(float64(errs))
	status := "success"
	if failed {
		status = "error"
	}
	m.SyncRunsTotal.WithLabelValues(source, status).Inc()
}

// ObserveToggle records one mitigation flip.
func (m *DashboardMetrics) ObserveToggle(nowMitigated bool) {
	state := "unmitigated"
	if nowMitigated {
		state = "mitigated"
	}
	m.MitigationTogglesTotal.WithLabelValues(state).Inc()
}
