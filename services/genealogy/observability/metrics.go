// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the genealogy
// service: request counts, workbook load outcomes, and saved-record counts.
// Metrics are exposed on /metrics for Prometheus + Grafana.
//
// All operations are thread-safe via Prometheus's internal locking, and all
// recording methods are nil-receiver safe so the store and handlers can run
// without metrics in tests.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics.
const metricsNamespace = "genealogy"

// Metrics holds the Prometheus metrics for the genealogy service.
type Metrics struct {
	// RequestsTotal counts HTTP requests by route and status code.
	RequestsTotal *prometheus.CounterVec

	// LoadsTotal counts workbook loads by dataset (lineage, biography)
	// and status (success, error).
	LoadsTotal *prometheus.CounterVec

	// RecordsSavedTotal counts saved records by kind (rating, assessment)
	// and status (success, error).
	RecordsSavedTotal *prometheus.CounterVec

	// PeopleLoaded is the number of people in the current lineage snapshot.
	PeopleLoaded prometheus.Gauge

	// BiographyScientists is the number of scientists in the current
	// biography snapshot.
	BiographyScientists prometheus.Gauge
}

// NewMetrics creates and registers all metrics against the given registerer.
// Pass prometheus.DefaultRegisterer in main; tests use a fresh registry to
// avoid duplicate-registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),
		LoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "workbook_loads_total",
				Help:      "Workbook loads by dataset and status",
			},
			[]string{"dataset", "status"},
		),
		RecordsSavedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "records_saved_total",
				Help:      "Saved rating/assessment records by kind and status",
			},
			[]string{"kind", "status"},
		),
		PeopleLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "people_loaded",
				Help:      "People in the current lineage snapshot",
			},
		),
		BiographyScientists: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "biography_scientists",
				Help:      "Scientists in the current biography snapshot",
			},
		),
	}
}

// RecordRequest counts one HTTP request.
func (m *Metrics) RecordRequest(route, status string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, status).Inc()
}

// RecordLoad counts one workbook load attempt for a dataset.
func (m *Metrics) RecordLoad(dataset string, err error) {
	if m == nil {
		return
	}
	m.LoadsTotal.WithLabelValues(dataset, statusLabel(err)).Inc()
}

// RecordSave counts one save attempt for a record kind.
func (m *Metrics) RecordSave(kind string, err error) {
	if m == nil {
		return
	}
	m.RecordsSavedTotal.WithLabelValues(kind, statusLabel(err)).Inc()
}

// SetPeopleLoaded updates the lineage snapshot gauge.
func (m *Metrics) SetPeopleLoaded(n int) {
	if m == nil {
		return
	}
	m.PeopleLoaded.Set(float64(n))
}

// SetBiographyScientists updates the biography snapshot gauge.
func (m *Metrics) SetBiographyScientists(n int) {
	if m == nil {
		return
	}
	m.BiographyScientists.Set(float64(n))
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
