// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors for config sync traffic.
// All recording methods are nil-safe so that components can run without
// metrics in tests.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all sync collectors and the registry they are registered in.
type Metrics struct {
	MessagesSent     *prometheus.CounterVec
	MessagesReceived *prometheus.CounterVec
	DecodeFailures   *prometheus.CounterVec
	EncodeFailures   *prometheus.CounterVec
	PeersSynced      prometheus.Gauge
	Reloads          *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors in a fresh registry, so that several
// instances can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		MessagesSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modconfig_sync_messages_sent_total",
				Help: "Sync messages sent to peers",
			},
			[]string{"module"},
		),
		MessagesReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modconfig_sync_messages_received_total",
				Help: "Sync messages applied from the server",
			},
			[]string{"module"},
		),
		DecodeFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modconfig_sync_decode_failures_total",
				Help: "Sync messages or values that could not be decoded",
			},
			[]string{"reason"},
		),
		EncodeFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modconfig_sync_encode_failures_total",
				Help: "Sync messages that could not be encoded",
			},
			[]string{"module"},
		),
		PeersSynced: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "modconfig_sync_peers",
				Help: "Peers currently in the synced state",
			},
		),
		Reloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modconfig_reloads_total",
				Help: "Live config reloads by outcome",
			},
			[]string{"outcome"},
		),
		registry: reg,
	}
}

// Handler exposes the collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer returns the underlying registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) MessageSent(moduleID string) {
	if m != nil {
		m.MessagesSent.WithLabelValues(moduleID).Inc()
	}
}

func (m *Metrics) MessageReceived(moduleID string) {
	if m != nil {
		m.MessagesReceived.WithLabelValues(moduleID).Inc()
	}
}

func (m *Metrics) DecodeFailed(reason string) {
	if m != nil {
		m.DecodeFailures.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) EncodeFailed(moduleID string) {
	if m != nil {
		m.EncodeFailures.WithLabelValues(moduleID).Inc()
	}
}

func (m *Metrics) PeerSynced() {
	if m != nil {
		m.PeersSynced.Inc()
	}
}

func (m *Metrics) PeerUnsynced() {
	if m != nil {
		m.PeersSynced.Dec()
	}
}

// Reloaded counts a live reload; ok reports whether it succeeded.
func (m *Metrics) Reloaded(ok bool) {
	if m == nil {
		return
	}

	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.Reloads.WithLabelValues(outcome).Inc()
}
