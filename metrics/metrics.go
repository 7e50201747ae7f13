// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values for remote operations.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// RemoteFetches counts full remote reads per backend and result.
	RemoteFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "expovote",
		Name:      "remote_fetches_total",
		Help:      "Remote fetchAll attempts by backend and result.",
	}, []string{"backend", "result"})

	// RemoteAppends counts remote single-record writes per backend and result.
	RemoteAppends = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "expovote",
		Name:      "remote_appends_total",
		Help:      "Remote append attempts by backend and result.",
	}, []string{"backend", "result"})

	// Connectivity mirrors ConnectivityStatus.Connected (1 connected, 0 not).
	Connectivity = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "expovote",
		Name:      "remote_connected",
		Help:      "Whether the last remote operation succeeded.",
	})

	// Submissions counts completed submission pipelines by outcome
	// (confirmed, assumed, local_only).
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "expovote",
		Name:      "submissions_total",
		Help:      "Completed evaluation submissions by outcome.",
	}, []string{"outcome"})
)

// SetConnected records a connectivity change.
func SetConnected(connected bool) {
	if connected {
		Connectivity.Set(1)
	} else {
		Connectivity.Set(0)
	}
}

// Handler exposes the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
