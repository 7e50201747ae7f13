// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/rmedina/expovote/cliparse"
	"github.com/rmedina/expovote/handlers"
	"github.com/rmedina/expovote/metrics"
	"github.com/rmedina/expovote/middleware"
	"github.com/rmedina/expovote/submit"
	"github.com/rmedina/expovote/syncer"
)

func NewRouter(sync *syncer.Syncer, pipeline *submit.Pipeline, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	evalHandler := handlers.NewEvaluationHandler(sync, pipeline, cfg)
	adminHandler := handlers.NewAdminHandler(sync, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting operations (public)
	mux.HandleFunc("GET /projects", middleware.WithLogging(evalHandler.Projects))
	mux.HandleFunc("GET /evaluations", middleware.WithLogging(evalHandler.List))
	mux.HandleFunc("POST /evaluations", middleware.WithLogging(evalHandler.Submit))
	mux.HandleFunc("GET /evaluations/stream", evalHandler.Stream) // long-lived, logged via sync layer
	mux.HandleFunc("GET /status", middleware.WithLogging(evalHandler.Status))
	mux.HandleFunc("GET /stats", middleware.WithLogging(evalHandler.Stats))

	// Admin operations (PIN gated)
	mux.HandleFunc("POST /admin/clear", middleware.WithLogging(adminHandler.Clear))
	mux.HandleFunc("GET /admin/export", middleware.WithLogging(adminHandler.Export))

	// Prometheus metrics
	mux.Handle("GET /metrics", metrics.Handler())

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("expovote API v1"))
	})

	return mux
}
