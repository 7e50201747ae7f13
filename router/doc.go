// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for the Expovote API.

Routes use Go 1.22+ method-aware patterns on the standard ServeMux:

	mux := router.NewRouter(sync, pipeline, cfg)

All routes except the SSE stream and /metrics are wrapped with request
logging. CORS wrapping happens in main around the whole mux.
*/
package router
