// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Expovote API server.

Expovote is an event voting tool: attendees rate student projects on
innovation, design and functionality, and an admin watches aggregated
results. The core of the server is an evaluation sync layer that persists
every vote locally (durable sqlite, immediate) and remotely (eventually
consistent), reconciling both into one logical view without ever blocking
the voter on a slow network.

# Starting the Server

The server reads environment variables (optionally from a .env file) or
CLI flags:

	ADMIN_PIN=4621 SHEET_URL=https://script.google.com/.../exec go run main.go

Or with flags:

	go run main.go -p 4620 -b polling --sheet-url "https://..." --admin-pin 4621

# Configuration

Required settings:

  - ADMIN_PIN (--admin-pin): PIN gating the admin clear/export operations
  - DATABASE_URL (-d): Postgres connection string (push backend only)

Optional settings:

  - PORT (-p): Server port (default: 4620)
  - BACKEND (-b): Remote backend, polling or push (default: polling)
  - SHEET_URL (--sheet-url): Endpoint for the polling backend; absent
    means the server runs locally with connectivity reported as down
  - CACHE_PATH (--cache): Local sqlite cache file (default: expovote.db)
  - POLL_INTERVAL (--interval): Polling period in seconds (default: 5)

# Architecture

The server uses small single-purpose packages with dependency injection:

  - localcache: durable sqlite snapshot store with synchronous observers
  - remote: connector contract; remote/polling and remote/push implement it
  - syncer: merges cache and connector into one subscription
  - submit: the bounded-wait submission pipeline (3s ceiling, 800ms floor)
  - stats: admin dashboard aggregates
  - catalog: static project list
  - handlers, router, middleware: the HTTP surface
  - auth: admin PIN gate
  - metrics: Prometheus instrumentation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
