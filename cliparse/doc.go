// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4620)
  - Backend: Remote backend strategy, "polling" or "push" (default: polling)
  - SheetURL: Endpoint URL for the polling backend (optional; absent means
    the backend runs permanently disconnected)
  - DatabaseURL: Postgres connection string for the push backend (optional;
    absent means the backend runs permanently disconnected)
  - CachePath: Local sqlite cache file (default: expovote.db)
  - AdminPIN: PIN gating clear/export (required)
  - PollInterval: Polling interval in seconds (default: 5)

# CLI Flags

	-p          Server port
	-b          Backend (polling or push)
	--sheet-url Polling endpoint URL
	-d          Database URL
	--cache     Local cache path
	--interval  Polling interval seconds
	--admin-pin Admin PIN

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	BACKEND       → -b
	SHEET_URL     → --sheet-url
	DATABASE_URL  → -d
	CACHE_PATH    → --cache
	POLL_INTERVAL → --interval
	ADMIN_PIN     → --admin-pin

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded by main via godotenv before parsing.

# Validation

ParseFlags returns an error if required values are missing:

  - ADMIN_PIN must be provided

SHEET_URL and DATABASE_URL are deliberately not required: without its
endpoint the selected connector reports ConnectivityStatus{Connected: false}
and the app keeps working against the local cache alone.
*/
package cliparse
