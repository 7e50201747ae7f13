// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package catalog holds the static, ordered project list for the event.
// It is read-only input: the submission pipeline validates projectId
// against it and the stats package iterates it for the dashboard.
package catalog
