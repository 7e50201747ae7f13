// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package stats computes the per-project aggregates shown on the admin
// dashboard: vote counts, one-decimal rating averages, the purchase-intent
// split, and a ranking score weighing averages plus purchase intent.
package stats
