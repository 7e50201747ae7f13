// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Expovote API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - EvaluationHandler: listing, submission, SSE streaming, status,
    catalog and per-project stats
  - AdminHandler: PIN-gated clear and export

# Voting Flow

	GET  /projects            → Projects (static catalog)
	POST /evaluations         → Submit (draft in, outcome out)
	GET  /evaluations         → List (current merged view)
	GET  /evaluations/stream  → Stream (server-sent events)
	GET  /status              → Status (remote connectivity)
	GET  /stats               → Stats (admin dashboard aggregates)

Submit responds within the submission pipeline's bounded wait (~3.8s worst
case) with one of three outcomes: confirmed, assumed or local_only. A
local_only response carries a soft warning; the vote is saved locally in
every case.

# Admin Flow

	POST /admin/clear  → Clear
	GET  /admin/export → Export

Admin operations require the X-Admin-Pin header. Clear reports a partial
remote clear as an explicit warning instead of pretending success.
*/
package handlers
