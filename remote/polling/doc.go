// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polling implements the remote connector over a spreadsheet-script
HTTP endpoint.

The endpoint is a single URL accepting:

	GET  → JSON array of all evaluations
	POST → body is one JSON-serialized evaluation, response ignored

# Subscription

Subscribe performs an immediate fetch, then re-fetches every interval
(default 5s) until unsubscribed. Each attempt updates connectivity status.
Ticks firing during an in-flight fetch are skipped rather than overlapped.

# Limits of the transport

Appends are fire-and-forget: a script-level failure looks exactly like
success. ClearAll always returns remote.ErrPartialClear because the
transport has no way to delete rows; the admin cleans the sheet by hand.
*/
package polling
