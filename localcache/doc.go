// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package localcache is the durable on-device evaluation store.

The cache holds exactly one unit of data: the last known complete snapshot
of all evaluations. Writes replace the whole snapshot inside a single
sqlite transaction; there are no partial or field-level updates.

# Contract

  - Read never fails: corrupt or missing data reads as an empty snapshot
  - Write/Clear report storage errors but callers treat them as non-fatal
  - every successful Write/Clear notifies observers synchronously, which is
    how an optimistic local commit becomes visible to sync subscribers
    before any remote confirmation arrives

# Storage

modernc.org/sqlite (pure Go, no cgo) via database/sql, one connection.
sqlite's own transaction atomicity is the only locking relied upon.
*/
package localcache
