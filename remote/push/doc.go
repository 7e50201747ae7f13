// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package push implements the remote connector over a Postgres-backed
collection with LISTEN/NOTIFY change delivery.

The collection is a single table keyed by evaluation id, queried ordered by
timestamp descending. A statement-level trigger emits pg_notify on every
insert, update or delete, and an active subscription re-reads the full set
on each notification: one change batch, one onUpdate call.

Compared to the polling backend, appends surface their real outcome and
ClearAll actually clears the collection (one DELETE in one transaction,
atomic from the caller's perspective).

Construction never dials the store. A missing database URL or an
unreachable server degrades the connector to a disconnected status while
the local cache keeps serving; the connection and schema are established
lazily on first use and the listener retries in the background.

Tests in this package expect a reachable Postgres at TestDBURL, matching
the development docker-compose setup.
*/
package push
