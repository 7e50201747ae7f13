// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package remote defines the contract between the sync core and the remote
evaluation store.

Two interchangeable backends implement Connector:

  - remote/polling: a spreadsheet-script HTTP endpoint, read by periodic
    GET and written by fire-and-forget POST
  - remote/push: a Postgres-backed collection with LISTEN/NOTIFY change
    delivery and structured insert/delete

Both sort every delivered set by timestamp descending, so consumer ordering
is backend-independent.

# Failure Semantics

Connector failures never reach the submission pipeline as fatal errors.
They become ConnectivityStatus changes and are swallowed at the connector
boundary: the local cache stays the source of truth for UI responsiveness.
ErrPartialClear is the one error the administrative caller must inspect.
*/
package remote
