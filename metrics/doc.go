// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus counters and gauges for the sync layer.

All collectors register against the default registry via promauto, so
importing a package that records a metric is enough to export it. The
router mounts Handler at GET /metrics.

# Collectors

  - expovote_remote_fetches_total{backend,result}: full remote reads
  - expovote_remote_appends_total{backend,result}: single-record remote writes
  - expovote_remote_connected: 1 while the last remote operation succeeded
  - expovote_submissions_total{outcome}: completed submissions by outcome

Connectors record fetch and append results themselves; the submission
pipeline records the outcome after the bounded wait resolves.
*/
package metrics
