// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package syncer merges the local cache and the active remote connector into
a single logical view of "all evaluations".

# Subscription

	s := syncer.New(cache, connector)
	unsubscribe := s.Subscribe(ctx, func(u models.Update) { ... })

Subscribe guarantees:

 1. one synchronous data update with the cache snapshot (zero-latency
    first paint)
 2. one data update per remote fetch/push cycle, written back to the cache
    first (remote is authoritative once received)
 3. one data update per local-only write, via the cache observer
 4. status changes interleaved on the same callback as tagged updates

Local and remote deliveries may interleave in any order relative to each
other, each channel preserving its own emission order. Redundant calls with
identical content happen (a remote update is also seen as the cache write
it causes) and callers must tolerate them.

The returned unsubscribe tears down both the remote subscription and the
cache observer, exactly once.

# Administrative operations

Clear wipes locally and best-effort remotely, surfacing
remote.ErrPartialClear instead of hiding it. ExportAll renders the known
set as JSON, from the cache (polling backend) or the authoritative remote
read (push backend).
*/
package syncer
