// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rmedina/expovote/localcache"
	"github.com/rmedina/expovote/models"
	"github.com/rmedina/expovote/remote"
)

// Syncer bridges the local cache and the active remote connector into one
// logical subscription. Subscribers get the cached snapshot immediately,
// remote snapshots as they arrive (written back to the cache, remote wins),
// and local-only writes the moment they land in the cache.
type Syncer struct {
	cache     *localcache.Cache
	connector remote.Connector

	mu     sync.Mutex
	status models.ConnectivityStatus
}

// New creates a Syncer over cache and connector.
func New(cache *localcache.Cache, connector remote.Connector) *Syncer {
	return &Syncer{
		cache:     cache,
		connector: connector,
		status:    models.ConnectivityStatus{Connected: false},
	}
}

// Status returns the most recent connectivity status.
func (s *Syncer) Status() models.ConnectivityStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Syncer) setStatus(status models.ConnectivityStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// Subscribe delivers updates to onUpdate until the returned function is
// called. The first call happens synchronously with the current cache
// snapshot, so a first paint never waits on the network. Identical
// consecutive snapshots may be delivered more than once (a remote update is
// also observed as the cache write it causes); callers must tolerate that.
func (s *Syncer) Subscribe(ctx context.Context, onUpdate func(models.Update)) func() {
	onUpdate(models.NewDataUpdate(s.cache.Read()))

	// Local-only writes (optimistic commits, clears) become updates too.
	unsubLocal := s.cache.Subscribe(func() {
		onUpdate(models.NewDataUpdate(s.cache.Read()))
	})

	// Once a remote snapshot arrives it is authoritative: the last
	// successful fetch wins and overwrites local optimistic state.
	unsubRemote, err := s.connector.Subscribe(ctx,
		func(evals []models.Evaluation) {
			if werr := s.cache.Write(evals); werr != nil {
				slog.Warn("failed to persist remote snapshot", "error", werr)
			}
			onUpdate(models.NewDataUpdate(evals))
		},
		func(status models.ConnectivityStatus) {
			s.setStatus(status)
			onUpdate(models.NewStatusUpdate(status))
		},
	)
	if err != nil {
		// Remote trouble never blocks the local path: record it and keep
		// serving the cache.
		slog.Warn("remote subscription failed", "backend", s.connector.Name(), "error", err)
		status := models.ConnectivityStatus{Connected: false, Error: err.Error()}
		s.setStatus(status)
		onUpdate(models.NewStatusUpdate(status))
		unsubRemote = func() {}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubRemote()
			unsubLocal()
		})
	}
}

// Evaluations returns the current merged view: the local cache snapshot,
// which remote updates continuously overwrite.
func (s *Syncer) Evaluations() []models.Evaluation {
	return s.cache.Read()
}

// ExportAll renders all known evaluations as a JSON array. The polling
// backend exports the local cache (its remote rows mirror it at best); the
// push backend reads the authoritative remote set.
func (s *Syncer) ExportAll(ctx context.Context) ([]byte, error) {
	evals := s.cache.Read()
	if s.connector.Name() == "push" {
		remoteEvals, err := s.connector.FetchAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read remote set for export: %w", err)
		}
		evals = remoteEvals
	}
	return json.MarshalIndent(evals, "", "  ")
}

// Clear wipes the local cache and best-effort clears the remote store. A
// remote clear that is partial or unsupported comes back as an error
// wrapping remote.ErrPartialClear; the local wipe still happened.
func (s *Syncer) Clear(ctx context.Context) error {
	if err := s.cache.Clear(); err != nil {
		return fmt.Errorf("failed to clear local cache: %w", err)
	}
	if err := s.connector.ClearAll(ctx); err != nil {
		return err
	}
	return nil
}
