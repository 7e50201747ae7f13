// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rmedina/expovote/models"
	"github.com/rmedina/expovote/remote"
	"github.com/rmedina/expovote/testutil"
)

type recorder struct {
	mu      sync.Mutex
	updates []models.Update
}

func (r *recorder) record(u models.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func (r *recorder) all() []models.Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Update(nil), r.updates...)
}

func (r *recorder) dataUpdates() [][]models.Evaluation {
	var out [][]models.Evaluation
	for _, u := range r.all() {
		if u.Kind == models.DataUpdate {
			out = append(out, u.Data)
		}
	}
	return out
}

func TestSubscribeEmitsCacheSnapshotSynchronously(t *testing.T) {
	cache := testutil.OpenTestCache(t)
	if err := cache.Write([]models.Evaluation{testutil.Evaluation("seeded", 1)}); err != nil {
		t.Fatal(err)
	}

	s := New(cache, testutil.NewFakeConnector())
	rec := &recorder{}

	unsubscribe := s.Subscribe(context.Background(), rec.record)
	defer unsubscribe()

	// The first update must already be there, before anything async runs.
	data := rec.dataUpdates()
	if len(data) == 0 {
		t.Fatal("expected a synchronous data update on subscribe")
	}
	if len(data[0]) != 1 || data[0][0].ID != "seeded" {
		t.Errorf("first update should be the cache snapshot, got %+v", data[0])
	}
}

func TestRemoteUpdateOverwritesCache(t *testing.T) {
	cache := testutil.OpenTestCache(t)
	if err := cache.Write([]models.Evaluation{testutil.Evaluation("optimistic", 999)}); err != nil {
		t.Fatal(err)
	}

	connector := testutil.NewFakeConnector()
	s := New(cache, connector)
	rec := &recorder{}

	unsubscribe := s.Subscribe(context.Background(), rec.record)
	defer unsubscribe()

	remoteSet := []models.Evaluation{
		testutil.Evaluation("r1", 100),
		testutil.Evaluation("r2", 200),
	}
	connector.PushUpdate(remoteSet)

	// Remote is authoritative once received: last fetch wins.
	got := cache.Read()
	if len(got) != 2 || got[0].ID != "r2" || got[1].ID != "r1" {
		t.Errorf("cache should hold the remote set, got %+v", got)
	}

	// The remote set was also emitted to the subscriber.
	data := rec.dataUpdates()
	last := data[len(data)-1]
	if len(last) != 2 {
		t.Errorf("expected the remote snapshot to be emitted, got %+v", last)
	}
}

func TestLocalWriteTriggersUpdate(t *testing.T) {
	cache := testutil.OpenTestCache(t)
	s := New(cache, testutil.NewFakeConnector())
	rec := &recorder{}

	unsubscribe := s.Subscribe(context.Background(), rec.record)
	defer unsubscribe()

	before := len(rec.dataUpdates())
	if err := cache.Write([]models.Evaluation{testutil.Evaluation("local", 5)}); err != nil {
		t.Fatal(err)
	}

	data := rec.dataUpdates()
	if len(data) != before+1 {
		t.Fatalf("expected one more data update after a local write, got %d -> %d", before, len(data))
	}
	if last := data[len(data)-1]; len(last) != 1 || last[0].ID != "local" {
		t.Errorf("unexpected local update payload: %+v", last)
	}
}

func TestStatusForwarded(t *testing.T) {
	cache := testutil.OpenTestCache(t)
	connector := testutil.NewFakeConnector()
	s := New(cache, connector)
	rec := &recorder{}

	unsubscribe := s.Subscribe(context.Background(), rec.record)
	defer unsubscribe()

	if s.Status().Connected {
		t.Error("expected disconnected before any remote activity")
	}

	connector.PushStatus(models.ConnectivityStatus{Connected: true})
	if !s.Status().Connected {
		t.Error("Status() should reflect the latest connector status")
	}

	var sawStatus bool
	for _, u := range rec.all() {
		if u.Kind == models.StatusUpdate && u.Status.Connected {
			sawStatus = true
		}
	}
	if !sawStatus {
		t.Error("status change was not emitted on the update channel")
	}
}

func TestUnsubscribeTearsDownBoth(t *testing.T) {
	cache := testutil.OpenTestCache(t)
	connector := testutil.NewFakeConnector()
	s := New(cache, connector)
	rec := &recorder{}

	unsubscribe := s.Subscribe(context.Background(), rec.record)
	unsubscribe()
	unsubscribe() // composite unsubscribe must be idempotent

	if connector.Unsubscribed() != 1 {
		t.Errorf("expected exactly one remote teardown, got %d", connector.Unsubscribed())
	}

	before := len(rec.all())
	if err := cache.Write([]models.Evaluation{testutil.Evaluation("late", 1)}); err != nil {
		t.Fatal(err)
	}
	if len(rec.all()) != before {
		t.Error("cache observer leaked after unsubscribe")
	}
}

func TestExportAllPollingUsesCache(t *testing.T) {
	cache := testutil.OpenTestCache(t)
	if err := cache.Write([]models.Evaluation{testutil.Evaluation("local", 7)}); err != nil {
		t.Fatal(err)
	}

	connector := testutil.NewFakeConnector()
	connector.Backend = "polling"
	connector.FetchErr = errors.New("must not be called")

	s := New(cache, connector)
	out, err := s.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	var evals []models.Evaluation
	if err := json.Unmarshal(out, &evals); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(evals) != 1 || evals[0].ID != "local" {
		t.Errorf("unexpected export content: %+v", evals)
	}
}

func TestExportAllPushReadsRemote(t *testing.T) {
	cache := testutil.OpenTestCache(t)
	connector := testutil.NewFakeConnector()
	connector.Backend = "push"
	connector.SetRemote([]models.Evaluation{testutil.Evaluation("remote", 9)})

	s := New(cache, connector)
	out, err := s.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	var evals []models.Evaluation
	if err := json.Unmarshal(out, &evals); err != nil {
		t.Fatal(err)
	}
	if len(evals) != 1 || evals[0].ID != "remote" {
		t.Errorf("push export should read the remote set, got %+v", evals)
	}
}

func TestClearSurfacesPartialRemoteClear(t *testing.T) {
	cache := testutil.OpenTestCache(t)
	if err := cache.Write([]models.Evaluation{testutil.Evaluation("a", 1)}); err != nil {
		t.Fatal(err)
	}

	connector := testutil.NewFakeConnector()
	connector.ClearErr = fmt.Errorf("sheet rows must be removed manually: %w", remote.ErrPartialClear)

	s := New(cache, connector)
	err := s.Clear(context.Background())
	if !errors.Is(err, remote.ErrPartialClear) {
		t.Fatalf("expected ErrPartialClear to surface, got %v", err)
	}

	// The local wipe still happened.
	if got := cache.Read(); len(got) != 0 {
		t.Errorf("local cache should be empty despite the remote failure, got %d records", len(got))
	}
}

func TestClearFullSuccess(t *testing.T) {
	cache := testutil.OpenTestCache(t)
	connector := testutil.NewFakeConnector()
	connector.SetRemote([]models.Evaluation{testutil.Evaluation("r", 1)})

	s := New(cache, connector)
	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got, _ := connector.FetchAll(context.Background()); len(got) != 0 {
		t.Error("remote set should be empty after Clear")
	}
}
