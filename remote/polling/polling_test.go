// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polling

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rmedina/expovote/models"
	"github.com/rmedina/expovote/remote"
)

func sampleEvals() []models.Evaluation {
	return []models.Evaluation{
		{ID: "a", ProjectID: "lia", UserType: models.UserTypeStudent, Innovation: 5, Design: 4, Functionality: 5, WouldPay: true, Timestamp: 100},
		{ID: "b", ProjectID: "lebab", UserType: models.UserTypeTeacher, Innovation: 3, Design: 3, Functionality: 3, WouldPay: false, Timestamp: 300},
	}
}

func TestFetchAllSortsDescending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(sampleEvals())
	}))
	defer server.Close()

	c := New(server.URL, DefaultInterval)
	evals, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(evals) != 2 || evals[0].ID != "b" || evals[1].ID != "a" {
		t.Errorf("expected timestamp-descending order, got %+v", evals)
	}
}

func TestFetchAllTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL, DefaultInterval)
	_, err := c.FetchAll(context.Background())

	var terr *remote.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.Op != "fetch" {
		t.Errorf("expected op fetch, got %q", terr.Op)
	}
}

func TestAppendIsFireAndForget(t *testing.T) {
	var received models.Evaluation
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("bad POST body: %v", err)
		}
		// A script-level failure must look like success to the caller.
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, DefaultInterval)
	eval := sampleEvals()[0]
	if err := c.Append(context.Background(), eval); err != nil {
		t.Fatalf("Append must ignore non-network failures, got %v", err)
	}
	if received.ID != eval.ID || received.Comment != eval.Comment {
		t.Errorf("posted record mismatch: %+v", received)
	}
}

func TestAppendNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := New(server.URL, DefaultInterval)
	err := c.Append(context.Background(), sampleEvals()[0])

	var terr *remote.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError for a dead endpoint, got %v", err)
	}
}

func TestClearAllReportsPartial(t *testing.T) {
	c := New("http://example.test/exec", DefaultInterval)
	err := c.ClearAll(context.Background())
	if !errors.Is(err, remote.ErrPartialClear) {
		t.Fatalf("expected ErrPartialClear, got %v", err)
	}
}

func TestSubscribePollsAndReportsStatus(t *testing.T) {
	var fetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		json.NewEncoder(w).Encode(sampleEvals())
	}))
	defer server.Close()

	updates := make(chan []models.Evaluation, 16)
	statuses := make(chan models.ConnectivityStatus, 16)

	c := New(server.URL, 20*time.Millisecond)
	unsubscribe, err := c.Subscribe(context.Background(),
		func(evals []models.Evaluation) { updates <- evals },
		func(s models.ConnectivityStatus) { statuses <- s },
	)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// Immediate fetch plus at least one interval fetch.
	select {
	case evals := <-updates:
		if len(evals) != 2 {
			t.Errorf("expected 2 records, got %d", len(evals))
		}
	case <-time.After(time.Second):
		t.Fatal("no immediate update")
	}
	select {
	case s := <-statuses:
		if !s.Connected {
			t.Errorf("expected connected status, got %+v", s)
		}
	case <-time.After(time.Second):
		t.Fatal("no status update")
	}

	deadline := time.After(time.Second)
	for fetches.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("interval fetch never happened")
		case <-time.After(5 * time.Millisecond):
		}
	}

	unsubscribe()
	unsubscribe() // must be safe to call twice

	// No further fetches after unsubscribe. An attempt already in flight
	// when we unsubscribed may still land, so let it drain first.
	time.Sleep(50 * time.Millisecond)
	settled := fetches.Load()
	time.Sleep(100 * time.Millisecond)
	if fetches.Load() != settled {
		t.Error("polling continued after unsubscribe")
	}
}

func TestSubscribeUnconfigured(t *testing.T) {
	statuses := make(chan models.ConnectivityStatus, 1)

	c := New("", DefaultInterval)
	unsubscribe, err := c.Subscribe(context.Background(),
		func([]models.Evaluation) { t.Error("no updates expected") },
		func(s models.ConnectivityStatus) { statuses <- s },
	)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer unsubscribe()

	select {
	case s := <-statuses:
		if s.Connected {
			t.Error("expected disconnected status")
		}
		if s.Error == "" {
			t.Error("expected an error message explaining the missing endpoint")
		}
	default:
		t.Fatal("status must be delivered synchronously on subscribe")
	}
}

func TestSubscribeReportsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	statuses := make(chan models.ConnectivityStatus, 16)
	c := New(server.URL, 20*time.Millisecond)
	unsubscribe, err := c.Subscribe(context.Background(),
		func([]models.Evaluation) { t.Error("no updates expected from a failing endpoint") },
		func(s models.ConnectivityStatus) { statuses <- s },
	)
	if err != nil {
		t.Fatal(err)
	}
	defer unsubscribe()

	select {
	case s := <-statuses:
		if s.Connected || s.Error == "" {
			t.Errorf("expected disconnected status with error, got %+v", s)
		}
	case <-time.After(time.Second):
		t.Fatal("no status update")
	}
}
