// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rmedina/expovote/cliparse"
	"github.com/rmedina/expovote/localcache"
	"github.com/rmedina/expovote/models"
)

// OpenTestCache creates a throwaway sqlite cache in a temp directory.
func OpenTestCache(t *testing.T) *localcache.Cache {
	t.Helper()

	c, err := localcache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Failed to open test cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4620,
		Backend:      cliparse.BackendPolling,
		CachePath:    ":memory:",
		AdminPIN:     "4621",
		PollInterval: 5,
	}
}

// Evaluation builds a valid record for project id with the given timestamp.
func Evaluation(id string, ts int64) models.Evaluation {
	return models.Evaluation{
		ID:            id,
		ProjectID:     "lia",
		UserType:      models.UserTypeStudent,
		Innovation:    5,
		Design:        4,
		Functionality: 5,
		WouldPay:      true,
		Comment:       "",
		Timestamp:     ts,
	}
}

// Draft builds a valid submission draft for project id.
func Draft(projectID string) models.EvaluationDraft {
	wouldPay := true
	return models.EvaluationDraft{
		ProjectID:     projectID,
		UserType:      models.UserTypeStudent,
		Innovation:    5,
		Design:        4,
		Functionality: 5,
		WouldPay:      &wouldPay,
	}
}

// FakeConnector is a scriptable in-memory remote.Connector. Tests set the
// error/delay knobs and drive subscriptions through PushUpdate/PushStatus.
type FakeConnector struct {
	// Knobs, set before use.
	Backend     string        // Name() result, default "fake"
	FetchErr    error         // returned by FetchAll
	AppendErr   error         // returned by Append
	AppendDelay time.Duration // how long Append blocks before returning
	AppendHang  bool          // Append blocks forever (simulates a stuck remote)
	ClearErr    error         // returned by ClearAll

	mu        sync.Mutex
	evals     []models.Evaluation
	appended  []models.Evaluation
	onUpdate  func([]models.Evaluation)
	onStatus  func(models.ConnectivityStatus)
	unsubbed  int
	hangUntil chan struct{}
}

func NewFakeConnector() *FakeConnector {
	return &FakeConnector{Backend: "fake", hangUntil: make(chan struct{})}
}

func (f *FakeConnector) Name() string {
	if f.Backend == "" {
		return "fake"
	}
	return f.Backend
}

// SetRemote seeds the authoritative remote set.
func (f *FakeConnector) SetRemote(evals []models.Evaluation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evals = append([]models.Evaluation(nil), evals...)
}

// Appended returns every record passed to Append so far.
func (f *FakeConnector) Appended() []models.Evaluation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Evaluation(nil), f.appended...)
}

// Unsubscribed reports how many times a subscription was torn down.
func (f *FakeConnector) Unsubscribed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsubbed
}

func (f *FakeConnector) FetchAll(ctx context.Context) ([]models.Evaluation, error) {
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]models.Evaluation(nil), f.evals...)
	models.SortEvaluations(out)
	return out, nil
}

func (f *FakeConnector) Subscribe(ctx context.Context, onUpdate func([]models.Evaluation), onStatus func(models.ConnectivityStatus)) (func(), error) {
	f.mu.Lock()
	f.onUpdate = onUpdate
	f.onStatus = onStatus
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		f.unsubbed++
		f.mu.Unlock()
	}, nil
}

// PushUpdate delivers a remote snapshot to the active subscription.
func (f *FakeConnector) PushUpdate(evals []models.Evaluation) {
	f.mu.Lock()
	f.evals = append([]models.Evaluation(nil), evals...)
	onUpdate := f.onUpdate
	f.mu.Unlock()

	if onUpdate != nil {
		sorted := append([]models.Evaluation(nil), evals...)
		models.SortEvaluations(sorted)
		onUpdate(sorted)
	}
}

// PushStatus delivers a connectivity change to the active subscription.
func (f *FakeConnector) PushStatus(status models.ConnectivityStatus) {
	f.mu.Lock()
	onStatus := f.onStatus
	f.mu.Unlock()

	if onStatus != nil {
		onStatus(status)
	}
}

func (f *FakeConnector) Append(ctx context.Context, eval models.Evaluation) error {
	f.mu.Lock()
	f.appended = append(f.appended, eval)
	f.mu.Unlock()

	if f.AppendHang {
		<-f.hangUntil // never closed: the remote is stuck for good
	}
	if f.AppendDelay > 0 {
		time.Sleep(f.AppendDelay)
	}
	if f.AppendErr != nil {
		return f.AppendErr
	}

	f.mu.Lock()
	f.evals = append(f.evals, eval)
	f.mu.Unlock()
	return nil
}

func (f *FakeConnector) ClearAll(ctx context.Context) error {
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.mu.Lock()
	f.evals = nil
	f.mu.Unlock()
	return nil
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
