// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rmedina/expovote/metrics"
	"github.com/rmedina/expovote/models"
	"github.com/rmedina/expovote/remote"
)

// DefaultInterval is the re-fetch period of an active subscription.
const DefaultInterval = 5 * time.Second

// ErrNotConfigured reports an absent endpoint URL. The connector still
// constructs and subscribes; it just stays permanently disconnected.
var ErrNotConfigured = errors.New("no endpoint URL configured")

// Connector reads and writes evaluations through a spreadsheet-script HTTP
// endpoint: GET returns the full JSON array, POST appends one record.
type Connector struct {
	url      string
	interval time.Duration
	client   *http.Client
}

// New creates a polling connector for url. An empty url is allowed and
// yields a permanently disconnected connector. interval <= 0 falls back to
// DefaultInterval.
func New(url string, interval time.Duration) *Connector {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Connector{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Connector) Name() string { return "polling" }

// FetchAll performs one GET round trip and returns the decoded set sorted
// by timestamp descending.
func (c *Connector) FetchAll(ctx context.Context) ([]models.Evaluation, error) {
	if c.url == "" {
		return nil, &remote.TransportError{Op: "fetch", Err: ErrNotConfigured}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &remote.TransportError{Op: "fetch", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RemoteFetches.WithLabelValues(c.Name(), metrics.ResultError).Inc()
		return nil, &remote.TransportError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RemoteFetches.WithLabelValues(c.Name(), metrics.ResultError).Inc()
		return nil, &remote.TransportError{Op: "fetch", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var evals []models.Evaluation
	if err := json.NewDecoder(resp.Body).Decode(&evals); err != nil {
		metrics.RemoteFetches.WithLabelValues(c.Name(), metrics.ResultError).Inc()
		return nil, &remote.TransportError{Op: "fetch", Err: err}
	}

	models.SortEvaluations(evals)
	metrics.RemoteFetches.WithLabelValues(c.Name(), metrics.ResultOK).Inc()
	return evals, nil
}

// Append posts one serialized evaluation to the endpoint, fire-and-forget:
// the response is drained and ignored, so a failure at the remote script is
// indistinguishable from success. Only network-level errors are reported.
func (c *Connector) Append(ctx context.Context, eval models.Evaluation) error {
	if c.url == "" {
		return &remote.TransportError{Op: "append", Err: ErrNotConfigured}
	}

	body, err := json.Marshal(eval)
	if err != nil {
		return &remote.TransportError{Op: "append", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return &remote.TransportError{Op: "append", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RemoteAppends.WithLabelValues(c.Name(), metrics.ResultError).Inc()
		return &remote.TransportError{Op: "append", Err: err}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	metrics.RemoteAppends.WithLabelValues(c.Name(), metrics.ResultOK).Inc()
	return nil
}

// ClearAll cannot delete rows through this transport. The local side may
// proceed, but the admin has to remove the remote rows by hand, so the
// partial result is reported, never swallowed.
func (c *Connector) ClearAll(ctx context.Context) error {
	return fmt.Errorf("the spreadsheet endpoint cannot delete rows, remove them manually: %w", remote.ErrPartialClear)
}

// Subscribe fetches immediately, then re-fetches on a fixed interval until
// the returned function is called. Every attempt, success or failure,
// produces a status callback. A tick that fires while the previous fetch is
// still in flight is skipped, not overlapped: the loop is sequential and
// time.Ticker drops ticks it cannot deliver.
func (c *Connector) Subscribe(ctx context.Context, onUpdate func([]models.Evaluation), onStatus func(models.ConnectivityStatus)) (func(), error) {
	if c.url == "" {
		metrics.SetConnected(false)
		onStatus(models.ConnectivityStatus{Connected: false, Error: ErrNotConfigured.Error()})
		return func() {}, nil
	}

	stop := make(chan struct{})
	var once sync.Once

	attempt := func() {
		evals, err := c.FetchAll(ctx)
		if err != nil {
			slog.Warn("remote fetch failed", "backend", c.Name(), "error", err)
			metrics.SetConnected(false)
			onStatus(models.ConnectivityStatus{Connected: false, Error: "error reaching the sheet endpoint"})
			return
		}
		metrics.SetConnected(true)
		onUpdate(evals)
		onStatus(models.ConnectivityStatus{Connected: true})
	}

	go func() {
		attempt()

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				attempt()
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}, nil
}
