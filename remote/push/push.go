// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package push

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/rmedina/expovote/metrics"
	"github.com/rmedina/expovote/models"
	"github.com/rmedina/expovote/remote"
)

// notifyChannel carries change notifications from the insert/delete trigger.
const notifyChannel = "evaluation_change"

// ErrNotConfigured reports an absent database URL. The connector still
// constructs and subscribes; it just stays permanently disconnected while
// local operation continues.
var ErrNotConfigured = errors.New("no database URL configured")

// Connector stores evaluations in a Postgres collection keyed by id and
// receives change notifications through LISTEN/NOTIFY, so subscribers get
// pushed the full current set instead of polling for it.
type Connector struct {
	conninfo string

	mu    sync.Mutex
	db    *sql.DB
	ready bool
}

// New creates a connector for databaseURL. No connection is attempted here:
// an unreachable or absent store degrades the connector to disconnected at
// use time instead of failing the process at startup.
func New(databaseURL string) *Connector {
	return &Connector{conninfo: databaseURL}
}

// ensure opens the connection and creates the schema on first use. Retried
// on every call until it succeeds, so a store that comes up late is picked
// up without a restart.
func (c *Connector) ensure() (*sql.DB, error) {
	if c.conninfo == "" {
		return nil, ErrNotConfigured
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return c.db, nil
	}

	if c.db == nil {
		db, err := sql.Open("postgres", c.conninfo)
		if err != nil {
			return nil, fmt.Errorf("failed to open remote store: %w", err)
		}
		c.db = db
	}
	if err := c.db.Ping(); err != nil {
		return nil, fmt.Errorf("remote store unreachable: %w", err)
	}
	if err := createSchema(c.db); err != nil {
		return nil, err
	}

	c.ready = true
	return c.db, nil
}

// createSchema creates the collection and its change trigger.
// Safe to call multiple times.
func createSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create remote schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS evaluation (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    user_type TEXT NOT NULL,
    innovation INTEGER NOT NULL CHECK (innovation BETWEEN 1 AND 5),
    design INTEGER NOT NULL CHECK (design BETWEEN 1 AND 5),
    functionality INTEGER NOT NULL CHECK (functionality BETWEEN 1 AND 5),
    would_pay BOOLEAN NOT NULL,
    comment TEXT NOT NULL DEFAULT '',
    ts BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluation_ts ON evaluation(ts DESC);

CREATE OR REPLACE FUNCTION notify_evaluation_change() RETURNS trigger AS $$
BEGIN
    PERFORM pg_notify('evaluation_change', '');
    RETURN NULL;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS evaluation_change ON evaluation;
CREATE TRIGGER evaluation_change
AFTER INSERT OR UPDATE OR DELETE ON evaluation
FOR EACH STATEMENT EXECUTE FUNCTION notify_evaluation_change();
`

func (c *Connector) Name() string { return "push" }

// Close releases the database handle if one was ever opened. Active
// subscriptions hold their own listener connection and are torn down by
// their unsubscribe function.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// FetchAll reads the authoritative set, ordered by timestamp descending.
func (c *Connector) FetchAll(ctx context.Context) ([]models.Evaluation, error) {
	db, err := c.ensure()
	if err != nil {
		metrics.RemoteFetches.WithLabelValues(c.Name(), metrics.ResultError).Inc()
		return nil, &remote.TransportError{Op: "fetch", Err: err}
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, project_id, user_type, innovation, design, functionality, would_pay, comment, ts
		FROM evaluation
		ORDER BY ts DESC
	`)
	if err != nil {
		metrics.RemoteFetches.WithLabelValues(c.Name(), metrics.ResultError).Inc()
		return nil, &remote.TransportError{Op: "fetch", Err: err}
	}
	defer rows.Close()

	evals := []models.Evaluation{}
	for rows.Next() {
		var e models.Evaluation
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.UserType, &e.Innovation, &e.Design,
			&e.Functionality, &e.WouldPay, &e.Comment, &e.Timestamp); err != nil {
			metrics.RemoteFetches.WithLabelValues(c.Name(), metrics.ResultError).Inc()
			return nil, &remote.TransportError{Op: "fetch", Err: err}
		}
		evals = append(evals, e)
	}
	if err := rows.Err(); err != nil {
		metrics.RemoteFetches.WithLabelValues(c.Name(), metrics.ResultError).Inc()
		return nil, &remote.TransportError{Op: "fetch", Err: err}
	}

	metrics.RemoteFetches.WithLabelValues(c.Name(), metrics.ResultOK).Inc()
	return evals, nil
}

// Append inserts one record. Unlike the polling transport this surfaces the
// real outcome, including constraint violations.
func (c *Connector) Append(ctx context.Context, eval models.Evaluation) error {
	db, err := c.ensure()
	if err != nil {
		metrics.RemoteAppends.WithLabelValues(c.Name(), metrics.ResultError).Inc()
		return &remote.TransportError{Op: "append", Err: err}
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO evaluation (id, project_id, user_type, innovation, design, functionality, would_pay, comment, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, eval.ID, eval.ProjectID, eval.UserType, eval.Innovation, eval.Design,
		eval.Functionality, eval.WouldPay, eval.Comment, eval.Timestamp)
	if err != nil {
		metrics.RemoteAppends.WithLabelValues(c.Name(), metrics.ResultError).Inc()
		return &remote.TransportError{Op: "append", Err: err}
	}
	metrics.RemoteAppends.WithLabelValues(c.Name(), metrics.ResultOK).Inc()
	return nil
}

// ClearAll deletes every remote record in one transaction, so the caller
// sees either a fully cleared collection or an error with no partial state
// left behind.
func (c *Connector) ClearAll(ctx context.Context) error {
	db, err := c.ensure()
	if err != nil {
		return &remote.TransportError{Op: "clear", Err: err}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &remote.TransportError{Op: "clear", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM evaluation`); err != nil {
		return &remote.TransportError{Op: "clear", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &remote.TransportError{Op: "clear", Err: err}
	}
	return nil
}

// Subscribe opens a standing LISTEN connection. The current set is pushed
// once connected, then again after every change batch: one notification
// produces exactly one onUpdate call with the full ordered set. Listener
// connect/reconnect events double as connectivity status; an unreachable
// store keeps retrying in the background and never fails the subscription.
// Cancelling ctx tears the listener down the same as unsubscribing.
func (c *Connector) Subscribe(ctx context.Context, onUpdate func([]models.Evaluation), onStatus func(models.ConnectivityStatus)) (func(), error) {
	if c.conninfo == "" {
		metrics.SetConnected(false)
		onStatus(models.ConnectivityStatus{Connected: false, Error: ErrNotConfigured.Error()})
		return func() {}, nil
	}

	// A (re)connect nudges the delivery loop so subscribers get the current
	// set as soon as the store is reachable, not only after the next change.
	reconnects := make(chan struct{}, 1)
	listener := pq.NewListener(c.conninfo, 2*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnected, pq.ListenerEventReconnected:
			metrics.SetConnected(true)
			onStatus(models.ConnectivityStatus{Connected: true})
			select {
			case reconnects <- struct{}{}:
			default:
			}
		case pq.ListenerEventDisconnected, pq.ListenerEventConnectionAttemptFailed:
			msg := "lost connection to the remote store"
			if err != nil {
				msg = err.Error()
			}
			metrics.SetConnected(false)
			onStatus(models.ConnectivityStatus{Connected: false, Error: msg})
		}
	})

	stop := make(chan struct{})
	var once sync.Once
	teardown := func() {
		once.Do(func() {
			close(stop)
			if err := listener.Close(); err != nil {
				slog.Warn("failed to close listener", "error", err)
			}
		})
	}

	// Context cancellation must release the listener connection even while
	// Listen is still blocked waiting for an unreachable store.
	go func() {
		select {
		case <-ctx.Done():
			teardown()
		case <-stop:
		}
	}()

	deliver := func() {
		evals, err := c.FetchAll(ctx)
		if err != nil {
			slog.Warn("push snapshot fetch failed", "error", err)
			metrics.SetConnected(false)
			onStatus(models.ConnectivityStatus{Connected: false, Error: "error reading the remote store"})
			return
		}
		onUpdate(evals)
	}

	go func() {
		// Blocks until the store is reachable or the listener is closed.
		if err := listener.Listen(notifyChannel); err != nil {
			select {
			case <-stop: // torn down while waiting, nothing to report
			default:
				slog.Warn("push listen failed", "error", err)
				metrics.SetConnected(false)
				onStatus(models.ConnectivityStatus{Connected: false, Error: err.Error()})
			}
			return
		}
		deliver()

		for {
			select {
			case <-listener.Notify:
				// Drain whatever piled up while we were fetching so a
				// burst of changes becomes a single snapshot delivery.
				for {
					select {
					case <-listener.Notify:
						continue
					default:
					}
					break
				}
				deliver()
			case <-reconnects:
				deliver()
			case <-stop:
				return
			}
		}
	}()

	return teardown, nil
}
