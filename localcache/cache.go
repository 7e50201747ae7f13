// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package localcache

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/rmedina/expovote/models"
)

// Cache is the durable on-device copy of the evaluation snapshot, backed by
// a sqlite file. It is the source of truth for UI responsiveness: reads and
// writes never touch the network and never suspend.
type Cache struct {
	db *sql.DB

	mu        sync.Mutex
	nextID    int
	observers map[int]func()
}

// Open opens (or creates) the cache at path. Safe to call on a fresh path -
// the schema uses IF NOT EXISTS.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	// One connection: sqlite serializes writers at the medium level, and a
	// single pooled connection keeps :memory: databases coherent in tests.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{db: db, observers: make(map[int]func())}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS evaluation (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    user_type TEXT NOT NULL,
    innovation INTEGER NOT NULL,
    design INTEGER NOT NULL,
    functionality INTEGER NOT NULL,
    would_pay INTEGER NOT NULL,
    comment TEXT NOT NULL DEFAULT '',
    ts INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluation_ts ON evaluation(ts);
`

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Read returns the last durably written snapshot ordered by timestamp
// descending. A corrupt or unreadable store is treated as empty, never as
// a fatal error: the sync layer recovers it from the remote side.
func (c *Cache) Read() []models.Evaluation {
	rows, err := c.db.Query(`
		SELECT id, project_id, user_type, innovation, design, functionality, would_pay, comment, ts
		FROM evaluation
		ORDER BY ts DESC
	`)
	if err != nil {
		slog.Warn("cache read failed, treating as empty", "error", err)
		return []models.Evaluation{}
	}
	defer rows.Close()

	evals := []models.Evaluation{}
	for rows.Next() {
		var e models.Evaluation
		var wouldPay int
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.UserType, &e.Innovation, &e.Design,
			&e.Functionality, &wouldPay, &e.Comment, &e.Timestamp); err != nil {
			slog.Warn("cache row corrupt, treating snapshot as empty", "error", err)
			return []models.Evaluation{}
		}
		e.WouldPay = wouldPay != 0
		evals = append(evals, e)
	}
	if err := rows.Err(); err != nil {
		slog.Warn("cache read failed, treating as empty", "error", err)
		return []models.Evaluation{}
	}
	return evals
}

// Write atomically replaces the durable snapshot with evals. On success all
// observers are notified synchronously before Write returns, so anything
// relying on "latest local state" stays consistent within the same tick.
func (c *Cache) Write(evals []models.Evaluation) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM evaluation`); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	for _, e := range evals {
		wouldPay := 0
		if e.WouldPay {
			wouldPay = 1
		}
		_, err := tx.Exec(`
			INSERT INTO evaluation (id, project_id, user_type, innovation, design, functionality, would_pay, comment, ts)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT(id) DO NOTHING
		`, e.ID, e.ProjectID, e.UserType, e.Innovation, e.Design, e.Functionality, wouldPay, e.Comment, e.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to write evaluation %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	c.notify()
	return nil
}

// Clear removes the durable snapshot and notifies observers.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM evaluation`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	c.notify()
	return nil
}

// Subscribe registers fn to be called synchronously after every successful
// Write or Clear. The returned function removes the observer.
func (c *Cache) Subscribe(fn func()) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

func (c *Cache) notify() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	// Called outside the lock so an observer may re-read or resubscribe.
	for _, fn := range fns {
		fn()
	}
}
