// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/rmedina/expovote/models"
)

// Connector is the capability contract shared by the two remote backend
// strategies. The sync coordinator and submission pipeline depend only on
// this interface; the concrete backend is selected at process start.
type Connector interface {
	// Name identifies the backend ("polling" or "push") for logs and
	// diagnostics.
	Name() string

	// FetchAll reads the full authoritative remote set, sorted by
	// timestamp descending.
	FetchAll(ctx context.Context) ([]models.Evaluation, error)

	// Subscribe begins delivering updates until the returned function is
	// called. Every delivered snapshot is the full current set, sorted by
	// timestamp descending. Status callbacks report connectivity changes
	// on the same goroutine as the update that produced them.
	Subscribe(ctx context.Context, onUpdate func([]models.Evaluation), onStatus func(models.ConnectivityStatus)) (func(), error)

	// Append durably adds one record remotely.
	Append(ctx context.Context, eval models.Evaluation) error

	// ClearAll removes every remote record. Backends that cannot delete
	// through their transport return an error wrapping ErrPartialClear.
	ClearAll(ctx context.Context) error
}

// ErrPartialClear marks a clear operation that did not (or could not) remove
// every remote record. Callers must surface this distinctly; silently
// reporting "cleared" would corrupt the admin's mental model of the store.
var ErrPartialClear = errors.New("remote records were not fully cleared")

// TransportError is a remote fetch/append/delete failure. It is surfaced as
// a connectivity change and never blocks the local read/write path.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
