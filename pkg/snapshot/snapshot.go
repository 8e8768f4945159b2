// Package snapshot provides persistent storage for encoded mind state
// snapshots. Backends store opaque codec bytes keyed by state ID; the
// wire format itself belongs to the mind package.
package snapshot

import (
	"context"
	"fmt"
)

// Store is the interface snapshot backends implement.
type Store interface {
	// Put stores snapshot bytes under the given state ID, replacing any
	// previous snapshot.
	Put(ctx context.Context, stateID string, data []byte) error

	// Get returns the snapshot bytes for the given state ID.
	Get(ctx context.Context, stateID string) ([]byte, error)

	// List returns the IDs of all stored snapshots.
	List(ctx context.Context) ([]string, error)

	// Delete removes the snapshot for the given state ID. Deleting a
	// missing snapshot is not an error.
	Delete(ctx context.Context, stateID string) error

	// Close releases backend resources.
	Close() error
}

// NotFoundError indicates that no snapshot exists for the requested ID.
type NotFoundError struct {
	StateID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("snapshot not found: %s", e.StateID)
}

// UnavailableError indicates that the storage backend is unavailable.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("snapshot store unavailable: %v", e.Cause)
}

func (e *UnavailableError) Unwrap() error { return e.Cause }
