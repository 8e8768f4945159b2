// Package memory provides an in-memory implementation of the snapshot
// store, used in tests and for ephemeral deployments.
package memory

import (
	"context"
	"sync"

	"github.com/mindcore/mindcore/pkg/snapshot"
)

// MemoryStore implements snapshot.Store using an in-memory map.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]byte)}
}

// Put stores snapshot bytes under the given state ID.
func (m *MemoryStore) Put(ctx context.Context, stateID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to avoid aliasing the caller's buffer.
	copied := make([]byte, len(data))
	copy(copied, data)
	m.snapshots[stateID] = copied
	return nil
}

// Get returns the snapshot bytes for the given state ID.
func (m *MemoryStore) Get(ctx context.Context, stateID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.snapshots[stateID]
	if !ok {
		return nil, &snapshot.NotFoundError{StateID: stateID}
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

// List returns the IDs of all stored snapshots.
func (m *MemoryStore) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.snapshots))
	for id := range m.snapshots {
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete removes the snapshot for the given state ID.
func (m *MemoryStore) Delete(ctx context.Context, stateID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, stateID)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
