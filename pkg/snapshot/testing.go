package snapshot

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
)

// StoreTestSuite defines a test suite that can be run against any Store
// implementation.
type StoreTestSuite struct {
	NewStore func(t *testing.T) Store
}

// RunAllTests runs all snapshot store tests against the provided
// implementation.
func (s *StoreTestSuite) RunAllTests(t *testing.T) {
	t.Run("PutGet", s.TestPutGet)
	t.Run("Replace", s.TestReplace)
	t.Run("NotFound", s.TestNotFound)
	t.Run("ListDelete", s.TestListDelete)
	t.Run("ConcurrentAccess", s.TestConcurrentAccess)
}

// TestPutGet verifies basic round-tripping of snapshot bytes.
func (s *StoreTestSuite) TestPutGet(t *testing.T) {
	store := s.NewStore(t)
	defer store.Close()
	ctx := context.Background()

	data := []byte{0x44, 0x4e, 0x49, 0x4d, 0, 1, 2, 3, 4, 5}
	if err := store.Put(ctx, "st-1", data); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "st-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get = %v, want %v", got, data)
	}
}

// TestReplace verifies that Put overwrites an earlier snapshot.
func (s *StoreTestSuite) TestReplace(t *testing.T) {
	store := s.NewStore(t)
	defer store.Close()
	ctx := context.Background()

	store.Put(ctx, "st-1", []byte{1, 1, 1})
	if err := store.Put(ctx, "st-1", []byte{2, 2}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "st-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, []byte{2, 2}) {
		t.Errorf("Get after replace = %v, want [2 2]", got)
	}
}

// TestNotFound verifies the typed error on missing snapshots.
func (s *StoreTestSuite) TestNotFound(t *testing.T) {
	store := s.NewStore(t)
	defer store.Close()

	_, err := store.Get(context.Background(), "missing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Get missing = %v, want NotFoundError", err)
	}
}

// TestListDelete verifies listing and idempotent deletion.
func (s *StoreTestSuite) TestListDelete(t *testing.T) {
	store := s.NewStore(t)
	defer store.Close()
	ctx := context.Background()

	store.Put(ctx, "a", []byte{1})
	store.Put(ctx, "b", []byte{2})
	store.Put(ctx, "c", []byte{3})

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	sort.Strings(ids)
	if len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Errorf("List = %v, want [a b c]", ids)
	}

	if err := store.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "b"); err != nil {
		t.Fatalf("repeat Delete failed: %v", err)
	}

	ids, _ = store.List(ctx)
	if len(ids) != 2 {
		t.Errorf("List after delete = %v, want 2 entries", ids)
	}
}

// TestConcurrentAccess verifies that independent state IDs can be
// written and read concurrently.
func (s *StoreTestSuite) TestConcurrentAccess(t *testing.T) {
	store := s.NewStore(t)
	defer store.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n byte) {
			defer wg.Done()
			id := string(rune('a' + n))
			if err := store.Put(ctx, id, []byte{n}); err != nil {
				t.Errorf("Put %s failed: %v", id, err)
				return
			}
			got, err := store.Get(ctx, id)
			if err != nil {
				t.Errorf("Get %s failed: %v", id, err)
				return
			}
			if len(got) != 1 || got[0] != n {
				t.Errorf("Get %s = %v, want [%d]", id, got, n)
			}
		}(byte(i))
	}
	wg.Wait()
}
