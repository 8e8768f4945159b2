package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/mindcore/mindcore/pkg/snapshot"
)

// TestMemoryStoreSuite runs the shared snapshot store suite against
// MemoryStore.
func TestMemoryStoreSuite(t *testing.T) {
	suite := &snapshot.StoreTestSuite{
		NewStore: func(t *testing.T) snapshot.Store {
			return NewMemoryStore()
		},
	}
	suite.RunAllTests(t)
}

func TestPutGetRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte{0x44, 0x4e, 0x49, 0x4d, 1, 2, 3}
	if err := store.Put(ctx, "st-1", data); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "st-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(data) {
		t.Errorf("got %v, want %v", got, data)
	}

	// Returned buffers are copies, not aliases.
	got[0] = 0xFF
	again, _ := store.Get(ctx, "st-1")
	if again[0] != 0x44 {
		t.Error("Get returned an aliased buffer")
	}
}

func TestGetMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), "nope")

	var notFound *snapshot.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if notFound.StateID != "nope" {
		t.Errorf("error ID = %q", notFound.StateID)
	}
}

func TestListAndDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put(ctx, "a", []byte{1})
	store.Put(ctx, "b", []byte{2})

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Errorf("list = %v, want 2 entries", ids)
	}

	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	// Deleting a missing snapshot is not an error.
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	ids, _ = store.List(ctx)
	if len(ids) != 1 || ids[0] != "b" {
		t.Errorf("list after delete = %v, want [b]", ids)
	}
}

func TestPutReplaces(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put(ctx, "a", []byte{1})
	store.Put(ctx, "a", []byte{2, 3})

	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != 2 {
		t.Errorf("got %v, want [2 3]", got)
	}
}
