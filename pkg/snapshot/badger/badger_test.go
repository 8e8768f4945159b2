package badger

import (
	"context"
	"testing"

	"github.com/mindcore/mindcore/pkg/snapshot"
)

// TestBadgerStoreSuite runs the full snapshot store suite against
// BadgerStore.
func TestBadgerStoreSuite(t *testing.T) {
	suite := &snapshot.StoreTestSuite{
		NewStore: func(t *testing.T) snapshot.Store {
			store, err := NewBadgerStore(&Config{
				Path:             t.TempDir(),
				SyncWrites:       false, // faster for tests
				ValueLogFileSize: 1 << 20,
			})
			if err != nil {
				t.Fatalf("failed to create BadgerStore: %v", err)
			}
			return store
		},
	}
	suite.RunAllTests(t)
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewBadgerStore(&Config{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, "st-1", []byte{9, 9, 9}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewBadgerStore(&Config{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "st-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 9 {
		t.Errorf("got %v after reopen, want [9 9 9]", got)
	}
}
