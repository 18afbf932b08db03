package testutil

import (
	"context"
	"testing"

	"github.com/preston-bernstein/cricket-sim-service/internal/store"
)

// NewSeededStore returns an in-memory store holding SampleDataset.
func NewSeededStore(tb testing.TB) *store.MemoryStore {
	tb.Helper()
	ms := store.NewMemoryStore()
	if err := ms.Import(context.Background(), SampleDataset()); err != nil {
		tb.Fatalf("seed store: %v", err)
	}
	return ms
}
