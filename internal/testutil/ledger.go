// Package testutil provides test utilities for the money-manager project:
// ledgers backed by an in-memory medium, deterministic ids and clocks, and
// category seeding through the categories builder.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/money-manager/internal/ledger"
	"github.com/Veraticus/money-manager/internal/storage"
	"github.com/Veraticus/money-manager/internal/testutil/categories"
)

// TestLedger is a store persisted to an in-memory medium, plus the seeded categories.
type TestLedger struct {
	Store      *ledger.Store
	KV         *storage.MemoryKV
	State      *storage.StateStore
	t          *testing.T
	Categories categories.Categories
}

// SetupLedger opens an empty ledger over a fresh MemoryKV and seeds the
// categories produced by configure. Ids are sequential and the clock is fixed
// so results are deterministic.
//
// Example:
//
//	l := testutil.SetupLedger(t, func(b categories.Builder) categories.Builder {
//		return b.WithBasicCategories()
//	})
func SetupLedger(t *testing.T, configure func(categories.Builder) categories.Builder, opts ...ledger.Option) *TestLedger {
	t.Helper()

	kv := storage.NewMemoryKV()
	state := storage.NewStateStore(kv)

	base := []ledger.Option{
		ledger.WithIDGenerator(SequentialIDs("id")),
		ledger.WithClock(FixedClock(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC))),
	}
	store := ledger.Open(context.Background(), state, append(base, opts...)...)

	builder := categories.NewBuilder(t)
	if configure != nil {
		builder = configure(builder)
	}
	cats := builder.MustBuild(context.Background(), store)

	t.Cleanup(func() {
		_ = kv.Close()
	})

	return &TestLedger{
		Store:      store,
		KV:         kv,
		State:      state,
		Categories: cats,
		t:          t,
	}
}

// ID returns the id of a seeded category or fails the test.
func (l *TestLedger) ID(name categories.CategoryName) string {
	l.t.Helper()
	return l.Categories.ID(l.t, name)
}

// SequentialIDs returns a generator producing prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// FixedClock returns a clock that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// Date builds a midnight UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
