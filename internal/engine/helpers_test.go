package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// item is a minimal collection entry used across engine tests.
type item struct {
	id     string
	hits   int
	banned bool
}

func (i item) EntryID() string { return i.id }

func ban(i item) item {
	i.banned = true
	return i
}

func makeItems(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{id: fmt.Sprintf("tok-%02d", i+1), hits: i}
	}
	return out
}

type fetchResult struct {
	items []item
	err   error
}

// gatedFetcher blocks every Fetch until the test releases it by index.
type gatedFetcher struct {
	mu     sync.Mutex
	gates  []chan fetchResult
	issued chan int
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{issued: make(chan int, 32)}
}

func (f *gatedFetcher) Fetch(ctx context.Context) ([]item, error) {
	g := make(chan fetchResult, 1)
	f.mu.Lock()
	f.gates = append(f.gates, g)
	idx := len(f.gates) - 1
	f.mu.Unlock()

	f.issued <- idx

	select {
	case r := <-g:
		return r.items, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *gatedFetcher) release(idx int, items []item, err error) {
	f.mu.Lock()
	g := f.gates[idx]
	f.mu.Unlock()
	g <- fetchResult{items: items, err: err}
}

func (f *gatedFetcher) waitIssued(t *testing.T) int {
	t.Helper()
	select {
	case idx := <-f.issued:
		return idx
	case <-time.After(time.Second):
		t.Fatal("fetch was not issued")
		return -1
	}
}

// staticFetcher returns whatever is currently configured.
type staticFetcher struct {
	mu    sync.Mutex
	items []item
	err   error
	calls atomic.Int64
}

func (f *staticFetcher) set(items []item, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items, f.err = items, err
}

func (f *staticFetcher) Fetch(context.Context) ([]item, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]item, len(f.items))
	copy(out, f.items)
	return out, nil
}

// runAsync starts fn in a goroutine and returns a channel with its error.
func runAsync(fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	return done
}

func waitErr(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(time.Second):
		t.Fatal("operation did not finish")
		return nil
	}
}

func newTestEngine(t *testing.T, f Fetcher[item], pageSize int) *Engine[item] {
	t.Helper()
	e := New[item](f, Options[item]{Name: "test", PageSize: pageSize})
	t.Cleanup(e.Stop)
	return e
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func mustGet(t *testing.T, e *Engine[item], id string) item {
	t.Helper()
	it, ok := e.Get(id)
	require.True(t, ok, "entry %s not found", id)
	return it
}
