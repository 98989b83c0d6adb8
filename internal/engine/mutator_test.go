// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okCall(context.Context) error { return nil }

func loadedEngine(t *testing.T, n int) (*Engine[item], *staticFetcher) {
	t.Helper()
	f := &staticFetcher{}
	f.set(makeItems(n), nil)
	e := newTestEngine(t, f, 10)
	require.NoError(t, e.Refresh(context.Background()))
	return e, f
}

// ── Mutate ───────────────────────────────────────────────────────────────────

func TestMutate_SuccessPatchesInPlace(t *testing.T) {
	e, f := loadedEngine(t, 23)
	calls := f.calls.Load()

	require.NoError(t, e.Mutate(context.Background(), "tok-07", okCall, ban))

	v := e.View()
	assert.True(t, v.Items[6].banned, "entry 7 is on page 1")
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, calls, f.calls.Load(), "no fetch needed")
}

func TestMutate_FailureLeavesCollectionUnchanged(t *testing.T) {
	e, _ := loadedEngine(t, 5)
	before := e.All()
	errNotFound := errors.New("token not found")

	err := e.Mutate(context.Background(), "tok-01", func(context.Context) error { return errNotFound }, ban)

	require.ErrorIs(t, err, errNotFound)
	assert.Equal(t, before, e.All())
	assert.Equal(t, "token not found", e.View().ErrMessage())
}

func TestMutate_Idempotent(t *testing.T) {
	e, _ := loadedEngine(t, 3)
	ctx := context.Background()

	require.NoError(t, e.Mutate(ctx, "tok-02", okCall, ban))
	once := e.All()
	require.NoError(t, e.Mutate(ctx, "tok-02", okCall, ban))

	assert.Equal(t, once, e.All())
}

func TestMutate_SuccessClearsError(t *testing.T) {
	e, _ := loadedEngine(t, 3)
	ctx := context.Background()

	_ = e.Mutate(ctx, "tok-01", func(context.Context) error { return errBoom }, ban)
	require.Error(t, e.View().Err)

	require.NoError(t, e.Mutate(ctx, "tok-01", okCall, ban))
	assert.NoError(t, e.View().Err)
}

func TestMutate_AbortedIsSilent(t *testing.T) {
	e, _ := loadedEngine(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Mutate(ctx, "tok-01", func(ctx context.Context) error { return ctx.Err() }, ban)

	assert.ErrorIs(t, err, ErrAborted)
	assert.NoError(t, e.View().Err)
	assert.False(t, mustGet(t, e, "tok-01").banned)
}

func TestMutate_SurvivesOlderPoll(t *testing.T) {
	f := newGatedFetcher()
	e := newTestEngine(t, f, 10)
	ctx := context.Background()

	initial := runAsync(func() error { return e.Refresh(ctx) })
	f.release(f.waitIssued(t), []item{{id: "x"}, {id: "y"}}, nil)
	require.NoError(t, waitErr(t, initial))

	poll := runAsync(func() error { return e.RefreshBackground(ctx) })
	iPoll := f.waitIssued(t)

	require.NoError(t, e.Mutate(ctx, "x", okCall, ban))

	// the poll was issued before the ban and still reports x as active
	f.release(iPoll, []item{{id: "x", hits: 9}, {id: "y", hits: 4}}, nil)
	require.NoError(t, waitErr(t, poll))

	x := mustGet(t, e, "x")
	assert.True(t, x.banned)
	assert.Equal(t, 9, x.hits, "server fields are still taken from the poll")

	// a poll issued after the ban is authoritative again
	next := runAsync(func() error { return e.RefreshBackground(ctx) })
	f.release(f.waitIssued(t), []item{{id: "x"}, {id: "y"}}, nil)
	require.NoError(t, waitErr(t, next))
	assert.False(t, mustGet(t, e, "x").banned)
}

// ── MutateBatch ──────────────────────────────────────────────────────────────

func TestMutateBatch_PatchesSucceededInOneCommit(t *testing.T) {
	e, _ := loadedEngine(t, 5)
	// drain the notification from the initial load
	select {
	case <-e.Changes():
	default:
	}

	errDenied := errors.New("denied")
	err := e.MutateBatch(context.Background(), []string{"tok-01", "tok-02", "tok-03"},
		func(_ context.Context, id string) error {
			if id == "tok-02" {
				return errDenied
			}
			return nil
		}, ban)

	require.ErrorIs(t, err, errDenied)
	assert.True(t, mustGet(t, e, "tok-01").banned)
	assert.False(t, mustGet(t, e, "tok-02").banned)
	assert.True(t, mustGet(t, e, "tok-03").banned)
	assert.Contains(t, e.View().ErrMessage(), "tok-02")

	<-e.Changes()
	select {
	case <-e.Changes():
		t.Fatal("batch must produce a single notification")
	default:
	}
}

func TestMutateBatch_AllSucceed(t *testing.T) {
	e, _ := loadedEngine(t, 3)

	require.NoError(t, e.MutateBatch(context.Background(), []string{"tok-01", "tok-03"},
		func(context.Context, string) error { return nil }, ban))

	assert.True(t, mustGet(t, e, "tok-01").banned)
	assert.True(t, mustGet(t, e, "tok-03").banned)
	assert.NoError(t, e.View().Err)
}

// ── MutateAndRefresh ─────────────────────────────────────────────────────────

func TestMutateAndRefresh_FetchesInsteadOfPatching(t *testing.T) {
	e, f := loadedEngine(t, 3)
	calls := f.calls.Load()
	f.set(makeItems(4), nil)

	require.NoError(t, e.MutateAndRefresh(context.Background(), okCall))

	assert.Equal(t, calls+1, f.calls.Load())
	assert.Len(t, e.All(), 4)
	assert.False(t, e.View().Loading)
}

func TestMutateAndRefresh_FailureSkipsRefresh(t *testing.T) {
	e, f := loadedEngine(t, 3)
	calls := f.calls.Load()

	err := e.MutateAndRefresh(context.Background(), func(context.Context) error { return errBoom })

	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, calls, f.calls.Load())
	assert.Equal(t, errBoom, e.View().Err)
}

// ── MutateReplace ────────────────────────────────────────────────────────────

func TestMutateReplace_DiscardsOlderFetch(t *testing.T) {
	f := newGatedFetcher()
	e := newTestEngine(t, f, 10)
	ctx := context.Background()

	poll := runAsync(func() error { return e.RefreshBackground(ctx) })
	iPoll := f.waitIssued(t)

	var called atomic.Bool
	require.NoError(t, e.MutateReplace(ctx, func(context.Context) error {
		called.Store(true)
		return nil
	}, []item{{id: "US"}, {id: "DE"}}))
	assert.True(t, called.Load())

	f.release(iPoll, []item{{id: "FR"}}, nil)
	require.NoError(t, waitErr(t, poll))

	assert.Equal(t, []string{"US", "DE"}, ids(e.All()))
}

func TestMutate_AfterStop(t *testing.T) {
	e, _ := loadedEngine(t, 1)
	e.Stop()

	assert.ErrorIs(t, e.Mutate(context.Background(), "tok-01", okCall, ban), ErrStopped)
}
