// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("HTTP error 503")

// ── pagination ───────────────────────────────────────────────────────────────

func TestEngine_PageClampedWhenCollectionShrinks(t *testing.T) {
	f := &staticFetcher{}
	e := newTestEngine(t, f, 10)
	ctx := context.Background()

	f.set(makeItems(25), nil)
	require.NoError(t, e.Refresh(ctx))
	assert.Equal(t, 3, e.SetPage(3))

	f.set(makeItems(12), nil)
	require.NoError(t, e.Refresh(ctx))
	v := e.View()
	assert.Equal(t, 2, v.Page.Page)
	assert.Equal(t, 2, v.TotalPages)
	assert.Len(t, v.Items, 2)

	f.set(nil, nil)
	require.NoError(t, e.Refresh(ctx))
	v = e.View()
	assert.Equal(t, 1, v.Page.Page)
	assert.Equal(t, 1, v.TotalPages)
	assert.Empty(t, v.Items)
}

func TestEngine_SetPageClamps(t *testing.T) {
	f := &staticFetcher{}
	f.set(makeItems(23), nil)
	e := newTestEngine(t, f, 10)
	require.NoError(t, e.Refresh(context.Background()))

	assert.Equal(t, 3, e.SetPage(7))
	assert.Equal(t, 1, e.SetPage(0))
}

// ── flags ────────────────────────────────────────────────────────────────────

func TestEngine_LoadingOnlyForForeground(t *testing.T) {
	f := newGatedFetcher()
	e := newTestEngine(t, f, 10)
	ctx := context.Background()

	fg := runAsync(func() error { return e.Refresh(ctx) })
	i := f.waitIssued(t)
	v := e.View()
	assert.True(t, v.Loading)
	assert.False(t, v.Refreshing)
	f.release(i, makeItems(1), nil)
	require.NoError(t, waitErr(t, fg))
	assert.False(t, e.View().Loading)

	bg := runAsync(func() error { return e.RefreshBackground(ctx) })
	i = f.waitIssued(t)
	v = e.View()
	assert.False(t, v.Loading)
	assert.True(t, v.Refreshing)
	f.release(i, makeItems(2), nil)
	require.NoError(t, waitErr(t, bg))
	assert.False(t, e.View().Refreshing)
	assert.Len(t, e.All(), 2)
}

// ── race resolution ──────────────────────────────────────────────────────────

func TestEngine_LatestIssuedWins_OlderResolvesLast(t *testing.T) {
	f := newGatedFetcher()
	e := newTestEngine(t, f, 10)
	ctx := context.Background()

	older := runAsync(func() error { return e.RefreshBackground(ctx) })
	iOld := f.waitIssued(t)
	newer := runAsync(func() error { return e.Refresh(ctx) })
	iNew := f.waitIssued(t)

	f.release(iNew, []item{{id: "b"}}, nil)
	require.NoError(t, waitErr(t, newer))
	f.release(iOld, []item{{id: "a"}}, nil)
	require.NoError(t, waitErr(t, older))

	assert.Equal(t, []string{"b"}, ids(e.All()))
}

func TestEngine_LatestIssuedWins_OlderResolvesFirst(t *testing.T) {
	f := newGatedFetcher()
	e := newTestEngine(t, f, 10)
	ctx := context.Background()

	older := runAsync(func() error { return e.RefreshBackground(ctx) })
	iOld := f.waitIssued(t)
	newer := runAsync(func() error { return e.RefreshBackground(ctx) })
	iNew := f.waitIssued(t)

	f.release(iOld, []item{{id: "a"}}, nil)
	require.NoError(t, waitErr(t, older))
	f.release(iNew, []item{{id: "b"}}, nil)
	require.NoError(t, waitErr(t, newer))

	assert.Equal(t, []string{"b"}, ids(e.All()))
}

func TestEngine_StaleFailureDoesNotOverrideNewerSuccess(t *testing.T) {
	f := newGatedFetcher()
	e := newTestEngine(t, f, 10)
	ctx := context.Background()

	older := runAsync(func() error { return e.RefreshBackground(ctx) })
	iOld := f.waitIssued(t)
	newer := runAsync(func() error { return e.RefreshBackground(ctx) })
	iNew := f.waitIssued(t)

	f.release(iNew, []item{{id: "b"}}, nil)
	require.NoError(t, waitErr(t, newer))
	f.release(iOld, nil, errBoom)
	assert.ErrorIs(t, waitErr(t, older), errBoom)

	v := e.View()
	assert.NoError(t, v.Err)
	assert.Equal(t, []string{"b"}, ids(v.Items))
}

func TestEngine_RefreshCancelsPreviousForeground(t *testing.T) {
	f := newGatedFetcher()
	e := newTestEngine(t, f, 10)
	ctx := context.Background()

	first := runAsync(func() error { return e.Refresh(ctx) })
	f.waitIssued(t)
	second := runAsync(func() error { return e.Refresh(ctx) })
	iSecond := f.waitIssued(t)

	// aborted fetches are silent
	require.NoError(t, waitErr(t, first))
	assert.True(t, e.View().Loading, "loading belongs to the newest foreground fetch")

	f.release(iSecond, makeItems(3), nil)
	require.NoError(t, waitErr(t, second))

	v := e.View()
	assert.False(t, v.Loading)
	assert.NoError(t, v.Err)
	assert.Len(t, v.Items, 3)
}

func TestEngine_BackgroundDoesNotCancelForeground(t *testing.T) {
	f := newGatedFetcher()
	e := newTestEngine(t, f, 10)
	ctx := context.Background()

	fg := runAsync(func() error { return e.Refresh(ctx) })
	iFg := f.waitIssued(t)
	bg := runAsync(func() error { return e.RefreshBackground(ctx) })
	iBg := f.waitIssued(t)

	f.release(iFg, []item{{id: "fg"}}, nil)
	require.NoError(t, waitErr(t, fg))
	f.release(iBg, []item{{id: "bg"}}, nil)
	require.NoError(t, waitErr(t, bg))

	assert.Equal(t, []string{"bg"}, ids(e.All()))
}

// ── errors ───────────────────────────────────────────────────────────────────

func TestEngine_FailureKeepsStaleData(t *testing.T) {
	f := &staticFetcher{}
	e := newTestEngine(t, f, 10)
	ctx := context.Background()

	f.set(makeItems(4), nil)
	require.NoError(t, e.Refresh(ctx))
	updated := e.View().LastUpdated

	f.set(nil, errBoom)
	assert.ErrorIs(t, e.RefreshBackground(ctx), errBoom)
	assert.ErrorIs(t, e.Refresh(ctx), errBoom)

	v := e.View()
	assert.Len(t, v.Items, 4)
	assert.Equal(t, "HTTP error 503", v.ErrMessage())
	assert.True(t, v.Stale())
	assert.Equal(t, 2, v.ConsecutiveFailures)
	assert.Equal(t, updated, v.LastUpdated)

	f.set(makeItems(5), nil)
	require.NoError(t, e.RefreshBackground(ctx))
	v = e.View()
	assert.NoError(t, v.Err)
	assert.False(t, v.Stale())
	assert.Len(t, v.Items, 5)
}

func TestEngine_ClearOnForegroundError(t *testing.T) {
	f := &staticFetcher{}
	e := New[item](f, Options[item]{Name: "clear", PageSize: 10, ClearOnForegroundError: true})
	t.Cleanup(e.Stop)
	ctx := context.Background()

	f.set(makeItems(4), nil)
	require.NoError(t, e.Refresh(ctx))

	f.set(nil, errBoom)
	require.Error(t, e.RefreshBackground(ctx))
	assert.Len(t, e.All(), 4, "background failures never clear")

	require.Error(t, e.Refresh(ctx))
	assert.Empty(t, e.All())
	assert.Error(t, e.View().Err)
}

func TestEngine_ClearError(t *testing.T) {
	f := &staticFetcher{}
	f.set(nil, errBoom)
	e := newTestEngine(t, f, 10)

	require.Error(t, e.Refresh(context.Background()))
	e.ClearError()
	assert.NoError(t, e.View().Err)
}

func TestEngine_NormalizeApplied(t *testing.T) {
	f := &staticFetcher{}
	f.set([]item{{id: "a", hits: 1}, {id: "b", hits: 3}, {id: "c", hits: 2}}, nil)
	e := New[item](f, Options[item]{
		Name: "sorted",
		Normalize: func(items []item) []item {
			out := append([]item(nil), items...)
			for i := 1; i < len(out); i++ {
				for j := i; j > 0 && out[j].hits > out[j-1].hits; j-- {
					out[j], out[j-1] = out[j-1], out[j]
				}
			}
			return out
		},
	})
	t.Cleanup(e.Stop)

	require.NoError(t, e.Refresh(context.Background()))
	assert.Equal(t, []string{"b", "c", "a"}, ids(e.All()))
}

// ── lifecycle ────────────────────────────────────────────────────────────────

func TestEngine_StopDiscardsInFlight(t *testing.T) {
	f := newGatedFetcher()
	e := New[item](f, Options[item]{Name: "stop"})
	ctx := context.Background()

	pending := runAsync(func() error { return e.RefreshBackground(ctx) })
	f.waitIssued(t)

	e.Stop()
	require.NoError(t, waitErr(t, pending))

	assert.Empty(t, e.All())
	assert.False(t, e.View().Refreshing)
	assert.ErrorIs(t, e.Refresh(ctx), ErrStopped)
	assert.NotPanics(t, e.Stop)
}

func TestEngine_StartPerformsInitialFetchAndPolls(t *testing.T) {
	f := &staticFetcher{}
	f.set(makeItems(2), nil)
	e := newTestEngine(t, f, 10)

	e.StartPolling(context.Background(), 10*time.Millisecond)

	assert.Eventually(t, func() bool { return f.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	assert.Len(t, e.All(), 2)

	e.Stop()
	calls := f.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, f.calls.Load(), "no fetches after Stop")
}

func TestEngine_ConcurrentStartPollingKeepsOneLoop(t *testing.T) {
	f := &staticFetcher{}
	f.set(makeItems(3), nil)
	e := newTestEngine(t, f, 10)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.StartPolling(context.Background(), time.Millisecond)
		}()
	}
	wg.Wait()

	stopped := runAsync(func() error {
		e.Stop()
		return nil
	})
	require.NoError(t, waitErr(t, stopped))

	calls := f.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, f.calls.Load(), "every replaced loop ended")
}

func TestEngine_ZeroIntervalFetchesOnce(t *testing.T) {
	f := &staticFetcher{}
	e := New[item](f, Options[item]{Name: "once", Interval: 0})

	e.Start(context.Background())
	assert.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	e.Stop()

	assert.Equal(t, int64(1), f.calls.Load())
}

func TestEngine_PauseSkipsTicks(t *testing.T) {
	f := &staticFetcher{}
	e := newTestEngine(t, f, 10)

	e.Pause()
	e.StartPolling(context.Background(), 5*time.Millisecond)
	assert.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(1), f.calls.Load(), "only the initial fetch runs while paused")
	assert.True(t, e.View().Paused)

	e.Resume()
	assert.Eventually(t, func() bool { return f.calls.Load() > 1 }, time.Second, time.Millisecond)
}

func TestEngine_ChangesNotified(t *testing.T) {
	f := &staticFetcher{}
	e := newTestEngine(t, f, 10)

	require.NoError(t, e.Refresh(context.Background()))

	select {
	case <-e.Changes():
	default:
		t.Fatal("expected a change notification")
	}
}

func TestEngine_Status(t *testing.T) {
	f := &staticFetcher{}
	f.set(makeItems(11), nil)
	e := newTestEngine(t, f, 10)
	require.NoError(t, e.Refresh(context.Background()))

	var m Monitor = e
	s := m.Status()
	assert.Equal(t, "test", s.Name)
	assert.Equal(t, 11, s.Total)
	assert.Equal(t, 2, s.TotalPages)
	assert.NotNil(t, s.LastUpdated)
	assert.Empty(t, s.Error)
}
