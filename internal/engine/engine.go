// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/token-guard/internal/logger"
)

// Entry is an element of a synchronized collection. EntryID must be unique
// within the collection.
type Entry interface {
	EntryID() string
}

// Fetcher loads the authoritative collection from the remote API.
type Fetcher[T Entry] interface {
	Fetch(ctx context.Context) ([]T, error)
}

// FetcherFunc adapts a function to [Fetcher].
type FetcherFunc[T Entry] func(ctx context.Context) ([]T, error)

// Fetch calls f(ctx).
func (f FetcherFunc[T]) Fetch(ctx context.Context) ([]T, error) {
	return f(ctx)
}

// Options configure an [Engine].
type Options[T Entry] struct {
	// Name identifies the engine in logs, metrics and status output.
	Name string
	// PageSize is the number of entries per page. Zero shows everything.
	PageSize int
	// Interval between background fetches. Zero or negative disables polling;
	// Start then performs the initial fetch only.
	Interval time.Duration
	// ClearOnForegroundError empties the collection when a foreground fetch
	// fails. By default stale data is kept.
	ClearOnForegroundError bool
	// Normalize is applied to every fetched collection before it is
	// committed (for example to sort it).
	Normalize func([]T) []T
	Recorder  Recorder
	Logger    *logger.Logger
	// Now is used for LastUpdated. Defaults to time.Now.
	Now func() time.Time
}

type patch[T Entry] struct {
	stamp uint64
	apply func(T) T
}

// Engine keeps one remote collection synchronized: it polls the fetcher,
// serves paginated views and applies optimistic mutations.
//
// Every fetch and every mutation takes a number from a single logical clock.
// A fetch result is committed only when its number is greater than the last
// committed one, so the latest-issued fetch always wins. Optimistic patches
// are remembered with their stamp and re-applied on top of any fetch that
// was issued before them.
type Engine[T Entry] struct {
	name    string
	fetcher Fetcher[T]
	opts    Options[T]
	log     *logger.Logger
	rec     Recorder

	mu          sync.Mutex
	items       []T
	page        int
	err         error
	loading     bool
	refreshing  int
	paused      bool
	stopped     bool
	lastUpdated time.Time
	failures    int

	clock     uint64
	committed uint64
	fgSeq     uint64
	fgCancel  context.CancelFunc
	inflight  map[uint64]context.CancelFunc
	patches   map[string]patch[T]

	// loopMu serializes starting and stopping the poll loop.
	loopMu     sync.Mutex
	pollCancel context.CancelFunc
	wg         sync.WaitGroup

	changes chan struct{}
}

// New constructs an idle engine. Call Start to begin polling.
func New[T Entry](fetcher Fetcher[T], opts Options[T]) *Engine[T] {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Recorder == nil {
		opts.Recorder = NopRecorder{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	log := opts.Logger.GetChildLogger()
	log.Logger = log.With().Str("engine", opts.Name).Logger()

	return &Engine[T]{
		name:     opts.Name,
		fetcher:  fetcher,
		opts:     opts,
		log:      log,
		rec:      opts.Recorder,
		page:     1,
		inflight: make(map[uint64]context.CancelFunc),
		patches:  make(map[string]patch[T]),
		changes:  make(chan struct{}, 1),
	}
}

// Name returns the engine name.
func (e *Engine[T]) Name() string {
	return e.name
}

// Changes returns a channel that receives a value after every state change.
// Notifications are coalesced: a slow reader sees at most one pending value.
func (e *Engine[T]) Changes() <-chan struct{} {
	return e.changes
}

func (e *Engine[T]) notify() {
	select {
	case e.changes <- struct{}{}:
	default:
	}
}

// Start begins polling with the configured interval.
func (e *Engine[T]) Start(ctx context.Context) {
	e.StartPolling(ctx, e.opts.Interval)
}

// StartPolling performs one immediate foreground fetch and then a background
// fetch on every tick of interval. A running poll loop is replaced. The loop
// ends when ctx is cancelled or Stop is called.
func (e *Engine[T]) StartPolling(ctx context.Context, interval time.Duration) {
	e.loopMu.Lock()
	defer e.loopMu.Unlock()

	e.stopPolling()

	e.mu.Lock()
	e.stopped = false
	pollCtx, cancel := context.WithCancel(ctx)
	e.pollCancel = cancel
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()

		if err := e.Refresh(pollCtx); err != nil {
			e.log.Debug().Err(err).Msg("initial fetch failed")
		}
		if interval <= 0 {
			return
		}

		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-t.C:
				if e.Paused() {
					continue
				}
				_ = e.RefreshBackground(pollCtx)
			}
		}
	}()
}

// stopPolling must be called with loopMu held.
func (e *Engine[T]) stopPolling() {
	e.mu.Lock()
	cancel := e.pollCancel
	e.pollCancel = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.wg.Wait()
}

// Stop ends polling, cancels every outstanding fetch and waits for the poll
// loop to exit. Results that arrive afterwards are discarded. Safe to call
// more than once.
func (e *Engine[T]) Stop() {
	e.mu.Lock()
	e.stopped = true
	for _, cancel := range e.inflight {
		cancel()
	}
	e.loading = false
	e.fgCancel = nil
	e.mu.Unlock()

	e.loopMu.Lock()
	e.stopPolling()
	e.loopMu.Unlock()
	e.notify()
}

// Pause makes background ticks skip until Resume. Manual refreshes still run.
func (e *Engine[T]) Pause() {
	e.setPaused(true)
}

// Resume re-enables background ticks.
func (e *Engine[T]) Resume() {
	e.setPaused(false)
}

func (e *Engine[T]) setPaused(paused bool) {
	e.mu.Lock()
	e.paused = paused
	e.mu.Unlock()
	e.notify()
}

// Paused reports whether background ticks are paused.
func (e *Engine[T]) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Refresh runs a foreground fetch, cancelling the previous outstanding
// foreground fetch. A cancelled fetch returns nil.
func (e *Engine[T]) Refresh(ctx context.Context) error {
	return e.fetch(ctx, true)
}

// RefreshBackground runs a background fetch. It does not set Loading and
// does not cancel other fetches.
func (e *Engine[T]) RefreshBackground(ctx context.Context) error {
	return e.fetch(ctx, false)
}

func (e *Engine[T]) fetch(parent context.Context, foreground bool) error {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return ErrStopped
	}

	ctx, cancel := context.WithCancel(parent)
	e.clock++
	seq := e.clock
	if foreground {
		if e.fgCancel != nil {
			e.fgCancel()
		}
		e.fgCancel = cancel
		e.fgSeq = seq
		e.loading = true
	} else {
		e.refreshing++
	}
	e.inflight[seq] = cancel
	e.mu.Unlock()
	e.notify()

	started := time.Now()
	items, err := e.fetcher.Fetch(ctx)
	aborted := isAborted(ctx, err)
	cancel()

	outcome := e.commitFetch(seq, foreground, items, err, aborted)
	e.rec.FetchObserved(e.name, foreground, outcome, time.Since(started))
	e.notify()

	if aborted {
		return nil
	}
	return err
}

func (e *Engine[T]) commitFetch(seq uint64, foreground bool, items []T, err error, aborted bool) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.inflight, seq)
	if foreground {
		if e.fgSeq == seq {
			e.loading = false
			e.fgCancel = nil
		}
	} else {
		e.refreshing--
	}

	switch {
	case aborted:
		return OutcomeAborted
	case e.stopped || seq <= e.committed:
		e.log.Debug().Uint64("seq", seq).Uint64("committed", e.committed).Msg("discarding stale fetch result")
		return OutcomeStale
	}

	e.committed = seq

	if err != nil {
		e.err = err
		e.failures++
		if foreground && e.opts.ClearOnForegroundError {
			e.items = nil
			e.patches = make(map[string]patch[T])
			e.clampLocked()
		}
		e.log.Warn().Err(err).Bool("foreground", foreground).Int("failures", e.failures).Msg("fetch failed")
		return OutcomeError
	}

	if e.opts.Normalize != nil {
		items = e.opts.Normalize(items)
	}
	next := make([]T, len(items))
	copy(next, items)

	for id, p := range e.patches {
		if p.stamp <= seq {
			delete(e.patches, id)
			continue
		}
		applyPatch(next, id, p.apply)
	}

	e.items = next
	e.err = nil
	e.failures = 0
	e.lastUpdated = e.opts.Now()
	e.clampLocked()
	e.rec.EntriesObserved(e.name, len(next))

	return OutcomeSuccess
}

func applyPatch[T Entry](items []T, id string, apply func(T) T) bool {
	for i := range items {
		if items[i].EntryID() == id {
			items[i] = apply(items[i])
			return true
		}
	}
	return false
}

func (e *Engine[T]) clampLocked() {
	e.page = ClampPage(e.page, TotalPages(len(e.items), e.opts.PageSize))
}

// SetPage selects the current page and returns it after clamping.
func (e *Engine[T]) SetPage(page int) int {
	e.mu.Lock()
	e.page = ClampPage(page, TotalPages(len(e.items), e.opts.PageSize))
	page = e.page
	e.mu.Unlock()
	e.notify()
	return page
}

// ClearError dismisses the current error without touching the collection.
func (e *Engine[T]) ClearError() {
	e.mu.Lock()
	e.err = nil
	e.mu.Unlock()
	e.notify()
}

// Get returns the entry with the given id.
func (e *Engine[T]) Get(id string) (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, item := range e.items {
		if item.EntryID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// All returns a copy of the whole collection.
func (e *Engine[T]) All() []T {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]T, len(e.items))
	copy(out, e.items)
	return out
}

// View returns the current page and the synchronization flags.
func (e *Engine[T]) View() View[T] {
	e.mu.Lock()
	defer e.mu.Unlock()

	return View[T]{
		Page:                Project(e.items, e.page, e.opts.PageSize),
		Loading:             e.loading,
		Refreshing:          e.refreshing > 0,
		Err:                 e.err,
		LastUpdated:         e.lastUpdated,
		ConsecutiveFailures: e.failures,
		Paused:              e.paused,
	}
}

// Status summarizes the engine without its entries.
func (e *Engine[T]) Status() Status {
	v := e.View()

	s := Status{
		Name:                e.name,
		Total:               v.Total,
		Page:                v.Page.Page,
		TotalPages:          v.TotalPages,
		Loading:             v.Loading,
		Refreshing:          v.Refreshing,
		Paused:              v.Paused,
		ConsecutiveFailures: v.ConsecutiveFailures,
	}
	if v.Err != nil {
		s.Error = v.Err.Error()
	}
	if !v.LastUpdated.IsZero() {
		t := v.LastUpdated
		s.LastUpdated = &t
	}
	return s
}
