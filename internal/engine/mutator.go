// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"errors"
	"fmt"
)

// Mutate runs call and, when it succeeds, patches the entry with the given
// id in place. On failure the collection is untouched and the error becomes
// the engine error. A cancelled call returns [ErrAborted] and changes
// nothing.
//
// The patch survives any fetch that was issued before the mutation
// committed, even if that fetch resolves later.
func (e *Engine[T]) Mutate(ctx context.Context, id string, call func(ctx context.Context) error, apply func(T) T) error {
	if err := e.checkRunning(); err != nil {
		return err
	}

	err := call(ctx)
	if isAborted(ctx, err) {
		e.rec.MutationObserved(e.name, OutcomeAborted)
		return abortedError(ctx)
	}
	if err != nil {
		e.failMutation(err)
		return err
	}

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return ErrStopped
	}
	e.patchLocked([]string{id}, apply)
	e.mu.Unlock()

	e.rec.MutationObserved(e.name, OutcomeSuccess)
	e.notify()
	return nil
}

// MutateBatch runs call for each id in order and patches every id whose call
// succeeded in a single commit. Failures are joined and recorded as the
// engine error. Cancellation stops the batch; ids that already succeeded are
// still patched and [ErrAborted] is returned.
func (e *Engine[T]) MutateBatch(ctx context.Context, ids []string, call func(ctx context.Context, id string) error, apply func(T) T) error {
	if err := e.checkRunning(); err != nil {
		return err
	}

	succeeded := make([]string, 0, len(ids))
	var errs []error
	aborted := false

	for _, id := range ids {
		err := call(ctx, id)
		if isAborted(ctx, err) {
			aborted = true
			break
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		succeeded = append(succeeded, id)
	}

	joined := errors.Join(errs...)

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return ErrStopped
	}
	if len(succeeded) > 0 {
		e.patchLocked(succeeded, apply)
	}
	if joined != nil {
		e.err = joined
	}
	e.mu.Unlock()
	e.notify()

	switch {
	case aborted:
		e.rec.MutationObserved(e.name, OutcomeAborted)
		return ErrAborted
	case joined != nil:
		e.rec.MutationObserved(e.name, OutcomeError)
		return joined
	default:
		e.rec.MutationObserved(e.name, OutcomeSuccess)
		return nil
	}
}

// MutateAndRefresh runs call and, when it succeeds, follows up with a
// background fetch instead of patching locally. It is used for actions whose
// effect on the collection cannot be predicted by the client.
func (e *Engine[T]) MutateAndRefresh(ctx context.Context, call func(ctx context.Context) error) error {
	if err := e.checkRunning(); err != nil {
		return err
	}

	err := call(ctx)
	if isAborted(ctx, err) {
		e.rec.MutationObserved(e.name, OutcomeAborted)
		return abortedError(ctx)
	}
	if err != nil {
		e.failMutation(err)
		return err
	}

	e.mu.Lock()
	e.err = nil
	e.mu.Unlock()
	e.rec.MutationObserved(e.name, OutcomeSuccess)

	if err = e.RefreshBackground(ctx); err != nil {
		e.log.Debug().Err(err).Msg("refresh after mutation failed")
	}
	return nil
}

// MutateReplace runs call and, when it succeeds, replaces the whole
// collection with items. Fetches issued before the replacement are
// discarded when they resolve.
func (e *Engine[T]) MutateReplace(ctx context.Context, call func(ctx context.Context) error, items []T) error {
	if err := e.checkRunning(); err != nil {
		return err
	}

	err := call(ctx)
	if isAborted(ctx, err) {
		e.rec.MutationObserved(e.name, OutcomeAborted)
		return abortedError(ctx)
	}
	if err != nil {
		e.failMutation(err)
		return err
	}

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return ErrStopped
	}
	e.clock++
	e.committed = e.clock
	next := make([]T, len(items))
	copy(next, items)
	e.items = next
	e.patches = make(map[string]patch[T])
	e.err = nil
	e.lastUpdated = e.opts.Now()
	e.clampLocked()
	e.mu.Unlock()

	e.rec.MutationObserved(e.name, OutcomeSuccess)
	e.rec.EntriesObserved(e.name, len(next))
	e.notify()
	return nil
}

func (e *Engine[T]) patchLocked(ids []string, apply func(T) T) {
	e.clock++
	stamp := e.clock
	for _, id := range ids {
		e.patches[id] = patch[T]{stamp: stamp, apply: composePatch(e.patches[id], stamp, apply)}
		applyPatch(e.items, id, apply)
	}
	e.err = nil
}

// composePatch chains a new patch after a pending one for the same entry, so
// both survive an older fetch.
func composePatch[T Entry](prev patch[T], stamp uint64, apply func(T) T) func(T) T {
	if prev.apply == nil || prev.stamp >= stamp {
		return apply
	}
	first := prev.apply
	return func(v T) T { return apply(first(v)) }
}

func (e *Engine[T]) failMutation(err error) {
	e.mu.Lock()
	if !e.stopped {
		e.err = err
	}
	e.mu.Unlock()
	e.rec.MutationObserved(e.name, OutcomeError)
	e.log.Warn().Err(err).Msg("mutation failed")
	e.notify()
}

func abortedError(ctx context.Context) error {
	if cause := context.Cause(ctx); cause != nil {
		return fmt.Errorf("%w: %w", ErrAborted, cause)
	}
	return ErrAborted
}

func (e *Engine[T]) checkRunning() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	return nil
}
