package engine

import (
	"context"
	"errors"
)

var (
	// ErrStopped is returned by operations on an engine after Stop.
	ErrStopped = errors.New("engine stopped")
	// ErrAborted is returned by mutations whose context was cancelled before
	// the remote call completed. It is never recorded as the engine error.
	ErrAborted = errors.New("operation aborted")
)

// isAborted reports whether err (or ctx) represents a cancellation.
func isAborted(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.Canceled) {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, ErrAborted)
}
