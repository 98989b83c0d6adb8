// Package workers runs the background pollers of the console as one group.
//
// Each synchronized collection polls on its own goroutine; Workers starts
// them together and stops them in reverse order on exit.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start must not block: implementations spawn their own goroutines and
// keep running until Stop is called or ctx is cancelled. Stop must be safe
// to call more than once.
//
//	type ticker struct{ cancel context.CancelFunc }
//
//	func (t *ticker) Start(ctx context.Context) {
//	    ctx, t.cancel = context.WithCancel(ctx)
//	    go loop(ctx)
//	}
//
//	func (t *ticker) Stop() { t.cancel() }
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
