package engine

import (
	"time"
)

// View is a consistent snapshot of an engine for presentation.
type View[T any] struct {
	Page[T]

	// Loading is true while a foreground fetch is outstanding.
	Loading bool
	// Refreshing is true while at least one background fetch is outstanding.
	Refreshing bool
	// Err is the most recent failure, nil after a committed success or
	// ClearError.
	Err                 error
	LastUpdated         time.Time
	ConsecutiveFailures int
	Paused              bool
}

// Stale reports whether the visible data predates the latest failed fetch.
func (v View[T]) Stale() bool {
	return v.ConsecutiveFailures > 0
}

// ErrMessage returns the error text or "".
func (v View[T]) ErrMessage() string {
	if v.Err == nil {
		return ""
	}
	return v.Err.Error()
}

// Status is the entry-free summary of an engine, used by the status server.
type Status struct {
	Name                string     `json:"name"`
	Total               int        `json:"total"`
	Page                int        `json:"page"`
	TotalPages          int        `json:"total_pages"`
	Loading             bool       `json:"loading"`
	Refreshing          bool       `json:"refreshing"`
	Paused              bool       `json:"paused"`
	Error               string     `json:"error,omitempty"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	LastUpdated         *time.Time `json:"last_updated,omitempty"`
}

// Monitor is implemented by every [Engine] regardless of its entry type.
type Monitor interface {
	Name() string
	Status() Status
}

// Outcome labels a fetch or mutation for metrics.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
	OutcomeAborted Outcome = "aborted"
	OutcomeStale   Outcome = "stale"
)

// Recorder receives engine measurements. See internal/metrics for the
// Prometheus implementation.
type Recorder interface {
	FetchObserved(engine string, foreground bool, outcome Outcome, elapsed time.Duration)
	MutationObserved(engine string, outcome Outcome)
	EntriesObserved(engine string, n int)
}

// NopRecorder discards all measurements.
type NopRecorder struct{}

func (NopRecorder) FetchObserved(string, bool, Outcome, time.Duration) {}
func (NopRecorder) MutationObserved(string, Outcome)                   {}
func (NopRecorder) EntriesObserved(string, int)                        {}
