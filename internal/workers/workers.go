package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/token-guard/internal/logger"
)

// Workers is a started-together, stopped-together group of [Worker].
type Workers struct {
	mu      sync.Mutex
	workers []Worker
	started bool

	logger *logger.Logger
}

// New groups ws. Nil entries are skipped.
func New(logger *logger.Logger, ws ...Worker) *Workers {
	group := &Workers{logger: logger}
	for _, w := range ws {
		if w != nil {
			group.workers = append(group.workers, w)
		}
	}
	return group
}

// Start starts every worker in order. A second call is a no-op.
func (w *Workers) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true

	for _, worker := range w.workers {
		worker.Start(ctx)
	}
	w.logger.Info().Int("workers", len(w.workers)).Msg("background workers started")
}

// Stop stops every worker in reverse order.
func (w *Workers) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.started = false

	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
	w.logger.Info().Msg("background workers stopped")
}

// Len reports the number of grouped workers.
func (w *Workers) Len() int {
	return len(w.workers)
}
