package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/store"
	"github.com/MKhiriev/token-guard/internal/utils"
	"github.com/MKhiriev/token-guard/models"
)

const journalWriteTimeout = 3 * time.Second

// journal writes operator actions. A nil repository disables it. Write
// failures are counted and logged but never returned.
type journal struct {
	repo     store.JournalRepository
	ids      *utils.UUIDGenerator
	observer Observer
	now      func() time.Time

	logger *logger.Logger
}

func newJournal(repo store.JournalRepository, observer Observer, logger *logger.Logger) *journal {
	return &journal{
		repo:     repo,
		ids:      utils.NewUUIDGenerator(),
		observer: observer,
		now:      time.Now,
		logger:   logger,
	}
}

// record writes one entry for action. The write outlives ctx so aborted
// actions are journaled too. A request id on ctx becomes the entry id, so
// the entry matches the X-Request-ID of the calls the action made; it must
// be unique per action.
func (j *journal) record(ctx context.Context, action models.JournalAction, engineName string, targets []string, actionErr error) {
	if j.repo == nil {
		return
	}

	id, ok := utils.RequestIDFromContext(ctx)
	if !ok {
		id = j.ids.Generate()
	}

	entry := models.JournalEntry{
		ID:        id,
		Action:    action,
		Engine:    engineName,
		Targets:   targets,
		Outcome:   outcomeOf(actionErr),
		CreatedAt: j.now(),
	}
	if actionErr != nil {
		entry.Message = actionErr.Error()
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalWriteTimeout)
	defer cancel()

	if err := j.repo.Record(writeCtx, entry); err != nil {
		j.observer.JournalFailed()
		j.logger.Err(err).
			Str("action", string(action)).
			Str("engine", engineName).
			Msg("journal write failed")
	}
}

func (j *journal) List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error) {
	if j.repo == nil {
		return nil, ErrJournalDisabled
	}
	return j.repo.List(ctx, filter)
}

func outcomeOf(err error) models.JournalOutcome {
	switch {
	case err == nil:
		return models.OutcomeOK
	case errors.Is(err, engine.ErrAborted):
		return models.OutcomeAborted
	default:
		return models.OutcomeFailed
	}
}
