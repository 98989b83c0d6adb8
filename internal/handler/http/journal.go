package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/token-guard/internal/app"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/utils"
	"github.com/MKhiriev/token-guard/models"
)

const (
	defaultJournalLimit = 50
	maxJournalLimit     = 500
)

func (h *Handler) listJournal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	filter, err := journalFilterFromQuery(r)
	if err != nil {
		log.Warn().Err(err).Msg("bad journal query")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	entries, err := h.journal.List(r.Context(), filter)
	if err != nil {
		log.Err(err).Msg("list journal")
		utils.WriteError(w, app.MsgJournalUnavailable, statusFromError(err))
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}

	if _, err = utils.WriteJSON(w, entries, http.StatusOK); err != nil {
		log.Err(err).Msg("write journal response")
	}
}

func journalFilterFromQuery(r *http.Request) (models.JournalFilter, error) {
	q := r.URL.Query()
	filter := models.JournalFilter{
		Engine:  q.Get("engine"),
		Action:  models.JournalAction(q.Get("action")),
		Outcome: models.JournalOutcome(q.Get("outcome")),
		Limit:   defaultJournalLimit,
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit == 0 {
			return filter, errInvalidLimit
		}
		filter.Limit = min(limit, maxJournalLimit)
	}

	return filter, nil
}
