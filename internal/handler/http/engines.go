package http

import (
	"net/http"

	"github.com/MKhiriev/token-guard/internal/app"
	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/utils"
	"github.com/go-chi/chi/v5"
)

type healthResponse struct {
	Status  string          `json:"status"`
	Engines []engine.Status `json:"engines"`
}

// health answers 200 while every engine holds data it could fetch on its
// last attempt, and 503 as soon as one of them is stale.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	statuses := h.statuses()

	resp := healthResponse{Status: app.HealthOK, Engines: statuses}
	code := http.StatusOK
	for _, s := range statuses {
		if s.Error != "" {
			resp.Status = app.HealthDegraded
			code = http.StatusServiceUnavailable
			break
		}
	}

	if _, err := utils.WriteJSON(w, resp, code); err != nil {
		logger.FromRequest(r).Err(err).Msg("write health response")
	}
}

func (h *Handler) listEngines(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, h.statuses(), http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("write engines response")
	}
}

func (h *Handler) getEngine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, m := range h.monitors {
		if m.Name() == name {
			if _, err := utils.WriteJSON(w, m.Status(), http.StatusOK); err != nil {
				logger.FromRequest(r).Err(err).Msg("write engine response")
			}
			return
		}
	}
	utils.WriteError(w, errUnknownEngine.Error(), statusFromError(errUnknownEngine))
}

func (h *Handler) statuses() []engine.Status {
	out := make([]engine.Status, 0, len(h.monitors))
	for _, m := range h.monitors {
		out = append(out, m.Status())
	}
	return out
}
