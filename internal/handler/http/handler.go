package http

import (
	"net/http"

	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/store"
	"github.com/MKhiriev/token-guard/models"
)

// Handler serves the status API. monitors is read on every request, so the
// engines it reports on must outlive the server.
type Handler struct {
	monitors []engine.Monitor
	journal  store.JournalRepository
	metrics  http.Handler
	build    models.AppBuildInfo

	logger *logger.Logger
}

// NewHandler creates a status Handler. A nil metrics handler disables
// /metrics and a nil journal makes /api/journal answer 404.
func NewHandler(monitors []engine.Monitor, journal store.JournalRepository, metrics http.Handler, build models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Int("engines", len(monitors)).Msg("http handler created")
	return &Handler{
		monitors: monitors,
		journal:  journal,
		metrics:  metrics,
		build:    build,
		logger:   logger,
	}
}
