package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/healthz", h.health)

	if h.metrics != nil {
		router.Method("GET", "/metrics", h.metrics)
	}

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/api/version", h.getVersion)
		r.Get("/api/engines", h.listEngines)
		r.Get("/api/engines/{name}", h.getEngine)
		if h.journal != nil {
			r.Get("/api/journal", h.listJournal)
		}
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
