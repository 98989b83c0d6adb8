package http

import (
	"net/http"

	"github.com/MKhiriev/token-guard/internal/utils"
)

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, h.build.Fields(), http.StatusOK); err != nil {
		h.logger.Err(err).Msg("write version response")
	}
}
