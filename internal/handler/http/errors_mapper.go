package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/token-guard/internal/store"
)

var errorStatusMap = map[error]int{
	errUnknownEngine: http.StatusNotFound,
	errInvalidLimit:  http.StatusBadRequest,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusServiceUnavailable,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
