package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/token-guard/internal/mock"
	"github.com/MKhiriev/token-guard/internal/store"
	"github.com/MKhiriev/token-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListJournal(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := models.JournalEntry{
		ID:        "01956f3a-0000-7000-8000-000000000001",
		Action:    models.ActionBan,
		Engine:    "tokens",
		Targets:   []string{"id-7"},
		Outcome:   models.OutcomeOK,
		CreatedAt: created,
	}

	tests := []struct {
		name       string
		query      string
		wantFilter *models.JournalFilter
		entries    []models.JournalEntry
		listErr    error
		wantCode   int
		wantBody   string
	}{
		{
			name:       "default filter",
			query:      "",
			wantFilter: &models.JournalFilter{Limit: defaultJournalLimit},
			entries:    []models.JournalEntry{entry},
			wantCode:   http.StatusOK,
			wantBody:   `"targets":["id-7"]`,
		},
		{
			name:       "all filters",
			query:      "?engine=tokens&action=ban&outcome=failed&limit=5",
			wantFilter: &models.JournalFilter{Engine: "tokens", Action: models.ActionBan, Outcome: models.OutcomeFailed, Limit: 5},
			wantCode:   http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "limit capped",
			query:      "?limit=100000",
			wantFilter: &models.JournalFilter{Limit: maxJournalLimit},
			wantCode:   http.StatusOK,
		},
		{
			name:     "zero limit",
			query:    "?limit=0",
			wantCode: http.StatusBadRequest,
			wantBody: errInvalidLimit.Error(),
		},
		{
			name:     "non numeric limit",
			query:    "?limit=ten",
			wantCode: http.StatusBadRequest,
		},
		{
			name:       "storage failure",
			wantFilter: &models.JournalFilter{Limit: defaultJournalLimit},
			listErr:    fmt.Errorf("%w: database is locked", store.ErrExecutingQuery),
			wantCode:   http.StatusServiceUnavailable,
			wantBody:   "journal unavailable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			journal := mock.NewMockJournalRepository(ctrl)
			if tt.wantFilter != nil {
				journal.EXPECT().List(gomock.Any(), *tt.wantFilter).Return(tt.entries, tt.listErr)
			}
			router := newTestHandler(t, journal).Init()

			rec := serve(router, http.MethodGet, "/api/journal"+tt.query)

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestJournalFilterFromQuery_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/journal", nil)

	filter, err := journalFilterFromQuery(req)

	require.NoError(t, err)
	assert.Equal(t, models.JournalFilter{Limit: defaultJournalLimit}, filter)
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFromError(errUnknownEngine))
	assert.Equal(t, http.StatusBadRequest, statusFromError(fmt.Errorf("query: %w", errInvalidLimit)))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(store.ErrScanningRows))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(fmt.Errorf("other")))
}
