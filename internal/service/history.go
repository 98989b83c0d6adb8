package service

import (
	"context"

	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/models"
)

type historyService struct {
	engine  *engine.Engine[models.HistoryLogItem]
	journal *journal
}

func newHistoryService(e *engine.Engine[models.HistoryLogItem], j *journal) HistoryService {
	return &historyService{engine: e, journal: j}
}

func (s *historyService) Refresh(ctx context.Context) error {
	err := s.engine.Refresh(ctx)
	s.journal.record(ctx, models.ActionRefresh, EngineHistory, nil, err)
	return err
}
