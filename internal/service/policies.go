package service

import (
	"context"

	"github.com/MKhiriev/token-guard/internal/adapter"
	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/internal/validators"
	"github.com/MKhiriev/token-guard/models"
)

type policyService struct {
	engine    *engine.Engine[models.Policy]
	admin     adapter.AdminAdapter
	validator validators.Validator
	journal   *journal
}

func newPolicyService(e *engine.Engine[models.Policy], admin adapter.AdminAdapter, v validators.Validator, j *journal) PolicyService {
	return &policyService{engine: e, admin: admin, validator: v, journal: j}
}

func (s *policyService) Enable(ctx context.Context, id string) error {
	return s.setActive(ctx, id, true)
}

func (s *policyService) Disable(ctx context.Context, id string) error {
	return s.setActive(ctx, id, false)
}

func (s *policyService) Toggle(ctx context.Context, id string) error {
	current, ok := s.engine.Get(id)
	if !ok {
		return ErrUnknownPolicy
	}
	return s.setActive(ctx, id, !current.Active)
}

func (s *policyService) setActive(ctx context.Context, id string, enable bool) error {
	if err := s.validator.Validate(ctx, id, validators.FieldPolicyID); err != nil {
		return err
	}

	call, action := s.admin.DisablePolicy, models.ActionDisable
	if enable {
		call, action = s.admin.EnablePolicy, models.ActionEnable
	}

	err := s.engine.Mutate(ctx, id, func(ctx context.Context) error {
		return call(ctx, id)
	}, func(p models.Policy) models.Policy {
		return p.WithActive(enable)
	})

	s.journal.record(ctx, action, EnginePolicies, []string{id}, err)
	return err
}

func (s *policyService) Refresh(ctx context.Context) error {
	err := s.engine.Refresh(ctx)
	s.journal.record(ctx, models.ActionRefresh, EnginePolicies, nil, err)
	return err
}
