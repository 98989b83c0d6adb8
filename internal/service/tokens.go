// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/token-guard/internal/adapter"
	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/internal/utils"
	"github.com/MKhiriev/token-guard/internal/validators"
	"github.com/MKhiriev/token-guard/models"
)

type tokenService struct {
	engine    *engine.Engine[models.TokenActivity]
	admin     adapter.AdminAdapter
	validator validators.Validator
	journal   *journal
}

func newTokenService(e *engine.Engine[models.TokenActivity], admin adapter.AdminAdapter, v validators.Validator, j *journal) TokenService {
	return &tokenService{engine: e, admin: admin, validator: v, journal: j}
}

func banned(t models.TokenActivity) models.TokenActivity {
	return t.WithStatus(models.TokenStatusBanned)
}

func active(t models.TokenActivity) models.TokenActivity {
	return t.WithStatus(models.TokenStatusActive)
}

// perCall gives every call of a batch its own request id, "<action id>.<n>",
// so each outbound request stays traceable to the journal entry.
func perCall(call func(ctx context.Context, token string) error) func(ctx context.Context, token string) error {
	n := 0
	return func(ctx context.Context, token string) error {
		n++
		if id, ok := utils.RequestIDFromContext(ctx); ok {
			ctx = utils.WithRequestID(ctx, fmt.Sprintf("%s.%d", id, n))
		}
		return call(ctx, token)
	}
}

func (s *tokenService) Ban(ctx context.Context, token string) error {
	if err := s.validator.Validate(ctx, token, validators.FieldToken); err != nil {
		return err
	}

	err := s.engine.Mutate(ctx, token, func(ctx context.Context) error {
		return s.admin.BanToken(ctx, token)
	}, banned)

	s.journal.record(ctx, models.ActionBan, EngineTokens, []string{token}, err)
	return err
}

func (s *tokenService) Unban(ctx context.Context, token string) error {
	if err := s.validator.Validate(ctx, token, validators.FieldToken); err != nil {
		return err
	}

	err := s.engine.Mutate(ctx, token, func(ctx context.Context) error {
		return s.admin.UnbanToken(ctx, token)
	}, active)

	s.journal.record(ctx, models.ActionUnban, EngineTokens, []string{token}, err)
	return err
}

func (s *tokenService) ToggleBan(ctx context.Context, token string) error {
	current, ok := s.engine.Get(token)
	if !ok {
		return ErrUnknownToken
	}
	if current.Banned() {
		return s.Unban(ctx, token)
	}
	return s.Ban(ctx, token)
}

func (s *tokenService) BanBatch(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return ErrEmptySelection
	}
	if err := s.validator.Validate(ctx, tokens, validators.FieldToken); err != nil {
		return err
	}

	err := s.engine.MutateBatch(ctx, tokens, perCall(s.admin.BanToken), banned)

	s.journal.record(ctx, models.ActionBanBatch, EngineTokens, tokens, err)
	return err
}

func (s *tokenService) UnbanBatch(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return ErrEmptySelection
	}
	if err := s.validator.Validate(ctx, tokens, validators.FieldToken); err != nil {
		return err
	}

	err := s.engine.MutateBatch(ctx, tokens, perCall(s.admin.UnbanToken), active)

	s.journal.record(ctx, models.ActionUnbanBatch, EngineTokens, tokens, err)
	return err
}

func (s *tokenService) ApplyPolicy(ctx context.Context, token string) error {
	if err := s.validator.Validate(ctx, token, validators.FieldToken); err != nil {
		return err
	}

	err := s.engine.MutateAndRefresh(ctx, func(ctx context.Context) error {
		return s.admin.ApplyPolicyToToken(ctx, token)
	})

	s.journal.record(ctx, models.ActionApplyPolicy, EngineTokens, []string{token}, err)
	return err
}

func (s *tokenService) Refresh(ctx context.Context) error {
	err := s.engine.Refresh(ctx)
	s.journal.record(ctx, models.ActionRefresh, EngineTokens, nil, err)
	return err
}
