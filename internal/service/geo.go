package service

import (
	"context"
	"slices"
	"strings"

	"github.com/MKhiriev/token-guard/internal/adapter"
	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/internal/validators"
	"github.com/MKhiriev/token-guard/models"
)

type geoService struct {
	engine    *engine.Engine[models.GeoLocation]
	admin     adapter.AdminAdapter
	validator validators.Validator
	journal   *journal
}

func newGeoService(e *engine.Engine[models.GeoLocation], admin adapter.AdminAdapter, v validators.Validator, j *journal) GeoService {
	return &geoService{engine: e, admin: admin, validator: v, journal: j}
}

func (s *geoService) Update(ctx context.Context, locations []models.GeoLocation) error {
	next := normalizeGeo(locations)
	if err := s.validator.Validate(ctx, next); err != nil {
		return err
	}

	err := s.engine.MutateReplace(ctx, func(ctx context.Context) error {
		return s.admin.UpdateGeoLocations(ctx, next)
	}, next)

	s.journal.record(ctx, models.ActionUpdateGeo, EngineGeo, models.GeoLocationStrings(next), err)
	return err
}

func (s *geoService) Add(ctx context.Context, code string) error {
	loc, err := parseGeo(code)
	if err != nil {
		return err
	}
	return s.Update(ctx, append(s.engine.All(), loc))
}

func (s *geoService) Remove(ctx context.Context, code string) error {
	loc, err := parseGeo(code)
	if err != nil {
		return err
	}
	return s.Update(ctx, slices.DeleteFunc(s.engine.All(), func(l models.GeoLocation) bool {
		return l == loc
	}))
}

func (s *geoService) Refresh(ctx context.Context) error {
	err := s.engine.Refresh(ctx)
	s.journal.record(ctx, models.ActionRefresh, EngineGeo, nil, err)
	return err
}

func parseGeo(code string) (models.GeoLocation, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return "", ErrInvalidGeoLocation
	}
	return models.GeoLocation(trimmed), nil
}

// normalizeGeo upper-cases codes, drops empty ones and keeps the first
// occurrence of duplicates.
func normalizeGeo(locations []models.GeoLocation) []models.GeoLocation {
	out := make([]models.GeoLocation, 0, len(locations))
	seen := make(map[models.GeoLocation]struct{}, len(locations))
	for _, l := range locations {
		loc, err := parseGeo(string(l))
		if err != nil {
			continue
		}
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		out = append(out, loc)
	}
	return out
}
