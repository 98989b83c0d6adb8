// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the token-guard admin HTTP API.
//
// [AdminAdapter] is the boundary the engines fetch through and the services
// mutate through. [NewHTTPAdminAdapter] is the resty implementation; the
// synthetic source in internal/source implements the same interface.
//
// Errors are classified so the engines can tell them apart:
//   - [ErrAborted] when the caller's context was cancelled,
//   - *[HTTPError] for non-2xx statuses (errors.Is matches [ErrUnauthorized],
//     [ErrForbidden], [ErrNotFound] and [ErrServerError]),
//   - [ErrInvalidResponse] for a 2xx envelope of the wrong shape,
//   - anything else is a transport failure wrapped with the operation name.
package adapter

import (
	"context"

	"github.com/MKhiriev/token-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/admin_adapter_mock.go -package=mock

// AdminAdapter is the admin API as seen by the console.
type AdminAdapter interface {
	// FetchTokens returns the token activity list from GET /AdminUsers.
	FetchTokens(ctx context.Context) ([]models.TokenActivity, error)

	// FetchPolicies returns the policies from GET /PolicyResource.
	FetchPolicies(ctx context.Context) ([]models.Policy, error)

	// FetchHistory returns the audit log from GET /HistoryLogs in server
	// order.
	FetchHistory(ctx context.Context) ([]models.HistoryLogItem, error)

	// FetchGeoLocations returns the geo-ban list from GET /GeoLocation.
	FetchGeoLocations(ctx context.Context) ([]models.GeoLocation, error)

	// BanToken bans token via POST /BanToken. The request metadata fields are
	// filled from configuration.
	BanToken(ctx context.Context, token string) error

	// UnbanToken lifts a ban via POST /UnbanToken.
	UnbanToken(ctx context.Context, token string) error

	EnablePolicy(ctx context.Context, id string) error
	DisablePolicy(ctx context.Context, id string) error

	// ApplyPolicyToToken runs the active policies against one token. The
	// effect on the token row is only known after the next fetch.
	ApplyPolicyToToken(ctx context.Context, token string) error

	// UpdateGeoLocations replaces the geo-ban list via PUT /GeoLocation.
	UpdateGeoLocations(ctx context.Context, locations []models.GeoLocation) error
}
