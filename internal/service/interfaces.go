// Package service holds the operator actions of the console.
//
// Each collection (tokens, policies, history, geo) is backed by an
// [engine.Engine] that polls the admin API. The services in this package
// mutate through the same [adapter.AdminAdapter], keep the engines
// consistent with optimistic patches, and record every action in the
// operator journal.
package service

import (
	"context"

	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/models"
)

// TokenService exposes the token actions.
type TokenService interface {
	// Ban bans token and marks it banned locally without waiting for a poll.
	Ban(ctx context.Context, token string) error

	// Unban lifts a ban and marks the token active locally.
	Unban(ctx context.Context, token string) error

	// ToggleBan bans an active token or unbans a banned one. The token must be
	// present in the current collection.
	ToggleBan(ctx context.Context, token string) error

	// BanBatch bans every token in order and patches the successful ones in a
	// single update. Failures are joined into the returned error.
	BanBatch(ctx context.Context, tokens []string) error

	// UnbanBatch is the batch counterpart of Unban.
	UnbanBatch(ctx context.Context, tokens []string) error

	// ApplyPolicy runs the active policies against token and refreshes the
	// collection, since the outcome is decided by the server.
	ApplyPolicy(ctx context.Context, token string) error

	// Refresh performs a foreground fetch.
	Refresh(ctx context.Context) error
}

// PolicyService exposes the policy actions.
type PolicyService interface {
	Enable(ctx context.Context, id string) error
	Disable(ctx context.Context, id string) error
	// Toggle enables an inactive policy or disables an active one.
	Toggle(ctx context.Context, id string) error
	Refresh(ctx context.Context) error
}

// HistoryService exposes the history log. The log is read only.
type HistoryService interface {
	Refresh(ctx context.Context) error
}

// GeoService exposes the geo-ban list.
type GeoService interface {
	// Update replaces the whole list. Codes are trimmed, upper-cased and
	// de-duplicated before they are sent.
	Update(ctx context.Context, locations []models.GeoLocation) error
	// Add appends code to the current list.
	Add(ctx context.Context, code string) error
	// Remove drops code from the current list.
	Remove(ctx context.Context, code string) error
	Refresh(ctx context.Context) error
}

// JournalService reads back the operator journal.
type JournalService interface {
	List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error)
}

// Observer receives engine metrics and journal write failures.
// *metrics.Metrics implements it.
type Observer interface {
	engine.Recorder
	JournalFailed()
}

// NopObserver discards everything.
type NopObserver struct {
	engine.NopRecorder
}

func (NopObserver) JournalFailed() {}
