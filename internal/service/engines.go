package service

import (
	"github.com/MKhiriev/token-guard/internal/adapter"
	"github.com/MKhiriev/token-guard/internal/config"
	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/models"
)

// Engine names, used in logs, metrics, the status API and the journal.
const (
	EngineTokens   = "tokens"
	EnginePolicies = "policies"
	EngineHistory  = "history"
	EngineGeo      = "geo"
)

// Engines groups the synchronized collections.
type Engines struct {
	Tokens   *engine.Engine[models.TokenActivity]
	Policies *engine.Engine[models.Policy]
	History  *engine.Engine[models.HistoryLogItem]
	Geo      *engine.Engine[models.GeoLocation]
}

// NewEngines builds one idle engine per collection.
func NewEngines(admin adapter.AdminAdapter, cfg config.ConsoleEngines, rec engine.Recorder, log *logger.Logger) *Engines {
	return &Engines{
		Tokens: engine.New[models.TokenActivity](
			engine.FetcherFunc[models.TokenActivity](admin.FetchTokens),
			options[models.TokenActivity](EngineTokens, cfg.Tokens, rec, log),
		),
		Policies: engine.New[models.Policy](
			engine.FetcherFunc[models.Policy](admin.FetchPolicies),
			options[models.Policy](EnginePolicies, cfg.Policies, rec, log),
		),
		History: engine.New[models.HistoryLogItem](
			engine.FetcherFunc[models.HistoryLogItem](admin.FetchHistory),
			withNormalize(options[models.HistoryLogItem](EngineHistory, cfg.History, rec, log), newestFirst),
		),
		Geo: engine.New[models.GeoLocation](
			engine.FetcherFunc[models.GeoLocation](admin.FetchGeoLocations),
			options[models.GeoLocation](EngineGeo, cfg.Geo, rec, log),
		),
	}
}

// Monitors returns the engines in tab order.
func (e *Engines) Monitors() []engine.Monitor {
	return []engine.Monitor{e.Tokens, e.Policies, e.History, e.Geo}
}

// Pause pauses background polling of every engine.
func (e *Engines) Pause() {
	e.Tokens.Pause()
	e.Policies.Pause()
	e.History.Pause()
	e.Geo.Pause()
}

// Resume re-enables background polling of every engine.
func (e *Engines) Resume() {
	e.Tokens.Resume()
	e.Policies.Resume()
	e.History.Resume()
	e.Geo.Resume()
}

func options[T engine.Entry](name string, cfg config.EngineConfig, rec engine.Recorder, log *logger.Logger) engine.Options[T] {
	return engine.Options[T]{
		Name:                   name,
		PageSize:               cfg.PageSize,
		Interval:               cfg.PollInterval,
		ClearOnForegroundError: cfg.ClearOnError,
		Recorder:               rec,
		Logger:                 log,
	}
}

func withNormalize[T engine.Entry](opts engine.Options[T], normalize func([]T) []T) engine.Options[T] {
	opts.Normalize = normalize
	return opts
}

func newestFirst(items []models.HistoryLogItem) []models.HistoryLogItem {
	out := make([]models.HistoryLogItem, len(items))
	copy(out, items)
	models.SortHistoryNewestFirst(out)
	return out
}
