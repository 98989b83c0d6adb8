package service

import (
	"github.com/MKhiriev/token-guard/internal/adapter"
	"github.com/MKhiriev/token-guard/internal/config"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/store"
	"github.com/MKhiriev/token-guard/internal/validators"
	"github.com/MKhiriev/token-guard/internal/workers"
)

// ConsoleServices is everything the terminal UI and the status server need.
type ConsoleServices struct {
	Engines *Engines
	Workers *workers.Workers

	Tokens   TokenService
	Policies PolicyService
	History  HistoryService
	Geo      GeoService
	Journal  JournalService
}

// NewConsoleServices wires the engines and services over admin. repo may be
// nil to disable the journal. Nothing polls until Workers.Start is called.
func NewConsoleServices(admin adapter.AdminAdapter, repo store.JournalRepository, cfg config.ConsoleEngines, observer Observer, logger *logger.Logger) *ConsoleServices {
	if observer == nil {
		observer = NopObserver{}
	}

	engines := NewEngines(admin, cfg, observer, logger)
	j := newJournal(repo, observer, logger.WithComponent("journal"))
	v := validators.NewAdminInputValidator()

	return &ConsoleServices{
		Engines:  engines,
		Workers:  workers.New(logger, engines.Tokens, engines.Policies, engines.History, engines.Geo),
		Tokens:   newTokenService(engines.Tokens, admin, v, j),
		Policies: newPolicyService(engines.Policies, admin, v, j),
		History:  newHistoryService(engines.History, j),
		Geo:      newGeoService(engines.Geo, admin, v, j),
		Journal:  j,
	}
}
