package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/server"
	"github.com/MKhiriev/token-guard/internal/service"
)

var errNoUI = errors.New("console UI is required")

// UI is the interactive part of the console.
type UI interface {
	Run(ctx context.Context) error
}

// Closer releases a resource on exit.
type Closer interface {
	Close() error
}

type App struct {
	services *service.ConsoleServices
	ui       UI
	server   server.Server
	closers  []Closer

	logger *logger.Logger
}

// NewApp wires the runtime. srv may be nil when the status server is
// disabled. closers are closed in reverse order after everything stopped.
func NewApp(services *service.ConsoleServices, ui UI, srv server.Server, log *logger.Logger, closers ...Closer) (*App, error) {
	if ui == nil {
		return nil, errNoUI
	}
	return &App{
		services: services,
		ui:       ui,
		server:   srv,
		closers:  closers,
		logger:   log.WithComponent("app"),
	}, nil
}

// Run starts the engines and the status server, then blocks in the UI.
// Cancelling ctx stops everything as if the operator had quit.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.services.Workers.Start(ctx)
	a.logger.Info().Int("engines", a.services.Workers.Len()).Msg("engines started")

	var wg sync.WaitGroup
	if a.server != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.server.RunServer(ctx); err != nil {
				a.logger.Err(err).Str("address", a.server.Addr()).Msg("status server stopped")
			}
		}()
	}

	uiErr := a.ui.Run(ctx)

	cancel()
	if a.server != nil {
		a.server.Shutdown()
	}
	wg.Wait()
	a.services.Workers.Stop()

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn().Err(err).Msg("close resource")
		}
	}

	if uiErr != nil {
		return fmt.Errorf("console: %w", uiErr)
	}
	a.logger.Info().Msg("console stopped")
	return nil
}
