package server

import (
	"context"
	"fmt"
	"sync"

	statushttp "github.com/MKhiriev/token-guard/internal/handler/http"
	"github.com/MKhiriev/token-guard/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger

	shutdownOnce sync.Once
}

// NewServer creates the status server. An empty address means the operator
// disabled it and yields ErrNoStatusAddress.
func NewServer(handler *statushttp.Handler, address string, logger *logger.Logger) (Server, error) {
	if address == "" {
		return nil, ErrNoStatusAddress
	}

	logger.Info().Str("address", address).Msg("creating status server...")
	return &server{
		httpServer: newHTTPServer(handler.Init(), address, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	if err := s.httpServer.listen(); err != nil {
		return fmt.Errorf("listen status server: %w", err)
	}

	s.logger.Info().Str("address", s.httpServer.addr()).Msg("launching HTTP server")
	go s.httpServer.RunServer()

	<-ctx.Done()
	s.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(s.httpServer.Shutdown)
}

func (s *server) Addr() string {
	return s.httpServer.addr()
}
