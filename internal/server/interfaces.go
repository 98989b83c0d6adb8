package server

import "context"

// Server defines the lifecycle contract of the status server.
type Server interface {
	// RunServer binds the listener and serves until ctx is cancelled. Bind
	// errors are returned immediately.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()

	// Addr reports the bound address, or "" before RunServer has bound.
	Addr() string
}
