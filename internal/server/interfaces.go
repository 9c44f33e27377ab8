package server

import "context"

// Server defines the lifecycle of the transports managed by this package.
type Server interface {
	// RunServer serves requests until ctx is done, a termination signal
	// arrives or a transport fails, then shuts every transport down.
	// A clean stop returns nil.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the transports, waiting at most until ctx
	// is done.
	Shutdown(ctx context.Context)
}

type transport interface {
	serve() error
	shutdown(ctx context.Context)
	addr() string
}
