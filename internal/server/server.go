// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/handler"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
)

// shutdownTimeout bounds the graceful stop of all transports.
const shutdownTimeout = 10 * time.Second

type server struct {
	transports []transport
	logger     *logger.Logger
}

// NewServer binds a listener for every enabled transport. Nothing is served
// until [Server.RunServer] is called.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		h, err := newHTTPServer(handlers.HTTP.Init(), cfg, logger)
		if err != nil {
			return nil, err
		}
		s.transports = append(s.transports, h)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		g, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			s.Shutdown(context.Background())
			return nil, err
		}
		s.transports = append(s.transports, g)
	}

	if len(s.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	errs := make(chan error, len(s.transports))
	for _, t := range s.transports {
		go func() { errs <- t.serve() }()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop requested")
	case runErr = <-errs:
		s.logger.Err(runErr).Msg("transport stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.Shutdown(shutdownCtx)

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}

func (s *server) Shutdown(ctx context.Context) {
	var wg sync.WaitGroup
	for _, t := range s.transports {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t.shutdown(ctx)
		}()
	}
	wg.Wait()
}

// addresses reports the bound address of every transport, in start order.
func (s *server) addresses() []string {
	addrs := make([]string, 0, len(s.transports))
	for _, t := range s.transports {
		addrs = append(addrs, t.addr())
	}
	return addrs
}
