package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-user-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-user-keeper/internal/logger"

	"google.golang.org/grpc"
)

// probeInterval is how often the health status is refreshed from storage.
const probeInterval = 15 * time.Second

type grpcServer struct {
	handler *myGRPC.Handler

	server   *grpc.Server
	listener net.Listener

	probeCtx  context.Context
	stopProbe context.CancelFunc

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	lis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("%w on %s: %w", errListening, cfg.GRPCAddress, err)
	}

	s := grpc.NewServer()
	handler.Register(s)

	probeCtx, stopProbe := context.WithCancel(context.Background())

	return &grpcServer{
		handler:   handler,
		server:    s,
		listener:  lis,
		probeCtx:  probeCtx,
		stopProbe: stopProbe,
		logger:    logger,
	}, nil
}

func (g *grpcServer) serve() error {
	go g.probe(g.probeCtx)

	g.logger.Info().Str("address", g.addr()).Msg("gRPC server listening")
	if err := g.server.Serve(g.listener); err != nil {
		return fmt.Errorf("gRPC server Serve: %w", err)
	}
	return nil
}

func (g *grpcServer) probe(ctx context.Context) {
	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()

	for {
		g.handler.Probe(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (g *grpcServer) shutdown(ctx context.Context) {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.stopProbe()
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		g.server.Stop()
	}
	_ = g.listener.Close()
}

func (g *grpcServer) addr() string {
	return g.listener.Addr().String()
}
