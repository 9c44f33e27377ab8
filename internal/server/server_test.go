package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/handler"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/service"
	"github.com/MKhiriev/go-user-keeper/internal/store"
	"github.com/MKhiriev/go-user-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func newHandlers(t *testing.T, cfg config.Server) *handler.Handlers {
	t.Helper()

	mem := store.NewMemoryStorage()
	services, err := service.NewServices(
		&store.Storages{UserRepository: mem, NoteRepository: mem},
		config.App{Version: "1.0.0", PasswordHashCost: 4},
		models.NewAppBuildInfo("", "", ""),
		logger.Nop(),
	)
	require.NoError(t, err)

	handlers, err := handler.NewHandlers(services, cfg, logger.Nop())
	require.NoError(t, err)
	return handlers
}

func run(t *testing.T, s Server) (cancel func() error) {
	t.Helper()

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunServer(ctx) }()

	return func() error {
		stop()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
			return nil
		}
	}
}

func TestNewServer_NoTransports(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

	assert.Nil(t, s)
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_ListenError(t *testing.T) {
	cfg := config.Server{HTTPAddress: "256.0.0.1:99999"}

	s, err := NewServer(newHandlers(t, cfg), cfg, logger.Nop())

	assert.Nil(t, s)
	assert.ErrorIs(t, err, errListening)
}

func TestServer_ServesHTTPAndGRPC(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:0"}

	s, err := NewServer(newHandlers(t, cfg), cfg, logger.Nop())
	require.NoError(t, err)
	addrs := s.(*server).addresses()
	require.Len(t, addrs, 2)

	stop := run(t, s)

	resp, err := http.Get("http://" + addrs[0] + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info models.AppInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "1.0.0", info.Version)

	conn, err := grpc.NewClient(addrs[1], grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	health, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.GetStatus())

	assert.NoError(t, stop())

	_, err = http.Get("http://" + addrs[0] + "/version")
	assert.Error(t, err, "listener must be closed after shutdown")
}

func TestServer_HTTPOnly(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0"}

	s, err := NewServer(newHandlers(t, cfg), cfg, logger.Nop())
	require.NoError(t, err)
	assert.Len(t, s.(*server).addresses(), 1)

	stop := run(t, s)
	assert.NoError(t, stop())
}
