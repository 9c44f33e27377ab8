package store

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorages_Memory(t *testing.T) {
	s, err := NewStorages(context.Background(), config.Storage{DB: config.DB{Driver: config.DriverMemory}}, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, s.UserRepository)
	require.NotNil(t, s.NoteRepository)
	assert.NoError(t, s.Close())
}

func TestNewStorages_SQLite(t *testing.T) {
	cfg := config.Storage{DB: config.DB{Driver: config.DriverSQLite, DSN: "file:" + t.Name() + "?mode=memory"}}

	s, err := NewStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	users, err := s.UserRepository.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestNewStorages_UnknownDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{DB: config.DB{Driver: "mysql"}}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestStorages_CloseWithoutBackend(t *testing.T) {
	assert.NoError(t, (&Storages{}).Close())
}
