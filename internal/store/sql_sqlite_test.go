package store

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/migrations"
	"github.com/MKhiriev/go-user-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStorages opens a private in-memory SQLite database with the
// schema applied.
func newSQLiteStorages(t *testing.T) (*Storages, *DB) {
	t.Helper()

	ctx := context.Background()
	db, err := NewConnectSQLite(ctx, config.DB{DSN: "file:" + t.Name() + "?mode=memory"}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))

	s := NewSQLStorages(db, logger.Nop())
	t.Cleanup(func() { _ = s.Close() })
	return s, db
}

func TestSQLite_Dialect(t *testing.T) {
	_, db := newSQLiteStorages(t)
	assert.Equal(t, migrations.DialectSQLite, db.Dialect())
}

func TestSQLite_UserLifecycle(t *testing.T) {
	s, db := newSQLiteStorages(t)
	ctx := context.Background()

	users, err := s.UserRepository.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	alice, err := s.UserRepository.Create(ctx, models.User{
		Username:     "alice",
		PasswordHash: "hash",
		Roles:        []string{"editor", "viewer"},
		IsActive:     true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, alice.ID)

	_, err = s.UserRepository.Create(ctx, models.User{Username: "alice", PasswordHash: "x", Roles: []string{"admin"}})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	found, err := s.UserRepository.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)
	assert.Equal(t, []string{"editor", "viewer"}, found.Roles)
	assert.True(t, found.IsActive)
	assert.Equal(t, alice.CreatedAt.UnixMilli(), found.CreatedAt.UnixMilli())

	found.IsActive = false
	found.Roles = []string{"admin"}
	_, err = s.UserRepository.Save(ctx, found)
	require.NoError(t, err)

	reloaded, err := s.UserRepository.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
	assert.Equal(t, []string{"admin"}, reloaded.Roles)

	// a note blocks deletion through the foreign key
	_, err = db.ExecContext(ctx, `INSERT INTO notes (id, user_id, title) VALUES ('n1', ?, 'todo')`, alice.ID)
	require.NoError(t, err)

	exists, err := s.NoteRepository.ExistsForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = s.UserRepository.Delete(ctx, alice)
	assert.ErrorIs(t, err, ErrUserHasNotes)

	_, err = db.ExecContext(ctx, `DELETE FROM notes WHERE id = 'n1'`)
	require.NoError(t, err)

	receipt, err := s.UserRepository.Delete(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", receipt.Username)

	_, err = s.UserRepository.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSQLite_SaveTakenUsername(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()

	_, err := s.UserRepository.Create(ctx, models.User{Username: "alice", PasswordHash: "h", Roles: []string{"r"}})
	require.NoError(t, err)
	bob, err := s.UserRepository.Create(ctx, models.User{Username: "bob", PasswordHash: "h", Roles: []string{"r"}})
	require.NoError(t, err)

	bob.Username = "alice"
	_, err = s.UserRepository.Save(ctx, bob)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}
