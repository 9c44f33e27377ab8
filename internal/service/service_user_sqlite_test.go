package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/crypto"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/store"
	"github.com/MKhiriev/go-user-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// lateNoteRepository answers "no notes" and inserts a note for the user
// right after the answer, like a concurrent writer between the guard and
// the delete.
type lateNoteRepository struct {
	db *store.DB
}

func (r lateNoteRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	_, err := r.db.ExecContext(ctx, `INSERT INTO notes (id, user_id, title) VALUES ('late', ?, 'todo')`, userID)
	return false, err
}

func newSQLiteService(t *testing.T) (UserService, *store.Storages, *store.DB) {
	t.Helper()

	ctx := context.Background()
	db, err := store.NewConnectSQLite(ctx, config.DB{DSN: "file:" + t.Name() + "?mode=memory"}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))

	storages := store.NewSQLStorages(db, logger.Nop())
	t.Cleanup(func() { _ = storages.Close() })

	hasher, err := crypto.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	return NewUserService(storages, hasher, config.App{}, logger.Nop()), storages, db
}

func TestDeleteUser_SQLiteNoteAddedAfterGuard(t *testing.T) {
	_, storages, db := newSQLiteService(t)
	ctx := context.Background()

	hasher, err := crypto.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	racing := &store.Storages{
		UserRepository: storages.UserRepository,
		NoteRepository: lateNoteRepository{db: db},
	}
	svc := NewUserService(racing, hasher, config.App{}, logger.Nop())

	alice := createAlice(t, svc)

	_, err = svc.DeleteUser(ctx, models.DeleteUserRequest{ID: alice.ID})
	require.ErrorIs(t, err, ErrHasDependents)

	// the user survived the rejected delete
	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, alice.ID, users[0].ID)
}

func TestUserLifecycle_SQLite(t *testing.T) {
	svc, _, db := newSQLiteService(t)
	ctx := context.Background()

	alice := createAlice(t, svc)

	_, err := svc.CreateUser(ctx, models.CreateUserRequest{Username: "alice", Password: "other", Roles: []string{"viewer"}})
	require.ErrorIs(t, err, ErrDuplicateUser)

	_, err = db.ExecContext(ctx, `INSERT INTO notes (id, user_id, title) VALUES ('n1', ?, 'todo')`, alice.ID)
	require.NoError(t, err)

	_, err = svc.DeleteUser(ctx, models.DeleteUserRequest{ID: alice.ID})
	require.ErrorIs(t, err, ErrHasDependents)

	_, err = db.ExecContext(ctx, `DELETE FROM notes WHERE id = 'n1'`)
	require.NoError(t, err)

	receipt, err := svc.DeleteUser(ctx, models.DeleteUserRequest{ID: alice.ID})
	require.NoError(t, err)
	assert.Contains(t, receipt.String(), "alice")

	_, err = svc.DeleteUser(ctx, models.DeleteUserRequest{ID: alice.ID})
	assert.ErrorIs(t, err, ErrNotFound)
}
