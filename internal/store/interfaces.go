package store

import (
	"context"

	"github.com/MKhiriev/go-user-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user records.
type UserRepository interface {
	// FindAll returns every stored user ordered by username. An empty store
	// yields an empty slice and no error.
	FindAll(ctx context.Context) ([]models.User, error)

	// FindByID returns the user with the given id or [ErrUserNotFound].
	FindByID(ctx context.Context, id string) (models.User, error)

	// FindByUsername returns the user with exactly this username or
	// [ErrUserNotFound].
	FindByUsername(ctx context.Context, username string) (models.User, error)

	// Create stores a new user. The id and timestamps are assigned by the
	// repository and any values in user are ignored. Returns
	// [ErrUsernameTaken] when the username is already in use.
	Create(ctx context.Context, user models.User) (models.User, error)

	// Save replaces the stored username, password hash, roles and active
	// flag of the user identified by user.ID and refreshes UpdatedAt.
	// Returns [ErrUserNotFound] or [ErrUsernameTaken].
	Save(ctx context.Context, user models.User) (models.User, error)

	// Delete removes the user identified by user.ID. Returns
	// [ErrUserNotFound], or [ErrUserHasNotes] when notes still reference it.
	Delete(ctx context.Context, user models.User) (models.DeletionReceipt, error)
}

// NoteRepository answers questions about notes owned by users.
type NoteRepository interface {
	// ExistsForUser reports whether at least one note references userID.
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}

// IDGenerator produces identifiers for new records.
type IDGenerator interface {
	Generate() string
}
