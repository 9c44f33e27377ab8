package service

import (
	"context"

	"github.com/MKhiriev/go-user-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// UserService manages the user lifecycle: list, create, update and delete.
type UserService interface {
	// ListUsers returns the public projection of every user ordered by
	// username. No users is an empty slice, not an error.
	ListUsers(ctx context.Context) ([]models.UserView, error)

	// CreateUser validates req, hashes the password and stores a new user.
	// Fails with ErrInvalidInput, ErrDuplicateUser or ErrHashingFailure.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.UserView, error)

	// UpdateUser replaces username, roles and the active flag of an
	// existing user, and the password hash when req.Password is set.
	// Fails with ErrInvalidInput, ErrNotFound, ErrDuplicateUser or
	// ErrHashingFailure.
	UpdateUser(ctx context.Context, req models.UpdateUserRequest) (models.UserView, error)

	// DeleteUser removes a user that no note references.
	// Fails with ErrInvalidInput, ErrNotFound or ErrHasDependents.
	DeleteUser(ctx context.Context, req models.DeleteUserRequest) (models.DeletionReceipt, error)
}

// IntegrityGuard decides whether destroying a record would orphan records
// that depend on it.
type IntegrityGuard interface {
	// CanDelete reports whether the user may be deleted, i.e. no note
	// references it. A failed lookup is an error, never a "yes".
	CanDelete(ctx context.Context, userID string) (bool, error)
}

// AppInfoService reports build and version metadata of the running server.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}
