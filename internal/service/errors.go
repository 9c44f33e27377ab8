package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-keeper/internal/store"
)

// Error kinds returned by [UserService]. Detailed errors wrap one of them,
// so callers classify with [errors.Is] while Error() names the violated
// rule.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateUser  = errors.New("username already exists")
	ErrNotFound       = errors.New("user not found")
	ErrHasDependents  = errors.New("user has active notes assigned")
	ErrHashingFailure = errors.New("password hashing failed")

	// ErrStorageUnavailable wraps transient storage failures the caller may
	// retry.
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// mapStoreError translates repository sentinels into service error kinds.
// Unknown errors are returned unchanged.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrUsernameTaken):
		return ErrDuplicateUser
	case errors.Is(err, store.ErrUserHasNotes):
		return ErrHasDependents
	case errors.Is(err, store.ErrTransient):
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return err
}

func duplicateUserError(username string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateUser, username)
}

func notFoundError(id string) error {
	return fmt.Errorf("%w: id %q", ErrNotFound, id)
}
