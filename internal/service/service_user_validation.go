package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-keeper/internal/store"
	"github.com/MKhiriev/go-user-keeper/internal/validators"
	"github.com/MKhiriev/go-user-keeper/models"
)

// userValidator applies the user record rules in order, first failure
// wins: structural rules, then username uniqueness.
//
// The uniqueness check reads before the caller writes and is not atomic
// with that write. The store's unique constraint is the authoritative
// guard; a violation there is reported as ErrDuplicateUser too.
type userValidator struct {
	validator validators.Validator
	users     store.UserRepository
}

func newUserValidator(users store.UserRepository) *userValidator {
	return &userValidator{
		validator: validators.NewUserValidator(),
		users:     users,
	}
}

// ValidateForCreate checks username, password and roles, then rejects any
// existing user with the same username.
func (v *userValidator) ValidateForCreate(ctx context.Context, req models.CreateUserRequest) error {
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return v.checkUsername(ctx, req.Username, "")
}

// ValidateForUpdate checks username and roles, then rejects an existing
// user with the same username unless it is existingID itself. The id and
// the optional password are not checked here.
func (v *userValidator) ValidateForUpdate(ctx context.Context, req models.UpdateUserRequest, existingID string) error {
	if err := v.validator.Validate(ctx, req, validators.FieldUsername, validators.FieldRoles); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return v.checkUsername(ctx, req.Username, existingID)
}

// ValidateID checks that an identifier was supplied.
func (v *userValidator) ValidateID(ctx context.Context, req any) error {
	if err := v.validator.Validate(ctx, req, validators.FieldID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func (v *userValidator) checkUsername(ctx context.Context, username, ownerID string) error {
	found, err := v.users.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking username uniqueness: %w", mapStoreError(err))
	}

	if found.ID != ownerID {
		return duplicateUserError(username)
	}
	return nil
}
