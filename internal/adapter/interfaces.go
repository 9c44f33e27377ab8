// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the go-user-keeper HTTP API on behalf of the
// admin client.
//
// [UserAdapter] hides the transport from callers. Non-2xx responses are
// mapped to the sentinel errors in errors.go so that callers can use
// [errors.Is] (e.g. [ErrConflict] for 409, [ErrNotFound] for 404) while the
// error text carries the server's message.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-user-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// UserAdapter is the client side of the user lifecycle API.
type UserAdapter interface {
	// ListUsers fetches every user.
	ListUsers(ctx context.Context) ([]models.UserView, error)

	// CreateUser creates a user and returns the server's confirmation with
	// the assigned id.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error)

	// UpdateUser replaces username, roles and the active flag of a user and,
	// when req.Password is set, its password.
	UpdateUser(ctx context.Context, req models.UpdateUserRequest) (models.UpdateUserResponse, error)

	// DeleteUser removes a user that no note references.
	DeleteUser(ctx context.Context, req models.DeleteUserRequest) (models.MessageResponse, error)

	// Version reports version and build metadata of the server.
	Version(ctx context.Context) (models.AppInfo, error)
}
