// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"flag"

	"github.com/MKhiriev/go-user-keeper/internal/app"
	"github.com/MKhiriev/go-user-keeper/models"
)

func (a *App) list(ctx context.Context, args []string) (any, error) {
	if err := parseFlags(flag.NewFlagSet("list", flag.ContinueOnError), args); err != nil {
		return nil, err
	}

	users, err := a.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return app.MsgNoUsersFound, nil
	}

	return users, nil
}

func (a *App) create(ctx context.Context, args []string) (any, error) {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	username := fs.String("username", "", "username of the new user")
	password := fs.String("password", "", "password of the new user")
	roles := fs.String("roles", "", "comma separated roles")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	return a.users.CreateUser(ctx, models.CreateUserRequest{
		Username: *username,
		Password: *password,
		Roles:    splitRoles(*roles),
	})
}

// update replaces username, roles and the active flag. -active defaults to
// true so that an update never disables an account by omission.
func (a *App) update(ctx context.Context, args []string) (any, error) {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	id := fs.String("id", "", "id of the user")
	username := fs.String("username", "", "new username")
	roles := fs.String("roles", "", "comma separated roles")
	active := fs.Bool("active", true, "whether the account is enabled")
	password := fs.String("password", "", "new password, empty keeps the current one")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	return a.users.UpdateUser(ctx, models.UpdateUserRequest{
		ID:       *id,
		Username: *username,
		Roles:    splitRoles(*roles),
		IsActive: *active,
		Password: *password,
	})
}

func (a *App) delete(ctx context.Context, args []string) (any, error) {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.String("id", "", "id of the user")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	resp, err := a.users.DeleteUser(ctx, models.DeleteUserRequest{ID: *id})
	if err != nil {
		return nil, err
	}

	return resp.Message, nil
}

func (a *App) version(ctx context.Context, args []string) (any, error) {
	if err := parseFlags(flag.NewFlagSet("version", flag.ContinueOnError), args); err != nil {
		return nil, err
	}

	return a.users.Version(ctx)
}
