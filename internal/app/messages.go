// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the go-user-keeper server
// handlers and the admin client.
//
// Msg* constants are written into HTTP response bodies. Format constants take
// the username as their only argument.
package app

const (
	// MsgUserCreatedFormat confirms a successful create.
	MsgUserCreatedFormat = "New User %s created"

	// MsgUserUpdatedFormat confirms a successful update.
	MsgUserUpdatedFormat = "User: %s has been updated"

	// MsgInternalServerError hides unexpected server-side failures from the
	// caller.
	MsgInternalServerError = "internal server error"

	// MsgRequestTimedOut is returned when a request exceeded the configured
	// server timeout.
	MsgRequestTimedOut = "request timed out"

	// MsgNoUsersFound is printed by the admin client for an empty listing.
	MsgNoUsersFound = "no users found"
)
