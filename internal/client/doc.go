// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the admin client runtime.
//
// [App] parses a subcommand (list, create, update, delete, version) with its
// own flags, calls the server through an [adapter.UserAdapter] and prints the
// server's answer as indented JSON.
package client
