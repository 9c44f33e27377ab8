// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of user lifecycle requests.
//
// A [Validator] reports the first violated rule as one of the sentinel
// errors in errors.go. Passing field names ([FieldID], [FieldUsername],
// [FieldPassword], [FieldRoles]) restricts the check to those fields, so an
// update can validate username and roles without requiring a password.
//
// Validators only look at the request itself. Rules that need stored state,
// such as username uniqueness, belong to the service layer.
package validators

import "context"

// Validator validates request values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to the named fields.
	Validate(context.Context, any, ...string) error
}
