// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"

	"github.com/MKhiriev/go-user-keeper/internal/app"
)

var (
	// ErrInvalidJSON is reported when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// errInternal is the only text a client sees for unexpected failures.
	errInternal = errors.New(app.MsgInternalServerError)

	errRequestTimeout = errors.New(app.MsgRequestTimedOut)
)
