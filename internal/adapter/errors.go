package adapter

import "errors"

// Errors mapped from HTTP status codes of the server.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnavailable         = errors.New("server unavailable")
)

// ErrInvalidAddress is returned by [NewHTTPUserAdapter] for an unusable
// server address.
var ErrInvalidAddress = errors.New("invalid adapter http address")
