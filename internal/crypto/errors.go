package crypto

import "errors"

var (
	ErrHashingFailure = errors.New("password hashing failed")
	ErrInvalidCost    = errors.New("invalid hash cost")
)
