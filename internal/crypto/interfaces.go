package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into one-way salted hashes and
// checks plaintext candidates against them.
//
// The hash is self-describing: salt and work factor are encoded in it, so
// Verify needs nothing but the stored value.
type PasswordHasher interface {
	// Hash returns a salted hash of plaintext. Each call produces a
	// different value for the same input. A failure of the underlying
	// primitive is reported as an error wrapping [ErrHashingFailure].
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A malformed hash
	// never matches.
	Verify(plaintext, hash string) bool
}
