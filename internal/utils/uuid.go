package utils

import "github.com/google/uuid"

// UUIDGenerator produces string identifiers for new records: time-ordered
// UUIDv7 values, or a random UUIDv4 if the clock source fails.
type UUIDGenerator struct{}

// NewUUIDGenerator returns a ready to use [UUIDGenerator].
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new canonical UUID string.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
