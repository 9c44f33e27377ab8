package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-keeper/internal/store"
)

type integrityGuard struct {
	notes store.NoteRepository
}

// NewIntegrityGuard returns an [IntegrityGuard] that forbids deleting users
// still referenced by notes.
func NewIntegrityGuard(notes store.NoteRepository) IntegrityGuard {
	return &integrityGuard{notes: notes}
}

// CanDelete implements [IntegrityGuard]. It queries the note store on
// every call; notes change concurrently, so the answer is never cached.
func (g *integrityGuard) CanDelete(ctx context.Context, userID string) (bool, error) {
	exists, err := g.notes.ExistsForUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("error checking notes of user %q: %w", userID, mapStoreError(err))
	}

	return !exists, nil
}
