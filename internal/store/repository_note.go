package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-keeper/internal/logger"
)

// noteRepository is the SQL implementation of [NoteRepository].
type noteRepository struct {
	db *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by db.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating note repository")
	return &noteRepository{db: db}
}

// ExistsForUser implements [NoteRepository] with a single SELECT EXISTS, so
// a failing query is never mistaken for "no notes".
func (r *noteRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	query, args, err := r.db.noteExistsQuery(userID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*noteRepository.ExistsForUser").Msg("error checking notes of user")
		return false, r.db.translate(err, nil, nil, ErrExecutingQuery)
	}

	return exists, nil
}
