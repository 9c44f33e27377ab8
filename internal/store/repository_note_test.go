package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistsForUser(t *testing.T) {
	tests := []struct {
		name   string
		result bool
	}{
		{"has notes", true},
		{"no notes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewNoteRepository(newDB(db, migrations.DialectPostgres, NewPostgresErrorClassifier(), logger.Nop()), logger.Nop())

			mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM notes WHERE user_id = $1 )")).
				WithArgs("u1").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.result))

			exists, err := repo.ExistsForUser(context.Background(), "u1")
			require.NoError(t, err)
			assert.Equal(t, tt.result, exists)
		})
	}
}

func TestExistsForUser_SQLitePlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNoteRepository(newDB(db, migrations.DialectSQLite, NewSQLiteErrorClassifier(), logger.Nop()), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM notes WHERE user_id = ? )")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(int64(1)))

	exists, err := repo.ExistsForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExistsForUser_ErrorIsNotNoNotes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNoteRepository(newDB(db, migrations.DialectPostgres, NewPostgresErrorClassifier(), logger.Nop()), logger.Nop())

	mock.ExpectQuery("SELECT EXISTS").WillReturnError(errors.New("connection reset"))

	exists, err := repo.ExistsForUser(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.False(t, exists)
}
