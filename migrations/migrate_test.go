// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the db itself, no expectations means every query fails

	err = Migrate(context.Background(), db, DialectPostgres)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(context.Background(), db, DialectPostgres)
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(context.Background(), db, "mysql")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestEmbeddedMigrations_EveryDialectHasSameVersions(t *testing.T) {
	pg, err := fs.Glob(embedMigrations, "postgres/*.sql")
	require.NoError(t, err)
	lite, err := fs.Glob(embedMigrations, "sqlite/*.sql")
	require.NoError(t, err)

	require.NotEmpty(t, pg)
	require.Len(t, lite, len(pg))

	for i := range pg {
		assert.Equal(t, strings.TrimPrefix(pg[i], "postgres/"), strings.TrimPrefix(lite[i], "sqlite/"))
	}
}

func TestMigrate_SQLiteAppliesSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:"+t.Name()+"?mode=memory&_foreign_keys=on")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, DialectSQLite))

	// idempotent
	require.NoError(t, Migrate(ctx, db, DialectSQLite))

	_, err = db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, roles) VALUES ('u1', 'alice', 'h', '["editor"]')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, roles) VALUES ('u2', 'alice', 'h', '["editor"]')`)
	assert.Error(t, err, "username must be unique")

	_, err = db.ExecContext(ctx, `INSERT INTO notes (id, user_id, title) VALUES ('n1', 'u1', 'todo')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `DELETE FROM users WHERE id = 'u1'`)
	assert.Error(t, err, "notes must block deleting their user")
}
