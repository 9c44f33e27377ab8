// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/migrations"
)

// DB is a database handle bound to one SQL dialect. It carries the query
// builder with the dialect's placeholder format and the classifier that
// turns driver errors into repository sentinels.
type DB struct {
	*sql.DB
	dialect         string
	builder         sq.StatementBuilderType
	errorClassifier ErrorClassifier
	logger          *logger.Logger
}

func newDB(conn *sql.DB, dialect string, classifier ErrorClassifier, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == migrations.DialectPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:              conn,
		dialect:         dialect,
		builder:         sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassifier: classifier,
		logger:          log,
	}
}

// Dialect returns the migrations dialect of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies the embedded schema migrations of the connection's
// dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}
