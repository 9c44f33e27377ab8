// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result type returned by
// [ErrorClassifier.Classify]. It tells a repository which sentinel, if any,
// a failed driver call maps to.
type ErrorClassification int

const (
	// Unclassified covers every error with no dedicated sentinel. It is the
	// default for unrecognised errors, syntax errors and data exceptions.
	Unclassified ErrorClassification = iota

	// UniqueViolation marks a UNIQUE or PRIMARY KEY constraint violation.
	UniqueViolation

	// ForeignKeyViolation marks a FOREIGN KEY or RESTRICT violation, e.g.
	// deleting a user that notes still reference.
	ForeignKeyViolation

	// Retryable marks failures that may succeed if attempted again
	// (lost connection, deadlock, serialization failure, busy database).
	Retryable
)

// ErrorClassifier maps driver-specific errors to an [ErrorClassification].
type ErrorClassifier interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier implements [ErrorClassifier] for PostgreSQL.
// It inspects the SQLSTATE carried by *pgconn.PgError.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassifier]. See
// https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// codes.
//
//   - 23505 → UniqueViolation
//   - 23503, 23001 → ForeignKeyViolation
//   - Class 08, 40000, 40001, 40P01, 57P03 → Retryable
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return Unclassified
	}

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return UniqueViolation

	case pgerrcode.ForeignKeyViolation,
		pgerrcode.RestrictViolation:
		return ForeignKeyViolation

	// Class 08: connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Retryable

	// Class 40: transaction rollback
	case pgerrcode.TransactionRollback, // 40000
		pgerrcode.SerializationFailure, // 40001
		pgerrcode.DeadlockDetected:     // 40P01
		return Retryable

	// Class 57: operator intervention
	case pgerrcode.CannotConnectNow: // 57P03
		return Retryable
	}

	return Unclassified
}

// SQLiteErrorClassifier implements [ErrorClassifier] for go-sqlite3 errors.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassifier].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return Unclassified
	}

	code, extended := sqliteError(err)
	switch extended {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return UniqueViolation
	// ON DELETE RESTRICT is enforced as a trigger constraint (1811), the
	// other foreign key failures report 787.
	case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintTrigger:
		return ForeignKeyViolation
	}

	switch code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	}

	return Unclassified
}

// translate wraps err with the sentinel matching its classification.
// onUnique and onForeignKey let the caller pick the domain sentinel for the
// two constraint classes; fallback wraps everything else.
func (db *DB) translate(err error, onUnique, onForeignKey, fallback error) error {
	switch db.errorClassifier.Classify(err) {
	case UniqueViolation:
		if onUnique != nil {
			return onUnique
		}
	case ForeignKeyViolation:
		if onForeignKey != nil {
			return onForeignKey
		}
	case Retryable:
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}

	return fmt.Errorf("%w: %w", fallback, err)
}
