package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameTaken is returned when a create or save would leave two
	// users with the same username. The SQL stores derive it from the
	// UNIQUE constraint, the in-memory store from its own index.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrUserNotFound is returned when no user matches the given id or
	// username.
	ErrUserNotFound = errors.New("user was not found")

	// ErrUserHasNotes is returned when a user cannot be removed because at
	// least one note still references it.
	ErrUserHasNotes = errors.New("user is referenced by notes")

	// ErrTransient is returned for failures that may succeed when retried:
	// lost connections, serialization failures, a busy SQLite file.
	ErrTransient = errors.New("transient storage failure")

	// ErrUnknownDriver is returned by [NewStorages] for an unsupported
	// driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan user row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan user rows")

	// ErrEncodingRoles is returned when the roles column cannot be
	// converted to or from its JSON text form.
	ErrEncodingRoles = errors.New("failed to encode roles")
)
