package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable = "users"
	notesTable = "notes"
)

// userColumns lists the users columns in the order scanned by [scanUser].
var userColumns = []string{"id", "username", "password_hash", "roles", "is_active", "created_at", "updated_at"}

func (db *DB) selectUsers() sq.SelectBuilder {
	return db.builder.Select(userColumns...).From(usersTable)
}

func (db *DB) findAllUsersQuery() (string, []any, error) {
	return db.selectUsers().OrderBy("username ASC").ToSql()
}

func (db *DB) findUserByQuery(column, value string) (string, []any, error) {
	return db.selectUsers().Where(sq.Eq{column: value}).ToSql()
}

func (db *DB) insertUserQuery(row userRow) (string, []any, error) {
	return db.builder.
		Insert(usersTable).
		Columns(userColumns...).
		Values(row.ID, row.Username, row.PasswordHash, row.Roles, row.IsActive, row.CreatedAt, row.UpdatedAt).
		ToSql()
}

func (db *DB) updateUserQuery(row userRow) (string, []any, error) {
	return db.builder.
		Update(usersTable).
		Set("username", row.Username).
		Set("password_hash", row.PasswordHash).
		Set("roles", row.Roles).
		Set("is_active", row.IsActive).
		Set("updated_at", row.UpdatedAt).
		Where(sq.Eq{"id": row.ID}).
		ToSql()
}

func (db *DB) deleteUserQuery(id string) (string, []any, error) {
	return db.builder.
		Delete(usersTable).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, username").
		ToSql()
}

func (db *DB) noteExistsQuery(userID string) (string, []any, error) {
	return db.builder.
		Select("1").
		From(notesTable).
		Where(sq.Eq{"user_id": userID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
}

// encodeRoles stores roles as a JSON array in a TEXT column.
func encodeRoles(roles []string) (string, error) {
	if roles == nil {
		roles = []string{}
	}

	b, err := json.Marshal(roles)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingRoles, err)
	}
	return string(b), nil
}

func decodeRoles(raw string) ([]string, error) {
	var roles []string
	if err := json.Unmarshal([]byte(raw), &roles); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingRoles, err)
	}
	return roles, nil
}
