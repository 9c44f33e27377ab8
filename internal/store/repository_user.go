package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/utils"
	"github.com/MKhiriev/go-user-keeper/models"
)

// userRepository is the SQL implementation of [UserRepository] shared by
// the PostgreSQL and SQLite connections. Queries are built with squirrel
// using the placeholder format of [DB.Dialect].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db  *DB
	ids IDGenerator
	now func() time.Time
}

// userRow is the column-level form of [models.User]. Roles are kept as JSON
// text so the same schema works for both dialects.
type userRow struct {
	ID           string
	Username     string
	PasswordHash string
	Roles        string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUserRepository constructs a [UserRepository] backed by db. New ids
// are time-ordered UUIDs.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating user repository")
	return &userRepository{
		db:  db,
		ids: utils.NewUUIDGenerator(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// FindAll implements [UserRepository].
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.findAllUsersQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindAll").Msg("error querying users")
		return nil, r.db.translate(err, nil, nil, ErrExecutingQuery)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.FindAll").Msg("error scanning user row")
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.FindAll").Msg("error iterating user rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// FindByID implements [UserRepository].
func (r *userRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return r.findBy(ctx, "id", id)
}

// FindByUsername implements [UserRepository].
func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *userRepository) findBy(ctx context.Context, column, value string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.findUserByQuery(column, value)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findBy").Str("column", column).Msg("error finding user")
		return models.User{}, r.db.translate(err, nil, nil, ErrExecutingQuery)
	}

	return user, nil
}

// Create implements [UserRepository]. The UNIQUE constraint on username is
// reported as [ErrUsernameTaken].
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	user.ID = r.ids.Generate()
	user.CreatedAt = now
	user.UpdatedAt = now

	row, err := toUserRow(user)
	if err != nil {
		return models.User{}, err
	}

	query, args, err := r.db.insertUserQuery(row)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error inserting user")
		return models.User{}, r.db.translate(err, ErrUsernameTaken, nil, ErrExecutingStatement)
	}

	return user, nil
}

// Save implements [UserRepository]. CreatedAt is kept as given; every
// other column is overwritten.
func (r *userRepository) Save(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.UpdatedAt = r.now()

	row, err := toUserRow(user)
	if err != nil {
		return models.User{}, err
	}

	query, args, err := r.db.updateUserQuery(row)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Save").Msg("error updating user")
		return models.User{}, r.db.translate(err, ErrUsernameTaken, nil, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.User{}, ErrUserNotFound
	}

	return user, nil
}

// Delete implements [UserRepository]. The notes foreign key is declared
// ON DELETE RESTRICT, so a user with notes is reported as [ErrUserHasNotes]
// even when the caller skipped the existence check.
func (r *userRepository) Delete(ctx context.Context, user models.User) (models.DeletionReceipt, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.deleteUserQuery(user.ID)
	if err != nil {
		return models.DeletionReceipt{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var receipt models.DeletionReceipt
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&receipt.ID, &receipt.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DeletionReceipt{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Msg("error deleting user")
		return models.DeletionReceipt{}, r.db.translate(err, nil, ErrUserHasNotes, ErrExecutingStatement)
	}

	return receipt, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (models.User, error) {
	var row userRow
	err := s.Scan(&row.ID, &row.Username, &row.PasswordHash, &row.Roles, &row.IsActive, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, err
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	roles, err := decodeRoles(row.Roles)
	if err != nil {
		return models.User{}, err
	}

	return models.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Roles:        roles,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func toUserRow(user models.User) (userRow, error) {
	roles, err := encodeRoles(user.Roles)
	if err != nil {
		return userRow{}, err
	}

	return userRow{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Roles:        roles,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}, nil
}
