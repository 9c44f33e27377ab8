package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
)

// Storages groups the repositories consumed by the service layer.
type Storages struct {
	UserRepository UserRepository
	NoteRepository NoteRepository

	close func() error
}

// NewStorages connects the backend selected by cfg.DB.Driver, applies the
// schema migrations for SQL backends and builds the repositories on top of
// it.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Info().Str("func", "NewStorages").Msg("using in-memory storage")
		mem := NewMemoryStorage()
		return &Storages{
			UserRepository: mem,
			NoteRepository: mem,
			close:          func() error { return nil },
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		connect := NewConnectPostgres
		if cfg.DB.Driver == config.DriverSQLite {
			connect = NewConnectSQLite
		}

		db, err := connect(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}

		if err := db.Migrate(ctx); err != nil {
			log.Err(err).Str("func", "NewStorages").Msg("error migrating database")
			_ = db.Close()
			return nil, err
		}

		return NewSQLStorages(db, log), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}
}

// NewSQLStorages builds the SQL repositories on an already connected db.
func NewSQLStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, log),
		NoteRepository: NewNoteRepository(db, log),
		close:          db.Close,
	}
}

// Close releases the underlying connection pool, if any.
func (s *Storages) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
