package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/token-guard/internal/logger"
)

// Storages groups the console's persistent repositories.
type Storages struct {
	JournalRepository JournalRepository

	db *DB
}

// NewStorages opens the journal database named by dsn, applies migrations
// and builds the repositories.
func NewStorages(ctx context.Context, dsn string, log *logger.Logger) (*Storages, error) {
	db, err := Open(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		JournalRepository: NewJournalRepository(db, log),
		db:                db,
	}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
