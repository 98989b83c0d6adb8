package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/models"
)

// journalRepository is the SQL implementation of [JournalRepository] for both
// SQLite and PostgreSQL.
type journalRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewJournalRepository constructs a [JournalRepository] on db.
func NewJournalRepository(db *DB, logger *logger.Logger) JournalRepository {
	logger.Debug().Str("driver", db.driver).Msg("creating journal repository")
	return &journalRepository{
		db:     db,
		logger: logger,
	}
}

// Record inserts entry. A transient failure (busy SQLite file, postgres
// connection reset) is retried once. Re-recording an existing id is a no-op.
func (r *journalRepository) Record(ctx context.Context, entry models.JournalEntry) error {
	if entry.ID == "" || entry.Action == "" || entry.CreatedAt.IsZero() {
		return ErrInvalidJournalEntry
	}

	query, args, err := buildInsertJournalQuery(r.db.statementBuilder(), entry)
	if err != nil {
		r.logger.Err(err).Str("func", "*journalRepository.Record").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil && r.db.retryable(err) {
		r.logger.Warn().Err(err).Str("func", "*journalRepository.Record").Msg("retrying journal insert")
		result, err = r.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		if isDuplicateKey(err) {
			return nil
		}
		r.logger.Err(err).Str("func", "*journalRepository.Record").Msg("error inserting journal entry")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrJournalNotSaved
	}

	return nil
}

// List returns entries matching filter, newest first.
func (r *journalRepository) List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error) {
	query, args, err := buildListJournalQuery(r.db.statementBuilder(), filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "*journalRepository.List").Msg("error listing journal")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0)
	for rows.Next() {
		var (
			entry            models.JournalEntry
			action, outcome  string
			targets, message string
			createdAt        time.Time
		)
		if err = rows.Scan(&entry.ID, &action, &entry.Engine, &targets, &outcome, &message, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err = json.Unmarshal([]byte(targets), &entry.Targets); err != nil {
			return nil, fmt.Errorf("%w: decode targets: %w", ErrScanningRows, err)
		}
		entry.Action = models.JournalAction(action)
		entry.Outcome = models.JournalOutcome(outcome)
		entry.Message = message
		entry.CreatedAt = createdAt.UTC()
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func isDuplicateKey(err error) bool {
	if postgresError(err) == pgerrcode.UniqueViolation {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
