package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the journal repository whether a failed insert
// may be retried once.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// journalRetryCodes are the postgres codes after which a second journal
// insert can succeed: a dropped connection, a server that is starting up,
// or a rolled back transaction.
var journalRetryCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.CannotConnectNow:       {},
	pgerrcode.TransactionRollback:    {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
}

type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify reports Retryable only for postgres errors in journalRetryCodes.
// Constraint violations are not retried; duplicates are handled by the
// repository as already recorded.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}
	if _, ok := journalRetryCodes[pgErr.Code]; ok {
		return Retryable
	}
	return NonRetryable
}
