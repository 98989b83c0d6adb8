package store

import "errors"

// Sentinel errors returned by the journal repository. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrJournalNotSaved is returned when an INSERT completes without error
	// but affects no rows.
	ErrJournalNotSaved = errors.New("journal entry was not saved")

	// ErrInvalidJournalEntry is returned for entries without an id, action or
	// timestamp.
	ErrInvalidJournalEntry = errors.New("invalid journal entry")

	// ErrUnsupportedDSN is returned when the DSN names neither a SQLite file
	// nor a postgres URL.
	ErrUnsupportedDSN = errors.New("unsupported journal dsn")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery = errors.New("error building sql query")
	ErrExecutingQuery   = errors.New("error executing sql query")
	ErrScanningRows     = errors.New("failed to scan journal rows")
	ErrEncodingTargets  = errors.New("failed to encode journal targets")
)
