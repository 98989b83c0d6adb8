package store

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/token-guard/models"
	sq "github.com/Masterminds/squirrel"
)

const journalTable = "journal"

var journalColumns = []string{"id", "action", "engine", "targets", "outcome", "message", "created_at"}

// buildInsertJournalQuery builds the INSERT for one entry. Targets are
// stored as a JSON array.
func buildInsertJournalQuery(b sq.StatementBuilderType, entry models.JournalEntry) (string, []any, error) {
	targets := entry.Targets
	if targets == nil {
		targets = []string{}
	}
	encoded, err := json.Marshal(targets)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrEncodingTargets, err)
	}

	return b.Insert(journalTable).
		Columns(journalColumns...).
		Values(
			entry.ID,
			string(entry.Action),
			entry.Engine,
			string(encoded),
			string(entry.Outcome),
			entry.Message,
			entry.CreatedAt.UTC(),
		).
		ToSql()
}

// buildListJournalQuery builds the SELECT for filter, newest first. Zero
// filter fields are not constrained.
func buildListJournalQuery(b sq.StatementBuilderType, filter models.JournalFilter) (string, []any, error) {
	q := b.Select(journalColumns...).
		From(journalTable).
		OrderBy("created_at DESC", "id DESC")

	eq := sq.Eq{}
	if filter.Engine != "" {
		eq["engine"] = filter.Engine
	}
	if filter.Action != "" {
		eq["action"] = string(filter.Action)
	}
	if filter.Outcome != "" {
		eq["outcome"] = string(filter.Outcome)
	}
	if len(eq) > 0 {
		q = q.Where(eq)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	return q.ToSql()
}
