// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists the operator journal: one row per console action
// (ban, unban, policy toggle, geo update, manual refresh) with its outcome.
//
// The journal lives in a SQLite file by default; a postgres:// DSN opens it
// through pgx instead. The schema is applied with goose on open.
package store

import (
	"context"

	"github.com/MKhiriev/token-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/journal_repository_mock.go -package=mock

// JournalRepository records and lists operator actions.
type JournalRepository interface {
	// Record stores entry. ID and CreatedAt must already be set.
	Record(ctx context.Context, entry models.JournalEntry) error

	// List returns entries matching filter, newest first.
	List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error)
}
