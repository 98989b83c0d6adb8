// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the status
// server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
package app

const (
	// MsgUnknownEngine is returned when /api/engines/{name} names an engine
	// the console does not run.
	MsgUnknownEngine = "unknown engine"

	// MsgInvalidLimit is returned when the journal limit query parameter is
	// not a positive integer.
	MsgInvalidLimit = "limit must be a positive integer"

	// MsgJournalUnavailable is returned when the journal database cannot be
	// queried.
	MsgJournalUnavailable = "journal unavailable"
)

// Health states reported by /healthz.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)
