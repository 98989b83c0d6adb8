// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// JournalAction names an operator action recorded in the local journal.
type JournalAction string

const (
	ActionBan         JournalAction = "ban"
	ActionUnban       JournalAction = "unban"
	ActionApplyPolicy JournalAction = "apply_policy"
	ActionEnable      JournalAction = "policy_enable"
	ActionDisable     JournalAction = "policy_disable"
	ActionUpdateGeo   JournalAction = "geo_update"
	ActionRefresh     JournalAction = "refresh"
	ActionBanBatch    JournalAction = "ban_batch"
	ActionUnbanBatch  JournalAction = "unban_batch"
)

// JournalOutcome is the result of a journaled action.
type JournalOutcome string

const (
	OutcomeOK      JournalOutcome = "ok"
	OutcomeFailed  JournalOutcome = "failed"
	OutcomeAborted JournalOutcome = "aborted"
)

// JournalEntry is one row of the operator journal.
type JournalEntry struct {
	ID        string         `json:"id"`
	Action    JournalAction  `json:"action"`
	Engine    string         `json:"engine"`
	Targets   []string       `json:"targets"`
	Outcome   JournalOutcome `json:"outcome"`
	Message   string         `json:"message,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// JournalFilter narrows [JournalEntry] listings. Zero values are ignored.
type JournalFilter struct {
	Engine  string
	Action  JournalAction
	Outcome JournalOutcome
	Limit   uint64
}
