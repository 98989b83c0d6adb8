// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// HistoryLogItem is a single audit record from GET /HistoryLogs.
type HistoryLogItem struct {
	ID        string          `json:"id"`
	Timestamp string          `json:"timestamp"`
	Type      string          `json:"type"`
	Token     string          `json:"token"`
	Reason    string          `json:"reason"`
	By        string          `json:"by"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// EntryID returns the log record id.
func (h HistoryLogItem) EntryID() string {
	return h.ID
}

// DetailsText renders Details as a single line. Strings are unquoted,
// objects are kept as compact JSON.
func (h HistoryLogItem) DetailsText() string {
	raw := strings.TrimSpace(string(h.Details))
	if raw == "" || raw == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(h.Details, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return raw
	}
	return buf.String()
}

// SortHistoryNewestFirst orders items by Timestamp descending. Timestamps are
// RFC 3339 strings, so lexical order matches chronological order.
func SortHistoryNewestFirst(items []HistoryLogItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
}
