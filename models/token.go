// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Token status values reported by GET /AdminUsers. The remote service may
// also report other values (for example "ok"); everything that is not
// [TokenStatusBanned] is treated as active.
const (
	TokenStatusActive = "active"
	TokenStatusBanned = "banned"
)

// TokenActivity is one row of the tokens collection: a bearer token, the
// user it belongs to and its rolling request counters.
//
// The token string itself is the identifier of the row.
type TokenActivity struct {
	Username        string `json:"username"`
	Token           string `json:"token"`
	Status          string `json:"status"`
	AccessCount1m   int    `json:"access_count_1m"`
	AccessCount5m   int    `json:"access_count_5m"`
	AccessCount15m  int    `json:"access_count_15m"`
	ConcurrentUsers int    `json:"concurrent_users"`
}

// EntryID returns the token string.
func (t TokenActivity) EntryID() string {
	return t.Token
}

// Banned reports whether the token is currently banned.
func (t TokenActivity) Banned() bool {
	return t.Status == TokenStatusBanned
}

// WithStatus returns a copy of t with Status replaced.
func (t TokenActivity) WithStatus(status string) TokenActivity {
	t.Status = status
	return t
}

// ActivityLevel classifies a counter against a warning/critical pair.
type ActivityLevel int

const (
	LevelNormal ActivityLevel = iota
	LevelWarning
	LevelCritical
)

// Threshold is a warning/critical pair. A value at or above Critical is
// critical, at or above Warning is a warning.
type Threshold struct {
	Warning  int
	Critical int
}

// Level classifies v.
func (th Threshold) Level(v int) ActivityLevel {
	switch {
	case v >= th.Critical:
		return LevelCritical
	case v >= th.Warning:
		return LevelWarning
	default:
		return LevelNormal
	}
}

// Default thresholds used by the console when colouring token counters.
var (
	ConcurrentUsersThreshold = Threshold{Warning: 3, Critical: 5}
	Access1mThreshold        = Threshold{Warning: 10, Critical: 20}
	Access5mThreshold        = Threshold{Warning: 30, Critical: 60}
	Access15mThreshold       = Threshold{Warning: 100, Critical: 150}
)
