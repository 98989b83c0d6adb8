// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// PolicyKind is derived from the policy identifier prefix.
type PolicyKind string

const (
	PolicyKindAuto    PolicyKind = "auto"
	PolicyKindDemo    PolicyKind = "demo"
	PolicyKindDefault PolicyKind = "default"
)

// Policy is one automated mitigation rule as returned by GET /PolicyResource.
//
// Timestamps are kept as the opaque strings the remote API sends.
type Policy struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Active         bool   `json:"active"`
	MaxConcurrent  int    `json:"max_concurrent"`
	AutoBanEnabled bool   `json:"auto_ban_enabled"`
	GeoBanEnabled  bool   `json:"geo_ban_enabled"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// EntryID returns the policy id.
func (p Policy) EntryID() string {
	return p.ID
}

// Kind returns the policy kind encoded in its id ("auto_..." or "demo_...").
func (p Policy) Kind() PolicyKind {
	switch {
	case strings.HasPrefix(p.ID, "auto_"):
		return PolicyKindAuto
	case strings.HasPrefix(p.ID, "demo_"):
		return PolicyKindDemo
	default:
		return PolicyKindDefault
	}
}

// WithActive returns a copy of p with Active replaced.
func (p Policy) WithActive(active bool) Policy {
	p.Active = active
	return p
}
