// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TokensResponse is the envelope of GET /AdminUsers.
type TokensResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message,omitempty"`
	Tokens  []TokenActivity `json:"tokens"`
}

// PoliciesResponse is the envelope of GET /PolicyResource.
type PoliciesResponse struct {
	Status   int      `json:"status"`
	Message  string   `json:"message,omitempty"`
	Policies []Policy `json:"policies"`
}

// HistoryResponse is the envelope of GET /HistoryLogs.
type HistoryResponse struct {
	Status  int              `json:"status"`
	Message string           `json:"message,omitempty"`
	Data    []HistoryLogItem `json:"data"`
}

// GeoLocationsResponse is the envelope of GET /GeoLocation.
type GeoLocationsResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message,omitempty"`
	Data    []string `json:"data"`
}

// StatusResponse is the optional body of mutating endpoints.
type StatusResponse struct {
	Status  *int   `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body the remote API sends with non-2xx statuses.
type ErrorResponse struct {
	Message string `json:"message"`
}

// BanRequest is the body of POST /BanToken and POST /UnbanToken.
//
// Only Token is operator supplied; the request metadata fields are filled
// from configuration (see RequestMetadata).
type BanRequest struct {
	Token            string `json:"token"`
	TokenClaim       string `json:"token_claim"`
	RequestUserAgent string `json:"request_useragent"`
	RequestIP        string `json:"request_ip"`
	RequestHostname  string `json:"request_hostname"`
	RequestPath      string `json:"request_path"`
}

// RequestMetadata holds the placeholder request fields sent with ban and
// unban calls.
type RequestMetadata struct {
	TokenClaim string
	UserAgent  string
	IP         string
	Hostname   string
	Path       string
}

// PolicyIDRequest is the body of POST /PolicyEnable and POST /PolicyDisable.
type PolicyIDRequest struct {
	ID string `json:"id"`
}

// ApplyPolicyRequest is the body of POST /ApplyPolicyToToken.
type ApplyPolicyRequest struct {
	Token string `json:"token"`
}

// GeoLocationsRequest is the body of PUT /GeoLocation.
type GeoLocationsRequest struct {
	Locations []string `json:"locations"`
}
