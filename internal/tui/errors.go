// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/token-guard/internal/adapter"
)

// humanizeError turns transport noise into something an operator can act
// on. Server supplied messages are shown verbatim.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return "Unauthorized: check the admin username and password"
	case errors.Is(err, adapter.ErrInvalidResponse):
		return "The admin API sent an invalid response structure"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Network unavailable or the admin API is unreachable"
	}

	return err.Error()
}
