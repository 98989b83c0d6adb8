// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// ErrNoStatusAddress is returned by NewServer when the status server is
// disabled.
var (
	ErrNoStatusAddress = errors.New("status server address is empty")
)
