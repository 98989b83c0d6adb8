// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/token-guard/internal/validators"
)

var (
	// ErrEmptySelection is returned by batch actions called without targets.
	ErrEmptySelection = errors.New("no entries selected")

	// ErrUnknownToken is returned by ToggleBan when the token is not in the
	// current collection, so its state cannot be toggled.
	ErrUnknownToken = errors.New("token is not in the current list")

	// ErrUnknownPolicy is the Toggle counterpart of ErrUnknownToken.
	ErrUnknownPolicy = errors.New("policy is not in the current list")

	// ErrInvalidGeoLocation is returned for an empty location code or one
	// containing whitespace or commas.
	ErrInvalidGeoLocation = validators.ErrInvalidGeoLocation

	// ErrJournalDisabled is returned by the journal service when no journal
	// storage is configured.
	ErrJournalDisabled = errors.New("operator journal is disabled")
)
