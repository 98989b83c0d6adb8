// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks operator input before it reaches the admin API.
//
// A Validator accepts arbitrary values. Plain strings are ambiguous, so the
// caller names the field being validated (for example [FieldToken]); typed
// values such as models.GeoLocation are recognised on their own.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
