// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from APP_*, ADAPTER_*, ENGINES_*, STORAGE_*, SERVER_*
// and LOG_* variables. Durations use time.ParseDuration syntax.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse console env: %w", err)
	}
	return nil
}
