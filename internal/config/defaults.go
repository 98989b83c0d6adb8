// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Data sources accepted by Adapter.DataSource.
const (
	DataSourceRemote    = "remote"
	DataSourceSynthetic = "synthetic"
)

const (
	defaultAddress    = "http://localhost:8080"
	defaultJournalDSN = "token-guard.db"
	defaultPrefsPath  = "~/.config/token-guard/prefs.toml"
	defaultLogLevel   = "info"
	defaultVersion    = "dev"
)

func defaults() *StructuredConfig {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}

	return &StructuredConfig{
		App: App{Version: defaultVersion},
		Adapter: Adapter{
			Address:    defaultAddress,
			DataSource: DataSourceRemote,
			Mutation: Mutation{
				TokenClaim: "unknown",
				UserAgent:  "token-guard-console",
				IP:         "127.0.0.1",
				Hostname:   hostname,
				Path:       "/",
			},
		},
		Engines: Engines{
			Tokens:   Engine{PageSize: 10, PollInterval: 3 * time.Second},
			Policies: Engine{PageSize: 10, PollInterval: -1},
			History:  Engine{PageSize: 20, PollInterval: 10 * time.Second},
			Geo:      Engine{PageSize: 50, PollInterval: -1},
		},
		Storage:   Storage{JournalDSN: defaultJournalDSN},
		Log:       Log{Level: defaultLogLevel},
		PrefsPath: defaultPrefsPath,
	}
}
