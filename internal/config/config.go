// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// token-guard console. It is populated by merging environment variables,
// command-line flags, an optional JSON or YAML file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds operator credentials and the application version.
	App App `envPrefix:"APP_"`

	// Adapter holds the admin API address, request timeout, data source
	// and the placeholder metadata sent with ban requests.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Engines holds per-collection pagination and polling settings.
	Engines Engines `envPrefix:"ENGINES_"`

	// Storage holds the operator journal database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the optional status server address.
	Server Server `envPrefix:"SERVER_"`

	// Log holds log level and file settings.
	Log Log `envPrefix:"LOG_"`

	// PrefsPath is the TOML file with UI preferences.
	// Env: PREFS_PATH
	PrefsPath string `env:"PREFS_PATH"`

	// ConfigFilePath is the optional path to a JSON or YAML configuration
	// file, chosen by extension. Populated via the CONFIG environment
	// variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds operator credentials sent as HTTP basic auth.
type App struct {
	// Env: APP_ADMIN_USERNAME
	AdminUsername string `env:"ADMIN_USERNAME"`
	// Env: APP_ADMIN_PASSWORD
	AdminPassword string `env:"ADMIN_PASSWORD"`
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds settings of the admin API client.
type Adapter struct {
	// Address is the admin API base URL (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound call. Zero means no client-side
	// timeout.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// DataSource selects "remote" (the admin API) or "synthetic" (an
	// in-memory random walk, no network).
	// Env: ADAPTER_DATA_SOURCE
	DataSource string `env:"DATA_SOURCE"`

	// Mutation holds the request metadata sent with ban and unban calls.
	Mutation Mutation `envPrefix:"MUTATION_"`
}

// Mutation holds the placeholder request metadata of ban/unban calls.
type Mutation struct {
	// TokenClaim is used when the token is not a JWT with a subject.
	// Env: ADAPTER_MUTATION_TOKEN_CLAIM
	TokenClaim string `env:"TOKEN_CLAIM"`
	// Env: ADAPTER_MUTATION_USER_AGENT
	UserAgent string `env:"USER_AGENT"`
	// Env: ADAPTER_MUTATION_IP
	IP string `env:"IP"`
	// Env: ADAPTER_MUTATION_HOSTNAME
	Hostname string `env:"HOSTNAME"`
	// Env: ADAPTER_MUTATION_PATH
	Path string `env:"PATH"`
}

// Engines groups the per-collection settings.
type Engines struct {
	Tokens   Engine `envPrefix:"TOKENS_"`
	Policies Engine `envPrefix:"POLICIES_"`
	History  Engine `envPrefix:"HISTORY_"`
	Geo      Engine `envPrefix:"GEO_"`
}

// Engine holds the settings of one synchronized collection.
type Engine struct {
	// PageSize is the number of rows per page.
	// Env: ENGINES_<NAME>_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// PollInterval is the background refresh period. A negative value
	// disables polling; zero takes the default.
	// Env: ENGINES_<NAME>_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// ClearOnError empties the collection when a foreground fetch fails.
	// Env: ENGINES_<NAME>_CLEAR_ON_ERROR
	ClearOnError bool `env:"CLEAR_ON_ERROR"`
}

// Storage holds the operator journal settings.
type Storage struct {
	// JournalDSN is a SQLite file path or a postgres:// URL.
	// Env: STORAGE_JOURNAL_DSN
	JournalDSN string `env:"JOURNAL_DSN"`
}

// Server holds the status server settings.
type Server struct {
	// Address in "host:port" form. Empty disables the server.
	// Env: SERVER_ADDRESS
	Address string `env:"ADDRESS"`
}

// Log holds logging settings.
type Log struct {
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
	// Path of the log file. Empty means a file next to the executable.
	// Env: LOG_PATH
	Path string `env:"PATH"`
}

// GetStructuredConfig loads and merges the configuration from all sources.
// For every field the first non-zero value wins, in this order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or YAML file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withFile().
		withDefaults().
		build()
}
