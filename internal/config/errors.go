package config

import "errors"

// Validation errors returned by [ConsoleConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid admin API settings
	// (for example, an unknown data source or an empty address).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidEngineConfigs indicates a non-positive page size.
	ErrInvalidEngineConfigs = errors.New("invalid engine configuration")
	// ErrInvalidStorageConfigs indicates an empty journal DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates incomplete operator credentials.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
