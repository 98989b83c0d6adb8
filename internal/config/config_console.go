package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/token-guard/models"
)

// ConsoleApp holds operator settings.
type ConsoleApp struct {
	AdminUsername string
	AdminPassword string
	Version       string
}

// HasCredentials reports whether basic auth should be sent.
func (a ConsoleApp) HasCredentials() bool {
	return a.AdminUsername != "" && a.AdminPassword != ""
}

// ConsoleAdapter holds admin API client settings.
type ConsoleAdapter struct {
	Address        string
	RequestTimeout time.Duration
	DataSource     string
	Metadata       models.RequestMetadata
}

// EngineConfig holds the settings of one synchronized collection.
type EngineConfig struct {
	PageSize int
	// PollInterval is zero when polling is disabled.
	PollInterval time.Duration
	ClearOnError bool
}

// ConsoleEngines groups per-collection settings.
type ConsoleEngines struct {
	Tokens   EngineConfig
	Policies EngineConfig
	History  EngineConfig
	Geo      EngineConfig
}

// ConsoleConfig is the configuration view used by cmd/console, assembled
// from [StructuredConfig].
type ConsoleConfig struct {
	App        ConsoleApp
	Adapter    ConsoleAdapter
	Engines    ConsoleEngines
	JournalDSN string
	// ServerAddress is empty when the status server is disabled.
	ServerAddress string
	LogLevel      string
	LogPath       string
	PrefsPath     string
}

// GetConsoleConfig builds and validates the console config from args
// (normally os.Args[1:]), the environment and the optional config file.
func GetConsoleConfig(args []string) (*ConsoleConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	consoleCfg := newConsoleConfig(cfg)
	return consoleCfg, consoleCfg.validate()
}

func newConsoleConfig(cfg *StructuredConfig) *ConsoleConfig {
	m := cfg.Adapter.Mutation

	return &ConsoleConfig{
		App: ConsoleApp{
			AdminUsername: cfg.App.AdminUsername,
			AdminPassword: cfg.App.AdminPassword,
			Version:       cfg.App.Version,
		},
		Adapter: ConsoleAdapter{
			Address:        cfg.Adapter.Address,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			DataSource:     cfg.Adapter.DataSource,
			Metadata: models.RequestMetadata{
				TokenClaim: m.TokenClaim,
				UserAgent:  m.UserAgent,
				IP:         m.IP,
				Hostname:   m.Hostname,
				Path:       m.Path,
			},
		},
		Engines: ConsoleEngines{
			Tokens:   engineConfig(cfg.Engines.Tokens),
			Policies: engineConfig(cfg.Engines.Policies),
			History:  engineConfig(cfg.Engines.History),
			Geo:      engineConfig(cfg.Engines.Geo),
		},
		JournalDSN:    cfg.Storage.JournalDSN,
		ServerAddress: cfg.Server.Address,
		LogLevel:      cfg.Log.Level,
		LogPath:       cfg.Log.Path,
		PrefsPath:     cfg.PrefsPath,
	}
}

func engineConfig(e Engine) EngineConfig {
	interval := e.PollInterval
	if interval < 0 {
		interval = 0
	}
	return EngineConfig{PageSize: e.PageSize, PollInterval: interval, ClearOnError: e.ClearOnError}
}

func (cfg *ConsoleConfig) validate() error {
	switch cfg.Adapter.DataSource {
	case DataSourceSynthetic:
	case DataSourceRemote:
		u, err := url.Parse(cfg.Adapter.Address)
		if cfg.Adapter.Address == "" || err != nil || u.Host == "" {
			return fmt.Errorf("%w: bad address %q", ErrInvalidAdapterConfigs, cfg.Adapter.Address)
		}
	default:
		return fmt.Errorf("%w: unknown data source %q", ErrInvalidAdapterConfigs, cfg.Adapter.DataSource)
	}

	if cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidAdapterConfigs)
	}

	for name, e := range map[string]EngineConfig{
		"tokens":   cfg.Engines.Tokens,
		"policies": cfg.Engines.Policies,
		"history":  cfg.Engines.History,
		"geo":      cfg.Engines.Geo,
	} {
		if e.PageSize <= 0 {
			return fmt.Errorf("%w: %s page size must be positive", ErrInvalidEngineConfigs, name)
		}
	}

	if cfg.JournalDSN == "" {
		return ErrInvalidStorageConfigs
	}

	if (cfg.App.AdminUsername == "") != (cfg.App.AdminPassword == "") {
		return fmt.Errorf("%w: username and password must be set together", ErrInvalidAppConfigs)
	}

	return nil
}
