package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type fileEngine struct {
	PageSize     int      `json:"page_size" yaml:"page_size"`
	PollInterval Duration `json:"poll_interval" yaml:"poll_interval"`
	ClearOnError bool     `json:"clear_on_error" yaml:"clear_on_error"`
}

func (e fileEngine) toEngine() Engine {
	return Engine{
		PageSize:     e.PageSize,
		PollInterval: time.Duration(e.PollInterval),
		ClearOnError: e.ClearOnError,
	}
}

// structuredFileConfig mirrors [StructuredConfig] with json/yaml tags.
type structuredFileConfig struct {
	App struct {
		AdminUsername string `json:"admin_username" yaml:"admin_username"`
		AdminPassword string `json:"admin_password" yaml:"admin_password"`
		Version       string `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Adapter struct {
		Address        string   `json:"address" yaml:"address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		DataSource     string   `json:"data_source" yaml:"data_source"`
		Mutation       struct {
			TokenClaim string `json:"token_claim" yaml:"token_claim"`
			UserAgent  string `json:"user_agent" yaml:"user_agent"`
			IP         string `json:"ip" yaml:"ip"`
			Hostname   string `json:"hostname" yaml:"hostname"`
			Path       string `json:"path" yaml:"path"`
		} `json:"mutation" yaml:"mutation"`
	} `json:"adapter" yaml:"adapter"`

	Engines struct {
		Tokens   fileEngine `json:"tokens" yaml:"tokens"`
		Policies fileEngine `json:"policies" yaml:"policies"`
		History  fileEngine `json:"history" yaml:"history"`
		Geo      fileEngine `json:"geo" yaml:"geo"`
	} `json:"engines" yaml:"engines"`

	Storage struct {
		JournalDSN string `json:"journal_dsn" yaml:"journal_dsn"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		Address string `json:"address" yaml:"address"`
	} `json:"server" yaml:"server"`

	Log struct {
		Level string `json:"level" yaml:"level"`
		Path  string `json:"path" yaml:"path"`
	} `json:"log" yaml:"log"`

	PrefsPath string `json:"prefs_path" yaml:"prefs_path"`
}

// parseFile reads a JSON or YAML config file. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc structuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return &StructuredConfig{
		App: App{
			AdminUsername: fc.App.AdminUsername,
			AdminPassword: fc.App.AdminPassword,
			Version:       fc.App.Version,
		},
		Adapter: Adapter{
			Address:        fc.Adapter.Address,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
			DataSource:     fc.Adapter.DataSource,
			Mutation: Mutation{
				TokenClaim: fc.Adapter.Mutation.TokenClaim,
				UserAgent:  fc.Adapter.Mutation.UserAgent,
				IP:         fc.Adapter.Mutation.IP,
				Hostname:   fc.Adapter.Mutation.Hostname,
				Path:       fc.Adapter.Mutation.Path,
			},
		},
		Engines: Engines{
			Tokens:   fc.Engines.Tokens.toEngine(),
			Policies: fc.Engines.Policies.toEngine(),
			History:  fc.Engines.History.toEngine(),
			Geo:      fc.Engines.Geo.toEngine(),
		},
		Storage:   Storage{JournalDSN: fc.Storage.JournalDSN},
		Server:    Server{Address: fc.Server.Address},
		Log:       Log{Level: fc.Log.Level, Path: fc.Log.Path},
		PrefsPath: fc.PrefsPath,
	}, nil
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" in both JSON and YAML. Bare numbers are nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.parse(value)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
