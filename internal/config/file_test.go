package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const jsonConfig = `{
  "app": {"admin_username": "admin", "admin_password": "secret"},
  "adapter": {
    "address": "http://edge:8080",
    "request_timeout": "7s",
    "mutation": {"user_agent": "json-ua", "path": "/json"}
  },
  "engines": {
    "tokens": {"page_size": 12, "poll_interval": "2s"},
    "history": {"poll_interval": 5000000000, "clear_on_error": true}
  },
  "storage": {"journal_dsn": "journal.db"},
  "server": {"address": "localhost:9100"},
  "log": {"level": "warn"},
  "prefs_path": "prefs.toml"
}`

const yamlConfig = `
app:
  admin_username: admin
  admin_password: secret
adapter:
  address: http://edge:8080
  request_timeout: 7s
  data_source: synthetic
engines:
  tokens:
    page_size: 12
    poll_interval: 2s
  geo:
    poll_interval: -1s
storage:
  journal_dsn: postgres://u:p@db/journal
`

func TestParseFile_JSON(t *testing.T) {
	cfg, err := parseFile(writeTempConfig(t, "config.json", jsonConfig))
	require.NoError(t, err)

	assert.Equal(t, "admin", cfg.App.AdminUsername)
	assert.Equal(t, "http://edge:8080", cfg.Adapter.Address)
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "json-ua", cfg.Adapter.Mutation.UserAgent)
	assert.Equal(t, "/json", cfg.Adapter.Mutation.Path)
	assert.Equal(t, Engine{PageSize: 12, PollInterval: 2 * time.Second}, cfg.Engines.Tokens)
	assert.Equal(t, Engine{PollInterval: 5 * time.Second, ClearOnError: true}, cfg.Engines.History)
	assert.Equal(t, "journal.db", cfg.Storage.JournalDSN)
	assert.Equal(t, "localhost:9100", cfg.Server.Address)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "prefs.toml", cfg.PrefsPath)
	assert.Empty(t, cfg.ConfigFilePath)
}

func TestParseFile_YAML(t *testing.T) {
	cfg, err := parseFile(writeTempConfig(t, "config.yml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.App.AdminPassword)
	assert.Equal(t, "synthetic", cfg.Adapter.DataSource)
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 12, cfg.Engines.Tokens.PageSize)
	assert.Equal(t, -time.Second, cfg.Engines.Geo.PollInterval)
	assert.Equal(t, "postgres://u:p@db/journal", cfg.Storage.JournalDSN)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := parseFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestParseFile_Malformed(t *testing.T) {
	_, err := parseFile(writeTempConfig(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "error decoding json configs")

	_, err = parseFile(writeTempConfig(t, "bad.yaml", "app: [unclosed"))
	assert.ErrorContains(t, err, "error decoding yaml configs")
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	var d Duration
	assert.Error(t, d.UnmarshalJSON([]byte(`"soon"`)))
	assert.Error(t, d.UnmarshalJSON([]byte(`true`)))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
