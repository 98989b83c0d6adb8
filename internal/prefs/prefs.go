// Package prefs persists operator UI preferences between console sessions.
// Preferences are stored as TOML, by default in
// ~/.config/token-guard/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Tab names accepted in [Prefs.Tab].
const (
	TabTokens   = "tokens"
	TabPolicies = "policies"
	TabHistory  = "history"
	TabGeo      = "geo"
	TabJournal  = "journal"
)

var knownTabs = []string{TabTokens, TabPolicies, TabHistory, TabGeo, TabJournal}

// Prefs holds what the console remembers about the operator's last session.
type Prefs struct {
	// Tab is the tab shown on start.
	Tab string `toml:"tab"`
	// Paused starts the console with live updates paused.
	Paused bool `toml:"paused"`
	// ConfirmBatch asks before a batch ban or unban.
	ConfirmBatch bool `toml:"confirm_batch"`
}

const defaultPrefsPath = "~/.config/token-guard/prefs.toml"

// Default returns the preferences used when nothing is stored.
func Default() Prefs {
	return Prefs{Tab: TabTokens, ConfirmBatch: true}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. A missing file yields the defaults and no
// error. A file that cannot be read or parsed also yields the defaults, with
// the error returned so the caller can log it.
func Load(path string) (Prefs, error) {
	prefs := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("read prefs: %w", err)
	}

	if err = toml.Unmarshal(data, &prefs); err != nil {
		return Default(), fmt.Errorf("decode prefs: %w", err)
	}

	if !slices.Contains(knownTabs, strings.TrimSpace(prefs.Tab)) {
		prefs.Tab = TabTokens
	}

	return prefs, nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err = os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
