// Package prefs handles ticktock user preferences persistence.
// Preferences are stored as TOML in the same key-value backend as the state
// snapshot, under PrefsKey.
package prefs

import (
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/ticktock/internal/storage"
)

// Prefs holds user preferences for ticktock.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	// PrefsKey is the storage key preferences live under.
	PrefsKey     = "tick-tock-prefs"
	defaultTheme = "Nightfox"
)

// Default returns the preferences used when nothing is stored.
func Default() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from kv, falling back to defaults if missing.
// A nil kv, a read failure or a malformed entry all yield defaults.
func Load(kv storage.KV) Prefs {
	prefs := Default()
	if kv == nil {
		return prefs
	}

	raw, ok, err := kv.Get(PrefsKey)
	if err != nil || !ok {
		return prefs // Graceful degradation
	}

	if err := toml.Unmarshal([]byte(raw), &prefs); err != nil {
		return Default() // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}

	return prefs
}

// Save writes preferences to kv. Saving to a nil kv is a no-op.
func Save(kv storage.KV, p Prefs) error {
	if kv == nil {
		return nil
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := kv.Set(PrefsKey, string(bytes)); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}
