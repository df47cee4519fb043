// Package config handles application preferences stored as TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/decklabs/mtgo-decklab/internal/stats"
)

// Preferences represents a saved analysis configuration. A preferences file
// captures a filter query so it can be re-run as new events are ingested.
type Preferences struct {
	// Dataset selection
	Dataset string `toml:"dataset"` // Dataset name (e.g., "modern")
	Format  string `toml:"format"`  // Constructed format (e.g., "Modern")

	// Filter configuration
	Filter FilterConfig `toml:"filter"`

	// Parser configuration
	Parser ParserConfig `toml:"parser"`
}

// FilterConfig contains deck filter settings.
type FilterConfig struct {
	Start     string   `toml:"start"`     // Range start month ("YYYY/MM", empty = open)
	End       string   `toml:"end"`       // Range end month ("YYYY/MM", empty = open)
	Player    string   `toml:"player"`    // Player name substring
	Events    []string `toml:"events"`    // Event types ("league", "scheduled")
	Zones     []string `toml:"zones"`     // Zones to search ("main", "side")
	Whitelist []string `toml:"whitelist"` // Cards every deck must contain
	Blacklist []string `toml:"blacklist"` // Cards no deck may contain
}

// ParserConfig contains decklist parser settings.
type ParserConfig struct {
	ExtraHeaders []string `toml:"extra_headers"` // Extra section headers to skip
}

// DefaultPreferences returns the default preferences.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Dataset: "modern",
		Format:  "Modern",
		Filter: FilterConfig{
			Events: []string{"league", "scheduled"},
			Zones:  []string{"main", "side"},
		},
	}
}

// DefaultDataDir returns the directory where datasets, ledgers, the catalog
// database and preferences live, creating it if needed.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dataDir := filepath.Join(homeDir, ".decklab")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	return dataDir, nil
}

// DefaultPreferencesPath returns the path of the default preferences file.
func DefaultPreferencesPath() (string, error) {
	dataDir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "preferences.toml"), nil
}

// Load loads preferences from the given path. Returns default preferences if
// the file doesn't exist.
func Load(path string) (*Preferences, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultPreferences(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preferences file: %w", err)
	}

	var prefs Preferences
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("parse preferences file: %w", err)
	}

	return &prefs, nil
}

// Save saves the preferences to the given path.
func (p *Preferences) Save(path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}

	return nil
}

// Validate validates the preference values. It runs before any network or
// disk work so a bad file fails fast.
func (p *Preferences) Validate() error {
	if p.Dataset == "" {
		return fmt.Errorf("dataset cannot be empty")
	}
	if p.Format == "" {
		return fmt.Errorf("format cannot be empty")
	}

	if p.Filter.Start != "" {
		if _, err := stats.ParseMonth(p.Filter.Start); err != nil {
			return fmt.Errorf("invalid start month %q: %w", p.Filter.Start, err)
		}
	}
	if p.Filter.End != "" {
		if _, err := stats.ParseMonth(p.Filter.End); err != nil {
			return fmt.Errorf("invalid end month %q: %w", p.Filter.End, err)
		}
	}

	for _, zone := range p.Filter.Zones {
		switch zone {
		case "main", "side":
		default:
			return fmt.Errorf("invalid zone %q (expected \"main\" or \"side\")", zone)
		}
	}

	return nil
}
