// Package cli implements the decklab commands.
package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/decklabs/mtgo-decklab/internal/analysis"
	"github.com/decklabs/mtgo-decklab/internal/config"
	"github.com/decklabs/mtgo-decklab/internal/decks"
	"github.com/decklabs/mtgo-decklab/internal/ledger"
	"github.com/decklabs/mtgo-decklab/internal/stats"
)

// resolveDataDir returns the data directory, creating the default one when
// no override is given.
func resolveDataDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return config.DefaultDataDir()
}

// catalogPath returns the path of the catalog database inside dataDir.
func catalogPath(dataDir string) string {
	return filepath.Join(dataDir, "catalog.db")
}

// openData opens the dataset and its ledger from dataDir.
func openData(dataDir, dataset string) (*decks.Dataset, *ledger.Ledger, error) {
	ds, err := decks.OpenDataset(dataDir, dataset)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	led, err := ledger.Load(dataDir, dataset)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return ds, led, nil
}

// loadPreferences loads the preferences file, falling back to the default
// location when path is empty, then overlays any flags the user set.
func loadPreferences(cmd *cobra.Command, path string) (*config.Preferences, string, error) {
	if path == "" {
		var err error
		path, err = config.DefaultPreferencesPath()
		if err != nil {
			return nil, "", err
		}
	}

	prefs, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}

	applyFlagOverrides(cmd, prefs)

	if err := prefs.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid preferences: %w", err)
	}
	return prefs, path, nil
}

// applyFlagOverrides copies explicitly-set flags over the loaded
// preferences. Flags the user didn't touch leave the file's values alone.
func applyFlagOverrides(cmd *cobra.Command, prefs *config.Preferences) {
	flags := cmd.Flags()
	if flags.Changed("dataset") {
		prefs.Dataset, _ = flags.GetString("dataset")
	}
	if flags.Changed("format") {
		prefs.Format, _ = flags.GetString("format")
	}
	if flags.Changed("start") {
		prefs.Filter.Start, _ = flags.GetString("start")
	}
	if flags.Changed("end") {
		prefs.Filter.End, _ = flags.GetString("end")
	}
	if flags.Changed("player") {
		prefs.Filter.Player, _ = flags.GetString("player")
	}
	if flags.Changed("event") {
		prefs.Filter.Events, _ = flags.GetStringSlice("event")
	}
	if flags.Changed("zone") {
		prefs.Filter.Zones, _ = flags.GetStringSlice("zone")
	}
	if flags.Changed("card") {
		prefs.Filter.Whitelist, _ = flags.GetStringSlice("card")
	}
	if flags.Changed("not") {
		prefs.Filter.Blacklist, _ = flags.GetStringSlice("not")
	}
}

// buildQuery converts validated preferences into a filter query. Open range
// bounds widen to cover everything up to now.
func buildQuery(prefs *config.Preferences, now time.Time) (analysis.Query, error) {
	q := analysis.Query{Player: prefs.Filter.Player}

	q.Range.Start = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	if prefs.Filter.Start != "" {
		start, err := stats.ParseMonth(prefs.Filter.Start)
		if err != nil {
			return q, err
		}
		q.Range.Start = start
	}

	q.Range.End = now
	if prefs.Filter.End != "" {
		end, err := stats.ParseMonth(prefs.Filter.End)
		if err != nil {
			return q, err
		}
		// The end month is inclusive, so bound on its last day.
		q.Range.End = end.AddDate(0, 1, -1)
	}

	for _, name := range prefs.Filter.Events {
		et, ok := analysis.ParseEventType(name)
		if !ok {
			return q, fmt.Errorf("unknown event type %q (known: %v)", name, analysis.KnownEventTypes())
		}
		q.EventTypes = append(q.EventTypes, et)
	}

	for _, zone := range prefs.Filter.Zones {
		switch zone {
		case "main":
			q.Zones = append(q.Zones, decks.ZoneMain)
		case "side":
			q.Zones = append(q.Zones, decks.ZoneSide)
		}
	}

	q.Whitelist = prefs.Filter.Whitelist
	q.Blacklist = prefs.Filter.Blacklist
	return q, nil
}
