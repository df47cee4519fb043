package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	prefs, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if prefs.Dataset != "modern" || prefs.Format != "Modern" {
		t.Errorf("unexpected defaults: %+v", prefs)
	}
	if len(prefs.Filter.Zones) != 2 {
		t.Errorf("expected both zones by default, got %v", prefs.Filter.Zones)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")

	prefs := &Preferences{
		Dataset: "legacy",
		Format:  "Legacy",
		Filter: FilterConfig{
			Start:     "2024/01",
			End:       "2024/06",
			Player:    "kanister",
			Events:    []string{"scheduled"},
			Zones:     []string{"main"},
			Whitelist: []string{"brainstorm", "ponder"},
			Blacklist: []string{"chalice of the void"},
		},
		Parser: ParserConfig{ExtraHeaders: []string{"Battle"}},
	}

	if err := prefs.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Dataset != "legacy" || loaded.Format != "Legacy" {
		t.Errorf("dataset fields not preserved: %+v", loaded)
	}
	if loaded.Filter.Start != "2024/01" || loaded.Filter.End != "2024/06" {
		t.Errorf("range not preserved: %+v", loaded.Filter)
	}
	if len(loaded.Filter.Whitelist) != 2 || loaded.Filter.Whitelist[1] != "ponder" {
		t.Errorf("whitelist not preserved: %v", loaded.Filter.Whitelist)
	}
	if len(loaded.Parser.ExtraHeaders) != 1 || loaded.Parser.ExtraHeaders[0] != "Battle" {
		t.Errorf("parser headers not preserved: %v", loaded.Parser.ExtraHeaders)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Preferences)
		wantErr bool
	}{
		{"defaults are valid", func(p *Preferences) {}, false},
		{"empty dataset", func(p *Preferences) { p.Dataset = "" }, true},
		{"empty format", func(p *Preferences) { p.Format = "" }, true},
		{"valid range", func(p *Preferences) { p.Filter.Start = "2024/01"; p.Filter.End = "2024-06" }, false},
		{"bad start month", func(p *Preferences) { p.Filter.Start = "January 2024" }, true},
		{"bad end month", func(p *Preferences) { p.Filter.End = "2024" }, true},
		{"bad zone", func(p *Preferences) { p.Filter.Zones = []string{"maindeck"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := DefaultPreferences()
			tt.mutate(prefs)
			err := prefs.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
