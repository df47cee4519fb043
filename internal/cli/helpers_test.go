package cli

import (
	"testing"
	"time"

	"github.com/decklabs/mtgo-decklab/internal/config"
	"github.com/decklabs/mtgo-decklab/internal/decks"
)

func TestBuildQueryDefaultsWidenRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	q, err := buildQuery(config.DefaultPreferences(), now)
	if err != nil {
		t.Fatalf("buildQuery failed: %v", err)
	}

	if !q.Range.Contains(time.Date(2011, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Error("open range should contain old dates")
	}
	if !q.Range.Contains(now) {
		t.Error("open range should contain today")
	}
	if q.Range.Contains(now.AddDate(0, 1, 0)) {
		t.Error("open range should not extend past today")
	}
}

func TestBuildQueryEndMonthIsInclusive(t *testing.T) {
	prefs := config.DefaultPreferences()
	prefs.Filter.Start = "2024/01"
	prefs.Filter.End = "2024/02"

	q, err := buildQuery(prefs, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("buildQuery failed: %v", err)
	}

	if !q.Range.Contains(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Error("last day of end month should be in range")
	}
	if q.Range.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("first day after end month should be out of range")
	}
}

func TestBuildQueryZonesAndEvents(t *testing.T) {
	prefs := config.DefaultPreferences()
	prefs.Filter.Zones = []string{"side"}
	prefs.Filter.Events = []string{"league"}

	q, err := buildQuery(prefs, time.Now())
	if err != nil {
		t.Fatalf("buildQuery failed: %v", err)
	}
	if len(q.Zones) != 1 || q.Zones[0] != decks.ZoneSide {
		t.Errorf("unexpected zones: %v", q.Zones)
	}
	if len(q.EventTypes) != 1 || string(q.EventTypes[0]) != "league" {
		t.Errorf("unexpected event types: %v", q.EventTypes)
	}
}

func TestBuildQueryUnknownEventType(t *testing.T) {
	prefs := config.DefaultPreferences()
	prefs.Filter.Events = []string{"grand-prix"}

	if _, err := buildQuery(prefs, time.Now()); err == nil {
		t.Fatal("expected error for unknown event type")
	}
}
