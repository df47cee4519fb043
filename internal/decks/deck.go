// Package decks defines the Deck record and the append-only dataset document
// it is persisted in.
package decks

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Zone identifies which part of a deck a card belongs to.
type Zone string

const (
	ZoneMain Zone = "main"
	ZoneSide Zone = "side"
)

// Date is a calendar date that marshals as plain "YYYY-MM-DD" in the dataset
// document.
type Date struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Deck is one player's submission at one event. Decks are created only by
// the record parser and are immutable once appended to a dataset.
type Deck struct {
	// Player is the display name, transliterated.
	Player string `json:"player"`

	// EventID is the last path segment of the source event URL. It encodes
	// the event date and category keywords separated by dashes.
	EventID string `json:"event_id"`

	// Date is the event date, always derived from EventID.
	Date Date `json:"date"`

	// Main and Side map canonical card-name keys to positive quantities.
	Main map[string]int `json:"main"`
	Side map[string]int `json:"side"`
}

// Cards returns the card map for the given zone.
func (d *Deck) Cards(zone Zone) map[string]int {
	if zone == ZoneSide {
		return d.Side
	}
	return d.Main
}

// ParseEventDate extracts the event date from an event identifier of the
// form "<format>-<kind...>-YYYY-MM-DD<serial>", where a numeric serial may
// be glued directly onto the day.
func ParseEventDate(eventID string) (time.Time, error) {
	parts := strings.Split(eventID, "-")
	if len(parts) < 4 {
		return time.Time{}, fmt.Errorf("event id %q has no date", eventID)
	}

	year, err := strconv.Atoi(parts[len(parts)-3])
	if err != nil {
		return time.Time{}, fmt.Errorf("event id %q: bad year: %w", eventID, err)
	}
	month, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return time.Time{}, fmt.Errorf("event id %q: bad month: %w", eventID, err)
	}
	dayPart := parts[len(parts)-1]
	if len(dayPart) < 2 {
		return time.Time{}, fmt.Errorf("event id %q: bad day", eventID)
	}
	day, err := strconv.Atoi(dayPart[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("event id %q: bad day: %w", eventID, err)
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("event id %q: date out of range", eventID)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}
