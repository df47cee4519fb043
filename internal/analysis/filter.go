// Package analysis evaluates deck-selection queries over a dataset and
// aggregates card-usage statistics. Everything here is pure and read-only:
// safe to call repeatedly or concurrently over an immutable snapshot.
package analysis

import (
	"strings"

	"github.com/decklabs/mtgo-decklab/internal/cards"
	"github.com/decklabs/mtgo-decklab/internal/decks"
	"github.com/decklabs/mtgo-decklab/internal/stats"
)

// EventType classifies an event by the cadence keywords in its identifier.
type EventType string

const (
	// EventLeague covers the recurring queue events.
	EventLeague EventType = "league"

	// EventScheduled covers the calendar events with a posted start time.
	EventScheduled EventType = "scheduled"
)

// eventTypeKeywords maps each event type to the identifier keywords that
// select it. Matching is containment against the whole event id.
var eventTypeKeywords = map[EventType][]string{
	EventLeague: {"league", "daily"},
	EventScheduled: {
		"prelim", "challenge", "ptq", "championship",
		"qualifier", "playoff", "finals", "last-chance",
	},
}

// KnownEventTypes returns every recognized event type.
func KnownEventTypes() []EventType {
	return []EventType{EventLeague, EventScheduled}
}

// ParseEventType matches a user-supplied name against the known types.
func ParseEventType(s string) (EventType, bool) {
	switch EventType(strings.ToLower(s)) {
	case EventLeague:
		return EventLeague, true
	case EventScheduled:
		return EventScheduled, true
	}
	return "", false
}

// ClassifyEvent determines the event type encoded in an event identifier.
// Returns false for identifiers matching no known keyword.
func ClassifyEvent(eventID string) (EventType, bool) {
	for _, et := range KnownEventTypes() {
		for _, kw := range eventTypeKeywords[et] {
			if strings.Contains(eventID, kw) {
				return et, true
			}
		}
	}
	return "", false
}

// Query is a deck-selection predicate. Zero values widen the query: an empty
// whitelist or blacklist is trivially satisfied, empty zones means both
// zones, empty event types means every known type.
type Query struct {
	// Range bounds the event date, inclusive on both ends.
	Range stats.TimeRange

	// Player keeps only decks whose player name contains this substring,
	// case-insensitively. Empty matches everyone.
	Player string

	// EventTypes restricts the event categories considered.
	EventTypes []EventType

	// Zones are the deck zones searched by the whitelist and blacklist.
	Zones []decks.Zone

	// Whitelist terms must each match at least one card key in the searched
	// zones. Matching is substring-based so abbreviated names work.
	Whitelist []string

	// Blacklist terms must match no card key in the searched zones.
	Blacklist []string
}

// zones returns the zones to search, defaulting to both.
func (q *Query) zones() []decks.Zone {
	if len(q.Zones) == 0 {
		return []decks.Zone{decks.ZoneMain, decks.ZoneSide}
	}
	return q.Zones
}

// eventTypes returns the requested types, defaulting to all known.
func (q *Query) eventTypes() []EventType {
	if len(q.EventTypes) == 0 {
		return KnownEventTypes()
	}
	return q.EventTypes
}

// Filter evaluates the query over sample and returns the matching decks in
// their original order.
func Filter(sample []decks.Deck, q Query) []decks.Deck {
	zones := q.zones()
	types := q.eventTypes()
	player := strings.ToLower(cards.Transliterate(q.Player))

	// Queries arrive raw; card keys were normalized at ingestion.
	whitelist := normalizeTerms(q.Whitelist)
	blacklist := normalizeTerms(q.Blacklist)

	var out []decks.Deck
	for i := range sample {
		deck := &sample[i]

		if !q.Range.Contains(deck.Date.Time) {
			continue
		}
		if player != "" && !strings.Contains(strings.ToLower(deck.Player), player) {
			continue
		}
		if !matchesEventType(deck.EventID, types) {
			continue
		}

		// One joined haystack per deck keeps the substring scans off the
		// per-key loop.
		haystack := joinKeys(deck, zones)
		if anyMatch(haystack, blacklist) {
			continue
		}
		if !allMatch(haystack, whitelist) {
			continue
		}

		out = append(out, *deck)
	}
	return out
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := cards.Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func matchesEventType(eventID string, want []EventType) bool {
	et, ok := ClassifyEvent(eventID)
	if !ok {
		return false
	}
	for _, w := range want {
		if w == et {
			return true
		}
	}
	return false
}

// joinKeys builds a newline-joined haystack of the card keys in the given
// zones. Keys never contain newlines, so a term cannot match across two
// keys.
func joinKeys(deck *decks.Deck, zones []decks.Zone) string {
	var b strings.Builder
	for _, zone := range zones {
		for key := range deck.Cards(zone) {
			b.WriteString(key)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func anyMatch(haystack string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}

func allMatch(haystack string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
