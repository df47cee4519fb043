package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/decklabs/mtgo-decklab/internal/decks"
)

// Entry is the prevalence of one card within a deck sample.
type Entry struct {
	// Card is the canonical card key.
	Card string

	// DeckCount is the number of decks playing at least one copy.
	DeckCount int

	// TotalCopies is the number of copies summed over those decks.
	TotalCopies int
}

// AverageCopies is the mean number of copies in the decks that play the
// card.
func (e Entry) AverageCopies() float64 {
	if e.DeckCount == 0 {
		return 0
	}
	return float64(e.TotalCopies) / float64(e.DeckCount)
}

// Report holds per-zone prevalence over a filtered deck sample.
type Report struct {
	// SampleSize is the number of decks aggregated.
	SampleSize int

	// Main and Side are sorted descending by DeckCount; ties keep discovery
	// order.
	Main []Entry
	Side []Entry
}

// Empty reports whether the sample had no decks. An empty sample is a valid
// result, not an error.
func (r *Report) Empty() bool { return r.SampleSize == 0 }

// PercentOfSample is the share of sampled decks playing the card, in
// percent.
func (r *Report) PercentOfSample(e Entry) float64 {
	if r.SampleSize == 0 {
		return 0
	}
	return float64(e.DeckCount) / float64(r.SampleSize) * 100
}

// Aggregate computes card prevalence over the sample for the given zones
// (both when empty).
func Aggregate(sample []decks.Deck, zones []decks.Zone) *Report {
	if len(zones) == 0 {
		zones = []decks.Zone{decks.ZoneMain, decks.ZoneSide}
	}

	report := &Report{SampleSize: len(sample)}
	for _, zone := range zones {
		entries := aggregateZone(sample, zone)
		if zone == decks.ZoneSide {
			report.Side = entries
		} else {
			report.Main = entries
		}
	}
	return report
}

func aggregateZone(sample []decks.Deck, zone decks.Zone) []Entry {
	index := make(map[string]int)
	var entries []Entry

	for i := range sample {
		// Iterate each deck's cards in sorted key order so discovery order,
		// and with it the tie-break, is deterministic.
		zoneCards := sample[i].Cards(zone)
		keys := make([]string, 0, len(zoneCards))
		for key := range zoneCards {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			at, seen := index[key]
			if !seen {
				at = len(entries)
				index[key] = at
				entries = append(entries, Entry{Card: key})
			}
			entries[at].DeckCount++
			entries[at].TotalCopies += zoneCards[key]
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DeckCount > entries[j].DeckCount
	})
	return entries
}

// String renders the report in the flat text layout of the analyze command:
// one line per card with deck count, sample share and average copies,
// maindeck first, sideboard below.
func (r *Report) String() string {
	if r.Empty() {
		return "no decks in sample"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d decks in sample\n", r.SampleSize)
	for _, e := range r.Main {
		b.WriteString(r.formatEntry(e))
	}
	b.WriteString("\n---SIDEBOARD---\n")
	for _, e := range r.Side {
		b.WriteString(r.formatEntry(e))
	}
	return b.String()
}

func (r *Report) formatEntry(e Entry) string {
	return fmt.Sprintf("%s - %d - %.2f%% - %.2f average # played\n",
		e.Card, e.DeckCount, r.PercentOfSample(e), e.AverageCopies())
}
