package mtgo

import (
	"strings"
	"testing"
	"time"
)

const sampleBlock = `kanister (5-0)
MODERN LEAGUE
Creatures (8)
4 Ragavan, Nimble Pilferer
4 Murktide Regent
Instants (12)
4 Lightning Bolt
4 Counterspell
4 Unholy Heat
Lands (20)
20 Island
60 Cards Total
Sideboard (4)
2 Pithing Needle
2 Engineered Explosives`

func TestParseEvent(t *testing.T) {
	p := NewParser()

	parsed, err := p.ParseEvent("modern-league-2024-05-06", []string{sampleBlock})
	if err != nil {
		t.Fatalf("ParseEvent failed: %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("got %d decks, want 1", len(parsed))
	}

	deck := parsed[0]
	if deck.Player != "kanister" {
		t.Errorf("player = %q, want kanister", deck.Player)
	}
	if deck.EventID != "modern-league-2024-05-06" {
		t.Errorf("event id = %q", deck.EventID)
	}
	if want := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC); !deck.Date.Equal(want) {
		t.Errorf("date = %v, want %v", deck.Date.Time, want)
	}

	wantMain := map[string]int{
		"ragavan, nimble pilferer": 4,
		"murktide regent":          4,
		"lightning bolt":           4,
		"counterspell":             4,
		"unholy heat":              4,
		"island":                   20,
	}
	if len(deck.Main) != len(wantMain) {
		t.Errorf("main has %d cards, want %d: %v", len(deck.Main), len(wantMain), deck.Main)
	}
	for card, qty := range wantMain {
		if deck.Main[card] != qty {
			t.Errorf("main[%q] = %d, want %d", card, deck.Main[card], qty)
		}
	}

	wantSide := map[string]int{
		"pithing needle":        2,
		"engineered explosives": 2,
	}
	for card, qty := range wantSide {
		if deck.Side[card] != qty {
			t.Errorf("side[%q] = %d, want %d", card, deck.Side[card], qty)
		}
	}
	if len(deck.Side) != len(wantSide) {
		t.Errorf("side has %d cards, want %d: %v", len(deck.Side), len(wantSide), deck.Side)
	}
}

func TestParseEventZeroBlocks(t *testing.T) {
	p := NewParser()

	parsed, err := p.ParseEvent("modern-league-2024-05-06", nil)
	if err != nil {
		t.Fatalf("ParseEvent failed: %v", err)
	}
	if len(parsed) != 0 {
		t.Errorf("got %d decks from an empty page, want 0", len(parsed))
	}
}

func TestParseEventBadID(t *testing.T) {
	p := NewParser()

	if _, err := p.ParseEvent("not-an-event", []string{sampleBlock}); err == nil {
		t.Fatal("expected error for id without a date")
	}
}

func TestParseBlockMalformedLines(t *testing.T) {
	p := NewParser()

	block := strings.Join([]string{
		"player (5-0)",
		"four Lightning Bolt", // non-numeric quantity
		"0 Memnite",           // zero quantity
		"-2 Island",           // negative quantity
		"4 Lightning Bolt",
		"justoneword",
	}, "\n")

	parsed, err := p.ParseEvent("modern-league-2024-05-06", []string{block})
	if err != nil {
		t.Fatalf("ParseEvent failed: %v", err)
	}

	deck := parsed[0]
	if len(deck.Main) != 1 || deck.Main["lightning bolt"] != 4 {
		t.Errorf("malformed lines leaked into main: %v", deck.Main)
	}
}

func TestParseBlockDuplicateCardSums(t *testing.T) {
	p := NewParser()

	block := "player\n2 Island\n3 Island"
	parsed, err := p.ParseEvent("modern-league-2024-05-06", []string{block})
	if err != nil {
		t.Fatalf("ParseEvent failed: %v", err)
	}
	if got := parsed[0].Main["island"]; got != 5 {
		t.Errorf("duplicate quantities = %d, want summed 5", got)
	}
}

func TestParseBlockNormalizesNames(t *testing.T) {
	p := NewParser()

	block := "Jörg (4-1)\n4 Lórien Revealed\n4 Fire // Ice"
	parsed, err := p.ParseEvent("modern-league-2024-05-06", []string{block})
	if err != nil {
		t.Fatalf("ParseEvent failed: %v", err)
	}

	deck := parsed[0]
	if deck.Player != "Jorg" {
		t.Errorf("player = %q, want transliterated Jorg", deck.Player)
	}
	if deck.Main["lorien revealed"] != 4 {
		t.Errorf("accented name not normalized: %v", deck.Main)
	}
	if deck.Main["fire"] != 4 {
		t.Errorf("split card not cut to first face: %v", deck.Main)
	}
}

func TestParseBlockExtraHeaders(t *testing.T) {
	p := NewParser("Companion")

	block := "player\nCompanion (1)\n4 Lightning Bolt"
	parsed, err := p.ParseEvent("modern-league-2024-05-06", []string{block})
	if err != nil {
		t.Fatalf("ParseEvent failed: %v", err)
	}

	deck := parsed[0]
	if len(deck.Main) != 1 || deck.Main["lightning bolt"] != 4 {
		t.Errorf("configured header not skipped: %v", deck.Main)
	}
}

func TestParseBlockSideboardSwitch(t *testing.T) {
	p := NewParser()

	block := "player\n4 Thoughtseize\nSideboard\n4 Thoughtseize"
	parsed, err := p.ParseEvent("modern-league-2024-05-06", []string{block})
	if err != nil {
		t.Fatalf("ParseEvent failed: %v", err)
	}

	deck := parsed[0]
	if deck.Main["thoughtseize"] != 4 || deck.Side["thoughtseize"] != 4 {
		t.Errorf("zone switch failed: main=%v side=%v", deck.Main, deck.Side)
	}
}
