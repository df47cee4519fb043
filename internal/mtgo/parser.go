package mtgo

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/decklabs/mtgo-decklab/internal/cards"
	"github.com/decklabs/mtgo-decklab/internal/decks"
)

// sideboardMarker switches the active zone for the rest of a decklist block.
const sideboardMarker = "Sideboard"

// defaultSectionHeaders are the card-type category labels and the rarity
// legend that event pages interleave with card lines. Matched by substring,
// not exact text: header wording on the source pages is not stable. A card
// name containing one of these words would be misparsed, which is an
// accepted limitation of the source format.
var defaultSectionHeaders = []string{
	"Creature",
	"Land",
	"Instant",
	"Sorcery",
	"Artifact",
	"Enchantment",
	"Planeswalker",
	"Tribal",
	"Typal",
	"Cards",
	"Other",
	"Rarity",
}

// Parser turns the text content of one event page into Deck records.
type Parser struct {
	headers []string
}

// NewParser creates a parser. Extra section headers extend the built-in
// allow-list; they come from configuration so new source labels need no code
// change.
func NewParser(extraHeaders ...string) *Parser {
	headers := make([]string, 0, len(defaultSectionHeaders)+len(extraHeaders))
	headers = append(headers, defaultSectionHeaders...)
	headers = append(headers, extraHeaders...)
	return &Parser{headers: headers}
}

// ParseEvent parses every decklist block of one event page. The event date
// comes from the event identifier; an id that encodes no date fails the
// whole page, since no Deck could satisfy the date invariant.
func (p *Parser) ParseEvent(eventID string, blocks []string) ([]decks.Deck, error) {
	date, err := decks.ParseEventDate(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event date: %w", err)
	}

	parsed := make([]decks.Deck, 0, len(blocks))
	for _, block := range blocks {
		parsed = append(parsed, p.parseBlock(eventID, date, block))
	}
	return parsed, nil
}

// parseBlock parses a single decklist text block. The first line names the
// player; every other line is either a section header, the sideboard marker,
// or a "<quantity> <card name>" line. Malformed lines are skipped, never
// fatal.
func (p *Parser) parseBlock(eventID string, date time.Time, block string) decks.Deck {
	lines := strings.Split(block, "\n")

	deck := decks.Deck{
		EventID: eventID,
		Date:    decks.Date{Time: date},
		Main:    make(map[string]int),
		Side:    make(map[string]int),
	}
	if len(lines) > 0 {
		player, _, _ := strings.Cut(strings.TrimSpace(lines[0]), " ")
		deck.Player = cards.Transliterate(player)
	}

	zone := deck.Main
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, sideboardMarker) {
			zone = deck.Side
			continue
		}
		if p.isSectionHeader(line) {
			continue
		}

		qtyStr, name, found := strings.Cut(line, " ")
		if !found {
			continue
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			log.Printf("[Parser] skipping malformed line in %s: %q", eventID, line)
			continue
		}
		key := cards.Normalize(name)
		if key == "" {
			continue
		}

		// Well-formed pages never repeat a card within a zone; sum rather
		// than overwrite if one does.
		zone[key] += qty
	}

	return deck
}

func (p *Parser) isSectionHeader(line string) bool {
	for _, h := range p.headers {
		if strings.Contains(line, h) {
			return true
		}
	}
	return false
}
