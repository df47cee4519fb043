package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/decklabs/mtgo-decklab/internal/cards"
	"github.com/decklabs/mtgo-decklab/internal/decks"
)

// RenderDecks formats a deck sample for terminal display. Cards are ordered
// by converted mana cost from the catalog; keys missing from the catalog
// sort last and render with the raw key alone. A catalog miss never fails
// the rendering.
func RenderDecks(sample []decks.Deck, catalog cards.Catalog) string {
	var b strings.Builder
	for i := range sample {
		renderDeck(&b, &sample[i], catalog)
	}
	if b.Len() == 0 {
		return "no decks in sample"
	}
	return b.String()
}

func renderDeck(b *strings.Builder, deck *decks.Deck, catalog cards.Catalog) {
	fmt.Fprintf(b, "%s %s %s\n", deck.Player, deck.EventID, deck.Date.Format("2006-01-02"))

	renderZone(b, deck.Main, catalog)
	b.WriteString("------ SIDEBOARD ------\n")
	renderZone(b, deck.Side, catalog)
	b.WriteString("------ END OF DECK ------\n")
}

func renderZone(b *strings.Builder, zone map[string]int, catalog cards.Catalog) {
	keys := make([]string, 0, len(zone))
	for key := range zone {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, iOK := catalog.Lookup(keys[i])
		cj, jOK := catalog.Lookup(keys[j])
		switch {
		case iOK != jOK:
			return iOK
		case ci.CMC != cj.CMC:
			return ci.CMC < cj.CMC
		default:
			return keys[i] < keys[j]
		}
	})

	for _, key := range keys {
		card, ok := catalog.Lookup(key)
		if !ok {
			fmt.Fprintf(b, "%d %s\n", zone[key], key)
			continue
		}
		if card.ManaCost == "" {
			fmt.Fprintf(b, "%d %s\n", zone[key], card.Name)
			continue
		}
		fmt.Fprintf(b, "%d %s - %s\n", zone[key], card.Name, card.ManaCost)
	}
}
