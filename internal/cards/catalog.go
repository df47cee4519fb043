package cards

// Card holds the display metadata kept for one catalog entry.
type Card struct {
	// Key is the canonical lookup key, as produced by Normalize.
	Key string

	// Name is the full display name, including both faces for split cards.
	Name string

	// ManaCost is the mana cost symbol string, e.g. "{1}{U}{U}".
	ManaCost string

	// CMC is the converted mana cost.
	CMC int

	// TypeLine is the printed type line.
	TypeLine string

	// ScryfallURI links back to the card's reference page.
	ScryfallURI string
}

// Catalog is a read-only snapshot of card metadata keyed by canonical name.
// Lookups must tolerate missing keys: cards newer than the snapshot simply
// are not present, and callers degrade to the raw key.
type Catalog map[string]Card

// Lookup returns the entry for key, reporting whether it was present.
func (c Catalog) Lookup(key string) (Card, bool) {
	card, ok := c[key]
	return card, ok
}
