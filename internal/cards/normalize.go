// Package cards provides canonical card-name keys and catalog metadata types.
//
// The same normalization is applied when decklists are ingested and when
// queries are evaluated, so that keys match regardless of how the source
// page spelled the name.
package cards

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatures maps characters that do not decompose into base letter plus
// combining mark and therefore survive NFD folding.
var ligatures = strings.NewReplacer(
	"Æ", "Ae",
	"æ", "ae",
	"Œ", "Oe",
	"œ", "oe",
	"ß", "ss",
)

// Transliterate folds text to the unaccented Latin repertoire: NFD
// decomposition, removal of combining marks, ligature replacement.
// Characters that still fall outside printable ASCII are dropped.
// Case is preserved; see Normalize for key construction.
func Transliterate(raw string) string {
	s := ligatures.Replace(raw)

	// A fresh chain per call: transform chains carry internal state and the
	// normalizer must stay safe for concurrent query evaluation.
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(folder, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize maps a raw scraped card name to its canonical lookup key:
// transliterated, truncated to the first face of a split or double-faced
// name, lower-cased and trimmed. Pure and total; never fails.
func Normalize(raw string) string {
	s := Transliterate(raw)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(strings.TrimSpace(s))
}
