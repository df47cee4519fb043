package analysis

import (
	"sort"
	"strings"
)

// cardGroups are named card lists usable as ready-made whitelists. Members
// are display names; they are normalized when expanded.
var cardGroups = map[string][]string{
	"shocklands": {
		"Hallowed Fountain", "Godless Shrine", "Sacred Foundry", "Temple Garden",
		"Watery Grave", "Steam Vents", "Breeding Pool", "Blood Crypt",
		"Overgrown Tomb", "Stomping Ground",
	},
	"fetchlands": {
		"Flooded Strand", "Marsh Flats", "Arid Mesa", "Windswept Heath",
		"Polluted Delta", "Scalding Tarn", "Misty Rainforest", "Bloodstained Mire",
		"Verdant Catacombs", "Wooded Foothills",
	},
	"basic-lands": {"Plains", "Island", "Swamp", "Mountain", "Forest"},
	"exile-removal": {
		"Path to Exile", "Leyline Binding", "Celestial Purge", "Prismatic Ending",
		"Dispatch", "Vanishing Verse", "March of Otherworldly Light",
	},
	"counterspells": {
		"Counterspell", "Spell Pierce", "Stubborn Denial", "Stern Scolding",
		"Force of Negation", "Flare of Denial", "Remand", "Reprieve",
		"Flusterstorm", "Consign to Memory", "No More Lies",
	},
	"graveyard-hate": {
		"Leyline of the Void", "Surgical Extraction", "Unlicensed Hearse",
		"Endurance", "Soul-Guide Lantern", "Relic of Progenitus", "Rest in Peace",
		"Dauthi Voidwalker", "Crypt Incursion",
	},
	"artifact-hate": {"Meltdown", "Shattering Spree", "Disenchant", "Force of Vigor"},
	"evoke-elementals": {"Solitude", "Subtlety", "Grief", "Fury", "Endurance"},
}

// ExpandGroup returns the member card names of a named group, or false for
// an unknown name. Names are matched case-insensitively.
func ExpandGroup(name string) ([]string, bool) {
	members, ok := cardGroups[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	out := make([]string, len(members))
	copy(out, members)
	return out, true
}

// GroupNames lists the available group names, sorted.
func GroupNames() []string {
	names := make([]string, 0, len(cardGroups))
	for name := range cardGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
