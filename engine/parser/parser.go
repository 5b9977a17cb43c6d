// Package parser converts console command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strconv"
	"strings"

	"github.com/nathoo/ashaether/types"
)

var verbAliases = map[string]string{
	// Status
	"l":      "look",
	"status": "look",
	"hud":    "look",

	// Travel
	"travel":  "go",
	"walk":    "go",
	"enter":   "go",
	"head":    "go",
	"journey": "go",

	// Dialogue
	"speak":    "talk",
	"chat":     "talk",
	"converse": "talk",
	"ask":      "talk",
	"pick":     "choose",
	"answer":   "choose",
	"reply":    "choose",
	"say":      "choose",
	"bye":      "leave",
	"farewell": "leave",

	// Combat
	"attack": "fight",
	"hit":    "fight",
	"kill":   "fight",
	"slay":   "fight",
	"strike": "fight",
	"mode":   "stance",
	"wield":  "stance",

	// Items
	"drink":    "use",
	"quaff":    "use",
	"consume":  "use",
	"eat":      "use",
	"inv":      "inventory",
	"i":        "inventory",
	"bag":      "inventory",
	"bind":     "quickbar",
	"purchase": "buy",
	"shop":     "market",
	"wares":    "market",
	"vend":     "sell",
	"brew":     "craft",
	"forge":    "craft",
	"make":     "craft",
	"refine":   "craft",
	"temper":   "upgrade",
	"improve":  "upgrade",

	// Progress
	"q":       "quests",
	"journal": "quests",
	"quest":   "quests",
	"j":       "quests",
	"perks":   "perk",
	"learn":   "perk",
	"m":       "map",
	"regions": "map",
	"world":   "map",
	"rep":     "standing",

	// Time
	"z":     "wait",
	"sleep": "rest",
	"camp":  "rest",
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true,
	"with": true, "in": true, "from": true,
	"about": true, "for": true, "into": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// A bare number picks a dialogue choice.
	if len(words) == 1 {
		if _, err := strconv.Atoi(words[0]); err == nil {
			return types.Intent{Verb: "choose", Object: words[0]}
		}
	}

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)
	if len(words) == 0 {
		return types.Intent{}
	}

	// Apply verb aliases.
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])

	// Use the first preposition as a delimiter between object and target.
	object, target := splitOnPreposition(rest)

	return types.Intent{
		Verb:   verb,
		Object: object,
		Target: target,
	}
}

// expandMultiWordVerbs handles "talk to", "travel to", "look around" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "talk", "speak", "chat":
		if words[1] == "to" || words[1] == "with" {
			return append([]string{"talk"}, words[2:]...)
		}
	case "go", "travel", "walk", "head":
		if words[1] == "to" || words[1] == "into" {
			return append([]string{"go"}, words[2:]...)
		}
	case "look":
		if words[1] == "around" {
			return []string{"look"}
		}
		if words[1] == "at" && len(words) > 2 && words[2] == "map" {
			return []string{"map"}
		}
	case "switch":
		if words[1] == "to" {
			return append([]string{"stance"}, words[2:]...)
		}
	case "unlock", "spend":
		if words[1] == "perk" || words[1] == "point" {
			return append([]string{"perk"}, words[2:]...)
		}
	case "say":
		if words[1] == "goodbye" {
			return []string{"leave"}
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition.
// Words before the preposition become the object, words after become the target.
// If no preposition is found, all words become the object.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			object = strings.Join(words[:i], " ")
			target = strings.Join(words[i+1:], " ")
			return object, target
		}
	}
	return strings.Join(words, " "), ""
}

// SplitAmount splits a leading count off an object phrase: "3 iron ore"
// yields 3 and "iron ore". Without a positive count it returns def.
func SplitAmount(object string, def int) (int, string) {
	first, rest, ok := strings.Cut(object, " ")
	if !ok {
		return def, object
	}
	n, err := strconv.Atoi(first)
	if err != nil || n < 1 {
		return def, object
	}
	return n, rest
}
