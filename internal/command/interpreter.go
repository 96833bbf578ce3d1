package command

import (
	"strconv"
	"strings"
)

// verbEntry maps a leading verb phrase to an intent kind. Entries are
// matched longest phrase first so "mark done 3" never parses as an
// unknown verb "mark".
type verbEntry struct {
	phrase string
	kind   IntentKind
}

var verbTable = []verbEntry{
	{"list tasks", IntentList},
	{"show tasks", IntentList},
	{"mark done", IntentComplete},
	{"complete", IntentComplete},
	{"create", IntentAdd},
	{"delete", IntentDelete},
	{"remove", IntentDelete},
	{"add", IntentAdd},
}

// Interpret parses raw text into an Intent. It is a total function on
// text: malformed input is data, not an error, and comes back as
// IntentUnrecognized. It never touches the store: whether a
// description selector matches anything is the executor's concern.
func Interpret(raw string) Intent {
	text := normalize(raw)
	if text == "" {
		return Intent{Kind: IntentUnrecognized, Raw: raw}
	}

	verb, remainder, ok := matchVerb(text)
	if !ok {
		return Intent{Kind: IntentUnrecognized, Raw: raw}
	}

	switch verb.kind {
	case IntentAdd:
		if remainder == "" {
			return Intent{Kind: IntentUnrecognized, Raw: raw}
		}
		return Intent{Kind: IntentAdd, Description: remainder, Raw: raw}

	case IntentComplete, IntentDelete:
		if remainder == "" {
			return Intent{Kind: IntentUnrecognized, Raw: raw}
		}
		return Intent{Kind: verb.kind, Selector: parseSelector(remainder), Raw: raw}

	case IntentList:
		// "list tasks please" is not a command we know.
		if remainder != "" {
			return Intent{Kind: IntentUnrecognized, Raw: raw}
		}
		return Intent{Kind: IntentList, Raw: raw}
	}

	return Intent{Kind: IntentUnrecognized, Raw: raw}
}

// normalize trims, lowercases, and collapses internal whitespace.
func normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// matchVerb finds the longest verb phrase prefixing text and returns it
// with the remainder.
func matchVerb(text string) (verbEntry, string, bool) {
	for _, v := range verbTable {
		if text == v.phrase {
			return v, "", true
		}
		if strings.HasPrefix(text, v.phrase+" ") {
			return v, strings.TrimSpace(text[len(v.phrase):]), true
		}
	}
	return verbEntry{}, "", false
}

// parseSelector decides between an id and a description selector. A
// remainder that is entirely a non-negative integer selects by id;
// anything else is a description search.
func parseSelector(remainder string) Selector {
	if id, err := strconv.ParseInt(remainder, 10, 64); err == nil && id >= 0 {
		return Selector{Kind: SelectByID, ID: id}
	}
	return Selector{Kind: SelectByDescription, Text: remainder}
}
