// Package reply generates deterministic bot responses from user input.
//
// The engine is a fixed, ordered rule table: input is normalized, matched
// against pattern groups in priority order, and the first matching group's
// canned response wins. Unmatched input is echoed back verbatim. There is
// no state, no I/O, and no failure mode.
package reply

import "strings"

// group is one ordered rule: a set of patterns sharing a single response.
type group struct {
	patterns []string
	response string
}

// groups are checked in order; the first match wins. Overlapping patterns
// across groups are possible, so the order itself is part of the contract:
// greeting before wellbeing before gratitude before farewell.
var groups = []group{
	{
		// "what s up" tolerates the apostrophe stripped out of "what's up"
		patterns: []string{"hi", "hey", "hello", "sup", "what s up", "whats up"},
		response: "Hello How are you doing?",
	},
	{
		patterns: []string{"how are you", "how r u", "how are u", "how r you", "how you"},
		response: "I'm a demo bot — I'm doing well. How can I help you today?",
	},
	{
		patterns: []string{"thanks", "thank you", "thx", "ty"},
		response: "You're welcome! Anything else I can do?",
	},
	{
		patterns: []string{"bye", "goodbye", "see ya", "see you"},
		response: "Goodbye — take care!",
	},
}

// strippedPunctuation is removed from input before matching.
const strippedPunctuation = "!?.,'"

// Normalize lowercases text, removes the punctuation characters
// ! ? . , ' and trims surrounding whitespace.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if strings.ContainsRune(strippedPunctuation, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// matches reports whether the normalized text matches any pattern.
// A pattern matches as the whole text, as a leading word ("pattern "
// prefix), or anywhere after a space (" pattern" containment). The
// containment rule only checks the left boundary, so a pattern can match
// as a suffix of a longer word-final phrase; that looseness is observable
// behavior and is kept on purpose.
func matches(normalized string, patterns []string) bool {
	for _, p := range patterns {
		if normalized == p ||
			strings.HasPrefix(normalized, p+" ") ||
			strings.Contains(normalized, " "+p) {
			return true
		}
	}
	return false
}

// For returns the bot response for the given user input. When no pattern
// group matches, the original input is echoed back unchanged (not the
// normalized form).
func For(input string) string {
	normalized := Normalize(input)
	for _, g := range groups {
		if matches(normalized, g.patterns) {
			return g.response
		}
	}
	return input
}
