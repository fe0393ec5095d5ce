package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field length bounds checked before the rule chain runs.
const (
	MaxNameChars    = 60
	MinFeelingChars = 2
	MaxFeelingChars = 280
	MaxDetailsChars = 500
)

// feelingSuggestions maps shorthand we refuse to the full word we suggest.
var feelingSuggestions = map[string]string{
	"anx":  "anxious",
	"strs": "stressed",
	"dep":  "depressed",
	"conf": "confused",
}

// emojiRanges lists the pictographic and symbol blocks rejected in feeling
// text, as inclusive code point ranges checked by membership.
var emojiRanges = [...][2]rune{
	{0x1F300, 0x1F6FF},
	{0x1F700, 0x1F77F},
	{0x1F780, 0x1F7FF},
	{0x1F800, 0x1F8FF},
	{0x1F900, 0x1F9FF},
	{0x1FA00, 0x1FAFF},
	{0x2700, 0x27BF},
	{0x2600, 0x26FF},
}

// RuleError reports the first violated rule for a single field.
type RuleError struct {
	Field   string
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

func fail(field, message string) *RuleError {
	return &RuleError{Field: field, Message: message}
}

// Bounds enforces the payload-shape limits on the trimmed fields. It returns
// one error per violated field so callers can surface them all at once.
func Bounds(name, feeling, details string) []*RuleError {
	var errs []*RuleError
	if n := utf8.RuneCountInString(strings.TrimSpace(name)); n < 1 || n > MaxNameChars {
		errs = append(errs, fail("name", fmt.Sprintf("name must be between 1 and %d characters", MaxNameChars)))
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(feeling)); n < MinFeelingChars || n > MaxFeelingChars {
		errs = append(errs, fail("feeling", fmt.Sprintf("feeling must be between %d and %d characters", MinFeelingChars, MaxFeelingChars)))
	}
	if utf8.RuneCountInString(strings.TrimSpace(details)) > MaxDetailsChars {
		errs = append(errs, fail("details", fmt.Sprintf("details must be at most %d characters", MaxDetailsChars)))
	}
	return errs
}

// Name strips every character that is not alphanumeric, space, hyphen, or
// apostrophe, then trims. An empty result fails; otherwise the cleaned
// string is the canonical name. Already-clean input passes through unchanged.
func Name(raw string) (string, *RuleError) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '\'' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return "", fail("name", "Name must contain valid characters.")
	}
	return cleaned, nil
}

// Feeling runs the descriptiveness chain over the trimmed feeling text.
// Rules apply in order and the first violation wins: non-empty, no emoji,
// no known shorthand, at least three letters, no lone word under five runes.
func Feeling(raw string) (string, *RuleError) {
	feeling := strings.TrimSpace(raw)
	if feeling == "" {
		return "", fail("feeling", "Please describe how you are feeling.")
	}
	if containsEmoji(feeling) {
		return "", fail("feeling", "Please use descriptive text instead of emoji for your feeling.")
	}
	if suggestion, ok := feelingSuggestions[strings.ToLower(feeling)]; ok {
		return "", fail("feeling", fmt.Sprintf("Did you mean '%s'? Please use a full descriptive word.", suggestion))
	}
	if letterCount(feeling) < 3 {
		return "", fail("feeling", "Please use valid words to describe your feeling.")
	}
	if words := wordsWithLetters(feeling); len(words) == 1 && utf8.RuneCountInString(words[0]) < 5 {
		return "", fail("feeling", "Please be more descriptive, for example: 'anxious about my presentation'.")
	}
	return feeling, nil
}

func containsEmoji(s string) bool {
	for _, r := range s {
		for _, rng := range emojiRanges {
			if r >= rng[0] && r <= rng[1] {
				return true
			}
		}
	}
	return false
}

func letterCount(s string) int {
	var n int
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

func wordsWithLetters(s string) []string {
	var words []string
	for _, w := range strings.Fields(s) {
		if letterCount(w) > 0 {
			words = append(words, w)
		}
	}
	return words
}
