package utils

import (
	"regexp"
	"strings"

	"github.com/gosimple/unidecode"
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	numberedEventRe  = regexp.MustCompile(`^UFC \d+$`)
	nonNameCharacter = regexp.MustCompile(`[^a-z\s'-]`)
)

// NormalizeName folds a fighter name down to the form used for every
// equality check in matching and scoring: transliterated to ASCII,
// lowercased, whitespace collapsed, anything outside [a-z space ' -]
// stripped, then trimmed. Idempotent.
func NormalizeName(value string) string {
	out := strings.ToLower(unidecode.Unidecode(value))
	out = whitespaceRun.ReplaceAllString(out, " ")
	out = nonNameCharacter.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// NormalizeEventName produces the canonical uppercase event name,
// e.g. "ufc  310 " → "UFC 310".
func NormalizeEventName(value string) string {
	out := strings.ToUpper(value)
	out = whitespaceRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// IsNumberedUFCEvent reports whether the event name is a numbered card
// ("UFC 310") as opposed to a Fight Night / themed card.
func IsNumberedUFCEvent(value string) bool {
	return numberedEventRe.MatchString(NormalizeEventName(value))
}

// SameFighterPair reports whether (a1, a2) and (b1, b2) name the same
// two fighters, ignoring corner order and name formatting.
func SameFighterPair(a1, a2, b1, b2 string) bool {
	a1, a2 = NormalizeName(a1), NormalizeName(a2)
	b1, b2 = NormalizeName(b1), NormalizeName(b2)
	if a1 > a2 {
		a1, a2 = a2, a1
	}
	if b1 > b2 {
		b1, b2 = b2, b1
	}
	return a1 == b1 && a2 == b2
}
