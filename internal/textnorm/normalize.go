// Package textnorm normalizes free-form visitor text for keyword matching.
// Chat visitors type menu options with arbitrary casing and accents
// ("Cotización", "COTIZACION", "cotizacion"), so every comparison in the
// conversation flow goes through Normalize first.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text to NFD and removes combining diacritical marks,
// then recomposes to NFC. "ó" becomes "o", "ñ" becomes "n".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases text, strips diacritical marks and trims surrounding
// whitespace. Empty input yields the empty string. Normalize is idempotent:
// applying it twice returns the same result as applying it once.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		// transform only fails on malformed UTF-8; fall back to the
		// lowered input so matching still works on the valid prefix.
		stripped = lowered
	}

	return strings.TrimSpace(stripped)
}
