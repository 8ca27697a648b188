// Package names canonicalizes personal names for identity comparison.
//
// The registry and the matcher must normalize names identically: equality of
// normalized forms is the only matching primitive. No fuzzy or edit-distance
// comparison happens anywhere downstream.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// folder resolves letters that Unicode decomposition does not reduce to an
// ASCII base. Đ/đ carries a stroke, not a combining mark, so NFD leaves it
// alone; the caron/acute letters are listed explicitly so the fold does not
// depend on decomposition behavior.
var folder = strings.NewReplacer(
	"đ", "d", "Đ", "D",
	"ž", "z", "Ž", "Z",
	"č", "c", "Č", "C",
	"ć", "c", "Ć", "C",
	"š", "s", "Š", "S",
)

// Normalize returns the canonical comparison key for a display name:
// special letters folded, diacritics stripped, lowercased, trimmed.
//
// Normalize is pure, total, and idempotent. Empty input yields empty output;
// a transform failure on malformed UTF-8 falls back to the folded input
// rather than erroring.
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	folded := folder.Replace(name)
	// The chain keeps internal buffers, so build it per call rather than
	// sharing one transformer across goroutines.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, folded)
	if err != nil {
		stripped = folded
	}
	return strings.TrimSpace(strings.ToLower(stripped))
}
