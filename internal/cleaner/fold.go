package cleaner

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/noise"
)

// Fold normalizes a raw description for matching: upper-case, diacritics
// stripped, whitespace collapsed. Bank exports mix accent encodings for the
// same merchant, so all matching happens on folded text.
func Fold(s string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripper, s)
	if err != nil {
		folded = s
	}
	return noise.Collapse(strings.ToUpper(folded))
}
