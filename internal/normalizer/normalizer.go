// Package normalizer provides the text-folding helpers shared by the name
// and address parsers: whitespace collapsing, diacritic stripping, and the
// case/accent-insensitive fold used for vocabulary lookups and cache keys.
package normalizer

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Collapse squeezes runs of whitespace into single spaces and trims.
func Collapse(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// Fold lowercases and transliterates to ASCII. Combining marks are
// stripped first so decomposed input ("e" + U+0301) folds the same as its
// precomposed form; unidecode then transliterates whatever remains.
// Vocabulary tables are keyed on folded tokens so "MR", "mr" and
// "Señor"-style accented spellings all hit the same entry.
func Fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(StripDiacritics(s)))
}

// Fingerprint derives a stable cache key from an input string: folded,
// whitespace-collapsed, then sha256-hashed.
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(Collapse(Fold(s))))
	return hex.EncodeToString(sum[:])
}
