// Package parser implements the two parsing engines at the heart of the
// service: NameParser splits free-form person names into title, first,
// middle, last and suffix; AddressParser splits street addresses into unit,
// house number, directionals, street name, designator and floor.
//
// Both engines are pure lexical pattern matchers over a fixed vocabulary.
// They never fail on malformed input: anything the rules do not recognize
// simply stays absent in the result.
package parser

import (
	"errors"
	"strings"
	"unicode"

	"github.com/contact-parser/app/models"
)

// ErrNilInput is returned by the pointer-accepting variants when the input
// reference itself is nil. An empty string is valid input.
var ErrNilInput = errors.New("parser: input must not be nil")

// ErrNilTarget is returned by the in-place variants when the output record
// is nil.
var ErrNilTarget = errors.New("parser: target record must not be nil")

var (
	defaultNameParser    = NewNameParser()
	defaultAddressParser = NewAddressParser()
)

// ParseName parses text with the default name parser and empty-string
// defaults for unset fields.
func ParseName(text string) *models.PersonName {
	return defaultNameParser.Parse(text, true)
}

// ParseAddress parses text with the default address parser and empty-string
// defaults for unset fields.
func ParseAddress(text string) *models.Address {
	return defaultAddressParser.Parse(text, true)
}

// NormalizeTitle canonicalizes an honorific ("mr" -> "Mr.") using the
// default name parser. Unrecognized text is returned trimmed but otherwise
// untouched.
func NormalizeTitle(text string) string {
	return defaultNameParser.NormalizeTitle(text)
}

// NormalizeSuffix canonicalizes a name suffix ("jr" -> "Jr.", "iv" -> "IV")
// using the default name parser.
func NormalizeSuffix(text string) string {
	return defaultNameParser.NormalizeSuffix(text)
}

// TrimUnitNumber reduces a fragment already known to be a unit designation
// to the bare unit value ("#408" -> "408").
func TrimUnitNumber(text string) string {
	return defaultAddressParser.TrimUnitNumber(text)
}

// TrimFloorNumber reduces a fragment already known to be a floor
// designation to the bare floor value ("1st floor" -> "1").
func TrimFloorNumber(text string) string {
	return defaultAddressParser.TrimFloorNumber(text)
}

func strPtr(s string) *string { return &s }

// upperFirstLower rewrites a token to a single leading capital. A token
// that already has exactly one capital, in front, is left untouched.
func upperFirstLower(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	if unicode.IsUpper(runes[0]) && !hasUpper(runes[1:]) {
		return s
	}
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}

func hasUpper(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
