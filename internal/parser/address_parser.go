package parser

import (
	"regexp"
	"strings"

	"github.com/contact-parser/app/models"
	"github.com/contact-parser/internal/normalizer"
)

// AddressParser extracts the structured parts of a street address through a
// fixed pipeline of stages. Each stage tries its pattern variants in order,
// records the first capture, and deletes the matched span from the working
// string so later stages cannot re-match the same characters.
type AddressParser struct {
	floorPatterns []*regexp.Regexp
	unitPatterns  []*regexp.Regexp
	housePattern  *regexp.Regexp
	dirPrefix     *regexp.Regexp
	dirSuffix     *regexp.Regexp
	coreText      *regexp.Regexp
	vocab         *vocabulary
}

// NewAddressParser builds a parser over the package vocabulary.
func NewAddressParser() *AddressParser {
	return &AddressParser{
		floorPatterns: []*regexp.Regexp{
			// "floor 2", "floor L2", "floor mezzanine"
			regexp.MustCompile(`(?i)(?:^|\W)floor\b\W*([0-9]{1,3}|[a-z][0-9]+|[a-z]+)\b`),
			// "2nd floor", "14 floor"
			regexp.MustCompile(`(?i)\b([0-9]{1,3})(?:st|nd|rd|th)?\s*floor\b`),
			// "L2 floor", "ground floor"
			regexp.MustCompile(`(?i)\b([0-9]+|[a-z][0-9]+|[a-z]+)\s+floor\b`),
		},
		unitPatterns: []*regexp.Regexp{
			// "apt 5B", "suite #20", "# 408"
			regexp.MustCompile(`(?i)(?:\b(?:apt|apartment|unit|suite)\b|#)[^0-9]*([0-9]+(?:-?[a-z])?)`),
			// leading "408-2790" unit-hyphen-housenumber form
			regexp.MustCompile(`(?i)^\s*([0-9]+(?:-?[a-z])?)-`),
		},
		housePattern: regexp.MustCompile(`\b([0-9]+)\b`),
		dirPrefix:    regexp.MustCompile(`(?i)^\W*(NE|NW|SE|SW|N|E|S|W)\b`),
		dirSuffix:    regexp.MustCompile(`(?i)(?:^|[^a-zA-Z])(NE|NW|SE|SW|N|E|S|W)(?:[^a-zA-Z]|$)`),
		coreText:     regexp.MustCompile(`[\p{L}\p{N}](?:[\p{L}\p{N}\s'’-]*[\p{L}\p{N}])?`),
		vocab:        vocab,
	}
}

// Parse splits input into address parts. It never fails: input with nothing
// recognizable yields an all-absent record. When useEmptyDefault is true,
// unset fields are empty strings rather than nil.
func (ap *AddressParser) Parse(input string, useEmptyDefault bool) *models.Address {
	addr := &models.Address{}
	ap.parseInto(input, addr)
	if useEmptyDefault {
		addr.FillEmptyDefaults()
	}
	return addr
}

// ParsePtr is the optional-input variant; a nil input is the only error.
func (ap *AddressParser) ParsePtr(input *string, useEmptyDefault bool) (*models.Address, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	return ap.Parse(*input, useEmptyDefault), nil
}

// ParseInto populates a caller-supplied record in place, resetting it
// first.
func (ap *AddressParser) ParseInto(input string, out *models.Address, useEmptyDefault bool) error {
	if out == nil {
		return ErrNilTarget
	}
	out.Reset()
	ap.parseInto(input, out)
	if useEmptyDefault {
		out.FillEmptyDefaults()
	}
	return nil
}

func (ap *AddressParser) parseInto(input string, addr *models.Address) {
	working := input

	if value, rest, ok := extractFirst(ap.floorPatterns, working); ok {
		addr.Floor = strPtr(value)
		working = rest
	}

	if value, rest, ok := extractFirst(ap.unitPatterns, working); ok {
		addr.UnitNumber = strPtr(value)
		working = rest
	}

	if value, rest, ok := extractOne(ap.housePattern, working); ok {
		addr.HouseNumber = strPtr(value)
		working = rest
	}

	// Street designator: match the combined alternation, then resolve the
	// literal through the alias table.
	if loc := ap.vocab.designatorPattern.FindStringIndex(working); loc != nil {
		addr.StreetDesignator = strPtr(ap.vocab.canonicalDesignator(working[loc[0]:loc[1]]))
		working = cutSpan(working, loc[0], loc[1])
	}

	if value, rest, ok := extractOne(ap.dirPrefix, working); ok {
		addr.StreetDirPrefix = strPtr(strings.ToUpper(value))
		working = rest
	}

	if m := ap.dirSuffix.FindStringSubmatchIndex(working); m != nil {
		addr.StreetDirSuffix = strPtr(strings.ToUpper(working[m[2]:m[3]]))
		working = cutSpan(working, m[2], m[3])
	}

	if name := ap.streetName(working); name != "" {
		addr.StreetName = strPtr(name)
	}
}

// streetName pulls the longest leading run of letters, digits, spaces,
// hyphens and apostrophes that starts and ends on a letter or digit. When
// nothing matches, the raw trimmed remainder is kept as-is, stray
// punctuation and all.
func (ap *AddressParser) streetName(remainder string) string {
	if m := ap.coreText.FindString(remainder); m != "" {
		return normalizer.Collapse(m)
	}
	return strings.TrimSpace(remainder)
}

// TrimUnitNumber applies the unit-number patterns to a fragment already
// known to be a unit designation and returns the bare value. Text that does
// not match comes back trimmed. Idempotent.
func (ap *AddressParser) TrimUnitNumber(text string) string {
	if value, _, ok := extractFirst(ap.unitPatterns, text); ok {
		return value
	}
	return strings.TrimSpace(text)
}

// TrimFloorNumber applies the floor patterns to a fragment already known to
// be a floor designation and returns the bare value. Idempotent.
func (ap *AddressParser) TrimFloorNumber(text string) string {
	if value, _, ok := extractFirst(ap.floorPatterns, text); ok {
		return value
	}
	return strings.TrimSpace(text)
}

// extractFirst tries patterns in order; the first one that matches wins.
// It returns the captured group and the working string with the matched
// span replaced by a space.
func extractFirst(patterns []*regexp.Regexp, s string) (value, rest string, ok bool) {
	for _, pattern := range patterns {
		if value, rest, ok = extractOne(pattern, s); ok {
			return value, rest, true
		}
	}
	return "", s, false
}

func extractOne(pattern *regexp.Regexp, s string) (value, rest string, ok bool) {
	m := pattern.FindStringSubmatchIndex(s)
	if m == nil || m[2] < 0 {
		return "", s, false
	}
	return s[m[2]:m[3]], cutSpan(s, m[0], m[1]), true
}

// cutSpan removes s[start:end], leaving a single space so adjacent tokens
// do not fuse.
func cutSpan(s string, start, end int) string {
	return s[:start] + " " + s[end:]
}
