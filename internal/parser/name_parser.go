package parser

import (
	"regexp"
	"strings"

	"github.com/contact-parser/app/models"
	"github.com/contact-parser/internal/normalizer"
)

// NameParser extracts the structured parts of a person name. Safe for
// concurrent use: all state is precompiled patterns and the shared
// read-only vocabulary.
type NameParser struct {
	// junkPattern matches every run of characters that is not a letter,
	// digit, hyphen or apostrophe (ASCII or right single quote).
	junkPattern  *regexp.Regexp
	romanPattern *regexp.Regexp
	vocab        *vocabulary
}

// NewNameParser builds a parser over the package vocabulary.
func NewNameParser() *NameParser {
	return &NameParser{
		junkPattern:  regexp.MustCompile(`[^\p{L}\p{N}'’-]+`),
		romanPattern: regexp.MustCompile(`(?i)^[ivxlcm]+$`),
		vocab:        vocab,
	}
}

// Parse splits input into name parts. It never fails: input nothing
// recognizable yields an all-absent record. When useEmptyDefault is true,
// unset fields are empty strings rather than nil.
func (np *NameParser) Parse(input string, useEmptyDefault bool) *models.PersonName {
	name := &models.PersonName{}
	np.parseInto(input, name)
	if useEmptyDefault {
		name.FillEmptyDefaults()
	}
	return name
}

// ParsePtr is the optional-input variant; a nil input is the only error.
func (np *NameParser) ParsePtr(input *string, useEmptyDefault bool) (*models.PersonName, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	return np.Parse(*input, useEmptyDefault), nil
}

// ParseInto populates a caller-supplied record in place, resetting it
// first.
func (np *NameParser) ParseInto(input string, out *models.PersonName, useEmptyDefault bool) error {
	if out == nil {
		return ErrNilTarget
	}
	out.Reset()
	np.parseInto(input, out)
	if useEmptyDefault {
		out.FillEmptyDefaults()
	}
	return nil
}

func (np *NameParser) parseInto(input string, name *models.PersonName) {
	// "Last, First[, rest]" form: swap around the first comma. A trailing
	// comma with nothing after it just drops.
	if i := strings.Index(input, ","); i >= 0 {
		input = strings.TrimSpace(input[i+1:]) + " " + input[:i]
	}

	cleaned := normalizer.Collapse(np.junkPattern.ReplaceAllString(input, " "))
	if cleaned == "" {
		return
	}
	tokens := strings.Fields(cleaned)

	haveTitle := false
	if np.vocab.isTitle(tokens[0]) {
		name.Title = strPtr(np.NormalizeTitle(tokens[0]))
		tokens = tokens[1:]
		haveTitle = true
	}
	if len(tokens) == 0 {
		return
	}

	haveSuffix := false
	if np.isSuffix(tokens[len(tokens)-1]) {
		name.Suffix = strPtr(np.NormalizeSuffix(tokens[len(tokens)-1]))
		tokens = tokens[:len(tokens)-1]
		haveSuffix = true
	}
	if len(tokens) == 0 {
		return
	}

	if len(tokens) == 1 {
		// A lone name next to a title or suffix is taken as a surname.
		if haveTitle || haveSuffix {
			name.LastName = strPtr(tokens[0])
		} else {
			name.FirstName = strPtr(tokens[0])
		}
		return
	}

	// The last token seeds the surname; absorb at most one known prefix,
	// trying the two-token particles before the one-token ones.
	last := len(tokens) - 1
	surname := tokens[last]
	switch {
	case last >= 2 && np.vocab.isDoublePrefix(tokens[last-2], tokens[last-1]):
		surname = tokens[last-2] + " " + tokens[last-1] + " " + surname
		tokens = tokens[:last-2]
	case last >= 1 && np.vocab.isSinglePrefix(tokens[last-1]):
		surname = tokens[last-1] + " " + surname
		tokens = tokens[:last-1]
	default:
		tokens = tokens[:last]
	}
	name.LastName = strPtr(surname)

	if len(tokens) == 0 {
		return
	}
	name.FirstName = strPtr(tokens[0])
	if len(tokens) > 1 {
		name.MiddleName = strPtr(strings.Join(tokens[1:], " "))
	}
}

// isSuffix reports whether token is a generational suffix: a vocabulary
// word or a Roman numeral.
func (np *NameParser) isSuffix(token string) bool {
	return np.vocab.isSuffixWord(token) || np.romanPattern.MatchString(token)
}

// NormalizeTitle strips punctuation from text and, when the remainder is a
// known honorific, returns its canonical form: leading capital plus a
// period, except "Miss" which takes none. Unrecognized text comes back
// trimmed but otherwise unchanged. Idempotent.
func (np *NameParser) NormalizeTitle(text string) string {
	cleaned := normalizer.Collapse(np.junkPattern.ReplaceAllString(text, " "))
	if !np.vocab.isTitle(cleaned) {
		return strings.TrimSpace(text)
	}
	canonical := upperFirstLower(cleaned)
	if canonical == "Miss" {
		return canonical
	}
	return canonical + "."
}

// NormalizeSuffix strips punctuation from text and canonicalizes known
// suffixes: Roman numerals are uppercased verbatim, vocabulary words get a
// leading capital plus a period. Idempotent.
func (np *NameParser) NormalizeSuffix(text string) string {
	cleaned := normalizer.Collapse(np.junkPattern.ReplaceAllString(text, " "))
	if np.romanPattern.MatchString(cleaned) {
		return strings.ToUpper(cleaned)
	}
	if !np.vocab.isSuffixWord(cleaned) {
		return strings.TrimSpace(text)
	}
	return upperFirstLower(cleaned) + "."
}
